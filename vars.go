// Copyright 2020 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package efi

// Variable is an EFI variable decoded from one of the kernel interfaces.
type Variable struct {
	Name       string
	GUID       GUID
	Attributes VariableAttributes
	Data       []byte
}

// VariableName returns the identity of this variable.
func (v *Variable) VariableName() VariableName {
	return VariableName{Name: v.Name, GUID: v.GUID}
}

// VarsBackend is implemented by each kernel interface that exposes EFI
// variables.
type VarsBackend interface {
	// List returns an iterator over the variables exposed by this
	// interface.
	List() (*VarNameIterator, error)

	// Get returns the variable with the supplied combined name, which
	// must be of the form "<guid>-<name>".
	Get(name string) (*Variable, error)
}
