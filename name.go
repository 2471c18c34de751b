// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package efi

import (
	"errors"
	"fmt"
	"strings"
)

const (
	guidStringLen = 36

	// MinVariableNameLen is the length of the shortest valid combined
	// variable name: one name character, a dash and a GUID.
	MinVariableNameLen = guidStringLen + 2
)

// VariableName identifies an EFI variable by its name and vendor GUID.
type VariableName struct {
	Name string
	GUID GUID
}

// String returns the normalized "<name>-<guid>" form of this identity,
// which is also how efivarfs names its files.
func (n VariableName) String() string {
	return fmt.Sprintf("%s-%s", n.Name, n.GUID)
}

// LegacyString returns the "<guid>-<name>" form of this identity.
func (n VariableName) LegacyString() string {
	return fmt.Sprintf("%s-%s", n.GUID, n.Name)
}

// ParseVariableFileName parses a name of the form "<name>-<guid>".
func ParseVariableFileName(s string) (VariableName, error) {
	if len(s) < MinVariableNameLen || s[len(s)-guidStringLen-1] != '-' {
		return VariableName{}, &InvalidVarNameError{Name: s}
	}

	guid, err := DecodeGUIDString(s[len(s)-guidStringLen:])
	if err != nil {
		return VariableName{}, &InvalidVarNameError{Name: s, err: err}
	}

	return newVariableName(s, s[:len(s)-guidStringLen-1], guid)
}

// ParseCombinedName parses a name of the form "<guid>-<name>", which is the
// form accepted on the command line and the one used by the legacy sysfs
// interface.
func ParseCombinedName(s string) (VariableName, error) {
	if len(s) < MinVariableNameLen || s[guidStringLen] != '-' {
		return VariableName{}, &InvalidVarNameError{Name: s}
	}

	guid, err := DecodeGUIDString(s[:guidStringLen])
	if err != nil {
		return VariableName{}, &InvalidVarNameError{Name: s, err: err}
	}

	return newVariableName(s, s[guidStringLen+1:], guid)
}

// newVariableName rejects names that cannot be used as a single path
// component.
func newVariableName(s, name string, guid GUID) (VariableName, error) {
	if strings.ContainsRune(name, '/') {
		return VariableName{}, &InvalidVarNameError{Name: s, err: errors.New("name contains a path separator")}
	}
	return VariableName{Name: name, GUID: guid}, nil
}
