// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package efi

import (
	"errors"
	"fmt"
)

var (
	// ErrVarsUnavailable is returned when the interface backing a
	// VarsBackend is not present on this system.
	ErrVarsUnavailable = errors.New("no variable interface is mounted in the expected location")

	// ErrVarNotExist is returned when a variable doesn't exist.
	ErrVarNotExist = errors.New("variable does not exist")

	// ErrInvalidVarName is returned when a combined variable name is
	// malformed.
	ErrInvalidVarName = errors.New("invalid variable name")

	// ErrCorruptVar is matched by every error that indicates that the
	// contents of a variable read from the kernel are inconsistent.
	ErrCorruptVar = errors.New("corrupt variable")

	// ErrUnsupportedPlatformSize is matched by a *PlatformSizeError.
	ErrUnsupportedPlatformSize = errors.New("unsupported platform size")
)

// VarCorruptError is returned when a variable could be read but its
// contents are not consistent.
type VarCorruptError struct {
	Name   VariableName
	Reason string
	err    error
}

func newVarCorruptError(name VariableName, reason string) *VarCorruptError {
	return &VarCorruptError{Name: name, Reason: reason}
}

func wrapVarCorruptError(name VariableName, err error) *VarCorruptError {
	return &VarCorruptError{Name: name, Reason: err.Error(), err: err}
}

func (e *VarCorruptError) Error() string {
	return fmt.Sprintf("corrupt variable %s: %s", e.Name, e.Reason)
}

func (e *VarCorruptError) Is(target error) bool {
	return target == ErrCorruptVar
}

func (e *VarCorruptError) Unwrap() error {
	return e.err
}

// InvalidVarNameError is returned when a variable name cannot be parsed.
type InvalidVarNameError struct {
	Name string
	err  error
}

func (e *InvalidVarNameError) Error() string {
	if e.err == nil {
		return fmt.Sprintf("%v: %q", ErrInvalidVarName, e.Name)
	}
	return fmt.Sprintf("%v: %q: %v", ErrInvalidVarName, e.Name, e.err)
}

func (e *InvalidVarNameError) Is(target error) bool {
	return target == ErrInvalidVarName
}

func (e *InvalidVarNameError) Unwrap() error {
	return e.err
}

// VarStatusError is returned from the legacy interface when the kernel
// reports a non-zero EFI_STATUS for a variable.
type VarStatusError struct {
	Name   VariableName
	Status uint64
}

func (e *VarStatusError) Error() string {
	return fmt.Sprintf("variable read error for %s. Unexpected status code %d", e.Name, e.Status)
}

func (e *VarStatusError) Is(target error) bool {
	return target == ErrCorruptVar
}

// PlatformSizeError is returned when the firmware platform size reported by
// the kernel is neither 32 nor 64.
type PlatformSizeError struct {
	Value string
}

func (e *PlatformSizeError) Error() string {
	return fmt.Sprintf("unsupported platform size: %q", e.Value)
}

func (e *PlatformSizeError) Is(target error) bool {
	return target == ErrUnsupportedPlatformSize
}
