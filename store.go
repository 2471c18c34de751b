// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package efi

import (
	"golang.org/x/xerrors"
)

// StoreOptions describes where the kernel's variable interfaces are found.
type StoreOptions struct {
	EfivarfsPath     string
	LegacyVarsPath   string
	PlatformSizePath string
}

// DefaultStoreOptions returns the standard locations of the kernel's
// variable interfaces.
func DefaultStoreOptions() StoreOptions {
	return StoreOptions{
		EfivarfsPath:     DefaultEfivarfsPath,
		LegacyVarsPath:   DefaultLegacyVarsPath,
		PlatformSizePath: DefaultPlatformSizePath,
	}
}

// Store provides access to EFI variables using efivarfs when it is
// available, falling back to the legacy sysfs interface otherwise. Each
// call is served by exactly one backend.
type Store struct {
	backends []VarsBackend
}

// NewStore returns a Store for the kernel interfaces described by opts. The
// firmware platform size is probed once here, and an unsupported value is
// an error.
func NewStore(opts StoreOptions) (*Store, error) {
	platform, err := ProbePlatformSize(opts.PlatformSizePath)
	if err != nil {
		return nil, xerrors.Errorf("cannot determine firmware platform size: %w", err)
	}

	legacy, err := NewLegacyBackend(opts.LegacyVarsPath, platform)
	if err != nil {
		return nil, err
	}

	return NewStoreWithBackends(NewEfivarfsBackend(opts.EfivarfsPath), legacy), nil
}

// NewStoreWithBackends returns a Store that tries each of the supplied
// backends in order.
func NewStoreWithBackends(backends ...VarsBackend) *Store {
	return &Store{backends: backends}
}

// List returns an iterator over the variables from the first backend that
// can list them. If every backend fails, the error from the last one is
// returned.
func (s *Store) List() (*VarNameIterator, error) {
	err := ErrVarsUnavailable
	for _, b := range s.backends {
		var it *VarNameIterator
		it, err = b.List()
		if err == nil {
			return it, nil
		}
	}
	return nil, err
}

// ListNames returns the normalized "<name>-<guid>" names of every variable.
func (s *Store) ListNames() ([]string, error) {
	it, err := s.List()
	if err != nil {
		return nil, err
	}

	var names []string
	for it.Next() {
		names = append(names, it.Name().String())
	}
	return names, nil
}

// Get returns the variable with the supplied combined name, which must be
// of the form "<guid>-<name>", from the first backend that can read it. If
// every backend fails, the error from the last one is returned.
func (s *Store) Get(name string) (*Variable, error) {
	err := ErrVarsUnavailable
	for _, b := range s.backends {
		var v *Variable
		v, err = b.Get(name)
		if err == nil {
			return v, nil
		}
	}
	return nil, err
}
