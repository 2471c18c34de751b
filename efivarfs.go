// Copyright 2020 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package efi

import (
	"encoding/binary"
	"io"
	"os"
	"path/filepath"

	"golang.org/x/xerrors"
)

// DefaultEfivarfsPath is where efivarfs is normally mounted.
const DefaultEfivarfsPath = "/sys/firmware/efi/efivars"

// EfivarfsBackend reads variables from efivarfs, where each variable is a
// file named "<name>-<guid>" containing a 4-byte little-endian attribute
// word followed by the variable's data.
type EfivarfsBackend struct {
	Path string
}

// NewEfivarfsBackend returns a backend for efivarfs mounted at path.
func NewEfivarfsBackend(path string) *EfivarfsBackend {
	return &EfivarfsBackend{Path: path}
}

func (b *EfivarfsBackend) checkAvailable() error {
	available, err := probeEfivarfs(b.Path)
	switch {
	case err != nil:
		return xerrors.Errorf("cannot probe efivarfs: %w", err)
	case !available:
		return ErrVarsUnavailable
	}
	return nil
}

func efivarfsEntryName(ent os.DirEntry) (VariableName, bool) {
	if !ent.Type().IsRegular() {
		return VariableName{}, false
	}
	name, err := ParseVariableFileName(ent.Name())
	if err != nil {
		return VariableName{}, false
	}
	return name, true
}

// List implements [VarsBackend.List].
func (b *EfivarfsBackend) List() (*VarNameIterator, error) {
	if err := b.checkAvailable(); err != nil {
		return nil, err
	}
	return listVarDir(b.Path, efivarfsEntryName)
}

// Get implements [VarsBackend.Get].
func (b *EfivarfsBackend) Get(name string) (*Variable, error) {
	n, err := ParseCombinedName(name)
	if err != nil {
		return nil, err
	}
	return b.ReadVar(n)
}

// ReadVar returns the variable with the supplied identity.
func (b *EfivarfsBackend) ReadVar(name VariableName) (*Variable, error) {
	if err := b.checkAvailable(); err != nil {
		return nil, err
	}

	path := filepath.Join(b.Path, name.String())
	f, err := openVarFile(path)
	switch {
	case os.IsNotExist(err):
		return nil, ErrVarNotExist
	case err != nil:
		return nil, xerrors.Errorf("cannot open variable: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, xerrors.Errorf("cannot read variable: %w", err)
	}
	if len(data) < 4 {
		return nil, newVarCorruptError(name, "too short")
	}

	return &Variable{
		Name:       name.Name,
		GUID:       name.GUID,
		Attributes: DecodeAttributes(binary.LittleEndian.Uint32(data)),
		Data:       data[4:]}, nil
}
