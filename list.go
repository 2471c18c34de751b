// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package efi

import (
	"os"

	"golang.org/x/xerrors"
)

// VarNameIterator iterates over the variables found by a single read of a
// variable directory. Entries that don't name a variable are skipped. An
// iterator can't be rewound; call List again to start over.
type VarNameIterator struct {
	entries []os.DirEntry
	parse   func(os.DirEntry) (VariableName, bool)
	current VariableName
}

// Next advances to the next variable, returning false when there are no
// more.
func (it *VarNameIterator) Next() bool {
	for len(it.entries) > 0 {
		ent := it.entries[0]
		it.entries = it.entries[1:]

		name, ok := it.parse(ent)
		if !ok {
			continue
		}
		it.current = name
		return true
	}
	it.current = VariableName{}
	return false
}

// Name returns the variable at the current position.
func (it *VarNameIterator) Name() VariableName {
	return it.current
}

// Collect drains the iterator and returns the remaining variables.
func (it *VarNameIterator) Collect() (out []VariableName) {
	for it.Next() {
		out = append(out, it.Name())
	}
	return out
}

// listVarDir reads the directory at path once and returns an iterator that
// applies parse to each entry.
func listVarDir(path string, parse func(os.DirEntry) (VariableName, bool)) (*VarNameIterator, error) {
	fi, err := osStat(path)
	switch {
	case os.IsNotExist(err):
		return nil, ErrVarsUnavailable
	case err != nil:
		return nil, xerrors.Errorf("cannot stat variable directory: %w", err)
	case !fi.IsDir():
		return nil, ErrVarsUnavailable
	}

	entries, err := readVarDir(path)
	if err != nil {
		return nil, xerrors.Errorf("cannot read variable directory: %w", err)
	}

	return &VarNameIterator{entries: entries, parse: parse}, nil
}
