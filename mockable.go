// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package efi

import (
	"io"
	"os"
)

// VarFile is the subset of *os.File used to read a variable.
type VarFile = io.ReadCloser

func realOpenVarFile(path string) (VarFile, error) {
	return os.Open(path)
}

var (
	openVarFile = realOpenVarFile
	osStat      = os.Stat
	readVarDir  = os.ReadDir
)
