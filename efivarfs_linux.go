// Copyright 2020 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package efi

import (
	"os"

	"golang.org/x/sys/unix"
)

func probeEfivarfs(path string) (bool, error) {
	var st unix.Statfs_t
	if err := unixStatfs(path, &st); err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, &os.PathError{Op: "statfs", Path: path, Err: err}
	}
	return uint32(st.Type) == uint32(unix.EFIVARFS_MAGIC), nil
}
