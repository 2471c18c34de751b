// Copyright 2020 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.
//go:build !linux

package efi

func probeEfivarfs(_ string) (bool, error) {
	return false, nil
}
