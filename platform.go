// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package efi

import (
	"os"
	"strings"
	"unicode"

	"golang.org/x/xerrors"
)

// DefaultPlatformSizePath is where the kernel exposes the firmware's
// word size.
const DefaultPlatformSizePath = "/sys/firmware/efi/fw_platform_size"

// PlatformSize is the word size of the firmware, in bits.
type PlatformSize int

const (
	PlatformSize32 PlatformSize = 32
	PlatformSize64 PlatformSize = 64
)

func (s PlatformSize) valid() bool {
	return s == PlatformSize32 || s == PlatformSize64
}

// wordSize returns the platform's word size in bytes.
func (s PlatformSize) wordSize() int {
	return int(s) / 8
}

// ParsePlatformSize parses the contents of the fw_platform_size file,
// which must be "32" or "64" optionally followed by whitespace.
func ParsePlatformSize(s string) (PlatformSize, error) {
	switch strings.TrimRightFunc(s, unicode.IsSpace) {
	case "32":
		return PlatformSize32, nil
	case "64":
		return PlatformSize64, nil
	default:
		return 0, &PlatformSizeError{Value: s}
	}
}

// ProbePlatformSize reads the firmware platform size from the file at
// path.
func ProbePlatformSize(path string) (PlatformSize, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, xerrors.Errorf("cannot read platform size: %w", err)
	}
	return ParsePlatformSize(string(data))
}
