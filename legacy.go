// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package efi

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/xerrors"

	"github.com/canonical/go-efivar/internal/pseudofile"
)

// DefaultLegacyVarsPath is where the legacy sysfs variable interface is
// normally found.
const DefaultLegacyVarsPath = "/sys/firmware/efi/vars"

const (
	legacyNameSize = 1024
	legacyGUIDSize = 16
	legacyDataSize = 1024

	// MaxLegacyDataSize is the largest variable that can be read using the
	// legacy interface.
	MaxLegacyDataSize = legacyDataSize

	legacyRecordFile = "raw_var"
)

// recordLayout describes the raw_var record exposed by the legacy
// interface, which mirrors the kernel's struct efi_variable:
//
//	efi_char16_t  VariableName[512];
//	efi_guid_t    VendorGuid;
//	unsigned long DataSize;
//	__u8          Data[1024];
//	efi_status_t  Status;
//	__u32         Attributes;
//
// DataSize and Status are the firmware's word size, so the offsets depend
// on the platform.
type recordLayout struct {
	wordSize       int
	guidOffset     int
	dataSizeOffset int
	dataOffset     int
	statusOffset   int
	attrsOffset    int
	size           int
}

func newRecordLayout(platform PlatformSize) recordLayout {
	l := recordLayout{wordSize: platform.wordSize()}
	l.guidOffset = legacyNameSize
	l.dataSizeOffset = l.guidOffset + legacyGUIDSize
	l.dataOffset = l.dataSizeOffset + l.wordSize
	l.statusOffset = l.dataOffset + legacyDataSize
	l.attrsOffset = l.statusOffset + l.wordSize
	l.size = l.attrsOffset + 4
	return l
}

func (l recordLayout) word(b []byte) uint64 {
	if l.wordSize == 4 {
		return uint64(binary.NativeEndian.Uint32(b))
	}
	return binary.NativeEndian.Uint64(b)
}

var (
	errNameMismatch = errors.New("reported name does not match name")
	errGUIDMismatch = errors.New("reported guid does not match guid")
)

// decode decodes a complete record. The returned variable hasn't been
// checked against the identity it was read for.
func (l recordLayout) decode(buf []byte, name VariableName) (*Variable, error) {
	if len(buf) != l.size {
		return nil, xerrors.Errorf("invalid record size %d", len(buf))
	}

	nameUnits := make([]uint16, legacyNameSize/2)
	for i := range nameUnits {
		nameUnits[i] = binary.LittleEndian.Uint16(buf[i*2:])
	}
	varName, err := DecodeUTF16(trimTrailingNulls(nameUnits))
	if err != nil {
		return nil, wrapVarCorruptError(name, xerrors.Errorf("cannot decode name: %w", err))
	}

	guid, err := GUIDFromSlice(buf[l.guidOffset:l.dataSizeOffset])
	if err != nil {
		return nil, wrapVarCorruptError(name, xerrors.Errorf("cannot decode guid: %w", err))
	}

	dataSize := l.word(buf[l.dataSizeOffset:l.dataOffset])
	if dataSize > MaxLegacyDataSize {
		return nil, newVarCorruptError(name, fmt.Sprintf("reported data size exceeds maximum (%d > %d)", dataSize, MaxLegacyDataSize))
	}
	data := make([]byte, dataSize)
	copy(data, buf[l.dataOffset:])

	if status := l.word(buf[l.statusOffset:l.attrsOffset]); status != 0 {
		return nil, &VarStatusError{Name: name, Status: status}
	}

	attrs := DecodeAttributes(binary.NativeEndian.Uint32(buf[l.attrsOffset:]))

	return &Variable{
		Name:       varName,
		GUID:       guid,
		Attributes: attrs,
		Data:       data}, nil
}

// LegacyBackend reads variables from the legacy sysfs interface, where each
// variable is a directory named "<guid>-<name>" containing a raw_var file
// with a fixed size binary record.
type LegacyBackend struct {
	Path   string
	layout recordLayout
}

// NewLegacyBackend returns a backend for the legacy interface found at path,
// on a platform with the supplied firmware word size.
func NewLegacyBackend(path string, platform PlatformSize) (*LegacyBackend, error) {
	if !platform.valid() {
		return nil, &PlatformSizeError{Value: fmt.Sprintf("%d", platform)}
	}
	return &LegacyBackend{Path: path, layout: newRecordLayout(platform)}, nil
}

// RecordSize returns the size of the raw_var record for this platform.
func (b *LegacyBackend) RecordSize() int {
	return b.layout.size
}

func legacyEntryName(ent os.DirEntry) (VariableName, bool) {
	if !ent.IsDir() {
		return VariableName{}, false
	}
	name, err := ParseCombinedName(ent.Name())
	if err != nil {
		return VariableName{}, false
	}
	return name, true
}

// List implements [VarsBackend.List].
func (b *LegacyBackend) List() (*VarNameIterator, error) {
	return listVarDir(b.Path, legacyEntryName)
}

// Get implements [VarsBackend.Get].
func (b *LegacyBackend) Get(name string) (*Variable, error) {
	n, err := ParseCombinedName(name)
	if err != nil {
		return nil, err
	}
	return b.ReadVar(n)
}

// ReadVar returns the variable with the supplied identity.
func (b *LegacyBackend) ReadVar(name VariableName) (*Variable, error) {
	path := filepath.Join(b.Path, name.LegacyString(), legacyRecordFile)
	f, err := openVarFile(path)
	switch {
	case os.IsNotExist(err):
		if _, err := osStat(b.Path); os.IsNotExist(err) {
			return nil, ErrVarsUnavailable
		}
		return nil, ErrVarNotExist
	case err != nil:
		return nil, xerrors.Errorf("cannot open variable: %w", err)
	}
	defer f.Close()

	buf := make([]byte, b.layout.size)
	if err := pseudofile.ReadExact(f, buf); err != nil {
		var e *pseudofile.LengthError
		if errors.As(err, &e) {
			return nil, wrapVarCorruptError(name, err)
		}
		return nil, xerrors.Errorf("cannot read variable: %w", err)
	}

	v, err := b.layout.decode(buf, name)
	if err != nil {
		return nil, err
	}

	if v.Name != name.Name {
		return nil, wrapVarCorruptError(name, errNameMismatch)
	}
	if v.GUID != name.GUID {
		return nil, wrapVarCorruptError(name, errGUIDMismatch)
	}

	return v, nil
}
