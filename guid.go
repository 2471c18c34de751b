// Copyright 2020 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package efi

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
)

// GUID corresponds to the EFI_GUID type. It is stored in its binary form,
// where the first three fields are little-endian and the final 8 bytes are
// stored verbatim.
type GUID [16]byte

func (guid GUID) String() string {
	return fmt.Sprintf("%08x-%04x-%04x-%04x-%012x",
		guid.A(),
		guid.B(),
		guid.C(),
		binary.BigEndian.Uint16(guid[8:10]),
		guid[10:16])
}

// A returns the first (32-bit) field of this GUID.
func (guid GUID) A() uint32 {
	return binary.LittleEndian.Uint32(guid[0:4])
}

// B returns the second (16-bit) field of this GUID.
func (guid GUID) B() uint16 {
	return binary.LittleEndian.Uint16(guid[4:6])
}

// C returns the third (16-bit) field of this GUID.
func (guid GUID) C() uint16 {
	return binary.LittleEndian.Uint16(guid[6:8])
}

// Tail returns the final 8 bytes of this GUID.
func (guid GUID) Tail() (out [8]byte) {
	copy(out[:], guid[8:])
	return out
}

// Compare returns an integer comparing two GUIDs. The result is 0 if
// guid == other, -1 if guid < other and +1 if guid > other. GUIDs are
// ordered by their A, B and C fields and then by their tail bytes, starting
// from the last byte.
func (guid GUID) Compare(other GUID) int {
	switch {
	case guid.A() < other.A():
		return -1
	case guid.A() > other.A():
		return 1
	case guid.B() < other.B():
		return -1
	case guid.B() > other.B():
		return 1
	case guid.C() < other.C():
		return -1
	case guid.C() > other.C():
		return 1
	}

	for i := len(guid) - 1; i >= 8; i-- {
		switch {
		case guid[i] < other[i]:
			return -1
		case guid[i] > other[i]:
			return 1
		}
	}
	return 0
}

// MarshalText implements [encoding.TextMarshaler].
func (guid GUID) MarshalText() ([]byte, error) {
	return []byte(guid.String()), nil
}

// UnmarshalText implements [encoding.TextUnmarshaler].
func (guid *GUID) UnmarshalText(text []byte) error {
	g, err := DecodeGUIDString(string(text))
	if err != nil {
		return err
	}
	*guid = g
	return nil
}

// MakeGUID makes a new GUID from the supplied arguments.
func MakeGUID(a uint32, b, c, d uint16, e [6]uint8) (out GUID) {
	binary.LittleEndian.PutUint32(out[0:4], a)
	binary.LittleEndian.PutUint16(out[4:6], b)
	binary.LittleEndian.PutUint16(out[6:8], c)
	binary.BigEndian.PutUint16(out[8:10], d)
	copy(out[10:], e[:])
	return
}

// GUIDFromBytes returns the GUID encoded in the supplied EFI_GUID binary
// representation.
func GUIDFromBytes(b [16]byte) GUID {
	return GUID(b)
}

// GUIDFromSlice returns the GUID encoded in the supplied EFI_GUID binary
// representation, which must be exactly 16 bytes long.
func GUIDFromSlice(b []byte) (GUID, error) {
	if err := checkGUIDLen(len(b), GUIDSourceSlice); err != nil {
		return GUID{}, err
	}

	var out GUID
	copy(out[:], b)
	return out, nil
}

// GUIDFromBuffer returns the GUID encoded in the unread portion of the
// supplied buffer, which must be exactly 16 bytes long. The buffer is
// drained on success.
func GUIDFromBuffer(buf *bytes.Buffer) (GUID, error) {
	if err := checkGUIDLen(buf.Len(), GUIDSourceBuffer); err != nil {
		return GUID{}, err
	}

	return ReadGUID(buf)
}

// ReadGUID reads a EFI_GUID from the supplied io.Reader.
func ReadGUID(r io.Reader) (out GUID, err error) {
	_, err = io.ReadFull(r, out[:])
	return
}

func checkGUIDLen(n int, source GUIDSource) error {
	switch {
	case n < 16:
		return &GUIDError{Kind: GUIDLengthTooShort, Source: source}
	case n > 16:
		return &GUIDError{Kind: GUIDLengthTooLong, Source: source}
	}
	return nil
}

// DecodeGUIDString decodes the supplied GUID string. The string must have
// the format "xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx", where each x is a
// hexadecimal digit.
func DecodeGUIDString(s string) (GUID, error) {
	badFormat := &GUIDError{Kind: GUIDBadFormat, Source: GUIDSourceText}

	if len(s) != 36 {
		return GUID{}, badFormat
	}

	var digits [32]byte
	n := 0
	for i := 0; i < len(s); i++ {
		switch i {
		case 8, 13, 18, 23:
			if s[i] != '-' {
				return GUID{}, badFormat
			}
			continue
		}
		digits[n] = s[i]
		n++
	}

	var raw [16]byte
	if _, err := hex.Decode(raw[:], digits[:]); err != nil {
		return GUID{}, badFormat
	}

	// The text form is big-endian throughout, so the first three fields
	// need swapping to obtain the binary layout.
	var out GUID
	binary.LittleEndian.PutUint32(out[0:4], binary.BigEndian.Uint32(raw[0:4]))
	binary.LittleEndian.PutUint16(out[4:6], binary.BigEndian.Uint16(raw[4:6]))
	binary.LittleEndian.PutUint16(out[6:8], binary.BigEndian.Uint16(raw[6:8]))
	copy(out[8:], raw[8:])
	return out, nil
}

// GUIDErrorKind describes the reason a GUID could not be decoded.
type GUIDErrorKind int

const (
	GUIDBadFormat GUIDErrorKind = iota
	GUIDLengthTooShort
	GUIDLengthTooLong
)

// GUIDSource describes the kind of input a GUID was being decoded from.
type GUIDSource string

const (
	GUIDSourceText   GUIDSource = "text"
	GUIDSourceSlice  GUIDSource = "slice"
	GUIDSourceBuffer GUIDSource = "buffer"
)

var (
	ErrGUIDBadFormat = errors.New("bad GUID format")
	ErrGUIDTooShort  = errors.New("GUID source too short")
	ErrGUIDTooLong   = errors.New("GUID source too long")
)

// GUIDError is returned from the functions that decode a GUID.
type GUIDError struct {
	Kind   GUIDErrorKind
	Source GUIDSource
}

func (e *GUIDError) Error() string {
	switch e.Kind {
	case GUIDLengthTooShort:
		return fmt.Sprintf("source %s too short. %s must have a size of 16", e.Source, e.sourceTitle())
	case GUIDLengthTooLong:
		return fmt.Sprintf("source %s too long. %s must have a size of 16", e.Source, e.sourceTitle())
	default:
		return "bad format. Correct format is xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx"
	}
}

func (e *GUIDError) sourceTitle() string {
	switch e.Source {
	case GUIDSourceSlice:
		return "Slice"
	case GUIDSourceBuffer:
		return "Buffer"
	default:
		return "Source"
	}
}

func (e *GUIDError) Is(target error) bool {
	switch target {
	case ErrGUIDBadFormat:
		return e.Kind == GUIDBadFormat
	case ErrGUIDTooShort:
		return e.Kind == GUIDLengthTooShort
	case ErrGUIDTooLong:
		return e.Kind == GUIDLengthTooLong
	}
	return false
}
