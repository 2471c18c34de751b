// Copyright 2020 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package efi_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"math/rand"
	"sort"

	. "gopkg.in/check.v1"

	. "github.com/canonical/go-efivar"
)

type guidSuite struct{}

var _ = Suite(&guidSuite{})

type testMakeGUIDData struct {
	a        uint32
	b        uint16
	c        uint16
	d        uint16
	e        [6]uint8
	expected []byte
}

func (s *guidSuite) testMakeGUID(c *C, data *testMakeGUIDData) {
	g := MakeGUID(data.a, data.b, data.c, data.d, data.e)
	var expected GUID
	copy(expected[:], data.expected)
	c.Check(g, Equals, expected)
	c.Check(g.A(), Equals, data.a)
	c.Check(g.B(), Equals, data.b)
	c.Check(g.C(), Equals, data.c)
}

func (s *guidSuite) TestMakeGUIDGlobalVariable(c *C) {
	s.testMakeGUID(c, &testMakeGUIDData{
		a: 0x8be4df61, b: 0x93ca, c: 0x11d2, d: 0xaa0d, e: [...]uint8{0x00, 0xe0, 0x98, 0x03, 0x2b, 0x8c},
		expected: decodeHexString(c, "61dfe48bca93d211aa0d00e098032b8c")})
}

func (s *guidSuite) TestMakeGUIDImageSecurityDatabase(c *C) {
	s.testMakeGUID(c, &testMakeGUIDData{
		a: 0xd719b2cb, b: 0x3d3a, c: 0x4596, d: 0xa3bc, e: [...]uint8{0xda, 0xd0, 0x0e, 0x67, 0x65, 0x6f},
		expected: decodeHexString(c, "cbb219d73a3d9645a3bcdad00e67656f")})
}

func (s *guidSuite) TestGUIDTail(c *C) {
	g := MakeGUID(0x8be4df61, 0x93ca, 0x11d2, 0xaa0d, [...]uint8{0x00, 0xe0, 0x98, 0x03, 0x2b, 0x8c})
	c.Check(g.Tail(), Equals, [8]byte{0xaa, 0x0d, 0x00, 0xe0, 0x98, 0x03, 0x2b, 0x8c})
}

type testGUIDStringData struct {
	x        []byte
	expected string
}

func (s *guidSuite) testGUIDString(c *C, data *testGUIDStringData) {
	var g GUID
	copy(g[:], data.x)
	c.Check(g.String(), Equals, data.expected)
}

func (s *guidSuite) TestGUIDString1(c *C) {
	s.testGUIDString(c, &testGUIDStringData{
		x:        decodeHexString(c, "61dfe48bca93d211aa0d00e098032b8c"),
		expected: "8be4df61-93ca-11d2-aa0d-00e098032b8c"})
}

func (s *guidSuite) TestGUIDString2(c *C) {
	s.testGUIDString(c, &testGUIDStringData{
		x:        decodeHexString(c, "cbb219d73a3d9645a3bcdad00e67656f"),
		expected: "d719b2cb-3d3a-4596-a3bc-dad00e67656f"})
}

func (s *guidSuite) TestGUIDStringZero(c *C) {
	c.Check(GUID{}.String(), Equals, "00000000-0000-0000-0000-000000000000")
}

func (s *guidSuite) TestReadGUID(c *C) {
	r := bytes.NewReader(decodeHexString(c, "61dfe48bca93d211aa0d00e098032b8caaaaaaaaaaaaaa"))
	out, err := ReadGUID(r)
	c.Check(err, IsNil)
	c.Check(r.Len(), Equals, 7)
	c.Check(out, Equals, MakeGUID(0x8be4df61, 0x93ca, 0x11d2, 0xaa0d, [...]uint8{0x00, 0xe0, 0x98, 0x03, 0x2b, 0x8c}))
}

func (s *guidSuite) TestReadGUIDShort(c *C) {
	_, err := ReadGUID(bytes.NewReader(make([]byte, 8)))
	c.Check(err, Equals, io.ErrUnexpectedEOF)
}

func (s *guidSuite) TestGUIDFromBytes(c *C) {
	var b [16]byte
	copy(b[:], decodeHexString(c, "cbb219d73a3d9645a3bcdad00e67656f"))
	c.Check(GUIDFromBytes(b).String(), Equals, "d719b2cb-3d3a-4596-a3bc-dad00e67656f")
}

func (s *guidSuite) TestGUIDFromSlice(c *C) {
	g, err := GUIDFromSlice(decodeHexString(c, "61dfe48bca93d211aa0d00e098032b8c"))
	c.Check(err, IsNil)
	c.Check(g.String(), Equals, "8be4df61-93ca-11d2-aa0d-00e098032b8c")
}

func (s *guidSuite) TestGUIDFromSliceTooShort(c *C) {
	_, err := GUIDFromSlice(make([]byte, 15))
	c.Check(err, ErrorMatches, `source slice too short. Slice must have a size of 16`)
	c.Check(errors.Is(err, ErrGUIDTooShort), Equals, true)
	c.Check(errors.Is(err, ErrGUIDTooLong), Equals, false)

	var e *GUIDError
	c.Assert(errors.As(err, &e), Equals, true)
	c.Check(e.Kind, Equals, GUIDLengthTooShort)
	c.Check(e.Source, Equals, GUIDSourceSlice)
}

func (s *guidSuite) TestGUIDFromSliceTooLong(c *C) {
	_, err := GUIDFromSlice(make([]byte, 17))
	c.Check(err, ErrorMatches, `source slice too long. Slice must have a size of 16`)
	c.Check(errors.Is(err, ErrGUIDTooLong), Equals, true)
}

func (s *guidSuite) TestGUIDFromBuffer(c *C) {
	buf := bytes.NewBuffer(decodeHexString(c, "61dfe48bca93d211aa0d00e098032b8c"))
	g, err := GUIDFromBuffer(buf)
	c.Check(err, IsNil)
	c.Check(g.String(), Equals, "8be4df61-93ca-11d2-aa0d-00e098032b8c")
	c.Check(buf.Len(), Equals, 0)
}

func (s *guidSuite) TestGUIDFromBufferTooShort(c *C) {
	buf := bytes.NewBuffer(make([]byte, 8))
	_, err := GUIDFromBuffer(buf)
	c.Check(err, ErrorMatches, `source buffer too short. Buffer must have a size of 16`)
	c.Check(errors.Is(err, ErrGUIDTooShort), Equals, true)
	c.Check(buf.Len(), Equals, 8)
}

func (s *guidSuite) TestGUIDFromBufferTooLong(c *C) {
	buf := bytes.NewBuffer(make([]byte, 20))
	_, err := GUIDFromBuffer(buf)
	c.Check(err, ErrorMatches, `source buffer too long. Buffer must have a size of 16`)
	c.Check(errors.Is(err, ErrGUIDTooLong), Equals, true)
}

type testDecodeGUIDStringData struct {
	str      string
	expected GUID
}

func (s *guidSuite) testDecodeGUIDString(c *C, data *testDecodeGUIDStringData) {
	guid, err := DecodeGUIDString(data.str)
	c.Check(err, IsNil)
	c.Check(guid, Equals, data.expected)
	c.Check(guid.String(), Equals, data.str)
}

func (s *guidSuite) TestDecodeGUIDString1(c *C) {
	s.testDecodeGUIDString(c, &testDecodeGUIDStringData{
		str:      "8be4df61-93ca-11d2-aa0d-00e098032b8c",
		expected: MakeGUID(0x8be4df61, 0x93ca, 0x11d2, 0xaa0d, [...]uint8{0x00, 0xe0, 0x98, 0x03, 0x2b, 0x8c})})
}

func (s *guidSuite) TestDecodeGUIDString2(c *C) {
	s.testDecodeGUIDString(c, &testDecodeGUIDStringData{
		str:      "d719b2cb-3d3a-4596-a3bc-dad00e67656f",
		expected: MakeGUID(0xd719b2cb, 0x3d3a, 0x4596, 0xa3bc, [...]uint8{0xda, 0xd0, 0x0e, 0x67, 0x65, 0x6f})})
}

func (s *guidSuite) TestDecodeGUIDStringUpperCase(c *C) {
	guid, err := DecodeGUIDString("D719B2CB-3D3A-4596-A3BC-DAD00E67656F")
	c.Check(err, IsNil)
	c.Check(guid.String(), Equals, "d719b2cb-3d3a-4596-a3bc-dad00e67656f")
}

func (s *guidSuite) testDecodeGUIDStringInvalid(c *C, str string) {
	_, err := DecodeGUIDString(str)
	c.Check(err, ErrorMatches, `bad format. Correct format is xxxxxxxx-xxxx-xxxx-xxxx-xxxxxxxxxxxx`)
	c.Check(errors.Is(err, ErrGUIDBadFormat), Equals, true)
}

func (s *guidSuite) TestDecodeGUIDStringMissingHyphen(c *C) {
	s.testDecodeGUIDStringInvalid(c, "8be4df61-93ca-11d2-aa0d00e098032b8c")
}

func (s *guidSuite) TestDecodeGUIDStringBraces(c *C) {
	s.testDecodeGUIDStringInvalid(c, "{8be4df61-93ca-11d2-aa0d-00e098032b8c}")
}

func (s *guidSuite) TestDecodeGUIDStringMisplacedHyphen(c *C) {
	s.testDecodeGUIDStringInvalid(c, "8be4df6-193ca-11d2-aa0d-00e098032b8c")
}

func (s *guidSuite) TestDecodeGUIDStringBadDigit(c *C) {
	s.testDecodeGUIDStringInvalid(c, "8be4df61-93ca-11d2-aa0d-00e098032b8g")
}

func (s *guidSuite) TestDecodeGUIDStringEmpty(c *C) {
	s.testDecodeGUIDStringInvalid(c, "")
}

func (s *guidSuite) TestGUIDCompareEqual(c *C) {
	g := MakeGUID(0x8be4df61, 0x93ca, 0x11d2, 0xaa0d, [...]uint8{0x00, 0xe0, 0x98, 0x03, 0x2b, 0x8c})
	c.Check(g.Compare(g), Equals, 0)
}

func (s *guidSuite) TestGUIDCompareZeroAndMax(c *C) {
	max, err := DecodeGUIDString("ffffffff-ffff-ffff-ffff-ffffffffffff")
	c.Assert(err, IsNil)
	c.Check(GUID{}.Compare(max), Equals, -1)
	c.Check(max.Compare(GUID{}), Equals, 1)
}

func (s *guidSuite) TestGUIDCompareFieldsNumerically(c *C) {
	// The binary form of a is 00010000..., which sorts before b's
	// ff000000... bytewise.
	a := MakeGUID(0x100, 0, 0, 0, [6]uint8{})
	b := MakeGUID(0xff, 0, 0, 0, [6]uint8{})
	c.Check(a.Compare(b), Equals, 1)

	a = MakeGUID(0, 0x0100, 0, 0, [6]uint8{})
	b = MakeGUID(0, 0x00ff, 0xffff, 0, [6]uint8{})
	c.Check(a.Compare(b), Equals, 1)

	a = MakeGUID(0, 0, 0x0001, 0, [6]uint8{})
	b = MakeGUID(0, 0, 0x0002, 0, [6]uint8{})
	c.Check(a.Compare(b), Equals, -1)
}

func (s *guidSuite) TestGUIDCompareTailFromLastByte(c *C) {
	a, err := DecodeGUIDString("00000000-0000-0000-0100-000000000000")
	c.Assert(err, IsNil)
	b, err := DecodeGUIDString("00000000-0000-0000-0000-000000000001")
	c.Assert(err, IsNil)
	c.Check(a.Compare(b), Equals, -1)
	c.Check(b.Compare(a), Equals, 1)
}

func (s *guidSuite) TestGUIDCompareFirstTailByte(c *C) {
	a, err := DecodeGUIDString("00000000-0000-0000-0100-000000000000")
	c.Assert(err, IsNil)
	c.Check(a.Compare(GUID{}), Equals, 1)
	c.Check(GUID{}.Compare(a), Equals, -1)
}

func (s *guidSuite) TestGUIDMarshalJSON(c *C) {
	guids := []GUID{
		MakeGUID(0x8be4df61, 0x93ca, 0x11d2, 0xaa0d, [...]uint8{0x00, 0xe0, 0x98, 0x03, 0x2b, 0x8c}),
		{}}
	b, err := json.Marshal(guids)
	c.Check(err, IsNil)
	c.Check(string(b), Equals, `["8be4df61-93ca-11d2-aa0d-00e098032b8c","00000000-0000-0000-0000-000000000000"]`)

	var out []GUID
	c.Check(json.Unmarshal(b, &out), IsNil)
	c.Check(out, DeepEquals, guids)
}

func (s *guidSuite) TestGUIDUnmarshalJSONInvalid(c *C) {
	var g GUID
	err := json.Unmarshal([]byte(`"{8be4df61-93ca-11d2-aa0d-00e098032b8c}"`), &g)
	c.Check(errors.Is(err, ErrGUIDBadFormat), Equals, true)
}

func randomGUIDs(n int) []GUID {
	rng := rand.New(rand.NewSource(1))
	out := make([]GUID, n)
	for i := range out {
		rng.Read(out[i][:])
	}
	return out
}

func (s *guidSuite) TestGUIDTextRoundTrip(c *C) {
	for _, g := range randomGUIDs(500) {
		decoded, err := DecodeGUIDString(g.String())
		c.Assert(err, IsNil)
		c.Check(decoded, Equals, g)
	}
}

func (s *guidSuite) TestGUIDCompareIsTotalOrder(c *C) {
	guids := randomGUIDs(200)
	guids = append(guids, guids[0], GUID{})
	sort.Slice(guids, func(i, j int) bool { return guids[i].Compare(guids[j]) < 0 })

	c.Check(guids[0], Equals, GUID{})
	for i := 1; i < len(guids); i++ {
		a, b := guids[i-1], guids[i]
		c.Check(a.Compare(b) <= 0, Equals, true)
		c.Check(b.Compare(a) >= 0, Equals, true)
		c.Check(a.Compare(b) == 0, Equals, a == b)
	}
}
