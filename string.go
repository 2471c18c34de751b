// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package efi

import (
	"fmt"
	"unicode/utf16"
	"unicode/utf8"
)

// ConvertUTF8ToUTF16 converts the supplied UTF-8 string to a
// UTF-16 string.
func ConvertUTF8ToUTF16(in string) []uint16 {
	var unicodeStr []rune
	for len(in) > 0 {
		r, sz := utf8.DecodeRuneInString(in)
		unicodeStr = append(unicodeStr, r)
		in = in[sz:]
	}
	return utf16.Encode(unicodeStr)
}

// DecodeUTF16 converts the supplied UTF-16 string to a UTF-8 string,
// returning an error if it contains an unpaired surrogate. Embedded
// NULLs are preserved.
func DecodeUTF16(in []uint16) (string, error) {
	for i := 0; i < len(in); i++ {
		switch {
		case utf16.IsSurrogate(rune(in[i])) && in[i] < 0xdc00:
			if i+1 >= len(in) || in[i+1] < 0xdc00 || in[i+1] > 0xdfff {
				return "", fmt.Errorf("unpaired high surrogate %#04x at index %d", in[i], i)
			}
			i++
		case utf16.IsSurrogate(rune(in[i])):
			return "", fmt.Errorf("unpaired low surrogate %#04x at index %d", in[i], i)
		}
	}
	return string(utf16.Decode(in)), nil
}

// trimTrailingNulls removes trailing zero code units.
func trimTrailingNulls(in []uint16) []uint16 {
	for len(in) > 0 && in[len(in)-1] == 0 {
		in = in[:len(in)-1]
	}
	return in
}
