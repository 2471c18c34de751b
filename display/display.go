// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

// Package display renders EFI variables as text.
package display

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	efi "github.com/canonical/go-efivar"
)

const bytesPerLine = 16

func isPrintable(b byte) bool {
	return b >= 0x20 && b < 0x7f
}

func writeHexLine(sb *strings.Builder, offset int, line []byte) {
	fmt.Fprintf(sb, "%08x  ", offset)

	var decoded [bytesPerLine]byte
	for i := 0; i < bytesPerLine; i++ {
		if i >= len(line) {
			decoded[i] = ' '
			sb.WriteString("   ")
			continue
		}

		b := line[i]
		decoded[i] = '.'
		if isPrintable(b) {
			decoded[i] = b
		}
		if i < bytesPerLine/2 {
			fmt.Fprintf(sb, "%02x ", b)
		} else {
			fmt.Fprintf(sb, " %02x", b)
		}
	}

	fmt.Fprintf(sb, "  |%s|\n", decoded[:])
}

// Verbose writes the identity and attributes of the supplied variable to w,
// followed by a hex dump of its value. The final line is the length of the
// value, with no trailing newline.
func Verbose(w io.Writer, v *efi.Variable) error {
	return VerboseWithLabel(w, v, "")
}

// VerboseWithLabel is like Verbose, but annotates the GUID with the
// supplied label if it isn't empty.
func VerboseWithLabel(w io.Writer, v *efi.Variable, label string) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "GUID: %s", v.GUID)
	if label != "" {
		fmt.Fprintf(&sb, " (%s)", label)
	}
	fmt.Fprintf(&sb, "\nName: \"%s\"\n", v.Name)

	sb.WriteString("Attributes:\n")
	for _, attr := range v.Attributes.List() {
		fmt.Fprintf(&sb, "\t%s\n", attr.Name())
	}

	sb.WriteString("Value:\n")
	for i := 0; i < len(v.Data); i += bytesPerLine {
		end := i + bytesPerLine
		if end > len(v.Data) {
			end = len(v.Data)
		}
		writeHexLine(&sb, i, v.Data[i:end])
	}
	fmt.Fprintf(&sb, "%08x", len(v.Data))

	_, err := io.WriteString(w, sb.String())
	return err
}

// Decimal writes the value of the supplied variable to w as decimal
// numbers. Each group of 16 bytes is split into two halves of 8, and both
// groups and halves are separated by two spaces.
func Decimal(w io.Writer, v *efi.Variable) error {
	var sb strings.Builder

	for i, b := range v.Data {
		switch {
		case i == 0:
		case i%(bytesPerLine/2) == 0:
			sb.WriteString("  ")
		default:
			sb.WriteString(" ")
		}
		sb.WriteString(strconv.Itoa(int(b)))
	}

	_, err := io.WriteString(w, sb.String())
	return err
}
