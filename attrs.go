// Copyright 2020 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package efi

import (
	"fmt"
	"strings"
)

// VariableAttributes is a set of EFI variable attribute flags.
type VariableAttributes uint32

const (
	AttributeNonVolatile                       VariableAttributes = 1 << 0
	AttributeBootserviceAccess                 VariableAttributes = 1 << 1
	AttributeRuntimeAccess                     VariableAttributes = 1 << 2
	AttributeHardwareErrorRecord               VariableAttributes = 1 << 3
	AttributeAuthenticatedWriteAccess          VariableAttributes = 1 << 4
	AttributeTimeBasedAuthenticatedWriteAccess VariableAttributes = 1 << 5
	AttributeAppendWrite                       VariableAttributes = 1 << 6
	AttributeEnhancedAuthenticatedAccess       VariableAttributes = 1 << 7

	// AttributesMask contains every attribute defined by this package.
	AttributesMask VariableAttributes = 0xff
)

// attributeNames is ordered by ascending flag value.
var attributeNames = []struct {
	attr VariableAttributes
	name string
}{
	{AttributeNonVolatile, "Non-Volatile"},
	{AttributeBootserviceAccess, "Boot Service Access"},
	{AttributeRuntimeAccess, "Runtime Service Access"},
	{AttributeHardwareErrorRecord, "Hardware Error Record"},
	{AttributeAuthenticatedWriteAccess, "Authenticated Write Access"},
	{AttributeTimeBasedAuthenticatedWriteAccess, "Time-Based Authenticated Write Access"},
	{AttributeAppendWrite, "Append Write"},
	{AttributeEnhancedAuthenticatedAccess, "Enhanced Authenticated Access"},
}

// DecodeAttributes returns the set of attributes encoded in the supplied
// attribute word. Bits that don't correspond to a known attribute are
// discarded.
func DecodeAttributes(word uint32) VariableAttributes {
	return VariableAttributes(word) & AttributesMask
}

// List returns the individual attributes in this set, ordered by ascending
// value.
func (a VariableAttributes) List() (out []VariableAttributes) {
	for _, n := range attributeNames {
		if a&n.attr != 0 {
			out = append(out, n.attr)
		}
	}
	return out
}

// Name returns the display name of a single attribute, or an empty string
// if a is not exactly one known attribute.
func (a VariableAttributes) Name() string {
	for _, n := range attributeNames {
		if a == n.attr {
			return n.name
		}
	}
	return ""
}

func (a VariableAttributes) String() string {
	if a == 0 {
		return "0"
	}

	var names []string
	for _, attr := range a.List() {
		names = append(names, attr.Name())
	}
	if rest := a &^ AttributesMask; rest != 0 {
		names = append(names, fmt.Sprintf("%#x", uint32(rest)))
	}
	return strings.Join(names, "|")
}
