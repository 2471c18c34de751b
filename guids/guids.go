// Copyright 2024 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.
//go:generate go run ./generate guids.csv guids.json

// Package guids provides a way to map well known vendor GUIDs to readable
// names.
package guids

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"golang.org/x/xerrors"

	efi "github.com/canonical/go-efivar"
)

//go:embed guids.json
var defaultList []byte

// ZeroName is the name of the entry for the all-zero GUID, which is present
// in every List.
const ZeroName = "zero"

// Entry associates a GUID with a short name and a description.
type Entry struct {
	GUID        efi.GUID
	Name        string
	Description string
}

func (e Entry) String() string {
	return fmt.Sprintf("{%s}\t{%s}\t%s", e.GUID, e.Name, e.Description)
}

type jsonEntry struct {
	GUID        *string `json:"guid"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (e *jsonEntry) decode() (Entry, error) {
	switch {
	case e.GUID == nil:
		return Entry{}, xerrors.New("guid missing")
	case e.Name == nil:
		return Entry{}, xerrors.New("name missing")
	case e.Description == nil:
		return Entry{}, xerrors.New("description missing")
	}

	guid, err := efi.DecodeGUIDString(*e.GUID)
	if err != nil {
		return Entry{}, xerrors.Errorf("invalid guid %q: %w", *e.GUID, err)
	}

	return Entry{GUID: guid, Name: *e.Name, Description: *e.Description}, nil
}

// List is a set of GUID entries, indexed by name. A later entry replaces
// an earlier one with the same name.
type List struct {
	names   []string
	entries map[string]Entry
}

func newList() *List {
	return &List{entries: make(map[string]Entry)}
}

func (l *List) add(e Entry) {
	if _, exists := l.entries[e.Name]; !exists {
		l.names = append(l.names, e.Name)
	}
	l.entries[e.Name] = e
}

// Load decodes a list from a JSON array of objects with "guid", "name" and
// "description" keys. All three keys are required and other keys are
// ignored. The entry for the all-zero GUID is always added.
func Load(r io.Reader) (*List, error) {
	var raw []jsonEntry
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, xerrors.Errorf("cannot decode list: %w", err)
	}

	l := newList()
	for i, je := range raw {
		e, err := je.decode()
		if err != nil {
			return nil, xerrors.Errorf("cannot decode entry %d: %w", i, err)
		}
		l.add(e)
	}
	l.add(Entry{Name: ZeroName, Description: "zeroed sentinel guid"})

	return l, nil
}

// LoadFile loads a list from the JSON file at path.
func LoadFile(path string) (*List, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Default returns the built-in list of well known GUIDs.
func Default() (*List, error) {
	return Load(bytes.NewReader(defaultList))
}

// Len returns the number of entries in this list.
func (l *List) Len() int {
	return len(l.names)
}

// Lookup returns the entry with the supplied name.
func (l *List) Lookup(name string) (Entry, bool) {
	e, ok := l.entries[name]
	return e, ok
}

// LookupGUID returns the entry for the supplied GUID. If more than one
// entry has this GUID, the one with the lowest name is returned.
func (l *List) LookupGUID(guid efi.GUID) (Entry, bool) {
	var (
		found Entry
		ok    bool
	)
	for _, e := range l.entries {
		if e.GUID != guid {
			continue
		}
		if !ok || e.Name < found.Name {
			found = e
			ok = true
		}
	}
	return found, ok
}

// SortBy specifies the order of the entries returned from [List.Entries].
type SortBy int

const (
	SortByNone SortBy = iota // the order in which entries were loaded
	SortByGUID
	SortByName
)

// Entries returns every entry in this list in the specified order.
func (l *List) Entries(by SortBy) []Entry {
	out := make([]Entry, 0, len(l.names))
	for _, name := range l.names {
		out = append(out, l.entries[name])
	}

	switch by {
	case SortByGUID:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].GUID.Compare(out[j].GUID) < 0
		})
	case SortByName:
		sort.Slice(out, func(i, j int) bool {
			return out[i].Name < out[j].Name
		})
	}

	return out
}
