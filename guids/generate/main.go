// Copyright 2024 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package main

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"sort"

	efi "github.com/canonical/go-efivar"
)

type entry struct {
	GUID        efi.GUID `json:"guid"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
}

func run() error {
	if len(os.Args) != 3 {
		return fmt.Errorf("usage: %s <src> <out>", os.Args[0])
	}

	src := os.Args[1]
	out := os.Args[2]

	r, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("cannot open source csv file: %w", err)
	}
	defer r.Close()

	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = 3
	records, err := csvReader.ReadAll()
	if err != nil {
		return fmt.Errorf("cannot decode csv: %w", err)
	}

	var entries []entry
	names := make(map[string]struct{})
	for i, record := range records {
		guid, err := efi.DecodeGUIDString(record[0])
		if err != nil {
			return fmt.Errorf("cannot decode GUID at record %d: %w", i, err)
		}
		if _, exists := names[record[1]]; exists {
			return fmt.Errorf("duplicate name %q at record %d", record[1], i)
		}
		names[record[1]] = struct{}{}
		entries = append(entries, entry{GUID: guid, Name: record[1], Description: record[2]})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].GUID.Compare(entries[j].GUID) < 0 })

	data, err := json.MarshalIndent(entries, "", "\t")
	if err != nil {
		return fmt.Errorf("cannot encode list: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(out, data, 0644); err != nil {
		return fmt.Errorf("cannot write output file: %w", err)
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
