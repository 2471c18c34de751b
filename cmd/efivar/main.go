// Copyright 2022 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/jessevdk/go-flags"
	"github.com/olekukonko/tablewriter"

	efi "github.com/canonical/go-efivar"
	"github.com/canonical/go-efivar/display"
	"github.com/canonical/go-efivar/guids"
	"github.com/canonical/go-efivar/internal/cfg"
)

type options struct {
	List         bool   `long:"list" short:"l" description:"List current variables"`
	Print        bool   `long:"print" short:"p" description:"Print the variable specified by --name"`
	PrintDecimal bool   `long:"print-decimal" short:"d" description:"Print the value of the variable specified by --name in decimal"`
	Name         string `long:"name" short:"n" description:"Variable to read, in the form <guid>-<name>"`
	ListGUIDs    bool   `long:"list-guids" short:"L" description:"Show the list of well known GUIDs"`
	GUIDsList    string `long:"guids-list" description:"Use the GUID list from the specified JSON file"`
	Config       string `long:"config" short:"c" description:"Read configuration from the specified file instead of /etc/efivar.conf"`
	Verbose      bool   `long:"verbose" short:"v" description:"Annotate GUIDs with their well known names"`

	Write    bool   `long:"write" short:"w" description:"Write to the variable specified by --name (not supported)"`
	Append   bool   `long:"append" short:"a" description:"Append to the variable specified by --name (not supported)"`
	Import   string `long:"import" short:"i" description:"Import a variable from a file (not supported)"`
	Export   string `long:"export" short:"e" description:"Export a variable to a file (not supported)"`
	Datafile string `long:"datafile" short:"f" description:"Load the variable value from a file (not supported)"`
}

func (o *options) unsupported() string {
	switch {
	case o.Write:
		return "--write"
	case o.Append:
		return "--append"
	case o.Import != "":
		return "--import"
	case o.Export != "":
		return "--export"
	case o.Datafile != "":
		return "--datafile"
	}
	return ""
}

var errNoAction = errors.New("no action specified, see --help")

func loadConfig(opts *options) (*cfg.Config, error) {
	if opts.Config == "" {
		return cfg.Load(cfg.DefaultConfigPath)
	}
	return cfg.LoadFile(opts.Config)
}

func loadGUIDs(opts *options, config *cfg.Config) (*guids.List, error) {
	path := opts.GUIDsList
	if path == "" {
		path = config.GUIDs.List
	}
	if path == "" {
		return guids.Default()
	}

	l, err := guids.LoadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot load GUID list: %w", err)
	}
	return l, nil
}

func newStore(config *cfg.Config) (*efi.Store, error) {
	return efi.NewStore(efi.StoreOptions{
		EfivarfsPath:     config.Paths.Efivarfs,
		LegacyVarsPath:   config.Paths.Legacy,
		PlatformSizePath: config.Paths.PlatformSize})
}

func listGUIDs(w io.Writer, l *guids.List) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"GUID", "Name", "Description"})
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetBorder(false)

	for _, e := range l.Entries(guids.SortByGUID) {
		table.Append([]string{e.GUID.String(), e.Name, e.Description})
	}
	table.Render()
}

func listVariables(w io.Writer, store *efi.Store) error {
	names, err := store.ListNames()
	if err != nil {
		return fmt.Errorf("cannot list variables: %w", err)
	}
	for _, name := range names {
		fmt.Fprintln(w, name)
	}
	return nil
}

func printVariable(w io.Writer, store *efi.Store, opts *options, l *guids.List) error {
	if opts.Name == "" {
		return errors.New("--name is required to print a variable")
	}

	v, err := store.Get(opts.Name)
	if err != nil {
		return fmt.Errorf("cannot read variable %s: %w", opts.Name, err)
	}

	if opts.PrintDecimal {
		err = display.Decimal(w, v)
	} else {
		var label string
		if e, ok := l.LookupGUID(v.GUID); ok && opts.Verbose {
			label = e.Name
		}
		err = display.VerboseWithLabel(w, v, label)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w)
	return err
}

func run(args []string, stdout io.Writer) error {
	var opts options
	if _, err := flags.ParseArgs(&opts, args); err != nil {
		return err
	}

	if flag := opts.unsupported(); flag != "" {
		return fmt.Errorf("%s: not supported", flag)
	}
	if !opts.List && !opts.Print && !opts.PrintDecimal && !opts.ListGUIDs {
		return errNoAction
	}

	config, err := loadConfig(&opts)
	if err != nil {
		return err
	}

	l, err := loadGUIDs(&opts, config)
	if err != nil {
		return err
	}

	if opts.ListGUIDs {
		listGUIDs(stdout, l)
	}

	if !opts.List && !opts.Print && !opts.PrintDecimal {
		return nil
	}

	store, err := newStore(config)
	if err != nil {
		return err
	}

	if opts.List {
		if err := listVariables(stdout, store); err != nil {
			return err
		}
	}

	if opts.Print || opts.PrintDecimal {
		return printVariable(stdout, store, &opts, l)
	}

	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		switch e := err.(type) {
		case *flags.Error:
			// flags already prints this
			if e.Type != flags.ErrHelp {
				os.Exit(1)
			}
		default:
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
}
