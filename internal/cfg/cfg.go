// Copyright 2021 Canonical Ltd.
// Licensed under the LGPLv3 with static-linking exception.
// See LICENCE file for details.

// Package cfg loads the configuration of the efivar tool.
package cfg

import (
	"os"

	"github.com/go-ini/ini"
	"golang.org/x/xerrors"
)

// DefaultConfigPath is the system configuration file. It is optional, and
// is loaded with Load.
const DefaultConfigPath = "/etc/efivar.conf"

const defaultConfig = `
[paths]
efivarfs = /sys/firmware/efi/efivars
legacy = /sys/firmware/efi/vars
platform_size = /sys/firmware/efi/fw_platform_size

[guids]
list =
`

// Config is the tool's configuration.
type Config struct {
	Paths *Paths `ini:"paths"`
	GUIDs *GUIDs `ini:"guids"`
}

// Paths contains the locations of the kernel interfaces.
type Paths struct {
	Efivarfs     string `ini:"efivarfs"`
	Legacy       string `ini:"legacy"`
	PlatformSize string `ini:"platform_size"`
}

// GUIDs configures the well-known GUID list. An empty List selects the
// built-in list.
type GUIDs struct {
	List string `ini:"list"`
}

// dataSources returns the sources to load, in increasing order of
// precedence.
var dataSources = func(paths []string) []interface{} {
	res := []interface{}{[]byte(defaultConfig)}
	for _, p := range paths {
		res = append(res, p)
	}
	return res
}

// Load returns the built-in defaults overlaid with the supplied
// configuration files. Files that don't exist are ignored.
func Load(paths ...string) (*Config, error) {
	opts := ini.LoadOptions{
		Loose:       true,
		Insensitive: true,
	}

	sources := dataSources(paths)
	f, err := ini.LoadSources(opts, sources[0], sources[1:]...)
	if err != nil {
		return nil, xerrors.Errorf("cannot load configuration: %w", err)
	}

	config := &Config{Paths: new(Paths), GUIDs: new(GUIDs)}
	if err := f.MapTo(config); err != nil {
		return nil, xerrors.Errorf("cannot map configuration: %w", err)
	}

	return config, nil
}

// LoadFile is like Load for a single file, except that the file must exist.
func LoadFile(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, xerrors.Errorf("cannot load configuration: %w", err)
	}
	return Load(path)
}
