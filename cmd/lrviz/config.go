package main

import (
	"github.com/BurntSushi/toml"
)

// config holds flag defaults loadable from a TOML file, mirroring the
// TQW format's load-then-override-with-flags precedence (internal/tqw).
// A config value is used only where the flag still holds its pflag default,
// so a flag given on the command line with its default value does not
// override the config.
type config struct {
	Grammar   string `toml:"grammar"`
	ShowTable bool   `toml:"show_table"`
	Width     int    `toml:"width"`
}

// loadConfig reads path as TOML, or returns a zero-value config if path is
// empty.
func loadConfig(path string) (config, error) {
	var cfg config
	if path == "" {
		return cfg, nil
	}
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}

// applyDefaults fills in any flag the user left at its pflag default with
// this config's value: an unset grammar path, show-table still off, or a
// width still at its default of 100.
func (c config) applyDefaults() {
	if *flagGrammar == "" && c.Grammar != "" {
		*flagGrammar = c.Grammar
	}
	if !*flagShowTable && c.ShowTable {
		*flagShowTable = true
	}
	if *flagWidth == 100 && c.Width != 0 {
		*flagWidth = c.Width
	}
}
