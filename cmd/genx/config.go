package main

import (
	"github.com/BurntSushi/toml"

	"github.com/ezrec/genx/problem"
)

// RunConfig is the TOML run configuration. Command line flags override it.
type RunConfig struct {
	Problem        string            `toml:"problem"`
	Script         string            `toml:"script"`
	Scripts        string            `toml:"scripts"`
	Seed           uint64            `toml:"seed"`
	Store          string            `toml:"store"`
	DBPath         string            `toml:"db_path"`
	Metrics        string            `toml:"metrics"`
	Dump           int               `toml:"dump"`
	Verbose        bool              `toml:"verbose"`
	MaxGenerations int               `toml:"max_generations"`
	Options        problem.Overrides `toml:"options"`
}

// LoadConfig reads a run configuration file.
func LoadConfig(path string) (cfg RunConfig, err error) {
	_, err = toml.DecodeFile(path, &cfg)
	return
}

// ParseConfig decodes a run configuration.
func ParseConfig(text string) (cfg RunConfig, err error) {
	_, err = toml.Decode(text, &cfg)
	return
}
