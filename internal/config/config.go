// Package config loads the simulator's run-time configuration from an
// optional TOML file.
package config

import (
	"github.com/BurntSushi/toml"
)

// Config holds the knobs the CLI exposes beyond the fixed machine
// architecture (register count, memory map, and instruction set are
// part of the core and are not configurable).
type Config struct {
	// Trace enables per-cycle instruction tracing to stderr.
	Trace bool `toml:"trace"`

	// Program, if set, is a path to a program image to load instead of
	// the built-in boot demo: a text listing if the path ends in .lst,
	// a raw little-endian binary otherwise.
	Program string `toml:"program"`

	// MaxCycles caps how many FSM states the run command will advance before
	// giving up, as a safety net against runaway programs. Zero means
	// unlimited.
	MaxCycles int `toml:"max_cycles"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{MaxCycles: 0}
}

// Load reads and decodes a TOML configuration file, starting from
// Default so that fields the file omits keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()
	_, err := toml.DecodeFile(path, &cfg)
	return cfg, err
}
