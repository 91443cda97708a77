package main

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"asciisketch/render"

	"github.com/mitchellh/go-homedir"
	"github.com/pelletier/go-toml/v2"
)

const (
	defaultConfigPath = "~/.asciisketch.toml"
	defaultMaxCells   = 4_000_000
)

// Config holds the settings read from the configuration file.
type Config struct {
	GridCellSize int    `toml:"grid_cell_size"`
	Format       string `toml:"format"`
	Output       string `toml:"output"`
	Clipboard    bool   `toml:"clipboard"`
	MaxCells     int    `toml:"max_cells"`
}

// DefaultConfig returns the settings used when no configuration file exists.
func DefaultConfig() Config {
	return Config{
		GridCellSize: render.DefaultGridCellSize,
		Format:       "ascii",
		MaxCells:     defaultMaxCells,
	}
}

// LoadConfig reads the TOML file at path over the defaults. A missing file
// yields the defaults unless the path was given explicitly. Unknown keys
// are rejected.
func LoadConfig(path string, explicit bool) (Config, error) {
	cfg := DefaultConfig()

	resolved, err := homedir.Expand(path)
	if err != nil {
		return cfg, fmt.Errorf("resolving config path: %w", err)
	}

	data, err := os.ReadFile(resolved)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return cfg, fmt.Errorf("parsing config %s: %s", path, strict.String())
		}
		return cfg, fmt.Errorf("parsing config %s: %w", path, err)
	}

	switch {
	case cfg.GridCellSize == 0:
		cfg.GridCellSize = render.DefaultGridCellSize
	case cfg.GridCellSize < 0:
		cfg.GridCellSize = render.ClampCellSize(cfg.GridCellSize)
	}
	if cfg.Format == "" {
		cfg.Format = "ascii"
	}
	return cfg, nil
}
