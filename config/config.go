package config

import (
	"os"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Config is the feedkeeper configuration
type Config struct {
	Server   Server   `toml:"server"`
	Log      Log      `toml:"log"`
	Timeout  Timeout  `toml:"timeout"`
	DB       DB       `toml:"db"`
	Download Download `toml:"download"`
	Finder   Finder   `toml:"finder"`
	Refresh  Refresh  `toml:"refresh"`
	Status   Status   `toml:"status"`
}

// Read loads the config data from the given path, on top of the defaults.
// An empty path returns the defaults.
func Read(path string) (Config, error) {
	c, err := defaultConfig()

	if err != nil {
		return Config{}, errors.WithMessage(err, "initializing default config")
	}

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "reading config from %s", path)
		}

		if err = toml.Unmarshal(b, &c); err != nil {
			return Config{}, errors.Wrapf(err, "unmarshaling toml config from %s", path)
		}
	}

	for _, c := range []converter{&c.Log, &c.Timeout, &c.Finder, &c.Refresh, &c.Status} {
		c.Convert()
	}

	return c, nil
}
