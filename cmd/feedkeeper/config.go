package main

import (
	"flag"
	"os"

	toml "github.com/pelletier/go-toml"
	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/config"
)

func runConfig(config config.Config, args []string) error {
	b, err := toml.Marshal(config)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	if _, err := os.Stdout.Write(b); err != nil {
		return errors.Wrap(err, "writing config")
	}

	return nil
}

func init() {
	commands = append(commands, Command{
		Name:  "config",
		Desc:  "prints the effective configuration",
		Flags: flag.NewFlagSet("config", flag.ExitOnError),
		Run:   runConfig,
	})
}
