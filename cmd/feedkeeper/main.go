package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/config"
	"github.com/urandom/feedkeeper/content/repo"
	"github.com/urandom/feedkeeper/content/repo/kv"
	"github.com/urandom/feedkeeper/content/repo/logging"
	"github.com/urandom/feedkeeper/content/repo/sql"
	flog "github.com/urandom/feedkeeper/log"
)

// Command describes a subcommand
type Command struct {
	Name  string
	Desc  string
	Flags *flag.FlagSet
	Run   func(config.Config, []string) error
}

var (
	configPath = flag.String("config", "", "feedkeeper config path, defaults are used when empty")
	commands   = []Command{}
)

func main() {
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()

	if len(args) > 0 {
		for _, cmd := range commands {
			if cmd.Name == args[0] {
				cmd.Flags.Parse(args[1:])

				config, err := config.Read(*configPath)
				if err != nil {
					log.Fatalf("Error reading config %s: %+v", *configPath, err)
				}

				if err := cmd.Run(config, cmd.Flags.Args()); err != nil {
					log.Fatalf("Error running %s: %+v", cmd.Name, err)
				}

				os.Exit(0)
			}
		}
	}

	usage()
	os.Exit(2)
}

func usage() {
	fmt.Fprintf(os.Stderr, `%s discovers, refreshes and tracks the
	read state of web feeds.

Usage:

	feedkeeper [flags] command [arguments]

The following flags are available:

`, os.Args[0])
	flag.PrintDefaults()

	fmt.Fprint(os.Stderr, "\nThe commands are: \n\n")

	nameLen := 0
	for _, cmd := range commands {
		if len(cmd.Name) > nameLen {
			nameLen = len(cmd.Name)
		}
	}

	for _, cmd := range commands {
		format := fmt.Sprintf("  %%%ds  %%s\n", nameLen)
		fmt.Fprintf(os.Stderr, format, cmd.Name, cmd.Desc)
	}

	fmt.Fprint(os.Stderr, "\n")
}

func initLog(config config.Log) flog.Log {
	return flog.WithLogrus(config)
}

// initService opens the content storage selected by the db driver.
func initService(config config.Config, log flog.Log) (repo.Service, error) {
	var service repo.Service

	switch config.DB.Driver {
	case "bolt":
		s, err := kv.NewService(config.DB.Connect, log)
		if err != nil {
			return nil, errors.WithMessage(err, "creating bolt content service")
		}
		service = s
	default:
		s, err := sql.NewService(config.DB.Driver, config.DB.Connect, log)
		if err != nil {
			return nil, errors.WithMessage(err, "creating sql content service")
		}
		service = s
	}

	if config.Log.RepoCallDuration {
		service = logging.NewService(service, log)
	}

	return service, nil
}
