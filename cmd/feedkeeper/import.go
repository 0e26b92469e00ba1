package main

import (
	"context"
	"flag"
	"os"

	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/config"
	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/download"
	"github.com/urandom/feedkeeper/feed"
	"github.com/urandom/feedkeeper/parser"
)

var (
	importDiscover bool
)

func runImport(config config.Config, args []string) error {
	if len(args) != 1 {
		return errors.New("expected a single opml file argument")
	}

	b, err := os.ReadFile(args[0])
	if err != nil {
		return errors.Wrapf(err, "reading %s", args[0])
	}

	opml, err := parser.ParseOpml(b)
	if err != nil {
		return errors.WithMessagef(err, "parsing %s", args[0])
	}

	log := initLog(config.Log)

	service, err := initService(config, log)
	if err != nil {
		return err
	}
	defer service.Close()

	client := download.NewClient(config.Timeout)
	finder := feed.NewFinder(feed.NewDownloader(client, config.Finder, config.Download, log), client, config.Download, log)

	existing, err := service.FeedRepo().All()
	if err != nil {
		return errors.WithMessage(err, "getting feeds")
	}

	known := map[content.FeedID]bool{}
	for _, f := range existing {
		known[f.ID] = true
	}

	added := 0
	for _, o := range opml.Feeds {
		link, title := o.URL, o.Title

		if importDiscover {
			best, err := finder.FindBest(context.Background(), o.URL)
			if err != nil {
				log.Printf("Skipping %s: %+v", o.URL, err)
				continue
			}

			link = best.URL
			if title == "" {
				title = best.Title
			}
		}

		f := content.NewFeed(link, title)
		if known[f.ID] {
			continue
		}

		if err := service.FeedRepo().Create(&f); err != nil {
			log.Printf("Error adding %s: %+v", link, err)
			continue
		}

		known[f.ID] = true
		added++
	}

	log.Infof("Imported %d of %d feeds", added, len(opml.Feeds))

	return nil
}

func init() {
	flags := flag.NewFlagSet("import", flag.ExitOnError)
	flags.BoolVar(&importDiscover, "discover", false, "verify every url through feed discovery before adding it")

	commands = append(commands, Command{
		Name:  "import",
		Desc:  "adds the feeds of an opml file",
		Flags: flags,
		Run:   runImport,
	})
}
