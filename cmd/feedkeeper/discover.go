package main

import (
	"context"
	"flag"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/config"
	"github.com/urandom/feedkeeper/download"
	"github.com/urandom/feedkeeper/feed"
)

func runDiscover(config config.Config, args []string) error {
	if len(args) != 1 {
		return errors.New("expected a single url argument")
	}

	log := initLog(config.Log)
	client := download.NewClient(config.Timeout)
	downloader := feed.NewDownloader(client, config.Finder, config.Download, log)
	finder := feed.NewFinder(downloader, client, config.Download, log)

	candidates, err := finder.Find(context.Background(), args[0])
	if err != nil {
		return errors.WithMessagef(err, "discovering feeds of %s", args[0])
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Score", "Source", "Title", "URL"})

	for _, c := range candidates.Sorted() {
		table.Append([]string{strconv.Itoa(c.Score()), c.Source.String(), c.Title, c.URL})
	}

	table.Render()

	return nil
}

func init() {
	commands = append(commands, Command{
		Name:  "discover",
		Desc:  "lists the feeds found for a site url",
		Flags: flag.NewFlagSet("discover", flag.ExitOnError),
		Run:   runDiscover,
	})
}
