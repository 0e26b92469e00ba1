package main

import (
	"context"
	"flag"
	"fmt"

	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/config"
	"github.com/urandom/feedkeeper/content/status"
	"github.com/urandom/feedkeeper/download"
	"github.com/urandom/feedkeeper/feed"
	"github.com/urandom/feedkeeper/parser/processor"
)

func runRefresh(config config.Config, args []string) error {
	log := initLog(config.Log)

	service, err := initService(config, log)
	if err != nil {
		return err
	}
	defer service.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	statuses := status.NewManager(service.StatusRepo(), config.Status, log)
	refresher := feed.NewRefresher(
		ctx, service, statuses, download.NewClient(config.Timeout), config.Download, log,
		processor.NewCleanup(log), processor.NewAbsoluteURL(log),
	)

	result, err := refresher.Refresh(ctx)
	if err != nil {
		return errors.WithMessage(err, "refreshing feeds")
	}

	fmt.Printf("Refreshed %d feeds in %s: %d updated, %d not modified, %d failed, %d articles\n",
		result.Feeds, result.Duration, result.Updated, result.NotModified, result.Failed, result.Articles)

	return nil
}

func init() {
	commands = append(commands, Command{
		Name:  "refresh",
		Desc:  "refreshes every feed once",
		Flags: flag.NewFlagSet("refresh", flag.ExitOnError),
		Run:   runRefresh,
	})
}
