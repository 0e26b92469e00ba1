package main

import (
	"flag"
	"os"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/config"
	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/content/status"
)

func runUnread(config config.Config, args []string) error {
	log := initLog(config.Log)

	service, err := initService(config, log)
	if err != nil {
		return err
	}
	defer service.Close()

	feeds, err := service.FeedRepo().All()
	if err != nil {
		return errors.WithMessage(err, "getting feeds")
	}

	ids := make([]content.FeedID, len(feeds))
	for i := range feeds {
		ids[i] = feeds[i].ID
	}

	statuses := status.NewManager(service.StatusRepo(), config.Status, log)
	counts, err := statuses.UnreadCounts(ids)
	if err != nil {
		return err
	}

	total, err := statuses.TotalUnreadCount()
	if err != nil {
		return err
	}

	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Feed", "Unread", "Error"})
	table.SetFooter([]string{"Total", strconv.FormatInt(total, 10), ""})

	for _, f := range feeds {
		title := f.Title
		if title == "" {
			title = f.Link
		}

		table.Append([]string{title, strconv.FormatInt(counts[f.ID], 10), f.UpdateError})
	}

	table.Render()

	return nil
}

func init() {
	commands = append(commands, Command{
		Name:  "unread",
		Desc:  "shows the unread counts of every feed",
		Flags: flag.NewFlagSet("unread", flag.ExitOnError),
		Run:   runUnread,
	})
}
