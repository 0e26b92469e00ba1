package sql

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/log"
)

var logger = log.WithStd(os.Stderr, "testing", 0)

// newService opens a service against a fresh database. The postgres driver
// is used when FEEDKEEPER_POSTGRES holds a connection string.
func newService(t *testing.T) Service {
	t.Helper()

	driver, source := "sqlite", "file:"+filepath.Join(t.TempDir(), "content.sqlite3")
	if pg := os.Getenv("FEEDKEEPER_POSTGRES"); pg != "" {
		driver, source = "postgres", pg
	}

	s, err := NewService(driver, source, logger)
	if err != nil {
		t.Fatalf("NewService() error = %+v", err)
	}

	if driver == "postgres" {
		for _, table := range []string{"statuses", "articles", "feeds"} {
			s.db.MustExec("TRUNCATE " + table + " CASCADE")
		}
	}

	t.Cleanup(func() { s.Close() })

	return s
}

func createFeed(t *testing.T, s Service, link string) content.Feed {
	t.Helper()

	feed := content.NewFeed(link, "Feed "+link)
	if err := s.FeedRepo().Create(&feed); err != nil {
		t.Fatalf("feedRepo.Create() error = %+v", err)
	}

	return feed
}

func records(feedID content.FeedID, count int, arrived time.Time) []content.StatusRecord {
	recs := make([]content.StatusRecord, count)
	for i := range recs {
		recs[i] = content.StatusRecord{
			ArticleID:   content.NewArticleID(feedID, fmt.Sprintf("guid-%d", i)),
			FeedID:      feedID,
			DateArrived: arrived,
		}
	}

	return recs
}

func ids(recs []content.StatusRecord) []content.ArticleID {
	ret := make([]content.ArticleID, len(recs))
	for i := range recs {
		ret[i] = recs[i].ArticleID
	}

	return ret
}
