package sql

import (
	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/content/repo"
	"github.com/urandom/feedkeeper/content/repo/sql/db"
	_ "github.com/urandom/feedkeeper/content/repo/sql/db/postgres"
	_ "github.com/urandom/feedkeeper/content/repo/sql/db/sqlite3"
	"github.com/urandom/feedkeeper/log"
)

type Service struct {
	db *db.DB

	log log.Log
}

func NewService(driver, source string, log log.Log) (Service, error) {
	switch driver {
	case "sqlite", "postgres":
		db := db.New(log)
		if err := db.Open(driver, source); err != nil {
			return Service{}, errors.Wrap(err, "connecting to database")
		}

		return Service{db, log}, nil
	default:
		return Service{}, errors.Errorf("cannot provide a repo for driver '%s'", driver)
	}
}

func (s Service) FeedRepo() repo.Feed {
	return feedRepo{s.db, s.log}
}

func (s Service) ArticleRepo() repo.Article {
	return articleRepo{s.db, s.log}
}

func (s Service) StatusRepo() repo.Status {
	return statusRepo{s.db, s.log}
}

func (s Service) Suspend() {
	s.db.Suspend()
}

func (s Service) Resume() {
	s.db.Resume()
}

func (s Service) Close() error {
	return s.db.Close()
}
