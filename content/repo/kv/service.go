package kv

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/content/repo"
	"github.com/urandom/feedkeeper/log"
)

var (
	feedsBucket    = []byte("feeds")
	articlesBucket = []byte("articles")
	statusesBucket = []byte("statuses")
)

// Service is a repo.Service backed by a single bolt database file. Values
// are stored as json.
type Service struct {
	db *store

	feed    feedRepo
	article articleRepo
	status  statusRepo
}

type store struct {
	*bolt.DB
	log log.Log

	suspended atomic.Bool
}

func NewService(source string, log log.Log) (Service, error) {
	if err := os.MkdirAll(filepath.Dir(source), 0700); err != nil {
		return Service{}, errors.Wrap(err, "creating source directory")
	}

	db, err := bolt.Open(source, 0600, &bolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return Service{}, errors.Wrap(err, "opening content database")
	}

	if err := db.Update(func(tx *bolt.Tx) error {
		for _, name := range [][]byte{feedsBucket, articlesBucket, statusesBucket} {
			if _, err := tx.CreateBucketIfNotExists(name); err != nil {
				return errors.Wrapf(err, "creating bucket %s", name)
			}
		}

		return nil
	}); err != nil {
		db.Close()
		return Service{}, err
	}

	s := &store{DB: db, log: log}

	return Service{
		db:      s,
		feed:    feedRepo{s},
		article: articleRepo{s},
		status:  statusRepo{s},
	}, nil
}

func (s Service) FeedRepo() repo.Feed {
	return s.feed
}

func (s Service) ArticleRepo() repo.Article {
	return s.article
}

func (s Service) StatusRepo() repo.Status {
	return s.status
}

func (s Service) Suspend() {
	s.db.suspended.Store(true)
}

func (s Service) Resume() {
	s.db.suspended.Store(false)
}

func (s Service) Close() error {
	return s.db.Close()
}

func (s *store) view(cb func(*bolt.Tx) error) error {
	if s.suspended.Load() {
		return content.ErrSuspended
	}

	return s.DB.View(cb)
}

func (s *store) update(cb func(*bolt.Tx) error) error {
	if s.suspended.Load() {
		return content.ErrSuspended
	}

	return s.DB.Update(cb)
}
