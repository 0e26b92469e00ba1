package logging

import (
	"time"

	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/content/repo"
	"github.com/urandom/feedkeeper/log"
)

type feedRepo struct {
	repo.Feed

	log log.Log
}

func (r feedRepo) Get(id content.FeedID) (content.Feed, error) {
	start := time.Now()

	feed, err := r.Feed.Get(id)

	r.log.Infof("repo.Feed.Get took %s", time.Now().Sub(start))

	return feed, err
}

func (r feedRepo) All() ([]content.Feed, error) {
	start := time.Now()

	feeds, err := r.Feed.All()

	r.log.Infof("repo.Feed.All took %s", time.Now().Sub(start))

	return feeds, err
}

func (r feedRepo) Create(feed *content.Feed) error {
	start := time.Now()

	err := r.Feed.Create(feed)

	r.log.Infof("repo.Feed.Create took %s", time.Now().Sub(start))

	return err
}

func (r feedRepo) Update(feed *content.Feed) error {
	start := time.Now()

	err := r.Feed.Update(feed)

	r.log.Infof("repo.Feed.Update took %s", time.Now().Sub(start))

	return err
}

func (r feedRepo) Delete(feed content.Feed) error {
	start := time.Now()

	err := r.Feed.Delete(feed)

	r.log.Infof("repo.Feed.Delete took %s", time.Now().Sub(start))

	return err
}
