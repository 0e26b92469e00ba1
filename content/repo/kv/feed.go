package kv

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/content"
)

type feedRepo struct {
	db *store
}

// feedValue carries the fields hidden from the api json encoding of
// content.Feed.
type feedValue struct {
	content.Feed
	ETag         string `json:"etag"`
	LastModified string `json:"lastModified"`
}

func encodeFeed(feed content.Feed) ([]byte, error) {
	return json.Marshal(feedValue{feed, feed.ETag, feed.LastModified})
}

func decodeFeed(b []byte) (content.Feed, error) {
	var v feedValue
	if err := json.Unmarshal(b, &v); err != nil {
		return content.Feed{}, errors.Wrap(err, "decoding feed")
	}

	v.Feed.ETag, v.Feed.LastModified = v.ETag, v.LastModified

	return v.Feed, nil
}

func (r feedRepo) Get(id content.FeedID) (content.Feed, error) {
	r.db.log.Infof("Getting feed %s", id)

	var feed content.Feed
	if err := r.db.view(func(tx *bolt.Tx) error {
		b := tx.Bucket(feedsBucket).Get([]byte(id))
		if b == nil {
			return content.ErrNoContent
		}

		var err error
		feed, err = decodeFeed(b)
		return err
	}); err != nil {
		return content.Feed{}, errors.Wrapf(err, "getting feed %s", id)
	}

	return feed, nil
}

func (r feedRepo) All() ([]content.Feed, error) {
	r.db.log.Infoln("Getting all feeds")

	feeds := []content.Feed{}
	if err := r.db.view(func(tx *bolt.Tx) error {
		return tx.Bucket(feedsBucket).ForEach(func(k, v []byte) error {
			feed, err := decodeFeed(v)
			if err != nil {
				return err
			}

			feeds = append(feeds, feed)
			return nil
		})
	}); err != nil {
		return []content.Feed{}, errors.Wrap(err, "getting all feeds")
	}

	sort.SliceStable(feeds, func(i, j int) bool {
		return strings.ToLower(feeds[i].Title) < strings.ToLower(feeds[j].Title)
	})

	return feeds, nil
}

func (r feedRepo) Create(feed *content.Feed) error {
	if err := feed.Validate(); err != nil {
		return errors.WithMessage(err, "validating feed")
	}

	r.db.log.Infof("Creating feed %s", feed)

	return r.put(*feed, false)
}

func (r feedRepo) Update(feed *content.Feed) error {
	if err := feed.Validate(); err != nil {
		return errors.WithMessage(err, "validating feed")
	}

	r.db.log.Infof("Updating feed %s", feed)

	return r.put(*feed, true)
}

func (r feedRepo) put(feed content.Feed, existing bool) error {
	if err := r.db.update(func(tx *bolt.Tx) error {
		b := tx.Bucket(feedsBucket)
		found := b.Get([]byte(feed.ID)) != nil
		if existing && !found {
			return content.ErrNoContent
		}
		if !existing && found {
			return errors.Errorf("feed %s already exists", feed.ID)
		}

		data, err := encodeFeed(feed)
		if err != nil {
			return errors.Wrap(err, "encoding feed")
		}

		return b.Put([]byte(feed.ID), data)
	}); err != nil {
		return errors.Wrapf(err, "storing feed %s", feed)
	}

	return nil
}

// Delete removes the feed along with its articles and statuses.
func (r feedRepo) Delete(feed content.Feed) error {
	r.db.log.Infof("Deleting feed %s", feed)

	if err := r.db.update(func(tx *bolt.Tx) error {
		if err := tx.Bucket(feedsBucket).Delete([]byte(feed.ID)); err != nil {
			return err
		}

		c := tx.Bucket(articlesBucket).Cursor()
		prefix := articlePrefix(feed.ID)
		for k, _ := c.Seek(prefix); k != nil && hasPrefix(k, prefix); k, _ = c.Seek(prefix) {
			if err := c.Delete(); err != nil {
				return err
			}
		}

		statuses := tx.Bucket(statusesBucket)
		var stale [][]byte
		if err := statuses.ForEach(func(k, v []byte) error {
			rec, err := decodeStatus(v)
			if err != nil {
				return err
			}

			if rec.FeedID == feed.ID {
				stale = append(stale, append([]byte(nil), k...))
			}

			return nil
		}); err != nil {
			return err
		}

		for _, k := range stale {
			if err := statuses.Delete(k); err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		return errors.Wrapf(err, "deleting feed %s", feed)
	}

	return nil
}
