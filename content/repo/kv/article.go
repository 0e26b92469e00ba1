package kv

import (
	"bytes"
	"encoding/json"
	"sort"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/content"
)

type articleRepo struct {
	db *store
}

// Articles are keyed by feed id and article id, so that a prefix scan
// yields all articles of a feed.
func articlePrefix(id content.FeedID) []byte {
	return append([]byte(id), 0)
}

func articleKey(a content.Article) []byte {
	return append(articlePrefix(a.FeedID), string(a.ID)...)
}

func hasPrefix(k, prefix []byte) bool {
	return bytes.HasPrefix(k, prefix)
}

func (r articleRepo) ForFeed(id content.FeedID, opts ...content.QueryOpt) ([]content.Article, error) {
	o := content.NewQueryOptions(opts...)

	r.db.log.Infof("Getting articles for feed %s", id)

	articles := []content.Article{}
	if err := r.db.view(func(tx *bolt.Tx) error {
		c := tx.Bucket(articlesBucket).Cursor()
		prefix := articlePrefix(id)

		for k, v := c.Seek(prefix); k != nil && hasPrefix(k, prefix); k, v = c.Next() {
			var a content.Article
			if err := json.Unmarshal(v, &a); err != nil {
				return errors.Wrap(err, "decoding article")
			}

			articles = append(articles, a)
		}

		return nil
	}); err != nil {
		return []content.Article{}, errors.Wrapf(err, "getting articles for feed %s", id)
	}

	sort.Slice(articles, func(i, j int) bool {
		if articles[i].Date.Equal(articles[j].Date) {
			return articles[i].ID < articles[j].ID
		}
		return articles[i].Date.After(articles[j].Date)
	})

	if o.Limit > 0 && len(articles) > o.Limit {
		articles = articles[:o.Limit]
	}

	return articles, nil
}

func (r articleRepo) Save(articles []content.Article) error {
	if len(articles) == 0 {
		return nil
	}

	for i := range articles {
		if err := articles[i].Validate(); err != nil {
			return errors.WithMessage(err, "validating article")
		}
	}

	r.db.log.Infof("Saving %d articles", len(articles))

	if err := r.db.update(func(tx *bolt.Tx) error {
		b := tx.Bucket(articlesBucket)
		for i := range articles {
			data, err := json.Marshal(articles[i])
			if err != nil {
				return errors.Wrapf(err, "encoding article %s", articles[i])
			}

			if err := b.Put(articleKey(articles[i]), data); err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		return errors.WithMessage(err, "saving articles")
	}

	return nil
}
