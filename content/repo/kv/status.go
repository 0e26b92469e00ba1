package kv

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/boltdb/bolt"
	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/content"
)

type statusRepo struct {
	db *store
}

func decodeStatus(v []byte) (content.StatusRecord, error) {
	var rec content.StatusRecord
	if err := json.Unmarshal(v, &rec); err != nil {
		return rec, errors.Wrap(err, "decoding status")
	}

	return rec, nil
}

func matches(rec content.StatusRecord, o content.QueryOptions, feeds map[content.FeedID]bool) bool {
	if len(feeds) > 0 && !feeds[rec.FeedID] {
		return false
	}

	if o.UnreadOnly && rec.Read {
		return false
	}

	if o.StarredOnly && !rec.Starred {
		return false
	}

	if !o.ArrivedAfter.IsZero() && !rec.DateArrived.After(o.ArrivedAfter) {
		return false
	}

	if !o.ArrivedBefore.IsZero() && !rec.DateArrived.Before(o.ArrivedBefore) {
		return false
	}

	return true
}

func (r statusRepo) each(o content.QueryOptions, cb func(content.StatusRecord)) error {
	feeds := make(map[content.FeedID]bool, len(o.FeedIDs))
	for _, id := range o.FeedIDs {
		feeds[id] = true
	}

	return r.db.view(func(tx *bolt.Tx) error {
		return tx.Bucket(statusesBucket).ForEach(func(k, v []byte) error {
			rec, err := decodeStatus(v)
			if err != nil {
				return err
			}

			if matches(rec, o, feeds) {
				cb(rec)
			}

			return nil
		})
	})
}

func (r statusRepo) Get(ids []content.ArticleID) ([]content.StatusRecord, error) {
	records := make([]content.StatusRecord, 0, len(ids))
	if err := r.db.view(func(tx *bolt.Tx) error {
		b := tx.Bucket(statusesBucket)
		for _, id := range ids {
			v := b.Get([]byte(id))
			if v == nil {
				continue
			}

			rec, err := decodeStatus(v)
			if err != nil {
				return err
			}
			records = append(records, rec)
		}

		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "getting statuses")
	}

	return records, nil
}

func (r statusRepo) Create(records []content.StatusRecord) error {
	if err := r.db.update(func(tx *bolt.Tx) error {
		b := tx.Bucket(statusesBucket)
		for _, rec := range records {
			if b.Get([]byte(rec.ArticleID)) != nil {
				continue
			}

			data, err := json.Marshal(rec)
			if err != nil {
				return errors.Wrapf(err, "encoding status %s", rec.ArticleID)
			}

			if err := b.Put([]byte(rec.ArticleID), data); err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		return errors.WithMessage(err, "creating statuses")
	}

	return nil
}

func (r statusRepo) Update(ids []content.ArticleID, key content.StatusKey, value bool) error {
	if err := r.db.update(func(tx *bolt.Tx) error {
		b := tx.Bucket(statusesBucket)
		for _, id := range ids {
			v := b.Get([]byte(id))
			if v == nil {
				continue
			}

			rec, err := decodeStatus(v)
			if err != nil {
				return err
			}

			if key == content.Starred {
				rec.Starred = value
			} else {
				rec.Read = value
			}

			data, err := json.Marshal(rec)
			if err != nil {
				return errors.Wrapf(err, "encoding status %s", id)
			}

			if err := b.Put([]byte(id), data); err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		return errors.Wrapf(err, "updating status %s", key)
	}

	return nil
}

func (r statusRepo) Count(opts ...content.QueryOpt) (map[content.FeedID]int64, error) {
	counts := map[content.FeedID]int64{}
	if err := r.each(content.NewQueryOptions(opts...), func(rec content.StatusRecord) {
		counts[rec.FeedID]++
	}); err != nil {
		return nil, errors.Wrap(err, "counting statuses")
	}

	return counts, nil
}

func (r statusRepo) IDs(opts ...content.QueryOpt) ([]content.ArticleID, error) {
	o := content.NewQueryOptions(opts...)

	var recs []content.StatusRecord
	if err := r.each(o, func(rec content.StatusRecord) {
		recs = append(recs, rec)
	}); err != nil {
		return nil, errors.Wrap(err, "getting status ids")
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].DateArrived.Equal(recs[j].DateArrived) {
			return recs[i].ArticleID < recs[j].ArticleID
		}
		return recs[i].DateArrived.After(recs[j].DateArrived)
	})

	if o.Limit > 0 && len(recs) > o.Limit {
		recs = recs[:o.Limit]
	}

	ids := make([]content.ArticleID, len(recs))
	for i := range recs {
		ids[i] = recs[i].ArticleID
	}

	return ids, nil
}

func (r statusRepo) MarkReadBefore(cutoff time.Time) (int64, error) {
	ids, err := r.IDs(content.UnreadOnly, content.ArrivedBefore(cutoff))
	if err != nil {
		return 0, errors.WithMessage(err, "marking old statuses as read")
	}

	if err := r.Update(ids, content.Read, true); err != nil {
		return 0, errors.WithMessage(err, "marking old statuses as read")
	}

	return int64(len(ids)), nil
}

func (r statusRepo) DeleteStale(cutoff time.Time) ([]content.ArticleID, error) {
	var ids []content.ArticleID
	if err := r.db.update(func(tx *bolt.Tx) error {
		b := tx.Bucket(statusesBucket)
		articles := tx.Bucket(articlesBucket)

		var stale []content.StatusRecord
		if err := b.ForEach(func(k, v []byte) error {
			rec, err := decodeStatus(v)
			if err != nil {
				return err
			}

			if rec.Read && !rec.Starred && rec.DateArrived.Before(cutoff) {
				stale = append(stale, rec)
			}
			return nil
		}); err != nil {
			return err
		}

		for _, rec := range stale {
			key := articleKey(content.Article{ID: rec.ArticleID, FeedID: rec.FeedID})
			if articles.Get(key) != nil {
				continue
			}

			if err := b.Delete([]byte(rec.ArticleID)); err != nil {
				return err
			}
			ids = append(ids, rec.ArticleID)
		}

		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "deleting stale statuses")
	}

	return ids, nil
}
