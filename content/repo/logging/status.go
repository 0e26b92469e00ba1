package logging

import (
	"time"

	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/content/repo"
	"github.com/urandom/feedkeeper/log"
)

type statusRepo struct {
	repo.Status

	log log.Log
}

func (r statusRepo) Get(ids []content.ArticleID) ([]content.StatusRecord, error) {
	start := time.Now()

	records, err := r.Status.Get(ids)

	r.log.Infof("repo.Status.Get of %d ids took %s", len(ids), time.Now().Sub(start))

	return records, err
}

func (r statusRepo) Create(records []content.StatusRecord) error {
	start := time.Now()

	err := r.Status.Create(records)

	r.log.Infof("repo.Status.Create of %d records took %s", len(records), time.Now().Sub(start))

	return err
}

func (r statusRepo) Update(ids []content.ArticleID, key content.StatusKey, value bool) error {
	start := time.Now()

	err := r.Status.Update(ids, key, value)

	r.log.Infof("repo.Status.Update of %d ids took %s", len(ids), time.Now().Sub(start))

	return err
}

func (r statusRepo) Count(opts ...content.QueryOpt) (map[content.FeedID]int64, error) {
	start := time.Now()

	counts, err := r.Status.Count(opts...)

	r.log.Infof("repo.Status.Count took %s", time.Now().Sub(start))

	return counts, err
}

func (r statusRepo) IDs(opts ...content.QueryOpt) ([]content.ArticleID, error) {
	start := time.Now()

	ids, err := r.Status.IDs(opts...)

	r.log.Infof("repo.Status.IDs took %s", time.Now().Sub(start))

	return ids, err
}

func (r statusRepo) MarkReadBefore(cutoff time.Time) (int64, error) {
	start := time.Now()

	count, err := r.Status.MarkReadBefore(cutoff)

	r.log.Infof("repo.Status.MarkReadBefore took %s", time.Now().Sub(start))

	return count, err
}

func (r statusRepo) DeleteStale(cutoff time.Time) ([]content.ArticleID, error) {
	start := time.Now()

	ids, err := r.Status.DeleteStale(cutoff)

	r.log.Infof("repo.Status.DeleteStale took %s", time.Now().Sub(start))

	return ids, err
}
