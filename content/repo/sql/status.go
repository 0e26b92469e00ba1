package sql

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/content/repo/sql/db"
	"github.com/urandom/feedkeeper/log"
)

type statusRepo struct {
	db *db.DB

	log log.Log
}

type statusRow struct {
	content.StatusRecord
	DateArrived int64 `db:"date_arrived"`
}

type countRow struct {
	FeedID content.FeedID `db:"feed_id"`
	Count  int64          `db:"count"`
}

func (r statusRepo) Get(ids []content.ArticleID) ([]content.StatusRecord, error) {
	if len(ids) == 0 {
		return []content.StatusRecord{}, nil
	}

	if err := r.db.Check(); err != nil {
		return nil, errors.WithMessage(err, "getting statuses")
	}

	r.log.Debugf("Getting %d statuses", len(ids))

	records := make([]content.StatusRecord, 0, len(ids))
	for _, chunk := range chunks(ids, db.MaxBatch) {
		query, args, err := r.db.In(r.db.SQL().Status.Get, chunk)
		if err != nil {
			return nil, err
		}

		var rows []statusRow
		if err := r.db.Select(&rows, query, args...); err != nil {
			return nil, errors.Wrap(err, "getting statuses")
		}

		for i := range rows {
			rec := rows[i].StatusRecord
			rec.DateArrived = fromNano(rows[i].DateArrived)
			records = append(records, rec)
		}
	}

	return records, nil
}

func (r statusRepo) Create(records []content.StatusRecord) error {
	if len(records) == 0 {
		return nil
	}

	r.log.Debugf("Creating %d statuses", len(records))

	if err := r.db.WithNamedTx(r.db.SQL().Status.Create, func(stmt *sqlx.NamedStmt) error {
		for i := range records {
			row := statusRow{StatusRecord: records[i], DateArrived: toNano(records[i].DateArrived)}
			if _, err := stmt.Exec(row); err != nil {
				return errors.Wrapf(err, "creating status for %s", records[i].ArticleID)
			}
		}

		return nil
	}); err != nil {
		return errors.WithMessage(err, "creating statuses")
	}

	return nil
}

func (r statusRepo) Update(ids []content.ArticleID, key content.StatusKey, value bool) error {
	if len(ids) == 0 {
		return nil
	}

	r.log.Debugf("Setting %s to %v for %d statuses", key, value, len(ids))

	stmt := r.db.SQL().Status.UpdateRead
	if key == content.Starred {
		stmt = r.db.SQL().Status.UpdateStarred
	}

	if err := r.db.WithTx(func(tx *sqlx.Tx) error {
		for _, chunk := range chunks(ids, db.MaxBatch) {
			query, args, err := r.db.In(stmt, value, chunk)
			if err != nil {
				return err
			}

			if _, err := tx.Exec(query, args...); err != nil {
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
	if err := r.db.Check(); err != nil {
		return nil, errors.WithMessage(err, "counting statuses")
	}

	b := statusQuery(content.NewQueryOptions(opts...), "")
	b.limit = 0

	query, err := renderTemplate("status-count", r.db.SQL().Status.CountTemplate, b.parts())
	if err != nil {
		return nil, err
	}

	query, args, err := r.db.In(query, b.args...)
	if err != nil {
		return nil, err
	}

	var rows []countRow
	if err := r.db.Select(&rows, query, args...); err != nil {
		return nil, errors.Wrap(err, "counting statuses")
	}

	counts := make(map[content.FeedID]int64, len(rows))
	for _, row := range rows {
		counts[row.FeedID] = row.Count
	}

	return counts, nil
}

func (r statusRepo) IDs(opts ...content.QueryOpt) ([]content.ArticleID, error) {
	if err := r.db.Check(); err != nil {
		return nil, errors.WithMessage(err, "getting status ids")
	}

	b := statusQuery(content.NewQueryOptions(opts...), "")

	query, err := renderTemplate("status-ids", r.db.SQL().Status.IDsTemplate, b.parts())
	if err != nil {
		return nil, err
	}

	query, args, err := r.db.In(query, b.args...)
	if err != nil {
		return nil, err
	}

	var ids []content.ArticleID
	if err := r.db.Select(&ids, query, args...); err != nil {
		return nil, errors.Wrap(err, "getting status ids")
	}

	return ids, nil
}

func (r statusRepo) MarkReadBefore(cutoff time.Time) (int64, error) {
	r.log.Infof("Marking statuses that arrived before %s as read", cutoff)

	var affected int64
	if err := r.db.WithTx(func(tx *sqlx.Tx) error {
		res, err := tx.Exec(r.db.Rebind(r.db.SQL().Status.MarkReadBefore), true, false, toNano(cutoff))
		if err != nil {
			return err
		}

		affected, err = res.RowsAffected()
		return err
	}); err != nil {
		return 0, errors.Wrap(err, "marking old statuses as read")
	}

	return affected, nil
}

func (r statusRepo) DeleteStale(cutoff time.Time) ([]content.ArticleID, error) {
	r.log.Infof("Deleting stale statuses that arrived before %s", cutoff)

	var ids []content.ArticleID
	if err := r.db.WithTx(func(tx *sqlx.Tx) error {
		if err := tx.Select(&ids, r.db.Rebind(r.db.SQL().Status.StaleIDs), true, false, toNano(cutoff)); err != nil {
			return err
		}

		for _, chunk := range chunks(ids, db.MaxBatch) {
			query, args, err := r.db.In(r.db.SQL().Status.DeleteStale, chunk)
			if err != nil {
				return err
			}

			if _, err := tx.Exec(query, args...); err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		return nil, errors.Wrap(err, "deleting stale statuses")
	}

	return ids, nil
}
