package sql

import (
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/content/repo/sql/db"
	"github.com/urandom/feedkeeper/log"
)

type feedRepo struct {
	db *db.DB

	log log.Log
}

type feedQuery struct {
	ID content.FeedID `db:"id"`
}

func (r feedRepo) Get(id content.FeedID) (content.Feed, error) {
	r.log.Infof("Getting feed %s", id)

	var feed content.Feed
	if err := r.db.WithNamedStmt(r.db.SQL().Feed.Get, nil, func(stmt *sqlx.NamedStmt) error {
		return stmt.Get(&feed, feedQuery{ID: id})
	}); err != nil {
		if err == sql.ErrNoRows {
			err = content.ErrNoContent
		}

		return content.Feed{}, errors.Wrapf(err, "getting feed %s", id)
	}

	return feed, nil
}

func (r feedRepo) All() ([]content.Feed, error) {
	r.log.Infoln("Getting all feeds")

	var feeds []content.Feed
	if err := r.db.WithStmt(r.db.SQL().Feed.All, nil, func(stmt *sqlx.Stmt) error {
		return stmt.Select(&feeds)
	}); err != nil {
		return []content.Feed{}, errors.Wrap(err, "getting all feeds")
	}

	return feeds, nil
}

func (r feedRepo) Create(feed *content.Feed) error {
	if err := feed.Validate(); err != nil {
		return errors.WithMessage(err, "validating feed")
	}

	r.log.Infof("Creating feed %s", feed)

	if err := r.db.WithNamedTx(r.db.SQL().Feed.Create, func(stmt *sqlx.NamedStmt) error {
		_, err := stmt.Exec(feed)
		return err
	}); err != nil {
		return errors.Wrapf(err, "creating feed %s", feed)
	}

	return nil
}

func (r feedRepo) Update(feed *content.Feed) error {
	if err := feed.Validate(); err != nil {
		return errors.WithMessage(err, "validating feed")
	}

	r.log.Infof("Updating feed %s", feed)

	var affected int64
	if err := r.db.WithNamedTx(r.db.SQL().Feed.Update, func(stmt *sqlx.NamedStmt) error {
		res, err := stmt.Exec(feed)
		if err != nil {
			return err
		}

		affected, err = res.RowsAffected()
		return err
	}); err != nil {
		return errors.Wrapf(err, "updating feed %s", feed)
	}

	if affected == 0 {
		return errors.Wrapf(content.ErrNoContent, "updating feed %s", feed)
	}

	return nil
}

func (r feedRepo) Delete(feed content.Feed) error {
	r.log.Infof("Deleting feed %s", feed)

	if err := r.db.WithTx(func(tx *sqlx.Tx) error {
		for _, query := range []string{r.db.SQL().Status.DeleteForFeed, r.db.SQL().Feed.Delete} {
			if err := r.db.WithNamedStmt(query, tx, func(stmt *sqlx.NamedStmt) error {
				_, err := stmt.Exec(feedQuery{ID: feed.ID})
				return err
			}); err != nil {
				return err
			}
		}

		return nil
	}); err != nil {
		return errors.Wrapf(err, "deleting feed %s", feed)
	}

	return nil
}
