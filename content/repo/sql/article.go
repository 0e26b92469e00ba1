package sql

import (
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/content/repo/sql/db"
	"github.com/urandom/feedkeeper/log"
)

type articleRepo struct {
	db *db.DB

	log log.Log
}

type articleRow struct {
	content.Article
	Date int64 `db:"date"`
}

func (r articleRepo) ForFeed(id content.FeedID, opts ...content.QueryOpt) ([]content.Article, error) {
	o := content.NewQueryOptions(opts...)

	r.log.Infof("Getting articles for feed %s", id)

	b := &queryBuilder{limit: o.Limit}
	b.add("feed_id = ?", id)

	if err := r.db.Check(); err != nil {
		return []content.Article{}, errors.WithMessage(err, "getting feed articles")
	}

	query, err := renderTemplate("get-articles", r.db.SQL().Article.GetTemplate, b.parts())
	if err != nil {
		return []content.Article{}, err
	}

	query, args, err := r.db.In(query, b.args...)
	if err != nil {
		return []content.Article{}, err
	}

	var rows []articleRow
	if err := r.db.Select(&rows, query, args...); err != nil {
		return []content.Article{}, errors.Wrapf(err, "getting articles for feed %s", id)
	}

	articles := make([]content.Article, len(rows))
	for i := range rows {
		articles[i] = rows[i].Article
		articles[i].Date = fromNano(rows[i].Date)
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

	r.log.Infof("Saving %d articles", len(articles))

	if err := r.db.WithNamedTx(r.db.SQL().Article.Upsert, func(stmt *sqlx.NamedStmt) error {
		for i := range articles {
			row := articleRow{Article: articles[i], Date: toNano(articles[i].Date)}
			if _, err := stmt.Exec(row); err != nil {
				return errors.Wrapf(err, "saving article %s", articles[i])
			}
		}

		return nil
	}); err != nil {
		return errors.WithMessage(err, "saving articles")
	}

	return nil
}
