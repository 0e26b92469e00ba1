package sqlite3

import (
	"github.com/jmoiron/sqlx"
	"github.com/urandom/feedkeeper/content/repo/sql/db"
	"github.com/urandom/feedkeeper/content/repo/sql/db/base"
	_ "modernc.org/sqlite"
)

// Driver is the database/sql driver name registered by modernc.org/sqlite.
const Driver = "sqlite"

type Helper struct {
	*base.Helper
}

func (h Helper) InitSQL() []string {
	return initSQL
}

func init() {
	helper := &Helper{Helper: base.NewHelper()}

	helper.Set(db.SqlStmts{
		Feed:   db.FeedStmts{All: getAllFeeds},
		Status: db.StatusStmts{Create: createStatus},
	})

	sqlx.BindDriver(Driver, sqlx.QUESTION)
	db.Register(Driver, helper)
}

const (
	getAllFeeds = `
SELECT id, link, title, site_link, etag, last_modified, update_error
FROM feeds
ORDER BY title COLLATE NOCASE, id
`
	createStatus = `
INSERT OR IGNORE INTO statuses(article_id, feed_id, read, starred, date_arrived)
	VALUES(:article_id, :feed_id, :read, :starred, :date_arrived)
`
)
