package sqlite3

var (
	initSQL = []string{`
PRAGMA foreign_keys = ON`, `
PRAGMA journal_mode = WAL`, `
CREATE TABLE IF NOT EXISTS feedkeeper (
	db_version INTEGER
)`, `
CREATE TABLE IF NOT EXISTS feeds (
	id TEXT PRIMARY KEY,
	link TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	site_link TEXT NOT NULL DEFAULT '',
	etag TEXT NOT NULL DEFAULT '',
	last_modified TEXT NOT NULL DEFAULT '',
	update_error TEXT NOT NULL DEFAULT ''
)`, `
CREATE TABLE IF NOT EXISTS articles (
	id TEXT PRIMARY KEY,
	feed_id TEXT NOT NULL,
	unique_id TEXT NOT NULL,
	title TEXT NOT NULL DEFAULT '',
	link TEXT NOT NULL DEFAULT '',
	content TEXT NOT NULL DEFAULT '',
	date INTEGER NOT NULL DEFAULT 0,

	FOREIGN KEY(feed_id) REFERENCES feeds(id) ON DELETE CASCADE
)`, `
CREATE TABLE IF NOT EXISTS statuses (
	article_id TEXT PRIMARY KEY,
	feed_id TEXT NOT NULL,
	read INTEGER NOT NULL DEFAULT 0,
	starred INTEGER NOT NULL DEFAULT 0,
	date_arrived INTEGER NOT NULL
)`, `
CREATE INDEX IF NOT EXISTS articles_feed_id_idx ON articles (feed_id);
`, `
CREATE INDEX IF NOT EXISTS statuses_feed_id_read_idx ON statuses (feed_id, read);
`, `
CREATE INDEX IF NOT EXISTS statuses_date_arrived_idx ON statuses (date_arrived);
`,
	}
)
