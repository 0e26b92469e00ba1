package base

func init() {
	sqlStmts.Article.GetTemplate = getArticlesTemplate
	sqlStmts.Article.Upsert = upsertArticle
}

const (
	getArticlesTemplate = `
SELECT id, feed_id, unique_id, title, link, content, date
FROM articles
{{ .Where }}
ORDER BY date DESC, id
{{ .Limit }}
`
	upsertArticle = `
INSERT INTO articles(id, feed_id, unique_id, title, link, content, date)
	VALUES(:id, :feed_id, :unique_id, :title, :link, :content, :date)
ON CONFLICT (id) DO UPDATE SET
	title = excluded.title, link = excluded.link,
	content = excluded.content, date = excluded.date
`
)
