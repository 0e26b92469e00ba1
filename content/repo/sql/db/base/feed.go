package base

func init() {
	sqlStmts.Feed.Get = getFeed
	sqlStmts.Feed.All = getAllFeeds
	sqlStmts.Feed.Create = createFeed
	sqlStmts.Feed.Update = updateFeed
	sqlStmts.Feed.Delete = deleteFeed
}

const (
	getFeed = `
SELECT id, link, title, site_link, etag, last_modified, update_error
FROM feeds
WHERE id = :id
`
	getAllFeeds = `
SELECT id, link, title, site_link, etag, last_modified, update_error
FROM feeds
ORDER BY LOWER(title), id
`
	createFeed = `
INSERT INTO feeds(id, link, title, site_link, etag, last_modified, update_error)
	VALUES(:id, :link, :title, :site_link, :etag, :last_modified, :update_error)
`
	updateFeed = `
UPDATE feeds SET link = :link, title = :title, site_link = :site_link,
	etag = :etag, last_modified = :last_modified, update_error = :update_error
WHERE id = :id
`
	deleteFeed = `DELETE FROM feeds WHERE id = :id`
)
