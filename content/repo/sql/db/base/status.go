package base

func init() {
	sqlStmts.Status.Get = getStatuses
	sqlStmts.Status.Create = createStatus
	sqlStmts.Status.UpdateRead = updateStatusRead
	sqlStmts.Status.UpdateStarred = updateStatusStarred
	sqlStmts.Status.CountTemplate = statusCountTemplate
	sqlStmts.Status.IDsTemplate = statusIDsTemplate
	sqlStmts.Status.MarkReadBefore = markReadBefore
	sqlStmts.Status.StaleIDs = staleStatusIDs
	sqlStmts.Status.DeleteStale = deleteStaleStatuses
	sqlStmts.Status.DeleteForFeed = deleteFeedStatuses
}

const (
	getStatuses = `
SELECT article_id, feed_id, read, starred, date_arrived
FROM statuses
WHERE article_id IN (?)
`
	createStatus = `
INSERT INTO statuses(article_id, feed_id, read, starred, date_arrived)
	VALUES(:article_id, :feed_id, :read, :starred, :date_arrived)
ON CONFLICT (article_id) DO NOTHING
`
	updateStatusRead    = `UPDATE statuses SET read = ? WHERE article_id IN (?)`
	updateStatusStarred = `UPDATE statuses SET starred = ? WHERE article_id IN (?)`

	statusCountTemplate = `
SELECT feed_id, COUNT(*) AS count
FROM statuses
{{ .Where }}
GROUP BY feed_id
`
	statusIDsTemplate = `
SELECT article_id
FROM statuses
{{ .Where }}
ORDER BY date_arrived DESC, article_id
{{ .Limit }}
`
	markReadBefore = `UPDATE statuses SET read = ? WHERE read = ? AND date_arrived < ?`
	staleStatusIDs = `
SELECT s.article_id
FROM statuses s LEFT OUTER JOIN articles a
	ON s.article_id = a.id
WHERE s.read = ? AND s.starred = ? AND s.date_arrived < ? AND a.id IS NULL
`
	deleteStaleStatuses = `DELETE FROM statuses WHERE article_id IN (?)`
	deleteFeedStatuses  = `DELETE FROM statuses WHERE feed_id = :id`
)
