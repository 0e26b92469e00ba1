package repo

import (
	"time"

	"github.com/urandom/feedkeeper/content"
)

// Status is the persistent side of the article status table.
type Status interface {
	// Get returns the stored records for the given ids. Unknown ids are
	// silently omitted.
	Get([]content.ArticleID) ([]content.StatusRecord, error)
	// Create inserts the records, ignoring any whose article id already
	// exists.
	Create([]content.StatusRecord) error
	// Update sets the key to value for all given ids in a single batch.
	Update(ids []content.ArticleID, key content.StatusKey, value bool) error

	// Count returns the number of matching statuses, grouped by feed.
	Count(...content.QueryOpt) (map[content.FeedID]int64, error)
	IDs(...content.QueryOpt) ([]content.ArticleID, error)

	// MarkReadBefore marks every unread status that arrived before the
	// cutoff as read, returning the number of changed rows.
	MarkReadBefore(cutoff time.Time) (int64, error)
	// DeleteStale removes read, unstarred statuses that arrived before the
	// cutoff and no longer have an article. The removed ids are returned.
	DeleteStale(cutoff time.Time) ([]content.ArticleID, error)
}
