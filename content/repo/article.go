package repo

import "github.com/urandom/feedkeeper/content"

// Article allows fetching and storing content.Article objects
type Article interface {
	ForFeed(content.FeedID, ...content.QueryOpt) ([]content.Article, error)

	// Save inserts new articles and updates the text of existing ones.
	Save([]content.Article) error
}
