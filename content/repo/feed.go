package repo

import "github.com/urandom/feedkeeper/content"

// Feed allows fetching and manipulating content.Feed objects
type Feed interface {
	Get(content.FeedID) (content.Feed, error)
	All() ([]content.Feed, error)

	Create(*content.Feed) error
	Update(*content.Feed) error
	Delete(content.Feed) error
}
