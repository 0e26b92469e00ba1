package content

import (
	"fmt"
	"net/url"

	"github.com/pkg/errors"
)

// FeedID identifies a feed within an account. Feeds are keyed by the URL
// they were first subscribed with; Link may later change due to redirects.
type FeedID string

type Feed struct {
	ID           FeedID `db:"id" json:"id"`
	Link         string `db:"link" json:"link"`
	Title        string `db:"title" json:"title"`
	SiteLink     string `db:"site_link" json:"siteLink"`
	ETag         string `db:"etag" json:"-"`
	LastModified string `db:"last_modified" json:"-"`
	UpdateError  string `db:"update_error" json:"updateError"`
}

// NewFeed creates a feed whose identity is its subscription url.
func NewFeed(link, title string) Feed {
	return Feed{ID: FeedID(link), Link: link, Title: title}
}

func (f Feed) Validate() error {
	if f.ID == "" {
		return NewValidationError(errors.New("Feed has no id"))
	}

	if f.Link == "" {
		return NewValidationError(errors.New("Feed has no link"))
	}

	if u, err := url.Parse(f.Link); err != nil || !u.IsAbs() {
		return NewValidationError(errors.Errorf("Feed link %q is not absolute", f.Link))
	}

	return nil
}

func (f Feed) String() string {
	return fmt.Sprintf("%s (%s)", f.Title, f.ID)
}
