package content

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/pkg/errors"
)

// ArticleID is the stable identity of an article within an account.
type ArticleID string

// articleIDSeparator joins the feed id and the unique id before hashing.
// Neither a url nor a feed-supplied guid contains a bare space in practice.
const articleIDSeparator = " "

// NewArticleID derives the article id from its feed and the feed-supplied
// (or calculated) unique id. The same pair always produces the same id,
// which is what makes repeated syncs idempotent.
func NewArticleID(feedID FeedID, uniqueID string) ArticleID {
	sum := md5.Sum([]byte(string(feedID) + articleIDSeparator + uniqueID))
	return ArticleID(hex.EncodeToString(sum[:]))
}

type Article struct {
	ID       ArticleID `db:"id" json:"id"`
	FeedID   FeedID    `db:"feed_id" json:"feedID"`
	UniqueID string    `db:"unique_id" json:"uniqueID"`
	Title    string    `db:"title" json:"title"`
	Link     string    `db:"link" json:"link"`
	Content  string    `db:"content" json:"content"`
	Date     time.Time `db:"-" json:"date"`
}

func (a Article) Validate() error {
	if a.FeedID == "" {
		return NewValidationError(errors.New("Article has no feed id"))
	}

	if a.UniqueID == "" {
		return NewValidationError(errors.New("Article has no unique id"))
	}

	if a.ID != NewArticleID(a.FeedID, a.UniqueID) {
		return NewValidationError(errors.Errorf("Article id %s does not match its feed and unique id", a.ID))
	}

	return nil
}

func (a Article) String() string {
	return fmt.Sprintf("%s (%s)", a.Title, a.ID)
}
