package content

import (
	"strings"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
)

// StatusKey names one of the mutable flags of an ArticleStatus.
type StatusKey int

const (
	Read StatusKey = iota
	Starred
)

var statusKeyNames = map[StatusKey]string{
	Read:    "read",
	Starred: "starred",
}

func (k StatusKey) String() string {
	if name, ok := statusKeyNames[k]; ok {
		return name
	}

	return "unknown"
}

// Column returns the storage column backing the key.
func (k StatusKey) Column() string {
	return k.String()
}

func ParseStatusKey(s string) (StatusKey, error) {
	for k, name := range statusKeyNames {
		if strings.EqualFold(s, name) {
			return k, nil
		}
	}

	return 0, NewValidationError(errors.Errorf("unknown status key %q", s))
}

// ArticleStatus is the shared, mutable read/starred state of an article.
//
// A single instance exists per ArticleID in a status cache, and it is
// handed out by pointer. Each flag is guarded independently, so a
// concurrent read mark and starred mark never lose each other's update.
type ArticleStatus struct {
	ArticleID   ArticleID
	FeedID      FeedID
	DateArrived time.Time

	read    atomic.Bool
	starred atomic.Bool
}

// StatusRecord is a point-in-time copy of an ArticleStatus, as persisted.
type StatusRecord struct {
	ArticleID   ArticleID `db:"article_id" json:"articleID"`
	FeedID      FeedID    `db:"feed_id" json:"feedID"`
	Read        bool      `db:"read" json:"read"`
	Starred     bool      `db:"starred" json:"starred"`
	DateArrived time.Time `db:"-" json:"dateArrived"`
}

func NewArticleStatus(id ArticleID, feedID FeedID, read, starred bool, arrived time.Time) *ArticleStatus {
	s := &ArticleStatus{ArticleID: id, FeedID: feedID, DateArrived: arrived}
	s.read.Store(read)
	s.starred.Store(starred)

	return s
}

func NewArticleStatusFromRecord(r StatusRecord) *ArticleStatus {
	return NewArticleStatus(r.ArticleID, r.FeedID, r.Read, r.Starred, r.DateArrived)
}

func (s *ArticleStatus) Read() bool {
	return s.read.Load()
}

func (s *ArticleStatus) Starred() bool {
	return s.starred.Load()
}

func (s *ArticleStatus) Get(key StatusKey) bool {
	if key == Starred {
		return s.Starred()
	}

	return s.Read()
}

// Set atomically changes the flag named by key to value. It reports
// whether the stored value actually changed.
func (s *ArticleStatus) Set(key StatusKey, value bool) bool {
	flag := &s.read
	if key == Starred {
		flag = &s.starred
	}

	return flag.CompareAndSwap(!value, value)
}

func (s *ArticleStatus) Record() StatusRecord {
	return StatusRecord{
		ArticleID:   s.ArticleID,
		FeedID:      s.FeedID,
		Read:        s.Read(),
		Starred:     s.Starred(),
		DateArrived: s.DateArrived,
	}
}
