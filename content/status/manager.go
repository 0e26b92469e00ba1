// Package status keeps the read and starred state of every article
// consistent between an in-memory cache and the persistent store.
package status

import (
	"sync"
	"time"

	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/config"
	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/content/repo"
	"github.com/urandom/feedkeeper/log"
)

// Manager is the read-through, write-through layer over repo.Status.
//
// Every store failure, including content.ErrSuspended, is returned to the
// caller with the cache left as if nothing had been attempted.
type Manager struct {
	repo  repo.Status
	cache *Cache
	cfg   config.Status
	log   log.Log

	// Marks of the same key are serialized, so that the set of changed
	// ids computed before a store write is still valid after it.
	readMu    sync.Mutex
	starredMu sync.Mutex

	now func() time.Time
}

func NewManager(repo repo.Status, cfg config.Status, log log.Log) *Manager {
	return &Manager{
		repo:  repo,
		cache: NewCache(),
		cfg:   cfg,
		log:   log,
		now:   time.Now,
	}
}

func (m *Manager) Cache() *Cache {
	return m.cache
}

// Resolve returns the canonical status of every article of the feed
// identified by the given unique ids, creating the ones seen for the first
// time. Calling it again with the same ids yields the same statuses.
func (m *Manager) Resolve(feedID content.FeedID, uniqueIDs []string) (map[content.ArticleID]*content.ArticleStatus, error) {
	ids := make([]content.ArticleID, len(uniqueIDs))
	for i, uid := range uniqueIDs {
		ids[i] = content.NewArticleID(feedID, uid)
	}

	if missing := m.cache.Missing(ids); len(missing) > 0 {
		if err := m.fetch(missing); err != nil {
			return nil, errors.WithMessage(err, "resolving statuses")
		}

		if missing = m.cache.Missing(missing); len(missing) > 0 {
			if err := m.create(feedID, missing); err != nil {
				return nil, errors.WithMessage(err, "resolving statuses")
			}
		}
	}

	statuses := make(map[content.ArticleID]*content.ArticleStatus, len(ids))
	for _, id := range ids {
		if s := m.cache.Get(id); s != nil {
			statuses[id] = s
		}
	}

	return statuses, nil
}

// fetch loads the stored statuses of ids into the cache.
func (m *Manager) fetch(ids []content.ArticleID) error {
	records, err := m.repo.Get(ids)
	if err != nil {
		return err
	}

	for _, r := range records {
		m.cache.AddIfNotCached(content.NewArticleStatusFromRecord(r))
	}

	return nil
}

// create persists fresh statuses for ids and caches them only once the
// store has accepted them. A concurrent creation of the same id is
// harmless: the store ignores the second insert and the cache keeps the
// first status.
func (m *Manager) create(feedID content.FeedID, ids []content.ArticleID) error {
	now := m.now()

	fresh := make([]*content.ArticleStatus, len(ids))
	records := make([]content.StatusRecord, len(ids))
	for i, id := range ids {
		fresh[i] = content.NewArticleStatus(id, feedID, false, false, now)
		records[i] = fresh[i].Record()
	}

	if err := m.repo.Create(records); err != nil {
		return err
	}

	m.log.Debugf("Created %d statuses for feed %s", len(ids), feedID)

	for _, s := range fresh {
		m.cache.AddIfNotCached(s)
	}

	return nil
}

func (m *Manager) keyLock(key content.StatusKey) *sync.Mutex {
	if key == content.Starred {
		return &m.starredMu
	}

	return &m.readMu
}

// Mark sets the key of every known status among ids to value. Statuses
// that already hold the value are skipped, and the rest are written to the
// store in a single batch. Unknown ids are ignored. The ids whose value
// changed are returned.
func (m *Manager) Mark(ids []content.ArticleID, key content.StatusKey, value bool) ([]content.ArticleID, error) {
	mu := m.keyLock(key)
	mu.Lock()
	defer mu.Unlock()

	if missing := m.cache.Missing(ids); len(missing) > 0 {
		if err := m.fetch(missing); err != nil {
			return nil, errors.WithMessagef(err, "marking statuses %s", key)
		}
	}

	var changed []*content.ArticleStatus
	var changedIDs []content.ArticleID
	seen := make(map[content.ArticleID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		s := m.cache.Get(id)
		if s == nil || s.Get(key) == value {
			continue
		}

		changed = append(changed, s)
		changedIDs = append(changedIDs, id)
	}

	if len(changed) == 0 {
		return nil, nil
	}

	if err := m.repo.Update(changedIDs, key, value); err != nil {
		return nil, errors.WithMessagef(err, "marking statuses %s", key)
	}

	for _, s := range changed {
		s.Set(key, value)
	}

	return changedIDs, nil
}

// UnreadCount returns the number of unread articles of a single feed.
func (m *Manager) UnreadCount(feedID content.FeedID) (int64, error) {
	counts, err := m.UnreadCounts([]content.FeedID{feedID})
	if err != nil {
		return 0, err
	}

	return counts[feedID], nil
}

// UnreadCounts returns the unread counts of the given feeds. Feeds without
// unread articles are reported with a zero count.
func (m *Manager) UnreadCounts(feedIDs []content.FeedID, opts ...content.QueryOpt) (map[content.FeedID]int64, error) {
	if len(feedIDs) == 0 {
		return map[content.FeedID]int64{}, nil
	}

	opts = append([]content.QueryOpt{content.UnreadOnly, content.FeedIDs(feedIDs...)}, opts...)
	counts, err := m.repo.Count(opts...)
	if err != nil {
		return nil, errors.WithMessage(err, "counting unread statuses")
	}

	for _, id := range feedIDs {
		if _, ok := counts[id]; !ok {
			counts[id] = 0
		}
	}

	return counts, nil
}

// TotalUnreadCount returns the unread count across all feeds.
func (m *Manager) TotalUnreadCount() (int64, error) {
	return m.sum(content.UnreadOnly)
}

// TodayUnreadCount counts unread articles that arrived after the
// configured cutoff.
func (m *Manager) TodayUnreadCount() (int64, error) {
	return m.sum(content.UnreadOnly, content.ArrivedAfter(m.now().Add(-m.cfg.Converted.TodayCutoff)))
}

func (m *Manager) StarredUnreadCount() (int64, error) {
	return m.sum(content.UnreadOnly, content.StarredOnly)
}

func (m *Manager) sum(opts ...content.QueryOpt) (int64, error) {
	counts, err := m.repo.Count(opts...)
	if err != nil {
		return 0, errors.WithMessage(err, "counting statuses")
	}

	var total int64
	for _, c := range counts {
		total += c
	}

	return total, nil
}

// IDs returns the ids of the statuses matching the options.
func (m *Manager) IDs(opts ...content.QueryOpt) ([]content.ArticleID, error) {
	ids, err := m.repo.IDs(opts...)
	if err != nil {
		return nil, errors.WithMessage(err, "getting status ids")
	}

	return ids, nil
}

// MarkOlderAsRead marks every status that arrived before cutoff as read.
func (m *Manager) MarkOlderAsRead(cutoff time.Time) (int64, error) {
	m.readMu.Lock()
	defer m.readMu.Unlock()

	count, err := m.repo.MarkReadBefore(cutoff)
	if err != nil {
		return 0, errors.WithMessage(err, "marking older statuses as read")
	}

	m.cache.Each(func(s *content.ArticleStatus) {
		if s.DateArrived.Before(cutoff) {
			s.Set(content.Read, true)
		}
	})

	return count, nil
}

// Cleanup deletes read, unstarred statuses older than the configured age
// whose articles are gone, and evicts them from the cache.
func (m *Manager) Cleanup() (int, error) {
	ids, err := m.repo.DeleteStale(m.now().Add(-m.cfg.Converted.CleanupAge))
	if err != nil {
		return 0, errors.WithMessage(err, "cleaning up statuses")
	}

	m.cache.Remove(ids...)

	if len(ids) > 0 {
		m.log.Infof("Removed %d stale statuses", len(ids))
	}

	return len(ids), nil
}

// ForgetFeed evicts the cached statuses of a deleted feed. The store drops
// them along with the feed.
func (m *Manager) ForgetFeed(feedID content.FeedID) {
	var ids []content.ArticleID
	m.cache.Each(func(s *content.ArticleStatus) {
		if s.FeedID == feedID {
			ids = append(ids, s.ArticleID)
		}
	})

	m.cache.Remove(ids...)
}
