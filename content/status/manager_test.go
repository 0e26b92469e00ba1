package status

import (
	"os"
	"sync"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/config"
	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/content/repo/mock_repo"
	"github.com/urandom/feedkeeper/log"
)

var logger = log.WithStd(os.Stderr, "testing", 0)

const feedID = content.FeedID("http://sugr.org/feed")

func newManager(t *testing.T) (*Manager, *mock_repo.MockStatus) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mock_repo.NewMockStatus(ctrl)

	cfg := config.Status{CleanupAge: "4320h", TodayCutoff: "24h"}
	cfg.Convert()

	m := NewManager(repo, cfg, logger)
	m.now = func() time.Time { return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC) }

	return m, repo
}

func TestManager_Resolve(t *testing.T) {
	tests := []struct {
		name      string
		uniqueIDs []string
		stored    []content.StatusRecord
		getErr    error
		createErr error
		wantNew   int
		wantErr   bool
		wantRead  map[string]bool
	}{
		{name: "all new", uniqueIDs: []string{"1", "2"}, wantNew: 2, wantRead: map[string]bool{"1": false, "2": false}},
		{
			name:      "some stored",
			uniqueIDs: []string{"1", "2"},
			stored: []content.StatusRecord{
				{ArticleID: content.NewArticleID(feedID, "1"), FeedID: feedID, Read: true},
			},
			wantNew:  1,
			wantRead: map[string]bool{"1": true, "2": false},
		},
		{name: "duplicates", uniqueIDs: []string{"1", "1"}, wantNew: 1, wantRead: map[string]bool{"1": false}},
		{name: "get suspended", uniqueIDs: []string{"1"}, getErr: content.ErrSuspended, wantErr: true},
		{name: "create suspended", uniqueIDs: []string{"1"}, createErr: content.ErrSuspended, wantNew: 1, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, repo := newManager(t)

			repo.EXPECT().Get(gomock.Any()).Return(tt.stored, tt.getErr)
			if tt.getErr == nil {
				repo.EXPECT().Create(gomock.Any()).DoAndReturn(func(recs []content.StatusRecord) error {
					if len(recs) != tt.wantNew {
						t.Errorf("repo.Create() got %d records, want %d", len(recs), tt.wantNew)
					}
					for _, r := range recs {
						if r.Read || r.Starred || r.FeedID != feedID || !r.DateArrived.Equal(m.now()) {
							t.Errorf("repo.Create() record = %#v, want fresh status", r)
						}
					}
					return tt.createErr
				})
			}

			got, err := m.Resolve(feedID, tt.uniqueIDs)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Manager.Resolve() error = %v, wantErr %v", err, tt.wantErr)
			}

			if tt.wantErr {
				if !content.IsSuspended(err) {
					t.Errorf("Manager.Resolve() error = %v, want suspended", err)
				}
				if m.Cache().Len() != len(tt.stored) {
					t.Errorf("Manager.Resolve() cache len = %d, want untouched", m.Cache().Len())
				}
				return
			}

			if len(got) != len(tt.wantRead) {
				t.Fatalf("Manager.Resolve() = %d statuses, want %d", len(got), len(tt.wantRead))
			}

			for uid, read := range tt.wantRead {
				s := got[content.NewArticleID(feedID, uid)]
				if s == nil {
					t.Fatalf("Manager.Resolve() missing status for %s", uid)
				}
				if s.Read() != read {
					t.Errorf("Manager.Resolve() status %s read = %v, want %v", uid, s.Read(), read)
				}
			}

			// A second resolve is served from the cache and returns the
			// same status objects.
			again, err := m.Resolve(feedID, tt.uniqueIDs)
			if err != nil {
				t.Fatalf("Manager.Resolve() second call error = %v", err)
			}
			for id, s := range got {
				if again[id] != s {
					t.Errorf("Manager.Resolve() second call status %s is a different object", id)
				}
			}
		})
	}
}

func TestManager_Mark(t *testing.T) {
	tests := []struct {
		name        string
		initial     map[content.ArticleID]bool
		ids         []content.ArticleID
		value       bool
		updateErr   error
		wantChanged int
		wantErr     bool
	}{
		{"skip unchanged", map[content.ArticleID]bool{"1": true, "2": false}, []content.ArticleID{"1", "2"}, true, nil, 1, false},
		{"all unchanged", map[content.ArticleID]bool{"1": true}, []content.ArticleID{"1"}, true, nil, 0, false},
		{"unknown ignored", map[content.ArticleID]bool{"1": false}, []content.ArticleID{"1", "unknown"}, true, nil, 1, false},
		{"suspended", map[content.ArticleID]bool{"1": false}, []content.ArticleID{"1"}, true, content.ErrSuspended, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, repo := newManager(t)

			for id, read := range tt.initial {
				m.Cache().AddIfNotCached(content.NewArticleStatus(id, feedID, read, false, m.now()))
			}

			if missing := m.Cache().Missing(tt.ids); len(missing) > 0 {
				repo.EXPECT().Get(missing).Return(nil, nil)
			}

			if tt.wantChanged > 0 || tt.wantErr {
				repo.EXPECT().Update(gomock.Any(), content.Read, tt.value).DoAndReturn(
					func(ids []content.ArticleID, key content.StatusKey, value bool) error {
						if len(ids) != tt.wantChanged && !tt.wantErr {
							t.Errorf("repo.Update() got %d ids, want %d", len(ids), tt.wantChanged)
						}
						return tt.updateErr
					})
			}

			changed, err := m.Mark(tt.ids, content.Read, tt.value)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Manager.Mark() error = %v, wantErr %v", err, tt.wantErr)
			}

			if len(changed) != tt.wantChanged {
				t.Errorf("Manager.Mark() changed = %v, want %d ids", changed, tt.wantChanged)
			}

			for id, read := range tt.initial {
				want := tt.value
				if tt.wantErr {
					want = read
				}
				if got := m.Cache().Get(id).Read(); got != want {
					t.Errorf("Manager.Mark() status %s read = %v, want %v", id, got, want)
				}
			}
		})
	}
}

func TestManager_ConcurrentMarks(t *testing.T) {
	m, repo := newManager(t)

	repo.EXPECT().Get(gomock.Any()).Return(nil, nil)
	repo.EXPECT().Create(gomock.Any()).Return(nil)
	repo.EXPECT().Update(gomock.Any(), gomock.Any(), true).Return(nil).Times(2)

	statuses, err := m.Resolve(feedID, []string{"1"})
	if err != nil {
		t.Fatalf("Manager.Resolve() error = %v", err)
	}
	id := content.NewArticleID(feedID, "1")

	var wg sync.WaitGroup
	for _, key := range []content.StatusKey{content.Read, content.Starred} {
		wg.Add(1)
		go func(key content.StatusKey) {
			defer wg.Done()
			if _, err := m.Mark([]content.ArticleID{id}, key, true); err != nil {
				t.Errorf("Manager.Mark(%s) error = %v", key, err)
			}
		}(key)
	}
	wg.Wait()

	s := statuses[id]
	if !s.Read() || !s.Starred() {
		t.Errorf("status = read %v, starred %v, want both true", s.Read(), s.Starred())
	}
}

// A mark for an id whose creation races with it must not be lost once the
// creating resolve caches its status.
func TestManager_ResolveAfterMark(t *testing.T) {
	m, repo := newManager(t)
	id := content.NewArticleID(feedID, "1")

	stored := content.StatusRecord{ArticleID: id, FeedID: feedID, DateArrived: m.now()}
	repo.EXPECT().Get([]content.ArticleID{id}).Return([]content.StatusRecord{stored}, nil)
	repo.EXPECT().Update([]content.ArticleID{id}, content.Starred, true).Return(nil)

	if _, err := m.Mark([]content.ArticleID{id}, content.Starred, true); err != nil {
		t.Fatalf("Manager.Mark() error = %v", err)
	}

	got, err := m.Resolve(feedID, []string{"1"})
	if err != nil {
		t.Fatalf("Manager.Resolve() error = %v", err)
	}

	if !got[id].Starred() {
		t.Errorf("Manager.Resolve() status starred = false, want the marked value")
	}
}

func TestManager_Counts(t *testing.T) {
	m, repo := newManager(t)

	apply := func(want content.QueryOptions, counts map[content.FeedID]int64) func(...content.QueryOpt) (map[content.FeedID]int64, error) {
		return func(opts ...content.QueryOpt) (map[content.FeedID]int64, error) {
			o := content.NewQueryOptions(opts...)
			if o.UnreadOnly != want.UnreadOnly || o.StarredOnly != want.StarredOnly || !o.ArrivedAfter.Equal(want.ArrivedAfter) || len(o.FeedIDs) != len(want.FeedIDs) {
				t.Errorf("repo.Count() options = %#v, want %#v", o, want)
			}
			return counts, nil
		}
	}

	other := content.FeedID("http://sugr.org/other")

	repo.EXPECT().Count(gomock.Any()).DoAndReturn(apply(
		content.QueryOptions{UnreadOnly: true, FeedIDs: []content.FeedID{feedID, other}},
		map[content.FeedID]int64{feedID: 4},
	))
	counts, err := m.UnreadCounts([]content.FeedID{feedID, other})
	if err != nil || counts[feedID] != 4 || counts[other] != 0 || len(counts) != 2 {
		t.Errorf("Manager.UnreadCounts() = %v, %v", counts, err)
	}

	repo.EXPECT().Count(gomock.Any()).DoAndReturn(apply(
		content.QueryOptions{UnreadOnly: true, ArrivedAfter: m.now().Add(-24 * time.Hour)},
		map[content.FeedID]int64{feedID: 2, other: 3},
	))
	if today, err := m.TodayUnreadCount(); err != nil || today != 5 {
		t.Errorf("Manager.TodayUnreadCount() = %d, %v, want 5", today, err)
	}

	repo.EXPECT().Count(gomock.Any()).DoAndReturn(apply(
		content.QueryOptions{UnreadOnly: true, StarredOnly: true},
		map[content.FeedID]int64{other: 1},
	))
	if starred, err := m.StarredUnreadCount(); err != nil || starred != 1 {
		t.Errorf("Manager.StarredUnreadCount() = %d, %v, want 1", starred, err)
	}

	repo.EXPECT().Count(gomock.Any()).Return(nil, errors.Wrap(content.ErrSuspended, "counting"))
	if _, err := m.TotalUnreadCount(); !content.IsSuspended(err) {
		t.Errorf("Manager.TotalUnreadCount() error = %v, want suspended", err)
	}
}

func TestManager_Maintenance(t *testing.T) {
	m, repo := newManager(t)

	old := content.NewArticleStatus("old", feedID, false, false, m.now().Add(-48*time.Hour))
	fresh := content.NewArticleStatus("fresh", feedID, false, false, m.now())
	m.Cache().AddIfNotCached(old)
	m.Cache().AddIfNotCached(fresh)

	cutoff := m.now().Add(-24 * time.Hour)
	repo.EXPECT().MarkReadBefore(cutoff).Return(int64(1), nil)

	if n, err := m.MarkOlderAsRead(cutoff); err != nil || n != 1 {
		t.Fatalf("Manager.MarkOlderAsRead() = %d, %v", n, err)
	}
	if !old.Read() || fresh.Read() {
		t.Errorf("Manager.MarkOlderAsRead() old read = %v, fresh read = %v", old.Read(), fresh.Read())
	}

	repo.EXPECT().DeleteStale(m.now().Add(-180*24*time.Hour)).Return([]content.ArticleID{"old"}, nil)
	if n, err := m.Cleanup(); err != nil || n != 1 {
		t.Fatalf("Manager.Cleanup() = %d, %v", n, err)
	}
	if m.Cache().Get("old") != nil || m.Cache().Len() != 1 {
		t.Errorf("Manager.Cleanup() did not evict the stale status")
	}
}

func TestManager_ForgetFeed(t *testing.T) {
	m, _ := newManager(t)

	other := content.FeedID("http://sugr.org/other")
	m.Cache().AddIfNotCached(content.NewArticleStatus("a", feedID, false, false, m.now()))
	m.Cache().AddIfNotCached(content.NewArticleStatus("b", feedID, true, false, m.now()))
	m.Cache().AddIfNotCached(content.NewArticleStatus("c", other, false, false, m.now()))

	m.ForgetFeed(feedID)

	if m.Cache().Get("a") != nil || m.Cache().Get("b") != nil || m.Cache().Get("c") == nil {
		t.Errorf("Manager.ForgetFeed() left %d cached statuses, want only c", m.Cache().Len())
	}
}
