package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/content/repo/mock_repo"
	"github.com/urandom/feedkeeper/feed"
)

func Test_listFeeds(t *testing.T) {
	tests := []struct {
		name     string
		feeds    []content.Feed
		feedsErr error
		counts   map[content.FeedID]int64
		code     int
		want     map[content.FeedID]int64
	}{
		{
			name: "feeds",
			feeds: []content.Feed{
				content.NewFeed("http://example.com/a", "A"),
				content.NewFeed("http://example.com/b", "B"),
			},
			counts: map[content.FeedID]int64{"http://example.com/a": 3},
			code:   http.StatusOK,
			want:   map[content.FeedID]int64{"http://example.com/a": 3, "http://example.com/b": 0},
		},
		{name: "no feeds", code: http.StatusOK, want: map[content.FeedID]int64{}},
		{name: "suspended", feedsErr: content.ErrSuspended, code: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statuses, statusRepo, ctrl := newStatuses(t)
			feedRepo := mock_repo.NewMockFeed(ctrl)

			feedRepo.EXPECT().All().Return(tt.feeds, tt.feedsErr)
			if tt.feedsErr == nil && len(tt.feeds) > 0 {
				statusRepo.EXPECT().Count(gomock.Any()).Return(tt.counts, nil)
			}

			r := httptest.NewRequest("GET", "/", nil)
			w := httptest.NewRecorder()

			listFeeds(feedRepo, statuses, logger).ServeHTTP(w, r)

			if w.Code != tt.code {
				t.Fatalf("listFeeds() code = %d, want %d", w.Code, tt.code)
			}

			if tt.code != http.StatusOK {
				return
			}

			var data struct {
				Feeds []struct {
					ID     content.FeedID `json:"id"`
					Unread int64          `json:"unread"`
				} `json:"feeds"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &data); err != nil {
				t.Fatalf("listFeeds() body = %s, error = %v", w.Body, err)
			}

			got := map[content.FeedID]int64{}
			for _, f := range data.Feeds {
				got[f.ID] = f.Unread
			}

			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("listFeeds() counts = %v, want %v", got, tt.want)
			}
		})
	}
}

func Test_discoverFeeds(t *testing.T) {
	candidates := feed.Candidates{}
	candidates.Add(feed.Candidate{URL: "http://example.com/comments/feed", Source: feed.HTMLHead, OrderFound: 1})
	candidates.Add(feed.Candidate{URL: "http://example.com/feed", Source: feed.HTMLHead, OrderFound: 2})

	tests := []struct {
		name   string
		query  string
		finder *fakeFinder
		code   int
		first  string
	}{
		{"no url", "", &fakeFinder{}, http.StatusBadRequest, ""},
		{"not found", "?url=example.com", &fakeFinder{err: feed.ErrNotFound}, http.StatusNotFound, ""},
		{"network error", "?url=example.com", &fakeFinder{err: errors.New("dial tcp: refused")}, http.StatusBadGateway, ""},
		{"sorted", "?url=example.com", &fakeFinder{candidates: candidates}, http.StatusOK, "http://example.com/feed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/discover"+tt.query, nil)
			w := httptest.NewRecorder()

			discoverFeeds(tt.finder, logger).ServeHTTP(w, r)

			if w.Code != tt.code {
				t.Fatalf("discoverFeeds() code = %d, want %d", w.Code, tt.code)
			}

			if tt.first == "" {
				return
			}

			var data struct {
				Feeds []struct {
					URL   string `json:"url"`
					Score int    `json:"score"`
				} `json:"feeds"`
			}
			if err := json.Unmarshal(w.Body.Bytes(), &data); err != nil {
				t.Fatalf("discoverFeeds() body = %s, error = %v", w.Body, err)
			}

			if len(data.Feeds) != 2 || data.Feeds[0].URL != tt.first || data.Feeds[0].Score != 49 {
				t.Errorf("discoverFeeds() feeds = %#v", data.Feeds)
			}
		})
	}
}

func Test_addFeed(t *testing.T) {
	candidates := feed.Candidates{}
	candidates.Add(feed.Candidate{URL: "http://example.com/rss", Title: "Posts", Source: feed.HTMLHead, OrderFound: 1})
	candidates.Add(feed.Candidate{URL: "http://example.com/podcast", Title: "Podcast", Source: feed.HTMLHead, OrderFound: 2})

	tests := []struct {
		name      string
		body      string
		finder    *fakeFinder
		createErr error
		code      int
		create    bool
	}{
		{"invalid body", "{", &fakeFinder{}, nil, http.StatusBadRequest, false},
		{"not found", `{"url": "http://example.com"}`, &fakeFinder{err: feed.ErrNotFound}, nil, http.StatusNotFound, false},
		{"created", `{"url": "http://example.com"}`, &fakeFinder{candidates: candidates}, nil, http.StatusCreated, true},
		{"create error", `{"url": "http://example.com"}`, &fakeFinder{candidates: candidates}, errors.New("disk full"), http.StatusInternalServerError, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			feedRepo := mock_repo.NewMockFeed(ctrl)
			trigger := &fakeTrigger{}

			if tt.create {
				want := content.NewFeed("http://example.com/rss", "Posts")
				feedRepo.EXPECT().Create(&want).Return(tt.createErr)
			}

			r := httptest.NewRequest("POST", "/", strings.NewReader(tt.body))
			w := httptest.NewRecorder()

			addFeed(feedRepo, tt.finder, trigger, logger).ServeHTTP(w, r)

			if w.Code != tt.code {
				t.Fatalf("addFeed() code = %d, want %d, body %s", w.Code, tt.code, w.Body)
			}

			if wantTrigger := tt.code == http.StatusCreated; (trigger.calls == 1) != wantTrigger {
				t.Errorf("addFeed() trigger calls = %d", trigger.calls)
			}
		})
	}
}

func Test_deleteFeed(t *testing.T) {
	tests := []struct {
		name   string
		query  string
		getErr error
		code   int
	}{
		{"no id", "", nil, http.StatusBadRequest},
		{"missing", "?id=http://example.com/rss", content.ErrNoContent, http.StatusNotFound},
		{"deleted", "?id=http://example.com/rss", nil, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			statuses, _, ctrl := newStatuses(t)
			feedRepo := mock_repo.NewMockFeed(ctrl)
			f := content.NewFeed("http://example.com/rss", "")

			cached := content.NewArticleStatus(content.NewArticleID(f.ID, "1"), f.ID, false, false, time.Now())
			statuses.Cache().AddIfNotCached(cached)

			if tt.query != "" {
				feedRepo.EXPECT().Get(f.ID).Return(f, tt.getErr)
				if tt.getErr == nil {
					feedRepo.EXPECT().Delete(f).Return(nil)
				}
			}

			r := httptest.NewRequest("DELETE", "/"+tt.query, nil)
			w := httptest.NewRecorder()

			deleteFeed(feedRepo, statuses, logger).ServeHTTP(w, r)

			if w.Code != tt.code {
				t.Errorf("deleteFeed() code = %d, want %d", w.Code, tt.code)
			}

			if evicted := statuses.Cache().Get(cached.ArticleID) == nil; evicted != (tt.code == http.StatusOK) {
				t.Errorf("deleteFeed() evicted cached statuses = %v", evicted)
			}
		})
	}
}

func Test_refreshFeeds(t *testing.T) {
	trigger := &fakeTrigger{}
	handler := refreshFeeds(trigger)

	for i, want := range []string{`{"queued":true}`, `{"queued":false}`} {
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest("POST", "/refresh", nil))

		if w.Code != http.StatusAccepted || w.Body.String() != want {
			t.Errorf("refreshFeeds() call %d = %d %s, want %s", i, w.Code, w.Body, want)
		}
	}
}
