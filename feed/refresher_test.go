package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/urandom/feedkeeper/config"
	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/content/repo/kv"
	"github.com/urandom/feedkeeper/content/status"
	"github.com/urandom/feedkeeper/parser/processor"
)

func newRefresher(t *testing.T) (*Refresher, kv.Service, *status.Manager) {
	t.Helper()

	svc, err := kv.NewService(filepath.Join(t.TempDir(), "content.db"), logger)
	if err != nil {
		t.Fatalf("kv.NewService() error = %+v", err)
	}
	t.Cleanup(func() { svc.Close() })

	cfg := config.Status{}
	cfg.Convert()
	statuses := status.NewManager(svc.StatusRepo(), cfg, logger)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	r := NewRefresher(ctx, svc, statuses, nil, config.Download{}, logger,
		processor.NewCleanup(logger), processor.NewAbsoluteURL(logger))

	return r, svc, statuses
}

func TestRefresher_Refresh(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/news":
			if r.Header.Get("If-None-Match") == `"v1"` {
				w.WriteHeader(http.StatusNotModified)
				return
			}
			w.Header().Set("ETag", `"v1"`)
			w.Write([]byte(rssFeed))
		case "/logo":
			w.Write([]byte("\x89PNG\r\n\x1a\n" + strings.Repeat("0", 256)))
		default:
			w.WriteHeader(http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	r, svc, statuses := newRefresher(t)

	feeds := map[string]content.Feed{}
	for _, p := range []string{"/news", "/logo", "/broken"} {
		f := content.NewFeed(server.URL+p, "")
		if err := svc.FeedRepo().Create(&f); err != nil {
			t.Fatalf("FeedRepo.Create() error = %+v", err)
		}
		feeds[p] = f
	}

	res, err := r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresher.Refresh() error = %+v", err)
	}

	if res.Feeds != 3 || res.Updated != 1 || res.NotModified != 0 || res.Failed != 2 || res.Articles != 2 {
		t.Errorf("Refresher.Refresh() = %#v", res)
	}

	news, err := svc.FeedRepo().Get(feeds["/news"].ID)
	if err != nil {
		t.Fatalf("FeedRepo.Get() error = %+v", err)
	}
	if news.ETag != `"v1"` || news.Title != "Liftoff News" || news.SiteLink != "http://liftoff.msfc.nasa.gov/" || news.UpdateError != "" {
		t.Errorf("refreshed feed = %#v", news)
	}

	articles, err := svc.ArticleRepo().ForFeed(news.ID)
	if err != nil {
		t.Fatalf("ArticleRepo.ForFeed() error = %+v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("len(articles) = %d, want 2", len(articles))
	}

	for _, a := range articles {
		if strings.Contains(a.Content, `href="/iss"`) {
			t.Errorf("article %s has a relative link: %s", a.ID, a.Content)
		}
	}

	for _, p := range []string{"/logo", "/broken"} {
		f, err := svc.FeedRepo().Get(feeds[p].ID)
		if err != nil {
			t.Fatalf("FeedRepo.Get() error = %+v", err)
		}
		if f.UpdateError == "" {
			t.Errorf("feed %s has no update error", p)
		}
	}

	if count, err := statuses.UnreadCount(news.ID); err != nil || count != 2 {
		t.Errorf("UnreadCount() = %d, %v, want 2", count, err)
	}

	res, err = r.Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresher.Refresh() error = %+v", err)
	}

	if res.Updated != 0 || res.NotModified != 1 || res.Failed != 2 {
		t.Errorf("second Refresher.Refresh() = %#v", res)
	}

	if count, err := statuses.UnreadCount(news.ID); err != nil || count != 2 {
		t.Errorf("UnreadCount() after second refresh = %d, %v, want 2", count, err)
	}
}

func TestRefresher_Suspended(t *testing.T) {
	r, svc, _ := newRefresher(t)

	svc.Suspend()
	if _, err := r.Refresh(context.Background()); !content.IsSuspended(err) {
		t.Errorf("Refresher.Refresh() error = %v, want suspended", err)
	}
	svc.Resume()

	res, err := r.Refresh(context.Background())
	if err != nil || res.Feeds != 0 {
		t.Errorf("Refresher.Refresh() = %#v, %v", res, err)
	}
}
