package feed

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"sync"
	"testing"

	"github.com/urandom/feedkeeper/config"
)

type site struct {
	mu    sync.Mutex
	pages map[string]string
	codes map[string]int
	hits  map[string]int
}

func (s *site) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	s.hits[r.URL.Path]++
	s.mu.Unlock()

	if code, ok := s.codes[r.URL.Path]; ok {
		w.WriteHeader(code)
		return
	}

	page, ok := s.pages[r.URL.Path]
	if !ok {
		http.NotFound(w, r)
		return
	}

	w.Write([]byte(page))
}

func (s *site) requests() map[string]int {
	s.mu.Lock()
	defer s.mu.Unlock()

	hits := map[string]int{}
	for k, v := range s.hits {
		hits[k] = v
	}

	return hits
}

func TestFinder_Find(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		pages    map[string]string
		codes    map[string]int
		want     []Candidate
		notFound bool
		hits     map[string]int
	}{
		{
			name:  "feed url",
			path:  "/rss",
			pages: map[string]string{"/rss": rssFeed},
			want:  []Candidate{{URL: "/rss", Source: UserEntered, OrderFound: 1}},
			hits:  map[string]int{"/rss": 1},
		},
		{
			name:     "404",
			path:     "/",
			codes:    map[string]int{"/": http.StatusNotFound},
			notFound: true,
			hits:     map[string]int{"/": 1},
		},
		{
			name:     "server error",
			path:     "/",
			codes:    map[string]int{"/": http.StatusInternalServerError},
			notFound: true,
			hits:     map[string]int{"/": 1},
		},
		{
			name:     "empty body",
			path:     "/",
			pages:    map[string]string{"/": ""},
			notFound: true,
			hits:     map[string]int{"/": 1},
		},
		{
			name:     "neither feed nor html",
			path:     "/",
			pages:    map[string]string{"/": strings.Repeat("plain text ", 20)},
			notFound: true,
			hits:     map[string]int{"/": 1},
		},
		{
			name: "head links are trusted",
			path: "/",
			pages: map[string]string{
				"/": htmlPage(`<link rel="alternate" type="application/rss+xml" title="Posts" href="/posts.rss">`,
					`<a href="/feed/">Feed</a><a href="/other.xml">Other</a>`),
			},
			want: []Candidate{{Title: "Posts", URL: "/posts.rss", Source: HTMLHead, OrderFound: 1}},
			hits: map[string]int{"/": 1},
		},
		{
			name: "body link verified",
			path: "/",
			pages: map[string]string{
				"/":      htmlPage(``, `<a href="/feed/">Subscribe</a>`),
				"/feed/": rssFeed,
			},
			want: []Candidate{{Title: "Subscribe", URL: "/feed/", Source: HTMLLink, OrderFound: 1}},
			hits: map[string]int{"/": 1, "/feed/": 1},
		},
		{
			name: "unverified body links dropped",
			path: "/",
			pages: map[string]string{
				"/":         htmlPage(``, `<a href="/feed/">Feed</a><a href="/rss-faq">What is RSS?</a><a href="/atom.png">Logo</a>`),
				"/feed/":    rssFeed,
				"/rss-faq":  htmlPage(``, `<p>RSS is a format</p>`),
				"/atom.png": "\x89PNG\r\n\x1a\n" + strings.Repeat("0", 200),
			},
			want: []Candidate{{Title: "Feed", URL: "/feed/", Source: HTMLLink, OrderFound: 1}},
			hits: map[string]int{"/": 1, "/feed/": 1, "/rss-faq": 1, "/atom.png": 1},
		},
		{
			name: "fallback",
			path: "/blog",
			pages: map[string]string{
				"/blog":           htmlPage(``, `<a href="/about">About</a>`),
				"/blog/index.xml": rssFeed,
			},
			want: []Candidate{{URL: "/blog/index.xml", Source: HTMLLink, OrderFound: 1}},
			hits: map[string]int{"/blog": 1, "/blog/feed/": 1, "/blog/index.xml": 1},
		},
		{
			name:     "nothing verified",
			path:     "/",
			pages:    map[string]string{"/": htmlPage(``, `<a href="/feed/">Feed</a>`)},
			notFound: true,
			hits:     map[string]int{"/": 1, "/feed/": 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := &site{pages: tt.pages, codes: tt.codes, hits: map[string]int{}}
			server := httptest.NewServer(s)
			defer server.Close()

			f := NewFinder(NewDownloader(nil, finderConfig(), config.Download{}, logger), nil, config.Download{}, logger)

			got, err := f.Find(context.Background(), server.URL+tt.path)
			if tt.notFound {
				if !IsNotFound(err) {
					t.Errorf("Finder.Find() error = %v, want not found", err)
				}
			} else if err != nil {
				t.Fatalf("Finder.Find() error = %+v", err)
			}

			want := Candidates{}
			for _, c := range tt.want {
				c.URL = server.URL + c.URL
				want.Add(c)
			}

			if !tt.notFound && !reflect.DeepEqual(got, want) {
				t.Errorf("Finder.Find() = %#v, want %#v", got, want)
			}

			if hits := s.requests(); !reflect.DeepEqual(hits, tt.hits) {
				t.Errorf("requests = %v, want %v", hits, tt.hits)
			}
		})
	}
}

func TestFinder_FindCached(t *testing.T) {
	s := &site{pages: map[string]string{"/feed": rssFeed}, hits: map[string]int{}}
	server := httptest.NewServer(s)
	defer server.Close()

	f := NewFinder(NewDownloader(nil, finderConfig(), config.Download{}, logger), nil, config.Download{}, logger)

	for i := 0; i < 3; i++ {
		best, err := f.FindBest(context.Background(), server.URL+"/feed")
		if err != nil {
			t.Fatalf("Finder.FindBest() error = %+v", err)
		}

		if best.URL != server.URL+"/feed" || best.Source != UserEntered {
			t.Errorf("Finder.FindBest() = %#v", best)
		}
	}

	if hits := s.requests(); hits["/feed"] != 1 {
		t.Errorf("requests = %v, want a single download", hits)
	}
}

func Test_microblogCandidate(t *testing.T) {
	c, ok := microblogCandidate("https://micro.blog/manton")
	if !ok || c.URL != "https://micro.blog/manton.json" || c.Source != HTMLLink || c.OrderFound != 1 {
		t.Errorf("microblogCandidate() = %#v, %v", c, ok)
	}

	if _, ok := microblogCandidate("https://example.com/manton"); ok {
		t.Error("microblogCandidate() matched a non micro.blog url")
	}
}

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"https://example.com/feed", "https://example.com/feed", false},
		{"  example.com/blog ", "http://example.com/blog", false},
		{"feed://example.com/rss", "http://example.com/rss", false},
		{"ftp://example.com/rss", "", true},
		{"not a url", "", true},
	}

	for _, tt := range tests {
		got, err := NormalizeURL(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("NormalizeURL(%q) = %q, %v, want %q", tt.in, got, err, tt.want)
		}
	}
}

func Test_notFeedData(t *testing.T) {
	tests := []struct {
		name string
		data string
		want bool
	}{
		{
			"json feed with html content before its version",
			`{"items": [{"id": "1", "content_html": "<html><body><p>` + strings.Repeat("Lorem ipsum. ", 20),
			false,
		},
		{"html page", htmlPage(``, `<p>Welcome</p>`)[:200], true},
		{"png", "\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR", true},
		{"partial rss", rssFeed[:100], false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := notFeedData([]byte(tt.data)); got != tt.want {
				t.Errorf("notFeedData() = %v, want %v", got, tt.want)
			}
		})
	}
}
