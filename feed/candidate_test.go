package feed

import (
	"reflect"
	"testing"
)

func TestCandidate_Merge(t *testing.T) {
	tests := []struct {
		name string
		a, b Candidate
		want Candidate
	}{
		{
			"title from incoming",
			Candidate{URL: "u", Source: HTMLLink, OrderFound: 3},
			Candidate{Title: "Feed", URL: "u", Source: HTMLHead, OrderFound: 5},
			Candidate{Title: "Feed", URL: "u", Source: HTMLHead, OrderFound: 3},
		},
		{
			"existing title kept",
			Candidate{Title: "First", URL: "u", Source: HTMLHead, OrderFound: 2},
			Candidate{Title: "Second", URL: "u", Source: HTMLLink, OrderFound: 1},
			Candidate{Title: "First", URL: "u", Source: HTMLHead, OrderFound: 1},
		},
		{
			"user entered wins",
			Candidate{URL: "u", Source: HTMLLink, OrderFound: 1},
			Candidate{URL: "u", Source: UserEntered, OrderFound: 1},
			Candidate{URL: "u", Source: UserEntered, OrderFound: 1},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.a.Merge(tt.b); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Candidate.Merge() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestCandidate_MergeCommutes(t *testing.T) {
	titles := []string{"", "Feed"}
	sources := []Source{UserEntered, HTMLHead, HTMLLink}

	for _, ta := range titles {
		for _, sa := range sources {
			for _, sb := range sources {
				a := Candidate{Title: ta, URL: "u", Source: sa, OrderFound: 1}
				b := Candidate{URL: "u", Source: sb, OrderFound: 2}

				ab, ba := a.Merge(b), b.Merge(a)
				if ab.Title != ba.Title || ab.Source != ba.Source || ab.OrderFound != ba.OrderFound {
					t.Errorf("merge of %#v and %#v is not commutative: %#v vs %#v", a, b, ab, ba)
				}
			}
		}
	}
}

func TestCandidate_Score(t *testing.T) {
	tests := []struct {
		name string
		c    Candidate
		want int
	}{
		{"user entered", Candidate{URL: "http://example.com/comments/podcast", Source: UserEntered, OrderFound: 9}, 1000},
		{"head", Candidate{URL: "http://example.com/atom", Source: HTMLHead, OrderFound: 1}, 50},
		{"head second", Candidate{URL: "http://example.com/atom", Source: HTMLHead, OrderFound: 2}, 45},
		{"comments in title", Candidate{Title: "Comments Feed", URL: "http://example.com/c", Source: HTMLHead, OrderFound: 1}, 40},
		{"comments in both", Candidate{Title: "Comments", URL: "http://example.com/comments", Source: HTMLHead, OrderFound: 1}, 40},
		{"podcast", Candidate{URL: "http://example.com/podcast.xml", Source: HTMLLink, OrderFound: 1}, -10},
		{"rss", Candidate{URL: "http://example.com/rss", Source: HTMLLink, OrderFound: 1}, 5},
		{"feed slash", Candidate{URL: "http://example.com/feed/", Source: HTMLLink, OrderFound: 1}, 5},
		{"feed", Candidate{URL: "http://example.com/feed", Source: HTMLLink, OrderFound: 1}, 4},
		{"json url", Candidate{URL: "http://example.com/feed.json", Source: HTMLHead, OrderFound: 1}, 56},
		{"json title", Candidate{Title: "JSON Feed", URL: "http://example.com/f", Source: HTMLHead, OrderFound: 1}, 51},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Score(); got != tt.want {
				t.Errorf("Candidate.Score() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCandidates_Best(t *testing.T) {
	tests := []struct {
		name       string
		candidates []Candidate
		want       string
		found      bool
	}{
		{"empty", nil, "", false},
		{
			"user entered always wins",
			[]Candidate{
				{URL: "http://example.com/feed.json", Title: "JSON Feed RSS", Source: HTMLHead, OrderFound: 1},
				{URL: "http://example.com/comments", Source: UserEntered, OrderFound: 4},
			},
			"http://example.com/comments", true,
		},
		{
			"head beats body",
			[]Candidate{
				{URL: "http://example.com/rss/feed/", Source: HTMLLink, OrderFound: 1},
				{URL: "http://example.com/atom", Source: HTMLHead, OrderFound: 3},
			},
			"http://example.com/atom", true,
		},
		{
			"comments feed loses",
			[]Candidate{
				{URL: "http://example.com/comments/feed/", Title: "Comments", Source: HTMLHead, OrderFound: 1},
				{URL: "http://example.com/feed/", Title: "Posts", Source: HTMLHead, OrderFound: 2},
			},
			"http://example.com/feed/", true,
		},
		{
			"tie goes to order",
			[]Candidate{
				{URL: "http://example.com/b", Source: HTMLHead, OrderFound: 1},
				{URL: "http://example.com/a", Source: HTMLHead, OrderFound: 1},
				{URL: "http://example.com/c", Source: HTMLLink, OrderFound: 1},
			},
			"http://example.com/a", true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cs := Candidates{}
			for _, c := range tt.candidates {
				cs.Add(c)
			}

			got, found := cs.Best()
			if found != tt.found || got.URL != tt.want {
				t.Errorf("Candidates.Best() = %q, %v, want %q, %v", got.URL, found, tt.want, tt.found)
			}

			if sorted := cs.Sorted(); len(sorted) > 0 && sorted[0].URL != tt.want {
				t.Errorf("Candidates.Sorted()[0] = %q, want %q", sorted[0].URL, tt.want)
			}
		})
	}
}

func TestCandidates_Add(t *testing.T) {
	cs := Candidates{}
	cs.Add(Candidate{URL: "u", Source: HTMLLink, OrderFound: 4})
	cs.Add(Candidate{URL: "u", Title: "Feed", Source: HTMLHead, OrderFound: 2})
	cs.Add(Candidate{URL: "v", Source: HTMLLink, OrderFound: 5})

	if len(cs) != 2 {
		t.Fatalf("len(Candidates) = %d, want 2", len(cs))
	}

	want := Candidate{URL: "u", Title: "Feed", Source: HTMLHead, OrderFound: 2}
	if cs["u"] != want {
		t.Errorf("Candidates[u] = %#v, want %#v", cs["u"], want)
	}

	if head := cs.BySource(HTMLHead); len(head) != 1 {
		t.Errorf("BySource(HTMLHead) = %v", head)
	}
}
