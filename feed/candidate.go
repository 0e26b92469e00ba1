package feed

import (
	"sort"
	"strings"
)

// Source tells where a candidate was discovered. Lower values are more
// trustworthy.
type Source int

const (
	UserEntered Source = iota
	HTMLHead
	HTMLLink
)

func (s Source) String() string {
	switch s {
	case UserEntered:
		return "user entered"
	case HTMLHead:
		return "html head"
	case HTMLLink:
		return "html link"
	default:
		return "unknown"
	}
}

// Candidate is a url that might be a feed.
type Candidate struct {
	Title      string `json:"title,omitempty"`
	URL        string `json:"url"`
	Source     Source `json:"source"`
	OrderFound int    `json:"orderFound"`
}

// Merge combines two candidates with the same url. The existing title is
// kept if present, the better source wins and the earliest order is kept.
func (c Candidate) Merge(o Candidate) Candidate {
	merged := c

	if merged.Title == "" {
		merged.Title = o.Title
	}

	if o.Source < merged.Source {
		merged.Source = o.Source
	}

	if o.OrderFound < merged.OrderFound {
		merged.OrderFound = o.OrderFound
	}

	return merged
}

// Score rates how likely the candidate is to be the site's main feed.
func (c Candidate) Score() int {
	if c.Source == UserEntered {
		return 1000
	}

	score := 0
	if c.Source == HTMLHead {
		score = 50
	}

	score -= (c.OrderFound - 1) * 5

	url := strings.ToLower(c.URL)
	title := strings.ToLower(c.Title)
	either := func(s string) bool {
		return strings.Contains(url, s) || strings.Contains(title, s)
	}

	if either("comments") {
		score -= 10
	}
	if either("podcast") {
		score -= 10
	}
	if either("rss") {
		score += 5
	}

	if strings.HasSuffix(url, "/feed/") {
		score += 5
	}
	if strings.HasSuffix(url, "/feed") {
		score += 4
	}

	if strings.Contains(url, "json") {
		score += 6
	}
	if strings.Contains(title, "json") {
		score++
	}

	return score
}

// Candidates holds at most one candidate per url.
type Candidates map[string]Candidate

// Add merges the candidate into the set.
func (cs Candidates) Add(c Candidate) {
	if existing, ok := cs[c.URL]; ok {
		cs[c.URL] = existing.Merge(c)
	} else {
		cs[c.URL] = c
	}
}

// BySource returns the candidates discovered by the given source.
func (cs Candidates) BySource(s Source) Candidates {
	filtered := Candidates{}
	for url, c := range cs {
		if c.Source == s {
			filtered[url] = c
		}
	}

	return filtered
}

// Sorted returns the candidates from best to worst.
func (cs Candidates) Sorted() []Candidate {
	sorted := make([]Candidate, 0, len(cs))
	for _, c := range cs {
		sorted = append(sorted, c)
	}

	sort.Slice(sorted, func(i, j int) bool {
		return better(sorted[i], sorted[j])
	})

	return sorted
}

// Best returns the highest scoring candidate. Ties go to the candidate found
// first, then to the lexically smaller url.
func (cs Candidates) Best() (Candidate, bool) {
	var best Candidate
	found := false

	for _, c := range cs {
		if !found || better(c, best) {
			best = c
			found = true
		}
	}

	return best, found
}

func better(a, b Candidate) bool {
	if sa, sb := a.Score(), b.Score(); sa != sb {
		return sa > sb
	}

	if a.OrderFound != b.OrderFound {
		return a.OrderFound < b.OrderFound
	}

	return a.URL < b.URL
}
