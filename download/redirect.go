package download

import (
	"net/http"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

const maxRedirects = 10

// Captive portals and similar interstitials redirect everything to their own
// pages. Such targets are never remembered.
var redirectBlacklist = []string{
	"solutionip",
	"lodgenet",
	"monzoon",
	"landingpage",
	"btopenzone",
	"register",
	"login",
	"authentic",
}

// redirectCache remembers permanent locations of previously redirected urls.
type redirectCache struct {
	mu        sync.RWMutex
	redirects map[string]string
}

func newRedirectCache() *redirectCache {
	return &redirectCache{redirects: map[string]string{}}
}

// Add records a redirect, unless the target looks like an interstitial.
func (c *redirectCache) Add(from, to string) {
	if from == "" || to == "" || from == to || isBlacklisted(to) {
		return
	}

	c.mu.Lock()
	c.redirects[from] = to
	c.mu.Unlock()
}

// Resolve follows the recorded redirects for the given url. It returns an
// empty string if there are none, or if they form a cycle.
func (c *redirectCache) Resolve(url string) string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	seen := map[string]bool{url: true}
	current := url
	for {
		next, ok := c.redirects[current]
		if !ok {
			break
		}
		if seen[next] {
			return ""
		}

		seen[next] = true
		current = next
	}

	if current == url {
		return ""
	}

	return current
}

func isBlacklisted(url string) bool {
	lower := strings.ToLower(url)
	for _, s := range redirectBlacklist {
		if strings.Contains(lower, s) {
			return true
		}
	}

	return false
}

type traceKey struct{}

// redirectTrace collects the redirects followed by a single request. It is
// only touched by the goroutine performing the request.
type redirectTrace struct {
	hops      int
	permanent bool
}

// traceRedirects returns a copy of the client that records followed
// redirects into the request's redirectTrace, if any.
func traceRedirects(client *http.Client) *http.Client {
	c := *client
	check := client.CheckRedirect

	c.CheckRedirect = func(req *http.Request, via []*http.Request) error {
		if trace, ok := req.Context().Value(traceKey{}).(*redirectTrace); ok {
			trace.hops++
			if req.Response == nil || (req.Response.StatusCode != http.StatusMovedPermanently &&
				req.Response.StatusCode != http.StatusPermanentRedirect) {
				trace.permanent = false
			}
		}

		if check != nil {
			return check(req, via)
		}

		if len(via) >= maxRedirects {
			return errors.Errorf("stopped after %d redirects", maxRedirects)
		}

		return nil
	}

	return &c
}
