package feed

import (
	"context"
	"net/http"
	"net/url"
	"path"
	"regexp"
	"strings"
	"sync"

	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/config"
	"github.com/urandom/feedkeeper/download"
	"github.com/urandom/feedkeeper/log"
	"github.com/urandom/feedkeeper/parser"
)

// ErrNotFound is returned when no feed could be discovered.
var ErrNotFound = errors.New("feed not found")

// IsNotFound checks whether the error's cause is ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Cause(err) == ErrNotFound
}

var domainPattern = regexp.MustCompile(`^(?:[a-zA-Z0-9-]+\.)+[a-zA-Z]{2,}(?:[:/].*)?$`)

// Finder discovers the feeds of a web page.
type Finder struct {
	downloader *Downloader
	client     *http.Client
	cfg        config.Download
	log        log.Log
}

func NewFinder(downloader *Downloader, client *http.Client, cfg config.Download, log log.Log) Finder {
	return Finder{
		downloader: downloader,
		client:     client,
		cfg:        cfg,
		log:        log,
	}
}

// NormalizeURL turns user input such as "example.com/blog" into an absolute
// url.
func NormalizeURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if strings.HasPrefix(raw, "feed://") {
		raw = "http://" + strings.TrimPrefix(raw, "feed://")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", errors.Wrapf(err, "parsing url %q", raw)
	}

	if !u.IsAbs() {
		if !domainPattern.MatchString(raw) {
			return "", errors.Errorf("%q is not a url", raw)
		}

		if u, err = url.Parse("http://" + raw); err != nil {
			return "", errors.Wrapf(err, "parsing url %q", raw)
		}
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", errors.Errorf("unsupported url scheme %q", u.Scheme)
	}

	return u.String(), nil
}

// Find returns the feeds of the page at the given url. The url itself is
// returned as a UserEntered candidate if it is a feed. Feeds advertised in
// the page head are returned without further downloads, while feed-looking
// body links are only returned once downloaded and recognized as feeds.
func (f Finder) Find(ctx context.Context, rawURL string) (Candidates, error) {
	pageURL, err := NormalizeURL(rawURL)
	if err != nil {
		return nil, err
	}

	resp, err := f.downloader.Get(ctx, pageURL)
	if err != nil {
		return nil, errors.WithMessage(err, "finding feeds")
	}

	if resp.StatusCode == http.StatusNotFound {
		if c, ok := microblogCandidate(pageURL); ok {
			return Candidates{c.URL: c}, nil
		}

		f.log.Debugf("Finder: %s not found", pageURL)
		return nil, ErrNotFound
	}

	if !resp.OK() || len(resp.Data) == 0 {
		f.log.Debugf("Finder: %s returned %d with %d bytes", pageURL, resp.StatusCode, len(resp.Data))
		return nil, ErrNotFound
	}

	if isFeed(resp.Data) {
		f.log.Debugf("Finder: %s is a feed", pageURL)
		return Candidates{pageURL: {URL: pageURL, Source: UserEntered, OrderFound: 1}}, nil
	}

	if !parser.IsProbablyHTML(resp.Data) {
		f.log.Debugf("Finder: %s is neither a feed nor html", pageURL)
		return nil, ErrNotFound
	}

	candidates, err := htmlCandidates(resp.URL, resp.Data)
	if err != nil {
		return nil, errors.WithMessage(err, "finding feeds")
	}

	if head := candidates.BySource(HTMLHead); len(head) > 0 {
		f.log.Debugf("Finder: %s advertises %d feeds", pageURL, len(head))
		return head, nil
	}

	if len(candidates) == 0 {
		candidates = fallbackCandidates(resp.URL)
	}

	verified, err := f.verify(ctx, candidates)
	if err != nil {
		return nil, err
	}

	if len(verified) == 0 {
		return nil, ErrNotFound
	}

	return verified, nil
}

// FindBest returns the best scoring feed of the page.
func (f Finder) FindBest(ctx context.Context, rawURL string) (Candidate, error) {
	candidates, err := f.Find(ctx, rawURL)
	if err != nil {
		return Candidate{}, err
	}

	best, ok := candidates.Best()
	if !ok {
		return Candidate{}, ErrNotFound
	}

	return best, nil
}

// verify downloads the candidates and keeps the ones that are feeds.
func (f Finder) verify(ctx context.Context, candidates Candidates) (Candidates, error) {
	if len(candidates) == 0 {
		return Candidates{}, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	v := &verifier{
		candidates: candidates,
		verified:   Candidates{},
		downloader: f.downloader,
		log:        f.log,
		done:       make(chan struct{}),
	}

	links := make([]string, 0, len(candidates))
	for link := range candidates {
		links = append(links, link)
	}

	f.log.Debugf("Finder: verifying %d body links", len(links))
	session := download.NewSession(ctx, f.client, v, f.cfg, f.log)
	session.Download(links...)

	select {
	case <-v.done:
		return v.verified, nil
	case <-ctx.Done():
		return nil, errors.Wrap(ctx.Err(), "verifying feed links")
	}
}

func microblogCandidate(pageURL string) (Candidate, bool) {
	u, err := url.Parse(pageURL)
	if err != nil || u.Host != "micro.blog" {
		return Candidate{}, false
	}

	u.Path += ".json"

	return Candidate{URL: u.String(), Source: HTMLLink, OrderFound: 1}, true
}

// fallbackCandidates guesses the common cms feed locations.
func fallbackCandidates(pageURL string) Candidates {
	candidates := Candidates{}

	u, err := url.Parse(pageURL)
	if err != nil {
		return candidates
	}

	for _, p := range []string{"feed/", "index.xml"} {
		c := *u
		c.RawQuery, c.Fragment = "", ""
		c.Path = path.Join("/", u.Path, p)
		if strings.HasSuffix(p, "/") {
			c.Path += "/"
		}

		candidates.Add(Candidate{URL: c.String(), Source: HTMLLink, OrderFound: 1})
	}

	return candidates
}

func isFeed(data []byte) bool {
	return parser.Sniff(data, false).IsFeed()
}

// notFeedData checks a partial download for content that cannot be a feed.
func notFeedData(data []byte) bool {
	if parser.IsImage(data) {
		return true
	}

	if parser.IsProbablyJSON(data) {
		return false
	}

	return parser.IsProbablyHTML(data) && parser.Sniff(data, true) == parser.Unknown
}

type verifier struct {
	candidates Candidates
	downloader *Downloader
	log        log.Log

	mu       sync.Mutex
	verified Candidates
	done     chan struct{}
}

func (v *verifier) RequestFor(id string) (*http.Request, error) {
	req, err := http.NewRequest("GET", id, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "creating request for %s", id)
	}

	return req, nil
}

func (v *verifier) ShouldContinue(id string, data []byte) bool {
	return !notFeedData(data)
}

func (v *verifier) Cancelled(id string, resp *http.Response, reason download.CancellationReason) {
	v.log.Debugf("Finder: %s is not a feed: %s", id, reason)
}

func (v *verifier) Complete(id string, resp *http.Response, data []byte, err error) {
	if err != nil {
		v.log.Debugf("Finder: error verifying %s: %v", id, err)
		return
	}

	v.downloader.Store(id, Response{
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Header:     resp.Header,
		Data:       data,
	})

	if !isFeed(data) {
		return
	}

	v.mu.Lock()
	v.verified.Add(v.candidates[id])
	v.mu.Unlock()
}

func (v *verifier) DiscardedDuplicate(id string) {}

func (v *verifier) BatchComplete() {
	close(v.done)
}
