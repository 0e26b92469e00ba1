package feed

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/config"
	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/content/repo"
	"github.com/urandom/feedkeeper/content/status"
	"github.com/urandom/feedkeeper/download"
	"github.com/urandom/feedkeeper/log"
	"github.com/urandom/feedkeeper/parser"
	"github.com/urandom/feedkeeper/parser/processor"
)

// Result summarizes a refresh batch.
type Result struct {
	Feeds       int
	Updated     int
	NotModified int
	Failed      int
	Articles    int
	Duration    time.Duration
}

// Refresher downloads every stored feed and saves its articles, resolving
// their statuses along the way. It is the delegate of its own download
// session.
type Refresher struct {
	repo       repo.Service
	statuses   *status.Manager
	processors []processor.Article
	session    *download.Session
	log        log.Log

	refreshMu sync.Mutex

	mu    sync.Mutex
	feeds map[string]content.Feed
	batch *batch
}

type batch struct {
	wg   sync.WaitGroup
	done chan struct{}

	updated     int32
	notModified int32
	failed      int32
	articles    int32
}

func NewRefresher(
	ctx context.Context,
	service repo.Service,
	statuses *status.Manager,
	client *http.Client,
	cfg config.Download,
	log log.Log,
	processors ...processor.Article,
) *Refresher {
	r := &Refresher{
		repo:       service,
		statuses:   statuses,
		processors: processors,
		log:        log,
		feeds:      map[string]content.Feed{},
	}

	r.session = download.NewSession(ctx, client, r, cfg, log)

	return r
}

// Refresh downloads all feeds and waits until they are processed. Calls
// are serialized.
func (r *Refresher) Refresh(ctx context.Context) (Result, error) {
	r.refreshMu.Lock()
	defer r.refreshMu.Unlock()

	start := time.Now()

	feeds, err := r.repo.FeedRepo().All()
	if err != nil {
		return Result{}, errors.WithMessage(err, "getting feeds for refresh")
	}

	res := Result{Feeds: len(feeds)}
	if len(feeds) == 0 {
		return res, nil
	}

	b := &batch{done: make(chan struct{})}
	ids := make([]string, len(feeds))

	r.mu.Lock()
	r.batch = b
	for i, f := range feeds {
		ids[i] = string(f.ID)
		r.feeds[ids[i]] = f
	}
	r.mu.Unlock()

	r.log.Infof("Refreshing %d feeds", len(feeds))
	r.session.Download(ids...)

	select {
	case <-b.done:
	case <-r.session.Done():
		return res, errors.New("download session stopped")
	case <-ctx.Done():
		return res, errors.Wrap(ctx.Err(), "refreshing feeds")
	}

	res.Updated = int(atomic.LoadInt32(&b.updated))
	res.NotModified = int(atomic.LoadInt32(&b.notModified))
	res.Failed = int(atomic.LoadInt32(&b.failed))
	res.Articles = int(atomic.LoadInt32(&b.articles))
	res.Duration = time.Since(start)

	r.log.Infof("Refreshed %d feeds in %s: %d updated, %d not modified, %d failed, %d articles",
		res.Feeds, res.Duration, res.Updated, res.NotModified, res.Failed, res.Articles)

	return res, nil
}

// Suspend cancels any running downloads. Feeds are not downloaded until
// Resume is called.
func (r *Refresher) Suspend() {
	r.session.Suspend()
}

func (r *Refresher) Resume() {
	r.session.Resume()
}

func (r *Refresher) Progress() download.Progress {
	return r.session.Progress()
}

func (r *Refresher) feed(id string) (content.Feed, *batch, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	f, ok := r.feeds[id]

	return f, r.batch, ok
}

func (r *Refresher) RequestFor(id string) (*http.Request, error) {
	f, _, ok := r.feed(id)
	if !ok {
		return nil, errors.Errorf("unknown feed %s", id)
	}

	req, err := http.NewRequest("GET", f.Link, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "creating request for feed %s", f)
	}

	download.ConditionalGetInfo{ETag: f.ETag, LastModified: f.LastModified}.AddRequestHeaders(req)

	return req, nil
}

func (r *Refresher) ShouldContinue(id string, data []byte) bool {
	return !notFeedData(data)
}

func (r *Refresher) Cancelled(id string, resp *http.Response, reason download.CancellationReason) {
	f, b, ok := r.feed(id)
	if !ok {
		return
	}

	switch reason {
	case download.Suspended:
		r.log.Debugf("Refresh of feed %s suspended", f)
	case download.NotModified:
		r.log.Debugf("Feed %s not modified", f)
		atomic.AddInt32(&b.notModified, 1)
	case download.NotFeedData:
		atomic.AddInt32(&b.failed, 1)
		r.async(b, func() { r.updateError(f, "downloaded data is not a feed") })
	case download.UnexpectedResponse:
		msg := "request was not sent"
		if resp != nil {
			msg = fmt.Sprintf("HTTP status: %d", resp.StatusCode)
		}

		atomic.AddInt32(&b.failed, 1)
		r.async(b, func() { r.updateError(f, msg) })
	}
}

func (r *Refresher) Complete(id string, resp *http.Response, data []byte, err error) {
	f, b, ok := r.feed(id)
	if !ok {
		return
	}

	if err != nil {
		r.log.Printf("Error downloading feed %s: %+v", f, err)
		atomic.AddInt32(&b.failed, 1)
		r.async(b, func() { r.updateError(f, err.Error()) })
		return
	}

	r.async(b, func() {
		count, err := r.process(f, resp, data)
		if err != nil {
			r.log.Printf("Error processing feed %s: %+v", f, err)
			atomic.AddInt32(&b.failed, 1)
			if !content.IsSuspended(err) {
				r.updateError(f, err.Error())
			}
			return
		}

		atomic.AddInt32(&b.updated, 1)
		atomic.AddInt32(&b.articles, int32(count))
	})
}

func (r *Refresher) DiscardedDuplicate(id string) {
	r.log.Debugf("Feed %s is already being refreshed", id)
}

func (r *Refresher) BatchComplete() {
	r.mu.Lock()
	b := r.batch
	r.batch = nil
	r.feeds = map[string]content.Feed{}
	r.mu.Unlock()

	if b == nil {
		return
	}

	go func() {
		b.wg.Wait()
		close(b.done)
	}()
}

// async runs the processing of a single feed off the session goroutine.
func (r *Refresher) async(b *batch, fn func()) {
	if b == nil {
		fn()
		return
	}

	b.wg.Add(1)
	go func() {
		defer b.wg.Done()
		fn()
	}()
}

func (r *Refresher) process(f content.Feed, resp *http.Response, data []byte) (int, error) {
	pf, err := parser.Parse(f.Link, data)
	if err != nil {
		return 0, err
	}

	articles := make([]content.Article, len(pf.Items))
	uniqueIDs := make([]string, len(pf.Items))
	for i, item := range pf.Items {
		articles[i] = item.Article(f.ID)
		uniqueIDs[i] = item.UniqueID
	}

	articles = processor.Process(articles, r.processors...)

	if _, err := r.statuses.Resolve(f.ID, uniqueIDs); err != nil {
		return 0, errors.WithMessagef(err, "resolving statuses of feed %s", f)
	}

	if err := r.repo.ArticleRepo().Save(articles); err != nil {
		return 0, errors.WithMessagef(err, "saving articles of feed %s", f)
	}

	info := download.ConditionalGetInfoFrom(resp)
	f.ETag, f.LastModified = info.ETag, info.LastModified
	if f.Title == "" {
		f.Title = pf.Title
	}
	if pf.SiteLink != "" {
		f.SiteLink = pf.SiteLink
	}
	f.UpdateError = ""

	if err := r.repo.FeedRepo().Update(&f); err != nil {
		return 0, errors.WithMessagef(err, "updating feed %s", f)
	}

	r.log.Debugf("Feed %s refreshed with %d articles", f, len(articles))

	return len(articles), nil
}

func (r *Refresher) updateError(f content.Feed, msg string) {
	if f.UpdateError == msg {
		return
	}

	f.UpdateError = msg
	if err := r.repo.FeedRepo().Update(&f); err != nil {
		r.log.Printf("Error updating feed %s: %+v", f, err)
	}
}
