package download

import (
	"context"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/config"
	"github.com/urandom/feedkeeper/log"
	"github.com/urandom/feedkeeper/pool"
)

const (
	defaultMaxInFlight = 500
	chunkSize          = 32 << 10
)

// ErrNoRequest is passed to Delegate.Complete when the delegate could not
// provide a request for an id.
var ErrNoRequest = errors.New("no request for id")

// Progress is a snapshot of the current batch.
type Progress struct {
	Batch     string
	Total     int
	Completed int
	InFlight  int
	Pending   int
}

// Session downloads many ids concurrently, reporting every outcome to its
// delegate. All bookkeeping is owned by a single goroutine, started by
// NewSession and stopped when the context is done.
type Session struct {
	client   *http.Client
	delegate Delegate
	cfg      config.Download
	log      log.Log

	ops  chan sessionOp
	done chan struct{}
	now  func() time.Time
}

type sessionOp func(*sessionState)

type task struct {
	id     string
	url    string
	cancel context.CancelFunc
	trace  *redirectTrace
}

type result struct {
	task     *task
	resp     *http.Response
	data     []byte
	err      error
	reason   CancellationReason
	finalURL string
}

type sessionState struct {
	ctx context.Context

	inFlight   map[string]*task
	pending    []string
	pendingSet map[string]bool
	suspended  bool

	batch     string
	total     int
	completed int

	redirects  *redirectCache
	retryAfter map[string]time.Time
	skip       map[string]bool
}

// NewSession creates a session and starts its loop.
func NewSession(ctx context.Context, client *http.Client, delegate Delegate, cfg config.Download, log log.Log) *Session {
	if client == nil {
		client = http.DefaultClient
	}
	client = traceRedirects(client)

	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = defaultMaxInFlight
	}

	s := &Session{
		client:   client,
		delegate: delegate,
		cfg:      cfg,
		log:      log,
		ops:      make(chan sessionOp),
		done:     make(chan struct{}),
		now:      time.Now,
	}

	go s.loop(ctx)

	return s
}

// Download queues the given ids. Ids that are already pending or in flight
// are reported as duplicates.
func (s *Session) Download(ids ...string) {
	if len(ids) == 0 {
		return
	}

	s.do(func(st *sessionState) {
		for _, id := range ids {
			s.add(st, id)
		}

		s.checkBatch(st)
	})
}

// Suspend cancels all in-flight and pending downloads with the Suspended
// reason. Downloads requested while suspended are cancelled right away. The
// call returns once the cancellations have been reported.
func (s *Session) Suspend() {
	s.do(func(st *sessionState) {
		if st.suspended {
			return
		}

		st.suspended = true
		s.log.Infof("Suspending download session, cancelling %d in flight and %d pending", len(st.inFlight), len(st.pending))

		for id, t := range st.inFlight {
			t.cancel()
			delete(st.inFlight, id)
			st.completed++
			s.delegate.Cancelled(id, nil, Suspended)
		}

		pending := st.pending
		st.pending = nil
		st.pendingSet = map[string]bool{}
		for _, id := range pending {
			st.completed++
			s.delegate.Cancelled(id, nil, Suspended)
		}

		s.checkBatch(st)
	})
}

// Resume lets new downloads through again.
func (s *Session) Resume() {
	s.do(func(st *sessionState) {
		if st.suspended {
			s.log.Infoln("Resuming download session")
		}
		st.suspended = false
	})
}

// Progress returns a snapshot of the current batch.
func (s *Session) Progress() Progress {
	var p Progress
	s.do(func(st *sessionState) {
		p = Progress{
			Batch:     st.batch,
			Total:     st.total,
			Completed: st.completed,
			InFlight:  len(st.inFlight),
			Pending:   len(st.pending),
		}
	})

	return p
}

// Remaining returns the number of downloads in the batch that have not
// reached a terminal state.
func (p Progress) Remaining() int {
	return p.Total - p.Completed
}

// Done is closed once the session loop has stopped.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// do runs the op on the session goroutine and waits for it to finish.
func (s *Session) do(op sessionOp) {
	finished := make(chan struct{})

	select {
	case s.ops <- func(st *sessionState) {
		op(st)
		close(finished)
	}:
	case <-s.done:
		return
	}

	select {
	case <-finished:
	case <-s.done:
	}
}

func (s *Session) loop(ctx context.Context) {
	defer close(s.done)

	st := &sessionState{
		ctx:        ctx,
		inFlight:   map[string]*task{},
		pendingSet: map[string]bool{},
		redirects:  newRedirectCache(),
		retryAfter: map[string]time.Time{},
		skip:       map[string]bool{},
	}

	for {
		select {
		case op := <-s.ops:
			op(st)
		case <-ctx.Done():
			for _, t := range st.inFlight {
				t.cancel()
			}
			return
		}
	}
}

func (s *Session) add(st *sessionState, id string) {
	if st.inFlight[id] != nil || st.pendingSet[id] {
		s.log.Debugf("Batch %s: discarding duplicate %s", st.batch, id)
		s.delegate.DiscardedDuplicate(id)
		return
	}

	s.openBatch(st)
	st.total++

	if st.suspended {
		st.completed++
		s.delegate.Cancelled(id, nil, Suspended)
		return
	}

	if len(st.inFlight) < s.cfg.MaxInFlight {
		s.start(st, id)
	} else {
		st.pending = append(st.pending, id)
		st.pendingSet[id] = true
	}
}

func (s *Session) openBatch(st *sessionState) {
	if st.batch != "" {
		return
	}

	st.batch = uuid.New().String()
	st.total, st.completed = 0, 0
	s.log.Debugf("Batch %s: started", st.batch)
}

func (s *Session) checkBatch(st *sessionState) {
	if st.batch == "" || len(st.inFlight) > 0 || len(st.pending) > 0 {
		return
	}

	s.log.Debugf("Batch %s: %d downloads finished", st.batch, st.completed)
	st.batch = ""
	s.delegate.BatchComplete()
}

func (s *Session) startPending(st *sessionState) {
	for !st.suspended && len(st.pending) > 0 && len(st.inFlight) < s.cfg.MaxInFlight {
		id := st.pending[0]
		st.pending = st.pending[1:]
		delete(st.pendingSet, id)

		s.start(st, id)
	}
}

func (s *Session) start(st *sessionState, id string) {
	req, err := s.delegate.RequestFor(id)
	if err == nil && req == nil {
		err = ErrNoRequest
	}
	if err != nil {
		st.completed++
		s.delegate.Complete(id, nil, nil, errors.WithMessagef(err, "creating request for %s", id))
		return
	}

	url := req.URL.String()
	if until, ok := st.retryAfter[req.URL.Host]; ok {
		if s.now().Before(until) {
			s.log.Debugf("Batch %s: host %s asked to retry after %s, skipping %s", st.batch, req.URL.Host, until, id)
			st.completed++
			s.delegate.Cancelled(id, nil, UnexpectedResponse)
			return
		}
		delete(st.retryAfter, req.URL.Host)
	}

	if st.skip[url] {
		s.log.Debugf("Batch %s: skipping %s after a previous client error", st.batch, url)
		st.completed++
		s.delegate.Cancelled(id, nil, UnexpectedResponse)
		return
	}

	if target := st.redirects.Resolve(url); target != "" {
		if u, err := req.URL.Parse(target); err == nil {
			req.URL = u
			req.Host = u.Host
		}
	}

	if req.Header.Get("User-Agent") == "" && s.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", s.cfg.UserAgent)
	}

	ctx, cancel := context.WithCancel(st.ctx)
	t := &task{id: id, url: url, cancel: cancel, trace: &redirectTrace{permanent: true}}
	ctx = context.WithValue(ctx, traceKey{}, t.trace)
	st.inFlight[id] = t

	go s.fetch(t, req.WithContext(ctx))
}

// fetch runs on its own goroutine and hands the result back to the loop.
func (s *Session) fetch(t *task, req *http.Request) {
	res := s.perform(t, req)
	t.cancel()

	select {
	case s.ops <- func(st *sessionState) { s.finish(st, res) }:
	case <-s.done:
	}
}

func (s *Session) perform(t *task, req *http.Request) result {
	res := result{task: t}

	resp, err := s.client.Do(req)
	if err != nil {
		res.err = errors.Wrapf(err, "downloading %s", t.url)
		return res
	}
	defer resp.Body.Close()

	if resp.Request != nil && resp.Request.URL != nil {
		res.finalURL = resp.Request.URL.String()
	}

	res.resp = resp

	switch {
	case resp.StatusCode == http.StatusNotModified:
		res.reason = NotModified
		return res
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		res.reason = UnexpectedResponse
		return res
	}

	buf := pool.Buffer.Get()
	defer pool.Buffer.Put(buf)

	chunk := make([]byte, chunkSize)
	for {
		n, err := resp.Body.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			if !s.delegate.ShouldContinue(t.id, buf.Bytes()) {
				res.reason = NotFeedData
				return res
			}
		}

		if err == io.EOF {
			break
		}
		if err != nil {
			res.err = errors.Wrapf(err, "reading body of %s", t.url)
			return res
		}
	}

	res.data = pool.Copy(buf)

	return res
}

func (s *Session) finish(st *sessionState, res result) {
	t := res.task
	if st.inFlight[t.id] != t {
		// Already reported, the session was suspended meanwhile.
		return
	}
	delete(st.inFlight, t.id)
	st.completed++

	if t.trace.permanent && t.trace.hops > 0 && res.finalURL != t.url && res.reason != UnexpectedResponse {
		st.redirects.Add(t.url, res.finalURL)
	}

	switch {
	case res.err != nil:
		s.log.Debugf("Batch %s: %s failed: %v", st.batch, t.id, res.err)
		s.delegate.Complete(t.id, nil, nil, res.err)
	case res.reason == UnexpectedResponse:
		s.rememberFailure(st, t, res.resp)
		s.delegate.Cancelled(t.id, res.resp, res.reason)
	case res.reason != 0:
		s.delegate.Cancelled(t.id, res.resp, res.reason)
	default:
		s.delegate.Complete(t.id, res.resp, res.data, nil)
	}

	s.startPending(st)
	s.checkBatch(st)
}

func (s *Session) rememberFailure(st *sessionState, t *task, resp *http.Response) {
	if resp == nil {
		return
	}

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		host := resp.Request.URL.Host
		until := s.now().Add(retryAfter(resp.Header.Get("Retry-After"), s.now()))
		s.log.Infof("Host %s is rate limiting, holding off until %s", host, until.Format(time.RFC3339))
		st.retryAfter[host] = until
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		s.log.Debugf("Batch %s: %s returned %d, skipping it for the session", st.batch, t.url, resp.StatusCode)
		st.skip[t.url] = true
	}
}

const defaultRetryAfter = 5 * time.Minute

func retryAfter(header string, now time.Time) time.Duration {
	if header == "" {
		return defaultRetryAfter
	}

	if secs, err := strconv.Atoi(header); err == nil {
		if secs < 0 {
			return 0
		}
		return time.Duration(secs) * time.Second
	}

	if t, err := http.ParseTime(header); err == nil {
		if d := t.Sub(now); d > 0 {
			return d
		}
		return 0
	}

	return defaultRetryAfter
}
