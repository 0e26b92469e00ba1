package feed

import (
	"context"
	"time"

	"github.com/urandom/feedkeeper/config"
	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/content/status"
	"github.com/urandom/feedkeeper/log"
)

const (
	defaultInterval = 30 * time.Minute
	cleanupInterval = 24 * time.Hour
)

// Scheduler owns the refresh cadence. Refreshes never overlap: a trigger
// that arrives during a refresh starts another one right after it.
type Scheduler struct {
	refresher refresher
	statuses  *status.Manager
	cfg       config.Refresh
	trigger   chan struct{}
	results   chan Result
	log       log.Log
}

type refresher interface {
	Refresh(context.Context) (Result, error)
}

func NewScheduler(r *Refresher, statuses *status.Manager, cfg config.Refresh, log log.Log) Scheduler {
	return Scheduler{
		refresher: r,
		statuses:  statuses,
		cfg:       cfg,
		trigger:   make(chan struct{}, 1),
		results:   make(chan Result, 1),
		log:       log,
	}
}

// Trigger requests an immediate refresh. It returns false if one is already
// queued.
func (s Scheduler) Trigger() bool {
	select {
	case s.trigger <- struct{}{}:
		return true
	default:
		return false
	}
}

// Results delivers the outcome of every successful refresh. Results are
// dropped if nobody is listening.
func (s Scheduler) Results() <-chan Result {
	return s.results
}

// Start runs refreshes until the context is cancelled.
func (s Scheduler) Start(ctx context.Context) {
	interval := s.cfg.Converted.Interval
	if interval <= 0 {
		interval = defaultInterval
	}

	s.log.Infof("Refreshing feeds every %s", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var lastCleanup time.Time

	if s.cfg.OnStart {
		s.Trigger()
	}

	for {
		select {
		case <-ticker.C:
		case <-s.trigger:
		case <-ctx.Done():
			return
		}

		s.refresh(ctx)

		if s.statuses != nil && time.Since(lastCleanup) > cleanupInterval {
			lastCleanup = time.Now()
			if _, err := s.statuses.Cleanup(); err != nil && !content.IsSuspended(err) {
				s.log.Printf("Error cleaning up statuses: %+v", err)
			}
		}
	}
}

func (s Scheduler) refresh(ctx context.Context) {
	res, err := s.refresher.Refresh(ctx)
	if err != nil {
		if content.IsSuspended(err) {
			s.log.Infoln("Storage is suspended, skipping refresh")
		} else if ctx.Err() == nil {
			s.log.Printf("Error refreshing feeds: %+v", err)
		}
		return
	}

	select {
	case s.results <- res:
	default:
	}
}
