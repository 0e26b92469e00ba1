package eventable

import (
	"context"

	"github.com/urandom/feedkeeper/content/repo"
	"github.com/urandom/feedkeeper/log"
)

// Service wraps a repo.Service and dispatches an event after every
// successful write that a client may want to react to.
type Service struct {
	repo.Service
	eventBus bus

	feed   feedRepo
	status statusRepo
}

func NewService(ctx context.Context, s repo.Service, log log.Log) Service {
	bus := newBus(ctx)

	return Service{
		s, bus,
		feedRepo{s.FeedRepo(), bus, log},
		statusRepo{s.StatusRepo(), bus, log},
	}
}

func (s Service) Listener() Stream {
	return s.eventBus.Listener()
}

func (s Service) RemoveListener(l Stream) {
	s.eventBus.Remove(l)
}

func (s Service) FeedRepo() repo.Feed {
	return s.feed
}

func (s Service) StatusRepo() repo.Status {
	return s.status
}
