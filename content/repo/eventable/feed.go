package eventable

import (
	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/content/repo"
	"github.com/urandom/feedkeeper/log"
)

const (
	FeedUpdateEvent = "feed-update"
)

type FeedUpdateData struct {
	Feed        content.FeedID `json:"feed"`
	UpdateError string         `json:"updateError,omitempty"`
}

func (e FeedUpdateData) FeedID() content.FeedID {
	return e.Feed
}

type feedRepo struct {
	repo.Feed
	eventBus bus
	log      log.Log
}

func (r feedRepo) Update(feed *content.Feed) error {
	err := r.Feed.Update(feed)

	if err == nil {
		r.log.Debugf("Dispatching feed update event for %s", feed.ID)
		r.eventBus.Dispatch(FeedUpdateEvent, FeedUpdateData{feed.ID, feed.UpdateError})
	}

	return err
}
