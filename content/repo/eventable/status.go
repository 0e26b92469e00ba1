package eventable

import (
	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/content/repo"
	"github.com/urandom/feedkeeper/log"
)

const (
	ArticleStatusEvent = "article-status-change"
)

type ArticleStatusData struct {
	IDs   []content.ArticleID `json:"ids"`
	Key   string              `json:"key"`
	Value bool                `json:"value"`
}

type statusRepo struct {
	repo.Status
	eventBus bus
	log      log.Log
}

func (r statusRepo) Update(ids []content.ArticleID, key content.StatusKey, value bool) error {
	err := r.Status.Update(ids, key, value)

	if err == nil && len(ids) > 0 {
		r.log.Debugf("Dispatching article %s status event", key)
		r.eventBus.Dispatch(
			ArticleStatusEvent,
			ArticleStatusData{ids, key.String(), value},
		)
	}

	return err
}
