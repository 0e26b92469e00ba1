package logging

import (
	"github.com/urandom/feedkeeper/content/repo"
	"github.com/urandom/feedkeeper/log"
)

// Service wraps a repo.Service and logs the duration of every repository
// call.
type Service struct {
	repo.Service

	feed    feedRepo
	article articleRepo
	status  statusRepo
}

func NewService(s repo.Service, log log.Log) Service {
	return Service{
		s,
		feedRepo{s.FeedRepo(), log},
		articleRepo{s.ArticleRepo(), log},
		statusRepo{s.StatusRepo(), log},
	}
}

func (s Service) FeedRepo() repo.Feed {
	return s.feed
}

func (s Service) ArticleRepo() repo.Article {
	return s.article
}

func (s Service) StatusRepo() repo.Status {
	return s.status
}
