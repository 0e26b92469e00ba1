package logging

import (
	"time"

	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/content/repo"
	"github.com/urandom/feedkeeper/log"
)

type articleRepo struct {
	repo.Article

	log log.Log
}

func (r articleRepo) ForFeed(id content.FeedID, opts ...content.QueryOpt) ([]content.Article, error) {
	start := time.Now()

	articles, err := r.Article.ForFeed(id, opts...)

	r.log.Infof("repo.Article.ForFeed took %s", time.Now().Sub(start))

	return articles, err
}

func (r articleRepo) Save(articles []content.Article) error {
	start := time.Now()

	err := r.Article.Save(articles)

	r.log.Infof("repo.Article.Save of %d articles took %s", len(articles), time.Now().Sub(start))

	return err
}
