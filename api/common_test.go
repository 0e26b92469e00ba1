package api

import (
	"context"
	"os"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/urandom/feedkeeper/config"
	"github.com/urandom/feedkeeper/content/repo/mock_repo"
	"github.com/urandom/feedkeeper/content/status"
	"github.com/urandom/feedkeeper/feed"
	"github.com/urandom/feedkeeper/log"
)

var logger = log.WithStd(os.Stderr, "testing", 0)

type fakeFinder struct {
	candidates feed.Candidates
	err        error
	urls       []string
}

func (f *fakeFinder) Find(ctx context.Context, url string) (feed.Candidates, error) {
	f.urls = append(f.urls, url)
	return f.candidates, f.err
}

type fakeTrigger struct {
	calls int
}

func (t *fakeTrigger) Trigger() bool {
	t.calls++
	return t.calls == 1
}

func newStatuses(t *testing.T) (*status.Manager, *mock_repo.MockStatus, *gomock.Controller) {
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	repo := mock_repo.NewMockStatus(ctrl)

	cfg := config.Status{}
	cfg.Convert()

	return status.NewManager(repo, cfg, logger), repo, ctrl
}
