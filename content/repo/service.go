package repo

//go:generate mockgen -package mock_repo -destination mock_repo/mock_repo.go github.com/urandom/feedkeeper/content/repo Service,Feed,Article,Status

// Service provides access to the different content repositories.
type Service interface {
	FeedRepo() Feed
	ArticleRepo() Article
	StatusRepo() Status

	// Suspend makes every repository operation fail with
	// content.ErrSuspended until Resume is called. It is used while the
	// process is in the background or the storage is being maintained.
	Suspend()
	Resume()

	Close() error
}
