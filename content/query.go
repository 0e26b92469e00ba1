package content

import "time"

// QueryOptions narrow down status and article queries. Zero values impose
// no restriction.
type QueryOptions struct {
	FeedIDs       []FeedID
	UnreadOnly    bool
	StarredOnly   bool
	ArrivedAfter  time.Time
	ArrivedBefore time.Time
	Limit         int
}

type QueryOpt func(*QueryOptions)

func (o *QueryOptions) Apply(opts []QueryOpt) {
	for _, opt := range opts {
		opt(o)
	}
}

func NewQueryOptions(opts ...QueryOpt) QueryOptions {
	o := QueryOptions{}
	o.Apply(opts)

	return o
}

func FeedIDs(ids ...FeedID) QueryOpt {
	return func(o *QueryOptions) {
		o.FeedIDs = append(o.FeedIDs, ids...)
	}
}

func UnreadOnly(o *QueryOptions) {
	o.UnreadOnly = true
}

func StarredOnly(o *QueryOptions) {
	o.StarredOnly = true
}

func ArrivedAfter(t time.Time) QueryOpt {
	return func(o *QueryOptions) {
		o.ArrivedAfter = t
	}
}

func ArrivedBefore(t time.Time) QueryOpt {
	return func(o *QueryOptions) {
		o.ArrivedBefore = t
	}
}

func Limit(limit int) QueryOpt {
	return func(o *QueryOptions) {
		o.Limit = limit
	}
}
