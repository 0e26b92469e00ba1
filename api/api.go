package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	"github.com/rs/cors"
	"github.com/urandom/feedkeeper/config"
	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/content/repo"
	"github.com/urandom/feedkeeper/content/repo/eventable"
	"github.com/urandom/feedkeeper/content/status"
	"github.com/urandom/feedkeeper/feed"
	"github.com/urandom/feedkeeper/log"
)

// retryAfter is sent with 503 responses while the storage is suspended.
const retryAfter = 30 * time.Second

type feedFinder interface {
	Find(ctx context.Context, url string) (feed.Candidates, error)
}

type refreshTrigger interface {
	Trigger() bool
}

type eventSource interface {
	Listener() eventable.Stream
	RemoveListener(eventable.Stream)
}

// Mux creates the api handler.
func Mux(
	ctx context.Context,
	service repo.Service,
	statuses *status.Manager,
	finder feedFinder,
	trigger refreshTrigger,
	events eventSource,
	cfg config.Server,
	log log.Log,
) http.Handler {
	mux := chi.NewRouter()

	mux.Use(middleware.Recoverer)
	if len(cfg.CORSOrigins) > 0 {
		mux.Use(cors.New(cors.Options{
			AllowedOrigins: cfg.CORSOrigins,
			AllowedMethods: []string{"GET", "POST", "DELETE"},
		}).Handler)
	}

	mux.Route("/feeds", func(r chi.Router) {
		r.Get("/", listFeeds(service.FeedRepo(), statuses, log))
		r.Post("/", addFeed(service.FeedRepo(), finder, trigger, log))
		r.Delete("/", deleteFeed(service.FeedRepo(), statuses, log))
		r.Get("/discover", discoverFeeds(finder, log))
		r.Post("/refresh", refreshFeeds(trigger))
	})

	mux.Get("/unread", unreadCounts(statuses, log))
	mux.Get("/articles", articleIDs(statuses, log))
	mux.Post("/articles/{key}/{value}", markArticles(statuses, log))

	if events != nil {
		mux.Get("/events", eventStream(ctx, events, log))
	}

	return mux
}

type args map[string]interface{}

func (a args) WriteJSON(w http.ResponseWriter) {
	b, err := json.Marshal(a)

	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Write(b)
}

func readJSON(w http.ResponseWriter, r *http.Request, data interface{}) (stop bool) {
	if err := json.NewDecoder(r.Body).Decode(data); err != nil {
		http.Error(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return true
	}

	return false
}

// fatal reports a failed request. A suspended storage is not an internal
// error; clients are asked to try again later.
func fatal(w http.ResponseWriter, log log.Log, format string, err error) {
	if content.IsSuspended(err) {
		w.Header().Set("Retry-After", strconv.Itoa(int(retryAfter.Seconds())))
		http.Error(w, "Storage is suspended", http.StatusServiceUnavailable)
		return
	}

	log.Printf(format, err)
	http.Error(w, errors.Cause(err).Error(), http.StatusInternalServerError)
}
