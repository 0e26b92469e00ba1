package api

import (
	"net/http"

	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/content/repo"
	"github.com/urandom/feedkeeper/content/status"
	"github.com/urandom/feedkeeper/feed"
	"github.com/urandom/feedkeeper/log"
)

type feedWithCount struct {
	content.Feed
	Unread int64 `json:"unread"`
}

func listFeeds(repo repo.Feed, statuses *status.Manager, log log.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		feeds, err := repo.All()
		if err != nil {
			fatal(w, log, "Error getting feeds: %+v", err)
			return
		}

		ids := make([]content.FeedID, len(feeds))
		for i := range feeds {
			ids[i] = feeds[i].ID
		}

		counts, err := statuses.UnreadCounts(ids)
		if err != nil {
			fatal(w, log, "Error getting unread counts: %+v", err)
			return
		}

		data := make([]feedWithCount, len(feeds))
		for i := range feeds {
			data[i] = feedWithCount{feeds[i], counts[feeds[i].ID]}
		}

		args{"feeds": data}.WriteJSON(w)
	}
}

func discoverFeeds(finder feedFinder, log log.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("url")
		if query == "" {
			http.Error(w, "No url provided", http.StatusBadRequest)
			return
		}

		candidates, err := finder.Find(r.Context(), query)
		if err != nil {
			if feed.IsNotFound(err) {
				http.Error(w, "Feed not found", http.StatusNotFound)
				return
			}

			log.Printf("Error discovering feeds of %s: %+v", query, err)
			http.Error(w, "Error discovering feeds: "+err.Error(), http.StatusBadGateway)
			return
		}

		type scored struct {
			feed.Candidate
			Score int `json:"score"`
		}

		sorted := candidates.Sorted()
		data := make([]scored, len(sorted))
		for i, c := range sorted {
			data[i] = scored{c, c.Score()}
		}

		args{"feeds": data}.WriteJSON(w)
	}
}

func addFeed(repo repo.Feed, finder feedFinder, trigger refreshTrigger, log log.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload struct {
			URL   string `json:"url"`
			Title string `json:"title"`
		}

		if stop := readJSON(w, r, &payload); stop {
			return
		}

		candidates, err := finder.Find(r.Context(), payload.URL)
		if err != nil {
			if feed.IsNotFound(err) {
				http.Error(w, "Feed not found", http.StatusNotFound)
				return
			}

			log.Printf("Error discovering feeds of %s: %+v", payload.URL, err)
			http.Error(w, "Error discovering feeds: "+err.Error(), http.StatusBadGateway)
			return
		}

		best, ok := candidates.Best()
		if !ok {
			http.Error(w, "Feed not found", http.StatusNotFound)
			return
		}

		title := payload.Title
		if title == "" {
			title = best.Title
		}

		f := content.NewFeed(best.URL, title)
		if err := repo.Create(&f); err != nil {
			if content.IsValidationError(err) {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}

			fatal(w, log, "Error creating feed: %+v", err)
			return
		}

		trigger.Trigger()

		w.WriteHeader(http.StatusCreated)
		args{"feed": f}.WriteJSON(w)
	}
}

func deleteFeed(repo repo.Feed, statuses *status.Manager, log log.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := r.URL.Query().Get("id")
		if id == "" {
			http.Error(w, "No feed id provided", http.StatusBadRequest)
			return
		}

		f, err := repo.Get(content.FeedID(id))
		if err != nil {
			if content.IsNoContent(err) {
				http.Error(w, "Feed not found", http.StatusNotFound)
				return
			}

			fatal(w, log, "Error getting feed: %+v", err)
			return
		}

		if err := repo.Delete(f); err != nil {
			fatal(w, log, "Error deleting feed: %+v", err)
			return
		}

		statuses.ForgetFeed(f.ID)

		args{"success": true}.WriteJSON(w)
	}
}

func refreshFeeds(trigger refreshTrigger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		queued := trigger.Trigger()

		w.WriteHeader(http.StatusAccepted)
		args{"queued": queued}.WriteJSON(w)
	}
}
