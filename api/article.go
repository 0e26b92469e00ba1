package api

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/content/status"
	"github.com/urandom/feedkeeper/log"
)

// unreadCounts reports unread counts for the requested feeds, or the total
// when none are given. The today and starred flags select the matching
// pseudo feeds.
func unreadCounts(statuses *status.Manager, log log.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		if ids := feedIDs(q["feed"]); len(ids) > 0 {
			counts, err := statuses.UnreadCounts(ids)
			if err != nil {
				fatal(w, log, "Error getting unread counts: %+v", err)
				return
			}

			args{"counts": counts}.WriteJSON(w)
			return
		}

		total, err := statuses.TotalUnreadCount()
		if err != nil {
			fatal(w, log, "Error getting unread count: %+v", err)
			return
		}

		data := args{"total": total}

		if flag(q.Get("today")) {
			if data["today"], err = statuses.TodayUnreadCount(); err != nil {
				fatal(w, log, "Error getting today's unread count: %+v", err)
				return
			}
		}

		if flag(q.Get("starred")) {
			if data["starred"], err = statuses.StarredUnreadCount(); err != nil {
				fatal(w, log, "Error getting starred unread count: %+v", err)
				return
			}
		}

		data.WriteJSON(w)
	}
}

// articleIDs lists the ids of unread or starred articles.
func articleIDs(statuses *status.Manager, log log.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		opts := []content.QueryOpt{}

		if ids := feedIDs(q["feed"]); len(ids) > 0 {
			opts = append(opts, content.FeedIDs(ids...))
		}
		if flag(q.Get("unread")) {
			opts = append(opts, content.UnreadOnly)
		}
		if flag(q.Get("starred")) {
			opts = append(opts, content.StarredOnly)
		}
		if since := q.Get("since"); since != "" {
			t, err := time.Parse(time.RFC3339, since)
			if err != nil {
				http.Error(w, "Invalid since date: "+err.Error(), http.StatusBadRequest)
				return
			}
			opts = append(opts, content.ArrivedAfter(t))
		}
		if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
			opts = append(opts, content.Limit(limit))
		}

		ids, err := statuses.IDs(opts...)
		if err != nil {
			fatal(w, log, "Error getting article ids: %+v", err)
			return
		}

		args{"ids": ids}.WriteJSON(w)
	}
}

func markArticles(statuses *status.Manager, log log.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := content.ParseStatusKey(chi.URLParam(r, "key"))
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		value, err := strconv.ParseBool(chi.URLParam(r, "value"))
		if err != nil {
			http.Error(w, "Invalid status value", http.StatusBadRequest)
			return
		}

		var payload struct {
			IDs []content.ArticleID `json:"ids"`
		}

		if stop := readJSON(w, r, &payload); stop {
			return
		}

		changed, err := statuses.Mark(payload.IDs, key, value)
		if err != nil {
			fatal(w, log, "Error marking articles: %+v", err)
			return
		}

		args{"changed": changed}.WriteJSON(w)
	}
}

func feedIDs(values []string) []content.FeedID {
	var ids []content.FeedID
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			ids = append(ids, content.FeedID(v))
		}
	}

	return ids
}

func flag(v string) bool {
	b, _ := strconv.ParseBool(v)
	return b
}
