package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/log"
)

const pingInterval = 10 * time.Second

type event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// eventStream forwards repository events to the client as server-sent
// events.
func eventStream(ctx context.Context, source eventSource, log log.Log) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "Streaming not supported", http.StatusNotAcceptable)
			return
		}

		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		listener := source.Listener()
		defer source.RemoveListener(listener)

		log.Debugln("Initializing event stream")
		if err := (event{Type: "connection-established"}).Write(w, flusher, log); err != nil {
			log.Printf("Error sending initial data: %+v", err)
			return
		}

		ping := time.NewTicker(pingInterval)
		defer ping.Stop()

		for {
			select {
			case e := <-listener:
				if err := (event{e.Name, e.Data}).Write(w, flusher, log); err != nil {
					log.Printf("Error sending %s event: %+v", e.Name, err)
					return
				}
			case <-ping.C:
				if err := (event{}).Write(w, flusher, log); err != nil {
					log.Printf("Error sending ping event: %+v", err)
					return
				}
			case <-r.Context().Done():
				return
			case <-ctx.Done():
				return
			}
		}
	}
}

func (e event) Write(w io.Writer, flusher http.Flusher, log log.Log) error {
	if e.Type == "" {
		// Comment event to keep the connection alive
		if _, err := w.Write([]byte(": ping\n\n")); err != nil {
			return errors.Wrap(err, "sending ping")
		}
		flusher.Flush()

		return nil
	}

	data := []byte("event: " + e.Type + "\n")
	if e.Data != nil {
		b, err := json.Marshal(e.Data)
		if err != nil {
			log.Printf("Error converting data %#v to json: %+v", e.Data, err)
			return nil
		}

		data = append(data, "data: "...)
		data = append(data, b...)
		data = append(data, '\n')
	}

	data = append(data, '\n')

	if _, err := w.Write(data); err != nil {
		return errors.Wrapf(err, "sending event %s", e.Type)
	}
	flusher.Flush()
	log.Debugf("Wrote and flushed SSE: %s", data)

	return nil
}
