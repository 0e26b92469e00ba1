package download

import (
	"net/http"
)

// CancellationReason explains why a download did not complete.
type CancellationReason int

const (
	// Suspended downloads were started or in flight while the session was
	// suspended.
	Suspended CancellationReason = iota + 1
	// NotFeedData downloads were aborted once the delegate decided, from the
	// partial data, that the payload cannot be a feed.
	NotFeedData
	// UnexpectedResponse covers non-2xx responses, as well as requests that
	// were not sent because of a previous response for the same host or URL.
	UnexpectedResponse
	// NotModified downloads received a 304 for their conditional request.
	NotModified
)

func (r CancellationReason) String() string {
	switch r {
	case Suspended:
		return "suspended"
	case NotFeedData:
		return "not feed data"
	case UnexpectedResponse:
		return "unexpected response"
	case NotModified:
		return "not modified"
	default:
		return "unknown"
	}
}

// Delegate customizes a download session. ShouldContinue may be called
// concurrently from worker goroutines, for different ids. All other methods
// are called from the session's own goroutine, one at a time, and must not
// synchronously call back into the session.
type Delegate interface {
	// RequestFor builds the request for the given id. A nil request or a
	// non-nil error completes the id with an error.
	RequestFor(id string) (*http.Request, error)

	// ShouldContinue inspects the data received so far. Returning false
	// aborts the download with NotFeedData.
	ShouldContinue(id string, data []byte) bool

	// Cancelled reports an id that did not complete. The response is nil
	// when the request was never sent or was cancelled before a response.
	Cancelled(id string, resp *http.Response, reason CancellationReason)

	// Complete reports a finished download. Either err is set, or resp and
	// data hold the successful response and its full body.
	Complete(id string, resp *http.Response, data []byte, err error)

	// DiscardedDuplicate reports an id that was already pending or in
	// flight when it was requested again.
	DiscardedDuplicate(id string)

	// BatchComplete is called once every time the session runs out of
	// pending and in-flight downloads.
	BatchComplete()
}
