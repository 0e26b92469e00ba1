package content

import "github.com/pkg/errors"

var (
	// ErrNoContent is returned when a store lookup finds nothing.
	ErrNoContent = errors.New("No content")
	// ErrSuspended is returned by every store operation while the store is
	// suspended. The caller should retry once it has been resumed.
	ErrSuspended = errors.New("Store suspended")
)

func IsNoContent(err error) bool {
	return errors.Cause(err) == ErrNoContent
}

func IsSuspended(err error) bool {
	return errors.Cause(err) == ErrSuspended
}
