package sql

import "time"

// Times are stored as unix nanoseconds so that range comparisons behave
// the same on every driver.

func toNano(t time.Time) int64 {
	if t.IsZero() {
		return 0
	}

	return t.UnixNano()
}

func fromNano(n int64) time.Time {
	if n == 0 {
		return time.Time{}
	}

	return time.Unix(0, n)
}
