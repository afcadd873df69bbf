package utils

import (
	"context"
	"time"
)

// StoreContext bounds a single store call. A non-positive d leaves the
// parent deadline in charge.
func StoreContext(parent context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, d)
}
