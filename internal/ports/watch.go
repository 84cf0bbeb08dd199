package ports

import "context"

// WatchPort blocks watching a file, invoking onChange after each
// modification, until the context is cancelled.
type WatchPort interface {
	Watch(ctx context.Context, path string, onChange func()) error
}
