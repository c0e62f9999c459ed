package ports

import "context"

// Watcher reports changes below a set of directories.
//
//go:generate go run go.uber.org/mock/mockgen -source=watcher.go -destination=mocks/mock_watcher.go -package=mocks
type Watcher interface {
	// Watch delivers debounced batches of changed absolute paths until ctx is done,
	// then closes the channel.
	Watch(ctx context.Context, roots []string) (<-chan []string, error)
}
