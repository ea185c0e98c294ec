package driven

import "context"

// DirectoryWatcher reports changes to PDFs under a root directory.
type DirectoryWatcher interface {
	// Watch emits the path of each changed PDF until ctx is cancelled.
	// The channel is closed when watching stops.
	Watch(ctx context.Context, root string, recursive bool) (<-chan string, error)
}
