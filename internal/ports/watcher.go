package ports

// Watcher monitors the lexicon resource and triggers a reload when it changes.
// The adapter (fsnotify) watches the containing directory so editors that
// replace the file on save (write to temp, rename over) are still seen.
// Only one Watch call should be active at a time.
type Watcher interface {
	// Watch starts monitoring the file at path. onChange is called with the
	// absolute path after each debounced change. The callback may be invoked
	// from any goroutine. Returns an error if the directory doesn't exist or
	// permissions are insufficient.
	Watch(path string, onChange func(filePath string)) error

	// Stop ends monitoring and releases all resources. After Stop returns,
	// no further onChange calls will fire. Safe to call multiple times.
	Stop() error
}
