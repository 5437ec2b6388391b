package stacio

import "sync"

var (
	defaultMu sync.RWMutex
	defaultIO *StacIO
)

// SetDefault installs the process-wide default transport. Last
// registration wins. Callers must not run two handlers with
// conflicting object-store configurations concurrently: the default
// transport is a single shared slot.
func SetDefault(io *StacIO) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultIO = io
}

// Default returns the process-wide default transport. When nothing was
// registered it falls back to a local-only adapter, so local catalog
// access always works.
func Default() *StacIO {
	defaultMu.RLock()
	io := defaultIO
	defaultMu.RUnlock()
	if io != nil {
		return io
	}

	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultIO == nil {
		defaultIO, _ = New(Credentials{})
	}
	return defaultIO
}
