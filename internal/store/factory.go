package store

import "fmt"

// BackendType selects which Store implementation serves the app.
type BackendType string

const (
	RESTBackend   BackendType = "rest"
	SQLiteBackend BackendType = "sqlite"
	MemoryBackend BackendType = "memory"
)

// String implements fmt.Stringer
func (bt BackendType) String() string {
	return string(bt)
}

// IsValid returns true if the backend type is valid.
func (bt BackendType) IsValid() bool {
	switch bt {
	case RESTBackend, SQLiteBackend, MemoryBackend:
		return true
	default:
		return false
	}
}

// BackendTypes returns all valid backend types.
func BackendTypes() []BackendType {
	return []BackendType{RESTBackend, SQLiteBackend, MemoryBackend}
}

// CleanupFunc releases backend resources at shutdown. May be nil.
type CleanupFunc func() error

// Result pairs a constructed backend with its cleanup.
type Result struct {
	Store   Store
	Cleanup CleanupFunc
}

// ParseBackendType validates a config string into a BackendType.
func ParseBackendType(s string) (BackendType, error) {
	bt := BackendType(s)
	if !bt.IsValid() {
		return "", fmt.Errorf("invalid data backend %q: must be one of %v", s, BackendTypes())
	}
	return bt, nil
}
