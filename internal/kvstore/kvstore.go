// Package kvstore provides the key-value byte store behind plan persistence.
// The plan store never sees which backend is in use; swapping the underlying
// storage never touches store logic.
package kvstore

// Store is a minimal durable key-value byte store.
type Store interface {
	// Get returns the value for key. The second return is false when the
	// key is absent; absence is not an error.
	Get(key string) ([]byte, bool, error)
	// Put writes the value under key, replacing any previous value.
	Put(key string, value []byte) error
	// Close releases backend resources.
	Close() error
}
