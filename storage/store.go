// Package storage provides the persistent key-value contract every
// repository builds on, plus the tenant scoping seam that keeps each
// business's data disjoint.
package storage

// Event is a change notification emitted after a successful Set or Remove.
// NewValue is empty on removal. Subscribers run synchronously on the writing
// goroutine; the settings layer uses this to re-publish changes made through
// another handle to the same backing store.
type Event struct {
	Key      string
	NewValue string
	Removed  bool
}

// Store is the persistent key-value contract. All domain data is
// JSON-serialized text under string keys. Implementations serialize writes
// internally, so the documented whole-collection read-modify-write of the
// repositories is last-write-wins but never torn.
type Store interface {
	// Get returns the stored value and whether the key exists.
	Get(key string) (string, bool)
	Set(key, value string) error
	Remove(key string) error
	// Keys returns every stored key with the given prefix. Used only by
	// tenant purge, the one place hard key deletion is correct.
	Keys(prefix string) []string
	// Subscribe registers a change listener and returns its remover.
	Subscribe(fn func(Event)) func()
}
