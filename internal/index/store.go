package index

import "sync/atomic"

// Store publishes the current Index to concurrent readers. A nil
// pointer is the degraded "never loaded" state; replacing the index is
// a single atomic swap, so readers always observe a catalog, matrix
// and title index that belong together.
type Store struct {
	ptr atomic.Pointer[Index]
}

// NewStore creates an empty store. Swap in an index once built.
func NewStore() *Store { return &Store{} }

// Swap publishes ix as the current index.
func (s *Store) Swap(ix *Index) { s.ptr.Store(ix) }

// Get returns the current index; ok is false while nothing is loaded.
func (s *Store) Get() (*Index, bool) {
	ix := s.ptr.Load()
	return ix, ix != nil
}
