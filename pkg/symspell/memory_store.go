package symspell

import "sync"

// MemoryStore is the in-process Store realization: a map of term to
// frequency and a map of fingerprint to the terms posted under it.
// SetFrequency overwrites; AddDelete appends, so duplicate postings are
// possible but benign -- the Index filters them out via its considered-
// suggestions set. There are no transactions; Begin/Commit/Rollback are
// no-ops so callers can write code that targets either Store uniformly.
type MemoryStore struct {
	mu      sync.RWMutex
	words   map[string]int64
	deletes map[int32][]string
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		words:   make(map[string]int64),
		deletes: make(map[int32][]string),
	}
}

func (s *MemoryStore) AddDelete(fp int32, term string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.deletes[fp] = append(s.deletes[fp], term)
	return nil
}

func (s *MemoryStore) GetTerms(fp int32) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	terms, ok := s.deletes[fp]
	if !ok {
		return []string{}, nil
	}
	out := make([]string, len(terms))
	copy(out, terms)
	return out, nil
}

func (s *MemoryStore) SetFrequency(term string, f int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.words[term] = f
	return nil
}

func (s *MemoryStore) GetFrequency(term string) (int64, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	f, ok := s.words[term]
	return f, ok, nil
}

func (s *MemoryStore) TermExists(term string) (bool, error) {
	_, ok, err := s.GetFrequency(term)
	return ok, err
}

func (s *MemoryStore) BeginTransaction() error    { return nil }
func (s *MemoryStore) CommitTransaction() error   { return nil }
func (s *MemoryStore) RollbackTransaction() error { return nil }

// WordCount returns the number of posted terms, for diagnostics.
func (s *MemoryStore) WordCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.words)
}
