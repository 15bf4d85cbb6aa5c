// Package browse maintains an ordered prefix index over every term that
// has been posted to a symspell.Index, for listing ("what terms start with
// 'inter'") rather than fuzzy lookup. It is a pure auxiliary: it is never
// consulted by symspell.Index.Lookup and carries no edit-distance logic of
// its own.
package browse

import (
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// Index is a concurrency-safe, ordered prefix index of terms.
type Index struct {
	mu   sync.RWMutex
	trie *patricia.Trie
}

// Entry is one term found under a prefix search, with its accumulated
// frequency as last recorded by Add.
type Entry struct {
	Term      string
	Frequency int64
}

// NewIndex creates an empty browse index.
func NewIndex() *Index {
	return &Index{trie: patricia.NewTrie()}
}

// Add records term with frequency 1. Callers that track real frequency
// should use AddWithFrequency instead; Add exists for call sites that only
// care about membership (e.g. mirroring a text dictionary with no counts).
func (ix *Index) Add(term string) {
	ix.AddWithFrequency(term, 1)
}

// AddWithFrequency inserts or overwrites term's recorded frequency. Unlike
// symspell.Index.Insert, this does not accumulate -- the browse index
// exists to answer "does this prefix exist and what's posted under it",
// not to be a second source of truth for frequency.
func (ix *Index) AddWithFrequency(term string, frequency int64) {
	if term == "" {
		return
	}
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.trie.Set(patricia.Prefix(term), frequency)
}

// Remove drops term from the index, if present.
func (ix *Index) Remove(term string) bool {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	return ix.trie.Delete(patricia.Prefix(term))
}

// Contains reports whether term has been added.
func (ix *Index) Contains(term string) bool {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	return ix.trie.Get(patricia.Prefix(term)) != nil
}

// Browse returns every term starting with prefix, ordered by frequency
// descending then term ascending, capped at limit (0 means unlimited).
func (ix *Index) Browse(prefix string, limit int) []Entry {
	ix.mu.RLock()
	defer ix.mu.RUnlock()

	var entries []Entry
	err := ix.trie.VisitSubtree(patricia.Prefix(prefix), func(p patricia.Prefix, item patricia.Item) error {
		freq, ok := item.(int64)
		if !ok {
			log.Errorf("browse: unexpected item type %T for term %s", item, p)
			freq = 0
		}
		entries = append(entries, Entry{Term: string(p), Frequency: freq})
		return nil
	})
	if err != nil {
		log.Errorf("browse: error visiting subtree for prefix %q: %v", prefix, err)
		return nil
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Frequency != entries[j].Frequency {
			return entries[i].Frequency > entries[j].Frequency
		}
		return entries[i].Term < entries[j].Term
	})

	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries
}

// Len returns the number of terms currently indexed.
func (ix *Index) Len() int {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	n := 0
	_ = ix.trie.Visit(func(p patricia.Prefix, item patricia.Item) error {
		n++
		return nil
	})
	return n
}
