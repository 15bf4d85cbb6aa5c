package symspell

// Store is the storage abstraction the Index runs its algorithm over. It
// is implemented by MemoryStore (in-process) and PersistentStore
// (relational backend); both realize identical lookup semantics, but
// differ in one deliberate respect: SetFrequency SETS the frequency on
// MemoryStore and ACCUMULATES it on PersistentStore. The Index
// compensates for this asymmetry itself -- see Index.Insert.
type Store interface {
	// AddDelete records that term is reachable through the delete-variant
	// fingerprint fp. Safe to call more than once for the same pair.
	AddDelete(fp int32, term string) error

	// GetTerms returns every term posted under fp. Order is unspecified
	// but stable within a single call. A fingerprint with no postings
	// returns an empty, non-nil slice and a nil error.
	GetTerms(fp int32) ([]string, error)

	// SetFrequency records f as term's frequency. See the type doc for the
	// set-vs-accumulate distinction between implementations.
	SetFrequency(term string, f int64) error

	// GetFrequency returns term's current frequency and true if term has
	// ever been promoted (posted), or 0 and false otherwise.
	GetFrequency(term string) (int64, bool, error)

	// TermExists is equivalent to checking the second return of GetFrequency.
	TermExists(term string) (bool, error)

	BeginTransaction() error
	CommitTransaction() error
	RollbackTransaction() error
}
