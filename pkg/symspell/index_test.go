package symspell

import "testing"

func newTestIndex() *Index {
	return NewIndex(NewMemoryStore(), 2, 7)
}

// Scenario 1: exact match returns distance 0 regardless of verbosity.
func TestLookupExactMatch(t *testing.T) {
	ix := newTestIndex()
	ix.Insert("hello", 1000)

	got := ix.Lookup("hello", Closest, -1)
	if len(got) != 1 || got[0].Term != "hello" || got[0].Distance != 0 || got[0].Frequency != 1000 {
		t.Fatalf("Lookup(hello, Closest) = %+v, want exact match", got)
	}
}

// Scenario 2: a single-edit typo under Closest verbosity returns every
// term at distance 1 -- hello (one substitution) and help (one deletion) --
// ranked by frequency, and leaves out the unrelated world.
func TestLookupClosestSingleTypo(t *testing.T) {
	ix := newTestIndex()
	ix.Insert("hello", 1000)
	ix.Insert("world", 500)
	ix.Insert("help", 100)

	got := ix.Lookup("hellp", Closest, -1)
	if len(got) != 2 {
		t.Fatalf("Lookup(hellp, Closest) = %+v, want exactly two results", got)
	}
	if got[0].Term != "hello" || got[0].Distance != 1 || got[0].Frequency != 1000 {
		t.Fatalf("Lookup(hellp, Closest)[0] = %+v, want {hello,1,1000}", got[0])
	}
	if got[1].Term != "help" || got[1].Distance != 1 || got[1].Frequency != 100 {
		t.Fatalf("Lookup(hellp, Closest)[1] = %+v, want {help,1,100}", got[1])
	}
}

// Scenario 3: Top verbosity returns at most one suggestion, the best by
// distance then frequency.
func TestLookupTopReturnsSingleBest(t *testing.T) {
	ix := newTestIndex()
	ix.Insert("hello", 1000)
	ix.Insert("hallo", 2000)

	got := ix.Lookup("hxllo", Top, -1)
	if len(got) != 1 {
		t.Fatalf("Lookup(hxllo, Top) = %+v, want exactly one result", got)
	}
	if got[0].Frequency != 2000 {
		t.Fatalf("Lookup(hxllo, Top) = %+v, want the higher-frequency equal-distance term (hallo,2000)", got[0])
	}
}

// Scenario 4: All verbosity returns every term within the edit distance,
// unfiltered by distance tier.
func TestLookupAllReturnsEveryMatch(t *testing.T) {
	ix := newTestIndex()
	ix.Insert("hello", 1000)
	ix.Insert("hallo", 2000)
	ix.Insert("jello", 50)

	got := ix.Lookup("hxllo", All, -1)
	if len(got) < 3 {
		t.Fatalf("Lookup(hxllo, All) = %+v, want at least hello/hallo/jello", got)
	}
	seen := map[string]bool{}
	for _, s := range got {
		seen[s.Term] = true
	}
	for _, want := range []string{"hello", "hallo", "jello"} {
		if !seen[want] {
			t.Errorf("Lookup(hxllo, All) missing %q, got %+v", want, got)
		}
	}
}

// Scenario 5: a query beyond the configured max edit distance returns no
// suggestions.
func TestLookupBeyondMaxEditDistanceReturnsNothing(t *testing.T) {
	ix := newTestIndex()
	ix.Insert("hello", 1000)

	got := ix.Lookup("xxxxxxxxxx", Closest, -1)
	if len(got) != 0 {
		t.Fatalf("Lookup(xxxxxxxxxx, Closest) = %+v, want none", got)
	}
}

// Scenario 6: frequency accumulates across repeated Insert calls for a term
// that is already posted (threshold 1, so the first call posts it).
func TestInsertAccumulatesFrequency(t *testing.T) {
	ix := newTestIndex()
	ix.SetCountThreshold(1)

	ix.Insert("hello", 3)
	ix.Insert("hello", 4)

	got := ix.Lookup("hello", Closest, -1)
	if len(got) != 1 || got[0].Frequency != 7 {
		t.Fatalf("Lookup(hello) after two inserts = %+v, want frequency 7", got)
	}
}

// P6: a term below the count threshold is not posted (not delete-indexed,
// not found by exact lookup) until the accumulated count crosses it.
func TestInsertBelowThresholdNotYetPosted(t *testing.T) {
	ix := newTestIndex()
	ix.SetCountThreshold(5)

	promoted := ix.Insert("hello", 3)
	if promoted {
		t.Fatalf("Insert below threshold reported promoted=true")
	}
	if got := ix.Lookup("hello", Closest, -1); len(got) != 0 {
		t.Fatalf("Lookup(hello) before crossing threshold = %+v, want none", got)
	}

	promoted = ix.Insert("hello", 3)
	if !promoted {
		t.Fatalf("Insert crossing threshold (3+3=6 >= 5) reported promoted=false")
	}
	got := ix.Lookup("hello", Closest, -1)
	if len(got) != 1 || got[0].Frequency != 6 {
		t.Fatalf("Lookup(hello) after crossing threshold = %+v, want frequency 6", got)
	}
}

// Empty input short-circuits to an empty result (SPEC_FULL §9, resolved open question).
func TestLookupEmptyInput(t *testing.T) {
	ix := newTestIndex()
	ix.Insert("hello", 1000)
	if got := ix.Lookup("", Closest, -1); got != nil {
		t.Fatalf("Lookup(\"\") = %+v, want nil", got)
	}
}

// P4: for Top/Closest verbosity, results are ordered by distance ascending
// then frequency descending, and Closest keeps only the entries at the
// smallest distance: cat (distance 1) is returned alone, ahead of cats and
// scat (distance 2) even though scat has the highest frequency. All
// verbosity is deliberately left unsorted, matching the reference (only
// Top/Closest pay the sort cost).
func TestLookupOrdering(t *testing.T) {
	ix := newTestIndex()
	ix.Insert("cat", 10)
	ix.Insert("cats", 5)
	ix.Insert("scat", 50)

	got := ix.Lookup("kat", Closest, 2)
	if len(got) != 1 || got[0].Term != "cat" || got[0].Distance != 1 {
		t.Fatalf("Lookup(kat, Closest) = %+v, want the single closer match (cat, distance 1) over cats/scat at distance 2", got)
	}
}

// P5: a caller-supplied maxDist narrower than the Index's configured
// maxEditDistance further restricts results for that call only.
func TestLookupPerCallMaxDistNarrowing(t *testing.T) {
	ix := newTestIndex() // configured maxEditDistance = 2
	ix.Insert("hello", 1000)

	if got := ix.Lookup("hexxo", Closest, 1); len(got) != 0 {
		t.Fatalf("Lookup(hexxo, Closest, maxDist=1) = %+v, want none (true distance is 2)", got)
	}
	if got := ix.Lookup("hexxo", Closest, 2); len(got) != 1 {
		t.Fatalf("Lookup(hexxo, Closest, maxDist=2) = %+v, want one match", got)
	}
}

// P3: Closest keeps every term tied at the minimum distance found, not
// just the first one encountered ("xat" is one substitution from each).
func TestLookupClosestKeepsAllTiedAtMinDistance(t *testing.T) {
	ix := newTestIndex()
	ix.Insert("cat", 10)
	ix.Insert("bat", 20)
	ix.Insert("hat", 30)

	got := ix.Lookup("xat", Closest, -1)
	if len(got) != 3 {
		t.Fatalf("Lookup(xat, Closest) = %+v, want all three distance-1 terms", got)
	}
	if got[0].Frequency < got[1].Frequency || got[1].Frequency < got[2].Frequency {
		t.Fatalf("Lookup(xat, Closest) not frequency-descending among ties: %+v", got)
	}
}

// An input longer than the longest posted word by more than the configured
// max edit distance returns nothing via the length early-exit, before any
// store lookup.
func TestLookupLengthEarlyExit(t *testing.T) {
	ix := newTestIndex()
	ix.Insert("a", 1000)
	got := ix.Lookup("averylongunrelatedquery", Closest, -1)
	if len(got) != 0 {
		t.Fatalf("Lookup with large length gap = %+v, want none", got)
	}
}

// P10 (documented limitation): MemoryStore always reports the true
// maxDictionaryWordLength immediately, since it never resets on reopen --
// only a PersistentStore reopened without SetMaxWordLengthHint can exhibit
// the stale-hint condition this module deliberately avoids (see SPEC_FULL
// §9). This test documents that MemoryStore usage needs no such seeding.
func TestMaxWordLengthTracksInserts(t *testing.T) {
	ix := newTestIndex()
	ix.Insert("a", 1)
	ix.Insert("international", 1)
	if got := ix.MaxWordLength(); got != len("international") {
		t.Fatalf("MaxWordLength() = %d, want %d", got, len("international"))
	}
}

func TestSetMaxWordLengthHintOnlyRaises(t *testing.T) {
	ix := newTestIndex()
	ix.Insert("hello", 1)
	ix.SetMaxWordLengthHint(3)
	if got := ix.MaxWordLength(); got != len("hello") {
		t.Fatalf("SetMaxWordLengthHint lowered MaxWordLength to %d, want it to stay at %d", got, len("hello"))
	}
	ix.SetMaxWordLengthHint(20)
	if got := ix.MaxWordLength(); got != 20 {
		t.Fatalf("SetMaxWordLengthHint(20) = %d, want 20", got)
	}
}
