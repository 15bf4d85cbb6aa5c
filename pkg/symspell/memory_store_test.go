package symspell

import "testing"

func TestMemoryStoreFrequencyRoundTrip(t *testing.T) {
	s := NewMemoryStore()

	if _, ok, _ := s.GetFrequency("hello"); ok {
		t.Fatalf("GetFrequency on empty store returned ok=true")
	}

	if err := s.SetFrequency("hello", 42); err != nil {
		t.Fatalf("SetFrequency: %v", err)
	}
	f, ok, err := s.GetFrequency("hello")
	if err != nil || !ok || f != 42 {
		t.Fatalf("GetFrequency(hello) = (%d, %v, %v), want (42, true, nil)", f, ok, err)
	}

	// SetFrequency overwrites, it does not accumulate.
	if err := s.SetFrequency("hello", 7); err != nil {
		t.Fatalf("SetFrequency: %v", err)
	}
	f, _, _ = s.GetFrequency("hello")
	if f != 7 {
		t.Fatalf("SetFrequency did not overwrite: got %d, want 7", f)
	}
}

func TestMemoryStoreDeletesAppendAndDedupBenign(t *testing.T) {
	s := NewMemoryStore()
	fp := Fingerprint("helo")

	_ = s.AddDelete(fp, "hello")
	_ = s.AddDelete(fp, "hello")
	_ = s.AddDelete(fp, "help")

	terms, err := s.GetTerms(fp)
	if err != nil {
		t.Fatalf("GetTerms: %v", err)
	}
	if len(terms) != 3 {
		t.Fatalf("GetTerms returned %v, want 3 entries (duplicates benign at Store level)", terms)
	}
}

func TestMemoryStoreGetTermsUnknownFingerprint(t *testing.T) {
	s := NewMemoryStore()
	terms, err := s.GetTerms(12345)
	if err != nil {
		t.Fatalf("GetTerms: %v", err)
	}
	if terms == nil || len(terms) != 0 {
		t.Fatalf("GetTerms for unknown fingerprint = %v, want empty non-nil slice", terms)
	}
}

func TestMemoryStoreGetTermsDefensiveCopy(t *testing.T) {
	s := NewMemoryStore()
	fp := Fingerprint("helo")
	_ = s.AddDelete(fp, "hello")

	terms, _ := s.GetTerms(fp)
	terms[0] = "mutated"

	terms2, _ := s.GetTerms(fp)
	if terms2[0] != "hello" {
		t.Fatalf("mutating a GetTerms result affected internal state: %v", terms2)
	}
}

func TestMemoryStoreTermExists(t *testing.T) {
	s := NewMemoryStore()
	if ok, _ := s.TermExists("hello"); ok {
		t.Fatalf("TermExists(hello) = true before insertion")
	}
	_ = s.SetFrequency("hello", 1)
	if ok, _ := s.TermExists("hello"); !ok {
		t.Fatalf("TermExists(hello) = false after insertion")
	}
}

func TestMemoryStoreTransactionsAreNoOps(t *testing.T) {
	s := NewMemoryStore()
	if err := s.BeginTransaction(); err != nil {
		t.Fatalf("BeginTransaction: %v", err)
	}
	if err := s.CommitTransaction(); err != nil {
		t.Fatalf("CommitTransaction: %v", err)
	}
	if err := s.RollbackTransaction(); err != nil {
		t.Fatalf("RollbackTransaction: %v", err)
	}
}

func TestMemoryStoreWordCount(t *testing.T) {
	s := NewMemoryStore()
	_ = s.SetFrequency("a", 1)
	_ = s.SetFrequency("b", 1)
	_ = s.SetFrequency("a", 2)
	if got := s.WordCount(); got != 2 {
		t.Fatalf("WordCount() = %d, want 2", got)
	}
}
