package symspell

import "sort"

// Index owns a Store exclusively and implements insertion and fuzzy
// lookup over it. The below-threshold pending buffer lives only in the
// Index, never in the Store.
type Index struct {
	store Store

	maxEditDistance int
	prefixLength    int
	countThreshold  int64

	maxDictionaryWordLength int

	belowThreshold map[string]int64
}

// NewIndex constructs an Index over store with the given maxEditDistance
// (M) and prefixLength (P). It does not inspect the Store's existing
// contents; callers that reopen a PersistentStore should use
// SetMaxWordLengthHint to restore the length early-exit (see §9 of the
// design notes this module follows: the reference leaves this at 0 after
// reopen, which this module avoids by recomputing it at open time).
func NewIndex(store Store, maxEditDistance, prefixLength int) *Index {
	if maxEditDistance < 0 {
		maxEditDistance = defaultMaxEditDistance
	}
	if prefixLength < maxEditDistance {
		prefixLength = defaultPrefixLength
	}
	return &Index{
		store:           store,
		maxEditDistance: maxEditDistance,
		prefixLength:    prefixLength,
		countThreshold:  defaultCountThreshold,
		belowThreshold:  make(map[string]int64),
	}
}

func (ix *Index) MaxEditDistance() int { return ix.maxEditDistance }
func (ix *Index) PrefixLength() int    { return ix.prefixLength }
func (ix *Index) MaxWordLength() int   { return ix.maxDictionaryWordLength }

// SetCountThreshold changes the minimum accumulated frequency a term must
// reach before it is posted to the Store.
func (ix *Index) SetCountThreshold(t int64) {
	if t < 1 {
		t = 1
	}
	ix.countThreshold = t
}

// SetMaxWordLengthHint seeds the length-based lookup early-exit, e.g. from
// an aggregate query run by the caller when reopening a PersistentStore.
func (ix *Index) SetMaxWordLengthHint(n int) {
	if n > ix.maxDictionaryWordLength {
		ix.maxDictionaryWordLength = n
	}
}

// Insert accumulates count against key, promoting it to the posted set
// once the accumulated frequency reaches the count threshold. It returns
// true iff this call caused key's delete-variants to be written.
func (ix *Index) Insert(key string, count int64) bool {
	if count <= 0 {
		return false
	}

	if pending, ok := ix.belowThreshold[key]; ok {
		count = saturatingAdd(pending, count)
		if count >= ix.countThreshold {
			delete(ix.belowThreshold, key)
		} else {
			ix.belowThreshold[key] = count
			return false
		}
	} else {
		freq, exists, err := ix.store.GetFrequency(key)
		if err == nil && exists {
			total := saturatingAdd(freq, count)
			if _, accumulates := ix.store.(*PersistentStore); accumulates {
				// PersistentStore.SetFrequency adds to the stored value, so it
				// gets only the increment; MemoryStore gets the new total.
				_ = ix.store.SetFrequency(key, total-freq)
			} else {
				_ = ix.store.SetFrequency(key, total)
			}
			return false
		}
		if count < ix.countThreshold {
			ix.belowThreshold[key] = count
			return false
		}
	}

	_ = ix.store.SetFrequency(key, count)
	if len(key) > ix.maxDictionaryWordLength {
		ix.maxDictionaryWordLength = len(key)
	}

	for _, variant := range deletesOfPrefix(key, ix.maxEditDistance, ix.prefixLength) {
		_ = ix.store.AddDelete(Fingerprint(variant), key)
	}

	return true
}

// Lookup finds every dictionary term reachable from input within maxDist
// (clamped to the Index's maxEditDistance; pass -1 to use it directly),
// pruned and ordered according to verbosity.
func (ix *Index) Lookup(input string, verbosity Verbosity, maxDist int) []Suggestion {
	if input == "" {
		return nil
	}

	d := maxDist
	if d < 0 || d > ix.maxEditDistance {
		d = ix.maxEditDistance
	}

	inputLen := len(input)

	if ix.maxDictionaryWordLength > 0 && inputLen-d > ix.maxDictionaryWordLength {
		return nil
	}

	var suggestions []Suggestion

	if freq, exists, err := ix.store.GetFrequency(input); err == nil && exists {
		suggestions = append(suggestions, Suggestion{Term: input, Distance: 0, Frequency: freq})
		if verbosity != All {
			return suggestions
		}
	}

	if d == 0 {
		return suggestions
	}

	consideredDeletes := make(map[string]struct{})
	consideredSuggestions := make(map[string]struct{})
	consideredSuggestions[input] = struct{}{}

	dPrime := d
	inputPrefixLen := inputLen
	if inputPrefixLen > ix.prefixLength {
		inputPrefixLen = ix.prefixLength
	}

	candidates := []string{input[:inputPrefixLen]}

	for p := 0; p < len(candidates); p++ {
		candidate := candidates[p]
		candidateLen := len(candidate)
		lenDiff := inputPrefixLen - candidateLen

		if lenDiff > dPrime {
			if verbosity == All {
				continue
			}
			break
		}

		terms, _ := ix.store.GetTerms(Fingerprint(candidate))
		for _, s := range terms {
			if s == input {
				continue
			}

			sLen := len(s)
			if abs(sLen-inputLen) > dPrime {
				continue
			}
			if sLen < candidateLen {
				continue
			}
			if sLen == candidateLen && s != candidate {
				continue
			}

			sPrefixLen := sLen
			if sPrefixLen > ix.prefixLength {
				sPrefixLen = ix.prefixLength
			}
			if sPrefixLen > inputPrefixLen && (sPrefixLen-candidateLen) > dPrime {
				continue
			}

			if !deleteInSuggestionPrefix(candidate, s) {
				continue
			}

			if _, dup := consideredSuggestions[s]; dup {
				continue
			}
			consideredSuggestions[s] = struct{}{}

			dist := Distance(input, s, dPrime)
			if dist < 0 || dist > dPrime {
				continue
			}

			freq, _, _ := ix.store.GetFrequency(s)

			switch verbosity {
			case Top:
				if len(suggestions) == 0 {
					dPrime = dist
					suggestions = append(suggestions, Suggestion{Term: s, Distance: dist, Frequency: freq})
				} else if dist < dPrime || (dist == dPrime && freq > suggestions[0].Frequency) {
					dPrime = dist
					suggestions[0] = Suggestion{Term: s, Distance: dist, Frequency: freq}
				}
			case Closest:
				if dist < dPrime {
					suggestions = suggestions[:0]
					dPrime = dist
					suggestions = append(suggestions, Suggestion{Term: s, Distance: dist, Frequency: freq})
				} else if dist == dPrime {
					suggestions = append(suggestions, Suggestion{Term: s, Distance: dist, Frequency: freq})
				}
			default: // All
				suggestions = append(suggestions, Suggestion{Term: s, Distance: dist, Frequency: freq})
			}
		}

		if lenDiff < ix.maxEditDistance && candidateLen <= ix.prefixLength {
			if verbosity != All && lenDiff >= dPrime {
				continue
			}
			for i := 0; i < candidateLen; i++ {
				deleted := candidate[:i] + candidate[i+1:]
				if _, seen := consideredDeletes[deleted]; !seen {
					consideredDeletes[deleted] = struct{}{}
					candidates = append(candidates, deleted)
				}
			}
		}
	}

	if verbosity != All && len(suggestions) > 0 {
		sort.SliceStable(suggestions, func(i, j int) bool {
			if suggestions[i].Distance != suggestions[j].Distance {
				return suggestions[i].Distance < suggestions[j].Distance
			}
			return suggestions[i].Frequency > suggestions[j].Frequency
		})

		if verbosity == Closest {
			minDist := suggestions[0].Distance
			kept := suggestions[:1]
			for _, s := range suggestions[1:] {
				if s.Distance == minDist {
					kept = append(kept, s)
				}
			}
			suggestions = kept
		}
	}

	return suggestions
}
