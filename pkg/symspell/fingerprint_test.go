package symspell

import "testing"

func TestFingerprintStable(t *testing.T) {
	inputs := []string{"", "a", "hello", "hellp", "international"}
	for _, s := range inputs {
		a := Fingerprint(s)
		b := Fingerprint(s)
		if a != b {
			t.Errorf("Fingerprint(%q) not stable: %d != %d", s, a, b)
		}
	}
}

func TestFingerprintLengthFold(t *testing.T) {
	// The length mask bits are OR'd in, so they must always be set in the
	// result regardless of what the hash itself produced there.
	for _, s := range []string{"a", "ab", "abc", "abcd", "abcde"} {
		fp := Fingerprint(s)
		mask := len(s)
		if mask > 3 {
			mask = 3
		}
		if got := int(fp) & mask; got != mask {
			t.Errorf("Fingerprint(%q) missing length-mask bits: got&mask=%d, want %d", s, got, mask)
		}
	}
}
