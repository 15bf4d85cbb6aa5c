package symspell

import "testing"

func TestDeletesOfPrefixIncludesEmptyWhenShort(t *testing.T) {
	got := deletesOfPrefix("ab", 2, 7)
	found := false
	for _, v := range got {
		if v == "" {
			found = true
		}
	}
	if !found {
		t.Errorf("deletesOfPrefix(%q, 2, 7) = %v, want it to include \"\"", "ab", got)
	}
}

func TestDeletesOfPrefixExcludesEmptyWhenLong(t *testing.T) {
	got := deletesOfPrefix("hello", 1, 7)
	for _, v := range got {
		if v == "" {
			t.Errorf("deletesOfPrefix(%q, 1, 7) = %v, should not include \"\" (len 5 > maxEditDistance 1)", "hello", got)
		}
	}
}

func TestDeletesOfPrefixContainsKnownVariants(t *testing.T) {
	got := deletesOfPrefix("the", 1, 7)
	want := map[string]bool{"the": true, "he": true, "te": true, "th": true}
	set := make(map[string]struct{}, len(got))
	for _, v := range got {
		set[v] = struct{}{}
	}
	for w := range want {
		if _, ok := set[w]; !ok {
			t.Errorf("deletesOfPrefix(%q, 1, 7) missing expected variant %q; got %v", "the", w, got)
		}
	}
}

func TestDeletesOfPrefixNoDuplicates(t *testing.T) {
	got := deletesOfPrefix("banana", 2, 7)
	seen := make(map[string]struct{})
	for _, v := range got {
		if _, dup := seen[v]; dup {
			t.Errorf("deletesOfPrefix(%q, 2, 7) produced duplicate %q", "banana", v)
		}
		seen[v] = struct{}{}
	}
}

func TestDeletesOfPrefixRespectsPrefixLength(t *testing.T) {
	key := "internationally"
	got := deletesOfPrefix(key, 1, 7)
	prefix := key[:7]
	for _, v := range got {
		if v != "" && len(v) > len(prefix) {
			t.Errorf("deletesOfPrefix respected prefixLength=7 violated by variant %q", v)
		}
	}
}

func TestDeleteInSuggestionPrefix(t *testing.T) {
	cases := []struct {
		del, sugg string
		want      bool
	}{
		{"", "anything", true},
		{"helo", "hello", true},
		{"hlo", "hello", true},
		{"xyz", "hello", false},
		{"oh", "hello", false}, // out of order
		{"h", "helloworld", true},
	}
	for _, c := range cases {
		got := deleteInSuggestionPrefix(c.del, c.sugg)
		if got != c.want {
			t.Errorf("deleteInSuggestionPrefix(%q, %q) = %v, want %v", c.del, c.sugg, got, c.want)
		}
	}
}
