package symspell

import "testing"

func TestDistanceBasic(t *testing.T) {
	cases := []struct {
		a, b string
		max  int
		want int
	}{
		{"hello", "hello", 2, 0},
		{"hello", "hellp", 2, 1},
		{"hello", "hexxo", 1, 2}, // exceeds max, clamps to max+1
		{"hello", "hexxo", 2, 2},
		{"ab", "ba", 2, 1}, // adjacent transposition counts as one edit
		{"", "abc", 3, 3},
		{"abc", "", 3, 3},
	}
	for _, c := range cases {
		got := Distance(c.a, c.b, c.max)
		if got != c.want {
			t.Errorf("Distance(%q, %q, %d) = %d, want %d", c.a, c.b, c.max, got, c.want)
		}
	}
}

// P9: distance is symmetric under the OSA formulation.
func TestDistanceSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"hello", "hellp"},
		{"kitten", "sitting"},
		{"ab", "ba"},
		{"international", "intranational"},
		{"", "x"},
	}
	for _, p := range pairs {
		for _, k := range []int{0, 1, 2, 5} {
			ab := Distance(p[0], p[1], k)
			ba := Distance(p[1], p[0], k)
			if ab != ba {
				t.Errorf("Distance(%q,%q,%d)=%d but Distance(%q,%q,%d)=%d", p[0], p[1], k, ab, p[1], p[0], k, ba)
			}
		}
	}
}

func TestDistanceExceedsMaxLengthShortCircuit(t *testing.T) {
	if got := Distance("a", "abcdef", 2); got != 3 {
		t.Errorf("Distance with length diff > max = %d, want max+1=3", got)
	}
}
