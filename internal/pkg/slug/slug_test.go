package slug

import (
	"strings"
	"testing"
)

func TestRandom_InvalidLength(t *testing.T) {
	t.Parallel()

	if _, err := Random(0); err == nil {
		t.Fatalf("expected error for invalid length")
	}
}

func TestRandom_LengthAndAlphabet(t *testing.T) {
	t.Parallel()

	s, err := Random(10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(s) != 10 {
		t.Fatalf("expected slug length 10, got %d", len(s))
	}

	for i := 0; i < len(s); i++ {
		if strings.IndexByte(alphabet, s[i]) == -1 {
			t.Fatalf("slug contains invalid character %q", s[i])
		}
	}
}

func TestRandom_UniqueWithinSmallBatch(t *testing.T) {
	t.Parallel()

	seen := make(map[string]struct{})

	for i := 0; i < 100; i++ {
		s, err := Random(10)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, exists := seen[s]; exists {
			t.Fatalf("duplicate slug generated in small batch: %s", s)
		}
		seen[s] = struct{}{}
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "Spring Sale", want: "spring-sale"},
		{in: "  Summer  2026!  ", want: "summer-2026"},
		{in: "already-fine", want: "already-fine"},
		{in: "---", want: ""},
		{in: "Ünïcode Städt", want: "n-code-st-dt"},
	}

	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Fatalf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
