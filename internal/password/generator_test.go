package password

import (
	"strings"
	"testing"
)

func TestGenerateLength(t *testing.T) {
	for i := 0; i < 100; i++ {
		if got := Generate(); len(got) != Length {
			t.Fatalf("expected length %d, got %d (%q)", Length, len(got), got)
		}
	}
}

func TestGenerateContainsAllClasses(t *testing.T) {
	// The class guarantee is policy, not probability: every single
	// output must contain all four classes.
	for i := 0; i < 500; i++ {
		got := Generate()
		if !strings.ContainsAny(got, upperChars) {
			t.Fatalf("password %q missing uppercase", got)
		}
		if !strings.ContainsAny(got, lowerChars) {
			t.Fatalf("password %q missing lowercase", got)
		}
		if !strings.ContainsAny(got, digitChars) {
			t.Fatalf("password %q missing digit", got)
		}
		if !strings.ContainsAny(got, symbolChars) {
			t.Fatalf("password %q missing symbol", got)
		}
	}
}

func TestGenerateOnlyAllowedCharacters(t *testing.T) {
	allowed := upperChars + lowerChars + digitChars + symbolChars
	for i := 0; i < 100; i++ {
		got := Generate()
		for _, r := range got {
			if !strings.ContainsRune(allowed, r) {
				t.Fatalf("password %q contains unexpected character %q", got, r)
			}
		}
	}
}

func TestGenerateGuaranteedCharactersAreShuffled(t *testing.T) {
	// If the guaranteed upper/lower/digit/symbol stayed at fixed
	// positions, position 0 would always be uppercase.
	seenNonUpperFirst := false
	for i := 0; i < 200; i++ {
		got := Generate()
		if !strings.ContainsAny(got[:1], upperChars) {
			seenNonUpperFirst = true
			break
		}
	}
	if !seenNonUpperFirst {
		t.Fatal("first character was uppercase in 200 consecutive passwords; output does not look shuffled")
	}
}
