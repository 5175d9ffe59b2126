package wordlist

import "testing"

func TestUsable(t *testing.T) {
	for _, word := range []string{"hello", "co-op", "don't", "C++", "x"} {
		if !Usable(word) {
			t.Fatalf("expected %q to be usable", word)
		}
	}
	for _, word := range []string{"", "two words", "résumé", "naïve", "tab\tword", "don’t"} {
		if Usable(word) {
			t.Fatalf("expected %q to be rejected", word)
		}
	}
}
