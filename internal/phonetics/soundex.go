// Package phonetics implements refined-soundex encoding and a
// distance-based candidate matcher for administrative-area names.
package phonetics

import (
	"strings"

	"github.com/agnivade/levenshtein"
)

// refined soundex digit for each letter A-Z
const translations = "01360240043788015936020505"

// Encode returns the refined-soundex code of a word: its first character
// followed by one digit per letter, with consecutive duplicate characters
// collapsed first. Vowels encode to 0 rather than being dropped, so the
// code keeps the word's full length and suits distance comparison.
func Encode(word string) string {
	word = squeeze(strings.ToUpper(word))
	if word == "" {
		return ""
	}

	var b strings.Builder
	b.WriteByte(word[0])
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c >= 'A' && c <= 'Z' {
			b.WriteByte(translations[c-'A'])
		}
	}
	return b.String()
}

// Distance is the edit distance between the refined-soundex codes of two
// words. Identical-sounding words score 0.
func Distance(word1, word2 string) int {
	return levenshtein.ComputeDistance(Encode(word1), Encode(word2))
}

// squeeze collapses runs of the same character into one.
func squeeze(s string) string {
	if len(s) <= 1 {
		return s
	}
	var b strings.Builder
	b.WriteByte(s[0])
	for i := 1; i < len(s); i++ {
		if s[i] != s[i-1] {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}
