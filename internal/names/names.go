package names

import (
	"regexp"
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// decompose splits accented characters into base letter plus combining
// marks and drops the marks, so "Défla" becomes "Defla".
var decompose = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))

// Clean normalizes an administrative-area name for lookup: accents are
// stripped, runs of whitespace and slashes collapse to single spaces,
// remaining characters fold to lowercase ASCII. Characters outside
// printable ASCII that do not decompose are dropped. Clean is idempotent.
func Clean(name string) string {
	s, _, err := transform.String(decompose, name)
	if err != nil {
		s = name
	}

	var b strings.Builder
	pendingSpace := false
	for _, r := range s {
		switch {
		case r == ' ' || r == '\t' || r == '\n' || r == '\v' || r == '\f' || r == '\r' || r == '/':
			pendingSpace = true
		case r > unicode.MaxASCII || !unicode.IsPrint(r):
			// untranslatable, drop
		default:
			if pendingSpace && b.Len() > 0 {
				b.WriteByte(' ')
			}
			pendingSpace = false
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return b.String()
}

// Replacer applies a fixed set of textual find/replace pairs in a single
// left-to-right pass. Longer patterns take precedence over shorter ones,
// ties break lexicographically, so the result is deterministic regardless
// of map iteration order.
type Replacer struct {
	replacements map[string]string
	re           *regexp.Regexp
}

// NewReplacer builds a Replacer from find->replace pairs. A nil or empty
// map yields a Replacer whose Apply is the identity.
func NewReplacer(pairs map[string]string) *Replacer {
	r := &Replacer{replacements: make(map[string]string, len(pairs))}
	if len(pairs) == 0 {
		return r
	}
	patterns := make([]string, 0, len(pairs))
	for find, replace := range pairs {
		if find == "" {
			continue
		}
		r.replacements[find] = replace
		patterns = append(patterns, find)
	}
	if len(patterns) == 0 {
		return r
	}
	sort.Slice(patterns, func(i, j int) bool {
		if len(patterns[i]) != len(patterns[j]) {
			return len(patterns[i]) > len(patterns[j])
		}
		return patterns[i] < patterns[j]
	})
	quoted := make([]string, len(patterns))
	for i, p := range patterns {
		quoted[i] = regexp.QuoteMeta(p)
	}
	r.re = regexp.MustCompile(strings.Join(quoted, "|"))
	return r
}

// Apply runs the replacements over s.
func (r *Replacer) Apply(s string) string {
	if r.re == nil {
		return s
	}
	return r.re.ReplaceAllStringFunc(s, func(match string) string {
		return r.replacements[match]
	})
}
