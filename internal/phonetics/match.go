package phonetics

// Transform rewrites a candidate name into an orthographic variant before
// distance computation. A Transform returns "" when it does not apply.
type Transform func(string) string

// DefaultThreshold is the largest phonetic distance accepted as a match.
const DefaultThreshold = 2

// Matcher finds the phonetically closest candidate name.
type Matcher struct {
	Threshold int
}

// NewMatcher creates a Matcher with the default distance threshold.
func NewMatcher() *Matcher {
	return &Matcher{Threshold: DefaultThreshold}
}

// Match returns the index of the candidate in possibleNames closest to
// name (or alternativeName, when non-empty), or -1 when the minimum
// distance exceeds the threshold. Each candidate is tried untransformed
// first, then through each transform in order. Ties keep the earliest
// candidate: only a strictly smaller distance moves the match.
func (m *Matcher) Match(possibleNames []string, name, alternativeName string, transforms []Transform) int {
	minDistance := -1
	matchingIndex := -1

	variants := make([]Transform, 0, len(transforms)+1)
	variants = append(variants, func(s string) string { return s })
	variants = append(variants, transforms...)

	check := func(query, candidate string, i int) {
		d := Distance(query, candidate)
		if minDistance < 0 || d < minDistance {
			minDistance = d
			matchingIndex = i
		}
	}

	for i, possibleName := range possibleNames {
		for _, transform := range variants {
			candidate := transform(possibleName)
			if candidate == "" {
				continue
			}
			check(name, candidate, i)
			if alternativeName != "" && alternativeName != name {
				check(alternativeName, candidate, i)
			}
		}
	}

	if minDistance < 0 || minDistance > m.Threshold {
		return -1
	}
	return matchingIndex
}
