package admin

import (
	"strconv"
	"strings"
)

// registeredFor reports whether pcode is registered and belongs to the
// given country. A code from another country is never a valid result,
// however well its shape fits.
func (l *Level) registeredFor(countryISO3, pcode string) bool {
	return l.reg.Contains(pcode) && l.reg.ISO3Of(pcode) == countryISO3
}

// convertPCodeLength reshapes a code-shaped but unregistered input into
// a registered code by repairing country-segment length and per-level
// zero-padding drift. With no grammar for the country it falls back to
// the simple length heuristic, which only exists for admin level 1.
func (l *Level) convertPCodeLength(countryISO3, pcode, logname string) string {
	m := pcodeRegex.FindStringSubmatch(pcode)
	if m == nil {
		return ""
	}
	level := l.AdminLevel(countryISO3)
	format := l.grammarFor(countryISO3, level)
	if format == nil {
		if level == 1 {
			return l.convertAdmin1PCodeLength(countryISO3, pcode, logname)
		}
		return ""
	}

	letters, digits := m[1], m[2]
	countryLen := format[0]
	switch {
	case len(letters) > countryLen:
		letters = l.countries.ISO2FromISO3(countryISO3)
	case len(letters) < countryLen:
		letters = strings.ToUpper(countryISO3)
	}
	if letters == "" {
		return ""
	}

	candidate := letters + digits
	if l.registeredFor(countryISO3, candidate) {
		l.diag.addMatch(MatchRecord{
			Logname:     logname,
			CountryISO3: countryISO3,
			Input:       candidate,
			Output:      l.reg.LookupExact(candidate),
			Method:      "pcode length conversion-country",
		})
		return candidate
	}

	total := countryLen
	for lvl := 1; lvl <= level; lvl++ {
		total += format[lvl]
	}

	// Walk the admin levels in order, repairing at most one zero per
	// level. Padding happens only at a known zero position; stripping
	// only removes an actual 0 at the segment's start offset. Below the
	// engine's own level a strip must consume the whole zero run: if
	// another 0 would remain at the same offset, the excess cannot be
	// pinned on this level and is attributed deeper. When parent
	// registries are present and the level is below this engine's, a
	// repair producing an implausible parent prefix is likewise skipped.
	var changes []string
	for lvl := 1; lvl <= level; lvl++ {
		if len(candidate) == total {
			break
		}
		pos := countryLen
		for i := 1; i < lvl; i++ {
			pos += format[i]
		}
		if pos >= len(candidate) {
			break
		}
		prefixEnd := pos + format[lvl]
		if len(candidate) < total {
			if !l.zeroes[countryISO3][pos] {
				continue
			}
			padded := candidate[:pos] + "0" + candidate[pos:]
			if lvl < level && !l.parentPlausible(lvl, padded, prefixEnd) {
				continue
			}
			candidate = padded
		} else {
			if candidate[pos] != '0' {
				continue
			}
			if lvl < level && pos+1 < len(candidate) && candidate[pos+1] == '0' {
				continue
			}
			stripped := candidate[:pos] + candidate[pos+1:]
			if lvl < level && !l.parentPlausible(lvl, stripped, prefixEnd) {
				continue
			}
			candidate = stripped
		}
		changes = append(changes, strconv.Itoa(lvl))
	}

	if len(changes) > 0 && l.registeredFor(countryISO3, candidate) {
		l.diag.addMatch(MatchRecord{
			Logname:     logname,
			CountryISO3: countryISO3,
			Input:       candidate,
			Output:      l.reg.LookupExact(candidate),
			Method:      "pcode length conversion-admins " + strings.Join(changes, ","),
		})
		return candidate
	}
	return ""
}

// parentPlausible reports whether the candidate's prefix through the
// given level is a valid parent code. Levels without a supplied parent
// registry are not vetoed.
func (l *Level) parentPlausible(lvl int, candidate string, prefixEnd int) bool {
	if l.parents == nil || lvl-1 >= len(l.parents) || l.parents[lvl-1] == nil {
		return true
	}
	if prefixEnd > len(candidate) {
		return false
	}
	return l.parents[lvl-1][candidate[:prefixEnd]]
}

// convertAdmin1PCodeLength is the grammar-less fallback: a fixed
// transformation table over the country's observed code length and the
// input length, covering the common real-world drift patterns between
// 4, 5 and 6 character admin-1 codes. Only registered outputs are
// accepted.
func (l *Level) convertAdmin1PCodeLength(countryISO3, pcode, logname string) string {
	countryLen := l.reg.PCodeLength(countryISO3)
	if countryLen == 0 {
		return ""
	}
	n := len(pcode)
	if n == countryLen || n < 4 || n > 6 {
		return ""
	}
	var candidate string
	switch countryLen {
	case 4:
		candidate = l.countries.ISO2FromISO3(pcode[:3]) + pcode[n-2:]
	case 5:
		if n == 4 {
			candidate = pcode[:2] + "0" + pcode[n-2:]
		} else {
			candidate = l.countries.ISO2FromISO3(pcode[:3]) + pcode[n-3:]
		}
	case 6:
		if n == 4 {
			candidate = l.countries.ISO3FromISO2(pcode[:2]) + "0" + pcode[n-2:]
		} else {
			candidate = l.countries.ISO3FromISO2(pcode[:2]) + pcode[n-3:]
		}
	default:
		return ""
	}
	if l.registeredFor(countryISO3, candidate) {
		l.diag.addMatch(MatchRecord{
			Logname:     logname,
			CountryISO3: countryISO3,
			Input:       candidate,
			Output:      l.reg.LookupExact(candidate),
			Method:      "pcode length conversion",
		})
		return candidate
	}
	return ""
}
