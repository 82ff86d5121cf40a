package admin

import (
	"strings"

	"github.com/pcode-matching/internal/names"
	"github.com/pcode-matching/internal/registry"
)

// fuzzyPCode matches a name to a registered code through the staged
// pipeline: exact normalized lookup (primary and replacement forms),
// deny-list guard, substring scan, phonetic distance. Candidate names
// are always iterated in registration order so ties resolve the same
// way on every run.
func (l *Level) fuzzyPCode(countryISO3, name, logname string) string {
	if l.fuzzyTry != nil && !l.fuzzyTry[countryISO3] {
		l.diag.addIgnored(IgnoreRecord{Logname: logname, CountryISO3: countryISO3})
		return ""
	}
	nm := l.reg.CountryNames(countryISO3)
	if nm == nil || nm.Len() == 0 {
		l.diag.addError(ErrorRecord{Logname: logname, CountryISO3: countryISO3})
		return ""
	}

	lookup := names.Clean(name)
	lookup2 := l.replacer.Apply(lookup)

	pcode := nm.Get(lookup)
	if pcode == "" {
		pcode = nm.Get(lookup2)
	}

	if pcode == "" && l.dont[strings.ToLower(name)] {
		l.diag.addIgnored(IgnoreRecord{Logname: logname, CountryISO3: countryISO3, Name: name})
		return ""
	}

	if pcode == "" {
		pcode = l.substringPCode(nm, countryISO3, name, lookup, logname)
		if pcode == "" && lookup2 != lookup {
			pcode = l.substringPCode(nm, countryISO3, name, lookup2, logname)
		}
	}

	if pcode == "" {
		keys := nm.Keys()
		index := l.matcher.Match(keys, lookup, lookup2, l.transforms)
		if index < 0 {
			l.diag.addError(ErrorRecord{Logname: logname, CountryISO3: countryISO3, Name: name})
			return ""
		}
		pcode = nm.Get(keys[index])
		l.diag.addMatch(MatchRecord{
			Logname:     logname,
			CountryISO3: countryISO3,
			Input:       name,
			Output:      l.reg.LookupExact(pcode),
			Method:      "fuzzy",
		})
	}
	return pcode
}

// substringPCode returns the code of the first registered name, in
// registration order, containing the given normalized form.
func (l *Level) substringPCode(nm *registry.NameMap, countryISO3, name, form, logname string) string {
	if form == "" {
		return ""
	}
	for _, mapName := range nm.Keys() {
		if strings.Contains(mapName, form) {
			pcode := nm.Get(mapName)
			l.diag.addMatch(MatchRecord{
				Logname:     logname,
				CountryISO3: countryISO3,
				Input:       name,
				Output:      l.reg.LookupExact(pcode),
				Method:      "substring",
			})
			return pcode
		}
	}
	return ""
}
