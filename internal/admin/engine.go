// Package admin resolves free-form administrative-area identifiers
// (names or p-codes of varying format) to canonical registered p-codes
// for one admin level. Resolution tries literal overrides, exact code
// lookup, code length repair, exact name lookup and finally fuzzy name
// matching, logging every non-trivial decision.
package admin

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/pcode-matching/internal/country"
	"github.com/pcode-matching/internal/names"
	"github.com/pcode-matching/internal/phonetics"
	"github.com/pcode-matching/internal/registry"
)

// pcodeRegex is the general shape of a p-code: a 2-3 letter country
// segment followed by concatenated numeric admin segments.
var pcodeRegex = regexp.MustCompile(`^([a-zA-Z]{2,3})(\d+)$`)

// Config carries the optional resolution policy.
type Config struct {
	// CountriesFuzzyTry restricts fuzzy matching to these ISO3 codes.
	// nil means fuzzy match every country.
	CountriesFuzzyTry []string
	// NameMappings maps literal input strings to p-codes, for names
	// fuzzy matching is known to get wrong.
	NameMappings map[string]string
	// NameReplacements are textual replacements applied to normalized
	// names before the secondary fuzzy lookups.
	NameReplacements map[string]string
	// FuzzyDontMatch lists names that must never be fuzzy matched.
	FuzzyDontMatch []string
	// Transforms are orthographic-variant rewrites tried on candidate
	// names during phonetic matching. nil uses DefaultTransforms.
	Transforms []phonetics.Transform
}

// DefaultTransforms returns the arabic-article variants tried on
// candidate names during phonetic matching: "al X" read as "ad X" and
// "al X" read as plain "X".
func DefaultTransforms() []phonetics.Transform {
	return []phonetics.Transform{
		func(s string) string {
			if strings.HasPrefix(s, "al ") {
				return "ad " + s[3:]
			}
			return ""
		},
		func(s string) string {
			if strings.HasPrefix(s, "al ") {
				return s[3:]
			}
			return ""
		},
	}
}

// Level is the resolution engine for one admin level. It is safe for
// concurrent resolution once Setup (and optionally LoadFormats /
// SetParentAdmins) has completed.
type Level struct {
	level     int
	overrides map[string]int
	countries country.Lookup

	reg     *registry.Registry
	formats map[string][]int
	zeroes  map[string]map[int]bool
	parents []map[string]bool

	fuzzyTry   map[string]bool
	mappings   map[string]string
	replacer   *names.Replacer
	dont       map[string]bool
	transforms []phonetics.Transform
	matcher    *phonetics.Matcher

	diag *diagnostics
}

// New creates an engine for the given admin level. levelOverrides names
// countries that sit at a different admin depth than the engine default.
func New(countries country.Lookup, adminLevel int, cfg Config, levelOverrides map[string]int) *Level {
	l := &Level{
		level:      adminLevel,
		overrides:  levelOverrides,
		countries:  countries,
		reg:        registry.New(),
		mappings:   cfg.NameMappings,
		replacer:   names.NewReplacer(cfg.NameReplacements),
		dont:       make(map[string]bool, len(cfg.FuzzyDontMatch)),
		transforms: cfg.Transforms,
		matcher:    phonetics.NewMatcher(),
		diag:       newDiagnostics(),
	}
	if cfg.CountriesFuzzyTry != nil {
		l.fuzzyTry = make(map[string]bool, len(cfg.CountriesFuzzyTry))
		for _, iso3 := range cfg.CountriesFuzzyTry {
			l.fuzzyTry[iso3] = true
		}
	}
	for _, name := range cfg.FuzzyDontMatch {
		l.dont[strings.ToLower(name)] = true
	}
	if l.transforms == nil {
		l.transforms = DefaultTransforms()
	}
	return l
}

// Setup registers the parsed admin rows. It fails on an empty row set:
// resolving against an empty registry would silently mark everything
// unmatched.
func (l *Level) Setup(rows []registry.Row) error {
	if len(rows) == 0 {
		return errors.New("no admin rows to register")
	}
	for _, row := range rows {
		if row.PCode == "" || row.CountryISO3 == "" {
			return fmt.Errorf("admin row missing pcode or country: %+v", row)
		}
		l.reg.Register(row.CountryISO3, row.PCode, row.Name)
	}
	return nil
}

// AdminLevel returns the admin level used for a country, honoring
// per-country overrides.
func (l *Level) AdminLevel(countryISO3 string) int {
	if override, ok := l.overrides[countryISO3]; ok {
		return override
	}
	return l.level
}

// PCodes returns the registered codes in registration order.
func (l *Level) PCodes() []string {
	return l.reg.PCodes()
}

// PCodeLength returns the observed code length for a country, or 0.
func (l *Level) PCodeLength(countryISO3 string) int {
	return l.reg.PCodeLength(countryISO3)
}

// Registry exposes the underlying registry for read-only use by
// callers that need name/ISO3 lookups for reporting.
func (l *Level) Registry() *registry.Registry {
	return l.reg
}

// SetParentAdmins supplies the valid-code sets of parent admin levels,
// ordered from level 1 upward, for repair plausibility checks.
func (l *Level) SetParentAdmins(pcodeSets [][]string) {
	l.parents = make([]map[string]bool, len(pcodeSets))
	for i, set := range pcodeSets {
		l.parents[i] = make(map[string]bool, len(set))
		for _, pcode := range set {
			l.parents[i][pcode] = true
		}
	}
}

// SetParentAdminsFromLevels borrows the registered code sets of sibling
// engine instances representing parent admin levels.
func (l *Level) SetParentAdminsFromLevels(parents []*Level) {
	sets := make([][]string, len(parents))
	for i, parent := range parents {
		sets[i] = parent.PCodes()
	}
	l.SetParentAdmins(sets)
}

// Resolve maps an input string to a registered p-code for the country.
// The second return reports whether the result came from an exact
// process: literal override, code lookup, length repair or exact name
// hit. A shape-conforming code input never falls through to name
// matching. logname identifies the caller in diagnostics; empty
// disables logging.
func (l *Level) Resolve(countryISO3, input string, fuzzyMatch bool, logname string) (string, bool) {
	if pcode := l.mappings[input]; pcode != "" && l.reg.ISO3Of(pcode) == countryISO3 {
		return pcode, true
	}
	if pcodeRegex.MatchString(input) {
		pcode := strings.ToUpper(input)
		if l.registeredFor(countryISO3, pcode) {
			return pcode, true
		}
		return l.convertPCodeLength(countryISO3, pcode, logname), true
	}
	if pcode := l.reg.LookupByCountryName(countryISO3, names.Clean(input)); pcode != "" {
		return pcode, true
	}
	if !fuzzyMatch {
		return "", true
	}
	return l.fuzzyPCode(countryISO3, input, logname), false
}

// Matches returns the accumulated match records in stable sorted order.
func (l *Level) Matches() []MatchRecord {
	return l.diag.sortedMatches()
}

// Ignored returns the accumulated ignore records in stable sorted order.
func (l *Level) Ignored() []IgnoreRecord {
	return l.diag.sortedIgnored()
}

// Errors returns the accumulated error records in stable sorted order.
func (l *Level) Errors() []ErrorRecord {
	return l.diag.sortedErrors()
}

// ResetDiagnostics clears all accumulated records between runs.
func (l *Level) ResetDiagnostics() {
	l.diag.reset()
}
