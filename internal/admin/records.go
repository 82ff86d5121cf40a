package admin

import (
	"fmt"
	"sort"
	"sync"
)

// MatchRecord logs one successful resolution. Input is the raw name for
// name matches and the converted code for length repairs; Output is the
// display name of the matched unit.
type MatchRecord struct {
	Logname     string
	CountryISO3 string
	Input       string
	Output      string
	Method      string
}

func (m MatchRecord) String() string {
	return fmt.Sprintf("%s - %s: Matching (%s) %s to %s on map", m.Logname, m.CountryISO3, m.Method, m.Input, m.Output)
}

// IgnoreRecord logs an input deliberately skipped by policy. Name is
// empty when a whole country was skipped.
type IgnoreRecord struct {
	Logname     string
	CountryISO3 string
	Name        string
}

func (i IgnoreRecord) String() string {
	if i.Name == "" {
		return fmt.Sprintf("%s - Ignored %s!", i.Logname, i.CountryISO3)
	}
	return fmt.Sprintf("%s - %s: Ignored %s!", i.Logname, i.CountryISO3, i.Name)
}

// ErrorRecord logs an attempted resolution with no acceptable candidate.
// Name is empty when the country had no registered names at all.
type ErrorRecord struct {
	Logname     string
	CountryISO3 string
	Name        string
}

func (e ErrorRecord) String() string {
	if e.Name == "" {
		return fmt.Sprintf("%s - Could not find %s in map names!", e.Logname, e.CountryISO3)
	}
	return fmt.Sprintf("%s - %s: Could not find %s in map names!", e.Logname, e.CountryISO3, e.Name)
}

// diagnostics accumulates resolution records. Repeats of the same record
// collapse, so bulk runs over repetitive source data stay readable. The
// mutex lets read-only resolution run from multiple goroutines.
type diagnostics struct {
	mu      sync.Mutex
	matches map[MatchRecord]struct{}
	ignored map[IgnoreRecord]struct{}
	errors  map[ErrorRecord]struct{}
}

func newDiagnostics() *diagnostics {
	d := &diagnostics{}
	d.reset()
	return d
}

func (d *diagnostics) reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.matches = make(map[MatchRecord]struct{})
	d.ignored = make(map[IgnoreRecord]struct{})
	d.errors = make(map[ErrorRecord]struct{})
}

func (d *diagnostics) addMatch(r MatchRecord) {
	if r.Logname == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.matches[r] = struct{}{}
}

func (d *diagnostics) addIgnored(r IgnoreRecord) {
	if r.Logname == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.ignored[r] = struct{}{}
}

func (d *diagnostics) addError(r ErrorRecord) {
	if r.Logname == "" {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.errors[r] = struct{}{}
}

func (d *diagnostics) sortedMatches() []MatchRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]MatchRecord, 0, len(d.matches))
	for r := range d.matches {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Logname != b.Logname {
			return a.Logname < b.Logname
		}
		if a.CountryISO3 != b.CountryISO3 {
			return a.CountryISO3 < b.CountryISO3
		}
		if a.Input != b.Input {
			return a.Input < b.Input
		}
		if a.Output != b.Output {
			return a.Output < b.Output
		}
		return a.Method < b.Method
	})
	return out
}

func (d *diagnostics) sortedIgnored() []IgnoreRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]IgnoreRecord, 0, len(d.ignored))
	for r := range d.ignored {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Logname != b.Logname {
			return a.Logname < b.Logname
		}
		if a.CountryISO3 != b.CountryISO3 {
			return a.CountryISO3 < b.CountryISO3
		}
		return a.Name < b.Name
	})
	return out
}

func (d *diagnostics) sortedErrors() []ErrorRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]ErrorRecord, 0, len(d.errors))
	for r := range d.errors {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Logname != b.Logname {
			return a.Logname < b.Logname
		}
		if a.CountryISO3 != b.CountryISO3 {
			return a.CountryISO3 < b.CountryISO3
		}
		return a.Name < b.Name
	})
	return out
}
