package admin

import (
	"fmt"
	"strings"
)

// FormatRow is one parsed code-length grammar record: the expected
// character length of the country segment followed by one length per
// admin level, e.g. NGA -> [2, 3, 3].
type FormatRow struct {
	CountryISO3    string
	SegmentLengths []int
}

// LoadFormats installs the per-country code grammar and derives each
// country's zero positions: every character offset at which some
// registered code of that country carries a 0 digit. Malformed rows
// fail the whole load; a half-loaded grammar would repair codes wrongly.
func (l *Level) LoadFormats(rows []FormatRow) error {
	if len(rows) == 0 {
		return fmt.Errorf("no pcode format rows")
	}
	formats := make(map[string][]int, len(rows))
	for _, row := range rows {
		iso3 := strings.ToUpper(strings.TrimSpace(row.CountryISO3))
		if len(iso3) != 3 {
			return fmt.Errorf("invalid country %q in pcode format row", row.CountryISO3)
		}
		if len(row.SegmentLengths) < 2 {
			return fmt.Errorf("pcode format for %s needs a country length and at least one admin length", iso3)
		}
		if row.SegmentLengths[0] != 2 && row.SegmentLengths[0] != 3 {
			return fmt.Errorf("pcode format for %s: country segment length %d out of range", iso3, row.SegmentLengths[0])
		}
		for _, segLen := range row.SegmentLengths[1:] {
			if segLen <= 0 {
				return fmt.Errorf("pcode format for %s: admin segment length %d out of range", iso3, segLen)
			}
		}
		format := make([]int, len(row.SegmentLengths))
		copy(format, row.SegmentLengths)
		formats[iso3] = format
	}

	zeroes := make(map[string]map[int]bool)
	for _, pcode := range l.reg.PCodes() {
		iso3 := l.reg.ISO3Of(pcode)
		for i := 0; i < len(pcode); i++ {
			if pcode[i] != '0' {
				continue
			}
			if zeroes[iso3] == nil {
				zeroes[iso3] = make(map[int]bool)
			}
			zeroes[iso3][i] = true
		}
	}

	l.formats = formats
	l.zeroes = zeroes
	return nil
}

// grammarFor returns the segment lengths for a country when the grammar
// covers the country's admin level, else nil.
func (l *Level) grammarFor(countryISO3 string, level int) []int {
	format := l.formats[countryISO3]
	if format == nil || len(format) <= level {
		return nil
	}
	return format
}
