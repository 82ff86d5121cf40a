// Package country provides ISO3<->ISO2 country code lookup. The upstream
// metadata feed that produces these pairs is outside this repo; callers
// supply parsed rows.
package country

import (
	"fmt"
	"strings"
)

// Row is one parsed country record.
type Row struct {
	ISO3 string
	ISO2 string
}

// Lookup resolves between ISO3 and ISO2 country code forms. Unknown codes
// resolve to "".
type Lookup interface {
	ISO2FromISO3(iso3 string) string
	ISO3FromISO2(iso2 string) string
}

// Table is an immutable-after-load Lookup backed by plain maps.
type Table struct {
	iso3ToISO2 map[string]string
	iso2ToISO3 map[string]string
}

// NewTable builds a Table from parsed rows. Rows with malformed code
// lengths are rejected.
func NewTable(rows []Row) (*Table, error) {
	t := &Table{
		iso3ToISO2: make(map[string]string, len(rows)),
		iso2ToISO3: make(map[string]string, len(rows)),
	}
	for _, row := range rows {
		iso3 := strings.ToUpper(strings.TrimSpace(row.ISO3))
		iso2 := strings.ToUpper(strings.TrimSpace(row.ISO2))
		if len(iso3) != 3 || len(iso2) != 2 {
			return nil, fmt.Errorf("invalid country row %q/%q", row.ISO3, row.ISO2)
		}
		t.iso3ToISO2[iso3] = iso2
		t.iso2ToISO3[iso2] = iso3
	}
	return t, nil
}

// ISO2FromISO3 returns the two-letter form of an ISO3 code, or "".
func (t *Table) ISO2FromISO3(iso3 string) string {
	return t.iso3ToISO2[strings.ToUpper(iso3)]
}

// ISO3FromISO2 returns the three-letter form of an ISO2 code, or "".
func (t *Table) ISO3FromISO2(iso2 string) string {
	return t.iso2ToISO3[strings.ToUpper(iso2)]
}

// Len reports how many countries are loaded.
func (t *Table) Len() int {
	return len(t.iso3ToISO2)
}
