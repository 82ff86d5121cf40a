// Package source reads admin units, p-code grammars and country
// mappings from CSV files, for running without a database.
package source

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pcode-matching/internal/admin"
	"github.com/pcode-matching/internal/country"
	"github.com/pcode-matching/internal/registry"
)

// ReadAdminRows reads admin unit rows from a CSV file with columns
// country_iso3, pcode, name, admin_level. Rows are returned in file
// order, filtered to the requested admin level and, when countries is
// non-empty, to those country ISO3 codes. File order matters
// downstream: it decides which unit wins substring and name-collision
// ties.
func ReadAdminRows(filename string, adminLevel int, countries []string) ([]registry.Row, error) {
	var allow map[string]bool
	if len(countries) > 0 {
		allow = make(map[string]bool, len(countries))
		for _, iso3 := range countries {
			allow[strings.ToUpper(strings.TrimSpace(iso3))] = true
		}
	}
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var out []registry.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		if len(record) != 4 {
			return nil, fmt.Errorf("admin unit record has %d fields, want 4: %v", len(record), record)
		}
		level, err := strconv.Atoi(strings.TrimSpace(record[3]))
		if err != nil {
			return nil, fmt.Errorf("failed to parse admin level in %v: %w", record, err)
		}
		if level != adminLevel {
			continue
		}
		countryISO3 := strings.TrimSpace(record[0])
		if allow != nil && !allow[strings.ToUpper(countryISO3)] {
			continue
		}
		out = append(out, registry.Row{
			CountryISO3: countryISO3,
			PCode:       strings.TrimSpace(record[1]),
			Name:        strings.TrimSpace(record[2]),
		})
	}
	return out, nil
}

// ReadFormatRows reads p-code grammar rows from a CSV file. Each record
// is a country ISO3 followed by the segment lengths, country segment
// first, e.g. NGA,2,3,3. Records may differ in length.
func ReadFormatRows(filename string) ([]admin.FormatRow, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	reader.FieldsPerRecord = -1
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var out []admin.FormatRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		if len(record) < 3 {
			return nil, fmt.Errorf("pcode format record has %d fields, want at least 3: %v", len(record), record)
		}
		row := admin.FormatRow{CountryISO3: strings.TrimSpace(record[0])}
		for _, field := range record[1:] {
			n, err := strconv.Atoi(strings.TrimSpace(field))
			if err != nil {
				return nil, fmt.Errorf("failed to parse segment length in %v: %w", record, err)
			}
			row.SegmentLengths = append(row.SegmentLengths, n)
		}
		out = append(out, row)
	}
	return out, nil
}

// InputRow is one row of a third-party dataset to reconcile: a country
// and a free-form admin identifier (name or p-code).
type InputRow struct {
	CountryISO3 string
	Input       string
}

// ReadInputRows reads reconciliation inputs from a CSV file with
// columns country_iso3, input.
func ReadInputRows(filename string) ([]InputRow, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var out []InputRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		if len(record) != 2 {
			return nil, fmt.Errorf("input record has %d fields, want 2: %v", len(record), record)
		}
		out = append(out, InputRow{
			CountryISO3: strings.TrimSpace(record[0]),
			Input:       strings.TrimSpace(record[1]),
		})
	}
	return out, nil
}

// ReadCountryRows reads the ISO3 to ISO2 mapping from a CSV file with
// columns iso3, iso2.
func ReadCountryRows(filename string) ([]country.Row, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file %s: %w", filename, err)
	}
	defer file.Close()

	reader := csv.NewReader(file)
	if _, err := reader.Read(); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	var out []country.Row
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read record: %w", err)
		}
		if len(record) != 2 {
			return nil, fmt.Errorf("country record has %d fields, want 2: %v", len(record), record)
		}
		out = append(out, country.Row{
			ISO3: strings.TrimSpace(record[0]),
			ISO2: strings.TrimSpace(record[1]),
		})
	}
	return out, nil
}
