package db

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pcode-matching/internal/admin"
	"github.com/pcode-matching/internal/country"
	"github.com/pcode-matching/internal/registry"
)

// LoadAdminRows reads the registered admin units for one admin level in
// insertion order. Registration order matters downstream: it decides
// which unit wins substring and name-collision ties.
func (c *Connection) LoadAdminRows(adminLevel int) ([]registry.Row, error) {
	rows, err := c.DB.Query(`
		SELECT country_iso3, pcode, name
		FROM admin_unit
		WHERE admin_level = $1
		ORDER BY id`, adminLevel)
	if err != nil {
		return nil, fmt.Errorf("failed to query admin units: %w", err)
	}
	defer rows.Close()

	var out []registry.Row
	for rows.Next() {
		var row registry.Row
		if err := rows.Scan(&row.CountryISO3, &row.PCode, &row.Name); err != nil {
			return nil, fmt.Errorf("failed to scan admin unit: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read admin units: %w", err)
	}
	return out, nil
}

// LoadFormatRows reads the per-country p-code grammars. Segment lengths
// are stored as a comma separated list, country segment first, e.g.
// "2,3,3".
func (c *Connection) LoadFormatRows() ([]admin.FormatRow, error) {
	rows, err := c.DB.Query(`
		SELECT country_iso3, segment_lengths
		FROM pcode_format
		ORDER BY country_iso3`)
	if err != nil {
		return nil, fmt.Errorf("failed to query pcode formats: %w", err)
	}
	defer rows.Close()

	var out []admin.FormatRow
	for rows.Next() {
		var iso3, lengths string
		if err := rows.Scan(&iso3, &lengths); err != nil {
			return nil, fmt.Errorf("failed to scan pcode format: %w", err)
		}
		row := admin.FormatRow{CountryISO3: iso3}
		for _, part := range strings.Split(lengths, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil {
				return nil, fmt.Errorf("failed to parse pcode format for %s: %w", iso3, err)
			}
			row.SegmentLengths = append(row.SegmentLengths, n)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pcode formats: %w", err)
	}
	return out, nil
}

// LoadCountryRows reads the ISO3 to ISO2 country mapping.
func (c *Connection) LoadCountryRows() ([]country.Row, error) {
	rows, err := c.DB.Query(`
		SELECT iso3, iso2
		FROM country
		ORDER BY iso3`)
	if err != nil {
		return nil, fmt.Errorf("failed to query countries: %w", err)
	}
	defer rows.Close()

	var out []country.Row
	for rows.Next() {
		var row country.Row
		if err := rows.Scan(&row.ISO3, &row.ISO2); err != nil {
			return nil, fmt.Errorf("failed to scan country: %w", err)
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read countries: %w", err)
	}
	return out, nil
}
