// Package registry holds the canonical set of administrative-area codes
// and the per-country name lookup tables derived from parsed gazetteer
// rows. A Registry is mutable during loading and read-only afterwards.
package registry

import (
	"github.com/pcode-matching/internal/names"
)

// Row is one parsed admin-unit record from whatever external source
// (CSV dataset, database table) the caller acquired it from.
type Row struct {
	CountryISO3 string
	PCode       string
	Name        string
}

// NameMap maps normalized admin names to p-codes, preserving insertion
// order for iteration. Resolution tie-breaks depend on registration
// order, so iteration must never be re-sorted. The first registration
// of a name wins; later collisions are ignored.
type NameMap struct {
	keys   []string
	values map[string]string
}

func newNameMap() *NameMap {
	return &NameMap{values: make(map[string]string)}
}

func (m *NameMap) set(key, value string) {
	if _, exists := m.values[key]; exists {
		return
	}
	m.keys = append(m.keys, key)
	m.values[key] = value
}

// Get returns the p-code registered under key, or "".
func (m *NameMap) Get(key string) string {
	return m.values[key]
}

// Keys returns the normalized names in registration order. The caller
// must not modify the returned slice.
func (m *NameMap) Keys() []string {
	return m.keys
}

// Len reports the number of registered names.
func (m *NameMap) Len() int {
	return len(m.keys)
}

// Registry owns the registered codes and their lookup tables.
type Registry struct {
	pcodes       []string
	pcodeSet     map[string]struct{}
	pcodeToName  map[string]string
	pcodeToISO3  map[string]string
	pcodeLengths map[string]int
	nameToPCode  map[string]*NameMap
}

// New creates an empty Registry.
func New() *Registry {
	return &Registry{
		pcodeSet:     make(map[string]struct{}),
		pcodeToName:  make(map[string]string),
		pcodeToISO3:  make(map[string]string),
		pcodeLengths: make(map[string]int),
		nameToPCode:  make(map[string]*NameMap),
	}
}

// Register inserts a code with its display name. Registering the same
// code again overwrites the display name (rows stream from untrusted
// sources, last write wins) but keeps its original position and its
// earlier normalized-name entries.
func (r *Registry) Register(countryISO3, pcode, name string) {
	if _, seen := r.pcodeSet[pcode]; !seen {
		r.pcodeSet[pcode] = struct{}{}
		r.pcodes = append(r.pcodes, pcode)
	}
	r.pcodeToName[pcode] = name
	r.pcodeToISO3[pcode] = countryISO3
	r.pcodeLengths[countryISO3] = len(pcode)

	nm := r.nameToPCode[countryISO3]
	if nm == nil {
		nm = newNameMap()
		r.nameToPCode[countryISO3] = nm
	}
	nm.set(names.Clean(name), pcode)
}

// Contains reports whether pcode is registered.
func (r *Registry) Contains(pcode string) bool {
	_, ok := r.pcodeSet[pcode]
	return ok
}

// LookupExact returns the display name of a registered code, or "".
func (r *Registry) LookupExact(pcode string) string {
	return r.pcodeToName[pcode]
}

// LookupByCountryName returns the code registered for a normalized name
// in the given country, or "".
func (r *Registry) LookupByCountryName(countryISO3, normalizedName string) string {
	nm := r.nameToPCode[countryISO3]
	if nm == nil {
		return ""
	}
	return nm.Get(normalizedName)
}

// ISO3Of returns the owning country of a registered code, or "".
func (r *Registry) ISO3Of(pcode string) string {
	return r.pcodeToISO3[pcode]
}

// PCodes returns all registered codes in registration order.
func (r *Registry) PCodes() []string {
	return r.pcodes
}

// PCodeLength returns the observed code length for a country, or 0 when
// the country has no registered codes.
func (r *Registry) PCodeLength(countryISO3 string) int {
	return r.pcodeLengths[countryISO3]
}

// CountryNames returns the ordered normalized-name map for a country,
// or nil when the country has no registered codes.
func (r *Registry) CountryNames(countryISO3 string) *NameMap {
	return r.nameToPCode[countryISO3]
}

// Len reports the number of registered codes.
func (r *Registry) Len() int {
	return len(r.pcodes)
}
