package admin

import (
	"testing"

	"github.com/pcode-matching/internal/country"
	"github.com/pcode-matching/internal/registry"
)

func testCountries(t *testing.T) *country.Table {
	t.Helper()
	table, err := country.NewTable([]country.Row{
		{ISO3: "YEM", ISO2: "YE"},
		{ISO3: "NGA", ISO2: "NG"},
		{ISO3: "NER", ISO2: "NE"},
		{ISO3: "UKR", ISO2: "UA"},
		{ISO3: "SOM", ISO2: "SO"},
		{ISO3: "ZWE", ISO2: "ZW"},
		{ISO3: "DZA", ISO2: "DZ"},
		{ISO3: "COL", ISO2: "CO"},
		{ISO3: "JAM", ISO2: "JM"},
		{ISO3: "AFG", ISO2: "AF"},
	})
	if err != nil {
		t.Fatalf("country table: %v", err)
	}
	return table
}

func testConfig() Config {
	return Config{
		CountriesFuzzyTry: []string{"YEM", "NGA", "NER", "UKR", "SOM", "ZWE", "ABC"},
		NameMappings:      map[string]string{"FCT (Abuja)": "NG015"},
		NameReplacements: map[string]string{
			" oblast": "",
			"'":       "",
		},
		FuzzyDontMatch: []string{"nord"},
	}
}

func admin1Rows() []registry.Row {
	return []registry.Row{
		{CountryISO3: "YEM", PCode: "YE11", Name: "Abyan"},
		{CountryISO3: "YEM", PCode: "YE30", Name: "Ad Dali"},
		{CountryISO3: "YEM", PCode: "YE14", Name: "Al Bayda"},
		{CountryISO3: "NGA", PCode: "NG001", Name: "Abia"},
		{CountryISO3: "NGA", PCode: "NG015", Name: "Federal Capital Territory"},
		{CountryISO3: "NGA", PCode: "NG036", Name: "Taraba"},
		{CountryISO3: "NER", PCode: "NER004", Name: "Maradi"},
		{CountryISO3: "UKR", PCode: "UA74", Name: "Chernihivska"},
		{CountryISO3: "SOM", PCode: "SO24", Name: "Bay"},
		{CountryISO3: "ZWE", PCode: "ZW10", Name: "Harare"},
	}
}

func newAdmin1(t *testing.T) *Level {
	t.Helper()
	l := New(testCountries(t), 1, testConfig(), nil)
	if err := l.Setup(admin1Rows()); err != nil {
		t.Fatalf("Setup: %v", err)
	}
	return l
}

func checkResolve(t *testing.T, l *Level, iso3, input string, fuzzy bool, wantPCode string, wantExact bool) {
	t.Helper()
	pcode, exact := l.Resolve(iso3, input, fuzzy, "test")
	if pcode != wantPCode || exact != wantExact {
		t.Errorf("Resolve(%s, %q, %v) = (%q, %v), want (%q, %v)",
			iso3, input, fuzzy, pcode, exact, wantPCode, wantExact)
	}
}

func TestResolveAdmin1(t *testing.T) {
	l := newAdmin1(t)

	// exact and length-repaired codes are always exact results
	checkResolve(t, l, "YEM", "YE30", true, "YE30", true)
	checkResolve(t, l, "YEM", "ye30", true, "YE30", true)
	checkResolve(t, l, "YEM", "YEM30", true, "YE30", true)
	checkResolve(t, l, "YEM", "YEM030", true, "YE30", true)
	checkResolve(t, l, "YEM", "YEM3000", true, "", true)
	checkResolve(t, l, "NGA", "NG015", true, "NG015", true)
	checkResolve(t, l, "NGA", "NG15", true, "NG015", true)
	checkResolve(t, l, "NGA", "NGA015", true, "NG015", true)
	checkResolve(t, l, "NER", "NER004", true, "NER004", true)
	checkResolve(t, l, "NER", "NE04", true, "NER004", true)
	checkResolve(t, l, "NER", "NE004", true, "NER004", true)

	// registered codes belonging to a different country
	checkResolve(t, l, "ABC", "NER004", true, "", true)
	checkResolve(t, l, "NGA", "YE30", true, "", true)

	// countries with no registered codes
	checkResolve(t, l, "ABC", "NE004", true, "", true)
	checkResolve(t, l, "ABC", "BLAH", true, "", false)
	checkResolve(t, l, "XYZ", "XYZ123", true, "", true)
	checkResolve(t, l, "XYZ", "BLAH", true, "", false)

	// names
	checkResolve(t, l, "YEM", "Ad Dali", true, "YE30", true)
	checkResolve(t, l, "YEM", "Ad Dal", true, "YE30", false)
	checkResolve(t, l, "YEM", "nord", true, "", false)
	checkResolve(t, l, "NGA", "FCT (Abuja)", true, "NG015", true)
	checkResolve(t, l, "UKR", "Chernihiv Oblast", true, "UA74", false)
	checkResolve(t, l, "UKR", "Chernihiv Oblast", false, "", true)
	checkResolve(t, l, "NER", "ABCDEFGH", true, "", false)
	checkResolve(t, l, "ZWE", "ABCDEFGH", true, "", false)

	wantMatches := []string{
		"test - NER: Matching (pcode length conversion) NER004 to Maradi on map",
		"test - NGA: Matching (pcode length conversion) NG015 to Federal Capital Territory on map",
		"test - UKR: Matching (substring) Chernihiv Oblast to Chernihivska on map",
		"test - YEM: Matching (substring) Ad Dal to Ad Dali on map",
		"test - YEM: Matching (pcode length conversion) YE30 to Ad Dali on map",
	}
	matches := l.Matches()
	if len(matches) != len(wantMatches) {
		t.Fatalf("Matches() returned %d records: %v", len(matches), matches)
	}
	for i, want := range wantMatches {
		if got := matches[i].String(); got != want {
			t.Errorf("match[%d] = %q, want %q", i, got, want)
		}
	}

	wantIgnored := []string{
		"test - Ignored XYZ!",
		"test - YEM: Ignored nord!",
	}
	ignored := l.Ignored()
	if len(ignored) != len(wantIgnored) {
		t.Fatalf("Ignored() returned %d records: %v", len(ignored), ignored)
	}
	for i, want := range wantIgnored {
		if got := ignored[i].String(); got != want {
			t.Errorf("ignored[%d] = %q, want %q", i, got, want)
		}
	}

	wantErrors := []string{
		"test - Could not find ABC in map names!",
		"test - NER: Could not find ABCDEFGH in map names!",
		"test - ZWE: Could not find ABCDEFGH in map names!",
	}
	errs := l.Errors()
	if len(errs) != len(wantErrors) {
		t.Fatalf("Errors() returned %d records: %v", len(errs), errs)
	}
	for i, want := range wantErrors {
		if got := errs[i].String(); got != want {
			t.Errorf("error[%d] = %q, want %q", i, got, want)
		}
	}
}

func TestResolveAdmin1Fuzzy(t *testing.T) {
	l := newAdmin1(t)

	checkResolve(t, l, "YEM", "Al Dali", true, "YE30", false)
	checkResolve(t, l, "YEM", "Al Dhale'e / الضالع", true, "YE30", false)
	checkResolve(t, l, "SOM", "Bay", true, "SO24", true)

	wantMatches := []string{
		"test - YEM: Matching (fuzzy) Al Dali to Ad Dali on map",
		"test - YEM: Matching (fuzzy) Al Dhale'e / الضالع to Ad Dali on map",
	}
	matches := l.Matches()
	if len(matches) != len(wantMatches) {
		t.Fatalf("Matches() returned %d records: %v", len(matches), matches)
	}
	for i, want := range wantMatches {
		if got := matches[i].String(); got != want {
			t.Errorf("match[%d] = %q, want %q", i, got, want)
		}
	}
}

func TestResolveRepeatsCollapseInDiagnostics(t *testing.T) {
	l := newAdmin1(t)
	for i := 0; i < 3; i++ {
		checkResolve(t, l, "YEM", "YEM30", true, "YE30", true)
	}
	if matches := l.Matches(); len(matches) != 1 {
		t.Errorf("repeated resolution produced %d match records, want 1", len(matches))
	}
}

func TestResetDiagnostics(t *testing.T) {
	l := newAdmin1(t)
	checkResolve(t, l, "YEM", "YEM30", true, "YE30", true)
	l.ResetDiagnostics()
	if len(l.Matches()) != 0 || len(l.Ignored()) != 0 || len(l.Errors()) != 0 {
		t.Error("ResetDiagnostics left records behind")
	}
}

func TestResolveWithoutLogging(t *testing.T) {
	l := newAdmin1(t)
	pcode, exact := l.Resolve("YEM", "YEM30", true, "")
	if pcode != "YE30" || !exact {
		t.Fatalf("Resolve = (%q, %v)", pcode, exact)
	}
	if len(l.Matches()) != 0 {
		t.Error("empty logname should not record diagnostics")
	}
}

func TestAdminLevelOverrides(t *testing.T) {
	l := New(testCountries(t), 1, Config{}, map[string]int{"YEM": 5})
	if got := l.AdminLevel("YEM"); got != 5 {
		t.Errorf("AdminLevel(YEM) = %d, want override 5", got)
	}
	if got := l.AdminLevel("NGA"); got != 1 {
		t.Errorf("AdminLevel(NGA) = %d, want default 1", got)
	}
}

func TestSetupRejectsEmptyRows(t *testing.T) {
	l := New(testCountries(t), 1, Config{}, nil)
	if err := l.Setup(nil); err == nil {
		t.Error("expected error for empty row set")
	}
}

func TestSetupRejectsMalformedRow(t *testing.T) {
	l := New(testCountries(t), 1, Config{}, nil)
	err := l.Setup([]registry.Row{{CountryISO3: "YEM", PCode: "", Name: "Ad Dali"}})
	if err == nil {
		t.Error("expected error for row without pcode")
	}
}

func TestResolveRegisteredCodesRoundTrip(t *testing.T) {
	l := newAdmin1(t)
	for _, pcode := range l.PCodes() {
		iso3 := l.Registry().ISO3Of(pcode)
		got, exact := l.Resolve(iso3, pcode, true, "")
		if got != pcode || !exact {
			t.Errorf("Resolve(%s, %s) = (%q, %v), want identity", iso3, pcode, got, exact)
		}
	}
}
