package registry

import (
	"reflect"
	"testing"
)

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	r.Register("YEM", "YE30", "Ad Dali")
	r.Register("YEM", "YE11", "Abyan")
	r.Register("NGA", "NG015", "Federal Capital Territory")

	if !r.Contains("YE30") {
		t.Error("YE30 should be registered")
	}
	if r.Contains("YE99") {
		t.Error("YE99 should not be registered")
	}
	if got := r.LookupExact("YE30"); got != "Ad Dali" {
		t.Errorf("LookupExact(YE30) = %q", got)
	}
	if got := r.LookupExact("XX99"); got != "" {
		t.Errorf("LookupExact of unknown code = %q, want empty", got)
	}
	if got := r.ISO3Of("NG015"); got != "NGA" {
		t.Errorf("ISO3Of(NG015) = %q", got)
	}
	if got := r.LookupByCountryName("YEM", "ad dali"); got != "YE30" {
		t.Errorf("LookupByCountryName = %q", got)
	}
	if got := r.LookupByCountryName("NGA", "ad dali"); got != "" {
		t.Errorf("cross-country name lookup = %q, want empty", got)
	}
	if got := r.PCodeLength("NGA"); got != 5 {
		t.Errorf("PCodeLength(NGA) = %d, want 5", got)
	}
	if got := r.PCodeLength("ZZZ"); got != 0 {
		t.Errorf("PCodeLength of unknown country = %d, want 0", got)
	}
}

func TestRegisterNormalizesNames(t *testing.T) {
	r := New()
	r.Register("YEM", "YE30", "Aḑ Ḑāli'")
	if got := r.LookupByCountryName("YEM", "ad dali'"); got != "YE30" {
		t.Errorf("accented name not normalized, lookup = %q", got)
	}
}

func TestDuplicateCodeOverwritesName(t *testing.T) {
	r := New()
	r.Register("YEM", "YE30", "Ad Dali")
	r.Register("YEM", "YE30", "Ad Dali'")

	if got := r.LookupExact("YE30"); got != "Ad Dali'" {
		t.Errorf("display name = %q, want last write", got)
	}
	if got := r.Len(); got != 1 {
		t.Errorf("Len = %d, want 1 (codes are unique)", got)
	}
	// both normalized spellings resolve to the code
	if got := r.LookupByCountryName("YEM", "ad dali"); got != "YE30" {
		t.Errorf("original normalized name lost: %q", got)
	}
	if got := r.LookupByCountryName("YEM", "ad dali'"); got != "YE30" {
		t.Errorf("new normalized name missing: %q", got)
	}
}

func TestNameCollisionFirstWriteWins(t *testing.T) {
	r := New()
	r.Register("YEM", "YE30", "Ad Dali")
	r.Register("YEM", "YE31", "Ad Dali")

	if got := r.LookupByCountryName("YEM", "ad dali"); got != "YE30" {
		t.Errorf("name collision = %q, want YE30 (first write wins)", got)
	}
}

func TestCountryNamesPreserveInsertionOrder(t *testing.T) {
	r := New()
	r.Register("YEM", "YE11", "Abyan")
	r.Register("YEM", "YE30", "Ad Dali")
	r.Register("YEM", "YE14", "Al Bayda")

	nm := r.CountryNames("YEM")
	want := []string{"abyan", "ad dali", "al bayda"}
	if !reflect.DeepEqual(nm.Keys(), want) {
		t.Errorf("Keys() = %v, want %v", nm.Keys(), want)
	}
}

func TestPCodesOrder(t *testing.T) {
	r := New()
	r.Register("YEM", "YE30", "Ad Dali")
	r.Register("NGA", "NG015", "FCT")
	r.Register("YEM", "YE30", "Ad Dali again")

	want := []string{"YE30", "NG015"}
	if !reflect.DeepEqual(r.PCodes(), want) {
		t.Errorf("PCodes() = %v, want %v", r.PCodes(), want)
	}
}
