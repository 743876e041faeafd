package services

import (
	"errors"
	"testing"

	"athens-cinema-scraper/models"
	"athens-cinema-scraper/utils"
)

type fakeGeocoder struct {
	calls  int
	result *GeoResult
	err    error
}

func (f *fakeGeocoder) Geocode(query string) (*GeoResult, error) {
	f.calls++
	return f.result, f.err
}

type fakeDetailer struct {
	calls         int
	suburb        string
	neighbourhood string
	err           error
}

func (f *fakeDetailer) Lookup(street string) (string, string, error) {
	f.calls++
	return f.suburb, f.neighbourhood, f.err
}

type fakeWebsites struct {
	calls int
	site  string
	err   error
}

func (f *fakeWebsites) FindWebsite(query string) (string, error) {
	f.calls++
	return f.site, f.err
}

func newTestResolver(geo *fakeGeocoder, det *fakeDetailer, web *fakeWebsites,
	cache map[string]models.CinemaInfo) *Resolver {
	return NewResolver(geo, det, web, cache, utils.NewLogger(), NewSummary())
}

func TestNormalizeVenueIdempotent(t *testing.T) {
	inputs := []string{
		"Δαναός",
		"  ΔΑΝΑΟΣ  ",
		"Cine\u200bΔαναός",
		"Λ. Κηφισίας 109",
		"",
	}

	for _, in := range inputs {
		once := normalizeVenue(in)
		twice := normalizeVenue(once)
		if once != twice {
			t.Errorf("normalizeVenue not idempotent for %q: %q vs %q", in, once, twice)
		}
	}
}

func TestCacheKeyEquivalentInputs(t *testing.T) {
	// same venue with cosmetic differences must hit the same entry
	a := CacheKey("Δαναός ", "Λ. Κηφισίας 109")
	b := CacheKey("δαναός", "λ. κηφισίας 109")
	if a != b {
		t.Errorf("equivalent inputs produced different keys: %q vs %q", a, b)
	}
}

func TestMergeNeverLosesFields(t *testing.T) {
	lat, lon := 37.98, 23.73
	addr := "Κηφισίας 109"
	site := "https://danaoscinema.gr"

	cached := models.CinemaInfo{
		Lat: &lat, Lon: &lon,
		Area:             "Αθήνα",
		FormattedAddress: &addr,
	}

	merged := cached.Merge(models.CinemaInfo{Website: &site})

	if merged.Lat == nil || *merged.Lat != lat {
		t.Error("merge dropped Lat")
	}
	if merged.FormattedAddress == nil || *merged.FormattedAddress != addr {
		t.Error("merge dropped FormattedAddress")
	}
	if merged.Website == nil || *merged.Website != site {
		t.Error("merge did not add Website")
	}

	// last-write-wins per field, untouched fields survive
	newArea := "Χαλάνδρι"
	merged2 := merged.Merge(models.CinemaInfo{Area: newArea})
	if merged2.Area != newArea {
		t.Errorf("merge did not overwrite Area: got %q", merged2.Area)
	}
	if merged2.Website == nil || *merged2.Website != site {
		t.Error("merge of unrelated field dropped Website")
	}
}

func TestResolveFullCacheHitMakesNoCalls(t *testing.T) {
	site := "https://example.gr"
	cache := map[string]models.CinemaInfo{
		CacheKey("Δαναός", "Κηφισίας 109"): {Area: "Αθήνα", Website: &site},
	}
	geo := &fakeGeocoder{}
	web := &fakeWebsites{}
	r := newTestResolver(geo, &fakeDetailer{}, web, cache)

	got := r.Resolve("Δαναός", "Κηφισίας 109")

	if geo.calls != 0 || web.calls != 0 {
		t.Errorf("cache hit made external calls: geocode=%d website=%d", geo.calls, web.calls)
	}
	if got.Website == nil || *got.Website != site {
		t.Error("cache hit returned wrong record")
	}
}

func TestResolvePartialHitFetchesWebsiteOnly(t *testing.T) {
	lat, lon := 37.98, 23.73
	cache := map[string]models.CinemaInfo{
		CacheKey("Δαναός", "Κηφισίας 109"): {Lat: &lat, Lon: &lon, Area: "Αθήνα"},
	}
	geo := &fakeGeocoder{}
	web := &fakeWebsites{site: "https://danaoscinema.gr"}
	r := newTestResolver(geo, &fakeDetailer{}, web, cache)

	got := r.Resolve("Δαναός", "Κηφισίας 109")

	if geo.calls != 0 {
		t.Errorf("partial hit re-called geocoder %d times", geo.calls)
	}
	if web.calls != 1 {
		t.Errorf("website lookups: got %d, want 1", web.calls)
	}
	if got.Website == nil || *got.Website != "https://danaoscinema.gr" {
		t.Error("website was not merged in")
	}
	if got.Lat == nil || *got.Lat != lat {
		t.Error("merge dropped cached coordinates")
	}

	// the merged record must be persisted back into the cache
	stored := cache[CacheKey("Δαναός", "Κηφισίας 109")]
	if stored.Website == nil {
		t.Error("merged record was not written back to the cache")
	}
}

func TestResolveMissFetchesAndInserts(t *testing.T) {
	cache := map[string]models.CinemaInfo{}
	geo := &fakeGeocoder{result: &GeoResult{
		Lat: 37.95, Lon: 23.71, Area: "Αθήνα",
		FormattedAddress: "Λεωφ. Συγγρού 106 & Φραντζή, Αθήνα",
	}}
	det := &fakeDetailer{suburb: "Νέος Κόσμος", neighbourhood: "Κυνοσάργους"}
	web := &fakeWebsites{site: "https://example.gr"}
	r := newTestResolver(geo, det, web, cache)

	got := r.Resolve("Ταινιοθήκη", "Συγγρού 106")

	if geo.calls != 1 || web.calls != 1 || det.calls != 1 {
		t.Errorf("calls: geocode=%d website=%d detail=%d; want 1 each", geo.calls, web.calls, det.calls)
	}
	if got.Lat == nil || *got.Lat != 37.95 {
		t.Error("coordinates missing from resolved record")
	}
	if got.Suburb != "Νέος Κόσμος" || got.Neighbourhood != "Κυνοσάργους" {
		t.Errorf("suburb/neighbourhood: got %q/%q", got.Suburb, got.Neighbourhood)
	}
	if len(cache) != 1 {
		t.Errorf("cache size after miss: got %d, want 1", len(cache))
	}
}

func TestResolveGeocodeFailureDegrades(t *testing.T) {
	cache := map[string]models.CinemaInfo{}
	geo := &fakeGeocoder{err: errors.New("upstream 500")}
	web := &fakeWebsites{}
	r := newTestResolver(geo, &fakeDetailer{}, web, cache)

	got := r.Resolve("Άγνωστο Σινεμά", "")

	if got.Area != "Unknown" {
		t.Errorf("area after geocode failure: got %q, want Unknown", got.Area)
	}
	if got.Lat != nil || got.Lon != nil {
		t.Error("coordinates should be nil after geocode failure")
	}
	if len(cache) != 1 {
		t.Error("placeholder record should still be cached")
	}
}

func TestCleanStreet(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Λεωφ. Συγγρού 106 & Φραντζή", "Συγγρού 106"},
		{"Οδός Σταδίου 4", "Σταδίου 4"},
		{"Πατησίων 42 και Στουρνάρη", "Πατησίων 42"},
		{"Κηφισίας 109", "Κηφισίας 109"},
	}

	for _, tt := range tests {
		got := CleanStreet(tt.in)
		if got != tt.want {
			t.Errorf("CleanStreet(%q) = %q; want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeRegion(t *testing.T) {
	tests := []struct {
		name string
		info models.CinemaInfo
		want string
	}{
		{"non-capital area kept", models.CinemaInfo{Area: "Χαλάνδρι"}, "Χαλάνδρι"},
		{"capital refined to suburb", models.CinemaInfo{Area: "Αθήνα", Suburb: "Παγκράτι"}, "Παγκράτι"},
		{"capital refined to neighbourhood", models.CinemaInfo{Area: "Αθήνα", Neighbourhood: "Κουκάκι"}, "Κουκάκι"},
		{"capital with no detail falls back", models.CinemaInfo{Area: "Αθήνα"}, "Κέντρο Αθήνας"},
		{"suburb equal to area is not a refinement", models.CinemaInfo{Area: "Αθήνα", Suburb: "Αθήνα"}, "Κέντρο Αθήνας"},
		{"romanized suburb remapped", models.CinemaInfo{Area: "Αθήνα", Suburb: "Nea Smyrni"}, "Νέα Σμύρνη"},
		{"empty area", models.CinemaInfo{}, "Unknown"},
	}

	for _, tt := range tests {
		if got := NormalizeRegion(tt.info); got != tt.want {
			t.Errorf("%s: NormalizeRegion = %q; want %q", tt.name, got, tt.want)
		}
	}
}
