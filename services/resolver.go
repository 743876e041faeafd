package services

import (
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"

	"athens-cinema-scraper/models"
	"athens-cinema-scraper/utils"
)

// GeoResult is what the resolver needs from a geocoding lookup.
type GeoResult struct {
	Lat              float64
	Lon              float64
	Area             string
	FormattedAddress string
}

// Geocoder resolves a free-text query to coordinates and an area.
// A nil result with a nil error means the service answered but found
// no match; both degrade to placeholder values.
type Geocoder interface {
	Geocode(query string) (*GeoResult, error)
}

// AddressDetailer resolves a cleaned street name to finer-grained
// administrative detail (suburb, neighbourhood).
type AddressDetailer interface {
	Lookup(street string) (suburb, neighbourhood string, err error)
}

// WebsiteFinder searches a places directory for a venue's public website.
// An empty string means no website could be found.
type WebsiteFinder interface {
	FindWebsite(query string) (string, error)
}

// Resolver turns a scraped venue (name, address) into cached metadata:
// geolocation, administrative area and website. Every external failure
// degrades to placeholder values; the resolver never aborts a run.
//
// The cache map is owned by the caller: loaded from storage before the
// run and persisted after it. The resolver only reads and merges into it.
type Resolver struct {
	geocoder  Geocoder
	addresses AddressDetailer
	websites  WebsiteFinder
	cache     map[string]models.CinemaInfo
	logger    *utils.Logger
	stats     *Summary
}

// NewResolver creates a Resolver over the given cache map.
func NewResolver(
	geocoder Geocoder,
	addresses AddressDetailer,
	websites WebsiteFinder,
	cache map[string]models.CinemaInfo,
	logger *utils.Logger,
	stats *Summary,
) *Resolver {
	return &Resolver{
		geocoder:  geocoder,
		addresses: addresses,
		websites:  websites,
		cache:     cache,
		logger:    logger,
		stats:     stats,
	}
}

// Resolve returns the enrichment record for a venue, consulting the cache
// first. Three outcomes:
//
//  1. cached with a website: returned unchanged, no external calls;
//  2. cached without a website: only the website lookup runs, and its
//     result is merged into the existing record;
//  3. unknown: geocoding and website lookups both run and the merged
//     record is inserted.
//
// Merging never drops a previously known field.
func (r *Resolver) Resolve(name, address string) models.CinemaInfo {
	key := CacheKey(name, address)

	if rec, ok := r.cache[key]; ok {
		if rec.Website != nil {
			r.stats.CacheHits++
			r.logger.Debug("[resolver] cache hit: %s", name)
			return rec
		}

		r.stats.CachePartialHits++
		r.logger.Info("[resolver] cached without website, fetching website only: %s", name)
		merged := rec.Merge(models.CinemaInfo{Website: r.fetchWebsite(name, address)})
		r.cache[key] = merged
		return merged
	}

	r.stats.CacheMisses++
	r.logger.Info("[resolver] fetching new info for: %s", name)

	info := r.fetchGeocode(name, address)
	info = info.Merge(models.CinemaInfo{Website: r.fetchWebsite(name, address)})
	r.cache[key] = info
	return info
}

// fetchGeocode queries the geocoder and, when it succeeds, the address
// detailer for suburb/neighbourhood of the cleaned street. On failure it
// returns the placeholder record: nil coordinates, area "Unknown".
func (r *Resolver) fetchGeocode(name, address string) models.CinemaInfo {
	query := venueQuery(name, address)

	res, err := r.geocoder.Geocode(query)
	if err != nil || res == nil {
		r.stats.GeocodeFailures++
		if err != nil {
			r.logger.Warn("[resolver] geocoding failed for %q: %v", query, err)
		} else {
			r.logger.Warn("[resolver] no geocoding match for %q", query)
		}
		return models.CinemaInfo{Area: "Unknown"}
	}

	lat, lon, formatted := res.Lat, res.Lon, res.FormattedAddress
	info := models.CinemaInfo{
		Lat:              &lat,
		Lon:              &lon,
		Area:             res.Area,
		FormattedAddress: &formatted,
	}

	if street := CleanStreet(formatted); street != "" && r.addresses != nil {
		suburb, neighbourhood, err := r.addresses.Lookup(street)
		if err != nil {
			r.logger.Warn("[resolver] address detail lookup failed for %q: %v", street, err)
		} else {
			info.Suburb = suburb
			info.Neighbourhood = neighbourhood
		}
	}
	return info
}

// fetchWebsite runs the places lookup. Any failure or empty answer yields
// nil, which Merge treats as "nothing learned"; the record keeps whatever
// website state it had.
func (r *Resolver) fetchWebsite(name, address string) *string {
	query := venueQuery(name, address)

	site, err := r.websites.FindWebsite(query)
	if err != nil {
		r.stats.WebsiteFailures++
		r.logger.Warn("[resolver] website lookup failed for %q: %v", query, err)
		return nil
	}
	if site == "" {
		r.logger.Debug("[resolver] no website found for %q", query)
		return nil
	}
	return &site
}

func venueQuery(name, address string) string {
	if strings.TrimSpace(address) == "" {
		return name
	}
	return name + ", " + address
}

// CacheKey builds the composite cache key for a venue. Both parts are
// normalized so spelling-identical inputs land on the same entry.
func CacheKey(name, address string) string {
	return normalizeVenue(name) + "_" + normalizeVenue(address)
}

// normalizeVenue canonicalizes one venue string: Unicode NFKC, zero-width
// spaces removed, NBSP mapped to a plain space, trimmed and lowercased.
// Idempotent: normalizing an already-normalized string is a no-op.
func normalizeVenue(s string) string {
	s = norm.NFKC.String(s)
	s = strings.ReplaceAll(s, "\u200b", "")
	s = strings.ReplaceAll(s, "\u00a0", " ")
	return strings.ToLower(strings.TrimSpace(s))
}

// streetWords are the street-type words and abbreviations stripped from a
// formatted address before it is used as a lookup query.
var streetWords = map[string]struct{}{
	"λ.":       {},
	"λ":        {},
	"λεωφόρος": {},
	"λεωφ.":    {},
	"λεωφ":     {},
	"οδός":     {},
	"οδ.":      {},
	"οδ":       {},
	"δρόμος":   {},
	"δρ.":      {},
	"δρ":       {},
}

// andSeparators splits a street at the first token meaning "and":
// an ampersand, the word "και", or a dash.
var andSeparators = regexp.MustCompile(`\s*&\s*|\s+και\s+|\s*-\s*`)

// CleanStreet reduces a formatted address to its leading street name:
// street-type abbreviations are dropped, then everything from the first
// "and" separator on is cut. "Λεωφ. Συγγρού 106 & Φραντζή" → "Συγγρού 106".
func CleanStreet(addr string) string {
	fields := strings.Fields(addr)
	kept := make([]string, 0, len(fields))
	for _, f := range fields {
		if _, drop := streetWords[strings.ToLower(f)]; drop {
			continue
		}
		kept = append(kept, f)
	}

	first := andSeparators.Split(strings.Join(kept, " "), 2)[0]
	return strings.TrimSpace(first)
}

const (
	// defaultArea is the locality Google answers for most of the metro area.
	defaultArea = "Αθήνα"
	// cityCenterLabel is the fallback region when nothing finer is known.
	cityCenterLabel = "Κέντρο Αθήνας"
)

// canonicalSuburbs remaps suburb names that come back romanized to their
// native-script spelling.
var canonicalSuburbs = map[string]string{
	"Nea Smyrni": "Νέα Σμύρνη",
}

// NormalizeRegion picks the display region for a resolved venue. The
// capital's default locality is refined to the suburb or neighbourhood
// when one of them says something more specific; otherwise the fixed
// city-center label applies.
func NormalizeRegion(info models.CinemaInfo) string {
	region := info.Area
	if region == defaultArea {
		switch {
		case info.Suburb != "" && info.Suburb != defaultArea:
			region = info.Suburb
		case info.Neighbourhood != "" && info.Neighbourhood != defaultArea:
			region = info.Neighbourhood
		default:
			region = cityCenterLabel
		}
	}
	if canon, ok := canonicalSuburbs[region]; ok {
		region = canon
	}
	if region == "" {
		region = "Unknown"
	}
	return region
}
