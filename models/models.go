package models

import "time"

// CinemaRecord holds a raw (name, address) pair scraped from a movie page.
// It is ephemeral, produced per scrape pass and never persisted.
type CinemaRecord struct {
	Name    string
	Address string
}

// CinemaInfo is the cached enrichment for a venue: geocoded location,
// administrative area and public website. Keyed in the cache by the
// normalized "{name}_{address}" composite. Nullable fields are pointers so
// that a merge can tell "never resolved" apart from "resolved to empty".
type CinemaInfo struct {
	Lat              *float64 `json:"lat"`
	Lon              *float64 `json:"lon"`
	Area             string   `json:"area"`
	Suburb           string   `json:"suburb"`
	Neighbourhood    string   `json:"neighbourhood"`
	FormattedAddress *string  `json:"formatted_address"`
	Website          *string  `json:"website"`
}

// Merge folds other into a copy of c, field by field. Fields that other
// actually carries (non-nil pointers, non-empty strings) overwrite; every
// previously known field survives. Once cached, a record can only gain or
// update fields, never silently lose them.
func (c CinemaInfo) Merge(other CinemaInfo) CinemaInfo {
	merged := c
	if other.Lat != nil {
		merged.Lat = other.Lat
	}
	if other.Lon != nil {
		merged.Lon = other.Lon
	}
	if other.Area != "" {
		merged.Area = other.Area
	}
	if other.Suburb != "" {
		merged.Suburb = other.Suburb
	}
	if other.Neighbourhood != "" {
		merged.Neighbourhood = other.Neighbourhood
	}
	if other.FormattedAddress != nil {
		merged.FormattedAddress = other.FormattedAddress
	}
	if other.Website != nil {
		merged.Website = other.Website
	}
	return merged
}

// Movie is one guide entry. Slug starts out derived from the Greek title
// and is re-derived from the OMDb English title once the IMDb id resolves.
type Movie struct {
	GreekTitle     string `json:"greek_title"`
	OriginalTitle  string `json:"original_title"`
	AthinoramaLink string `json:"athinorama_link"`
	ImdbLink       string `json:"imdb_link"`
	Slug           string `json:"slug"`
	Poster         string `json:"poster,omitempty"`
	Plot           string `json:"plot,omitempty"`
}

// ParsedShowtime is the canonical, sortable form of a free-text showtime.
// Date is "YYYY-MM-DD", Time is the filesystem-safe "HH-MM". Year is always
// the year of the moment the string was parsed; there is no rollover
// handling for dates scraped across a year boundary.
type ParsedShowtime struct {
	Date   string    `json:"date"`
	Time   string    `json:"time"`
	Hour   int       `json:"hour"`
	Minute int       `json:"minute"`
	Day    int       `json:"day"`
	Month  int       `json:"month"`
	Year   int       `json:"year"`
	Full   time.Time `json:"full"`
}

// Room is a named screening room within a cinema.
type Room struct {
	Name string `json:"room"`
}

// MovieCinema associates one cinema (with its resolved metadata) to one
// movie's screening program. Timetable is a nested per-day list of raw
// showtime strings, kept in scrape order.
type MovieCinema struct {
	Cinema        string     `json:"cinema"`
	Address       string     `json:"address"`
	Lat           *float64   `json:"lat"`
	Lon           *float64   `json:"lon"`
	Region        string     `json:"region"`
	Subregion     string     `json:"subregion"`
	Neighbourhood string     `json:"neighbourhood"`
	Website       *string    `json:"website,omitempty"`
	Rooms         []Room     `json:"rooms"`
	Timetable     [][]string `json:"timetable"`
}

// OmdbMovie is the subset of the OMDb response the pipeline consumes.
type OmdbMovie struct {
	Response string `json:"Response"`
	Error    string `json:"Error"`
	Title    string `json:"Title"`
	Year     string `json:"Year"`
	Plot     string `json:"Plot"`
	Poster   string `json:"Poster"`
	ImdbID   string `json:"imdbID"`
}
