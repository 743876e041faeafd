package services

import (
	"fmt"
	"path"
	"regexp"
	"strconv"
	"strings"
	"time"

	"athens-cinema-scraper/models"
)

// showtimeRegexp matches the guide's free-text showtime form:
// "<weekday> <day> <month abbrev>. <HH>:<MM>", e.g. "Κυριακή 07 Δεκ. 16:00".
// Only the day, month token and time are captured; the weekday is ignored.
var showtimeRegexp = regexp.MustCompile(`(\d{1,2})\s+(\p{Greek}+)\.?\s+(\d{2}):(\d{2})`)

// greekMonths maps the guide's month abbreviations to month numbers.
var greekMonths = map[string]int{
	"Ιαν":  1,
	"Φεβ":  2,
	"Μαρ":  3,
	"Απρ":  4,
	"Μαΐ":  5,
	"Ιουν": 6,
	"Ιουλ": 7,
	"Αυγ":  8,
	"Σεπ":  9,
	"Οκτ":  10,
	"Νοε":  11,
	"Δεκ":  12,
}

// ParseShowtime converts a scraped showtime string into its canonical form.
// The year is always now's calendar year: the guide never prints one, and
// there is no rollover handling for a December program read in January.
//
// A string that does not match the pattern, or whose month abbreviation is
// not one of the twelve known tokens, returns ok=false and is skipped by
// callers. An unknown month is deliberately a parse failure rather than a
// default month, so unparsed dates surface in the logs instead of
// masquerading as January.
func ParseShowtime(raw string, now time.Time) (models.ParsedShowtime, bool) {
	m := showtimeRegexp.FindStringSubmatch(raw)
	if m == nil {
		return models.ParsedShowtime{}, false
	}

	day, _ := strconv.Atoi(m[1])
	hour, _ := strconv.Atoi(m[3])
	minute, _ := strconv.Atoi(m[4])

	month, ok := greekMonths[strings.TrimSuffix(m[2], ".")]
	if !ok {
		return models.ParsedShowtime{}, false
	}
	if day < 1 || day > 31 || hour > 23 || minute > 59 {
		return models.ParsedShowtime{}, false
	}

	year := now.Year()
	return models.ParsedShowtime{
		Date:   fmt.Sprintf("%04d-%02d-%02d", year, month, day),
		Time:   fmt.Sprintf("%02d-%02d", hour, minute),
		Hour:   hour,
		Minute: minute,
		Day:    day,
		Month:  month,
		Year:   year,
		Full:   time.Date(year, time.Month(month), day, hour, minute, 0, 0, now.Location()),
	}, true
}

// IsUpcoming reports whether a parsed showtime is still ahead of now:
// any later date, or today with a minute-of-day at or past the current one.
// A showtime equal to the current minute is kept. Pure in its two inputs.
func IsUpcoming(ps models.ParsedShowtime, now time.Time) bool {
	today := now.Format("2006-01-02")
	if ps.Date != today {
		return ps.Date > today
	}
	return ps.Hour*60+ps.Minute >= now.Hour()*60+now.Minute()
}

// ShowtimePath derives the deterministic page path for one screening:
// region-slug/cinema-slug/movie-slug/YYYY-MM-DD/HH-MM. Two screenings of
// the same triple collide only when date and time both match, in which
// case the later write wins.
func ShowtimePath(region, cinema, movie string, ps models.ParsedShowtime) string {
	return path.Join(Slugify(region), Slugify(cinema), Slugify(movie), ps.Date, ps.Time)
}
