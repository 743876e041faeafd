package services

import (
	"fmt"
	"sort"
	"strings"
)

// Summary accumulates counters across one pipeline run and prints them as
// the closing report. It is plain mutable state shared by the sequential
// stages; nothing here is safe for concurrent use because nothing needs
// to be.
type Summary struct {
	MoviesScraped int
	MoviesSkipped int
	CinemasSeen   int

	CacheHits        int
	CachePartialHits int
	CacheMisses      int

	GeocodeFailures int
	WebsiteFailures int
	OmdbResolved    int
	OmdbFailures    int

	ShowtimesParsed     int
	ShowtimesKept       int
	ShowtimesDropped    int
	ShowtimesUnparsable int

	FragmentsWritten int
	PagesWritten     int

	CinemasByRegion map[string]int
}

// NewSummary creates an empty Summary.
func NewSummary() *Summary {
	return &Summary{CinemasByRegion: make(map[string]int)}
}

// CountRegion records one cinema appearance under its region.
func (s *Summary) CountRegion(region string) {
	if region != "" {
		s.CinemasByRegion[region]++
	}
}

// Print writes the run report to stdout.
func (s *Summary) Print() {
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Printf("\n\033[1;35m%s\033[0m\n", sep)
	fmt.Printf("\033[1;35m  🎬 CINEMA SCRAPE SUMMARY\033[0m\n")
	fmt.Printf("\033[1;35m%s\033[0m\n\n", sep)

	fmt.Printf("\033[1;33m  Guide\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Movies scraped     : \033[1m%d\033[0m\n", s.MoviesScraped)
	fmt.Printf("  Movies skipped     : \033[1m%d\033[0m\n", s.MoviesSkipped)
	fmt.Printf("  Cinema entries     : \033[1m%d\033[0m\n", s.CinemasSeen)
	fmt.Println()

	fmt.Printf("\033[1;33m  Metadata cache\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Full hits          : \033[1;32m%d\033[0m\n", s.CacheHits)
	fmt.Printf("  Website-only hits  : \033[1;32m%d\033[0m\n", s.CachePartialHits)
	fmt.Printf("  Misses             : \033[1m%d\033[0m\n", s.CacheMisses)
	fmt.Printf("  Geocode failures   : \033[1;31m%d\033[0m\n", s.GeocodeFailures)
	fmt.Printf("  Website failures   : \033[1;31m%d\033[0m\n", s.WebsiteFailures)
	fmt.Println()

	fmt.Printf("\033[1;33m  Showtimes\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  Parsed             : \033[1m%d\033[0m\n", s.ShowtimesParsed)
	fmt.Printf("  Upcoming (kept)    : \033[1;32m%d\033[0m\n", s.ShowtimesKept)
	fmt.Printf("  Past (dropped)     : \033[1m%d\033[0m\n", s.ShowtimesDropped)
	fmt.Printf("  Unparsable         : \033[1;31m%d\033[0m\n", s.ShowtimesUnparsable)
	fmt.Println()

	fmt.Printf("\033[1;33m  Output\033[0m\n")
	fmt.Printf("  %s\n", thin)
	fmt.Printf("  OMDb resolved      : \033[1m%d\033[0m (failed: %d)\n", s.OmdbResolved, s.OmdbFailures)
	fmt.Printf("  Movie fragments    : \033[1m%d\033[0m\n", s.FragmentsWritten)
	fmt.Printf("  Showtime pages     : \033[1m%d\033[0m\n", s.PagesWritten)
	fmt.Println()

	fmt.Printf("\033[1;33m  Cinemas by Region\033[0m\n")
	fmt.Printf("  %s\n", thin)
	if len(s.CinemasByRegion) == 0 {
		fmt.Printf("  No region data\n")
	} else {
		type regionCount struct {
			region string
			count  int
		}
		var regions []regionCount
		for region, cnt := range s.CinemasByRegion {
			regions = append(regions, regionCount{region, cnt})
		}
		sort.Slice(regions, func(i, j int) bool {
			if regions[i].count != regions[j].count {
				return regions[i].count > regions[j].count
			}
			return regions[i].region < regions[j].region
		})
		for _, rc := range regions {
			bar := strings.Repeat("█", rc.count)
			fmt.Printf("  %-30s %s (%d)\n", truncate(rc.region, 28), bar, rc.count)
		}
	}

	fmt.Printf("\n\033[1;35m%s\033[0m\n\n", sep)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
