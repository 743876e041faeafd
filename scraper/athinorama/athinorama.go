// Package athinorama scrapes the Athinorama cinema guide: the weekly
// guide page for movie links, and each movie page for titles, the IMDb
// link and the per-cinema screening program.
package athinorama

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"athens-cinema-scraper/models"
	"athens-cinema-scraper/utils"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// CinemaProgram is one cinema block on a movie page: the raw venue pair,
// its screening rooms and the per-day showtime strings.
type CinemaProgram struct {
	Record    models.CinemaRecord
	Rooms     []models.Room
	Timetable [][]string
}

// MoviePage is everything scraped from a single movie page.
type MoviePage struct {
	GreekTitle    string
	OriginalTitle string
	ImdbLink      string
	Cinemas       []CinemaProgram
}

// Scraper fetches and parses Athinorama pages over a shared HTTP client.
type Scraper struct {
	client *http.Client
	logger *utils.Logger
}

// New creates a Scraper.
func New(client *http.Client, logger *utils.Logger) *Scraper {
	return &Scraper{client: client, logger: logger}
}

func (s *Scraper) get(pageURL string) (*goquery.Document, error) {
	req, err := http.NewRequest(http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("athinorama: build request for %q: %w", pageURL, err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "el-GR,el;q=0.9,en;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("athinorama: fetch %q: %w", pageURL, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("athinorama: fetch %q: unexpected status %d", pageURL, resp.StatusCode)
	}
	return goquery.NewDocumentFromReader(resp.Body)
}

// FetchMovieLinks downloads the guide page and returns the absolute,
// deduplicated movie page URLs in document order.
func (s *Scraper) FetchMovieLinks(guideURL string) ([]string, error) {
	doc, err := s.get(guideURL)
	if err != nil {
		return nil, err
	}
	links, err := extractMovieLinks(doc, guideURL)
	if err != nil {
		return nil, err
	}
	s.logger.Info("[scraper] guide page yielded %d movie links", len(links))
	return links, nil
}

// ExtractMovieLinks parses a guide page from r and returns the absolute,
// deduplicated movie page URLs, resolved against baseURL.
func ExtractMovieLinks(r io.Reader, baseURL string) ([]string, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("athinorama: parse guide page: %w", err)
	}
	return extractMovieLinks(doc, baseURL)
}

func extractMovieLinks(doc *goquery.Document, baseURL string) ([]string, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("athinorama: parse base url %q: %w", baseURL, err)
	}

	seen := utils.NewStringSet()
	var links []string
	doc.Find("div.item.horizontal.card-item").Each(func(_ int, item *goquery.Selection) {
		href, ok := item.Find("h2.item-title a").Attr("href")
		if !ok {
			return
		}
		ref, err := url.Parse(strings.TrimSpace(href))
		if err != nil {
			return
		}
		abs := base.ResolveReference(ref).String()
		if seen.Add(abs) {
			links = append(links, abs)
		}
	})
	return links, nil
}

// FetchMovie downloads and parses one movie page.
func (s *Scraper) FetchMovie(movieURL string) (*MoviePage, error) {
	doc, err := s.get(movieURL)
	if err != nil {
		return nil, err
	}
	return parseMoviePage(doc)
}

// ScrapeMovie parses a movie page from r.
func ScrapeMovie(r io.Reader) (*MoviePage, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("athinorama: parse movie page: %w", err)
	}
	return parseMoviePage(doc)
}

func parseMoviePage(doc *goquery.Document) (*MoviePage, error) {
	page := &MoviePage{
		GreekTitle:    strings.TrimSpace(doc.Find("h1").First().Text()),
		OriginalTitle: strings.TrimSpace(doc.Find("ul.review-details span.original-title").First().Text()),
	}
	if page.GreekTitle == "" {
		return nil, fmt.Errorf("athinorama: movie page has no title")
	}
	if href, ok := doc.Find("a.imdb").First().Attr("href"); ok {
		page.ImdbLink = strings.TrimSpace(href)
	}

	doc.Find("div.item.card-item").Each(func(_ int, block *goquery.Selection) {
		name := strings.TrimSpace(block.Find("h2.item-title").First().Text())
		if name == "" {
			return
		}
		prog := CinemaProgram{
			Record: models.CinemaRecord{
				Name:    name,
				Address: strings.TrimSpace(block.Find("div.details").First().Text()),
			},
		}
		block.Find("div.grid.schedule-grid span").Each(func(_ int, room *goquery.Selection) {
			if r := strings.TrimSpace(room.Text()); r != "" {
				prog.Rooms = append(prog.Rooms, models.Room{Name: r})
			}
		})
		block.Find("div.panel-inner .daytimeschedule").Each(func(_ int, day *goquery.Selection) {
			if entries := splitShowtimes(day.Text()); len(entries) > 0 {
				prog.Timetable = append(prog.Timetable, entries)
			}
		})
		page.Cinemas = append(page.Cinemas, prog)
	})
	return page, nil
}

// splitShowtimes breaks one day's schedule text into individual showtime
// strings. Entries are "/"-separated on the site; whitespace runs inside
// an entry are collapsed so the downstream parser sees clean text.
func splitShowtimes(text string) []string {
	var out []string
	for _, part := range strings.Split(text, "/") {
		if entry := strings.Join(strings.Fields(part), " "); entry != "" {
			out = append(out, entry)
		}
	}
	return out
}
