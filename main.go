package main

import (
	"os"
	"time"

	"github.com/spf13/afero"

	"athens-cinema-scraper/clients"
	"athens-cinema-scraper/config"
	"athens-cinema-scraper/models"
	"athens-cinema-scraper/scraper/athinorama"
	"athens-cinema-scraper/services"
	"athens-cinema-scraper/sitegen"
	"athens-cinema-scraper/storage"
	"athens-cinema-scraper/utils"
)

func main() {
	logger := utils.NewLogger()
	cfg := config.Load()

	logger.Info("=== Athens Cinema Scraper starting ===")
	logger.Info("Config — guide: %s | cache: %s | output: %s | timeout: %dms",
		cfg.GuideURL, cfg.CacheBackend, cfg.OutputDir, cfg.HTTPTimeoutMs)

	googleKey, err := config.ReadKeyFile(cfg.GoogleAPIKeyFile)
	if err != nil {
		logger.Error("Failed to read Google API key from %s: %v", cfg.GoogleAPIKeyFile, err)
		os.Exit(1)
	}
	omdbKey, err := config.ReadKeyFile(cfg.OMDbAPIKeyFile)
	if err != nil {
		logger.Error("Failed to read OMDb API key from %s: %v", cfg.OMDbAPIKeyFile, err)
		os.Exit(1)
	}

	var store storage.CinemaStore
	switch cfg.CacheBackend {
	case "postgres":
		pg, err := storage.NewPostgresStore(cfg.DSN())
		if err != nil {
			logger.Error("Failed to connect to PostgreSQL: %v", err)
			logger.Error("Make sure Docker is running: docker compose up -d")
			os.Exit(1)
		}
		store = pg
	default:
		store = storage.NewFileStore(cfg.CacheFilePath, logger)
	}
	defer store.Close()

	cache, err := store.Load()
	if err != nil {
		logger.Error("Failed to load cinema cache: %v", err)
		os.Exit(1)
	}
	logger.Info("Cinema cache loaded: %d entries", len(cache))

	httpClient := clients.NewHTTPClient(cfg.HTTPTimeoutMs)
	google := clients.NewGoogleClient(googleKey, httpClient)
	nominatim := clients.NewNominatimClient(httpClient, utils.NewRateLimiter(cfg.RateLimitMs))
	omdb := clients.NewOMDbClient(omdbKey, httpClient)

	summary := services.NewSummary()
	resolver := services.NewResolver(google, nominatim, google, cache, logger, summary)

	scraper := athinorama.New(httpClient, logger)
	links, err := scraper.FetchMovieLinks(cfg.GuideURL)
	if err != nil {
		logger.Error("Guide scrape failed: %v", err)
		os.Exit(1)
	}
	if len(links) == 0 {
		logger.Error("No movie links found on the guide page. Exiting.")
		os.Exit(1)
	}

	now := time.Now()

	var (
		moviesFeed  [][]models.Movie
		cinemasFeed [][]models.MovieCinema
		listings    []sitegen.MovieListing
		pages       []sitegen.ShowtimePage
	)
	pagePaths := utils.NewStringSet()

	for _, link := range links {
		page, err := scraper.FetchMovie(link)
		if err != nil {
			logger.Warn("[main] skipping movie %s: %v", link, err)
			summary.MoviesSkipped++
			continue
		}
		summary.MoviesScraped++

		movie := models.Movie{
			GreekTitle:     page.GreekTitle,
			OriginalTitle:  page.OriginalTitle,
			AthinoramaLink: link,
			ImdbLink:       page.ImdbLink,
			Slug:           services.Slugify(page.GreekTitle),
		}
		enrichFromOMDb(&movie, omdb, logger, summary)

		var movieCinemas []models.MovieCinema
		for _, prog := range page.Cinemas {
			summary.CinemasSeen++
			info := resolver.Resolve(prog.Record.Name, prog.Record.Address)
			region := services.NormalizeRegion(info)
			summary.CountRegion(region)

			mc := models.MovieCinema{
				Cinema:        prog.Record.Name,
				Address:       prog.Record.Address,
				Lat:           info.Lat,
				Lon:           info.Lon,
				Region:        region,
				Subregion:     info.Suburb,
				Neighbourhood: info.Neighbourhood,
				Website:       info.Website,
				Rooms:         prog.Rooms,
				Timetable:     prog.Timetable,
			}
			movieCinemas = append(movieCinemas, mc)

			for _, day := range prog.Timetable {
				for _, raw := range day {
					ps, ok := services.ParseShowtime(raw, now)
					if !ok {
						summary.ShowtimesUnparsable++
						logger.Warn("[main] unparsable showtime %q at %s", raw, prog.Record.Name)
						continue
					}
					summary.ShowtimesParsed++
					if !services.IsUpcoming(ps, now) {
						summary.ShowtimesDropped++
						continue
					}
					summary.ShowtimesKept++

					path := services.ShowtimePath(region, prog.Record.Name, movie.Slug, ps)
					if !pagePaths.Add(path) {
						continue
					}
					pages = append(pages, sitegen.ShowtimePage{
						Path:   path,
						Movie:  movie,
						Cinema: mc,
						Date:   ps.Date,
						Time:   ps.Time,
					})
				}
			}
		}

		moviesFeed = append(moviesFeed, []models.Movie{movie})
		cinemasFeed = append(cinemasFeed, movieCinemas)
		listings = append(listings, sitegen.MovieListing{Movie: movie, Cinemas: movieCinemas})
	}

	if err := storage.WriteFeeds(cfg.OutputDir, moviesFeed, cinemasFeed); err != nil {
		logger.Error("Feed write failed: %v", err)
	} else {
		logger.Info("Feeds written to %s", cfg.OutputDir)
	}

	generator := sitegen.New(afero.NewOsFs(), cfg.OutputDir, cfg.SiteBaseURL, logger)
	fragments, written, err := generator.Build(listings, pages)
	if err != nil {
		logger.Error("Site generation failed: %v", err)
	}
	summary.FragmentsWritten = fragments
	summary.PagesWritten = written

	if err := store.Save(cache); err != nil {
		logger.Error("Cinema cache save failed: %v", err)
	}

	summary.Print()
}

// enrichFromOMDb fills poster and plot from OMDb and re-derives the slug
// from the English title. A missing IMDb id or a failed lookup leaves the
// movie with its Greek-title slug.
func enrichFromOMDb(movie *models.Movie, omdb *clients.OMDbClient, logger *utils.Logger, summary *services.Summary) {
	id := clients.ExtractImdbID(movie.ImdbLink)
	if id == "" {
		logger.Info("[main] no IMDb id for %q, keeping Greek slug", movie.GreekTitle)
		return
	}

	rec, err := omdb.Lookup(id)
	if err != nil {
		summary.OmdbFailures++
		logger.Warn("[main] OMDb lookup failed for %q (%s): %v", movie.GreekTitle, id, err)
		return
	}

	summary.OmdbResolved++
	movie.Poster = rec.Poster
	movie.Plot = rec.Plot
	if rec.Title != "" {
		movie.Slug = services.Slugify(rec.Title)
	}
}
