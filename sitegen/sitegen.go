// Package sitegen renders the static site: one HTML fragment per movie,
// one page per showtime, and a sitemap. All writes go through an afero
// filesystem so the tree can be built in memory under test.
package sitegen

import (
	"bytes"
	"fmt"
	"html/template"
	"path"
	"strings"

	"github.com/spf13/afero"

	"athens-cinema-scraper/models"
	"athens-cinema-scraper/utils"
)

// MovieListing is one movie together with every cinema screening it.
type MovieListing struct {
	Movie   models.Movie
	Cinemas []models.MovieCinema
}

// ShowtimePage is one (cinema, movie, date, time) page. Path is the
// slug path relative to the program root, e.g.
// "nea-smyrni/sine-pari/oi-klironomoi/2024-12-07/16-00".
type ShowtimePage struct {
	Path   string
	Movie  models.Movie
	Cinema models.MovieCinema
	Date   string
	Time   string
}

// Generator writes the site tree under outDir on fs.
type Generator struct {
	fs      afero.Fs
	outDir  string
	baseURL string
	logger  *utils.Logger
}

// New creates a Generator. baseURL is the public origin used in the
// sitemap, without a trailing slash.
func New(fs afero.Fs, outDir, baseURL string, logger *utils.Logger) *Generator {
	return &Generator{
		fs:      fs,
		outDir:  outDir,
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
}

// Build deletes the previous tree and renders fragments, showtime pages
// and the sitemap. It returns the number of fragments and pages written.
func (g *Generator) Build(listings []MovieListing, pages []ShowtimePage) (int, int, error) {
	if err := g.reset(); err != nil {
		return 0, 0, err
	}

	fragments := 0
	for _, l := range listings {
		if err := g.writeFragment(l); err != nil {
			return fragments, 0, err
		}
		fragments++
	}

	written := 0
	for _, p := range pages {
		if err := g.writePage(p); err != nil {
			return fragments, written, err
		}
		written++
	}

	if err := g.writeSitemap(pages); err != nil {
		return fragments, written, err
	}

	g.logger.Info("[sitegen] wrote %d fragments and %d pages under %s", fragments, written, g.outDir)
	return fragments, written, nil
}

// reset removes the generated subtrees. The feeds at the output root are
// left alone; only what this package writes gets rebuilt.
func (g *Generator) reset() error {
	for _, dir := range []string{"program", "fragments"} {
		if err := g.fs.RemoveAll(path.Join(g.outDir, dir)); err != nil {
			return fmt.Errorf("sitegen: clear %s: %w", dir, err)
		}
	}
	return nil
}

func (g *Generator) writeFragment(l MovieListing) error {
	if l.Movie.Slug == "" {
		return fmt.Errorf("sitegen: movie %q has no slug", l.Movie.GreekTitle)
	}
	target := path.Join(g.outDir, "fragments", l.Movie.Slug+".html")
	return g.render(target, fragmentTmpl, l)
}

func (g *Generator) writePage(p ShowtimePage) error {
	target := path.Join(g.outDir, "program", p.Path, "index.html")
	return g.render(target, pageTmpl, p)
}

func (g *Generator) render(target string, tmpl *template.Template, data any) error {
	if err := g.fs.MkdirAll(path.Dir(target), 0755); err != nil {
		return fmt.Errorf("sitegen: create dir for %q: %w", target, err)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("sitegen: render %q: %w", target, err)
	}
	if err := afero.WriteFile(g.fs, target, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("sitegen: write %q: %w", target, err)
	}
	return nil
}

// ScreenTime turns the filesystem-safe "HH-MM" form back into a clock
// reading for display.
func ScreenTime(t string) string {
	return strings.Replace(t, "-", ":", 1)
}

var fragmentTmpl = template.Must(template.New("fragment").Parse(`<article class="movie" id="{{.Movie.Slug}}">
  <h2>{{.Movie.GreekTitle}}</h2>
{{- if .Movie.OriginalTitle}}
  <p class="original-title">{{.Movie.OriginalTitle}}</p>
{{- end}}
{{- if .Movie.Poster}}
  <img src="{{.Movie.Poster}}" alt="{{.Movie.GreekTitle}}">
{{- end}}
{{- if .Movie.Plot}}
  <p class="plot">{{.Movie.Plot}}</p>
{{- end}}
  <ul class="cinemas">
{{- range .Cinemas}}
    <li>{{.Cinema}} <span class="region">{{.Region}}</span>{{if .Website}} <a href="{{.Website}}" rel="nofollow">ιστοσελίδα</a>{{end}}</li>
{{- end}}
  </ul>
</article>
`))

var pageTmpl = template.Must(template.New("page").Funcs(template.FuncMap{
	"screentime": ScreenTime,
}).Parse(`<!DOCTYPE html>
<html lang="el">
<head>
  <meta charset="utf-8">
  <title>{{.Movie.GreekTitle}} | {{.Cinema.Cinema}} | {{.Date}} {{screentime .Time}}</title>
</head>
<body>
  <main>
    <h1>{{.Movie.GreekTitle}}</h1>
{{- if .Movie.OriginalTitle}}
    <p class="original-title">{{.Movie.OriginalTitle}}</p>
{{- end}}
{{- if .Movie.Poster}}
    <img src="{{.Movie.Poster}}" alt="{{.Movie.GreekTitle}}">
{{- end}}
{{- if .Movie.Plot}}
    <p class="plot">{{.Movie.Plot}}</p>
{{- end}}
    <section class="screening">
      <h2>{{.Cinema.Cinema}}</h2>
      <p class="address">{{.Cinema.Address}}</p>
      <p class="region">{{.Cinema.Region}}{{if .Cinema.Subregion}}, {{.Cinema.Subregion}}{{end}}</p>
      <p class="when">{{.Date}} {{screentime .Time}}</p>
{{- if .Cinema.Website}}
      <p><a href="{{.Cinema.Website}}" rel="nofollow">Ιστοσελίδα κινηματογράφου</a></p>
{{- end}}
{{- if .Movie.ImdbLink}}
      <p><a href="{{.Movie.ImdbLink}}" rel="nofollow">IMDb</a></p>
{{- end}}
    </section>
    <p><a href="/">Αρχική</a></p>
  </main>
</body>
</html>
`))
