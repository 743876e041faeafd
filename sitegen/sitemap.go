package sitegen

import (
	"encoding/xml"
	"fmt"
	"path"

	"github.com/spf13/afero"
)

// staticRoutes are the hand-written site pages that always exist,
// independent of what gets scraped.
var staticRoutes = []string{"/", "/about.html", "/privacy.html"}

type sitemapURL struct {
	Loc string `xml:"loc"`
}

type urlSet struct {
	XMLName xml.Name     `xml:"urlset"`
	Xmlns   string       `xml:"xmlns,attr"`
	URLs    []sitemapURL `xml:"url"`
}

// writeSitemap writes sitemap.xml at the output root: the static routes
// plus one entry per generated showtime page, all under the base URL.
func (g *Generator) writeSitemap(pages []ShowtimePage) error {
	set := urlSet{Xmlns: "http://www.sitemaps.org/schemas/sitemap/0.9"}
	for _, route := range staticRoutes {
		set.URLs = append(set.URLs, sitemapURL{Loc: g.baseURL + route})
	}
	for _, p := range pages {
		set.URLs = append(set.URLs, sitemapURL{Loc: g.baseURL + "/program/" + p.Path + "/"})
	}

	body, err := xml.MarshalIndent(set, "", "  ")
	if err != nil {
		return fmt.Errorf("sitegen: marshal sitemap: %w", err)
	}

	target := path.Join(g.outDir, "sitemap.xml")
	content := append([]byte(xml.Header), body...)
	if err := afero.WriteFile(g.fs, target, append(content, '\n'), 0644); err != nil {
		return fmt.Errorf("sitegen: write %q: %w", target, err)
	}
	return nil
}
