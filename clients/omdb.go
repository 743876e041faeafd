package clients

import (
	"fmt"
	"net/http"
	"net/url"
	"regexp"

	"athens-cinema-scraper/models"
)

const defaultOMDbURL = "https://www.omdbapi.com/"

var imdbIDRegexp = regexp.MustCompile(`tt\d+`)

// ExtractImdbID pulls the "tt1234567" identifier out of a scraped IMDb
// link. An empty return means the link carried no usable id and the movie
// is skipped for OMDb enrichment.
func ExtractImdbID(link string) string {
	return imdbIDRegexp.FindString(link)
}

// OMDbClient looks up movie metadata (English title, poster, plot) by
// IMDb id.
type OMDbClient struct {
	APIKey  string
	BaseURL string

	httpClient *http.Client
}

// NewOMDbClient creates an OMDbClient with the production endpoint.
func NewOMDbClient(apiKey string, httpClient *http.Client) *OMDbClient {
	return &OMDbClient{
		APIKey:     apiKey,
		BaseURL:    defaultOMDbURL,
		httpClient: httpClient,
	}
}

// Lookup fetches the OMDb record for an IMDb id. The API signals "not
// found" inside a 200 response (Response=="False"); that surfaces as an
// error so the caller can log and continue with the scraped titles.
func (o *OMDbClient) Lookup(imdbID string) (*models.OmdbMovie, error) {
	params := url.Values{}
	params.Set("i", imdbID)
	params.Set("apikey", o.APIKey)

	var movie models.OmdbMovie
	if err := getJSON(o.httpClient, o.BaseURL, params, &movie); err != nil {
		return nil, err
	}
	if movie.Response == "False" {
		return nil, fmt.Errorf("omdb: %s (id %s)", movie.Error, imdbID)
	}
	return &movie, nil
}
