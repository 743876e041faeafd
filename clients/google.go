package clients

import (
	"net/http"
	"net/url"

	"athens-cinema-scraper/services"
)

const (
	defaultGeocodeURL      = "https://maps.googleapis.com/maps/api/geocode/json"
	defaultPlaceSearchURL  = "https://maps.googleapis.com/maps/api/place/textsearch/json"
	defaultPlaceDetailsURL = "https://maps.googleapis.com/maps/api/place/details/json"
)

// GoogleClient queries the Google Geocoding and Places APIs. It satisfies
// services.Geocoder and services.WebsiteFinder. The base URLs are fields
// so tests can point the client at a local server.
type GoogleClient struct {
	APIKey          string
	GeocodeURL      string
	PlaceSearchURL  string
	PlaceDetailsURL string

	httpClient *http.Client
}

// NewGoogleClient creates a GoogleClient with the production endpoints.
func NewGoogleClient(apiKey string, httpClient *http.Client) *GoogleClient {
	return &GoogleClient{
		APIKey:          apiKey,
		GeocodeURL:      defaultGeocodeURL,
		PlaceSearchURL:  defaultPlaceSearchURL,
		PlaceDetailsURL: defaultPlaceDetailsURL,
		httpClient:      httpClient,
	}
}

type geocodeResponse struct {
	Status  string `json:"status"`
	Results []struct {
		Geometry struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
		AddressComponents []struct {
			LongName string   `json:"long_name"`
			Types    []string `json:"types"`
		} `json:"address_components"`
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
}

// Geocode resolves a venue query to coordinates, a locality-level area and
// the formatted address. A nil result with nil error means the API answered
// but had no match (status ZERO_RESULTS or an empty result list).
func (g *GoogleClient) Geocode(query string) (*services.GeoResult, error) {
	params := url.Values{}
	params.Set("address", query)
	params.Set("key", g.APIKey)
	params.Set("language", "el")

	var resp geocodeResponse
	if err := getJSON(g.httpClient, g.GeocodeURL, params, &resp); err != nil {
		return nil, err
	}
	if resp.Status != "OK" || len(resp.Results) == 0 {
		return nil, nil
	}

	first := resp.Results[0]
	area := "Unknown"
	for _, comp := range first.AddressComponents {
		if isLocality(comp.Types) {
			area = comp.LongName
			break
		}
	}

	return &services.GeoResult{
		Lat:              first.Geometry.Location.Lat,
		Lon:              first.Geometry.Location.Lng,
		Area:             area,
		FormattedAddress: first.FormattedAddress,
	}, nil
}

// isLocality reports whether the component is typed exactly "locality".
// Sublocality variants must not match: components come back
// most-specific-first, and the area is the city-level entry.
func isLocality(types []string) bool {
	for _, t := range types {
		if t == "locality" {
			return true
		}
	}
	return false
}

type placeSearchResponse struct {
	Status  string `json:"status"`
	Results []struct {
		PlaceID string `json:"place_id"`
	} `json:"results"`
}

type placeDetailsResponse struct {
	Status string `json:"status"`
	Result struct {
		Website string `json:"website"`
	} `json:"result"`
}

// FindWebsite searches the places directory for the venue, filtered to
// movie theaters, and reads the first match's website field. An empty
// return with nil error means no website could be determined.
func (g *GoogleClient) FindWebsite(query string) (string, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("type", "movie_theater")
	params.Set("key", g.APIKey)

	var search placeSearchResponse
	if err := getJSON(g.httpClient, g.PlaceSearchURL, params, &search); err != nil {
		return "", err
	}
	if search.Status != "OK" || len(search.Results) == 0 {
		return "", nil
	}

	details := url.Values{}
	details.Set("place_id", search.Results[0].PlaceID)
	details.Set("fields", "website")
	details.Set("key", g.APIKey)

	var det placeDetailsResponse
	if err := getJSON(g.httpClient, g.PlaceDetailsURL, details, &det); err != nil {
		return "", err
	}
	if det.Status != "OK" {
		return "", nil
	}
	return det.Result.Website, nil
}
