package clients

import (
	"net/http"
	"net/url"

	"athens-cinema-scraper/utils"
)

const defaultNominatimURL = "https://nominatim.openstreetmap.org/search"

// NominatimClient resolves a cleaned street name to suburb and
// neighbourhood via the OpenStreetMap Nominatim search API. Calls go
// through a rate limiter to respect the service's usage policy.
// It satisfies services.AddressDetailer.
type NominatimClient struct {
	BaseURL string

	httpClient *http.Client
	limiter    *utils.RateLimiter
}

// NewNominatimClient creates a NominatimClient with the production endpoint.
func NewNominatimClient(httpClient *http.Client, limiter *utils.RateLimiter) *NominatimClient {
	return &NominatimClient{
		BaseURL:    defaultNominatimURL,
		httpClient: httpClient,
		limiter:    limiter,
	}
}

type nominatimResult struct {
	Address struct {
		Suburb        string `json:"suburb"`
		Neighbourhood string `json:"neighbourhood"`
	} `json:"address"`
}

// Lookup searches for the street and returns the suburb and neighbourhood
// of the first hit. No hits is not an error; both values come back empty.
func (n *NominatimClient) Lookup(street string) (string, string, error) {
	if n.limiter != nil {
		n.limiter.Wait()
	}

	params := url.Values{}
	params.Set("q", street)
	params.Set("format", "json")
	params.Set("addressdetails", "1")
	params.Set("limit", "1")

	var results []nominatimResult
	if err := getJSON(n.httpClient, n.BaseURL, params, &results); err != nil {
		return "", "", err
	}
	if len(results) == 0 {
		return "", "", nil
	}
	return results[0].Address.Suburb, results[0].Address.Neighbourhood, nil
}
