// Package clients holds the thin HTTP clients for the external APIs the
// pipeline talks to: Google geocoding and places, Nominatim and OMDb.
// Every client carries an explicit timeout; a hung upstream degrades the
// single lookup, never the whole run.
package clients

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// NewHTTPClient builds the http.Client shared by the API clients.
func NewHTTPClient(timeoutMs int) *http.Client {
	if timeoutMs <= 0 {
		timeoutMs = 20000
	}
	return &http.Client{Timeout: time.Duration(timeoutMs) * time.Millisecond}
}

// getJSON performs a GET with the standard User-Agent and decodes the JSON
// response body into out. Non-2xx statuses are errors.
func getJSON(client *http.Client, base string, params url.Values, out any) error {
	req, err := http.NewRequest(http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, base)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response from %s: %w", base, err)
	}
	return nil
}
