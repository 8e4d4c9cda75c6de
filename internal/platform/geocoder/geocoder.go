// Package geocoder resolves postal addresses to coordinates and formatted
// address components via a MapQuest-compatible geocoding API.
package geocoder

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"campdir/internal/common"
)

type Result struct {
	Longitude float64
	Latitude  float64
	Street    string
	City      string
	State     string
	Zipcode   string
	Country   string
}

func (r *Result) FormattedAddress() string {
	parts := ""
	for _, p := range []string{r.Street, r.City, r.State, r.Zipcode, r.Country} {
		if p == "" {
			continue
		}
		if parts != "" {
			parts += ", "
		}
		parts += p
	}
	return parts
}

type Client struct {
	baseURL string
	apiKey  string
	http    *http.Client
}

func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

// mapquestResponse mirrors the subset of the provider payload we read.
type mapquestResponse struct {
	Results []struct {
		Locations []struct {
			Street     string `json:"street"`
			AdminArea5 string `json:"adminArea5"` // city
			AdminArea3 string `json:"adminArea3"` // state
			AdminArea1 string `json:"adminArea1"` // country
			PostalCode string `json:"postalCode"`
			LatLng     struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"latLng"`
		} `json:"locations"`
	} `json:"results"`
}

// Geocode resolves an address to the first matching location.
func (c *Client) Geocode(ctx context.Context, address string) (*Result, error) {
	endpoint := c.baseURL + "?key=" + url.QueryEscape(c.apiKey) + "&location=" + url.QueryEscape(address)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("geocoder: failed to create request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocoder: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocoder: provider returned status %d", resp.StatusCode)
	}

	var payload mapquestResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("geocoder: failed to decode response: %w", err)
	}

	if len(payload.Results) == 0 || len(payload.Results[0].Locations) == 0 {
		return nil, fmt.Errorf("geocoder: no results for %q: %w", address, common.ErrBadRequest)
	}

	loc := payload.Results[0].Locations[0]
	return &Result{
		Longitude: loc.LatLng.Lng,
		Latitude:  loc.LatLng.Lat,
		Street:    loc.Street,
		City:      loc.AdminArea5,
		State:     loc.AdminArea3,
		Zipcode:   loc.PostalCode,
		Country:   loc.AdminArea1,
	}, nil
}
