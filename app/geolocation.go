package app

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// Location is the resolved approximate location of an IP address. Fields the
// service omits stay at their zero value.
type Location struct {
	Country string  `json:"country"`
	Region  string  `json:"regionName"`
	City    string  `json:"city"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	ISP     string  `json:"isp"`
}

type geoResponse struct {
	Status string `json:"status"`
	Location
}

type GeoClient struct {
	baseURL string
}

func NewGeoClient(cfg *Config) *GeoClient {
	return &GeoClient{
		baseURL: strings.TrimSuffix(cfg.GeolocationBaseURL, "/"),
	}
}

// Lookup resolves ip against the geolocation service. The service reports
// lookup failures in-band via the status field, not the HTTP status code.
func (c *GeoClient) Lookup(ip string) (*Location, error) {
	res, err := http.DefaultClient.Get(c.baseURL + "/json/" + ip)
	if err != nil {
		return nil, fmt.Errorf("client: error making http request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: got %d", ErrUnexpectedStatusCode, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("could not read response body: %w", err)
	}

	var parsed geoResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("could not decode geolocation response: %w", err)
	}

	if parsed.Status != "success" {
		return nil, fmt.Errorf("%w: status %q", ErrLookupFailed, parsed.Status)
	}

	loc := parsed.Location

	return &loc, nil
}
