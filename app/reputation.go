package app

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Stats holds the per-category vendor counts from an analysis report.
type Stats map[string]int

// MaliciousPercentage is the share of vendors that flagged the target as
// malicious, in [0, 100]. A report with no counts at all yields 0.
func (s Stats) MaliciousPercentage() float64 {
	total := 0
	for _, count := range s {
		total += count
	}

	if total == 0 {
		return 0
	}

	return float64(s["malicious"]) / float64(total) * 100
}

type analysisResponse struct {
	Data struct {
		Attributes struct {
			LastAnalysisStats Stats `json:"last_analysis_stats"`
		} `json:"attributes"`
	} `json:"data"`
}

type ReputationClient struct {
	baseURL string
	apiKey  string
	headers HeaderKV
	delay   time.Duration
}

func NewReputationClient(cfg *Config) *ReputationClient {
	return &ReputationClient{
		baseURL: strings.TrimSuffix(cfg.ReputationBaseURL, "/"),
		apiKey:  cfg.APIKey,
		headers: cfg.Headers,
		delay:   cfg.AnalysisDelay(),
	}
}

// ScanIP fetches the analysis report for an IP address and reduces it to the
// malicious percentage.
func (c *ReputationClient) ScanIP(ip string) (float64, error) {
	return c.fetchStats(c.baseURL + "/ip_addresses/" + ip)
}

// ScanURL submits a URL for analysis, waits the configured delay for the
// remote engine, then fetches the report under the derived identifier. The
// delay is a heuristic: an analysis that is still pending after it simply
// reports all-zero stats.
func (c *ReputationClient) ScanURL(rawURL string) (float64, error) {
	if err := c.submitURL(rawURL); err != nil {
		return 0, err
	}

	time.Sleep(c.delay)

	return c.fetchStats(c.baseURL + "/urls/" + AnalysisID(rawURL))
}

// AnalysisID derives the result-lookup identifier for a submitted URL:
// URL-safe base64 of the raw URL bytes, without padding.
func AnalysisID(rawURL string) string {
	return base64.RawURLEncoding.EncodeToString([]byte(rawURL))
}

func (c *ReputationClient) submitURL(rawURL string) error {
	form := url.Values{}
	form.Set("url", rawURL)

	req, err := http.NewRequest(
		http.MethodPost,
		c.baseURL+"/urls",
		strings.NewReader(form.Encode()),
	)
	if err != nil {
		return fmt.Errorf("client: could not create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	c.setHeaders(req)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return fmt.Errorf("client: error making http request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf(
			"%w: got %d submitting URL",
			ErrUnexpectedStatusCode,
			res.StatusCode,
		)
	}

	return nil
}

func (c *ReputationClient) fetchStats(requestURL string) (float64, error) {
	req, err := http.NewRequest(http.MethodGet, requestURL, nil)
	if err != nil {
		return 0, fmt.Errorf("client: could not create request: %w", err)
	}
	c.setHeaders(req)

	res, err := http.DefaultClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("client: error making http request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("%w: got %d", ErrUnexpectedStatusCode, res.StatusCode)
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return 0, fmt.Errorf("could not read response body: %w", err)
	}

	var parsed analysisResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return 0, fmt.Errorf("could not decode analysis report: %w", err)
	}

	return parsed.Data.Attributes.LastAnalysisStats.MaliciousPercentage(), nil
}

func (c *ReputationClient) setHeaders(req *http.Request) {
	req.Header.Set("x-apikey", c.apiKey)

	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
}
