// Package openwebninja wraps the OpenWebNinja local-business-data API.
package openwebninja

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rotisserie/eris"
)

const defaultBaseURL = "https://api.openwebninja.com/local-business-data"

// Client performs local-business search operations.
type Client interface {
	Search(ctx context.Context, req SearchRequest) (*SearchResponse, error)
}

// SearchRequest describes a single business search.
type SearchRequest struct {
	Query    string
	Limit    int
	Language string
	Region   string
}

// SearchResponse is the API response envelope.
type SearchResponse struct {
	Data []Business `json:"data"`
}

// Business is a raw record returned by the API.
type Business struct {
	BusinessID  string   `json:"business_id"`
	Name        string   `json:"name"`
	Website     string   `json:"website"`
	PhoneNumber string   `json:"phone_number"`
	FullAddress string   `json:"full_address"`
	Latitude    float64  `json:"latitude"`
	Longitude   float64  `json:"longitude"`
	Rating      float64  `json:"rating"`
	ReviewCount int      `json:"review_count"`
	Types       []string `json:"types"`
}

// Option configures the client.
type Option func(*httpClient)

// WithBaseURL overrides the default API base URL.
func WithBaseURL(url string) Option {
	return func(c *httpClient) {
		c.baseURL = url
	}
}

// WithHTTPClient overrides the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *httpClient) {
		c.http = hc
	}
}

type httpClient struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates an OpenWebNinja API client.
func NewClient(apiKey string, opts ...Option) Client {
	c := &httpClient{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

func (c *httpClient) Search(ctx context.Context, sr SearchRequest) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("query", sr.Query)
	if sr.Limit > 0 {
		params.Set("limit", strconv.Itoa(sr.Limit))
	}
	if sr.Language != "" {
		params.Set("language", sr.Language)
	}
	if sr.Region != "" {
		params.Set("region", sr.Region)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/search?"+params.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "openwebninja: create request")
	}
	req.Header.Set("x-api-key", c.apiKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "openwebninja: send request")
	}
	defer resp.Body.Close() //nolint:errcheck

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "openwebninja: read response")
	}

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("openwebninja: unexpected status %d: %s", resp.StatusCode, string(respBody))
	}

	var result SearchResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, eris.Wrap(err, "openwebninja: unmarshal response")
	}

	return &result, nil
}
