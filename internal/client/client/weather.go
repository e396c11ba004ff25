package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/weatherface/internal/client/models"
)

// DefaultWeatherAPIURL is the OpenWeatherMap 2.5 API root.
const DefaultWeatherAPIURL = "https://api.openweathermap.org/data/2.5"

// maxWeatherBody caps how much of a response body is read.
const maxWeatherBody = 1 << 20

// WeatherClient fetches current weather for a city name.
type WeatherClient interface {
	Fetch(ctx context.Context, city string) (*models.WeatherResult, error)
}

// HTTPWeatherClient implements WeatherClient over net/http.
type HTTPWeatherClient struct {
	baseURL    string
	apiKey     string
	units      string
	timeout    time.Duration
	httpClient *http.Client
}

// Option customizes an HTTPWeatherClient.
type Option func(*HTTPWeatherClient)

// WithHTTPClient replaces http.DefaultClient, e.g. with a test transport.
func WithHTTPClient(c *http.Client) Option {
	return func(w *HTTPWeatherClient) {
		if c != nil {
			w.httpClient = c
		}
	}
}

// WithUnits overrides the "units" query value (metric by default).
func WithUnits(units string) Option {
	return func(w *HTTPWeatherClient) {
		if units != "" {
			w.units = units
		}
	}
}

// WithTimeout bounds each request. Zero means no timeout. It applies to the
// HTTP client regardless of where WithHTTPClient appears in the options.
func WithTimeout(d time.Duration) Option {
	return func(w *HTTPWeatherClient) {
		w.timeout = d
	}
}

// NewHTTPWeatherClient returns a client for the API rooted at baseURL.
// An empty baseURL selects DefaultWeatherAPIURL.
func NewHTTPWeatherClient(baseURL, apiKey string, opts ...Option) *HTTPWeatherClient {
	if baseURL == "" {
		baseURL = DefaultWeatherAPIURL
	}
	w := &HTTPWeatherClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		units:      "metric",
		httpClient: http.DefaultClient,
	}
	for _, o := range opts {
		o(w)
	}
	if w.timeout > 0 {
		c := *w.httpClient
		c.Timeout = w.timeout
		w.httpClient = &c
	}
	return w
}

// URLForCity builds the request URL for city.
func (w *HTTPWeatherClient) URLForCity(city string) string {
	q := url.Values{}
	q.Set("q", city)
	q.Set("units", w.units)
	q.Set("appid", w.apiKey)
	return w.baseURL + "/weather?" + q.Encode()
}

// Fetch issues a single GET for city and decodes the body.
func (w *HTTPWeatherClient) Fetch(ctx context.Context, city string) (*models.WeatherResult, error) {
	if w.apiKey == "" {
		return nil, ErrAPIKeyMissing
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, w.URLForCity(city), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnavailable, redactKey(err.Error(), w.apiKey))
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxWeatherBody))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := apiMessage(body)
		if resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", ErrLocationNotFound, msg)
		}
		return nil, fmt.Errorf("%w: %s: %s", ErrExternalAPI, resp.Status, msg)
	}

	result, err := models.ParseWeatherResult(body)
	if err != nil {
		return nil, fmt.Errorf("%w: decode: %v", ErrExternalAPI, err)
	}
	return result, nil
}

// apiMessage extracts the "message" field OpenWeatherMap puts in error bodies.
func apiMessage(body []byte) string {
	var e struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &e); err == nil && e.Message != "" {
		return e.Message
	}
	return strings.TrimSpace(string(body))
}

// redactKey keeps the API key out of error strings; url.Error embeds the full URL.
func redactKey(s, key string) string {
	if key == "" {
		return s
	}
	return strings.ReplaceAll(s, key, "REDACTED")
}
