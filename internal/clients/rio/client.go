// Package rio provides a client for the RIO registry LOD API
package rio

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/avdwal/rioview/internal/common"
	"github.com/avdwal/rioview/internal/interfaces"
	"github.com/avdwal/rioview/internal/models"
)

const (
	DefaultBaseURL   = "https://lod.onderwijsregistratie.nl/api/rio/v2"
	DefaultTimeout   = 10 * time.Second
	DefaultRateLimit = 10 // requests per second
)

// HAL collection keys used by the registry, per resource. Casing is
// inconsistent upstream; these are the keys the API actually returns.
const (
	keyRecognitions = "Erkenningen"
	keyLocations    = "onderwijslocatiegebruiken"
	keyLicenses     = "Onderwijslicenties"
	keyOrgUnits     = "organisatorischeEenheden"
	keyOfferings    = "AangebodenOpleidingen"
	keyCohorts      = "AangebodenOpleidingCohorten"
)

// Client implements the RegistryClient interface against the RIO LOD API
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *common.Logger
	limiter    *rate.Limiter
}

// ClientOption configures the client
type ClientOption func(*Client)

// WithBaseURL sets the base URL
func WithBaseURL(baseURL string) ClientOption {
	return func(c *Client) {
		c.baseURL = strings.TrimSuffix(baseURL, "/")
	}
}

// WithLogger sets the logger
func WithLogger(logger *common.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// WithRateLimit sets the rate limit
func WithRateLimit(requestsPerSecond int) ClientOption {
	return func(c *Client) {
		c.limiter = rate.NewLimiter(rate.Limit(requestsPerSecond), requestsPerSecond)
	}
}

// WithTimeout sets the HTTP timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new RIO registry client.
// No API key is required; the LOD endpoint is public.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
		limiter: rate.NewLimiter(rate.Limit(DefaultRateLimit), DefaultRateLimit),
		logger:  common.NewSilentLogger(),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// UpstreamError represents a non-2xx response from the registry
type UpstreamError struct {
	StatusCode int
	Message    string
	Endpoint   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("RIO API error: %s (status: %d, endpoint: %s)", e.Message, e.StatusCode, e.Endpoint)
}

// queryValues translates QueryOptions into registry query parameters.
func queryValues(opts []interfaces.QueryOption) url.Values {
	var p interfaces.QueryParams
	for _, opt := range opts {
		opt(&p)
	}

	v := url.Values{}
	if p.ValidOn != "" {
		v.Set("datumGeldigOp", p.ValidOn)
	}
	if p.PageSize > 0 {
		v.Set("page", strconv.Itoa(p.Page))
		v.Set("pageSize", strconv.Itoa(p.PageSize))
	}
	return v
}

// get performs a rate-limited GET request and returns the raw body.
// Non-2xx responses become an UpstreamError; no retries are attempted.
func (c *Client) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	reqURL := c.baseURL + path
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	c.logger.Debug().Str("url", path).Str("query", params.Encode()).Msg("RIO API request")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	elapsed := time.Since(start)
	if err != nil {
		c.logger.Error().Err(err).Str("url", path).Dur("elapsed", elapsed).Msg("RIO API request failed")
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Warn().Str("url", path).Int("status", resp.StatusCode).Dur("elapsed", elapsed).Msg("RIO API non-OK response")
		return nil, &UpstreamError{
			StatusCode: resp.StatusCode,
			Message:    truncate(strings.TrimSpace(string(body)), 200),
			Endpoint:   path,
		}
	}

	c.logger.Debug().Str("url", path).Int("status", resp.StatusCode).Dur("elapsed", elapsed).Msg("RIO API call")

	return body, nil
}

// getCollection fetches a collection resource and unwraps its envelope.
func (c *Client) getCollection(ctx context.Context, path string, params url.Values, key string) ([]models.Document, error) {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	items, _, err := decodeCollection(body, key)
	return items, err
}

// getDocument fetches a single-object resource.
func (c *Client) getDocument(ctx context.Context, path string, params url.Values) (models.Document, error) {
	body, err := c.get(ctx, path, params)
	if err != nil {
		return nil, err
	}
	var doc models.Document
	if err := json.Unmarshal(body, &doc); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}
	return doc, nil
}

// SearchRecognitions retrieves recognized organizations in a place.
func (c *Client) SearchRecognitions(ctx context.Context, place string, opts ...interfaces.QueryOption) ([]models.Document, error) {
	params := queryValues(opts)
	params.Set("plaatsnaam", place)
	return c.getCollection(ctx, "/erkenningen", params, keyRecognitions)
}

// GetRecognition retrieves a single recognition by id.
func (c *Client) GetRecognition(ctx context.Context, recognitionID string) (models.Document, error) {
	return c.getDocument(ctx, "/erkenningen/"+url.PathEscape(recognitionID), nil)
}

// GetRecognitionLocations retrieves location usages for a recognition.
func (c *Client) GetRecognitionLocations(ctx context.Context, recognitionID string, opts ...interfaces.QueryOption) ([]models.Document, error) {
	path := "/erkenningen/" + url.PathEscape(recognitionID) + "/onderwijslocatiegebruiken"
	return c.getCollection(ctx, path, queryValues(opts), keyLocations)
}

// GetRecognitionLicenses retrieves education licenses for a recognition.
func (c *Client) GetRecognitionLicenses(ctx context.Context, recognitionID string, opts ...interfaces.QueryOption) ([]models.Document, error) {
	path := "/erkenningen/" + url.PathEscape(recognitionID) + "/onderwijslicenties"
	return c.getCollection(ctx, path, queryValues(opts), keyLicenses)
}

// GetRecognitionOrgUnits retrieves organizational units for a recognition.
func (c *Client) GetRecognitionOrgUnits(ctx context.Context, recognitionID string, opts ...interfaces.QueryOption) ([]models.Document, error) {
	path := "/erkenningen/" + url.PathEscape(recognitionID) + "/organisatorische-eenheden"
	return c.getCollection(ctx, path, queryValues(opts), keyOrgUnits)
}

// GetOfferings retrieves one page of offerings for an organizational unit.
// The returned page carries the raw envelope's top-level field count, which
// the collector inspects for its last-page check.
func (c *Client) GetOfferings(ctx context.Context, unitCode string, opts ...interfaces.QueryOption) (*models.OfferingsPage, error) {
	params := queryValues(opts)
	params.Set("organisatorischeEenheidcode", unitCode)

	body, err := c.get(ctx, "/aangeboden-opleidingen", params)
	if err != nil {
		return nil, err
	}

	items, size, err := decodeCollection(body, keyOfferings)
	if err != nil {
		return nil, err
	}
	return &models.OfferingsPage{Items: items, EnvelopeSize: size}, nil
}

// GetOfferingProgram retrieves the program linked to an offering.
func (c *Client) GetOfferingProgram(ctx context.Context, offeringID string, opts ...interfaces.QueryOption) (models.Document, error) {
	path := "/aangeboden-opleidingen/" + url.PathEscape(offeringID) + "/opleiding"
	return c.getDocument(ctx, path, queryValues(opts))
}

// GetOfferingCohorts retrieves cohorts for an offering.
func (c *Client) GetOfferingCohorts(ctx context.Context, offeringID string) ([]models.Document, error) {
	path := "/aangeboden-opleidingen/" + url.PathEscape(offeringID) + "/aangeboden-opleiding-cohorten"
	return c.getCollection(ctx, path, nil, keyCohorts)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}

// Ensure Client implements RegistryClient
var _ interfaces.RegistryClient = (*Client)(nil)
