// Package clients provides HTTP clients for communicating with external microservices.
package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/illmade-knight/service-info/pkg/services"
	"github.com/rs/zerolog"
)

// StatusError is returned when the API answers with an unexpected status code.
type StatusError struct {
	Code int
	URL  string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("service-info api returned unexpected status code %d for %s", e.Code, e.URL)
}

// ServiceInfoClient reads services and their related entities from the
// service-info REST API. It implements services.Reader.
type ServiceInfoClient struct {
	baseURL    string
	token      string
	httpClient *http.Client
	logger     zerolog.Logger
}

// Option configures a ServiceInfoClient.
type Option func(*ServiceInfoClient)

// WithToken sends "Authorization: Token <token>" with every request.
func WithToken(token string) Option {
	return func(c *ServiceInfoClient) { c.token = token }
}

// WithHTTPClient replaces the default client (10s timeout).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *ServiceInfoClient) { c.httpClient = hc }
}

// NewServiceInfoClient creates a new client for the service-info API.
func NewServiceInfoClient(baseURL string, logger zerolog.Logger, opts ...Option) *ServiceInfoClient {
	c := &ServiceInfoClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		logger: logger.With().Str("client", "service-info").Logger(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchServices lists services, filtered by id when filter.ID is set. The
// API may answer with a paginated {"results": [...]} body or a bare list.
func (c *ServiceInfoClient) FetchServices(ctx context.Context, filter services.Filter) ([]services.Service, error) {
	endpoint := c.baseURL + "/api/services/"
	if filter.ID != "" {
		endpoint += "?" + url.Values{"id": {filter.ID}}.Encode()
	}

	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}

	var docs []serviceDoc
	if trimmed := bytes.TrimSpace(body); len(trimmed) > 0 && trimmed[0] == '[' {
		err = json.Unmarshal(trimmed, &docs)
	} else {
		var page struct {
			Results []serviceDoc `json:"results"`
		}
		err = json.Unmarshal(body, &page)
		docs = page.Results
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode services response: %w", err)
	}

	out := make([]services.Service, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toService())
	}
	c.logger.Debug().Str("service_id", filter.ID).Int("count", len(out)).Msg("Fetched services")
	return out, nil
}

// GetProvider fetches a provider by id or API URL.
func (c *ServiceInfoClient) GetProvider(ctx context.Context, ref string) (services.Provider, error) {
	var d providerDoc
	if err := c.getRelation(ctx, "providers", ref, &d); err != nil {
		return services.Provider{}, err
	}
	return d.toProvider(), nil
}

// GetProviderType fetches a provider type by id or API URL.
func (c *ServiceInfoClient) GetProviderType(ctx context.Context, ref string) (services.ProviderType, error) {
	var d typeDoc
	if err := c.getRelation(ctx, "providertypes", ref, &d); err != nil {
		return services.ProviderType{}, err
	}
	return services.ProviderType{ID: string(d.ID), Number: d.Number, Name: d.names()}, nil
}

// GetServiceArea fetches an area of service by id or API URL.
func (c *ServiceInfoClient) GetServiceArea(ctx context.Context, ref string) (services.ServiceArea, error) {
	var d areaDoc
	if err := c.getRelation(ctx, "serviceareas", ref, &d); err != nil {
		return services.ServiceArea{}, err
	}
	return services.ServiceArea{ID: string(d.ID), Name: d.names(), ParentRef: d.Parent}, nil
}

// GetServiceType fetches a service type by id or API URL.
func (c *ServiceInfoClient) GetServiceType(ctx context.Context, ref string) (services.ServiceType, error) {
	var d typeDoc
	if err := c.getRelation(ctx, "servicetypes", ref, &d); err != nil {
		return services.ServiceType{}, err
	}
	return services.ServiceType{ID: string(d.ID), Number: d.Number, Name: d.names(), IconURL: d.Icon}, nil
}

// relationURL turns a reference into a URL: absolute URLs are used as they
// are, paths are joined to the base URL, bare ids go to /api/<collection>/<id>/.
func (c *ServiceInfoClient) relationURL(collection, ref string) string {
	switch {
	case strings.HasPrefix(ref, "http://"), strings.HasPrefix(ref, "https://"):
		return ref
	case strings.HasPrefix(ref, "/"):
		return c.baseURL + ref
	default:
		return fmt.Sprintf("%s/api/%s/%s/", c.baseURL, collection, url.PathEscape(ref))
	}
}

func (c *ServiceInfoClient) getRelation(ctx context.Context, collection, ref string, into interface{}) error {
	body, err := c.get(ctx, c.relationURL(collection, ref))
	if err != nil {
		var se *StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return fmt.Errorf("%s %s: %w", collection, ref, services.ErrRelationNotFound)
		}
		return err
	}
	if err := json.Unmarshal(body, into); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", collection, err)
	}
	return nil
}

func (c *ServiceInfoClient) get(ctx context.Context, endpoint string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Code: resp.StatusCode, URL: endpoint}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}
