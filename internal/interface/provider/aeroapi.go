package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"tripwatch-service/internal/domain/entity"
	"tripwatch-service/internal/domain/repository"
	"tripwatch-service/pkg/logger"
)

const clientTimeout = 10 * time.Second

// AeroAPIClient implements FlightProvider against the FlightAware AeroAPI
type AeroAPIClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     logger.Logger
}

// NewAeroAPIClient creates a new AeroAPI flight provider
func NewAeroAPIClient(baseURL, apiKey string, logger logger.Logger) repository.FlightProvider {
	return &AeroAPIClient{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: clientTimeout,
		},
		logger: logger,
	}
}

// aeroFlight is the subset of the AeroAPI flight schema the poller reads
type aeroFlight struct {
	Ident        string     `json:"ident"`
	Status       string     `json:"status"`
	ScheduledOut *time.Time `json:"scheduled_out"`
	EstimatedOut *time.Time `json:"estimated_out"`
	Origin       *struct {
		Code string `json:"code"`
	} `json:"origin"`
	Destination *struct {
		Code string `json:"code"`
	} `json:"destination"`
}

type flightsResponse struct {
	Flights []aeroFlight `json:"flights"`
}

// FetchStatus fetches the current status of the flight identified by
// designator whose scheduled departure falls inside the window. Returns
// ErrFlightNotFound when the provider has no matching flight.
func (c *AeroAPIClient) FetchStatus(ctx context.Context, designator string, window repository.TimeRange) (*entity.FlightRecord, error) {
	params := url.Values{
		"start":     {window.Start.UTC().Format(time.RFC3339)},
		"end":       {window.End.UTC().Format(time.RFC3339)},
		"max_pages": {"1"},
	}

	var resp flightsResponse
	if err := c.doRequest(ctx, "/flights/"+url.PathEscape(designator), params, &resp); err != nil {
		return nil, err
	}

	flight := bestMatch(resp.Flights, window)
	if flight == nil {
		return nil, repository.ErrFlightNotFound
	}

	record := &entity.FlightRecord{
		Ident:  flight.Ident,
		Status: flight.Status,
	}
	if flight.ScheduledOut != nil {
		record.ScheduledOut = *flight.ScheduledOut
	}
	if flight.EstimatedOut != nil {
		record.EstimatedOut = *flight.EstimatedOut
	}
	if flight.Origin != nil {
		record.Origin = flight.Origin.Code
	}
	if flight.Destination != nil {
		record.Destination = flight.Destination.Code
	}
	return record, nil
}

// bestMatch picks the flight whose scheduled departure lies inside the
// window. The API can return adjacent-day legs of the same designator.
func bestMatch(flights []aeroFlight, window repository.TimeRange) *aeroFlight {
	for i := range flights {
		f := &flights[i]
		if f.ScheduledOut != nil && window.Contains(*f.ScheduledOut) {
			return f
		}
	}
	return nil
}

// doRequest performs an authenticated GET request and decodes the JSON response
func (c *AeroAPIClient) doRequest(ctx context.Context, path string, params url.Values, dest any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("aeroapi: creating request: %w", err)
	}
	req.Header.Set("x-apikey", c.apiKey)
	req.Header.Set("Accept", "application/json; charset=UTF-8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("aeroapi: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("aeroapi: HTTP %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return fmt.Errorf("aeroapi: decoding response: %w", err)
	}
	return nil
}
