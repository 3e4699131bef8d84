// Package source implements the HTTP client for the station roster and
// device inventory endpoints. It is a thin adapter: wire records are
// converted at this boundary so the core only sees domain types.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"stationwatch/internal/models"
)

const defaultTimeout = 15 * time.Second

// StatusError reports a non-success HTTP status from the source API.
type StatusError struct {
	Op   string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d", e.Op, e.Code)
}

// Client talks to the station/device REST API. Safe for concurrent use.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient builds a client for the given API base URL. A zero timeout
// falls back to the package default.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: baseURL,
		httpc:   &http.Client{Timeout: timeout},
	}
}

// wire shapes; state is an integer on the wire, 1 meaning online.
type stationRecord struct {
	StationID int    `json:"station_id"`
	Name      string `json:"name"`
	State     int    `json:"state"`
}

type stationsResponse struct {
	Stations []stationRecord `json:"stations"`
}

type devicesResponse struct {
	Devices []models.Device `json:"devices"`
}

// FetchStations returns the account's roster in API order.
func (c *Client) FetchStations(ctx context.Context, apiKey string) ([]models.Station, error) {
	var resp stationsResponse
	if err := c.getJSON(ctx, "/stations", apiKey, &resp); err != nil {
		return nil, fmt.Errorf("fetch stations: %w", err)
	}

	stations := make([]models.Station, 0, len(resp.Stations))
	for _, rec := range resp.Stations {
		stations = append(stations, models.Station{
			ID:     strconv.Itoa(rec.StationID),
			Name:   rec.Name,
			Online: rec.State == 1,
		})
	}
	return stations, nil
}

// FetchDevices returns the account's device inventory in API order.
func (c *Client) FetchDevices(ctx context.Context, apiKey string) ([]models.Device, error) {
	var resp devicesResponse
	if err := c.getJSON(ctx, "/devices", apiKey, &resp); err != nil {
		return nil, fmt.Errorf("fetch devices: %w", err)
	}
	return resp.Devices, nil
}

func (c *Client) getJSON(ctx context.Context, path, apiKey string, out any) error {
	u := c.baseURL + path + "?api_key=" + url.QueryEscape(apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	res, err := c.httpc.Do(req)
	if err != nil {
		return err
	}
	defer func() { _ = res.Body.Close() }()

	if res.StatusCode != http.StatusOK {
		return &StatusError{Op: "GET " + path, Code: res.StatusCode}
	}
	return json.NewDecoder(res.Body).Decode(out)
}
