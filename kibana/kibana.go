// Package kibana provisions a fixed set of saved objects — one index
// pattern, four visualizations, one dashboard — against the indices the
// pipeline populates. The payloads are entirely static; nothing here
// depends on the ingested data.
package kibana

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/rorads/itunes-xml-insights/request"
	"github.com/rorads/itunes-xml-insights/retry"
)

const (
	indexPatternID = "itunes"
	dashboardID    = "itunes-analysis"
)

type Client struct {
	baseURL    string
	httpClient *http.Client

	attempts int
	interval time.Duration

	// Kibana keeps initializing for a while after /api/status goes
	// green; startupDelay covers that, settleDelay gives it a beat to
	// register the index pattern before the visualizations reference
	// it. Both are fields so tests can zero them.
	startupDelay time.Duration
	settleDelay  time.Duration
}

func New(baseURL string, attempts int, interval time.Duration) *Client {
	return &Client{
		baseURL:      baseURL,
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		attempts:     attempts,
		interval:     interval,
		startupDelay: 10 * time.Second,
		settleDelay:  2 * time.Second,
	}
}

// Setup runs the full provisioning sequence: wait for Kibana, delete
// any saved objects from a previous run, then create the index pattern,
// the visualizations, and the dashboard. Individual saved-object
// failures are logged and tolerated — a half-provisioned dashboard can
// be finished by hand — but an unreachable Kibana is an error.
func (c *Client) Setup(ctx context.Context) error {
	if err := c.Wait(ctx); err != nil {
		return err
	}

	c.deleteSavedObjects(ctx)

	if err := c.createSavedObject(ctx, "index-pattern", indexPatternID, indexPatternPayload()); err != nil {
		log.Printf("error creating index pattern: %v", err)
	}

	if err := c.sleep(ctx, c.settleDelay); err != nil {
		return err
	}

	for _, vis := range visualizations() {
		if err := c.createSavedObject(ctx, "visualization", vis.id, visualizationPayload(vis.title, vis.state)); err != nil {
			log.Printf("error creating visualization '%s': %v", vis.title, err)
		}
	}

	if err := c.createSavedObject(ctx, "dashboard", dashboardID, dashboardPayload()); err != nil {
		log.Printf("error creating dashboard: %v", err)
	} else {
		log.Printf("dashboard ready at %s/app/dashboards#/view/%s", c.baseURL, dashboardID)
	}

	return nil
}

// Wait polls /api/status until Kibana answers, then gives it a moment
// to finish initializing.
func (c *Client) Wait(ctx context.Context) error {
	if err := retry.Do(ctx, c.attempts, c.interval, func() error {
		return request.DoJSON(ctx, c.httpClient, http.MethodGet, c.baseURL+"/api/status", nil, nil, nil)
	}); err != nil {
		return fmt.Errorf("error waiting for kibana at '%s': %w", c.baseURL, err)
	}
	return c.sleep(ctx, c.startupDelay)
}

// deleteSavedObjects removes everything a previous run created. A 404
// just means there was no previous run; anything else is logged and
// ignored.
func (c *Client) deleteSavedObjects(ctx context.Context) {
	objects := []struct{ typ, id string }{
		{"dashboard", dashboardID},
		{"visualization", "top-artists"},
		{"visualization", "top-genres"},
		{"visualization", "music-by-year"},
		{"visualization", "bit-rate-distribution"},
		{"index-pattern", indexPatternID},
	}
	for _, obj := range objects {
		err := request.DoJSON(ctx, c.httpClient, http.MethodDelete, c.savedObjectURL(obj.typ, obj.id), c.headers(), nil, nil)
		var httpErr *request.HTTPError
		if err != nil && !(errors.As(err, &httpErr) && httpErr.StatusCode == http.StatusNotFound) {
			log.Printf("error deleting %s '%s': %v", obj.typ, obj.id, err)
		}
	}
}

func (c *Client) createSavedObject(ctx context.Context, typ, id string, payload any) error {
	return request.DoJSON(ctx, c.httpClient, http.MethodPost, c.savedObjectURL(typ, id), c.headers(), payload, nil)
}

func (c *Client) savedObjectURL(typ, id string) string {
	return fmt.Sprintf("%s/api/saved_objects/%s/%s", c.baseURL, typ, id)
}

// headers returns the header set every saved-objects call needs; Kibana
// rejects mutations without kbn-xsrf.
func (c *Client) headers() http.Header {
	h := http.Header{}
	h.Set("kbn-xsrf", "true")
	return h
}

func (c *Client) sleep(ctx context.Context, d time.Duration) error {
	if d == 0 {
		return nil
	}
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
