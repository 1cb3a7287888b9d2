// Package elastic writes document collections into an Elasticsearch
// instance over its REST API. Each index's mapping lives as an embedded
// JSON file under mappings/.
//
// Writes are keyed upserts: a document is PUT at its identifier, so
// re-running the pipeline replaces rather than duplicates.
package elastic

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rorads/itunes-xml-insights/data"
	"github.com/rorads/itunes-xml-insights/request"
	"github.com/rorads/itunes-xml-insights/retry"
)

//go:embed mappings/*.json
var mappings embed.FS

// Indices lists every index this pipeline manages, in write order.
var Indices = []string{"tracks", "artists", "albums", "genres"}

type Client struct {
	baseURL    string
	httpClient *http.Client
}

func New(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// Connect pings the instance at baseURL, retrying a bounded number of
// times with a fixed sleep. After exhaustion the whole run is expected
// to abort: there is no partial-ingestion salvage.
func Connect(ctx context.Context, baseURL string, attempts int, interval time.Duration) (*Client, error) {
	c := New(baseURL)
	if err := retry.Do(ctx, attempts, interval, func() error {
		return c.Ping(ctx)
	}); err != nil {
		return nil, fmt.Errorf("error connecting to elasticsearch at '%s': %w", baseURL, err)
	}
	return c, nil
}

func (c *Client) Ping(ctx context.Context) error {
	return request.DoJSON(ctx, c.httpClient, http.MethodGet, c.baseURL+"/", nil, nil, nil)
}

// EnsureIndex deletes the named index if it exists, then recreates it
// from its embedded mapping, leaving it empty.
func (c *Client) EnsureIndex(ctx context.Context, name string) error {
	exists, err := c.indexExists(ctx, name)
	if err != nil {
		return fmt.Errorf("error checking index '%s': %w", name, err)
	}
	if exists {
		if err := request.DoJSON(ctx, c.httpClient, http.MethodDelete, c.indexURL(name), nil, nil, nil); err != nil {
			return fmt.Errorf("error deleting index '%s': %w", name, err)
		}
	}

	bs, err := mappings.ReadFile("mappings/" + name + ".json")
	if err != nil {
		return fmt.Errorf("no mapping for index '%s': %w", name, err)
	}
	var mapping map[string]any
	if err := json.Unmarshal(bs, &mapping); err != nil {
		return fmt.Errorf("error parsing mapping for index '%s': %w", name, err)
	}

	if err := request.DoJSON(ctx, c.httpClient, http.MethodPut, c.indexURL(name), nil, mapping, nil); err != nil {
		return fmt.Errorf("error creating index '%s': %w", name, err)
	}
	return nil
}

// IndexDocs upserts each document into the named index, keyed by its
// identifier, then refreshes the index so the documents are visible to
// reads. Documents with an empty identifier are skipped, silently. The
// number actually written is returned.
func (c *Client) IndexDocs(ctx context.Context, name string, docs []data.Doc) (int, error) {
	written := 0
	for _, doc := range docs {
		id := doc.ID()
		if id == "" {
			continue
		}
		docURL := c.indexURL(name) + "/_doc/" + url.PathEscape(id)
		if err := request.DoJSON(ctx, c.httpClient, http.MethodPut, docURL, nil, doc, nil); err != nil {
			return written, fmt.Errorf("error indexing document '%s' into '%s': %w", id, name, err)
		}
		written++
	}

	if err := c.Refresh(ctx, name); err != nil {
		return written, err
	}
	return written, nil
}

func (c *Client) Refresh(ctx context.Context, name string) error {
	if err := request.DoJSON(ctx, c.httpClient, http.MethodPost, c.indexURL(name)+"/_refresh", nil, nil, nil); err != nil {
		return fmt.Errorf("error refreshing index '%s': %w", name, err)
	}
	return nil
}

func (c *Client) Count(ctx context.Context, name string) (int64, error) {
	var result struct {
		Count int64 `json:"count"`
	}
	if err := request.DoJSON(ctx, c.httpClient, http.MethodGet, c.indexURL(name)+"/_count", nil, nil, &result); err != nil {
		return 0, fmt.Errorf("error counting index '%s': %w", name, err)
	}
	return result.Count, nil
}

func (c *Client) indexExists(ctx context.Context, name string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, c.indexURL(name), nil)
	if err != nil {
		return false, fmt.Errorf("request error: %w", err)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return false, fmt.Errorf("error fetching '%s': %w", c.indexURL(name), err)
	}
	resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, &request.HTTPError{StatusCode: resp.StatusCode}
	}
}

func (c *Client) indexURL(name string) string {
	return c.baseURL + "/" + name
}
