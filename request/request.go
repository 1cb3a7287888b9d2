// Package request holds the HTTP plumbing shared by the Elasticsearch
// and Kibana clients.
package request

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// HTTPError is returned for non-2xx responses. Callers that tolerate
// specific statuses (a 404 on delete, say) can unwrap it with errors.As.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("http status code %d", e.StatusCode)
	}
	return fmt.Sprintf("http status code %d: %s", e.StatusCode, e.Body)
}

// Error checks the given http response for an error code, and, if one is
// present, reads the body into a friendly error.
func Error(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	bs, err := io.ReadAll(io.LimitReader(resp.Body, 4096))
	if err != nil {
		return &HTTPError{StatusCode: resp.StatusCode}
	}
	return &HTTPError{StatusCode: resp.StatusCode, Body: string(bs)}
}

// DoJSON sends one JSON request and, when out is non-nil, decodes the
// JSON response into it. A nil body sends no payload. Extra headers are
// applied to the request before sending.
func DoJSON(ctx context.Context, client *http.Client, method, url string, headers http.Header, body, out any) error {
	var rdr io.Reader
	if body != nil {
		bs, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("error encoding request for '%s': %w", url, err)
		}
		rdr = bytes.NewReader(bs)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, rdr)
	if err != nil {
		return fmt.Errorf("request error: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("error fetching '%s': %w", url, err)
	}
	defer resp.Body.Close()

	if err := Error(resp); err != nil {
		return fmt.Errorf("unexpected status from '%s': %w", url, err)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("error decoding response from '%s': %w", url, err)
		}
	}

	return nil
}
