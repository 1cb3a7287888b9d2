package kibana

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type savedObject struct {
	typ, id string
}

// fakeKibana records saved-object creations and deletions and answers
// /api/status.
type fakeKibana struct {
	mu      sync.Mutex
	created []savedObject
	deleted []savedObject

	sawXSRF bool
}

func (f *fakeKibana) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/status", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"status": map[string]any{"overall": map[string]any{"level": "available"}}})
	})
	mux.HandleFunc("/api/saved_objects/", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if r.Header.Get("kbn-xsrf") != "" {
			f.sawXSRF = true
		}

		rest := strings.TrimPrefix(r.URL.Path, "/api/saved_objects/")
		typ, id, ok := strings.Cut(rest, "/")
		if !ok {
			w.WriteHeader(http.StatusBadRequest)
			return
		}

		switch r.Method {
		case http.MethodDelete:
			f.deleted = append(f.deleted, savedObject{typ, id})
			// Nothing to delete on a fresh instance.
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]any{"statusCode": 404})
		case http.MethodPost:
			f.created = append(f.created, savedObject{typ, id})
			json.NewEncoder(w).Encode(map[string]any{"id": id})
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	})
	return mux
}

func testClient(baseURL string) *Client {
	c := New(baseURL, 3, 0)
	c.startupDelay = 0
	c.settleDelay = 0
	return c
}

func TestSetupCreatesAllSavedObjects(t *testing.T) {
	fake := &fakeKibana{}
	srv := httptest.NewServer(fake.handler())
	defer srv.Close()

	c := testClient(srv.URL)
	require.NoError(t, c.Setup(context.Background()))

	assert.Equal(t, []savedObject{
		{"index-pattern", "itunes"},
		{"visualization", "top-artists"},
		{"visualization", "top-genres"},
		{"visualization", "music-by-year"},
		{"visualization", "bit-rate-distribution"},
		{"dashboard", "itunes-analysis"},
	}, fake.created)

	// The 404s on delete (nothing provisioned yet) are tolerated.
	assert.Len(t, fake.deleted, 6)
	assert.True(t, fake.sawXSRF)
}

func TestSetupFailsWhenUnreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := testClient(srv.URL)
	assert.Error(t, c.Setup(context.Background()))
}

func TestVisualizationPayloadReferencesIndexPattern(t *testing.T) {
	for _, vis := range visualizations() {
		payload := visualizationPayload(vis.title, vis.state)
		refs := payload["references"].([]any)
		require.Len(t, refs, 1)
		ref := refs[0].(map[string]any)
		assert.Equal(t, indexPatternID, ref["id"])
	}
}

func TestDashboardPayloadPanels(t *testing.T) {
	payload := dashboardPayload()
	attrs := payload["attributes"].(map[string]any)

	var panels []map[string]any
	require.NoError(t, json.Unmarshal([]byte(attrs["panelsJSON"].(string)), &panels))
	assert.Len(t, panels, 4)

	// One reference per panel plus the index pattern.
	refs := payload["references"].([]any)
	assert.Len(t, refs, 5)
}
