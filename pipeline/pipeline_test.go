package pipeline_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/rorads/itunes-xml-insights/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeES implements the handful of Elasticsearch routes the pipeline
// hits, storing documents by index and id.
type fakeES struct {
	mu      sync.Mutex
	indices map[string]map[string]json.RawMessage
}

func newFakeES() *httptest.Server {
	f := &fakeES{indices: map[string]map[string]json.RawMessage{}}
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()

		if r.URL.Path == "/" {
			json.NewEncoder(w).Encode(map[string]any{})
			return
		}
		// Test-only escape hatch: dump everything.
		if r.URL.Path == "/_dump" {
			json.NewEncoder(w).Encode(f.indices)
			return
		}
		parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
		index := parts[0]
		switch {
		case len(parts) == 1 && r.Method == http.MethodHead:
			if _, ok := f.indices[index]; !ok {
				w.WriteHeader(http.StatusNotFound)
			}
		case len(parts) == 1 && r.Method == http.MethodDelete:
			delete(f.indices, index)
			json.NewEncoder(w).Encode(map[string]any{"acknowledged": true})
		case len(parts) == 1 && r.Method == http.MethodPut:
			f.indices[index] = map[string]json.RawMessage{}
			json.NewEncoder(w).Encode(map[string]any{"acknowledged": true})
		case len(parts) == 3 && parts[1] == "_doc" && r.Method == http.MethodPut:
			var body json.RawMessage
			json.NewDecoder(r.Body).Decode(&body)
			f.indices[index][parts[2]] = body
			json.NewEncoder(w).Encode(map[string]any{"result": "created"})
		case len(parts) == 2 && parts[1] == "_refresh" && r.Method == http.MethodPost:
			json.NewEncoder(w).Encode(map[string]any{})
		case len(parts) == 2 && parts[1] == "_count" && r.Method == http.MethodGet:
			json.NewEncoder(w).Encode(map[string]any{"count": len(f.indices[index])})
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
}

func testPipeline(esURL string) *pipeline.Pipeline {
	return &pipeline.Pipeline{
		LibraryPath:           "../library/testdata/library.xml",
		ElasticsearchURL:      esURL,
		ElasticsearchAttempts: 3,
		SkipDashboards:        true,
	}
}

func TestRun(t *testing.T) {
	srv := newFakeES()
	defer srv.Close()

	p := testPipeline(srv.URL)
	require.NoError(t, p.Run(context.Background()))

	es := esContents(t, srv.URL)
	// The fixture has three tracks, one of which lacks artist and album.
	assert.Len(t, es["tracks"], 3)
	assert.Len(t, es["artists"], 2) // Miles Davis, Unknown
	assert.Len(t, es["albums"], 2)  // Kind of Blue, Unknown - Unknown
	assert.Len(t, es["genres"], 2)  // Jazz, Unknown
}

func TestRunIsIdempotent(t *testing.T) {
	srv := newFakeES()
	defer srv.Close()

	p := testPipeline(srv.URL)
	require.NoError(t, p.Run(context.Background()))
	require.NoError(t, p.Run(context.Background()))

	es := esContents(t, srv.URL)
	assert.Len(t, es["tracks"], 3)
	assert.Len(t, es["artists"], 2)
}

func TestRunSelectedCollections(t *testing.T) {
	srv := newFakeES()
	defer srv.Close()

	p := testPipeline(srv.URL)
	p.Collections = []string{"tracks"}
	require.NoError(t, p.Run(context.Background()))

	es := esContents(t, srv.URL)
	assert.Len(t, es["tracks"], 3)
	assert.NotContains(t, es, "artists")
}

func TestRunBadLibraryTouchesNothing(t *testing.T) {
	srv := newFakeES()
	defer srv.Close()

	p := testPipeline(srv.URL)
	p.LibraryPath = "testdata/does-not-exist.xml"
	require.Error(t, p.Run(context.Background()))

	assert.Empty(t, esContents(t, srv.URL))
}

// A dead Kibana doesn't fail the run; the indices are already written.
func TestRunSurvivesKibanaFailure(t *testing.T) {
	srv := newFakeES()
	defer srv.Close()
	kib := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer kib.Close()

	p := testPipeline(srv.URL)
	p.SkipDashboards = false
	p.KibanaURL = kib.URL
	p.KibanaAttempts = 1
	require.NoError(t, p.Run(context.Background()))

	assert.Len(t, esContents(t, srv.URL)["tracks"], 3)
}

// esContents reads every index's contents back out of the fake.
func esContents(t *testing.T, baseURL string) map[string]map[string]json.RawMessage {
	t.Helper()
	resp, err := http.Get(baseURL + "/_dump")
	require.NoError(t, err)
	defer resp.Body.Close()
	var out map[string]map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}
