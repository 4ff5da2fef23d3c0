package server

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/graphscribe/graphscribe/pkg/cache"
	"github.com/graphscribe/graphscribe/pkg/store"
)

const doorGraph = `{
  "name": "BP_Door",
  "nodes": [
    {
      "id": "e1", "nodeType": "CustomEvent", "eventName": "OnOpen",
      "pins": [{"name": "then", "type": "exec", "direction": "Output",
                "connections": [{"targetNodeId": "s1", "targetPinName": "execute"}]}]
    },
    {
      "id": "s1", "nodeType": "VariableSet", "variableName": "IsOpen",
      "pins": [{"name": "execute", "type": "exec", "direction": "Input"}]
    }
  ]
}`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	logger := log.New(io.Discard)
	srv := New(logger, store.NewMemoryStore(), cache.NewNullCache())
	ts := httptest.NewServer(srv.Router())
	t.Cleanup(ts.Close)
	return ts
}

func TestHealthz(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/healthz")
	if err != nil {
		t.Fatalf("GET /healthz: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}

func TestDescribeEndpoint(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/describe", "application/json", strings.NewReader(doorGraph))
	if err != nil {
		t.Fatalf("POST /describe: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/plain") {
		t.Errorf("Content-Type = %q", ct)
	}

	body, _ := io.ReadAll(resp.Body)
	for _, want := range []string{"# BP_Door (2 nodes)", "## on OnOpen:", "  SET IsOpen"} {
		if !strings.Contains(string(body), want) {
			t.Errorf("missing %q in response:\n%s", want, body)
		}
	}
}

func TestDescribeEndpointCaches(t *testing.T) {
	logger := log.New(io.Discard)
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	srv := New(logger, store.NewMemoryStore(), fileCache)
	ts := httptest.NewServer(srv.Router())
	defer ts.Close()

	first := postBody(t, ts.URL+"/api/v1/describe", doorGraph)
	second := postBody(t, ts.URL+"/api/v1/describe", doorGraph)
	if first != second {
		t.Errorf("cached response differs:\n%s\nvs:\n%s", first, second)
	}
}

func TestDescribeEndpointRejectsMalformedJSON(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Post(ts.URL+"/api/v1/describe", "application/json", strings.NewReader(`{"nodes": [`))
	if err != nil {
		t.Fatalf("POST /describe: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "INVALID_GRAPH" {
		t.Errorf("error code = %q, want INVALID_GRAPH", body.Error.Code)
	}
}

func TestSummaryEndpoint(t *testing.T) {
	ts := newTestServer(t)

	body := postBody(t, ts.URL+"/api/v1/summary", doorGraph)
	for _, want := range []string{"# BP_Door (2 nodes)", "Variables: IsOpen", "Events: OnOpen"} {
		if !strings.Contains(body, want) {
			t.Errorf("missing %q in summary:\n%s", want, body)
		}
	}
}

func TestGraphStoreLifecycle(t *testing.T) {
	ts := newTestServer(t)

	// Store a snapshot.
	resp, err := http.Post(ts.URL+"/api/v1/graphs", "application/json", strings.NewReader(doorGraph))
	if err != nil {
		t.Fatalf("POST /graphs: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("status = %d, want 201", resp.StatusCode)
	}

	var created map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}
	id := created["id"]
	if id == "" {
		t.Fatal("empty snapshot id")
	}

	// Fetch it back.
	getResp, err := http.Get(ts.URL + "/api/v1/graphs/" + id)
	if err != nil {
		t.Fatalf("GET /graphs/{id}: %v", err)
	}
	defer getResp.Body.Close()
	if getResp.StatusCode != http.StatusOK {
		t.Errorf("GET status = %d, want 200", getResp.StatusCode)
	}

	// Render it by id.
	descResp, err := http.Get(ts.URL + "/api/v1/graphs/" + id + "/describe")
	if err != nil {
		t.Fatalf("GET /graphs/{id}/describe: %v", err)
	}
	defer descResp.Body.Close()
	text, _ := io.ReadAll(descResp.Body)
	if !strings.Contains(string(text), "## on OnOpen:") {
		t.Errorf("stored render missing transcript:\n%s", text)
	}

	// List includes it.
	listResp, err := http.Get(ts.URL + "/api/v1/graphs")
	if err != nil {
		t.Fatalf("GET /graphs: %v", err)
	}
	defer listResp.Body.Close()
	var items []map[string]any
	if err := json.NewDecoder(listResp.Body).Decode(&items); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	if len(items) != 1 || items[0]["id"] != id {
		t.Errorf("list = %+v", items)
	}
}

func TestGetGraphNotFound(t *testing.T) {
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/v1/graphs/does-not-exist")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", resp.StatusCode)
	}

	var body errorBody
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if body.Error.Code != "GRAPH_NOT_FOUND" {
		t.Errorf("error code = %q, want GRAPH_NOT_FOUND", body.Error.Code)
	}
}

func postBody(t *testing.T, url, payload string) string {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(payload))
	if err != nil {
		t.Fatalf("POST %s: %v", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("POST %s status = %d", url, resp.StatusCode)
	}
	body, _ := io.ReadAll(resp.Body)
	return string(body)
}
