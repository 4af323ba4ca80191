package hcloud

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"

	"github.com/hetznercloud/hcloud-go/v2/hcloud"
	"github.com/hetznercloud/hcloud-go/v2/hcloud/schema"

	"github.com/imamik/mkserver/internal/config"
)

// testServer creates an httptest server that can be used to mock Hetzner Cloud API responses.
type testServer struct {
	server *httptest.Server
	mux    *http.ServeMux

	mu      sync.Mutex
	actions map[int64]string // action ID to status
}

// newTestServer creates a new test server for mocking the Hetzner Cloud API.
// Actions registered with setAction are served from /actions.
func newTestServer() *testServer {
	mux := http.NewServeMux()
	ts := &testServer{
		server:  httptest.NewServer(mux),
		mux:     mux,
		actions: make(map[int64]string),
	}
	mux.HandleFunc("/actions", ts.handleActions)
	mux.HandleFunc("/actions/", ts.handleActions)
	return ts
}

// close shuts down the test server.
func (ts *testServer) close() {
	ts.server.Close()
}

// client returns an hcloud.Client configured to use the test server.
func (ts *testServer) client() *hcloud.Client {
	return hcloud.NewClient(
		hcloud.WithToken("test-token"),
		hcloud.WithEndpoint(ts.server.URL),
		hcloud.WithPollOpts(hcloud.PollOpts{BackoffFunc: hcloud.ConstantBackoff(10 * time.Millisecond)}),
	)
}

// realClient returns a RealClient configured to use the test server.
func (ts *testServer) realClient() *RealClient {
	return NewRealClient("test-token",
		WithHCloudClient(ts.client()),
		WithTimeouts(&config.Timeouts{
			ServerCreate:      5 * time.Second,
			Delete:            5 * time.Second,
			Attach:            5 * time.Second,
			PollInterval:      10 * time.Millisecond,
			RetryMaxAttempts:  3,
			RetryInitialDelay: 10 * time.Millisecond,
		}),
	)
}

// handleFunc registers a handler for a specific path.
func (ts *testServer) handleFunc(pattern string, handler http.HandlerFunc) {
	ts.mux.HandleFunc(pattern, handler)
}

// setAction sets the status reported for an action.
func (ts *testServer) setAction(id int64, status string) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	ts.actions[id] = status
}

func (ts *testServer) handleActions(w http.ResponseWriter, r *http.Request) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	var ids []int64
	for _, raw := range r.URL.Query()["id"] {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			ids = append(ids, id)
		}
	}
	if len(r.URL.Path) > len("/actions/") {
		if id, err := strconv.ParseInt(r.URL.Path[len("/actions/"):], 10, 64); err == nil {
			jsonResponse(w, http.StatusOK, schema.ActionGetResponse{Action: ts.action(id)})
			return
		}
	}

	resp := schema.ActionListResponse{Actions: []schema.Action{}}
	for _, id := range ids {
		resp.Actions = append(resp.Actions, ts.action(id))
	}
	jsonResponse(w, http.StatusOK, resp)
}

func (ts *testServer) action(id int64) schema.Action {
	status, ok := ts.actions[id]
	if !ok {
		status = "success"
	}
	a := schema.Action{ID: id, Status: status, Command: "create_server", Progress: 100}
	if status == "running" {
		a.Progress = 50
	}
	if status == "error" {
		a.Error = &schema.ActionError{Code: "action_failed", Message: "server create failed"}
	}
	return a
}

// jsonResponse writes a JSON response with the given status code and body.
func jsonResponse(w http.ResponseWriter, statusCode int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}

// errorResponse writes an hcloud API error.
func errorResponse(w http.ResponseWriter, statusCode int, code hcloud.ErrorCode) {
	jsonResponse(w, statusCode, schema.ErrorResponse{
		Error: schema.Error{Code: string(code), Message: string(code)},
	})
}

// serverBody is a minimal server JSON object.
func serverBody(id int64, name, status string) map[string]interface{} {
	return map[string]interface{}{
		"id":     id,
		"name":   name,
		"status": status,
	}
}

// actionBody is a minimal action JSON object.
func actionBody(id int64, status string) map[string]interface{} {
	return map[string]interface{}{
		"id":       id,
		"status":   status,
		"command":  "create_server",
		"progress": 0,
		"started":  time.Now().Format(time.RFC3339),
	}
}
