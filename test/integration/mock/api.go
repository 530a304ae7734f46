package mock

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
)

// recordedRequest is one call received by the fake API.
type recordedRequest struct {
	body    map[string]any
	headers map[string]string
}

// cannedResponse is what the fake API answers for a route.
type cannedResponse struct {
	status int
	body   map[string]any
}

// ApiMock is a fake third party HTTP API. Routes are keyed by method and
// path. Responses can be set per call index or as a default for the route.
type ApiMock struct {
	mu        sync.Mutex
	server    *httptest.Server
	received  map[string][]recordedRequest
	responses map[string]map[int]cannedResponse
	defaults  map[string]cannedResponse
}

func NewApiServer() *ApiMock {
	return &ApiMock{
		received:  map[string][]recordedRequest{},
		responses: map[string]map[int]cannedResponse{},
		defaults:  map[string]cannedResponse{},
	}
}

func routeKey(method, path string) string {
	return method + " " + path
}

// Start begins serving on a local port.
func (a *ApiMock) Start() {
	a.server = httptest.NewServer(http.HandlerFunc(a.handle))
}

func (a *ApiMock) GetUrl() string {
	if a.server == nil {
		return ""
	}
	return a.server.URL
}

func (a *ApiMock) handle(w http.ResponseWriter, r *http.Request) {
	raw, _ := io.ReadAll(r.Body)
	body := map[string]any{}
	_ = json.Unmarshal(raw, &body)

	headers := make(map[string]string, len(r.Header))
	for key, values := range r.Header {
		headers[key] = values[0]
	}

	key := routeKey(r.Method, r.URL.Path)

	a.mu.Lock()
	index := len(a.received[key])
	a.received[key] = append(a.received[key], recordedRequest{body: body, headers: headers})
	resp := a.responseFor(key, index)
	a.mu.Unlock()

	payload, _ := json.Marshal(resp.body)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(resp.status)
	_, _ = w.Write(payload)
}

// responseFor must be called with a.mu held.
func (a *ApiMock) responseFor(key string, index int) cannedResponse {
	if resp, ok := a.responses[key][index]; ok {
		return resp
	}
	if resp, ok := a.defaults[key]; ok {
		return resp
	}
	return cannedResponse{status: http.StatusOK, body: map[string]any{}}
}

// SetResponse sets the answer for the index-th call of a route, or the
// default answer when index is -1.
func (a *ApiMock) SetResponse(index int, method, path string, status int, response map[string]any) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := routeKey(method, path)
	resp := cannedResponse{status: status, body: response}
	if index == -1 {
		a.defaults[key] = resp
		return
	}
	if a.responses[key] == nil {
		a.responses[key] = map[int]cannedResponse{}
	}
	a.responses[key][index] = resp
}

// GetRequestBody returns the decoded JSON body of the index-th call, or nil.
func (a *ApiMock) GetRequestBody(method, path string, index int) map[string]any {
	if req, ok := a.request(method, path, index); ok {
		return req.body
	}
	return nil
}

// GetRequestHeaders returns the headers of the index-th call, or nil.
func (a *ApiMock) GetRequestHeaders(method, path string, index int) map[string]string {
	if req, ok := a.request(method, path, index); ok {
		return req.headers
	}
	return nil
}

// RequestCount returns how many calls a route received.
func (a *ApiMock) RequestCount(method, path string) int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.received[routeKey(method, path)])
}

func (a *ApiMock) request(method, path string, index int) (recordedRequest, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	calls := a.received[routeKey(method, path)]
	if index < 0 || index >= len(calls) {
		return recordedRequest{}, false
	}
	return calls[index], true
}

// ClearResponses forgets the calls and responses of a route.
func (a *ApiMock) ClearResponses(method, path string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	key := routeKey(method, path)
	delete(a.received, key)
	delete(a.responses, key)
	delete(a.defaults, key)
}
