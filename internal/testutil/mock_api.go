// Package testutil provides testing utilities for the analytics pipeline.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"time"
)

// MockResponse defines the behavior for a mock API endpoint response.
type MockResponse struct {
	StatusCode int
	Body       string
	Headers    map[string]string
	Delay      time.Duration
}

// MockAPI is a configurable mock source API server for testing.
type MockAPI struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]func(w http.ResponseWriter, r *http.Request)

	// Tracking
	RequestCount int
	pathCounts   map[string]int
	LastQuery    map[string][]string
}

// NewMockAPI creates a new mock API server.
func NewMockAPI() *MockAPI {
	mock := &MockAPI{
		handlers:   make(map[string]func(w http.ResponseWriter, r *http.Request)),
		pathCounts: make(map[string]int),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.RequestCount++
		mock.pathCounts[r.URL.Path]++
		mock.LastQuery = r.URL.Query()
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}

		// Default: empty collection
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`[]`))
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.server.Close()
}

// Reset clears all tracking counters.
func (m *MockAPI) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RequestCount = 0
	m.pathCounts = make(map[string]int)
	m.LastQuery = nil
}

// GetRequestCount returns the number of requests made to the server.
func (m *MockAPI) GetRequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.RequestCount
}

// GetPathCount returns the number of requests made to one path.
func (m *MockAPI) GetPathCount(path string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.pathCounts[path]
}

// SetHandler sets a custom handler for a specific path.
func (m *MockAPI) SetHandler(path string, handler func(w http.ResponseWriter, r *http.Request)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetResponse configures a fixed response for a path.
func (m *MockAPI) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}

		for key, value := range resp.Headers {
			w.Header().Set(key, value)
		}
		if resp.Headers["Content-Type"] == "" {
			w.Header().Set("Content-Type", "application/json; charset=utf-8")
		}

		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// SetPaginated serves records as a paginated collection honoring the
// _page/_limit query parameters the way JSONPlaceholder does.
func (m *MockAPI) SetPaginated(path string, records []json.RawMessage) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		page, _ := strconv.Atoi(r.URL.Query().Get("_page"))
		limit, _ := strconv.Atoi(r.URL.Query().Get("_limit"))
		if page < 1 {
			page = 1
		}
		if limit < 1 {
			limit = len(records)
		}

		start := (page - 1) * limit
		end := start + limit
		if start > len(records) {
			start = len(records)
		}
		if end > len(records) {
			end = len(records)
		}

		slice := records[start:end]
		if slice == nil {
			slice = []json.RawMessage{}
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(slice)
	})
}

// FailFirst makes the first n requests to path fail with the given status,
// then delegates to the fallback response.
func (m *MockAPI) FailFirst(path string, n int, status int, then MockResponse) {
	var mu sync.Mutex
	failures := 0

	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		shouldFail := failures < n
		if shouldFail {
			failures++
		}
		mu.Unlock()

		if shouldFail {
			w.WriteHeader(status)
			w.Write([]byte(`{"error": "injected failure"}`))
			return
		}

		for key, value := range then.Headers {
			w.Header().Set(key, value)
		}
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.WriteHeader(then.StatusCode)
		w.Write([]byte(then.Body))
	})
}

// UserRecord builds a raw user record for test fixtures. Zero id or empty
// name omits the field, producing an invalid record.
func UserRecord(id int64, name, username, email string) json.RawMessage {
	rec := map[string]any{}
	if id != 0 {
		rec["id"] = id
	}
	if name != "" {
		rec["name"] = name
	}
	if username != "" {
		rec["username"] = username
	}
	if email != "" {
		rec["email"] = email
	}
	data, _ := json.Marshal(rec)
	return data
}

// PostRecord builds a raw post record for test fixtures. Zero ids and empty
// strings omit the field, producing an invalid record.
func PostRecord(id, userID int64, title, body string) json.RawMessage {
	rec := map[string]any{}
	if id != 0 {
		rec["id"] = id
	}
	if userID != 0 {
		rec["userId"] = userID
	}
	if title != "" {
		rec["title"] = title
	}
	if body != "" {
		rec["body"] = body
	}
	data, _ := json.Marshal(rec)
	return data
}
