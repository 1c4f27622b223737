// Package testutil provides testing utilities for the pollution proxy.
package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
)

// MockUpstream is a configurable fake of the pollution API covering the
// login, refresh, and pollution listing endpoints. It issues rotating
// token pairs and tracks per-endpoint request counts.
type MockUpstream struct {
	server *httptest.Server

	mu           sync.Mutex
	tokenSeq     int
	accessToken  string
	refreshToken string
	validAccess  map[string]bool
	loginFails   bool
	refreshFails bool

	pollutionStatus int
	pollutionBody   string

	loginCount   int
	refreshCount int
	fetchCount   int
}

// NewMockUpstream creates a mock upstream server with an empty pollution
// page as the default listing response.
func NewMockUpstream() *MockUpstream {
	m := &MockUpstream{
		validAccess:     make(map[string]bool),
		pollutionStatus: http.StatusOK,
		pollutionBody:   `{"meta":{"page":1,"totalPages":1},"results":[]}`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login", m.handleLogin)
	mux.HandleFunc("/auth/refresh", m.handleRefresh)
	mux.HandleFunc("/pollution", m.handlePollution)
	m.server = httptest.NewServer(mux)

	return m
}

// URL returns the mock server URL.
func (m *MockUpstream) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockUpstream) Close() {
	m.server.Close()
}

// SetPollutionResponse configures the listing endpoint response.
func (m *MockUpstream) SetPollutionResponse(status int, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pollutionStatus = status
	m.pollutionBody = body
}

// FailLogin makes the login endpoint return 500.
func (m *MockUpstream) FailLogin(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.loginFails = fail
}

// FailRefresh makes the refresh endpoint return 500.
func (m *MockUpstream) FailRefresh(fail bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.refreshFails = fail
}

// ExpireAccessToken invalidates the current access token so the next
// authenticated fetch is rejected with 401.
func (m *MockUpstream) ExpireAccessToken() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validAccess[m.accessToken] = false
}

// ExpireAllTokens invalidates the access token and forgets the refresh
// token, so both the next fetch and the following refresh fail.
func (m *MockUpstream) ExpireAllTokens() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.validAccess[m.accessToken] = false
	m.refreshToken = ""
}

// LoginCount returns the number of login exchanges.
func (m *MockUpstream) LoginCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loginCount
}

// RefreshCount returns the number of refresh exchanges.
func (m *MockUpstream) RefreshCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.refreshCount
}

// FetchCount returns the number of pollution listing requests, including
// rejected ones.
func (m *MockUpstream) FetchCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fetchCount
}

// issueTokens mints a new rotating credential pair. Callers must hold mu.
func (m *MockUpstream) issueTokens() (string, string) {
	m.tokenSeq++
	m.accessToken = fmt.Sprintf("access-%d", m.tokenSeq)
	m.refreshToken = fmt.Sprintf("refresh-%d", m.tokenSeq)
	m.validAccess[m.accessToken] = true
	return m.accessToken, m.refreshToken
}

func (m *MockUpstream) handleLogin(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.loginCount++
	if m.loginFails {
		http.Error(w, `{"error":"login unavailable"}`, http.StatusInternalServerError)
		return
	}

	access, refresh := m.issueTokens()
	writeTokenPair(w, access, refresh)
}

func (m *MockUpstream) handleRefresh(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.refreshCount++
	if m.refreshFails {
		http.Error(w, `{"error":"refresh unavailable"}`, http.StatusInternalServerError)
		return
	}

	var body struct {
		RefreshToken string `json:"refresh_token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.RefreshToken == "" || body.RefreshToken != m.refreshToken {
		http.Error(w, `{"error":"invalid refresh token"}`, http.StatusUnauthorized)
		return
	}

	access, refresh := m.issueTokens()
	writeTokenPair(w, access, refresh)
}

func (m *MockUpstream) handlePollution(w http.ResponseWriter, r *http.Request) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.fetchCount++

	token := strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	if token == "" || !m.validAccess[token] {
		http.Error(w, `{"error":"unauthorized"}`, http.StatusUnauthorized)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(m.pollutionStatus)
	fmt.Fprint(w, m.pollutionBody)
}

func writeTokenPair(w http.ResponseWriter, access, refresh string) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"token":        access,
		"refreshToken": refresh,
	})
}

// MockDescriptions is a fake of the description lookup service. Names
// without a configured extract return 404, like the real summary API.
type MockDescriptions struct {
	server *httptest.Server

	mu       sync.Mutex
	extracts map[string]string
	failing  map[string]bool
	requests int
}

// NewMockDescriptions creates a mock description service.
func NewMockDescriptions() *MockDescriptions {
	m := &MockDescriptions{
		extracts: make(map[string]string),
		failing:  make(map[string]bool),
	}

	m.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name, err := url.PathUnescape(strings.TrimPrefix(r.URL.EscapedPath(), "/"))
		if err != nil {
			http.Error(w, "bad path", http.StatusBadRequest)
			return
		}

		m.mu.Lock()
		m.requests++
		extract, known := m.extracts[name]
		failing := m.failing[name]
		m.mu.Unlock()

		if failing {
			http.Error(w, `{"error":"boom"}`, http.StatusInternalServerError)
			return
		}
		if !known {
			http.Error(w, `{"title":"Not found"}`, http.StatusNotFound)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"extract": extract})
	}))

	return m
}

// URL returns the mock server URL.
func (m *MockDescriptions) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockDescriptions) Close() {
	m.server.Close()
}

// SetExtract configures the extract returned for a city name.
func (m *MockDescriptions) SetExtract(name, extract string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.extracts[name] = extract
}

// FailFor makes lookups for a city name return 500.
func (m *MockDescriptions) FailFor(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failing[name] = true
}

// RequestCount returns the number of lookups received.
func (m *MockDescriptions) RequestCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests
}
