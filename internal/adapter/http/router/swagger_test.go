package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSwaggerOpenAPIDocumentIsServed(t *testing.T) {
	mux := New(nil, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/swagger/openapi.json", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected application/json, got %q", ct)
	}

	var doc map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &doc); err != nil {
		t.Fatalf("openapi document is not valid JSON: %v", err)
	}

	paths, ok := doc["paths"].(map[string]any)
	if !ok {
		t.Fatal("expected paths object in openapi document")
	}
	for _, path := range []string{"/accounts", "/accounts/{id}", "/accounts/{id}/status", "/accounts/total-paid", "/accounts/import"} {
		if _, ok := paths[path]; !ok {
			t.Fatalf("expected %q in openapi paths", path)
		}
	}
}

func TestSwaggerUIPageIsServed(t *testing.T) {
	mux := New(nil, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/swagger/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, rr.Code)
	}
	if !strings.Contains(rr.Body.String(), "swagger-ui") {
		t.Fatal("expected swagger ui page body")
	}
}

func TestSwaggerRootRedirects(t *testing.T) {
	mux := New(nil, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/swagger", nil))

	if rr.Code != http.StatusMovedPermanently {
		t.Fatalf("expected status %d, got %d", http.StatusMovedPermanently, rr.Code)
	}
}
