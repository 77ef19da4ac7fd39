package tools

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mirudeesh/liqueno-backend/pkg/helpers"
)

func TestNewsToolHeadlines(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "business" {
			t.Fatalf("topic not forwarded: %s", r.URL.RawQuery)
		}
		if r.URL.Query().Get("apiKey") != "test-key" {
			t.Fatalf("api key not forwarded")
		}
		w.Write([]byte(`{"articles":[
			{"title":"A","source":{"name":"Reuters"},"url":"https://example.com/a","publishedAt":"2025-03-10T08:00:00Z"},
			{"title":"B","source":{"name":"AP"},"url":"https://example.com/b","publishedAt":"2025-03-10T07:00:00Z"}
		]}`))
	}))
	defer srv.Close()

	tool := NewNewsTool(srv.Client(), srv.URL, "test-key")
	result := tool.Invoke(helpers.TestCtx(), map[string]any{"topic": "business"})

	headlines, ok := result["headlines"].([]map[string]any)
	if !ok || len(headlines) != 2 {
		t.Fatalf("headlines mismatch: %v", result)
	}
	if headlines[0]["title"] != "A" || headlines[0]["source"] != "Reuters" {
		t.Fatalf("first headline mismatch: %v", headlines[0])
	}
}

func TestNewsToolDefaultTopic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("q") != "technology" {
			t.Fatalf("expected default topic, got %s", r.URL.RawQuery)
		}
		w.Write([]byte(`{"articles":[{"title":"T","source":{"name":"S"},"url":"u","publishedAt":"p"}]}`))
	}))
	defer srv.Close()

	tool := NewNewsTool(srv.Client(), srv.URL, "test-key")
	tool.Invoke(helpers.TestCtx(), map[string]any{})
}

func TestNewsToolCapsAtFive(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"articles":[
			{"title":"1"},{"title":"2"},{"title":"3"},{"title":"4"},{"title":"5"},{"title":"6"},{"title":"7"}
		]}`))
	}))
	defer srv.Close()

	tool := NewNewsTool(srv.Client(), srv.URL, "test-key")
	result := tool.Invoke(helpers.TestCtx(), map[string]any{})
	headlines := result["headlines"].([]map[string]any)
	if len(headlines) != 5 {
		t.Fatalf("expected at most 5 headlines, got %d", len(headlines))
	}
}

func TestNewsToolFallbackOnFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	tool := NewNewsTool(srv.Client(), srv.URL, "test-key")
	tool.clockNow = func() time.Time {
		return time.Date(2025, time.March, 10, 9, 30, 0, 0, time.UTC)
	}
	result := tool.Invoke(helpers.TestCtx(), map[string]any{"topic": "technology"})

	if _, hasError := result["error"]; hasError {
		t.Fatalf("news failures must never surface as error payloads: %v", result)
	}
	headlines, ok := result["headlines"].([]map[string]any)
	if !ok || len(headlines) != 1 {
		t.Fatalf("expected single fallback headline: %v", result)
	}
	if headlines[0]["title"] != "Unable to fetch live news. Please try again later." {
		t.Fatalf("fallback title mismatch: %v", headlines[0])
	}
	if headlines[0]["source"] != "System" {
		t.Fatalf("fallback source mismatch: %v", headlines[0])
	}
	if headlines[0]["publishedAt"] != "2025-03-10T09:30:00Z" {
		t.Fatalf("fallback timestamp mismatch: %v", headlines[0])
	}
}

func TestNewsToolFallbackOnEmptyResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"articles":[]}`))
	}))
	defer srv.Close()

	tool := NewNewsTool(srv.Client(), srv.URL, "test-key")
	result := tool.Invoke(helpers.TestCtx(), map[string]any{})
	headlines, ok := result["headlines"].([]map[string]any)
	if !ok || len(headlines) != 1 || headlines[0]["source"] != "System" {
		t.Fatalf("expected fallback headline on empty results: %v", result)
	}
}
