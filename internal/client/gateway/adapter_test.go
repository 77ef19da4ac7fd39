package gatewayclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/mirudeesh/liqueno-backend/internal/dto"
	"github.com/mirudeesh/liqueno-backend/internal/errs"
	"github.com/mirudeesh/liqueno-backend/pkg/logger"
)

func testLog() *slog.Logger {
	return slog.New(logger.NewTestHandler(slog.LevelInfo))
}

func TestCompleteForcesNonStreaming(t *testing.T) {
	var received dto.GatewayRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Fatalf("authorization header: %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"hi"},"finish_reason":"stop"}]}`))
	}))
	defer srv.Close()

	adapter := NewAdapter(testLog(), srv.URL, "test-key")
	out, err := adapter.Complete(context.Background(), dto.GatewayRequest{
		Model:  "google/gemini-2.5-flash",
		Stream: true, // must be overridden
	})
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if received.Stream {
		t.Fatalf("deciding call must not stream")
	}
	if out.Message().Content != "hi" {
		t.Fatalf("message mismatch: %+v", out)
	}
}

func TestStreamForcesStreamingWithoutTools(t *testing.T) {
	var received dto.GatewayRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := json.NewDecoder(r.Body).Decode(&received); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "text/event-stream")
		w.Write([]byte("data: [DONE]\n\n"))
	}))
	defer srv.Close()

	adapter := NewAdapter(testLog(), srv.URL, "test-key")
	body, err := adapter.Stream(context.Background(), dto.GatewayRequest{
		Model:      "google/gemini-2.5-flash",
		Tools:      []dto.ToolDeclaration{dto.FunctionTool("x", "x", nil)},
		ToolChoice: "auto",
	})
	if err != nil {
		t.Fatalf("Stream error: %v", err)
	}
	defer body.Close()

	if !received.Stream {
		t.Fatalf("delivering call must stream")
	}
	if len(received.Tools) != 0 || received.ToolChoice != "" {
		t.Fatalf("delivering call must not advertise tools: %+v", received)
	}

	raw, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("read stream: %v", err)
	}
	if string(raw) != "data: [DONE]\n\n" {
		t.Fatalf("body mismatch: %q", raw)
	}
}

func TestStatusClassification(t *testing.T) {
	cases := []struct {
		status int
		check  func(error) bool
	}{
		{http.StatusTooManyRequests, func(err error) bool {
			var e *errs.RateLimitedError
			return errors.As(err, &e)
		}},
		{http.StatusPaymentRequired, func(err error) bool {
			var e *errs.QuotaExceededError
			return errors.As(err, &e)
		}},
		{http.StatusInternalServerError, func(err error) bool {
			var e *errs.UpstreamError
			return errors.As(err, &e) && e.Status == http.StatusInternalServerError
		}},
	}

	for _, tc := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		}))
		adapter := NewAdapter(testLog(), srv.URL, "test-key")

		_, err := adapter.Complete(context.Background(), dto.GatewayRequest{})
		if !tc.check(err) {
			t.Fatalf("status %d: unexpected error %v", tc.status, err)
		}

		_, err = adapter.Stream(context.Background(), dto.GatewayRequest{})
		if !tc.check(err) {
			t.Fatalf("status %d (stream): unexpected error %v", tc.status, err)
		}
		srv.Close()
	}
}

func TestGatewayUnreachable(t *testing.T) {
	adapter := NewAdapter(testLog(), "http://127.0.0.1:1", "test-key")

	_, err := adapter.Complete(context.Background(), dto.GatewayRequest{})
	var svcErr *errs.ExternalServiceError
	if !errors.As(err, &svcErr) || !svcErr.Transient {
		t.Fatalf("expected transient ExternalServiceError, got %v", err)
	}
}
