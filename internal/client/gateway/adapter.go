package gatewayclient

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/mirudeesh/liqueno-backend/internal/dto"
	"github.com/mirudeesh/liqueno-backend/internal/errs"
)

// Adapter talks the chat-completions wire format to the hosted model gateway.
type Adapter struct {
	url        string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

func NewAdapter(log *slog.Logger, url, apiKey string) *Adapter {
	return &Adapter{
		url:    url,
		apiKey: apiKey,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
		log: log,
	}
}

// Complete issues a non-streaming request and decodes the full response.
// Used for the deciding call: tool-call intent is only knowable once the
// complete response is parsed.
func (a *Adapter) Complete(ctx context.Context, req dto.GatewayRequest) (dto.GatewayCompletion, error) {
	req.Stream = false

	resp, err := a.post(ctx, req)
	if err != nil {
		return dto.GatewayCompletion{}, err
	}
	defer resp.Body.Close()

	if err := classifyStatus(resp); err != nil {
		return dto.GatewayCompletion{}, err
	}

	var out dto.GatewayCompletion
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return dto.GatewayCompletion{}, errs.NewExternalServiceError("gateway", "failed to decode gateway response", false)
	}
	return out, nil
}

// Stream issues a streaming request and hands back the raw event-stream body
// for pass-through. The caller owns closing it. A non-success status is
// classified and returned before any byte is forwarded.
func (a *Adapter) Stream(ctx context.Context, req dto.GatewayRequest) (io.ReadCloser, error) {
	req.Stream = true
	req.Tools = nil
	req.ToolChoice = ""

	resp, err := a.post(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := classifyStatus(resp); err != nil {
		resp.Body.Close()
		return nil, err
	}
	return resp.Body, nil
}

func (a *Adapter) post(ctx context.Context, req dto.GatewayRequest) (*http.Response, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, a.url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Authorization", "Bearer "+a.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(httpReq)
	if err != nil {
		a.log.Warn("gateway request failed", "error", err)
		return nil, errs.NewExternalServiceError("gateway", "gateway unreachable", true)
	}
	return resp, nil
}

func classifyStatus(resp *http.Response) error {
	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusTooManyRequests:
		return errs.NewRateLimitedError()
	case resp.StatusCode == http.StatusPaymentRequired:
		return errs.NewQuotaExceededError()
	default:
		return errs.NewUpstreamError(resp.StatusCode)
	}
}
