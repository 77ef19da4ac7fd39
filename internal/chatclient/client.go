package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/mirudeesh/liqueno-backend/internal/dto"
	"github.com/mirudeesh/liqueno-backend/internal/sse"
)

// Conversation is the client-held state for one chat session: an ordered
// message list plus a pending flag. The assistant message being streamed is
// the only mutable entry; it is finalized when the stream ends and removed
// when the send fails with nothing accumulated.
type Conversation struct {
	messages []dto.ChatMessage
	pending  bool
}

func NewConversation() *Conversation {
	return &Conversation{}
}

// Messages returns a snapshot of the transcript.
func (c *Conversation) Messages() []dto.ChatMessage {
	out := make([]dto.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

func (c *Conversation) Pending() bool { return c.pending }

func (c *Conversation) Clear() {
	c.messages = nil
}

// ErrSendInFlight is returned when a send is attempted while a previous one
// is still pending. A conversation allows at most one in-flight send.
var ErrSendInFlight = errors.New("a send is already in flight for this conversation")

// StatusError carries a classified pre-stream failure from the server.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string { return e.Message }

type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func New(baseURL, token string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		httpClient: &http.Client{
			Timeout: 5 * time.Minute,
		},
	}
}

// Send appends the user message, posts the transcript, and consumes the
// reply stream, invoking onDelta once per delta in arrival order. On return
// the conversation never holds an empty assistant turn rendered as finished.
func (c *Client) Send(ctx context.Context, conv *Conversation, content any, onDelta func(delta string)) error {
	if conv.pending {
		return ErrSendInFlight
	}
	conv.pending = true
	defer func() { conv.pending = false }()

	conv.messages = append(conv.messages, dto.ChatMessage{Role: dto.RoleUser, Content: content})

	resp, err := c.post(ctx, conv.messages)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return decodeStatusError(resp)
	}

	// Placeholder assistant message, continuously replaced as deltas arrive.
	conv.messages = append(conv.messages, dto.ChatMessage{Role: dto.RoleAssistant, Content: ""})
	idx := len(conv.messages) - 1

	var accumulated strings.Builder
	streamErr := sse.DecodeStream(ctx, resp.Body, func(delta string) error {
		accumulated.WriteString(delta)
		conv.messages[idx].Content = accumulated.String()
		if onDelta != nil {
			onDelta(delta)
		}
		return nil
	})

	if accumulated.Len() == 0 {
		// Nothing was delivered; drop the placeholder rather than leave an
		// empty turn displayed as complete.
		conv.messages = conv.messages[:idx]
	}
	if streamErr != nil {
		return fmt.Errorf("stream interrupted: %w", streamErr)
	}
	return nil
}

func (c *Client) post(ctx context.Context, messages []dto.ChatMessage) (*http.Response, error) {
	body, err := json.Marshal(dto.ChatRequest{Messages: messages})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	return c.httpClient.Do(req)
}

func decodeStatusError(resp *http.Response) error {
	message := "request failed"
	if body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<16)); err == nil {
		if m := gjson.GetBytes(body, "error"); m.Exists() {
			message = m.String()
		}
	}
	return &StatusError{Status: resp.StatusCode, Message: message}
}
