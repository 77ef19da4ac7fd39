package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mirudeesh/liqueno-backend/internal/dto"
	"github.com/mirudeesh/liqueno-backend/internal/response"
	"github.com/mirudeesh/liqueno-backend/internal/services"
	"github.com/mirudeesh/liqueno-backend/internal/sse"
	"github.com/mirudeesh/liqueno-backend/pkg/logger"
)

type ChatService interface {
	Stream(ctx context.Context, history []dto.ChatMessage) (io.ReadCloser, error)
}

type chatHandlers struct {
	ResponseHandler response.ResponseHandler
	ChatSvc         ChatService
}

func NewChatHandlers(deps *Deps) *chatHandlers {
	return &chatHandlers{
		ResponseHandler: deps.ResponseHandler,
		ChatSvc:         deps.ChatSvc,
	}
}

func (h *chatHandlers) ChatRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/", h.Completions)
	return r
}

// Completions validates the conversation, runs the orchestration pipeline,
// and relays the resulting event stream. Every failure before the first
// streamed byte is a single JSON error body.
func (h *chatHandlers) Completions(w http.ResponseWriter, r *http.Request) {
	var body dto.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	if err := services.ValidateMessages(body.Messages); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	stream, err := h.ChatSvc.Stream(r.Context(), body.Messages)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}
	defer stream.Close()

	if err := sse.Relay(w, stream); err != nil {
		// Streaming already began; nothing can be converted to JSON now.
		log := logger.FromContext(r.Context())
		log.Warn("stream relay interrupted", "error", err)
	}
}
