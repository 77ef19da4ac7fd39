package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/mirudeesh/liqueno-backend/internal/dto"
	"github.com/mirudeesh/liqueno-backend/pkg/logger"
)

type gatewayClient interface {
	Complete(ctx context.Context, req dto.GatewayRequest) (dto.GatewayCompletion, error)
	Stream(ctx context.Context, req dto.GatewayRequest) (io.ReadCloser, error)
}

type toolRegistry interface {
	Declarations() []dto.ToolDeclaration
	Invoke(ctx context.Context, name string, args map[string]any) map[string]any
}

// completionState enumerates the orchestration state machine. The branch is
// data-dependent: tool-call intent is only knowable once the complete first
// response is parsed, so the deciding call never streams and the delivering
// call always does.
type completionState int

const (
	stateAssembled completionState = iota
	stateFirstCall
	stateToolDispatch
	stateSecondCall
	stateDirectStream
)

func (s completionState) String() string {
	switch s {
	case stateAssembled:
		return "assembled"
	case stateFirstCall:
		return "first_call"
	case stateToolDispatch:
		return "tool_dispatch"
	case stateSecondCall:
		return "second_call"
	case stateDirectStream:
		return "direct_stream"
	default:
		return "unknown"
	}
}

type chatService struct {
	gateway  gatewayClient
	registry toolRegistry
	model    string
	clockNow func() time.Time
}

func NewChatService(gateway gatewayClient, registry toolRegistry, model string) *chatService {
	return &chatService{
		gateway:  gateway,
		registry: registry,
		model:    model,
		clockNow: time.Now,
	}
}

// Stream runs the completion pipeline over the validated history and returns
// the upstream event-stream body for pass-through. Any error is raised
// before the first streamed byte; once a body is returned, failures are
// transport-level only.
func (s *chatService) Stream(ctx context.Context, history []dto.ChatMessage) (io.ReadCloser, error) {
	log := logger.FromContext(ctx)

	conversation := assembleConversation(s.clockNow(), history)
	state := stateAssembled
	var assistant dto.ChatMessage

	for {
		log.Debug("completion state", "state", state.String())

		switch state {
		case stateAssembled:
			state = stateFirstCall

		case stateFirstCall:
			completion, err := s.gateway.Complete(ctx, dto.GatewayRequest{
				Model:      s.model,
				Messages:   conversation,
				Tools:      s.registry.Declarations(),
				ToolChoice: "auto",
			})
			if err != nil {
				return nil, err
			}
			assistant = completion.Message()
			if len(assistant.ToolCalls) > 0 {
				state = stateToolDispatch
			} else {
				state = stateDirectStream
			}

		case stateToolDispatch:
			conversation = append(conversation, assistant)
			for _, call := range assistant.ToolCalls {
				conversation = append(conversation, s.toolMessage(ctx, call))
			}
			state = stateSecondCall

		case stateSecondCall, stateDirectStream:
			stream, err := s.gateway.Stream(ctx, dto.GatewayRequest{
				Model:    s.model,
				Messages: conversation,
			})
			if err != nil {
				return nil, err
			}
			log.Info("chat completion streaming", "tool_calls", len(assistant.ToolCalls))
			return stream, nil
		}
	}
}

// toolMessage executes one requested call and packages the result as a tool
// turn carrying the originating call id. Executor failures, including
// malformed arguments, become {error: reason} payloads so the model can
// acknowledge them conversationally.
func (s *chatService) toolMessage(ctx context.Context, call dto.ToolCall) dto.ChatMessage {
	result := s.execute(ctx, call)

	payload, err := json.Marshal(result)
	if err != nil {
		payload = []byte(`{"error":"tool result could not be serialized"}`)
	}

	return dto.ChatMessage{
		Role:       dto.RoleTool,
		ToolCallID: call.ID,
		Content:    string(payload),
	}
}

func (s *chatService) execute(ctx context.Context, call dto.ToolCall) map[string]any {
	var args map[string]any
	if call.Function.Arguments != "" {
		if err := json.Unmarshal([]byte(call.Function.Arguments), &args); err != nil {
			return map[string]any{"error": fmt.Sprintf("malformed tool arguments: %v", err)}
		}
	}
	return s.registry.Invoke(ctx, call.Function.Name, args)
}
