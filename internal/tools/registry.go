package tools

import (
	"context"
	"fmt"

	"github.com/mirudeesh/liqueno-backend/internal/dto"
	"github.com/mirudeesh/liqueno-backend/pkg/logger"
)

// Tool is one callable capability advertised to the model. Invoke never
// returns a Go error: every failure is downgraded to an {error: reason}
// payload so the conversation can continue.
type Tool interface {
	Name() string
	Declaration() dto.ToolDeclaration
	Invoke(ctx context.Context, args map[string]any) map[string]any
}

// Registry maps tool names to executors and keeps registration order, which
// is the order declarations are advertised in.
type Registry struct {
	order []string
	tools map[string]Tool
}

func NewRegistry(tools ...Tool) *Registry {
	r := &Registry{tools: make(map[string]Tool, len(tools))}
	for _, t := range tools {
		if _, exists := r.tools[t.Name()]; exists {
			continue
		}
		r.order = append(r.order, t.Name())
		r.tools[t.Name()] = t
	}
	return r
}

// Declarations returns the tool declarations fed verbatim into the first
// gateway request.
func (r *Registry) Declarations() []dto.ToolDeclaration {
	out := make([]dto.ToolDeclaration, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].Declaration())
	}
	return out
}

// Invoke dispatches to the named executor. An unknown name is itself a tool
// failure, not a request failure.
func (r *Registry) Invoke(ctx context.Context, name string, args map[string]any) map[string]any {
	log := logger.FromContext(ctx)

	tool, ok := r.tools[name]
	if !ok {
		log.Warn("model requested unknown tool", "tool", name)
		return errorPayload(fmt.Sprintf("unknown tool: %s", name))
	}

	log.Info("executing tool", "tool", name)
	return tool.Invoke(ctx, args)
}

func errorPayload(reason string) map[string]any {
	return map[string]any{"error": reason}
}

func stringArg(args map[string]any, key string) string {
	v, _ := args[key].(string)
	return v
}
