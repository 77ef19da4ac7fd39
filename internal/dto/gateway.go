package dto

// GatewayRequest is the chat-completions request body sent to the model
// gateway. The first (deciding) call carries Tools and ToolChoice with Stream
// false; the delivering call carries Stream true and no tools.
type GatewayRequest struct {
	Model      string            `json:"model"`
	Messages   []ChatMessage     `json:"messages"`
	Tools      []ToolDeclaration `json:"tools,omitempty"`
	ToolChoice string            `json:"tool_choice,omitempty"`
	Stream     bool              `json:"stream,omitempty"`
}

// GatewayCompletion is a fully-decoded non-streaming response.
type GatewayCompletion struct {
	Choices []GatewayChoice `json:"choices"`
}

type GatewayChoice struct {
	Message      ChatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

// Message returns the first choice's message, or a zero message when the
// gateway returned no choices.
func (c GatewayCompletion) Message() ChatMessage {
	if len(c.Choices) == 0 {
		return ChatMessage{}
	}
	return c.Choices[0].Message
}

// ToolDeclaration advertises one callable function to the model.
type ToolDeclaration struct {
	Type     string              `json:"type"`
	Function FunctionDeclaration `json:"function"`
}

type FunctionDeclaration struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Parameters  *ToolSchema `json:"parameters,omitempty"`
}

// ToolSchema is the JSON-schema-like parameter shape consumed by the model
// for routing; it is advisory, not validated.
type ToolSchema struct {
	Type        string                 `json:"type"`
	Description string                 `json:"description,omitempty"`
	Enum        []string               `json:"enum,omitempty"`
	Properties  map[string]*ToolSchema `json:"properties,omitempty"`
	Required    []string               `json:"required,omitempty"`
	Items       *ToolSchema            `json:"items,omitempty"`
}

func FunctionTool(name, description string, parameters *ToolSchema) ToolDeclaration {
	return ToolDeclaration{
		Type: "function",
		Function: FunctionDeclaration{
			Name:        name,
			Description: description,
			Parameters:  parameters,
		},
	}
}
