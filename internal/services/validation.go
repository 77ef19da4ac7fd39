package services

import (
	"fmt"

	"github.com/mirudeesh/liqueno-backend/internal/dto"
	"github.com/mirudeesh/liqueno-backend/internal/errs"
)

const (
	maxMessages    = 50
	maxTextLen     = 50000
	maxParts       = 10
	maxImageURLLen = 5000000
)

// ValidateMessages rejects malformed or oversized conversation payloads
// before any tool or model call is made. All rules must hold or the whole
// request is rejected with no partial side effects.
func ValidateMessages(messages []dto.ChatMessage) error {
	if len(messages) == 0 {
		return errs.NewValidationError("messages must contain at least one message")
	}
	if len(messages) > maxMessages {
		return errs.NewValidationError(fmt.Sprintf("messages must contain at most %d messages", maxMessages))
	}

	for i, msg := range messages {
		if msg.Role != dto.RoleUser && msg.Role != dto.RoleAssistant {
			return errs.NewValidationError(fmt.Sprintf("message %d: role must be user or assistant", i))
		}
		if err := validateContent(i, msg.Content); err != nil {
			return err
		}
	}
	return nil
}

func validateContent(i int, content any) error {
	switch c := content.(type) {
	case string:
		if len(c) > maxTextLen {
			return errs.NewValidationError(fmt.Sprintf("message %d: content exceeds %d characters", i, maxTextLen))
		}
		return nil

	case []any:
		if len(c) > maxParts {
			return errs.NewValidationError(fmt.Sprintf("message %d: content has more than %d parts", i, maxParts))
		}
		for _, item := range c {
			part, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if err := validatePart(i, part); err != nil {
				return err
			}
		}
		return nil

	default:
		return errs.NewValidationError(fmt.Sprintf("message %d: content must be a string or a list of parts", i))
	}
}

func validatePart(i int, part map[string]any) error {
	switch part["type"] {
	case "text":
		if text, ok := part["text"].(string); ok && len(text) > maxTextLen {
			return errs.NewValidationError(fmt.Sprintf("message %d: text part exceeds %d characters", i, maxTextLen))
		}
	case "image_url":
		imageURL, _ := part["image_url"].(map[string]any)
		if url, ok := imageURL["url"].(string); ok && len(url) > maxImageURLLen {
			return errs.NewValidationError(fmt.Sprintf("message %d: image URL exceeds %d characters", i, maxImageURLLen))
		}
	}
	return nil
}
