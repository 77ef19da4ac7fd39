package tools

import (
	"context"

	"github.com/mirudeesh/liqueno-backend/internal/dto"
	"github.com/mirudeesh/liqueno-backend/internal/middleware"
)

type otpVerifier interface {
	Verify(ctx context.Context, uid, code string) error
}

// verifyOTPTool exposes passcode verification as an in-chat capability with
// the same semantics as the /otp/verify endpoint.
type verifyOTPTool struct {
	otp otpVerifier
}

func NewVerifyOTPTool(otp otpVerifier) *verifyOTPTool {
	return &verifyOTPTool{otp: otp}
}

func (t *verifyOTPTool) Name() string { return "verify_otp" }

func (t *verifyOTPTool) Declaration() dto.ToolDeclaration {
	return dto.FunctionTool(
		t.Name(),
		"Verify the 6-digit one-time passcode the user received by email",
		&dto.ToolSchema{
			Type: "object",
			Properties: map[string]*dto.ToolSchema{
				"code": {Type: "string", Description: "The 6-digit verification code"},
			},
			Required: []string{"code"},
		},
	)
}

func (t *verifyOTPTool) Invoke(ctx context.Context, args map[string]any) map[string]any {
	uid := middleware.UID(ctx)
	if uid == "" {
		return errorPayload("authentication required")
	}

	code := stringArg(args, "code")
	if err := t.otp.Verify(ctx, uid, code); err != nil {
		return errorPayload(err.Error())
	}

	return map[string]any{
		"success": true,
		"message": "Code verified successfully",
	}
}
