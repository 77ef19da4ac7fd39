package handlers

import (
	"log/slog"

	"firebase.google.com/go/v4/auth"

	"github.com/mirudeesh/liqueno-backend/internal/response"
)

type Deps struct {
	Log             *slog.Logger
	ResponseHandler response.ResponseHandler
	ChatSvc         ChatService
	OTPSvc          OTPService
	Firebase        *auth.Client
}
