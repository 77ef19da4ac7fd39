package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mirudeesh/liqueno-backend/internal/dto"
	"github.com/mirudeesh/liqueno-backend/internal/middleware"
	"github.com/mirudeesh/liqueno-backend/internal/response"
)

type OTPService interface {
	Send(ctx context.Context, uid, email string) (dto.OTPSendResponse, error)
	Verify(ctx context.Context, uid, code string) error
}

type otpHandlers struct {
	ResponseHandler response.ResponseHandler
	OTPSvc          OTPService
}

func NewOTPHandlers(deps *Deps) *otpHandlers {
	return &otpHandlers{
		ResponseHandler: deps.ResponseHandler,
		OTPSvc:          deps.OTPSvc,
	}
}

func (h *otpHandlers) OTPRoutes() chi.Router {
	r := chi.NewRouter()
	r.Post("/send", h.Send)
	r.Post("/verify", h.Verify)
	return r
}

func (h *otpHandlers) Send(w http.ResponseWriter, r *http.Request) {
	uid := middleware.UID(r.Context())
	email := middleware.Email(r.Context())

	resp, err := h.OTPSvc.Send(r.Context(), uid, email)
	if err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, resp)
}

func (h *otpHandlers) Verify(w http.ResponseWriter, r *http.Request) {
	var body dto.OTPVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	uid := middleware.UID(r.Context())
	if err := h.OTPSvc.Verify(r.Context(), uid, body.Code); err != nil {
		h.ResponseHandler.HandleError(w, r, err)
		return
	}

	h.ResponseHandler.WriteSuccess(w, r, http.StatusOK, dto.OTPVerifyResponse{
		Success: true,
		Message: "Code verified successfully",
	})
}
