package router

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/mirudeesh/liqueno-backend/internal/handlers"
	"github.com/mirudeesh/liqueno-backend/internal/middleware"
)

func NewRouter(deps *handlers.Deps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(middleware.NewLoggerMiddleware(deps.Log).LoggerMiddleware)
	r.Use(middleware.CORS)

	auth := middleware.NewMiddleware(deps.Firebase)

	ch := handlers.NewChatHandlers(deps)
	oh := handlers.NewOTPHandlers(deps)

	r.Group(func(r chi.Router) {
		r.Use(auth.OptionalAuth)
		r.Mount("/chat", ch.ChatRoutes())
	})
	r.Group(func(r chi.Router) {
		r.Use(auth.FirebaseAuth)
		r.Mount("/otp", oh.OTPRoutes())
	})

	return r
}
