package main

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/mirudeesh/liqueno-backend/internal/bootstrap"
	gatewayclient "github.com/mirudeesh/liqueno-backend/internal/client/gateway"
	resendclient "github.com/mirudeesh/liqueno-backend/internal/client/resend"
	"github.com/mirudeesh/liqueno-backend/internal/config"
	"github.com/mirudeesh/liqueno-backend/internal/crypto"
	"github.com/mirudeesh/liqueno-backend/internal/handlers"
	"github.com/mirudeesh/liqueno-backend/internal/response"
	"github.com/mirudeesh/liqueno-backend/internal/router"
	"github.com/mirudeesh/liqueno-backend/internal/services"
	"github.com/mirudeesh/liqueno-backend/internal/store"
	"github.com/mirudeesh/liqueno-backend/internal/tools"
)

func exitOnError(message string, err error, log *slog.Logger) {
	if err != nil {
		log.Error(message, "error", err)
		os.Exit(1)
	}
}

func main() {
	// bootstrap
	cfg := config.New()
	bs, err := bootstrap.Run(cfg)
	exitOnError("bootstrap failed", err, bs.Log)
	defer bs.Close()

	// helpers
	var cipher crypto.Cipher = crypto.NoopCipher{}
	if cfg.KMSKeyName != "" {
		cipher = crypto.NewKMSCipher(bs.KMS, cfg.KMSKeyName)
	}

	// stores
	ostore := store.NewOTPStore(bs.Firestore, cipher)

	// clients
	gateway := gatewayclient.NewAdapter(bs.Log, cfg.GatewayURL, cfg.GatewayAPIKey)
	mailer := resendclient.NewAdapter(cfg.ResendAPIKey, cfg.OTPFromAddress)

	// services
	oserv := services.NewOTPService(ostore, mailer, cfg.OTPTTL)

	// tools
	toolClient := &http.Client{Timeout: 15 * time.Second}
	registry := tools.NewRegistry(
		tools.NewStockTool(toolClient, ""),
		tools.NewWeatherTool(toolClient, ""),
		tools.NewCryptoTool(toolClient, ""),
		tools.NewNewsTool(toolClient, "", cfg.NewsAPIKey),
		tools.NewSportsTool(toolClient, ""),
		tools.NewVerifyOTPTool(oserv),
	)
	cserv := services.NewChatService(gateway, registry, cfg.GatewayModel)

	// response handler
	rh := response.New(bs.Log)

	// dependancies
	deps := new(handlers.Deps)
	deps.Log = bs.Log
	deps.ResponseHandler = rh
	deps.Firebase = bs.Firebase
	deps.ChatSvc = cserv
	deps.OTPSvc = oserv

	// router
	r := router.NewRouter(deps)
	err = http.ListenAndServe(":8080", r)
	exitOnError("server start failed", err, bs.Log)
}
