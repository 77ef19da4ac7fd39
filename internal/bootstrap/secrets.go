package bootstrap

import (
	"context"
	"fmt"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mirudeesh/liqueno-backend/internal/config"
)

// ResolveSecrets fills API keys that were not supplied via environment
// variables from Secret Manager. A missing secret is tolerated so local runs
// can rely on env vars alone.
func ResolveSecrets(ctx context.Context, client *secretmanager.Client, cfg *config.Config) error {
	resolve := func(target *string, secretID string) error {
		if *target != "" || secretID == "" {
			return nil
		}
		value, err := accessSecret(ctx, client, cfg.ProjectID, secretID)
		if status.Code(err) == codes.NotFound {
			return nil
		}
		if err != nil {
			return err
		}
		*target = value
		return nil
	}

	if err := resolve(&cfg.GatewayAPIKey, cfg.GatewayKeySecret); err != nil {
		return err
	}
	if err := resolve(&cfg.ResendAPIKey, cfg.ResendKeySecret); err != nil {
		return err
	}
	return resolve(&cfg.NewsAPIKey, cfg.NewsKeySecret)
}

func accessSecret(ctx context.Context, client *secretmanager.Client, projectID, secretID string) (string, error) {
	res, err := client.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: fmt.Sprintf("projects/%s/secrets/%s/versions/latest", projectID, secretID),
	})
	if err != nil {
		return "", err
	}
	return string(res.Payload.Data), nil
}
