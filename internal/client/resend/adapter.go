package resendclient

import (
	"context"

	"github.com/resend/resend-go/v2"

	"github.com/mirudeesh/liqueno-backend/internal/errs"
)

type Adapter struct {
	client *resend.Client
	from   string
}

func NewAdapter(apiKey, from string) *Adapter {
	return &Adapter{
		client: resend.NewClient(apiKey),
		from:   from,
	}
}

func (a *Adapter) Send(ctx context.Context, to, subject, html string) error {
	_, err := a.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    a.from,
		To:      []string{to},
		Subject: subject,
		Html:    html,
	})
	if err != nil {
		return errs.NewExternalServiceError("resend", "failed to send email", true)
	}
	return nil
}
