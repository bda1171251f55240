package payments

import (
	"context"
	"encoding/json"
	"fmt"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"

	"github.com/yassirrachad97/Factura-sub000/domain"
)

// StripeGateway implements domain.PaymentGateway against the Stripe API
type StripeGateway struct {
	api           *client.API
	webhookSecret string
}

// NewStripeGateway creates a new Stripe gateway client
func NewStripeGateway(secretKey, webhookSecret string) domain.PaymentGateway {
	api := &client.API{}
	api.Init(secretKey, nil)

	return &StripeGateway{
		api:           api,
		webhookSecret: webhookSecret,
	}
}

// CreateIntent implements domain.PaymentGateway
func (g *StripeGateway) CreateIntent(ctx context.Context, amount int64, currency string, metadata map[string]string) (*domain.IntentResult, error) {
	params := &stripe.PaymentIntentParams{
		Params:   stripe.Params{Context: ctx},
		Amount:   stripe.Int64(amount),
		Currency: stripe.String(currency),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := g.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create payment intent: %w", err)
	}

	return &domain.IntentResult{
		IntentID:     pi.ID,
		ClientSecret: pi.ClientSecret,
	}, nil
}

// GetIntentStatus implements domain.PaymentGateway
func (g *StripeGateway) GetIntentStatus(ctx context.Context, intentID string) (string, error) {
	params := &stripe.PaymentIntentParams{Params: stripe.Params{Context: ctx}}
	pi, err := g.api.PaymentIntents.Get(intentID, params)
	if err != nil {
		return "", fmt.Errorf("failed to retrieve payment intent %s: %w", intentID, err)
	}
	return string(pi.Status), nil
}

// ParseWebhook implements domain.PaymentGateway. The signature is checked
// against the raw payload before any of it is trusted.
func (g *StripeGateway) ParseWebhook(payload []byte, signature string) (*domain.WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, g.webhookSecret)
	if err != nil {
		return nil, domain.ErrWebhookSignature
	}

	ev := &domain.WebhookEvent{Type: string(event.Type)}

	var pi stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &pi); err == nil {
		ev.IntentID = pi.ID
	}

	return ev, nil
}
