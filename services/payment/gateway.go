package payment

import (
	"context"
	"fmt"
	"time"

	"roomhive/models"

	"github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/checkout/session"
	"github.com/stripe/stripe-go/v76/webhook"
	"go.uber.org/zap"
)

// gatewayTimeout bounds each processor call independently of the caller's
// request deadline.
const gatewayTimeout = 15 * time.Second

// WebhookVerifier checks a raw webhook delivery against its signature.
type WebhookVerifier interface {
	VerifyWebhook(payload []byte, sigHeader string) (*stripe.Event, error)
}

// StripeGateway wraps Stripe Checkout session creation and webhook
// signature verification. It never retries; retry policy belongs to the
// caller.
type StripeGateway struct {
	WebhookSecret string
	Logger        *zap.Logger
}

// NewStripeGateway creates the production payment gateway adapter.
func NewStripeGateway(webhookSecret string, logger *zap.Logger) *StripeGateway {
	return &StripeGateway{WebhookSecret: webhookSecret, Logger: logger}
}

// CreateCheckoutSession creates a Stripe Checkout session for a booking.
func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, p models.CheckoutParams) (*models.CheckoutSession, error) {
	ctx, cancel := context.WithTimeout(ctx, gatewayTimeout)
	defer cancel()

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModePayment)),
		ClientReferenceID: stripe.String(p.BookingID),
		SuccessURL:        stripe.String(p.SuccessURL),
		CancelURL:         stripe.String(p.CancelURL),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(p.Currency),
					UnitAmount: stripe.Int64(p.AmountMinor),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Room booking " + p.BookingID),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
	}
	params.Context = ctx
	for k, v := range p.Metadata {
		params.AddMetadata(k, v)
	}

	sess, err := session.New(params)
	if err != nil {
		g.Logger.Warn("checkout session creation failed", zap.String("bookingID", p.BookingID), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	return &models.CheckoutSession{
		SessionID:   sess.ID,
		RedirectURL: sess.URL,
	}, nil
}

// VerifyWebhook validates the delivery signature against the exact raw
// bytes Stripe sent and returns the parsed event.
func (g *StripeGateway) VerifyWebhook(payload []byte, sigHeader string) (*stripe.Event, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, g.WebhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignatureInvalid, err)
	}
	return &event, nil
}
