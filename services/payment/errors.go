package payment

import "errors"

var (
	// ErrSignatureInvalid means the webhook signature check failed; the
	// delivery is rejected outright and no booking is touched.
	ErrSignatureInvalid = errors.New("webhook signature invalid")

	// ErrGatewayUnavailable is a transient failure talking to the payment
	// processor. The caller may retry; no booking state has changed.
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
)
