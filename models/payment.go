package models

// CheckoutParams describe a payment session to be created with the
// external processor. Amount is in minor currency units.
type CheckoutParams struct {
	BookingID   string
	AmountMinor int64
	Currency    string
	SuccessURL  string
	CancelURL   string
	Metadata    map[string]string
}

// CheckoutSession is the processor's handle for a created session.
type CheckoutSession struct {
	SessionID   string `json:"sessionId"`
	RedirectURL string `json:"redirectUrl"`
}
