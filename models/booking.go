package models

import "time"

// RoomType is the kind of room a booking reserves.
type RoomType string

const (
	RoomSingle RoomType = "single"
	RoomDouble RoomType = "double"
)

// Valid reports whether the room type is one of the supported kinds.
func (t RoomType) Valid() bool {
	return t == RoomSingle || t == RoomDouble
}

// BookingStatus tracks the payment dimension of a booking.
type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingPaid      BookingStatus = "paid"
	BookingCancelled BookingStatus = "cancelled"
)

// CanTransition reports whether a booking may move from s to next.
// Paid and cancelled are terminal; pending may move to either.
func (s BookingStatus) CanTransition(next BookingStatus) bool {
	if s == next {
		return false
	}
	switch s {
	case BookingPending:
		return next == BookingPaid || next == BookingCancelled
	default:
		return false
	}
}

// ApprovalStatus tracks the owner-side gate on a booking request.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "pending"
	ApprovalApproved ApprovalStatus = "approved"
	ApprovalRejected ApprovalStatus = "rejected"
)

// IsDecision reports whether the value is a valid owner decision.
func (s ApprovalStatus) IsDecision() bool {
	return s == ApprovalApproved || s == ApprovalRejected
}

// CanTransition reports whether an approval may move from s to next.
// Decisions are recorded once; re-applying the same decision is handled
// as a no-op by the service, not as a transition.
func (s ApprovalStatus) CanTransition(next ApprovalStatus) bool {
	return s == ApprovalPending && next.IsDecision()
}

// Booking represents a renter's reservation request against a property.
type Booking struct {
	ID         string `bson:"id" json:"id"`
	PropertyID string `bson:"property_id" json:"property_id"`
	// Owner of the property, denormalized at creation time so approval
	// checks do not depend on later property mutations.
	OwnerID   string `bson:"owner_id" json:"owner_id"`
	RenterID  string `bson:"renter_id" json:"renter_id"`
	PartnerID string `bson:"partner_id,omitempty" json:"partner_id,omitempty"`

	RoomType    RoomType `bson:"room_type" json:"room_type"`
	Months      int      `bson:"months" json:"months"` // 3 or 6
	TotalAmount float64  `bson:"total_amount" json:"total_amount"`

	Status         BookingStatus  `bson:"status" json:"status"`
	ApprovalStatus ApprovalStatus `bson:"approval_status" json:"approval_status"`

	// Coupon issued once the booking is paid. Unique across bookings.
	Coupon string `bson:"coupon,omitempty" json:"coupon,omitempty"`

	// Stripe checkout session reference, set when the renter starts payment.
	CheckoutSessionID string `bson:"checkout_session_id,omitempty" json:"checkout_session_id,omitempty"`

	// Optional referral/discount passthrough fields.
	ReferralCode string  `bson:"referral_code,omitempty" json:"referral_code,omitempty"`
	Discount     float64 `bson:"discount,omitempty" json:"discount,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
