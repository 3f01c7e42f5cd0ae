package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"roomhive/models"
	"roomhive/services/notification"

	"go.uber.org/zap"
)

func newTestService(bookings *mockBookingRepo, properties *mockPropertyRepo, users *mockUserRepo) *DefaultBookingService {
	return &DefaultBookingService{
		Repo:         bookings,
		PropertyRepo: properties,
		UserRepo:     users,
		Gateway:      &mockGateway{},
		Publisher:    notification.NopPublisher{},
		Push:         notification.NopPush{},
		Currency:     "inr",
		SuccessURL:   "https://app.example/success",
		CancelURL:    "https://app.example/cancel",
		PendingTTL:   48 * time.Hour,
		Logger:       zap.NewNop(),
	}
}

func availableProperty() *models.Property {
	return &models.Property{
		ID:           "prop-1",
		OwnerID:      "owner-1",
		Title:        "2BHK near campus",
		City:         "Pune",
		Rent:         8000,
		Availability: models.PropertyAvailable,
	}
}

func TestCreateBookingPricesAndStartsPending(t *testing.T) {
	bookings := newMockBookingRepo()
	svc := newTestService(bookings, newMockPropertyRepo(availableProperty()), newMockUserRepo())

	b, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		PropertyID: "prop-1",
		RenterID:   "renter-1",
		RoomType:   models.RoomSingle,
		Months:     3,
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}

	if b.TotalAmount != 24000 {
		t.Errorf("TotalAmount = %v, want 24000", b.TotalAmount)
	}
	if b.Status != models.BookingPending {
		t.Errorf("Status = %s, want pending", b.Status)
	}
	if b.ApprovalStatus != models.ApprovalPending {
		t.Errorf("ApprovalStatus = %s, want pending", b.ApprovalStatus)
	}
	if b.OwnerID != "owner-1" {
		t.Errorf("OwnerID = %q, want owner-1", b.OwnerID)
	}
	if bookings.get(b.ID) == nil {
		t.Error("booking was not persisted")
	}
}

func TestCreateBookingDoublePricing(t *testing.T) {
	bookings := newMockBookingRepo()
	users := newMockUserRepo(&models.User{ID: "partner-1", Email: "friend@example.com"})
	svc := newTestService(bookings, newMockPropertyRepo(availableProperty()), users)

	b, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		PropertyID:   "prop-1",
		RenterID:     "renter-1",
		RoomType:     models.RoomDouble,
		Months:       6,
		PartnerEmail: "friend@example.com",
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if b.TotalAmount != 96000 {
		t.Errorf("TotalAmount = %v, want 96000", b.TotalAmount)
	}
	if b.PartnerID != "partner-1" {
		t.Errorf("PartnerID = %q, want partner-1", b.PartnerID)
	}
}

func TestCreateBookingUnknownPartnerCreatesNothing(t *testing.T) {
	bookings := newMockBookingRepo()
	svc := newTestService(bookings, newMockPropertyRepo(availableProperty()), newMockUserRepo())

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		PropertyID:   "prop-1",
		RenterID:     "renter-1",
		RoomType:     models.RoomDouble,
		Months:       3,
		PartnerEmail: "nobody@example.com",
	})
	if !errors.Is(err, ErrPartnerNotFound) {
		t.Fatalf("err = %v, want ErrPartnerNotFound", err)
	}
	if bookings.Creates != 0 {
		t.Errorf("repo saw %d creates, want 0", bookings.Creates)
	}
}

func TestCreateBookingRejectsSelfBooking(t *testing.T) {
	svc := newTestService(newMockBookingRepo(), newMockPropertyRepo(availableProperty()), newMockUserRepo())

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		PropertyID: "prop-1",
		RenterID:   "owner-1",
		RoomType:   models.RoomSingle,
		Months:     3,
	})
	if !errors.Is(err, ErrSelfBooking) {
		t.Fatalf("err = %v, want ErrSelfBooking", err)
	}
}

func TestCreateBookingRejectsOccupiedProperty(t *testing.T) {
	p := availableProperty()
	p.Availability = models.PropertyOccupied
	svc := newTestService(newMockBookingRepo(), newMockPropertyRepo(p), newMockUserRepo())

	_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		PropertyID: "prop-1",
		RenterID:   "renter-1",
		RoomType:   models.RoomSingle,
		Months:     3,
	})
	if !errors.Is(err, ErrPropertyUnavailable) {
		t.Fatalf("err = %v, want ErrPropertyUnavailable", err)
	}
}

func TestCreateBookingRejectsBadDuration(t *testing.T) {
	svc := newTestService(newMockBookingRepo(), newMockPropertyRepo(availableProperty()), newMockUserRepo())

	for _, months := range []int{0, 1, 4, 12} {
		_, err := svc.CreateBooking(context.Background(), CreateBookingInput{
			PropertyID: "prop-1",
			RenterID:   "renter-1",
			RoomType:   models.RoomSingle,
			Months:     months,
		})
		if !errors.Is(err, ErrInvalidInput) {
			t.Errorf("months=%d: err = %v, want ErrInvalidInput", months, err)
		}
	}
}

func TestCreateBookingSchedulesExpiry(t *testing.T) {
	bookings := newMockBookingRepo()
	svc := newTestService(bookings, newMockPropertyRepo(availableProperty()), newMockUserRepo())
	scheduler := &recordingScheduler{}
	svc.Scheduler = scheduler

	b, err := svc.CreateBooking(context.Background(), CreateBookingInput{
		PropertyID: "prop-1",
		RenterID:   "renter-1",
		RoomType:   models.RoomSingle,
		Months:     3,
	})
	if err != nil {
		t.Fatalf("CreateBooking: %v", err)
	}
	if len(scheduler.BookingIDs) != 1 || scheduler.BookingIDs[0] != b.ID {
		t.Fatalf("scheduled IDs = %v, want [%s]", scheduler.BookingIDs, b.ID)
	}
	want := b.CreatedAt.Add(48 * time.Hour)
	if !scheduler.At[0].Equal(want) {
		t.Errorf("expiry at %v, want %v", scheduler.At[0], want)
	}
}

func TestGetBookingVisibility(t *testing.T) {
	bookings := newMockBookingRepo()
	bookings.put(&models.Booking{
		ID: "b-1", PropertyID: "prop-1", OwnerID: "owner-1",
		RenterID: "renter-1", PartnerID: "partner-1",
		Status: models.BookingPending, ApprovalStatus: models.ApprovalPending,
	})
	svc := newTestService(bookings, newMockPropertyRepo(), newMockUserRepo())

	for _, actor := range []string{"renter-1", "owner-1", "partner-1"} {
		if _, err := svc.GetBooking(context.Background(), "b-1", actor); err != nil {
			t.Errorf("actor %s: %v", actor, err)
		}
	}
	if _, err := svc.GetBooking(context.Background(), "b-1", "stranger"); !errors.Is(err, ErrNotAuthorized) {
		t.Errorf("stranger: err = %v, want ErrNotAuthorized", err)
	}
	if _, err := svc.GetBooking(context.Background(), "missing", "renter-1"); !errors.Is(err, ErrBookingNotFound) {
		t.Errorf("missing: err = %v, want ErrBookingNotFound", err)
	}
}

func TestCancelBooking(t *testing.T) {
	bookings := newMockBookingRepo()
	bookings.put(&models.Booking{
		ID: "b-1", OwnerID: "owner-1", RenterID: "renter-1",
		Status: models.BookingPending, ApprovalStatus: models.ApprovalPending,
	})
	svc := newTestService(bookings, newMockPropertyRepo(), newMockUserRepo())

	if _, err := svc.CancelBooking(context.Background(), "b-1", "stranger"); !errors.Is(err, ErrNotAuthorized) {
		t.Fatalf("stranger cancel: err = %v, want ErrNotAuthorized", err)
	}

	b, err := svc.CancelBooking(context.Background(), "b-1", "renter-1")
	if err != nil {
		t.Fatalf("CancelBooking: %v", err)
	}
	if b.Status != models.BookingCancelled {
		t.Errorf("Status = %s, want cancelled", b.Status)
	}

	// Cancellation is terminal.
	if _, err := svc.CancelBooking(context.Background(), "b-1", "renter-1"); !errors.Is(err, ErrIllegalTransition) {
		t.Errorf("second cancel: err = %v, want ErrIllegalTransition", err)
	}
}

func TestCancelBookingRejectsPaid(t *testing.T) {
	bookings := newMockBookingRepo()
	bookings.put(&models.Booking{
		ID: "b-1", OwnerID: "owner-1", RenterID: "renter-1",
		Status: models.BookingPaid, ApprovalStatus: models.ApprovalApproved,
	})
	svc := newTestService(bookings, newMockPropertyRepo(), newMockUserRepo())

	if _, err := svc.CancelBooking(context.Background(), "b-1", "owner-1"); !errors.Is(err, ErrIllegalTransition) {
		t.Fatalf("err = %v, want ErrIllegalTransition", err)
	}
	if got := bookings.get("b-1").Status; got != models.BookingPaid {
		t.Errorf("Status = %s, want paid (unchanged)", got)
	}
}
