package booking

import (
	"context"
	"errors"
	"regexp"
	"testing"

	bookingRepo "roomhive/database/repository/booking"
	"roomhive/models"
)

var couponPattern = regexp.MustCompile(`^COUPON-[0-9a-f]{8}$`)

func TestGenerateCouponCodeFormat(t *testing.T) {
	for i := 0; i < 20; i++ {
		code, err := generateCouponCode()
		if err != nil {
			t.Fatalf("generateCouponCode: %v", err)
		}
		if !couponPattern.MatchString(code) {
			t.Fatalf("code %q does not match %s", code, couponPattern)
		}
	}
}

func TestIssueCouponAssignsOnce(t *testing.T) {
	bookings := newMockBookingRepo()
	b := pendingBooking()
	b.Status = models.BookingPaid
	bookings.put(b)
	svc := newTestService(bookings, newMockPropertyRepo(), newMockUserRepo())

	first, err := svc.IssueCoupon(context.Background(), b)
	if err != nil {
		t.Fatalf("IssueCoupon: %v", err)
	}
	if !couponPattern.MatchString(first) {
		t.Fatalf("coupon %q has unexpected format", first)
	}

	// A second call for the same booking returns the same coupon.
	again, err := svc.IssueCoupon(context.Background(), b)
	if err != nil {
		t.Fatalf("second IssueCoupon: %v", err)
	}
	if again != first {
		t.Errorf("second issue returned %q, want %q", again, first)
	}
	if got := bookings.get(b.ID).Coupon; got != first {
		t.Errorf("persisted coupon = %q, want %q", got, first)
	}
}

func TestIssueCouponRetriesOnConflict(t *testing.T) {
	bookings := newMockBookingRepo()
	b := pendingBooking()
	b.Status = models.BookingPaid
	bookings.put(b)

	conflicts := 0
	bookings.CouponFn = func(ctx context.Context, id, coupon string) (bool, error) {
		if conflicts < 2 {
			conflicts++
			return false, bookingRepo.ErrCouponConflict
		}
		return true, nil
	}

	svc := newTestService(bookings, newMockPropertyRepo(), newMockUserRepo())
	code, err := svc.IssueCoupon(context.Background(), b)
	if err != nil {
		t.Fatalf("IssueCoupon: %v", err)
	}
	if conflicts != 2 {
		t.Errorf("saw %d conflicts, want 2", conflicts)
	}
	if !couponPattern.MatchString(code) {
		t.Errorf("coupon %q has unexpected format", code)
	}
}

func TestIssueCouponGivesUpAfterRepeatedConflicts(t *testing.T) {
	bookings := newMockBookingRepo()
	b := pendingBooking()
	bookings.put(b)
	bookings.CouponFn = func(ctx context.Context, id, coupon string) (bool, error) {
		return false, bookingRepo.ErrCouponConflict
	}

	svc := newTestService(bookings, newMockPropertyRepo(), newMockUserRepo())
	if _, err := svc.IssueCoupon(context.Background(), b); err == nil {
		t.Fatal("expected error after exhausting retries")
	}
}

func TestIssueCouponConcurrentWinner(t *testing.T) {
	bookings := newMockBookingRepo()
	b := pendingBooking()
	b.Status = models.BookingPaid
	bookings.put(b)

	// Another handler already assigned a coupon between our read and write.
	stored := bookings.get(b.ID)
	stored.Coupon = "COUPON-deadbeef"
	bookings.put(stored)
	bookings.CouponFn = func(ctx context.Context, id, coupon string) (bool, error) {
		return false, nil
	}

	svc := newTestService(bookings, newMockPropertyRepo(), newMockUserRepo())
	code, err := svc.IssueCoupon(context.Background(), b)
	if err != nil {
		t.Fatalf("IssueCoupon: %v", err)
	}
	if code != "COUPON-deadbeef" {
		t.Errorf("coupon = %q, want the concurrent winner's COUPON-deadbeef", code)
	}
}

func TestCouponForUser(t *testing.T) {
	bookings := newMockBookingRepo()
	svc := newTestService(bookings, newMockPropertyRepo(), newMockUserRepo())

	if _, err := svc.CouponForUser(context.Background(), "renter-1"); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("no bookings: err = %v, want ErrCouponNotFound", err)
	}

	paid := pendingBooking()
	paid.Status = models.BookingPaid
	paid.Coupon = "COUPON-11223344"
	bookings.put(paid)

	code, err := svc.CouponForUser(context.Background(), "renter-1")
	if err != nil {
		t.Fatalf("CouponForUser: %v", err)
	}
	if code != "COUPON-11223344" {
		t.Errorf("coupon = %q, want COUPON-11223344", code)
	}
}

func TestCouponForUserIgnoresPaidBookingWithoutCoupon(t *testing.T) {
	bookings := newMockBookingRepo()
	paid := pendingBooking()
	paid.Status = models.BookingPaid
	bookings.put(paid)
	svc := newTestService(bookings, newMockPropertyRepo(), newMockUserRepo())

	if _, err := svc.CouponForUser(context.Background(), "renter-1"); !errors.Is(err, ErrCouponNotFound) {
		t.Fatalf("err = %v, want ErrCouponNotFound", err)
	}
}
