package bookingRepo

import (
	"context"
	"fmt"
	"time"

	"roomhive/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// The methods in this file implement the atomic compare-and-set primitive the
// webhook reconciler and the expiry worker rely on: the current status is part
// of the update filter, so a concurrent handler that already applied the
// transition makes this one match zero documents instead of reapplying it.

// MarkPaidIfPending flips a pending booking to paid.
func (r *MongoBookingRepo) MarkPaidIfPending(ctx context.Context, id string) (bool, error) {
	return r.transition(ctx, id, models.BookingPending, models.BookingPaid)
}

// CancelIfPending flips a pending booking to cancelled.
func (r *MongoBookingRepo) CancelIfPending(ctx context.Context, id string) (bool, error) {
	return r.transition(ctx, id, models.BookingPending, models.BookingCancelled)
}

func (r *MongoBookingRepo) transition(ctx context.Context, id string, from, to models.BookingStatus) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "status": from}
	update := bson.M{"$set": bson.M{"status": to, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("failed to transition booking %s to %s: %w", id, to, err)
	}
	return result.ModifiedCount == 1, nil
}

// SetCouponIfUnset assigns a coupon only when the booking has none yet.
func (r *MongoBookingRepo) SetCouponIfUnset(ctx context.Context, id, coupon string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	filter := bson.M{"id": id, "coupon": bson.M{"$exists": false}}
	update := bson.M{"$set": bson.M{"coupon": coupon, "updated_at": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return false, ErrCouponConflict
		}
		return false, fmt.Errorf("failed to set coupon on booking %s: %w", id, err)
	}
	return result.ModifiedCount == 1, nil
}
