package events

import (
	"context"
	"time"

	"go.uber.org/zap"

	"renthub/internal/domain"
)

const (
	RoutingBookingCreated   = "booking.created"
	RoutingBookingConfirmed = "booking.confirmed"
	RoutingBookingCanceled  = "booking.canceled"
)

type bookingEvent struct {
	BookingID      int64  `json:"booking_id"`
	ListingID      int64  `json:"listing_id"`
	RenterID       int64  `json:"renter_id"`
	ListingOwnerID int64  `json:"listing_owner_id,omitempty"`
	StartDate      string `json:"start_date"`
	EndDate        string `json:"end_date"`
}

// BookingNotifier publishes booking lifecycle events. It implements the
// booking module's NotificationSender.
type BookingNotifier struct {
	pub *Publisher
	log *zap.Logger
}

func NewBookingNotifier(pub *Publisher, log *zap.Logger) *BookingNotifier {
	return &BookingNotifier{pub: pub, log: log}
}

func (n *BookingNotifier) NotifyBookingCreated(ctx context.Context, b *domain.Booking, listingOwnerID int64) error {
	evt := toEvent(b)
	evt.ListingOwnerID = listingOwnerID
	return n.publish(ctx, RoutingBookingCreated, evt)
}

func (n *BookingNotifier) NotifyBookingConfirmed(ctx context.Context, b *domain.Booking) error {
	return n.publish(ctx, RoutingBookingConfirmed, toEvent(b))
}

func (n *BookingNotifier) NotifyBookingCanceled(ctx context.Context, b *domain.Booking) error {
	return n.publish(ctx, RoutingBookingCanceled, toEvent(b))
}

func (n *BookingNotifier) publish(ctx context.Context, key string, evt bookingEvent) error {
	if err := n.pub.Publish(ctx, key, evt); err != nil {
		n.log.Warn("booking event publish failed",
			zap.String("routing_key", key),
			zap.Int64("booking_id", evt.BookingID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func toEvent(b *domain.Booking) bookingEvent {
	return bookingEvent{
		BookingID: b.ID,
		ListingID: b.ListingID,
		RenterID:  b.RenterID,
		StartDate: b.StartDate.Format(time.DateOnly),
		EndDate:   b.EndDate.Format(time.DateOnly),
	}
}
