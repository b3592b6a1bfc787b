package domain

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type BookingStore interface {
	// GetConfirmedBookings returns every confirmed booking on the court for
	// the given facility-local day. Only confirmed bookings constrain
	// availability.
	GetConfirmedBookings(ctx context.Context, courtId string, date time.Time) ([]*Booking, error)

	// Insert commits the booking only if no overlapping confirmed booking
	// exists for the same court and day. The overlap check and the write
	// happen in one storage transaction, so two clients racing for the same
	// slot cannot both succeed.
	Insert(ctx context.Context, booking *Booking) (*Booking, error)

	Get(ctx context.Context, id primitive.ObjectID) (*Booking, error)
	GetByUser(ctx context.Context, userId string) ([]*Booking, error)
	UpdateStatus(ctx context.Context, id primitive.ObjectID, status BookingStatus) error
}
