package store

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"padel_service/domain"
	"padel_service/errors"
)

const (
	DATABASE           = "padel"
	BOOKING_COLLECTION = "bookings"
)

type BookingMongoDBStore struct {
	client   *mongo.Client
	bookings *mongo.Collection
	tracer   trace.Tracer
	logger   *logrus.Logger
}

func NewBookingMongoDBStore(client *mongo.Client, tracer trace.Tracer, logger *logrus.Logger) domain.BookingStore {
	bookings := client.Database(DATABASE).Collection(BOOKING_COLLECTION)
	return &BookingMongoDBStore{
		client:   client,
		bookings: bookings,
		tracer:   tracer,
		logger:   logger,
	}
}

// EnsureIndexes backs the conflict policy with a partial unique index on
// (courtId, date, startTime) for confirmed bookings, so even an exact
// duplicate start that slips past the transaction is rejected by the server.
func (store *BookingMongoDBStore) EnsureIndexes(ctx context.Context) error {
	_, err := store.bookings.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "courtId", Value: 1}, {Key: "date", Value: 1}, {Key: "status", Value: 1}},
		},
		{
			Keys: bson.D{{Key: "courtId", Value: 1}, {Key: "date", Value: 1}, {Key: "startTime", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": string(domain.Confirmed)}),
		},
		{
			Keys: bson.D{{Key: "userId", Value: 1}},
		},
	})
	if err != nil {
		store.logger.Errorf("creating booking indexes: %v", err)
	}
	return err
}

func (store *BookingMongoDBStore) GetConfirmedBookings(ctx context.Context, courtId string, date time.Time) ([]*domain.Booking, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.GetConfirmedBookings")
	defer span.End()

	filter := bson.M{
		"courtId": courtId,
		"date":    date,
		"status":  string(domain.Confirmed),
	}

	opts := options.Find().SetSort(bson.D{{Key: "startTime", Value: 1}})
	cursor, err := store.bookings.Find(ctx, filter, opts)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		store.logger.Errorf("fetching confirmed bookings: %v", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeBookings(ctx, cursor)
}

// overlapFilter matches every confirmed booking on the court/day whose
// [startTime, startTime + duration/60) interval intersects [start, end).
func overlapFilter(courtId string, date time.Time, start int, end float64) bson.M {
	return bson.M{
		"courtId": courtId,
		"date":    date,
		"status":  string(domain.Confirmed),
		"$expr": bson.M{
			"$and": bson.A{
				bson.M{"$lt": bson.A{"$startTime", end}},
				bson.M{"$gt": bson.A{
					bson.M{"$add": bson.A{"$startTime", bson.M{"$divide": bson.A{"$duration", 60}}}},
					start,
				}},
			},
		},
	}
}

func (store *BookingMongoDBStore) Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.Insert")
	defer span.End()

	booking.ID = primitive.NewObjectID()

	session, err := store.client.StartSession()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer session.EndSession(ctx)

	end := domain.SlotEndHour(booking.StartTime, booking.Duration)

	// The overlap check and the insert run in one transaction: two clients
	// racing for the same slot serialize here instead of both passing a
	// stale client-side availability read.
	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		count, err := store.bookings.CountDocuments(sc,
			overlapFilter(booking.CourtId, booking.Date, booking.StartTime, end))
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, errors.New(errors.Conflict, errors.SlotTakenError)
		}

		return store.bookings.InsertOne(sc, booking)
	})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		if mongo.IsDuplicateKeyError(err) {
			return nil, errors.New(errors.Conflict, errors.SlotTakenError)
		}
		return nil, err
	}

	return booking, nil
}

func (store *BookingMongoDBStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.Get")
	defer span.End()

	var booking domain.Booking
	err := store.bookings.FindOne(ctx, bson.M{"_id": id}).Decode(&booking)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.NotFound, errors.BookingNotFoundError)
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &booking, nil
}

func (store *BookingMongoDBStore) GetByUser(ctx context.Context, userId string) ([]*domain.Booking, error) {
	ctx, span := store.tracer.Start(ctx, "BookingStore.GetByUser")
	defer span.End()

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}, {Key: "startTime", Value: -1}})
	cursor, err := store.bookings.Find(ctx, bson.M{"userId": userId}, opts)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer cursor.Close(ctx)

	return decodeBookings(ctx, cursor)
}

func (store *BookingMongoDBStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.BookingStatus) error {
	ctx, span := store.tracer.Start(ctx, "BookingStore.UpdateStatus")
	defer span.End()

	result, err := store.bookings.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": string(status)}})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New(errors.NotFound, errors.BookingNotFoundError)
	}
	return nil
}

func decodeBookings(ctx context.Context, cursor *mongo.Cursor) ([]*domain.Booking, error) {
	bookings := []*domain.Booking{}
	for cursor.Next(ctx) {
		var booking domain.Booking
		if err := cursor.Decode(&booking); err != nil {
			return nil, err
		}
		bookings = append(bookings, &booking)
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return bookings, nil
}
