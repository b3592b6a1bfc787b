package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"padel_service/domain"
	"padel_service/errors"
)

const (
	FACILITY_COLLECTION = "facilities"
	COURT_COLLECTION    = "courts"
)

type FacilityMongoDBStore struct {
	facilities *mongo.Collection
	tracer     trace.Tracer
}

func NewFacilityMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.FacilityStore {
	facilities := client.Database(DATABASE).Collection(FACILITY_COLLECTION)
	return &FacilityMongoDBStore{
		facilities: facilities,
		tracer:     tracer,
	}
}

func (store *FacilityMongoDBStore) GetAll(ctx context.Context) ([]*domain.Facility, error) {
	ctx, span := store.tracer.Start(ctx, "FacilityStore.GetAll")
	defer span.End()

	cursor, err := store.facilities.Find(ctx, bson.M{"isActive": true})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer cursor.Close(ctx)

	facilities := []*domain.Facility{}
	for cursor.Next(ctx) {
		var facility domain.Facility
		if err := cursor.Decode(&facility); err != nil {
			return nil, err
		}
		facilities = append(facilities, &facility)
	}
	return facilities, cursor.Err()
}

func (store *FacilityMongoDBStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Facility, error) {
	ctx, span := store.tracer.Start(ctx, "FacilityStore.Get")
	defer span.End()

	var facility domain.Facility
	err := store.facilities.FindOne(ctx, bson.M{"_id": id}).Decode(&facility)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.NotFound, errors.FacilityNotFoundError)
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &facility, nil
}

type CourtMongoDBStore struct {
	courts *mongo.Collection
	tracer trace.Tracer
}

func NewCourtMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.CourtStore {
	courts := client.Database(DATABASE).Collection(COURT_COLLECTION)
	return &CourtMongoDBStore{
		courts: courts,
		tracer: tracer,
	}
}

func (store *CourtMongoDBStore) GetByFacility(ctx context.Context, facilityId string) ([]*domain.Court, error) {
	ctx, span := store.tracer.Start(ctx, "CourtStore.GetByFacility")
	defer span.End()

	cursor, err := store.courts.Find(ctx, bson.M{"facilityId": facilityId, "isAvailable": true})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer cursor.Close(ctx)

	courts := []*domain.Court{}
	for cursor.Next(ctx) {
		var court domain.Court
		if err := cursor.Decode(&court); err != nil {
			return nil, err
		}
		courts = append(courts, &court)
	}
	return courts, cursor.Err()
}

func (store *CourtMongoDBStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Court, error) {
	ctx, span := store.tracer.Start(ctx, "CourtStore.Get")
	defer span.End()

	var court domain.Court
	err := store.courts.FindOne(ctx, bson.M{"_id": id}).Decode(&court)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.NotFound, errors.CourtNotFoundError)
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &court, nil
}
