package store

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"padel_service/domain"
	"padel_service/errors"
)

const OPEN_MATCH_COLLECTION = "openMatches"

type OpenMatchMongoDBStore struct {
	matches *mongo.Collection
	tracer  trace.Tracer
}

func NewOpenMatchMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.OpenMatchStore {
	matches := client.Database(DATABASE).Collection(OPEN_MATCH_COLLECTION)
	return &OpenMatchMongoDBStore{
		matches: matches,
		tracer:  tracer,
	}
}

func (store *OpenMatchMongoDBStore) Insert(ctx context.Context, match *domain.OpenMatch) (*domain.OpenMatch, error) {
	ctx, span := store.tracer.Start(ctx, "OpenMatchStore.Insert")
	defer span.End()

	match.ID = primitive.NewObjectID()
	_, err := store.matches.InsertOne(ctx, match)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return match, nil
}

func (store *OpenMatchMongoDBStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.OpenMatch, error) {
	ctx, span := store.tracer.Start(ctx, "OpenMatchStore.Get")
	defer span.End()

	var match domain.OpenMatch
	err := store.matches.FindOne(ctx, bson.M{"_id": id}).Decode(&match)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.NotFound, errors.MatchNotFoundError)
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &match, nil
}

func (store *OpenMatchMongoDBStore) GetOpen(ctx context.Context) ([]*domain.OpenMatch, error) {
	ctx, span := store.tracer.Start(ctx, "OpenMatchStore.GetOpen")
	defer span.End()

	opts := options.Find().SetSort(bson.D{{Key: "timeSlot", Value: 1}})
	cursor, err := store.matches.Find(ctx, bson.M{"status": string(domain.MatchOpen)}, opts)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer cursor.Close(ctx)

	matches := []*domain.OpenMatch{}
	for cursor.Next(ctx) {
		var match domain.OpenMatch
		if err := cursor.Decode(&match); err != nil {
			return nil, err
		}
		matches = append(matches, &match)
	}
	return matches, cursor.Err()
}

// AddPlayer pushes the user onto the players list with the whole join guard
// inside the update filter, so concurrent joins of the last seat cannot both
// succeed.
func (store *OpenMatchMongoDBStore) AddPlayer(ctx context.Context, id primitive.ObjectID, userId string) error {
	ctx, span := store.tracer.Start(ctx, "OpenMatchStore.AddPlayer")
	defer span.End()

	filter := bson.M{
		"_id":     id,
		"status":  string(domain.MatchOpen),
		"players": bson.M{"$ne": userId},
		"$expr": bson.M{
			"$lt": bson.A{bson.M{"$size": "$players"}, domain.MaxMatchPlayers},
		},
	}

	result, err := store.matches.UpdateOne(ctx, filter, bson.M{"$push": bson.M{"players": userId}})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.ModifiedCount == 0 {
		// Disambiguate for the caller: missing match vs. a join the guard
		// rejected.
		match, getErr := store.Get(ctx, id)
		if getErr != nil {
			return getErr
		}
		if match.Status != domain.MatchOpen {
			return errors.New(errors.InvalidState, errors.MatchNotOpenError)
		}
		if len(match.Players) >= domain.MaxMatchPlayers {
			return errors.New(errors.Conflict, errors.MatchFullError)
		}
		return errors.New(errors.Conflict, "User already joined this match")
	}
	return nil
}

func (store *OpenMatchMongoDBStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.MatchStatus) error {
	ctx, span := store.tracer.Start(ctx, "OpenMatchStore.UpdateStatus")
	defer span.End()

	result, err := store.matches.UpdateOne(ctx,
		bson.M{"_id": id},
		bson.M{"$set": bson.M{"status": string(status)}})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New(errors.NotFound, errors.MatchNotFoundError)
	}
	return nil
}
