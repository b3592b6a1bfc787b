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
	USER_COLLECTION        = "users"
	CREDENTIALS_COLLECTION = "credentials"
)

type UserMongoDBStore struct {
	users  *mongo.Collection
	tracer trace.Tracer
}

func NewUserMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.UserStore {
	users := client.Database(DATABASE).Collection(USER_COLLECTION)
	return &UserMongoDBStore{
		users:  users,
		tracer: tracer,
	}
}

func (store *UserMongoDBStore) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserStore.Insert")
	defer span.End()

	result, err := store.users.InsertOne(ctx, user)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	user.ID = result.InsertedID.(primitive.ObjectID)
	return user, nil
}

func (store *UserMongoDBStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserStore.Get")
	defer span.End()

	var user domain.User
	err := store.users.FindOne(ctx, bson.M{"_id": id}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.NotFound, "User not found")
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &user, nil
}

func (store *UserMongoDBStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	ctx, span := store.tracer.Start(ctx, "UserStore.GetByEmail")
	defer span.End()

	var user domain.User
	err := store.users.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err == mongo.ErrNoDocuments {
		return nil, errors.New(errors.NotFound, "User not found")
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &user, nil
}

func (store *UserMongoDBStore) Update(ctx context.Context, user *domain.User) error {
	ctx, span := store.tracer.Start(ctx, "UserStore.Update")
	defer span.End()

	result, err := store.users.UpdateOne(ctx, bson.M{"_id": user.ID}, bson.M{"$set": user})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New(errors.NotFound, "User not found")
	}
	return nil
}

type CredentialsMongoDBStore struct {
	credentials *mongo.Collection
	tracer      trace.Tracer
}

func NewCredentialsMongoDBStore(client *mongo.Client, tracer trace.Tracer) domain.CredentialsStore {
	credentials := client.Database(DATABASE).Collection(CREDENTIALS_COLLECTION)
	return &CredentialsMongoDBStore{
		credentials: credentials,
		tracer:      tracer,
	}
}

func (store *CredentialsMongoDBStore) Register(ctx context.Context, credentials *domain.Credentials) error {
	ctx, span := store.tracer.Start(ctx, "CredentialsStore.Register")
	defer span.End()

	_, err := store.credentials.InsertOne(ctx, credentials)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
	}
	return err
}

func (store *CredentialsMongoDBStore) GetByEmail(ctx context.Context, email string) (*domain.Credentials, error) {
	ctx, span := store.tracer.Start(ctx, "CredentialsStore.GetByEmail")
	defer span.End()

	var credentials domain.Credentials
	err := store.credentials.FindOne(ctx, bson.M{"email": email}).Decode(&credentials)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &credentials, nil
}

func (store *CredentialsMongoDBStore) Update(ctx context.Context, credentials *domain.Credentials) error {
	ctx, span := store.tracer.Start(ctx, "CredentialsStore.Update")
	defer span.End()

	result, err := store.credentials.UpdateOne(ctx, bson.M{"_id": credentials.ID}, bson.M{"$set": credentials})
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if result.MatchedCount == 0 {
		return errors.New(errors.NotFound, "Credentials not found")
	}
	return nil
}
