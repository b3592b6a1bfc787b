package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserStore interface {
	Insert(ctx context.Context, user *User) (*User, error)
	Get(ctx context.Context, id primitive.ObjectID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, user *User) error
}

type CredentialsStore interface {
	Register(ctx context.Context, credentials *Credentials) error
	GetByEmail(ctx context.Context, email string) (*Credentials, error)
	Update(ctx context.Context, credentials *Credentials) error
}
