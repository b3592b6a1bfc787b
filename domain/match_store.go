package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type OpenMatchStore interface {
	Insert(ctx context.Context, match *OpenMatch) (*OpenMatch, error)
	Get(ctx context.Context, id primitive.ObjectID) (*OpenMatch, error)
	GetOpen(ctx context.Context) ([]*OpenMatch, error)

	// AddPlayer joins a user onto the match only while the match is still
	// open, the user is not already in and the player list holds fewer than
	// MaxMatchPlayers entries. The guard is part of the update filter, not a
	// separate read.
	AddPlayer(ctx context.Context, id primitive.ObjectID, userId string) error

	UpdateStatus(ctx context.Context, id primitive.ObjectID, status MatchStatus) error
}
