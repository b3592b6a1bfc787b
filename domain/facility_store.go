package domain

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type FacilityStore interface {
	GetAll(ctx context.Context) ([]*Facility, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Facility, error)
}

type CourtStore interface {
	GetByFacility(ctx context.Context, facilityId string) ([]*Court, error)
	Get(ctx context.Context, id primitive.ObjectID) (*Court, error)
}
