package application

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"padel_service/domain"
	"padel_service/errors"
)

type FacilityService struct {
	facilities domain.FacilityStore
	courts     domain.CourtStore
	tracer     trace.Tracer
}

func NewFacilityService(facilities domain.FacilityStore, courts domain.CourtStore, tracer trace.Tracer) *FacilityService {
	return &FacilityService{
		facilities: facilities,
		courts:     courts,
		tracer:     tracer,
	}
}

func (service *FacilityService) GetAll(ctx context.Context) ([]*domain.Facility, error) {
	ctx, span := service.tracer.Start(ctx, "FacilityService.GetAll")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	facilities, err := service.facilities.GetAll(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, wrapStoreError(ctx, err)
	}
	return facilities, nil
}

func (service *FacilityService) Get(ctx context.Context, id string) (*domain.Facility, error) {
	ctx, span := service.tracer.Start(ctx, "FacilityService.Get")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	facilityID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New(errors.ValidationFailure, "Invalid facility id")
	}

	facility, err := service.facilities.Get(ctx, facilityID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, wrapStoreError(ctx, err)
	}
	return facility, nil
}

func (service *FacilityService) GetCourts(ctx context.Context, facilityId string) ([]*domain.Court, error) {
	ctx, span := service.tracer.Start(ctx, "FacilityService.GetCourts")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if _, err := service.Get(ctx, facilityId); err != nil {
		return nil, err
	}

	courts, err := service.courts.GetByFacility(ctx, facilityId)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, wrapStoreError(ctx, err)
	}
	return courts, nil
}
