package application

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"padel_service/domain"
	"padel_service/errors"
)

type UserService struct {
	users  domain.UserStore
	tracer trace.Tracer
	logger *logrus.Logger
}

func NewUserService(users domain.UserStore, tracer trace.Tracer, logger *logrus.Logger) *UserService {
	return &UserService{
		users:  users,
		tracer: tracer,
		logger: logger,
	}
}

type AssessmentRequest struct {
	PlayingHand            domain.PlayingHand      `json:"playingHand" validate:"required"`
	PreferredPosition      domain.CourtPosition    `json:"preferredPosition" validate:"required"`
	PadelExperience        domain.ExperienceLevel  `json:"padelExperience" validate:"required"`
	RacketSportsExperience domain.ExperienceLevel  `json:"racketSportsExperience" validate:"required"`
	PlayingFrequency       domain.PlayingFrequency `json:"playingFrequency" validate:"required"`
}

func (service *UserService) Get(ctx context.Context, id string) (*domain.User, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.Get")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	userID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, errors.New(errors.ValidationFailure, "Invalid user id")
	}

	user, err := service.users.Get(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, wrapStoreError(ctx, err)
	}
	return user, nil
}

// CompleteAssessment stores the playing-style answers and the derived
// numeric rating. The rating is computed exactly once, here; nothing in the
// system recalculates it later.
func (service *UserService) CompleteAssessment(ctx context.Context, id string, request *AssessmentRequest) (*domain.User, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.CompleteAssessment")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := validate.Struct(request); err != nil {
		return nil, errors.New(errors.ValidationFailure, err.Error())
	}
	if !request.PadelExperience.Valid() || !request.RacketSportsExperience.Valid() {
		return nil, errors.New(errors.ValidationFailure, "Unknown experience level")
	}
	if !request.PlayingFrequency.Valid() {
		return nil, errors.New(errors.ValidationFailure, "Unknown playing frequency")
	}

	user, err := service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	user.PlayingHand = request.PlayingHand
	user.PreferredPosition = request.PreferredPosition
	user.PadelExperience = request.PadelExperience
	user.RacketSportsExperience = request.RacketSportsExperience
	user.PlayingFrequency = request.PlayingFrequency
	user.NumericRating = domain.InitialRating(
		request.PadelExperience,
		request.RacketSportsExperience,
		request.PlayingFrequency,
	)

	if err := service.users.Update(ctx, user); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, wrapStoreError(ctx, err)
	}
	return user, nil
}

type ProfileUpdate struct {
	FirstName   string        `json:"firstName"`
	LastName    string        `json:"lastName"`
	PhoneNumber string        `json:"phoneNumber"`
	Gender      domain.Gender `json:"gender"`
	Age         int           `json:"age"`
}

func (service *UserService) UpdateProfile(ctx context.Context, id string, update *ProfileUpdate) (*domain.User, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.UpdateProfile")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if update.Age < 0 || update.Age >= 100 {
		return nil, errors.New(errors.ValidationFailure, "Age should be a number over 0 and less than 100")
	}
	if update.PhoneNumber != "" && !phoneRegex.MatchString(update.PhoneNumber) {
		return nil, errors.New(errors.ValidationFailure, "Invalid phone number format")
	}

	user, err := service.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.FirstName != "" {
		user.FirstName = update.FirstName
	}
	if update.LastName != "" {
		user.LastName = update.LastName
	}
	if update.PhoneNumber != "" {
		user.PhoneNumber = update.PhoneNumber
	}
	if update.Gender != "" {
		user.Gender = update.Gender
	}
	if update.Age != 0 {
		user.Age = update.Age
	}

	if err := service.users.Update(ctx, user); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, wrapStoreError(ctx, err)
	}
	return user, nil
}
