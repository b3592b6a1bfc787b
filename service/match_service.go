package application

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"padel_service/domain"
	"padel_service/errors"
)

// Open matches come in three lengths in the creation form.
var matchDurations = []int{60, 90, 120}

type MatchService struct {
	matches    domain.OpenMatchStore
	facilities domain.FacilityStore
	tracer     trace.Tracer
	logger     *logrus.Logger
}

func NewMatchService(matches domain.OpenMatchStore, facilities domain.FacilityStore, tracer trace.Tracer, logger *logrus.Logger) *MatchService {
	return &MatchService{
		matches:    matches,
		facilities: facilities,
		tracer:     tracer,
		logger:     logger,
	}
}

type MatchRequest struct {
	CreatorId        string                  `json:"creatorId" validate:"required"`
	FacilityId       string                  `json:"facilityId" validate:"required"`
	Date             time.Time               `json:"date" validate:"required"`
	TimeSlot         time.Time               `json:"timeSlot" validate:"required"`
	Duration         int                     `json:"duration" validate:"required"`
	MatchType        domain.MatchType        `json:"matchType" validate:"required"`
	GenderPreference domain.GenderPreference `json:"genderPreference" validate:"required"`
}

func validMatchType(t domain.MatchType) bool {
	return t == domain.Friendly || t == domain.Competitive
}

func validGenderPreference(p domain.GenderPreference) bool {
	switch p {
	case domain.AllPlayers, domain.MixedTeams, domain.MenOnly, domain.WomenOnly:
		return true
	}
	return false
}

// Create opens a match with the creator as its first player.
func (service *MatchService) Create(ctx context.Context, request *MatchRequest) (*domain.OpenMatch, error) {
	ctx, span := service.tracer.Start(ctx, "MatchService.Create")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := validate.Struct(request); err != nil {
		return nil, errors.New(errors.ValidationFailure, err.Error())
	}

	allowed := false
	for _, d := range matchDurations {
		if d == request.Duration {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, errors.New(errors.ValidationFailure, "Match duration must be 60, 90 or 120 minutes")
	}
	if !validMatchType(request.MatchType) {
		return nil, errors.New(errors.ValidationFailure, "Unknown match type")
	}
	if !validGenderPreference(request.GenderPreference) {
		return nil, errors.New(errors.ValidationFailure, "Unknown gender preference")
	}

	facilityID, err := primitive.ObjectIDFromHex(request.FacilityId)
	if err != nil {
		return nil, errors.New(errors.ValidationFailure, "Invalid facility id")
	}
	facility, err := service.facilities.Get(ctx, facilityID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, wrapStoreError(ctx, err)
	}

	startHour := request.TimeSlot.Hour()
	if startHour < facility.OpeningHour ||
		!domain.FitsWithinHours(startHour, request.Duration, facility.ClosingHour) {
		return nil, errors.New(errors.ValidationFailure, errors.OutsideOpeningHoursError)
	}

	match := &domain.OpenMatch{
		CreatorId:        request.CreatorId,
		FacilityId:       request.FacilityId,
		FacilityName:     facility.Name,
		Date:             domain.NormalizeDate(request.Date, facility.Timezone),
		TimeSlot:         request.TimeSlot,
		Duration:         request.Duration,
		MatchType:        request.MatchType,
		GenderPreference: request.GenderPreference,
		Status:           domain.MatchOpen,
		Players:          []string{request.CreatorId},
		CreatedAt:        time.Now(),
	}

	created, err := service.matches.Insert(ctx, match)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, wrapStoreError(ctx, err)
	}
	return created, nil
}

func (service *MatchService) GetOpen(ctx context.Context) ([]*domain.OpenMatch, error) {
	ctx, span := service.tracer.Start(ctx, "MatchService.GetOpen")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	matches, err := service.matches.GetOpen(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, wrapStoreError(ctx, err)
	}
	return matches, nil
}

func (service *MatchService) Join(ctx context.Context, id string, userId string) error {
	ctx, span := service.tracer.Start(ctx, "MatchService.Join")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	matchID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New(errors.ValidationFailure, "Invalid match id")
	}

	if err := service.matches.AddPlayer(ctx, matchID, userId); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return wrapStoreError(ctx, err)
	}
	return nil
}

// Cancel soft-deletes by flipping the status; the document stays for
// history.
func (service *MatchService) Cancel(ctx context.Context, id string, userId string) error {
	ctx, span := service.tracer.Start(ctx, "MatchService.Cancel")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	matchID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New(errors.ValidationFailure, "Invalid match id")
	}

	match, err := service.matches.Get(ctx, matchID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return wrapStoreError(ctx, err)
	}

	if match.CreatorId != userId {
		return errors.New(errors.ValidationFailure, errors.NotMatchCreatorError)
	}
	if match.Status != domain.MatchOpen {
		return errors.New(errors.InvalidState, errors.MatchNotOpenError)
	}

	if err := service.matches.UpdateStatus(ctx, matchID, domain.MatchCancelled); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return wrapStoreError(ctx, err)
	}
	return nil
}
