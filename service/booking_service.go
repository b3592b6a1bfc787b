package application

import (
	"context"
	"log"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"padel_service/domain"
	"padel_service/errors"
)

// storeTimeout bounds every backend call so a hung request surfaces as a
// transport failure instead of leaving the caller loading forever.
const storeTimeout = 5 * time.Second

type BookingService struct {
	bookings   domain.BookingStore
	courts     domain.CourtStore
	facilities domain.FacilityStore
	users      domain.UserStore
	cache      domain.AvailabilityCache
	notifier   Notifier
	cb         *gobreaker.CircuitBreaker
	tracer     trace.Tracer
	logger     *logrus.Logger
}

func NewBookingService(
	bookings domain.BookingStore,
	courts domain.CourtStore,
	facilities domain.FacilityStore,
	users domain.UserStore,
	cache domain.AvailabilityCache,
	notifier Notifier,
	tracer trace.Tracer,
	logger *logrus.Logger,
) *BookingService {
	return &BookingService{
		bookings:   bookings,
		courts:     courts,
		facilities: facilities,
		users:      users,
		cache:      cache,
		notifier:   notifier,
		cb:         CircuitBreaker("bookingNotifier"),
		tracer:     tracer,
		logger:     logger,
	}
}

func CircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        name,
			MaxRequests: 1,
			Timeout:     10 * time.Second,
			Interval:    0,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures > 2
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				log.Printf("Circuit Breaker '%s' changed from '%s' to '%s'\n", name, from, to)
			},
		},
	)
}

type BookingRequest struct {
	FacilityId string    `json:"facilityId" validate:"required"`
	CourtId    string    `json:"courtId" validate:"required"`
	UserId     string    `json:"userId" validate:"required"`
	Date       time.Time `json:"date" validate:"required"`
	StartTime  int       `json:"startTime" validate:"min=0,max=23"`
	Duration   int       `json:"duration" validate:"required"`
}

// GetAvailableSlots computes the ascending whole-hour start times still
// bookable on the court for the given day and duration. An empty list is a
// normal answer. Results are cached briefly per (court, date, duration).
func (service *BookingService) GetAvailableSlots(ctx context.Context, courtId string, date time.Time, durationMinutes int) ([]int, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.GetAvailableSlots")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if !domain.IsAllowedDuration(durationMinutes) {
		return nil, errors.New(errors.ValidationFailure, errors.InvalidDurationError)
	}

	court, facility, err := service.lookupCourt(ctx, courtId)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if !court.IsAvailable {
		return nil, errors.New(errors.InvalidState, errors.CourtUnavailableError)
	}

	day := domain.NormalizeDate(date, facility.Timezone)

	if hours, cacheErr := service.cache.Get(ctx, courtId, day, durationMinutes); cacheErr == nil {
		return hours, nil
	}

	confirmed, err := service.bookings.GetConfirmedBookings(ctx, courtId, day)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, wrapStoreError(ctx, err)
	}

	booked := make([]domain.BookedSlot, 0, len(confirmed))
	for _, booking := range confirmed {
		booked = append(booked, domain.NewBookedSlot(booking.StartTime, booking.Duration))
	}

	hours := domain.AvailableStartHours(facility.OpeningHour, facility.ClosingHour, booked, durationMinutes)

	if cacheErr := service.cache.Post(ctx, courtId, day, durationMinutes, hours); cacheErr != nil {
		service.logger.Warnf("caching availability for court %s: %v", courtId, cacheErr)
	}

	return hours, nil
}

// CreateBooking validates the request, prices it and commits it with status
// confirmed. The slot is re-validated inside the storage transaction, so a
// stale availability screen cannot produce a double booking.
func (service *BookingService) CreateBooking(ctx context.Context, request *BookingRequest) (*domain.Booking, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.CreateBooking")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := validate.Struct(request); err != nil {
		return nil, errors.New(errors.ValidationFailure, err.Error())
	}
	if !domain.IsAllowedDuration(request.Duration) {
		return nil, errors.New(errors.ValidationFailure, errors.InvalidDurationError)
	}

	court, facility, err := service.lookupCourt(ctx, request.CourtId)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if !court.IsAvailable {
		return nil, errors.New(errors.InvalidState, errors.CourtUnavailableError)
	}
	if facility.ID.Hex() != request.FacilityId {
		return nil, errors.New(errors.ValidationFailure, "Court does not belong to the given facility")
	}

	if request.StartTime < facility.OpeningHour ||
		!domain.FitsWithinHours(request.StartTime, request.Duration, facility.ClosingHour) {
		return nil, errors.New(errors.ValidationFailure, errors.OutsideOpeningHoursError)
	}

	day := domain.NormalizeDate(request.Date, facility.Timezone)

	booking := &domain.Booking{
		FacilityId: request.FacilityId,
		CourtId:    request.CourtId,
		UserId:     request.UserId,
		Date:       day,
		StartTime:  request.StartTime,
		Duration:   request.Duration,
		Status:     domain.Confirmed,
		TotalPrice: domain.Price(request.Duration, court.PricePerHour),
	}

	created, err := service.bookings.Insert(ctx, booking)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, wrapStoreError(ctx, err)
	}

	if cacheErr := service.cache.Invalidate(ctx, created.CourtId, day); cacheErr != nil {
		service.logger.Warnf("invalidating availability cache: %v", cacheErr)
	}

	service.sendConfirmation(ctx, created, facility.Name)

	return created, nil
}

// sendConfirmation mails the booking summary behind a circuit breaker.
// Failures are logged and swallowed: the booking is already committed.
func (service *BookingService) sendConfirmation(ctx context.Context, booking *domain.Booking, facilityName string) {
	userID, err := primitive.ObjectIDFromHex(booking.UserId)
	if err != nil {
		service.logger.Warnf("confirmation mail skipped, bad user id %q", booking.UserId)
		return
	}

	_, breakerErr := service.cb.Execute(func() (interface{}, error) {
		user, err := service.users.Get(ctx, userID)
		if err != nil {
			return nil, err
		}
		return nil, service.notifier.SendBookingConfirmation(user.Email, booking, facilityName)
	})
	if breakerErr != nil {
		service.logger.Warnf("booking confirmation mail not sent: %v", breakerErr)
	}
}

func (service *BookingService) CancelBooking(ctx context.Context, id string, userId string) error {
	ctx, span := service.tracer.Start(ctx, "BookingService.CancelBooking")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	bookingID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return errors.New(errors.ValidationFailure, "Invalid booking id")
	}

	booking, err := service.bookings.Get(ctx, bookingID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return wrapStoreError(ctx, err)
	}

	if booking.UserId != userId {
		return errors.New(errors.ValidationFailure, errors.NotBookingOwnerError)
	}
	if booking.Status != domain.Confirmed && booking.Status != domain.Pending {
		return errors.New(errors.InvalidState, errors.AlreadyFinishedError)
	}

	if err := service.bookings.UpdateStatus(ctx, bookingID, domain.Cancelled); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return wrapStoreError(ctx, err)
	}

	if cacheErr := service.cache.Invalidate(ctx, booking.CourtId, booking.Date); cacheErr != nil {
		service.logger.Warnf("invalidating availability cache: %v", cacheErr)
	}

	return nil
}

func (service *BookingService) GetUserBookings(ctx context.Context, userId string) ([]*domain.Booking, error) {
	ctx, span := service.tracer.Start(ctx, "BookingService.GetUserBookings")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	bookings, err := service.bookings.GetByUser(ctx, userId)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, wrapStoreError(ctx, err)
	}
	return bookings, nil
}

func (service *BookingService) lookupCourt(ctx context.Context, courtId string) (*domain.Court, *domain.Facility, error) {
	courtID, err := primitive.ObjectIDFromHex(courtId)
	if err != nil {
		return nil, nil, errors.New(errors.ValidationFailure, "Invalid court id")
	}

	court, err := service.courts.Get(ctx, courtID)
	if err != nil {
		return nil, nil, wrapStoreError(ctx, err)
	}

	facilityID, err := primitive.ObjectIDFromHex(court.FacilityId)
	if err != nil {
		return nil, nil, errors.New(errors.ValidationFailure, "Invalid facility id")
	}

	facility, err := service.facilities.Get(ctx, facilityID)
	if err != nil {
		return nil, nil, wrapStoreError(ctx, err)
	}
	return court, facility, nil
}

// wrapStoreError keeps typed failures as they are and reclassifies context
// expiry and raw driver errors as transport failures.
func wrapStoreError(ctx context.Context, err error) error {
	if _, ok := err.(*errors.Error); ok {
		return err
	}
	if ctx.Err() == context.DeadlineExceeded {
		return errors.New(errors.TransportFailure, "Backend request timed out")
	}
	return errors.New(errors.TransportFailure, err.Error())
}
