package application

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/trace"

	"padel_service/domain"
	"padel_service/errors"
)

var testTracer = trace.NewNoopTracerProvider().Tracer("")

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

type fakeBookingStore struct {
	bookings []*domain.Booking
	failWith error
}

func (s *fakeBookingStore) GetConfirmedBookings(ctx context.Context, courtId string, date time.Time) ([]*domain.Booking, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	confirmed := []*domain.Booking{}
	for _, booking := range s.bookings {
		if booking.CourtId == courtId && booking.Date.Equal(date) && booking.Status == domain.Confirmed {
			confirmed = append(confirmed, booking)
		}
	}
	return confirmed, nil
}

func (s *fakeBookingStore) Insert(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if s.failWith != nil {
		return nil, s.failWith
	}
	for _, existing := range s.bookings {
		if existing.CourtId != booking.CourtId || !existing.Date.Equal(booking.Date) {
			continue
		}
		if existing.Status != domain.Confirmed {
			continue
		}
		if domain.Overlaps(booking.StartTime, booking.Duration, domain.NewBookedSlot(existing.StartTime, existing.Duration)) {
			return nil, errors.New(errors.Conflict, errors.SlotTakenError)
		}
	}
	booking.ID = primitive.NewObjectID()
	s.bookings = append(s.bookings, booking)
	return booking, nil
}

func (s *fakeBookingStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Booking, error) {
	for _, booking := range s.bookings {
		if booking.ID == id {
			return booking, nil
		}
	}
	return nil, errors.New(errors.NotFound, errors.BookingNotFoundError)
}

func (s *fakeBookingStore) GetByUser(ctx context.Context, userId string) ([]*domain.Booking, error) {
	owned := []*domain.Booking{}
	for _, booking := range s.bookings {
		if booking.UserId == userId {
			owned = append(owned, booking)
		}
	}
	return owned, nil
}

func (s *fakeBookingStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.BookingStatus) error {
	for _, booking := range s.bookings {
		if booking.ID == id {
			booking.Status = status
			return nil
		}
	}
	return errors.New(errors.NotFound, errors.BookingNotFoundError)
}

type fakeCourtStore struct {
	courts map[primitive.ObjectID]*domain.Court
}

func (s *fakeCourtStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Court, error) {
	if court, ok := s.courts[id]; ok {
		return court, nil
	}
	return nil, errors.New(errors.NotFound, errors.CourtNotFoundError)
}

func (s *fakeCourtStore) GetByFacility(ctx context.Context, facilityId string) ([]*domain.Court, error) {
	courts := []*domain.Court{}
	for _, court := range s.courts {
		if court.FacilityId == facilityId {
			courts = append(courts, court)
		}
	}
	return courts, nil
}

type fakeFacilityStore struct {
	facilities map[primitive.ObjectID]*domain.Facility
}

func (s *fakeFacilityStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.Facility, error) {
	if facility, ok := s.facilities[id]; ok {
		return facility, nil
	}
	return nil, errors.New(errors.NotFound, errors.FacilityNotFoundError)
}

func (s *fakeFacilityStore) GetAll(ctx context.Context) ([]*domain.Facility, error) {
	all := []*domain.Facility{}
	for _, facility := range s.facilities {
		all = append(all, facility)
	}
	return all, nil
}

type fakeUserStore struct {
	users map[primitive.ObjectID]*domain.User
}

func (s *fakeUserStore) Insert(ctx context.Context, user *domain.User) (*domain.User, error) {
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	s.users[user.ID] = user
	return user, nil
}

func (s *fakeUserStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, errors.New(errors.NotFound, "User not found")
}

func (s *fakeUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (s *fakeUserStore) Update(ctx context.Context, user *domain.User) error {
	s.users[user.ID] = user
	return nil
}

type fakeAvailabilityCache struct {
	entries       map[string][]int
	invalidations int
}

func newFakeAvailabilityCache() *fakeAvailabilityCache {
	return &fakeAvailabilityCache{entries: map[string][]int{}}
}

func cacheKey(courtId string, date time.Time, durationMinutes int) string {
	return fmt.Sprintf("%s:%s:%d", courtId, date.UTC().Format("2006-01-02"), durationMinutes)
}

func (c *fakeAvailabilityCache) Get(ctx context.Context, courtId string, date time.Time, durationMinutes int) ([]int, error) {
	if hours, ok := c.entries[cacheKey(courtId, date, durationMinutes)]; ok {
		return hours, nil
	}
	return nil, fmt.Errorf("cache miss")
}

func (c *fakeAvailabilityCache) Post(ctx context.Context, courtId string, date time.Time, durationMinutes int, hours []int) error {
	c.entries[cacheKey(courtId, date, durationMinutes)] = hours
	return nil
}

func (c *fakeAvailabilityCache) Invalidate(ctx context.Context, courtId string, date time.Time) error {
	c.invalidations++
	for _, duration := range domain.AllowedDurations {
		delete(c.entries, cacheKey(courtId, date, duration))
	}
	return nil
}

type fakeNotifier struct {
	verifications int
	confirmations int
}

func (n *fakeNotifier) SendVerificationMail(token uuid.UUID, email string) error {
	n.verifications++
	return nil
}

func (n *fakeNotifier) SendBookingConfirmation(email string, booking *domain.Booking, facilityName string) error {
	n.confirmations++
	return nil
}

type fakeMatchStore struct {
	matches []*domain.OpenMatch
}

func (s *fakeMatchStore) Insert(ctx context.Context, match *domain.OpenMatch) (*domain.OpenMatch, error) {
	match.ID = primitive.NewObjectID()
	s.matches = append(s.matches, match)
	return match, nil
}

func (s *fakeMatchStore) Get(ctx context.Context, id primitive.ObjectID) (*domain.OpenMatch, error) {
	for _, match := range s.matches {
		if match.ID == id {
			return match, nil
		}
	}
	return nil, errors.New(errors.NotFound, errors.MatchNotFoundError)
}

func (s *fakeMatchStore) GetOpen(ctx context.Context) ([]*domain.OpenMatch, error) {
	open := []*domain.OpenMatch{}
	for _, match := range s.matches {
		if match.Status == domain.MatchOpen {
			open = append(open, match)
		}
	}
	return open, nil
}

func (s *fakeMatchStore) AddPlayer(ctx context.Context, id primitive.ObjectID, userId string) error {
	match, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if match.Status != domain.MatchOpen {
		return errors.New(errors.InvalidState, errors.MatchNotOpenError)
	}
	for _, player := range match.Players {
		if player == userId {
			return errors.New(errors.Conflict, "User already joined this match")
		}
	}
	if len(match.Players) >= domain.MaxMatchPlayers {
		return errors.New(errors.Conflict, errors.MatchFullError)
	}
	match.Players = append(match.Players, userId)
	return nil
}

func (s *fakeMatchStore) UpdateStatus(ctx context.Context, id primitive.ObjectID, status domain.MatchStatus) error {
	match, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	match.Status = status
	return nil
}
