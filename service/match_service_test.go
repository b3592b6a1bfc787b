package application

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"padel_service/domain"
	"padel_service/errors"
)

type matchFixture struct {
	service  *MatchService
	matches  *fakeMatchStore
	facility *domain.Facility
}

func newMatchFixture() *matchFixture {
	facility := &domain.Facility{
		ID:          primitive.NewObjectID(),
		Name:        "Padel Central",
		OpeningHour: 7,
		ClosingHour: 22,
		IsActive:    true,
	}
	matches := &fakeMatchStore{}

	service := NewMatchService(
		matches,
		&fakeFacilityStore{facilities: map[primitive.ObjectID]*domain.Facility{facility.ID: facility}},
		testTracer,
		testLogger(),
	)

	return &matchFixture{service: service, matches: matches, facility: facility}
}

func (f *matchFixture) request(creatorId string) *MatchRequest {
	return &MatchRequest{
		CreatorId:        creatorId,
		FacilityId:       f.facility.ID.Hex(),
		Date:             time.Date(2026, time.September, 12, 0, 0, 0, 0, time.UTC),
		TimeSlot:         time.Date(2026, time.September, 12, 18, 0, 0, 0, time.UTC),
		Duration:         90,
		MatchType:        domain.Friendly,
		GenderPreference: domain.AllPlayers,
	}
}

func TestCreateMatch(t *testing.T) {
	f := newMatchFixture()
	creator := primitive.NewObjectID().Hex()

	match, err := f.service.Create(context.Background(), f.request(creator))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if match.Status != domain.MatchOpen {
		t.Errorf("status = %q, want open", match.Status)
	}
	if len(match.Players) != 1 || match.Players[0] != creator {
		t.Errorf("players = %v, want the creator alone", match.Players)
	}
	if match.FacilityName != f.facility.Name {
		t.Errorf("facility name %q not denormalized onto the match", match.FacilityName)
	}
}

func TestCreateMatchRejectsBadDuration(t *testing.T) {
	f := newMatchFixture()

	request := f.request(primitive.NewObjectID().Hex())
	request.Duration = 30

	_, err := f.service.Create(context.Background(), request)
	if errors.KindOf(err) != errors.ValidationFailure {
		t.Errorf("30 minute match should fail validation, got %v", err)
	}
}

func TestCreateMatchOutsideOpeningHours(t *testing.T) {
	f := newMatchFixture()

	request := f.request(primitive.NewObjectID().Hex())
	request.TimeSlot = time.Date(2026, time.September, 12, 21, 0, 0, 0, time.UTC)
	request.Duration = 120

	_, err := f.service.Create(context.Background(), request)
	if errors.KindOf(err) != errors.ValidationFailure {
		t.Errorf("match running past closing should fail validation, got %v", err)
	}
}

func TestJoinMatch(t *testing.T) {
	f := newMatchFixture()
	creator := primitive.NewObjectID().Hex()

	match, err := f.service.Create(context.Background(), f.request(creator))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	joiner := primitive.NewObjectID().Hex()
	if err := f.service.Join(context.Background(), match.ID.Hex(), joiner); err != nil {
		t.Fatalf("Join: %v", err)
	}

	// Joining twice is a conflict.
	err = f.service.Join(context.Background(), match.ID.Hex(), joiner)
	if errors.KindOf(err) != errors.Conflict {
		t.Errorf("double join should conflict, got %v", err)
	}
}

func TestJoinMatchFull(t *testing.T) {
	f := newMatchFixture()
	creator := primitive.NewObjectID().Hex()

	match, err := f.service.Create(context.Background(), f.request(creator))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	for i := 1; i < domain.MaxMatchPlayers; i++ {
		if err := f.service.Join(context.Background(), match.ID.Hex(), primitive.NewObjectID().Hex()); err != nil {
			t.Fatalf("join %d: %v", i, err)
		}
	}

	err = f.service.Join(context.Background(), match.ID.Hex(), primitive.NewObjectID().Hex())
	if errors.KindOf(err) != errors.Conflict {
		t.Errorf("fifth player should be rejected, got %v", err)
	}
}

func TestCancelMatch(t *testing.T) {
	f := newMatchFixture()
	creator := primitive.NewObjectID().Hex()

	match, err := f.service.Create(context.Background(), f.request(creator))
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	// Only the creator may cancel.
	err = f.service.Cancel(context.Background(), match.ID.Hex(), primitive.NewObjectID().Hex())
	if errors.KindOf(err) != errors.ValidationFailure {
		t.Errorf("cancel by non-creator should fail validation, got %v", err)
	}

	if err := f.service.Cancel(context.Background(), match.ID.Hex(), creator); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	// Cancelled matches leave the open list and reject joins.
	open, err := f.service.GetOpen(context.Background())
	if err != nil {
		t.Fatalf("GetOpen: %v", err)
	}
	if len(open) != 0 {
		t.Errorf("cancelled match still listed as open")
	}

	err = f.service.Join(context.Background(), match.ID.Hex(), primitive.NewObjectID().Hex())
	if errors.KindOf(err) != errors.InvalidState {
		t.Errorf("joining a cancelled match should be an invalid state, got %v", err)
	}

	err = f.service.Cancel(context.Background(), match.ID.Hex(), creator)
	if errors.KindOf(err) != errors.InvalidState {
		t.Errorf("cancelling twice should be an invalid state, got %v", err)
	}
}
