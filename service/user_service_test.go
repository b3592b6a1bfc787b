package application

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"padel_service/domain"
	"padel_service/errors"
)

func newUserFixture() (*UserService, *domain.User) {
	user := &domain.User{
		ID:        primitive.NewObjectID(),
		Email:     "player@example.com",
		FirstName: "Ana",
		LastName:  "Lovric",
	}
	store := &fakeUserStore{users: map[primitive.ObjectID]*domain.User{user.ID: user}}
	return NewUserService(store, testTracer, testLogger()), user
}

func TestCompleteAssessment(t *testing.T) {
	service, user := newUserFixture()

	if user.ProfileComplete() {
		t.Fatal("fresh user should not have a complete profile")
	}

	updated, err := service.CompleteAssessment(context.Background(), user.ID.Hex(), &AssessmentRequest{
		PlayingHand:            domain.RightHand,
		PreferredPosition:      domain.Backhand,
		PadelExperience:        domain.OneToTwo,
		RacketSportsExperience: domain.NoExperience,
		PlayingFrequency:       domain.Occasionally,
	})
	if err != nil {
		t.Fatalf("CompleteAssessment: %v", err)
	}

	if updated.NumericRating != 2.83 {
		t.Errorf("rating = %v, want 2.83", updated.NumericRating)
	}
	if !updated.ProfileComplete() {
		t.Error("profile should be complete after the assessment")
	}
}

func TestCompleteAssessmentRejectsUnknownAnswers(t *testing.T) {
	service, user := newUserFixture()

	_, err := service.CompleteAssessment(context.Background(), user.ID.Hex(), &AssessmentRequest{
		PlayingHand:            domain.RightHand,
		PreferredPosition:      domain.Backhand,
		PadelExperience:        domain.ExperienceLevel("a decade"),
		RacketSportsExperience: domain.NoExperience,
		PlayingFrequency:       domain.Occasionally,
	})
	if errors.KindOf(err) != errors.ValidationFailure {
		t.Errorf("free-form experience answer should fail validation, got %v", err)
	}
}

func TestUpdateProfilePartial(t *testing.T) {
	service, user := newUserFixture()

	updated, err := service.UpdateProfile(context.Background(), user.ID.Hex(), &ProfileUpdate{
		PhoneNumber: "+38169123456",
	})
	if err != nil {
		t.Fatalf("UpdateProfile: %v", err)
	}

	if updated.PhoneNumber != "+38169123456" {
		t.Errorf("phone = %q, not updated", updated.PhoneNumber)
	}
	if updated.FirstName != "Ana" {
		t.Errorf("first name %q clobbered by a partial update", updated.FirstName)
	}
}

func TestUpdateProfileBadPhone(t *testing.T) {
	service, user := newUserFixture()

	_, err := service.UpdateProfile(context.Background(), user.ID.Hex(), &ProfileUpdate{
		PhoneNumber: "not-a-number",
	})
	if errors.KindOf(err) != errors.ValidationFailure {
		t.Errorf("bad phone number should fail validation, got %v", err)
	}
}

func TestGetUserBadId(t *testing.T) {
	service, _ := newUserFixture()

	_, err := service.Get(context.Background(), "not-an-object-id")
	if errors.KindOf(err) != errors.ValidationFailure {
		t.Errorf("malformed id should fail validation, got %v", err)
	}
}
