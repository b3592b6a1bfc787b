package application

import (
	"context"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"padel_service/domain"
	"padel_service/errors"
)

type fakeCredentialsStore struct {
	credentials map[string]*domain.Credentials
}

func (s *fakeCredentialsStore) Register(ctx context.Context, credentials *domain.Credentials) error {
	s.credentials[credentials.Email] = credentials
	return nil
}

func (s *fakeCredentialsStore) GetByEmail(ctx context.Context, email string) (*domain.Credentials, error) {
	return s.credentials[email], nil
}

func (s *fakeCredentialsStore) Update(ctx context.Context, credentials *domain.Credentials) error {
	s.credentials[credentials.Email] = credentials
	return nil
}

type fakeAuthCache struct {
	values map[string]string
}

func (c *fakeAuthCache) PostCacheData(ctx context.Context, key string, value string) error {
	c.values[key] = value
	return nil
}

func (c *fakeAuthCache) GetCachedValue(ctx context.Context, key string) (string, error) {
	if value, ok := c.values[key]; ok {
		return value, nil
	}
	return "", errors.New(errors.NotFound, errors.ExpiredTokenError)
}

func (c *fakeAuthCache) DelCachedValue(ctx context.Context, key string) error {
	delete(c.values, key)
	return nil
}

type authFixture struct {
	service     *AuthService
	credentials *fakeCredentialsStore
	users       *fakeUserStore
	cache       *fakeAuthCache
	notifier    *fakeNotifier
}

func newAuthFixture() *authFixture {
	credentials := &fakeCredentialsStore{credentials: map[string]*domain.Credentials{}}
	users := &fakeUserStore{users: map[primitive.ObjectID]*domain.User{}}
	cache := &fakeAuthCache{values: map[string]string{}}
	notifier := &fakeNotifier{}

	service := NewAuthService(credentials, users, cache, notifier, testTracer, testLogger())
	return &authFixture{
		service:     service,
		credentials: credentials,
		users:       users,
		cache:       cache,
		notifier:    notifier,
	}
}

func registerRequest() *RegisterRequest {
	return &RegisterRequest{
		Email:     "ana@example.com",
		Password:  "Lozinka123",
		FirstName: "Ana",
		LastName:  "Lovric",
		Age:       27,
	}
}

func TestRegister(t *testing.T) {
	f := newAuthFixture()

	userId, err := f.service.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if userId == "" {
		t.Fatal("Register returned no user id")
	}

	stored := f.credentials.credentials["ana@example.com"]
	if stored == nil {
		t.Fatal("credentials not stored")
	}
	if stored.Verified {
		t.Error("fresh account must not be verified")
	}
	if stored.Password == "Lozinka123" {
		t.Error("password stored in plain text")
	}
	if f.notifier.verifications != 1 {
		t.Errorf("verification mails sent = %d, want 1", f.notifier.verifications)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	f := newAuthFixture()

	for _, password := range []string{"short1A", "alllowercase1", "ALLUPPERCASE1", "NoDigitsHere"} {
		request := registerRequest()
		request.Password = password

		_, err := f.service.Register(context.Background(), request)
		if errors.KindOf(err) != errors.ValidationFailure {
			t.Errorf("password %q should be rejected, got %v", password, err)
		}
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	f := newAuthFixture()

	if _, err := f.service.Register(context.Background(), registerRequest()); err != nil {
		t.Fatalf("first registration: %v", err)
	}

	_, err := f.service.Register(context.Background(), registerRequest())
	if errors.KindOf(err) != errors.ValidationFailure {
		t.Errorf("duplicate email should be rejected, got %v", err)
	}
}

func TestAccountConfirmationAndLogin(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-signing-key")
	f := newAuthFixture()

	userId, err := f.service.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}

	// Login before verification is refused.
	_, err = f.service.Login(context.Background(), "ana@example.com", "Lozinka123")
	if errors.KindOf(err) != errors.InvalidState {
		t.Fatalf("unverified login should be an invalid state, got %v", err)
	}

	mailToken := f.cache.values[userId]
	if mailToken == "" {
		t.Fatal("no verification token cached")
	}

	// Wrong token first.
	err = f.service.AccountConfirmation(context.Background(), &AccountConfirmation{
		UserToken: userId,
		MailToken: "bogus",
	})
	if errors.KindOf(err) != errors.ValidationFailure {
		t.Fatalf("wrong mail token should fail validation, got %v", err)
	}

	if err := f.service.AccountConfirmation(context.Background(), &AccountConfirmation{
		UserToken: userId,
		MailToken: mailToken,
	}); err != nil {
		t.Fatalf("AccountConfirmation: %v", err)
	}

	response, err := f.service.Login(context.Background(), "ana@example.com", "Lozinka123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if response.Token == "" {
		t.Error("login answered without a token")
	}
	if response.UserId != userId {
		t.Errorf("login user id = %q, want %q", response.UserId, userId)
	}
	if response.SessionState != domain.ProfileIncomplete {
		t.Errorf("session state = %q, want profileIncomplete before the assessment", response.SessionState)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-signing-key")
	f := newAuthFixture()

	userId, err := f.service.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := f.service.AccountConfirmation(context.Background(), &AccountConfirmation{
		UserToken: userId,
		MailToken: f.cache.values[userId],
	}); err != nil {
		t.Fatalf("AccountConfirmation: %v", err)
	}

	_, err = f.service.Login(context.Background(), "ana@example.com", "WrongPass1")
	if errors.KindOf(err) != errors.ValidationFailure {
		t.Errorf("wrong password should fail validation, got %v", err)
	}

	_, err = f.service.Login(context.Background(), "nobody@example.com", "Lozinka123")
	if errors.KindOf(err) != errors.ValidationFailure {
		t.Errorf("unknown email should fail validation, got %v", err)
	}
}

func TestLoginActiveAfterAssessment(t *testing.T) {
	t.Setenv("SECRET_KEY", "test-signing-key")
	f := newAuthFixture()

	userId, err := f.service.Register(context.Background(), registerRequest())
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := f.service.AccountConfirmation(context.Background(), &AccountConfirmation{
		UserToken: userId,
		MailToken: f.cache.values[userId],
	}); err != nil {
		t.Fatalf("AccountConfirmation: %v", err)
	}

	userID, _ := primitive.ObjectIDFromHex(userId)
	user := f.users.users[userID]
	user.PadelExperience = domain.OneToTwo
	user.PlayingFrequency = domain.Regularly

	response, err := f.service.Login(context.Background(), "ana@example.com", "Lozinka123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if response.SessionState != domain.Active {
		t.Errorf("session state = %q, want active once the profile is complete", response.SessionState)
	}
}
