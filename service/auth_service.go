package application

import (
	"context"
	"os"
	"regexp"
	"time"
	"unicode"

	"github.com/cristalhq/jwt/v4"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"padel_service/domain"
	"padel_service/errors"
)

type AuthService struct {
	credentials domain.CredentialsStore
	users       domain.UserStore
	cache       domain.AuthCache
	notifier    Notifier
	tracer      trace.Tracer
	logger      *logrus.Logger
}

func NewAuthService(
	credentials domain.CredentialsStore,
	users domain.UserStore,
	cache domain.AuthCache,
	notifier Notifier,
	tracer trace.Tracer,
	logger *logrus.Logger,
) *AuthService {
	return &AuthService{
		credentials: credentials,
		users:       users,
		cache:       cache,
		notifier:    notifier,
		tracer:      tracer,
		logger:      logger,
	}
}

type RegisterRequest struct {
	Email       string        `json:"email" validate:"required,email"`
	Password    string        `json:"password" validate:"required"`
	FirstName   string        `json:"firstName" validate:"required"`
	LastName    string        `json:"lastName" validate:"required"`
	PhoneNumber string        `json:"phoneNumber"`
	Gender      domain.Gender `json:"gender"`
	Age         int           `json:"age"`
}

type LoginResponse struct {
	Token        string              `json:"token"`
	UserId       string              `json:"userId"`
	SessionState domain.SessionState `json:"sessionState"`
}

type AccountConfirmation struct {
	UserToken string `json:"user_token"`
	MailToken string `json:"mail_token"`
}

var phoneRegex = regexp.MustCompile(`^\+?[0-9]{7,15}$`)

func verifyPassword(s string) bool {
	hasUpperCase := false
	hasLowerCase := false
	hasDigit := false

	for _, c := range s {
		switch {
		case unicode.IsNumber(c):
			hasDigit = true
		case unicode.IsUpper(c):
			hasUpperCase = true
		case unicode.IsLower(c):
			hasLowerCase = true
		}
	}

	return len(s) >= 8 && hasUpperCase && hasLowerCase && hasDigit
}

func (service *AuthService) Register(ctx context.Context, request *RegisterRequest) (string, error) {
	ctx, span := service.tracer.Start(ctx, "AuthService.Register")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	if err := validate.Struct(request); err != nil {
		return "", errors.New(errors.ValidationFailure, err.Error())
	}
	if !verifyPassword(request.Password) {
		return "", errors.New(errors.ValidationFailure,
			"Password must be at least 8 characters with an uppercase letter, a lowercase letter and a digit")
	}
	if request.PhoneNumber != "" && !phoneRegex.MatchString(request.PhoneNumber) {
		return "", errors.New(errors.ValidationFailure, "Invalid phone number format")
	}
	if request.Age < 0 || request.Age >= 100 {
		return "", errors.New(errors.ValidationFailure, "Age should be a number over 0 and less than 100")
	}

	existing, err := service.credentials.GetByEmail(ctx, request.Email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", wrapStoreError(ctx, err)
	}
	if existing != nil {
		return "", errors.New(errors.ValidationFailure, errors.EmailExistError)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(request.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := &domain.User{
		ID:          primitive.NewObjectID(),
		Email:       request.Email,
		FirstName:   request.FirstName,
		LastName:    request.LastName,
		PhoneNumber: request.PhoneNumber,
		Gender:      request.Gender,
		Age:         request.Age,
		UserType:    domain.Player,
		DateJoined:  time.Now(),
	}
	if _, err := service.users.Insert(ctx, user); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", wrapStoreError(ctx, err)
	}

	credentials := &domain.Credentials{
		ID:       user.ID,
		Email:    request.Email,
		Password: string(hash),
		UserType: domain.Player,
		Verified: false,
	}
	if err := service.credentials.Register(ctx, credentials); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", wrapStoreError(ctx, err)
	}

	validationToken := uuid.New()
	if err := service.cache.PostCacheData(ctx, user.ID.Hex(), validationToken.String()); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", wrapStoreError(ctx, err)
	}

	if err := service.notifier.SendVerificationMail(validationToken, request.Email); err != nil {
		service.logger.Errorf("sending verification mail: %v", err)
		return "", errors.New(errors.TransportFailure, "Could not send verification mail")
	}

	return user.ID.Hex(), nil
}

func (service *AuthService) AccountConfirmation(ctx context.Context, validation *AccountConfirmation) error {
	ctx, span := service.tracer.Start(ctx, "AuthService.AccountConfirmation")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	token, err := service.cache.GetCachedValue(ctx, validation.UserToken)
	if err != nil {
		return errors.New(errors.InvalidState, errors.ExpiredTokenError)
	}
	if validation.MailToken != token {
		return errors.New(errors.ValidationFailure, errors.InvalidTokenError)
	}

	if err := service.cache.DelCachedValue(ctx, validation.UserToken); err != nil {
		service.logger.Warnf("deleting cached token: %v", err)
	}

	userID, err := primitive.ObjectIDFromHex(validation.UserToken)
	if err != nil {
		return errors.New(errors.ValidationFailure, errors.InvalidTokenError)
	}

	user, err := service.users.Get(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return wrapStoreError(ctx, err)
	}

	credentials, err := service.credentials.GetByEmail(ctx, user.Email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return wrapStoreError(ctx, err)
	}
	if credentials == nil {
		return errors.New(errors.NotFound, errors.InvalidCredentialsError)
	}

	credentials.Verified = true
	if err := service.credentials.Update(ctx, credentials); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return wrapStoreError(ctx, err)
	}
	return nil
}

// Login checks credentials and answers with a token plus the explicit
// session state: active once the player assessment is done, otherwise
// profileIncomplete.
func (service *AuthService) Login(ctx context.Context, email, password string) (*LoginResponse, error) {
	ctx, span := service.tracer.Start(ctx, "AuthService.Login")
	defer span.End()

	ctx, cancel := context.WithTimeout(ctx, storeTimeout)
	defer cancel()

	credentials, err := service.credentials.GetByEmail(ctx, email)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, wrapStoreError(ctx, err)
	}
	if credentials == nil {
		return nil, errors.New(errors.ValidationFailure, errors.InvalidCredentialsError)
	}
	if !credentials.Verified {
		return nil, errors.New(errors.InvalidState, errors.NotVerifiedError)
	}

	if bcrypt.CompareHashAndPassword([]byte(credentials.Password), []byte(password)) != nil {
		return nil, errors.New(errors.ValidationFailure, errors.InvalidCredentialsError)
	}

	token, err := GenerateJWT(credentials)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	state := domain.ProfileIncomplete
	user, err := service.users.Get(ctx, credentials.ID)
	if err == nil && user.ProfileComplete() {
		state = domain.Active
	}

	return &LoginResponse{
		Token:        token,
		UserId:       credentials.ID.Hex(),
		SessionState: state,
	}, nil
}

func GenerateJWT(credentials *domain.Credentials) (string, error) {
	key := []byte(os.Getenv("SECRET_KEY"))
	signer, err := jwt.NewSignerHS(jwt.HS256, key)
	if err != nil {
		return "", err
	}

	builder := jwt.NewBuilder(signer)
	claims := &domain.Claims{
		UserID:    credentials.ID.Hex(),
		Email:     credentials.Email,
		Role:      credentials.UserType,
		ExpiresAt: time.Now().Add(time.Hour * 24),
	}

	token, err := builder.Build(claims)
	if err != nil {
		return "", err
	}
	return token.String(), nil
}
