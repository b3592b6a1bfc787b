package errors

// Kind classifies every failure a user action can end in. Handlers map
// kinds to HTTP statuses; services never retry on their own.
type Kind string

const (
	ValidationFailure Kind = "validationFailure"
	Conflict          Kind = "conflict"
	NotFound          Kind = "notFound"
	TransportFailure  Kind = "transportFailure"
	InvalidState      Kind = "invalidState"
)

type Error struct {
	Kind    Kind   `json:"kind"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Message
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf returns the classification of err, defaulting to
// TransportFailure for anything the service layer did not type itself
// (driver errors, timeouts, broken connections).
func KindOf(err error) Kind {
	if typed, ok := err.(*Error); ok {
		return typed.Kind
	}
	return TransportFailure
}

const (
	SlotTakenError           = "Time slot is no longer available"
	InvalidDurationError     = "Duration must be one of 30, 60, 90, 120, 150 or 180 minutes"
	OutsideOpeningHoursError = "Booking does not fit within facility opening hours"
	BookingNotFoundError     = "Booking not found"
	NotBookingOwnerError     = "Booking belongs to another user"
	AlreadyFinishedError     = "Booking is already completed or cancelled"
	FacilityNotFoundError    = "Facility not found"
	CourtNotFoundError       = "Court not found"
	CourtUnavailableError    = "Court is not available for booking"
	MatchNotFoundError       = "Open match not found"
	MatchFullError           = "Match already has four players"
	MatchNotOpenError        = "Match is no longer open"
	NotMatchCreatorError     = "Only the creator can cancel a match"
	EmailExistError          = "Email already exists"
	InvalidCredentialsError  = "Invalid email or password"
	NotVerifiedError         = "Account is not verified yet"
	InvalidTokenError        = "Token is invalid"
	ExpiredTokenError        = "Verification token has expired"
)
