package domain

import (
	"encoding/json"
	"io"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Facility struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	Name           string             `bson:"name" json:"name"`
	Address        string             `bson:"address" json:"address"`
	PhoneNumber    string             `bson:"phoneNumber" json:"phoneNumber"`
	Email          string             `bson:"email" json:"email"`
	NumberOfCourts int                `bson:"numberOfCourts" json:"numberOfCourts"`
	OpeningHour    int                `bson:"openingHour" json:"openingHour"`
	ClosingHour    int                `bson:"closingHour" json:"closingHour"`
	ImageURL       string             `bson:"imageURL,omitempty" json:"imageURL,omitempty"`
	IsActive       bool               `bson:"isActive" json:"isActive"`
	PricePerHour   float64            `bson:"pricePerHour" json:"pricePerHour"`
	Timezone       string             `bson:"timezone,omitempty" json:"timezone,omitempty"`
}

type CourtType string

const (
	Indoor  CourtType = "Indoor"
	Outdoor CourtType = "Outdoor"
	Covered CourtType = "Covered Outdoor"
)

type Court struct {
	ID           primitive.ObjectID `bson:"_id" json:"id"`
	FacilityId   string             `bson:"facilityId" json:"facilityId"`
	Name         string             `bson:"name" json:"name"`
	Type         CourtType          `bson:"type" json:"type"`
	IsAvailable  bool               `bson:"isAvailable" json:"isAvailable"`
	PricePerHour float64            `bson:"pricePerHour" json:"pricePerHour"`
}

type BookingStatus string

const (
	Pending   BookingStatus = "pending"
	Confirmed BookingStatus = "confirmed"
	Completed BookingStatus = "completed"
	Cancelled BookingStatus = "cancelled"
)

type Booking struct {
	ID         primitive.ObjectID `bson:"_id" json:"id"`
	FacilityId string             `bson:"facilityId" json:"facilityId"`
	CourtId    string             `bson:"courtId" json:"courtId"`
	UserId     string             `bson:"userId" json:"userId"`
	Date       time.Time          `bson:"date" json:"date"`
	StartTime  int                `bson:"startTime" json:"startTime"`
	Duration   int                `bson:"duration" json:"duration"`
	Status     BookingStatus      `bson:"status" json:"status"`
	TotalPrice float64            `bson:"totalPrice" json:"totalPrice"`
}

// AllowedDurations are the booking lengths offered by the duration picker,
// in minutes.
var AllowedDurations = []int{30, 60, 90, 120, 150, 180}

func IsAllowedDuration(minutes int) bool {
	for _, d := range AllowedDurations {
		if d == minutes {
			return true
		}
	}
	return false
}

type MatchType string

const (
	Friendly    MatchType = "Friendly Match"
	Competitive MatchType = "Competitive Match"
)

type GenderPreference string

const (
	AllPlayers GenderPreference = "All Players"
	MixedTeams GenderPreference = "Mixed Teams"
	MenOnly    GenderPreference = "Men Only"
	WomenOnly  GenderPreference = "Women Only"
)

type MatchStatus string

const (
	MatchOpen      MatchStatus = "open"
	MatchCancelled MatchStatus = "cancelled"
)

// MaxMatchPlayers is the padel court capacity.
const MaxMatchPlayers = 4

type OpenMatch struct {
	ID               primitive.ObjectID `bson:"_id" json:"id"`
	CreatorId        string             `bson:"creatorId" json:"creatorId"`
	FacilityId       string             `bson:"facilityId" json:"facilityId"`
	FacilityName     string             `bson:"facilityName" json:"facilityName"`
	Date             time.Time          `bson:"date" json:"date"`
	TimeSlot         time.Time          `bson:"timeSlot" json:"timeSlot"`
	Duration         int                `bson:"duration" json:"duration"`
	MatchType        MatchType          `bson:"matchType" json:"matchType"`
	GenderPreference GenderPreference   `bson:"genderPreference" json:"genderPreference"`
	Status           MatchStatus        `bson:"status" json:"status"`
	Players          []string           `bson:"players" json:"players"`
	CreatedAt        time.Time          `bson:"createdAt" json:"createdAt"`
}

type Gender string

const (
	Male   Gender = "Male"
	Female Gender = "Female"
	Other  Gender = "Other"
)

type UserType string

const (
	Player        UserType = "player"
	FacilityOwner UserType = "facilityOwner"
	Admin         UserType = "admin"
)

type PlayingHand string

const (
	RightHand PlayingHand = "Right"
	LeftHand  PlayingHand = "Left"
)

type CourtPosition string

const (
	Backhand  CourtPosition = "Backhand"
	Forehand  CourtPosition = "Forehand"
	BothSides CourtPosition = "Both"
)

type User struct {
	ID                     primitive.ObjectID `bson:"_id" json:"id"`
	Email                  string             `bson:"email" json:"email"`
	FirstName              string             `bson:"firstName" json:"firstName"`
	LastName               string             `bson:"lastName" json:"lastName"`
	PhoneNumber            string             `bson:"phoneNumber" json:"phoneNumber"`
	Gender                 Gender             `bson:"gender" json:"gender"`
	Age                    int                `bson:"age" json:"age"`
	UserType               UserType           `bson:"userType" json:"userType"`
	DateJoined             time.Time          `bson:"dateJoined" json:"dateJoined"`
	PlayingHand            PlayingHand        `bson:"playingHand,omitempty" json:"playingHand,omitempty"`
	PreferredPosition      CourtPosition      `bson:"preferredPosition,omitempty" json:"preferredPosition,omitempty"`
	PadelExperience        ExperienceLevel    `bson:"padelExperience,omitempty" json:"padelExperience,omitempty"`
	RacketSportsExperience ExperienceLevel    `bson:"racketSportsExperience,omitempty" json:"racketSportsExperience,omitempty"`
	PlayingFrequency       PlayingFrequency   `bson:"playingFrequency,omitempty" json:"playingFrequency,omitempty"`
	NumericRating          float64            `bson:"numericRating,omitempty" json:"numericRating,omitempty"`
}

// ProfileComplete reports whether the player finished the assessment step.
// The rating is only ever written together with the assessment answers.
func (user *User) ProfileComplete() bool {
	return user.PadelExperience != "" && user.PlayingFrequency != ""
}

type Credentials struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Email    string             `bson:"email" json:"email"`
	Password string             `bson:"password" json:"password"`
	UserType UserType           `bson:"userType" json:"userType"`
	Verified bool               `bson:"verified" json:"verified"`
}

type Claims struct {
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	Role      UserType  `json:"userType"`
	ExpiresAt time.Time `json:"expires_at"`
}

// SessionState is the explicit lifecycle a client session moves through,
// from signed out to fully active.
type SessionState string

const (
	SignedOut         SessionState = "signedOut"
	SignedIn          SessionState = "signedIn"
	ProfileIncomplete SessionState = "profileIncomplete"
	Active            SessionState = "active"
)

func (booking *Booking) FromJSON(reader io.Reader) error {
	d := json.NewDecoder(reader)
	return d.Decode(booking)
}

func (match *OpenMatch) FromJSON(reader io.Reader) error {
	d := json.NewDecoder(reader)
	return d.Decode(match)
}

func (user *User) FromJSON(reader io.Reader) error {
	d := json.NewDecoder(reader)
	return d.Decode(user)
}
