package domain

import "math"

type ExperienceLevel string

const (
	NoExperience ExperienceLevel = "No Experience"
	LessThanYear ExperienceLevel = "Less than 1 year"
	OneToTwo     ExperienceLevel = "1-2 years"
	TwoToFive    ExperienceLevel = "2-5 years"
	MoreThanFive ExperienceLevel = "5+ years"
)

type PlayingFrequency string

const (
	Rarely       PlayingFrequency = "Rarely"
	Occasionally PlayingFrequency = "Occasionally"
	Regularly    PlayingFrequency = "Regularly"
	Frequently   PlayingFrequency = "3+ times a week"
)

var experienceWeights = map[ExperienceLevel]float64{
	NoExperience: 0.5,
	LessThanYear: 2.0,
	OneToTwo:     4.0,
	TwoToFive:    7.0,
	MoreThanFive: 10.0,
}

var frequencyWeights = map[PlayingFrequency]float64{
	Rarely:       0.5,
	Occasionally: 2.0,
	Regularly:    3.5,
	Frequently:   5.0,
}

func (level ExperienceLevel) RatingContribution() float64 {
	return experienceWeights[level]
}

func (frequency PlayingFrequency) RatingContribution() float64 {
	return frequencyWeights[frequency]
}

func (level ExperienceLevel) Valid() bool {
	_, ok := experienceWeights[level]
	return ok
}

func (frequency PlayingFrequency) Valid() bool {
	_, ok := frequencyWeights[frequency]
	return ok
}

// InitialRating is the one-time player rating computed at profile setup.
// Padel experience dominates (60%), other racket sports count 25% and
// playing frequency 15%. The stored value is never recalculated.
func InitialRating(padel ExperienceLevel, racket ExperienceLevel, frequency PlayingFrequency) float64 {
	rating := padel.RatingContribution()*0.6 +
		racket.RatingContribution()*0.25 +
		frequency.RatingContribution()*0.15
	return math.Round(rating*100) / 100
}
