package domain

// Tier is a difficulty category of the question bank.
type Tier string

const (
	TierEasy       Tier = "easy"
	TierMedium     Tier = "medium"
	TierHard       Tier = "hard"
	TierSurprising Tier = "surprising"
)

// Tiers lists every tier in selection order.
var Tiers = []Tier{TierEasy, TierMedium, TierHard, TierSurprising}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool {
	for _, known := range Tiers {
		if t == known {
			return true
		}
	}
	return false
}

// Question models a multiple-choice question whose Answer is one of its Options.
type Question struct {
	ID      string   `json:"id" yaml:"id"`
	Prompt  string   `json:"question" yaml:"question"`
	Options []string `json:"options" yaml:"options"`
	Answer  string   `json:"answer" yaml:"answer"`
}

// IsCorrect reports whether option is the designated answer.
func (q Question) IsCorrect(option string) bool {
	return option == q.Answer
}

// HasOption reports whether option is one of the question's choices.
func (q Question) HasOption(option string) bool {
	for _, o := range q.Options {
		if o == option {
			return true
		}
	}
	return false
}

// Bank is the full question corpus grouped by tier.
type Bank map[Tier][]Question

// Size returns the number of questions across all tiers.
func (b Bank) Size() int {
	n := 0
	for _, questions := range b {
		n += len(questions)
	}
	return n
}
