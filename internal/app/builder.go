package app

import "daily-quiz-service/internal/domain"

// DefaultPerTier is the number of questions drawn from each tier.
const DefaultPerTier = 2

// Builder derives one playthrough's question sequence from a bank.
type Builder struct {
	shuffle Shuffler
	perTier int
}

// NewBuilder returns a Builder; perTier < 1 falls back to DefaultPerTier.
func NewBuilder(shuffle Shuffler, perTier int) Builder {
	if shuffle == nil {
		shuffle = DefaultShuffler
	}
	if perTier < 1 {
		perTier = DefaultPerTier
	}
	return Builder{shuffle: shuffle, perTier: perTier}
}

// Build samples up to perTier questions per tier, in tier order, then shuffles the
// combined list so position says nothing about difficulty. Short tiers contribute
// everything they have.
func (b Builder) Build(bank domain.Bank) []domain.Question {
	selected := make([]domain.Question, 0, b.perTier*len(domain.Tiers))
	for _, tier := range domain.Tiers {
		selected = append(selected, sample(b.shuffle, bank[tier], b.perTier)...)
	}
	return shuffled(b.shuffle, selected)
}
