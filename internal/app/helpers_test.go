package app_test

import (
	"fmt"

	"daily-quiz-service/internal/domain"
)

// uniformBank builds a bank with n questions per tier whose answer is always "A".
func uniformBank(n int) domain.Bank {
	return bankWithSizes(map[domain.Tier]int{
		domain.TierEasy:       n,
		domain.TierMedium:     n,
		domain.TierHard:       n,
		domain.TierSurprising: n,
	})
}

func bankWithSizes(sizes map[domain.Tier]int) domain.Bank {
	bank := make(domain.Bank, len(domain.Tiers))
	for _, tier := range domain.Tiers {
		questions := make([]domain.Question, 0, sizes[tier])
		for i := 0; i < sizes[tier]; i++ {
			questions = append(questions, domain.Question{
				ID:      fmt.Sprintf("%s-%d", tier, i+1),
				Prompt:  fmt.Sprintf("%s question %d", tier, i+1),
				Options: []string{"A", "B", "C"},
				Answer:  "A",
			})
		}
		bank[tier] = questions
	}
	return bank
}

func tierOf(id string, bank domain.Bank) domain.Tier {
	for tier, questions := range bank {
		for _, q := range questions {
			if q.ID == id {
				return tier
			}
		}
	}
	return ""
}
