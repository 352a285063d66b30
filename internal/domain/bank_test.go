package domain_test

import (
	"errors"
	"testing"

	"daily-quiz-service/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validBank() domain.Bank {
	return domain.Bank{
		domain.TierEasy: {
			{ID: "e1", Prompt: "Good morning means?", Options: []string{"Hello", "Goodbye"}, Answer: "Hello"},
		},
		domain.TierMedium:     {},
		domain.TierHard:       {},
		domain.TierSurprising: {},
	}
}

func TestValidateAcceptsWellFormedBank(t *testing.T) {
	require.NoError(t, validBank().Validate())
}

func TestValidateAcceptsEmptyTiers(t *testing.T) {
	bank := domain.Bank{
		domain.TierEasy:       {},
		domain.TierMedium:     {},
		domain.TierHard:       {},
		domain.TierSurprising: {},
	}
	require.NoError(t, bank.Validate())
}

func TestValidateRejectsMissingAndUnknownTiers(t *testing.T) {
	bank := validBank()
	delete(bank, domain.TierHard)
	bank["legendary"] = nil

	err := bank.Validate()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidBank))

	var verrs domain.ValidationErrors
	require.True(t, errors.As(err, &verrs))
	require.Len(t, verrs, 2)
	assert.Equal(t, domain.TierHard, verrs[0].Tier)
	assert.Equal(t, "tier missing", verrs[0].Reason)
	assert.Equal(t, domain.Tier("legendary"), verrs[1].Tier)
	assert.Equal(t, "unknown tier", verrs[1].Reason)
}

func TestValidateRejectsMalformedQuestions(t *testing.T) {
	cases := map[string]struct {
		question domain.Question
		field    string
	}{
		"missing id":       {domain.Question{Prompt: "p", Options: []string{"a", "b"}, Answer: "a"}, "id"},
		"missing prompt":   {domain.Question{ID: "x", Options: []string{"a", "b"}, Answer: "a"}, "question"},
		"single option":    {domain.Question{ID: "x", Prompt: "p", Options: []string{"a"}, Answer: "a"}, "options"},
		"duplicate option": {domain.Question{ID: "x", Prompt: "p", Options: []string{"a", "a"}, Answer: "a"}, "options"},
		"missing answer":   {domain.Question{ID: "x", Prompt: "p", Options: []string{"a", "b"}}, "answer"},
		"empty option":     {domain.Question{ID: "x", Prompt: "p", Options: []string{"a", ""}, Answer: "a"}, "options"},
		"blank option":     {domain.Question{ID: "x", Prompt: "p", Options: []string{" \t", "a"}, Answer: "a"}, "options"},
		"blank answer":     {domain.Question{ID: "x", Prompt: "p", Options: []string{"a", "b"}, Answer: "  "}, "answer"},
		"answer not offered": {
			domain.Question{ID: "x", Prompt: "p", Options: []string{"a", "b"}, Answer: "c"}, "answer",
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			bank := validBank()
			bank[domain.TierMedium] = []domain.Question{tc.question}

			var verrs domain.ValidationErrors
			require.True(t, errors.As(bank.Validate(), &verrs))
			require.Len(t, verrs, 1)
			assert.Equal(t, domain.TierMedium, verrs[0].Tier)
			assert.Equal(t, 0, verrs[0].Index)
			assert.Equal(t, tc.field, verrs[0].Field)
		})
	}
}

func TestValidateRejectsDuplicateIDsAcrossTiers(t *testing.T) {
	bank := validBank()
	bank[domain.TierSurprising] = []domain.Question{
		{ID: "e1", Prompt: "again", Options: []string{"x", "y"}, Answer: "y"},
	}

	var verrs domain.ValidationErrors
	require.True(t, errors.As(bank.Validate(), &verrs))
	require.Len(t, verrs, 1)
	assert.Equal(t, "id", verrs[0].Field)
	assert.Contains(t, verrs[0].Reason, "duplicate id")
}

func TestLoadErrorMatchesFailureAndCause(t *testing.T) {
	cause := domain.ValidationErrors{{Tier: domain.TierEasy, Index: -1, Reason: "tier missing"}}
	err := domain.NewLoadError("bank.json", cause)

	assert.True(t, errors.Is(err, domain.ErrLoadFailure))
	assert.True(t, errors.Is(err, domain.ErrInvalidBank))
	assert.Contains(t, err.Error(), "bank.json")
}
