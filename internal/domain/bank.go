package domain

import (
	"sort"
	"strings"
)

// Validate checks the bank shape: all four tiers present, no unknown tiers, and every
// question well formed with an answer among its options. Question IDs must be unique
// across the whole bank.
func (b Bank) Validate() error {
	var errs ValidationErrors

	for _, tier := range Tiers {
		if _, ok := b[tier]; !ok {
			errs = append(errs, BankError{Tier: tier, Index: -1, Reason: "tier missing"})
		}
	}

	unknown := make([]string, 0)
	for tier := range b {
		if !tier.Valid() {
			unknown = append(unknown, string(tier))
		}
	}
	sort.Strings(unknown)
	for _, tier := range unknown {
		errs = append(errs, BankError{Tier: Tier(tier), Index: -1, Reason: "unknown tier"})
	}

	seen := make(map[string]Tier)
	for _, tier := range Tiers {
		for i, q := range b[tier] {
			errs = append(errs, validateQuestion(tier, i, q)...)
			id := strings.TrimSpace(q.ID)
			if id == "" {
				continue
			}
			if first, dup := seen[id]; dup {
				errs = append(errs, BankError{Tier: tier, Index: i, Field: "id", Reason: "duplicate id (first seen in " + string(first) + ")"})
				continue
			}
			seen[id] = tier
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

func validateQuestion(tier Tier, index int, q Question) []BankError {
	var errs []BankError
	fail := func(field, reason string) {
		errs = append(errs, BankError{Tier: tier, Index: index, Field: field, Reason: reason})
	}

	if strings.TrimSpace(q.ID) == "" {
		fail("id", "required")
	}
	if strings.TrimSpace(q.Prompt) == "" {
		fail("question", "required")
	}
	if len(q.Options) < 2 {
		fail("options", "at least two options required")
	}
	options := make(map[string]struct{}, len(q.Options))
	for _, o := range q.Options {
		if strings.TrimSpace(o) == "" {
			fail("options", "blank option")
			continue
		}
		if _, dup := options[o]; dup {
			fail("options", "duplicate option "+quote(o))
		}
		options[o] = struct{}{}
	}
	switch {
	case strings.TrimSpace(q.Answer) == "":
		fail("answer", "required")
	case !q.HasOption(q.Answer):
		fail("answer", "answer "+quote(q.Answer)+" is not among the options")
	}
	return errs
}

func quote(s string) string {
	return `"` + s + `"`
}
