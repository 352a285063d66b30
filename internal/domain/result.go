package domain

import (
	"strconv"
	"strings"
)

// Result is the (score, total) pair handed to the result display once a session ends.
type Result struct {
	Score int `json:"score"`
	Total int `json:"total"`
}

// NewResult validates 0 <= score <= total.
func NewResult(score, total int) (Result, error) {
	if score < 0 || total < 0 || score > total {
		return Result{}, ErrInvalidResult
	}
	return Result{Score: score, Total: total}, nil
}

// ParseResult reads a result from untrusted text such as query parameters.
// Absent, non-numeric or inconsistent values report false (not yet available).
func ParseResult(scoreRaw, totalRaw string) (Result, bool) {
	score, err := strconv.Atoi(strings.TrimSpace(scoreRaw))
	if err != nil {
		return Result{}, false
	}
	total, err := strconv.Atoi(strings.TrimSpace(totalRaw))
	if err != nil {
		return Result{}, false
	}
	r, err := NewResult(score, total)
	if err != nil {
		return Result{}, false
	}
	return r, true
}

// Percentage returns 100*score/total, or 0 for an empty session.
func (r Result) Percentage() float64 {
	if r.Total <= 0 {
		return 0
	}
	return 100 * float64(r.Score) / float64(r.Total)
}

// FormatPercentage renders the percentage with one decimal place.
func (r Result) FormatPercentage() string {
	return strconv.FormatFloat(r.Percentage(), 'f', 1, 64)
}
