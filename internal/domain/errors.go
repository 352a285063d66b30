package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrSessionNotFound is returned when a quiz session does not exist or has expired.
	ErrSessionNotFound = errors.New("quiz session not found")
	// ErrBankNotFound indicates the question bank could not be located.
	ErrBankNotFound = errors.New("question bank not found")
	// ErrLoadFailure marks any failure to retrieve or parse a question bank.
	ErrLoadFailure = errors.New("question bank load failed")
	// ErrInvalidBank indicates a bank document failed validation.
	ErrInvalidBank = errors.New("invalid question bank")
	// ErrOptionNotFound indicates a submitted option is not offered for the current question.
	ErrOptionNotFound = errors.New("option not found")
	// ErrAnswerRequired is returned when advancing before the current question is answered.
	ErrAnswerRequired = errors.New("current question has not been answered")
	// ErrSessionInProgress is returned when a result is requested before the session ended.
	ErrSessionInProgress = errors.New("quiz session still in progress")
	// ErrSuperseded is returned when a newer session start replaced this one mid-load.
	ErrSuperseded = errors.New("session start superseded by a newer request")
	// ErrInvalidResult indicates a score/total pair outside 0 <= score <= total.
	ErrInvalidResult = errors.New("invalid result")
)

// LoadError wraps a bank retrieval failure with the source it came from.
// It matches ErrLoadFailure as well as the wrapped cause.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load bank from %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool { return target == ErrLoadFailure }

// NewLoadError builds a LoadError for source.
func NewLoadError(source string, err error) *LoadError {
	return &LoadError{Source: source, Err: err}
}

// BankError describes a single validation problem in a bank document.
type BankError struct {
	Tier   Tier   `json:"tier"`
	Index  int    `json:"index"`
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

func (e BankError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("%s: %s", e.Tier, e.Reason)
	}
	return fmt.Sprintf("%s[%d].%s: %s", e.Tier, e.Index, e.Field, e.Reason)
}

// ValidationErrors collects every problem found in a bank.
type ValidationErrors []BankError

func (v ValidationErrors) Error() string {
	parts := make([]string, len(v))
	for i, e := range v {
		parts[i] = e.Error()
	}
	return ErrInvalidBank.Error() + ": " + strings.Join(parts, "; ")
}

func (v ValidationErrors) Is(target error) bool { return target == ErrInvalidBank }
