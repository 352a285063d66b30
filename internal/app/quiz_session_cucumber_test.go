//go:build cucumber

package app_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"daily-quiz-service/internal/app"
	"daily-quiz-service/internal/domain"
	"github.com/cucumber/godog"
	"github.com/stretchr/testify/require"
)

// TestQuizSessionFeatures executes the quiz session scenarios via godog.
func TestQuizSessionFeatures(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "quiz-session",
		ScenarioInitializer: InitializeScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{filepath.Join("..", "..", "features", "quiz_session.feature")},
			Strict:   true,
			TestingT: t,
		},
	}
	require.Zero(t, suite.Run(), "non-zero godog status")
}

// InitializeScenario wires step definitions for the quiz session feature.
func InitializeScenario(ctx *godog.ScenarioContext) {
	state := &sessionScenario{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		*state = sessionScenario{shuffle: app.DefaultShuffler}
		return ctx, nil
	})

	ctx.Step(`^a bank with (\d+) questions per tier whose answer is "([^"]*)"$`, state.givenBank)
	ctx.Step(`^shuffling is disabled$`, state.disableShuffle)
	ctx.Step(`^a session is started$`, state.startSession)
	ctx.Step(`^the player answers "([^"]*)" to every question$`, state.answerEvery)
	ctx.Step(`^the player answers "([^"]*)" to the first (\d+) questions and "([^"]*)" to the rest$`, state.answerSplit)
	ctx.Step(`^the player submits "([^"]*)"$`, state.submit)
	ctx.Step(`^the session has ended$`, state.sessionEnded)
	ctx.Step(`^the session has (\d+) questions with no duplicates$`, state.sessionSize)
	ctx.Step(`^the result is (\d+) out of (\d+)$`, state.resultIs)
	ctx.Step(`^the percentage is "([^"]*)"$`, state.percentageIs)
	ctx.Step(`^the score is (\d+)$`, state.scoreIs)
	ctx.Step(`^the selected option is "([^"]*)"$`, state.selectedIs)
	ctx.Step(`^the result page receives score "([^"]*)" and total "([^"]*)"$`, state.parseResult)
	ctx.Step(`^the result is not available$`, state.resultUnavailable)
}

// sessionScenario holds scenario state for the feature tests.
type sessionScenario struct {
	bank      domain.Bank
	shuffle   app.Shuffler
	machine   app.Machine
	state     app.State
	parsed    domain.Result
	available bool
}

func (s *sessionScenario) givenBank(n int, answer string) error {
	s.bank = uniformBank(n)
	if answer != "A" {
		return fmt.Errorf("only answer \"A\" banks are supported, got %q", answer)
	}
	return nil
}

func (s *sessionScenario) disableShuffle() error {
	s.shuffle = app.NoShuffle
	return nil
}

func (s *sessionScenario) startSession() error {
	s.machine = app.NewMachine(s.shuffle)
	s.state = s.machine.Start(app.NewBuilder(s.shuffle, app.DefaultPerTier).Build(s.bank))
	return nil
}

func (s *sessionScenario) answerEvery(option string) error {
	return s.answerSplit(option, s.state.Total(), option)
}

func (s *sessionScenario) answerSplit(first string, n int, rest string) error {
	for i := 0; !s.state.Ended(); i++ {
		option := rest
		if i < n {
			option = first
		}
		s.state = s.machine.Reduce(s.state, app.Submit{Option: option})
		if !s.state.Answered {
			return fmt.Errorf("question %d did not accept %q", i+1, option)
		}
		s.state = s.machine.Reduce(s.state, app.Advance{})
	}
	return nil
}

func (s *sessionScenario) submit(option string) error {
	s.state = s.machine.Reduce(s.state, app.Submit{Option: option})
	return nil
}

func (s *sessionScenario) sessionEnded() error {
	if !s.state.Ended() {
		return fmt.Errorf("expected ended session, phase is %s", s.state.Phase)
	}
	return nil
}

func (s *sessionScenario) sessionSize(n int) error {
	if s.state.Total() != n {
		return fmt.Errorf("expected %d questions, got %d", n, s.state.Total())
	}
	seen := make(map[string]bool)
	for _, q := range s.state.Questions {
		if seen[q.ID] {
			return fmt.Errorf("duplicate question %s", q.ID)
		}
		seen[q.ID] = true
	}
	return nil
}

func (s *sessionScenario) resultIs(score, total int) error {
	if got := s.state.Result(); got != (domain.Result{Score: score, Total: total}) {
		return fmt.Errorf("expected %d/%d, got %d/%d", score, total, got.Score, got.Total)
	}
	return nil
}

func (s *sessionScenario) percentageIs(want string) error {
	if got := s.state.Result().FormatPercentage(); got != want {
		return fmt.Errorf("expected percentage %s, got %s", want, got)
	}
	return nil
}

func (s *sessionScenario) scoreIs(score int) error {
	if s.state.Score != score {
		return fmt.Errorf("expected score %d, got %d", score, s.state.Score)
	}
	return nil
}

func (s *sessionScenario) selectedIs(option string) error {
	if s.state.Selected != option {
		return fmt.Errorf("expected selection %q, got %q", option, s.state.Selected)
	}
	return nil
}

func (s *sessionScenario) parseResult(score, total string) error {
	s.parsed, s.available = domain.ParseResult(score, total)
	return nil
}

func (s *sessionScenario) resultUnavailable() error {
	if s.available {
		return fmt.Errorf("expected unavailable result, got %+v", s.parsed)
	}
	return nil
}
