package app

import "daily-quiz-service/internal/domain"

// Phase is the position of a session in its lifecycle.
type Phase string

const (
	PhaseLoading  Phase = "loading"
	PhaseAwaiting Phase = "awaiting"
	PhaseAnswered Phase = "answered"
	PhaseEnded    Phase = "ended"
)

// State is one immutable snapshot of a quiz session. Transitions return a new State.
type State struct {
	Phase     Phase             `json:"phase"`
	Questions []domain.Question `json:"questions"`
	Index     int               `json:"index"`
	Score     int               `json:"score"`
	// Options is the display order for the current question only.
	Options  []string `json:"options,omitempty"`
	Selected string   `json:"selected,omitempty"`
	Answered bool     `json:"answered"`
	Correct  bool     `json:"correct"`
}

// Total is the number of questions in the session.
func (s State) Total() int { return len(s.Questions) }

// Ended reports whether the session reached its terminal phase.
func (s State) Ended() bool { return s.Phase == PhaseEnded }

// Current returns the question at Index, if the session is on one.
func (s State) Current() (domain.Question, bool) {
	if s.Phase != PhaseAwaiting && s.Phase != PhaseAnswered {
		return domain.Question{}, false
	}
	if s.Index < 0 || s.Index >= len(s.Questions) {
		return domain.Question{}, false
	}
	return s.Questions[s.Index], true
}

// Result returns the (score, total) pair. It is final once the session has ended.
func (s State) Result() domain.Result {
	return domain.Result{Score: s.Score, Total: s.Total()}
}

// Action is a player input to the machine.
type Action interface {
	isAction()
}

// Submit chooses an option for the current question.
type Submit struct {
	Option string
}

// Advance moves past an answered question.
type Advance struct{}

func (Submit) isAction()  {}
func (Advance) isAction() {}

// Machine runs session transitions. Option order for a question is drawn each time
// the question becomes current.
type Machine struct {
	shuffle Shuffler
}

// NewMachine returns a Machine using shuffle for option order.
func NewMachine(shuffle Shuffler) Machine {
	if shuffle == nil {
		shuffle = DefaultShuffler
	}
	return Machine{shuffle: shuffle}
}

// Start enters the first question, or ends immediately with (0, 0) when there are none.
func (m Machine) Start(questions []domain.Question) State {
	if len(questions) == 0 {
		return State{Phase: PhaseEnded}
	}
	return m.enter(State{Questions: questions}, 0)
}

// Reduce applies action to state. Actions that do not fit the current phase leave
// the state unchanged.
func (m Machine) Reduce(state State, action Action) State {
	switch a := action.(type) {
	case Submit:
		return m.submit(state, a.Option)
	case Advance:
		return m.advance(state)
	default:
		return state
	}
}

func (m Machine) submit(state State, option string) State {
	if state.Phase != PhaseAwaiting {
		return state
	}
	question, ok := state.Current()
	if !ok || !question.HasOption(option) {
		return state
	}
	state.Phase = PhaseAnswered
	state.Selected = option
	state.Answered = true
	state.Correct = question.IsCorrect(option)
	if state.Correct {
		state.Score++
	}
	return state
}

func (m Machine) advance(state State) State {
	if state.Phase != PhaseAnswered {
		return state
	}
	next := state.Index + 1
	if next >= len(state.Questions) {
		state.Phase = PhaseEnded
		state.Options = nil
		state.Selected = ""
		state.Answered = false
		state.Correct = false
		return state
	}
	return m.enter(state, next)
}

func (m Machine) enter(state State, index int) State {
	state.Phase = PhaseAwaiting
	state.Index = index
	state.Options = shuffled(m.shuffle, state.Questions[index].Options)
	state.Selected = ""
	state.Answered = false
	state.Correct = false
	return state
}
