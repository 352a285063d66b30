package tui

import (
	"context"

	"daily-quiz-service/internal/app"
	"daily-quiz-service/internal/domain"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// Model plays one quiz at a time in the terminal.
type Model struct {
	banks   app.BankRepository
	bankID  string
	builder app.Builder
	machine app.Machine
	spinner spinner.Model
	noColor bool

	state      app.State
	err        error
	cursor     int
	generation int
}

// Options configures the terminal client.
type Options struct {
	PerTier int
	Shuffle app.Shuffler
	NoColor bool
}

// NewModel constructs a model that plays bankID from banks.
func NewModel(banks app.BankRepository, bankID string, opts Options) Model {
	shuffle := opts.Shuffle
	if shuffle == nil {
		shuffle = app.DefaultShuffler
	}
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = accent(opts.NoColor)
	return Model{
		banks:   banks,
		bankID:  bankID,
		builder: app.NewBuilder(shuffle, opts.PerTier),
		machine: app.NewMachine(shuffle),
		spinner: s,
		noColor: opts.NoColor,
		state:   app.State{Phase: app.PhaseLoading},
	}
}

// loadedMsg carries a finished bank load tagged with the generation that asked for it.
type loadedMsg struct {
	generation int
	bank       domain.Bank
	err        error
}

// Init starts the spinner and the first load.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.load())
}

// Update handles load results, spinner ticks and key presses.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch typed := msg.(type) {
	case loadedMsg:
		if typed.generation != m.generation {
			return m, nil
		}
		if typed.err != nil {
			m.err = typed.err
			return m, nil
		}
		m.state = m.machine.Start(m.builder.Build(typed.bank))
		m.cursor = 0
		return m, nil
	case spinner.TickMsg:
		if !m.Loading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(typed)
		return m, cmd
	case tea.KeyMsg:
		return m.handleKey(typed)
	}
	return m, nil
}

// Loading reports whether the model is waiting for a bank.
func (m Model) Loading() bool {
	return m.err == nil && m.state.Phase == app.PhaseLoading
}

// State exposes the current session state.
func (m Model) State() app.State { return m.state }

// Err is the load failure shown to the player, if any.
func (m Model) Err() error { return m.err }

func (m Model) handleKey(key tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key.String() {
	case "ctrl+c", "q", "esc":
		return m, tea.Quit
	}
	if m.err != nil {
		return m, nil
	}

	switch m.state.Phase {
	case app.PhaseAwaiting:
		switch key.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j", "tab":
			if m.cursor < len(m.state.Options)-1 {
				m.cursor++
			}
		case "enter", " ":
			m.state = m.machine.Reduce(m.state, app.Submit{Option: m.state.Options[m.cursor]})
		default:
			if i, ok := optionIndex(key.String(), len(m.state.Options)); ok {
				m.cursor = i
				m.state = m.machine.Reduce(m.state, app.Submit{Option: m.state.Options[i]})
			}
		}
	case app.PhaseAnswered:
		switch key.String() {
		case "enter", " ", "n", "right":
			m.state = m.machine.Reduce(m.state, app.Advance{})
			m.cursor = 0
		}
	case app.PhaseEnded:
		if key.String() == "r" {
			return m.replay()
		}
	}
	return m, nil
}

// replay discards the finished session and loads the bank again.
func (m Model) replay() (tea.Model, tea.Cmd) {
	m.generation++
	m.state = app.State{Phase: app.PhaseLoading}
	m.err = nil
	m.cursor = 0
	return m, tea.Batch(m.spinner.Tick, m.load())
}

func (m Model) load() tea.Cmd {
	banks, bankID, generation := m.banks, m.bankID, m.generation
	return func() tea.Msg {
		bank, err := banks.GetBank(context.Background(), bankID)
		return loadedMsg{generation: generation, bank: bank, err: err}
	}
}

// optionIndex maps the keys "1".."9" to option positions.
func optionIndex(key string, n int) (int, bool) {
	if len(key) != 1 || key[0] < '1' || key[0] > '9' {
		return 0, false
	}
	i := int(key[0] - '1')
	return i, i < n
}
