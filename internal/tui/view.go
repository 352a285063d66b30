package tui

import (
	"fmt"
	"strings"

	"daily-quiz-service/internal/app"
	"github.com/charmbracelet/lipgloss"
)

var (
	colorAccent  = lipgloss.Color("33")
	colorCorrect = lipgloss.Color("42")
	colorWrong   = lipgloss.Color("196")
	colorMuted   = lipgloss.Color("242")
)

// View renders whichever screen the model is on.
func (m Model) View() string {
	switch {
	case m.err != nil:
		return m.errorView()
	case m.state.Phase == app.PhaseLoading:
		return m.spinner.View() + " Loading questions...\n"
	case m.state.Phase == app.PhaseEnded:
		return m.resultView()
	default:
		return m.questionView()
	}
}

func (m Model) errorView() string {
	title := stylize("Could not load the quiz", m.noColor, colorWrong).Bold(true).Render()
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		m.err.Error(),
		"",
		m.hint("q quit"),
	) + "\n"
}

func (m Model) questionView() string {
	st := m.state
	q, _ := st.Current()

	header := stylize(fmt.Sprintf("Question %d of %d", st.Index+1, st.Total()), m.noColor, colorAccent).
		Bold(true).Render()
	score := m.muted(fmt.Sprintf("Score %d / %d", st.Score, st.Total()))

	var b strings.Builder
	for i, option := range st.Options {
		marker := "  "
		if !st.Answered && i == m.cursor {
			marker = "> "
		}
		line := fmt.Sprintf("%s%d. %s", marker, i+1, option)
		switch {
		case st.Answered && option == q.Answer:
			line = stylize(line+"  ✓", m.noColor, colorCorrect).Render()
		case st.Answered && option == st.Selected:
			line = stylize(line+"  ✗", m.noColor, colorWrong).Render()
		case !st.Answered && i == m.cursor:
			line = stylize(line, m.noColor, colorAccent).Render()
		}
		b.WriteString(line + "\n")
	}

	var footer string
	if st.Answered {
		verdict := stylize("Correct!", m.noColor, colorCorrect).Render()
		if !st.Correct {
			verdict = stylize("Not quite. The answer is "+q.Answer+".", m.noColor, colorWrong).Render()
		}
		next := "enter next question"
		if st.Index == st.Total()-1 {
			next = "enter see results"
		}
		footer = lipgloss.JoinVertical(lipgloss.Left, verdict, m.hint(next+" | q quit"))
	} else {
		footer = m.hint("↑/↓ move | enter or 1-9 answer | q quit")
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header+"  "+score,
		"",
		q.Prompt,
		"",
		b.String(),
		footer,
	) + "\n"
}

func (m Model) resultView() string {
	result := m.state.Result()
	title := stylize("Quiz complete", m.noColor, colorAccent).Bold(true).Render()
	return lipgloss.JoinVertical(lipgloss.Left,
		title,
		"",
		fmt.Sprintf("You scored %d out of %d", result.Score, result.Total),
		fmt.Sprintf("Percentage: %s%%", result.FormatPercentage()),
		"",
		m.hint("r play again | q quit"),
	) + "\n"
}

func (m Model) hint(text string) string {
	return m.muted(text)
}

func (m Model) muted(text string) string {
	return stylize(text, m.noColor, colorMuted).Render()
}

func accent(noColor bool) lipgloss.Style {
	if noColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(colorAccent)
}

// stylize returns a style carrying text, colored unless noColor is set.
func stylize(text string, noColor bool, color lipgloss.Color) lipgloss.Style {
	style := lipgloss.NewStyle().SetString(text)
	if noColor {
		return style
	}
	return style.Foreground(color)
}
