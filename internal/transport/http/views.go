package http

import (
	"daily-quiz-service/internal/app"
	"daily-quiz-service/internal/domain"
)

// stateView is what a client sees of a session. The answer stays hidden until the
// current question has been answered.
type stateView struct {
	SessionID  string    `json:"sessionId"`
	Phase      app.Phase `json:"phase"`
	Index      int       `json:"index"`
	Total      int       `json:"total"`
	Score      int       `json:"score"`
	QuestionID string    `json:"questionId,omitempty"`
	Question   string    `json:"question,omitempty"`
	Options    []string  `json:"options,omitempty"`
	Selected   string    `json:"selected,omitempty"`
	Correct    *bool     `json:"correct,omitempty"`
	Answer     string    `json:"answer,omitempty"`
}

// resultView is the result boundary payload.
type resultView struct {
	Available  bool    `json:"available"`
	Score      int     `json:"score"`
	Total      int     `json:"total"`
	Percentage float64 `json:"percentage"`
	Display    string  `json:"display,omitempty"`
	Message    string  `json:"message,omitempty"`
}

func newStateView(session app.Session) stateView {
	st := session.State
	view := stateView{
		SessionID: session.ID,
		Phase:     st.Phase,
		Index:     st.Index,
		Total:     st.Total(),
		Score:     st.Score,
	}
	if q, ok := st.Current(); ok {
		view.QuestionID = q.ID
		view.Question = q.Prompt
		view.Options = st.Options
		if st.Answered {
			correct := st.Correct
			view.Selected = st.Selected
			view.Correct = &correct
			view.Answer = q.Answer
		}
	}
	return view
}

func newResultView(r domain.Result) resultView {
	return resultView{
		Available:  true,
		Score:      r.Score,
		Total:      r.Total,
		Percentage: r.Percentage(),
		Display:    r.FormatPercentage() + "%",
	}
}

func unavailableResult() resultView {
	return resultView{
		Available: false,
		Message:   "result not available yet; start a new quiz from the beginning",
	}
}
