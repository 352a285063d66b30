package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"daily-quiz-service/internal/app"
	"daily-quiz-service/internal/domain"
	"go.uber.org/zap"
)

// APIHandler serves the plain HTTP endpoints next to the websocket.
type APIHandler struct {
	service *app.QuizService
	banks   app.BankRepository
	log     *zap.Logger
}

func NewAPIHandler(service *app.QuizService, banks app.BankRepository, logger *zap.Logger) *APIHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &APIHandler{service: service, banks: banks, log: logger}
}

// Register mounts the handler routes on mux.
func (h *APIHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.health)
	mux.HandleFunc("GET /banks/{id}", h.getBank)
	mux.HandleFunc("GET /sessions/{id}/result", h.sessionResult)
	mux.HandleFunc("GET /result", h.queryResult)
}

func (h *APIHandler) health(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *APIHandler) getBank(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	bank, err := h.banks.GetBank(r.Context(), id)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, bank)
}

func (h *APIHandler) sessionResult(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Result(r.Context(), r.PathValue("id"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, newResultView(result))
}

// queryResult renders a result handed over as query parameters. Missing or
// malformed values are a normal outcome, not a client error.
func (h *APIHandler) queryResult(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	result, ok := domain.ParseResult(q.Get("score"), q.Get("total"))
	if !ok {
		writeJSON(w, http.StatusOK, unavailableResult())
		return
	}
	writeJSON(w, http.StatusOK, newResultView(result))
}

func (h *APIHandler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrBankNotFound), errors.Is(err, domain.ErrSessionNotFound):
		status = http.StatusNotFound
	case errors.Is(err, domain.ErrSessionInProgress):
		status = http.StatusConflict
	case errors.Is(err, domain.ErrLoadFailure):
		status = http.StatusBadGateway
	}
	if status >= http.StatusInternalServerError {
		h.log.Error("request failed", zap.Error(err))
	}
	writeJSON(w, status, errorPayload{Message: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
