package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"tasca/internal/core"
)

type expenseJSON struct {
	ID          string   `json:"id"`
	Amount      string   `json:"amount"`
	AmountCents int64    `json:"amount_cents"`
	Tags        []string `json:"tags"`
	Date        string   `json:"date"`
}

func toJSON(e core.Expense) expenseJSON {
	tags := e.Tags
	if tags == nil {
		tags = []string{}
	}
	return expenseJSON{
		ID:          e.ID.String(),
		Amount:      e.Amount.String(),
		AmountCents: e.Amount.Cents,
		Tags:        tags,
		Date:        e.Date.Format(time.RFC3339Nano),
	}
}

func (s *Server) handleExpenses(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListExpenses(w, r)
	case http.MethodPost:
		if r.FormValue("_method") == http.MethodDelete {
			s.handleDeleteExpense(w, r)
			return
		}
		s.handleCreateExpense(w, r)
	case http.MethodDelete:
		s.handleDeleteExpense(w, r)
	default:
		w.Header().Set("Allow", "GET, POST, DELETE")
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleListExpenses(w http.ResponseWriter, r *http.Request) {
	records := s.ledger.List(r.Context())
	out := make([]expenseJSON, len(records))
	for i, e := range records {
		out[i] = toJSON(e)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		slog.ErrorContext(r.Context(), "Parse form error", "error", err, "path", r.URL.Path)
		writeError(w, http.StatusBadRequest, "invalid request format")
		return
	}

	amount := strings.TrimSpace(r.Form.Get("amount"))
	tags := core.SplitTags(r.Form.Get("tags"))

	date := time.Now()
	if v := strings.TrimSpace(r.Form.Get("date")); v != "" {
		parsed, err := time.Parse(time.RFC3339Nano, v)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid date: expected RFC 3339")
			return
		}
		date = parsed
	}

	e, err := s.ledger.Add(r.Context(), amount, tags, date)
	if err != nil {
		// Validation failures abort the operation with no state change
		writeError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, toJSON(e))
}

func (s *Server) handleDeleteExpense(w http.ResponseWriter, r *http.Request) {
	idStr := strings.TrimSpace(r.URL.Query().Get("id"))
	if idStr == "" {
		idStr = strings.TrimSpace(r.FormValue("id"))
	}
	if idStr == "" {
		writeError(w, http.StatusBadRequest, "missing expense id")
		return
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid expense id")
		return
	}

	if err := s.ledger.Delete(r.Context(), id); err != nil {
		if errors.Is(err, core.ErrNotFound) {
			writeError(w, http.StatusNotFound, "expense not found")
			return
		}
		slog.ErrorContext(r.Context(), "Delete expense error", "error", err, "record_id", idStr)
		writeError(w, http.StatusInternalServerError, "delete failed")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Encode response error", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
