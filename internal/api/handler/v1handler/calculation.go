package v1handler

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"calculator/internal/calculation"
	"calculator/pkg/domain"
	"calculator/pkg/serrors"
)

type createCalculationRequest struct {
	Operation domain.Operation `json:"operation"`
	Operand1  float64          `json:"operand1"`
	Operand2  float64          `json:"operand2"`
}

type updateCalculationRequest struct {
	Operation *domain.Operation `json:"operation"`
	Operand1  *float64          `json:"operand1"`
	Operand2  *float64          `json:"operand2"`
}

// calculationList is a page of calculations plus the cursor for the next page.
type calculationList struct {
	Items      []domain.Calculation `json:"items"`
	NextCursor string               `json:"nextCursor,omitempty"`
}

// calculationID parses the {id} path parameter.
func calculationID(r *http.Request) (domain.CalculationID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return domain.CalculationID{}, serrors.Wrap(serrors.ErrBadRequest, err, "invalid calculation id")
	}

	return domain.CalculationID(id), nil
}

// CreateCalculation computes and stores a new calculation.
func (h *Handler) CreateCalculation(w http.ResponseWriter, r *http.Request) {
	var req createCalculationRequest
	if err := readJSON(r, &req); err != nil {
		WriteError(w, r, err)

		return
	}

	calc, err := h.deps.Calculator.Create(r.Context(),
		GetUserIDFromContext(r.Context()),
		req.Operation,
		req.Operand1,
		req.Operand2)
	if err != nil {
		WriteError(w, r, err)

		return
	}

	writeJSON(w, r, http.StatusCreated, calc)
}

// ListCalculations returns a page of the user's calculations, newest first.
func (h *Handler) ListCalculations(w http.ResponseWriter, r *http.Request) {
	var limit uint
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			WriteError(w, r, serrors.Wrap(serrors.ErrBadRequest, err, "invalid limit"))

			return
		}
		limit = uint(parsed)
	}

	calcs, nextCursor, err := h.deps.Calculator.UserCalculations(r.Context(),
		GetUserIDFromContext(r.Context()),
		r.URL.Query().Get("cursor"),
		limit)
	if err != nil {
		WriteError(w, r, err)

		return
	}

	if calcs == nil {
		calcs = []domain.Calculation{}
	}
	writeJSON(w, r, http.StatusOK, calculationList{Items: calcs, NextCursor: nextCursor})
}

// GetCalculation returns a single calculation owned by the user.
func (h *Handler) GetCalculation(w http.ResponseWriter, r *http.Request) {
	id, err := calculationID(r)
	if err != nil {
		WriteError(w, r, err)

		return
	}

	calc, err := h.deps.Calculator.Calculation(r.Context(), GetUserIDFromContext(r.Context()), id)
	if err != nil {
		WriteError(w, r, err)

		return
	}

	writeJSON(w, r, http.StatusOK, calc)
}

// UpdateCalculation edits a calculation; the result is recomputed server-side.
func (h *Handler) UpdateCalculation(w http.ResponseWriter, r *http.Request) {
	id, err := calculationID(r)
	if err != nil {
		WriteError(w, r, err)

		return
	}

	var req updateCalculationRequest
	if err := readJSON(r, &req); err != nil {
		WriteError(w, r, err)

		return
	}

	calc, err := h.deps.Calculator.Update(r.Context(), GetUserIDFromContext(r.Context()), id, calculation.UpdateParams{
		Operation: req.Operation,
		Operand1:  req.Operand1,
		Operand2:  req.Operand2,
	})
	if err != nil {
		WriteError(w, r, err)

		return
	}

	writeJSON(w, r, http.StatusOK, calc)
}

// DeleteCalculation removes a calculation owned by the user.
func (h *Handler) DeleteCalculation(w http.ResponseWriter, r *http.Request) {
	id, err := calculationID(r)
	if err != nil {
		WriteError(w, r, err)

		return
	}

	if err := h.deps.Calculator.Delete(r.Context(), GetUserIDFromContext(r.Context()), id); err != nil {
		WriteError(w, r, err)

		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CalculationStats aggregates the user's calculations per operation.
func (h *Handler) CalculationStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.deps.Calculator.Stats(r.Context(), GetUserIDFromContext(r.Context()))
	if err != nil {
		WriteError(w, r, err)

		return
	}

	writeJSON(w, r, http.StatusOK, stats)
}
