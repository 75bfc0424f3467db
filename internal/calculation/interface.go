// Package calculation implements the arithmetic service: calculations are
// validated, computed server-side and persisted per user.
package calculation

import (
	"context"

	"calculator/pkg/domain"
)

// UpdateParams carries the optional fields accepted when editing a stored
// calculation. The result is never accepted from callers; it is recomputed
// from the effective operation and operands.
type UpdateParams struct {
	Operation *domain.Operation
	Operand1  *float64
	Operand2  *float64
}

//go:generate mockgen -package mockcalculation -source=interface.go -destination=mock/mockcalculation.go *
type Calculator interface {
	// Create validates, computes and stores a new calculation for the user.
	Create(ctx context.Context,
		userID domain.UserID,
		op domain.Operation,
		operand1, operand2 float64) (*domain.Calculation, error)
	// UserCalculations returns a page of the user's calculations, newest first,
	// with an optional RFC3339 cursor for pagination.
	UserCalculations(ctx context.Context, userID domain.UserID, cursor string, limit uint) ([]domain.Calculation, string, error)
	// Calculation fetches a single calculation owned by the user.
	Calculation(ctx context.Context, userID domain.UserID, id domain.CalculationID) (*domain.Calculation, error)
	// Update edits a stored calculation and recomputes its result.
	Update(ctx context.Context,
		userID domain.UserID,
		id domain.CalculationID,
		params UpdateParams) (*domain.Calculation, error)
	// Delete removes a calculation owned by the user.
	Delete(ctx context.Context, userID domain.UserID, id domain.CalculationID) error
	// Stats aggregates the user's stored calculations per operation.
	Stats(ctx context.Context, userID domain.UserID) (domain.CalculationStats, error)
}
