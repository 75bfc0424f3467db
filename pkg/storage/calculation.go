package storage

import (
	"context"
	"time"

	"calculator/pkg/domain"
)

// CalculationUpdates describes the optional fields that can be changed on an
// existing calculation. The service layer always recomputes and provides
// Result whenever an operand or the operation changes.
type CalculationUpdates struct {
	// Operation, when provided, replaces the arithmetic operation.
	Operation *domain.Operation
	// Operand1, when provided, replaces the left-hand operand.
	Operand1 *float64
	// Operand2, when provided, replaces the right-hand operand.
	Operand2 *float64
	// Result, when provided, replaces the stored result.
	Result *float64
}

// UserCalculations groups a page of calculations returned for a user together
// with an optional NextCursor used for pagination.
type UserCalculations struct {
	// Calculations contains the current page, newest first.
	Calculations []domain.Calculation
	// NextCursor points to the created_at timestamp to be used as the cursor
	// for fetching the next page. It is nil when there is no next page.
	NextCursor *time.Time
}

// CalculationStorage defines CRUD and aggregate operations for calculations.
// All operations are scoped to an owning user.
type CalculationStorage interface {
	// StoreCalculations inserts one or more calculations and returns the stored
	// rows as they exist in the database (including generated fields).
	StoreCalculations(ctx context.Context, calcs ...domain.Calculation) ([]domain.Calculation, error)
	// CalculationByID fetches a calculation by ID for the given user. Returns
	// nil when not found.
	CalculationByID(ctx context.Context, userID domain.UserID, id domain.CalculationID) (*domain.Calculation, error)
	// UpdateCalculationByID updates a single calculation owned by the user and
	// returns the updated row, or nil when it does not exist. updated_at is set
	// automatically; only provided fields are changed.
	UpdateCalculationByID(ctx context.Context,
		userID domain.UserID,
		id domain.CalculationID,
		updates CalculationUpdates) (*domain.Calculation, error)
	// DeleteCalculation removes the calculation and returns the deleted row, or
	// nil if it was not found.
	DeleteCalculation(ctx context.Context, userID domain.UserID, id domain.CalculationID) (*domain.Calculation, error)
	// UserCalculations returns a page of the user's calculations created before
	// the optional cursor time, limited by limit and ordered newest first.
	UserCalculations(ctx context.Context,
		userID domain.UserID,
		cursor time.Time,
		limit uint) (UserCalculations, error)
	// CalculationStats returns the total number of calculations for the user
	// and a per-operation breakdown.
	CalculationStats(ctx context.Context, userID domain.UserID) (domain.CalculationStats, error)
}
