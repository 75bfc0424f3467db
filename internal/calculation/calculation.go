package calculation

import (
	"context"
	"fmt"
	"time"

	"calculator/pkg/domain"
	"calculator/pkg/serrors"
	"calculator/pkg/storage"
)

const (
	// DefaultPageSize is used when a list request does not specify a limit.
	DefaultPageSize = 20
	// MaxPageSize caps the page size a client may request.
	MaxPageSize = 100
)

// calculator is the concrete implementation of the Calculator interface.
type calculator struct {
	storage storage.Storage
}

// New creates a new Calculator backed by the provided storage.
func New(storage storage.Storage) Calculator {
	return &calculator{storage: storage}
}

// Compute applies op to the operands. Division by zero is rejected with a
// bad-request error so nothing invalid is ever persisted.
func Compute(op domain.Operation, operand1, operand2 float64) (float64, error) {
	switch op {
	case domain.OperationAddition:
		return operand1 + operand2, nil
	case domain.OperationSubtraction:
		return operand1 - operand2, nil
	case domain.OperationMultiplication:
		return operand1 * operand2, nil
	case domain.OperationDivision:
		if operand2 == 0 {
			return 0, serrors.With(serrors.ErrBadRequest, "division by zero is not allowed")
		}

		return operand1 / operand2, nil
	default:
		return 0, serrors.With(serrors.ErrBadRequest, "unsupported operation: %s", op)
	}
}

// Create validates, computes and stores a new calculation for the user.
func (c calculator) Create(ctx context.Context,
	userID domain.UserID,
	op domain.Operation,
	operand1, operand2 float64) (*domain.Calculation, error) {
	result, err := Compute(op, operand1, operand2)
	if err != nil {
		return nil, err
	}

	stored, err := c.storage.StoreCalculations(ctx, domain.Calculation{
		UserID:    userID,
		Operation: op,
		Operand1:  operand1,
		Operand2:  operand2,
		Result:    result,
	})
	if err != nil {
		return nil, fmt.Errorf("could not store calculation: %w", err)
	}

	return &stored[0], nil
}

// UserCalculations returns a page of the user's calculations, newest first.
// It supports cursor-based pagination using an RFC3339 timestamp string and
// returns the next cursor when more results are available.
func (c calculator) UserCalculations(ctx context.Context,
	userID domain.UserID,
	cursor string,
	limit uint) ([]domain.Calculation, string, error) {
	var cursorTime time.Time
	if cursor != "" {
		t, err := time.Parse(time.RFC3339, cursor)
		if err != nil {
			return nil, "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
		}
		cursorTime = t
	}

	if limit == 0 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}

	page, err := c.storage.UserCalculations(ctx, userID, cursorTime, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not get user calculations: %w", err)
	}

	var next string
	if page.NextCursor != nil {
		next = page.NextCursor.Format(time.RFC3339)
	}

	return page.Calculations, next, nil
}

// Calculation fetches a single calculation by ID for the given user. It
// returns a not-found error when no matching calculation exists.
func (c calculator) Calculation(ctx context.Context,
	userID domain.UserID,
	id domain.CalculationID) (*domain.Calculation, error) {
	res, err := c.storage.CalculationByID(ctx, userID, id)
	if err != nil {
		return nil, fmt.Errorf("could not get calculation: %w", err)
	}
	if res == nil {
		return nil, serrors.With(serrors.ErrNotFound, "calculation not found")
	}

	return res, nil
}

// Update edits a stored calculation. The current row is read first so the
// result can be recomputed from the effective operation and operands.
func (c calculator) Update(ctx context.Context,
	userID domain.UserID,
	id domain.CalculationID,
	params UpdateParams) (*domain.Calculation, error) {
	if params.Operation == nil && params.Operand1 == nil && params.Operand2 == nil {
		return nil, serrors.With(serrors.ErrBadRequest, "nothing to update")
	}

	var updated *domain.Calculation
	if err := c.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		current, err := tx.CalculationByID(ctx, userID, id)
		if err != nil {
			return fmt.Errorf("could not get calculation: %w", err)
		}
		if current == nil {
			return serrors.With(serrors.ErrNotFound, "calculation not found")
		}

		op, operand1, operand2 := current.Operation, current.Operand1, current.Operand2
		if params.Operation != nil {
			op = *params.Operation
		}
		if params.Operand1 != nil {
			operand1 = *params.Operand1
		}
		if params.Operand2 != nil {
			operand2 = *params.Operand2
		}

		result, err := Compute(op, operand1, operand2)
		if err != nil {
			return err
		}

		updated, err = tx.UpdateCalculationByID(ctx, userID, id, storage.CalculationUpdates{
			Operation: &op,
			Operand1:  &operand1,
			Operand2:  &operand2,
			Result:    &result,
		})
		if err != nil {
			return fmt.Errorf("could not update calculation: %w", err)
		}
		if updated == nil {
			return serrors.With(serrors.ErrNotFound, "calculation not found")
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not update calculation: %w", err)
	}

	return updated, nil
}

// Delete removes a calculation belonging to the given user. If the
// calculation does not exist, a not-found error is returned.
func (c calculator) Delete(ctx context.Context, userID domain.UserID, id domain.CalculationID) error {
	res, err := c.storage.DeleteCalculation(ctx, userID, id)
	if err != nil {
		return fmt.Errorf("could not delete calculation: %w", err)
	}
	if res == nil {
		return serrors.With(serrors.ErrNotFound, "calculation not found")
	}

	return nil
}

// Stats aggregates the user's stored calculations per operation. Operations
// with no stored calculations are reported with a zero count.
func (c calculator) Stats(ctx context.Context, userID domain.UserID) (domain.CalculationStats, error) {
	stats, err := c.storage.CalculationStats(ctx, userID)
	if err != nil {
		return domain.CalculationStats{}, fmt.Errorf("could not get calculation stats: %w", err)
	}

	if stats.ByOperation == nil {
		stats.ByOperation = make(map[domain.Operation]int64)
	}
	for _, op := range []domain.Operation{
		domain.OperationAddition,
		domain.OperationSubtraction,
		domain.OperationMultiplication,
		domain.OperationDivision,
	} {
		if _, ok := stats.ByOperation[op]; !ok {
			stats.ByOperation[op] = 0
		}
	}

	return stats, nil
}
