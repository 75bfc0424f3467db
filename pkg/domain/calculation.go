package domain

import (
	"time"

	"github.com/google/uuid"
)

// CalculationID uniquely identifies a calculation.
// It wraps uuid.UUID to provide type safety at the domain layer.
type CalculationID uuid.UUID

// MarshalText renders the ID in canonical UUID string form, so JSON bodies
// carry "id": "<uuid>" rather than a byte array.
func (id CalculationID) MarshalText() ([]byte, error) {
	return uuid.UUID(id).MarshalText() //nolint: wrapcheck
}

// UnmarshalText parses a canonical UUID string.
func (id *CalculationID) UnmarshalText(data []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(data) //nolint: wrapcheck
}

// Operation names an arithmetic operation supported by the service.
type Operation string

const (
	// OperationAddition adds the two operands.
	OperationAddition Operation = "addition"
	// OperationSubtraction subtracts operand2 from operand1.
	OperationSubtraction Operation = "subtraction"
	// OperationMultiplication multiplies the two operands.
	OperationMultiplication Operation = "multiplication"
	// OperationDivision divides operand1 by operand2. Division by zero is
	// rejected before a calculation is stored.
	OperationDivision Operation = "division"
)

// Valid reports whether op is one of the supported operations.
func (op Operation) Valid() bool {
	switch op {
	case OperationAddition, OperationSubtraction, OperationMultiplication, OperationDivision:
		return true
	}

	return false
}

// Calculation represents a single stored arithmetic calculation owned by a user.
// The result is always computed server-side from the operation and operands.
type Calculation struct {
	// ID is the unique identifier of the calculation.
	ID CalculationID `json:"id"`
	// UserID is the identifier of the owning user. All reads and writes are
	// scoped by this field.
	UserID UserID `json:"userId"`

	// Operation is the arithmetic operation applied to the operands.
	Operation Operation `json:"operation"`
	// Operand1 is the left-hand operand.
	Operand1 float64 `json:"operand1"`
	// Operand2 is the right-hand operand.
	Operand2 float64 `json:"operand2"`
	// Result is the computed outcome of the operation.
	Result float64 `json:"result"`

	// CreatedAt is the time the calculation was created.
	CreatedAt time.Time `json:"createdAt"`
	// UpdatedAt is the time the calculation was last updated.
	UpdatedAt time.Time `json:"updatedAt"`
}

// CalculationStats aggregates a user's stored calculations.
type CalculationStats struct {
	// Total is the number of calculations owned by the user.
	Total int64 `json:"totalCalculations"`
	// ByOperation maps each operation to the number of stored calculations using it.
	ByOperation map[Operation]int64 `json:"operations"`
}
