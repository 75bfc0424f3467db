package domain_test

import (
	"encoding/json"
	"testing"

	"calculator/pkg/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestUserID_JSONUsesUUIDString(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("a0a0a0a0-b1b1-c2c2-d3d3-e4e4e4e4e4e4")
	user := domain.User{ID: domain.UserID(id), Username: "alice"}

	buf, err := json.Marshal(user)
	require.NoError(t, err)
	require.Contains(t, string(buf), `"id":"a0a0a0a0-b1b1-c2c2-d3d3-e4e4e4e4e4e4"`)

	var got domain.User
	require.NoError(t, json.Unmarshal(buf, &got))
	require.Equal(t, user.ID, got.ID)
}

func TestCalculationID_JSONUsesUUIDString(t *testing.T) {
	t.Parallel()

	id := uuid.MustParse("11111111-2222-3333-4444-555555555555")
	owner := uuid.MustParse("a0a0a0a0-b1b1-c2c2-d3d3-e4e4e4e4e4e4")
	calc := domain.Calculation{
		ID:        domain.CalculationID(id),
		UserID:    domain.UserID(owner),
		Operation: domain.OperationAddition,
	}

	buf, err := json.Marshal(calc)
	require.NoError(t, err)
	require.Contains(t, string(buf), `"id":"11111111-2222-3333-4444-555555555555"`)
	require.Contains(t, string(buf), `"userId":"a0a0a0a0-b1b1-c2c2-d3d3-e4e4e4e4e4e4"`)

	var got domain.Calculation
	require.NoError(t, json.Unmarshal(buf, &got))
	require.Equal(t, calc.ID, got.ID)
	require.Equal(t, calc.UserID, got.UserID)
}
