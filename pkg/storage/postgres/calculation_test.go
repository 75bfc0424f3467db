package postgres_test

import (
	"context"
	"testing"
	"time"

	"calculator/pkg/domain"
	"calculator/pkg/storage"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// calc is a shorthand for building a calculation owned by userID.
func calc(userID domain.UserID, op domain.Operation, a, b, result float64) domain.Calculation {
	return domain.Calculation{
		UserID:    userID,
		Operation: op,
		Operand1:  a,
		Operand2:  b,
		Result:    result,
	}
}

func TestPgSQL_StoreCalculations(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	owner := storeUser(t, pgSQL, newUser())

	t.Run("store single calculation", func(t *testing.T) {
		res, err := pgSQL.StoreCalculations(ctx, calc(owner.ID, domain.OperationAddition, 2, 3, 5))
		require.NoError(t, err)
		require.Len(t, res, 1)
		require.NotEqual(t, domain.CalculationID(uuid.Nil), res[0].ID)
		require.Equal(t, owner.ID, res[0].UserID)
		require.InDelta(t, 5, res[0].Result, 0)
		require.False(t, res[0].CreatedAt.IsZero())
	})

	t.Run("store multiple calculations", func(t *testing.T) {
		res, err := pgSQL.StoreCalculations(ctx,
			calc(owner.ID, domain.OperationSubtraction, 5, 3, 2),
			calc(owner.ID, domain.OperationMultiplication, 5, 3, 15),
		)
		require.NoError(t, err)
		require.Len(t, res, 2)
	})

	t.Run("store empty calculations", func(t *testing.T) {
		res, err := pgSQL.StoreCalculations(ctx)
		require.NoError(t, err)
		require.Empty(t, res)
	})
}

func TestPgSQL_CalculationByID(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	userA := storeUser(t, pgSQL, newUser())
	userB := storeUser(t, pgSQL, newUser())

	storedA, err := pgSQL.StoreCalculations(ctx, calc(userA.ID, domain.OperationAddition, 1, 2, 3))
	require.NoError(t, err)
	storedB, err := pgSQL.StoreCalculations(ctx, calc(userB.ID, domain.OperationDivision, 6, 2, 3))
	require.NoError(t, err)

	// correct user & id
	got, err := pgSQL.CalculationByID(ctx, userA.ID, storedA[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, storedA[0].ID, got.ID)

	// wrong user should not see other's calculation
	got2, err := pgSQL.CalculationByID(ctx, userA.ID, storedB[0].ID)
	require.NoError(t, err)
	require.Nil(t, got2)
}

func TestPgSQL_UpdateCalculationByID(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	owner := storeUser(t, pgSQL, newUser())
	stored, err := pgSQL.StoreCalculations(ctx, calc(owner.ID, domain.OperationAddition, 2, 3, 5))
	require.NoError(t, err)
	id := stored[0].ID

	// change one operand and the recomputed result
	operand1 := 10.0
	result := 13.0
	updated, err := pgSQL.UpdateCalculationByID(ctx, owner.ID, id, storage.CalculationUpdates{
		Operand1: &operand1,
		Result:   &result,
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	require.InDelta(t, 10, updated.Operand1, 0)
	require.InDelta(t, 3, updated.Operand2, 0)
	require.InDelta(t, 13, updated.Result, 0)
	require.Equal(t, domain.OperationAddition, updated.Operation)
	require.False(t, updated.UpdatedAt.IsZero())

	// updating someone else's calculation returns nil
	other := storeUser(t, pgSQL, newUser())
	updated2, err := pgSQL.UpdateCalculationByID(ctx, other.ID, id, storage.CalculationUpdates{
		Operand1: &operand1,
	})
	require.NoError(t, err)
	require.Nil(t, updated2)
}

func TestPgSQL_DeleteCalculation(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	owner := storeUser(t, pgSQL, newUser())
	stored, err := pgSQL.StoreCalculations(ctx, calc(owner.ID, domain.OperationAddition, 1, 1, 2))
	require.NoError(t, err)
	id := stored[0].ID

	// delete
	deleted, err := pgSQL.DeleteCalculation(ctx, owner.ID, id)
	require.NoError(t, err)
	require.NotNil(t, deleted)
	require.Equal(t, id, deleted.ID)
	// fetching by id should return nil
	got, err := pgSQL.CalculationByID(ctx, owner.ID, id)
	require.NoError(t, err)
	require.Nil(t, got)
	// deleting again should not error
	deleted2, err := pgSQL.DeleteCalculation(ctx, owner.ID, id)
	require.NoError(t, err)
	require.Nil(t, deleted2)
}

func TestPgSQL_UserCalculations_Pagination(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	owner := storeUser(t, pgSQL, newUser())

	// insert 5 calculations
	calcs := make([]domain.Calculation, 0, 5)
	for i := range 5 {
		calcs = append(calcs, calc(owner.ID, domain.OperationAddition, float64(i), 1, float64(i+1)))
	}
	stored, err := pgSQL.StoreCalculations(ctx, calcs...)
	require.NoError(t, err)
	require.Len(t, stored, 5)

	// adjust created_at to be deterministic descending: now, now-1m, ...
	now := time.Now().UTC()
	for i, sc := range stored {
		created := now.Add(-time.Duration(4-i) * time.Minute) // stored order is same as input; make last newest
		_, err := pgSQL.DB.ExecContext(ctx, "UPDATE calculations SET created_at = $1 WHERE id = $2", created, uuid.UUID(sc.ID))
		require.NoError(t, err)
	}

	// first page, limit 2
	p1, err := pgSQL.UserCalculations(ctx, owner.ID, time.Time{}, 2)
	require.NoError(t, err)
	require.Len(t, p1.Calculations, 2)
	require.NotNil(t, p1.NextCursor)
	c1 := *p1.NextCursor

	// second page
	p2, err := pgSQL.UserCalculations(ctx, owner.ID, c1, 2)
	require.NoError(t, err)
	require.Len(t, p2.Calculations, 2)
	require.NotNil(t, p2.NextCursor)
	c2 := *p2.NextCursor

	// third (last) page, should have 1 left and no next cursor
	p3, err := pgSQL.UserCalculations(ctx, owner.ID, c2, 2)
	require.NoError(t, err)
	require.Len(t, p3.Calculations, 1)
	require.Nil(t, p3.NextCursor)

	// newest first on every page
	require.True(t, p1.Calculations[0].CreatedAt.After(p1.Calculations[1].CreatedAt))
}

func TestPgSQL_CalculationStats(t *testing.T) {
	t.Parallel()

	pgSQL, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	owner := storeUser(t, pgSQL, newUser())
	other := storeUser(t, pgSQL, newUser())

	_, err := pgSQL.StoreCalculations(ctx,
		calc(owner.ID, domain.OperationAddition, 1, 1, 2),
		calc(owner.ID, domain.OperationAddition, 2, 2, 4),
		calc(owner.ID, domain.OperationDivision, 6, 2, 3),
		calc(other.ID, domain.OperationMultiplication, 2, 2, 4),
	)
	require.NoError(t, err)

	stats, err := pgSQL.CalculationStats(ctx, owner.ID)
	require.NoError(t, err)
	require.EqualValues(t, 3, stats.Total)
	require.EqualValues(t, 2, stats.ByOperation[domain.OperationAddition])
	require.EqualValues(t, 1, stats.ByOperation[domain.OperationDivision])
	// other user's calculations are not counted
	require.NotContains(t, stats.ByOperation, domain.OperationMultiplication)

	// a user with no calculations gets empty stats
	empty, err := pgSQL.CalculationStats(ctx, domain.UserID(uuid.New()))
	require.NoError(t, err)
	require.Zero(t, empty.Total)
	require.Empty(t, empty.ByOperation)
}
