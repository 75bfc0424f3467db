package postgres

import (
	"context"
	"fmt"
	"time"

	"calculator/pkg/domain"
	"calculator/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	calculationsTable = "calculations"
)

// StoreCalculations inserts one or more calculations and returns the stored
// rows as they exist in the database.
func (p *PgSQL) StoreCalculations(ctx context.Context,
	calcs ...domain.Calculation) ([]domain.Calculation, error) {
	if len(calcs) == 0 {
		return nil, nil
	}

	pgCalcs := make([]PgCalculation, len(calcs))
	for i := range calcs {
		pgCalcs[i].FromDomain(calcs[i])
	}

	var result []PgCalculation
	if err := p.Builder.Insert(calculationsTable).
		Rows(pgCalcs).
		Returning(&PgCalculation{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store calculations into pg: %w", err)
	}

	return pgCalculationsToDomain(result), nil
}

// CalculationByID returns a calculation by its ID for the given user.
func (p *PgSQL) CalculationByID(ctx context.Context,
	userID domain.UserID,
	id domain.CalculationID) (*domain.Calculation, error) {
	var row PgCalculation
	found, err := p.Builder.From(calculationsTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("user_id").Eq(uuid.UUID(userID)),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch calculation by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// UpdateCalculationByID updates a single calculation owned by the user and
// returns the updated row. Only provided fields are changed; updated_at is set.
func (p *PgSQL) UpdateCalculationByID(ctx context.Context,
	userID domain.UserID,
	id domain.CalculationID,
	updates storage.CalculationUpdates) (*domain.Calculation, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
	}
	if updates.Operation != nil {
		rec["operation"] = string(*updates.Operation)
	}
	if updates.Operand1 != nil {
		rec["operand1"] = *updates.Operand1
	}
	if updates.Operand2 != nil {
		rec["operand2"] = *updates.Operand2
	}
	if updates.Result != nil {
		rec["result"] = *updates.Result
	}

	var row PgCalculation
	found, err := p.Builder.Update(calculationsTable).
		Set(rec).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("user_id").Eq(uuid.UUID(userID)),
		).
		Returning(&PgCalculation{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not update calculation in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// DeleteCalculation removes a calculation owned by the user and returns the
// deleted row, or nil when it was not found.
func (p *PgSQL) DeleteCalculation(ctx context.Context,
	userID domain.UserID,
	id domain.CalculationID) (*domain.Calculation, error) {
	var row PgCalculation
	found, err := p.Builder.Delete(calculationsTable).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("user_id").Eq(uuid.UUID(userID)),
		).
		Returning(&PgCalculation{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not delete calculation in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// UserCalculations returns a page of the user's calculations filtered by an
// optional cursor and limited by limit. Results are ordered by created_at
// DESC, id DESC. A next cursor is returned when more rows exist.
func (p *PgSQL) UserCalculations(ctx context.Context,
	userID domain.UserID,
	cursor time.Time,
	limit uint) (storage.UserCalculations, error) {
	w := []goqu.Expression{
		goqu.I("user_id").Eq(uuid.UUID(userID)),
	}
	if !cursor.IsZero() {
		w = append(w, goqu.I("created_at").Lt(cursor))
	}

	// fetch one extra to determine if there is a next page
	fetch := limit + 1
	ds := p.Builder.From(calculationsTable).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(fetch)

	var rows []PgCalculation
	if err := ds.Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.UserCalculations{}, fmt.Errorf("could not fetch user calculations from pg: %w", err)
	}

	var nextCursor *time.Time
	if uint(len(rows)) > limit {
		trimmed := rows[:limit]
		nextCursor = &trimmed[len(trimmed)-1].CreatedAt
		rows = trimmed
	}

	return storage.UserCalculations{
		Calculations: pgCalculationsToDomain(rows),
		NextCursor:   nextCursor,
	}, nil
}

// CalculationStats returns the per-operation counts and total for the user.
func (p *PgSQL) CalculationStats(ctx context.Context,
	userID domain.UserID) (domain.CalculationStats, error) {
	var rows []struct {
		Operation string `db:"operation"`
		Count     int64  `db:"count"`
	}
	if err := p.Builder.From(calculationsTable).
		Select(goqu.I("operation"), goqu.COUNT(goqu.I("id")).As("count")).
		Where(goqu.I("user_id").Eq(uuid.UUID(userID))).
		GroupBy(goqu.I("operation")).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return domain.CalculationStats{}, fmt.Errorf("could not fetch calculation stats from pg: %w", err)
	}

	stats := domain.CalculationStats{
		ByOperation: make(map[domain.Operation]int64, len(rows)),
	}
	for _, row := range rows {
		stats.ByOperation[domain.Operation(row.Operation)] = row.Count
		stats.Total += row.Count
	}

	return stats, nil
}
