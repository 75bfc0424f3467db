package postgres

import (
	"context"
	"errors"
	"fmt"

	"calculator/pkg/domain"
	"calculator/pkg/storage"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	usersTable = "users"
)

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError

	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}

// StoreUser inserts a new user and returns the stored row. A username or
// email collision is reported as storage.ErrDuplicate.
func (p *PgSQL) StoreUser(ctx context.Context, user domain.User) (*domain.User, error) {
	var pgUser PgUser
	pgUser.FromDomain(user)

	var row PgUser
	found, err := p.Builder.Insert(usersTable).
		Rows(pgUser).
		Returning(&PgUser{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("could not store user: %w", storage.ErrDuplicate)
		}

		return nil, fmt.Errorf("could not store user into pg: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("could not store user into pg: no row returned")
	}

	return row.ToDomain(), nil
}

// userByExpr fetches a single user matching the given expressions. Returns
// nil when no row matches.
func (p *PgSQL) userByExpr(ctx context.Context, exprs ...goqu.Expression) (*domain.User, error) {
	var row PgUser
	found, err := p.Builder.From(usersTable).
		Where(exprs...).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch user from pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// UserByID returns a user by its ID.
func (p *PgSQL) UserByID(ctx context.Context, id domain.UserID) (*domain.User, error) {
	return p.userByExpr(ctx, goqu.I("id").Eq(uuid.UUID(id)))
}

// UserByEmail returns a user by exact email address.
func (p *PgSQL) UserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return p.userByExpr(ctx, goqu.I("email").Eq(email))
}

// UserByLogin returns a user whose username or email matches login.
func (p *PgSQL) UserByLogin(ctx context.Context, login string) (*domain.User, error) {
	return p.userByExpr(ctx, goqu.Or(
		goqu.I("username").Eq(login),
		goqu.I("email").Eq(login),
	))
}

// UserByVerificationToken returns the user holding the given verification nonce.
func (p *PgSQL) UserByVerificationToken(ctx context.Context, token string) (*domain.User, error) {
	return p.userByExpr(ctx, goqu.I("verification_token").Eq(token))
}

// UserByResetToken returns the user holding the given password-reset nonce.
func (p *PgSQL) UserByResetToken(ctx context.Context, token string) (*domain.User, error) {
	return p.userByExpr(ctx, goqu.I("reset_token").Eq(token))
}

// UpdateUserByID applies the provided field set to a single user and returns
// the updated row. Only non-nil fields are changed; updated_at is always set.
func (p *PgSQL) UpdateUserByID(ctx context.Context,
	id domain.UserID,
	updates storage.UserUpdates) (*domain.User, error) {
	rec := goqu.Record{
		"updated_at": goqu.L("CURRENT_TIMESTAMP"),
	}
	if updates.PasswordHash != nil {
		rec["password_hash"] = *updates.PasswordHash
	}
	if updates.IsVerified != nil {
		rec["is_verified"] = *updates.IsVerified
	}
	if updates.IsActive != nil {
		rec["is_active"] = *updates.IsActive
	}
	if updates.VerificationToken != nil {
		if *updates.VerificationToken == "" {
			rec["verification_token"] = goqu.L("NULL")
		} else {
			rec["verification_token"] = *updates.VerificationToken
		}
	}
	if updates.VerificationExpires != nil {
		if updates.VerificationExpires.IsZero() {
			rec["verification_expires"] = goqu.L("NULL")
		} else {
			rec["verification_expires"] = *updates.VerificationExpires
		}
	}
	if updates.ResetToken != nil {
		if *updates.ResetToken == "" {
			rec["reset_token"] = goqu.L("NULL")
		} else {
			rec["reset_token"] = *updates.ResetToken
		}
	}
	if updates.ResetExpires != nil {
		if updates.ResetExpires.IsZero() {
			rec["reset_expires"] = goqu.L("NULL")
		} else {
			rec["reset_expires"] = *updates.ResetExpires
		}
	}

	var row PgUser
	found, err := p.Builder.Update(usersTable).
		Set(rec).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Returning(&PgUser{}).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, fmt.Errorf("could not update user: %w", storage.ErrDuplicate)
		}

		return nil, fmt.Errorf("could not update user in pg: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}
