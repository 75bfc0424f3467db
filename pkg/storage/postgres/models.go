package postgres

import (
	"database/sql"
	"time"

	"calculator/pkg/domain"

	"github.com/google/uuid"
)

// PgUser is the database representation of a user row.
type PgUser struct {
	ID uuid.UUID `db:"id" goqu:"skipinsert"`

	Username     string `db:"username"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`

	FirstName string `db:"first_name"`
	LastName  string `db:"last_name"`

	IsVerified bool `db:"is_verified"`
	IsActive   bool `db:"is_active"`

	VerificationToken   sql.NullString `db:"verification_token"`
	VerificationExpires sql.NullTime   `db:"verification_expires"`
	ResetToken          sql.NullString `db:"reset_token"`
	ResetExpires        sql.NullTime   `db:"reset_expires"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
}

func (p *PgUser) ToDomain() *domain.User {
	return &domain.User{
		ID:                  domain.UserID(p.ID),
		Username:            p.Username,
		Email:               p.Email,
		PasswordHash:        p.PasswordHash,
		FirstName:           p.FirstName,
		LastName:            p.LastName,
		IsVerified:          p.IsVerified,
		IsActive:            p.IsActive,
		VerificationToken:   p.VerificationToken.String,
		VerificationExpires: p.VerificationExpires.Time,
		ResetToken:          p.ResetToken.String,
		ResetExpires:        p.ResetExpires.Time,
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt.Time,
	}
}

func (p *PgUser) FromDomain(user domain.User) {
	*p = PgUser{
		ID:           uuid.UUID(user.ID),
		Username:     user.Username,
		Email:        user.Email,
		PasswordHash: user.PasswordHash,
		FirstName:    user.FirstName,
		LastName:     user.LastName,
		IsVerified:   user.IsVerified,
		IsActive:     user.IsActive,
		VerificationToken: sql.NullString{
			String: user.VerificationToken,
			Valid:  user.VerificationToken != "",
		},
		VerificationExpires: sql.NullTime{
			Time:  user.VerificationExpires,
			Valid: !user.VerificationExpires.IsZero(),
		},
		ResetToken: sql.NullString{
			String: user.ResetToken,
			Valid:  user.ResetToken != "",
		},
		ResetExpires: sql.NullTime{
			Time:  user.ResetExpires,
			Valid: !user.ResetExpires.IsZero(),
		},
		CreatedAt: user.CreatedAt,
		UpdatedAt: sql.NullTime{
			Time:  user.UpdatedAt,
			Valid: !user.UpdatedAt.IsZero(),
		},
	}
}

// PgCalculation is the database representation of a calculation row.
type PgCalculation struct {
	ID     uuid.UUID `db:"id" goqu:"skipinsert"`
	UserID uuid.UUID `db:"user_id"`

	Operation string  `db:"operation"`
	Operand1  float64 `db:"operand1"`
	Operand2  float64 `db:"operand2"`
	Result    float64 `db:"result"`

	CreatedAt time.Time    `db:"created_at" goqu:"skipinsert"`
	UpdatedAt sql.NullTime `db:"updated_at" goqu:"skipinsert"`
}

func (p *PgCalculation) ToDomain() *domain.Calculation {
	return &domain.Calculation{
		ID:        domain.CalculationID(p.ID),
		UserID:    domain.UserID(p.UserID),
		Operation: domain.Operation(p.Operation),
		Operand1:  p.Operand1,
		Operand2:  p.Operand2,
		Result:    p.Result,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt.Time,
	}
}

func (p *PgCalculation) FromDomain(calc domain.Calculation) {
	*p = PgCalculation{
		ID:        uuid.UUID(calc.ID),
		UserID:    uuid.UUID(calc.UserID),
		Operation: string(calc.Operation),
		Operand1:  calc.Operand1,
		Operand2:  calc.Operand2,
		Result:    calc.Result,
		CreatedAt: calc.CreatedAt,
		UpdatedAt: sql.NullTime{
			Time:  calc.UpdatedAt,
			Valid: !calc.UpdatedAt.IsZero(),
		},
	}
}

func pgCalculationsToDomain(calcs []PgCalculation) []domain.Calculation {
	out := make([]domain.Calculation, 0, len(calcs))
	for i := range calcs {
		out = append(out, *calcs[i].ToDomain())
	}

	return out
}
