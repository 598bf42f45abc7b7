package postgres

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	apperrors "github.com/yourusername/predictor-api/internal/pkg/errors"
)

// pgUniqueViolation is the Postgres error code for unique constraint
// violations. Uniqueness (user+fixture, user+season, league+user, invite
// code, email, username) is enforced at the storage layer so concurrent
// duplicate creations fail deterministically.
const pgUniqueViolation = "23505"

// translateError maps driver/GORM errors onto the application sentinels.
func translateError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperrors.ErrNotFound
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperrors.ErrConflict
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return apperrors.ErrConflict
	}
	return err
}
