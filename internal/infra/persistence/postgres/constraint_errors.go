package postgres

import (
	"fullapp/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes translated into domain errors.
const (
	pgUniqueViolation   = "23505"
	pgNotNullViolation  = "23502"
	pgCheckViolation    = "23514"
	pgNumericOutOfRange = "22003"
	pgStringTooLong     = "22001"
)

func pgErrorCode(err error) string {
	if pgErr, ok := errors.Find[*pgconn.PgError](err); ok {
		return pgErr.Code
	}

	return ""
}

// Helper functions for PostgreSQL error checking.
// gorm only maps driver errors when TranslateError is enabled, so the SQLSTATE is checked as well.
func isUniqueConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, gorm.ErrDuplicatedKey) || pgErrorCode(err) == pgUniqueViolation
}

func isNotNullConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	return pgErrorCode(err) == pgNotNullViolation
}

func isCheckConstraintViolation(err error) bool {
	if err == nil {
		return false
	}

	return errors.Is(err, gorm.ErrCheckConstraintViolated) || pgErrorCode(err) == pgCheckViolation
}

// isValueOutOfRange reports values the column type cannot hold.
func isValueOutOfRange(err error) bool {
	switch pgErrorCode(err) {
	case pgNumericOutOfRange, pgStringTooLong:
		return true
	default:
		return false
	}
}
