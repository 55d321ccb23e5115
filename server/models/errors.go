package models

import (
	"regexp"
	"strings"

	"github.com/Daskott/rolodex/server/apperr"
	"github.com/jackc/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const PG_UNIQUE_VIOLATION = "23505"

var (
	// e.g. "UNIQUE constraint failed: users.email"
	sqliteUniqueRegex = regexp.MustCompile(`UNIQUE constraint failed: [\w]+\.(\w+)`)

	// e.g. "Key (email)=(ann@x.com) already exists."
	pgDetailKeyRegex = regexp.MustCompile(`Key \(([^)]+)\)`)
)

// translateError converts driver level errors into the apperr taxonomy.
// Errors it doesn't recognise are returned with a stack attached.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperr.ErrNotFound
	}

	if field, ok := uniqueViolationField(err); ok {
		return &apperr.ConflictError{Field: field, Err: err}
	}

	return errors.WithStack(err)
}

// uniqueViolationField reports whether err is a unique constraint violation and,
// when it can be determined, the column that caused it.
func uniqueViolationField(err error) (string, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code != PG_UNIQUE_VIOLATION {
			return "", false
		}
		return pgConstraintField(pgErr), true
	}

	matches := sqliteUniqueRegex.FindStringSubmatch(err.Error())
	if len(matches) == 2 {
		return matches[1], true
	}

	return "", false
}

func pgConstraintField(pgErr *pgconn.PgError) string {
	if matches := pgDetailKeyRegex.FindStringSubmatch(pgErr.Detail); len(matches) == 2 {
		return matches[1]
	}

	// gorm names unique indexes idx_<table>_<column>
	prefix := "idx_" + pgErr.TableName + "_"
	if pgErr.TableName != "" && strings.HasPrefix(pgErr.ConstraintName, prefix) {
		return strings.TrimPrefix(pgErr.ConstraintName, prefix)
	}

	return ""
}
