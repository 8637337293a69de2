// Copyright (c) 2026 Harmonia. All rights reserved.

// Package dberr provides a bridge between low-level database errors and
// higher-level application errors.
package dberr

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/harmonia-catalog/harmonia/internal/platform/apperr"
)

var (
	// ErrNotFound is a standard error returned when a queried row doesn't exist.
	ErrNotFound = apperr.NotFound("Resource")
)

// Wrap inspects a database error and wraps it into a meaningful [apperr.AppError].
// It hides internal database details from the client while classifying the error type.
//
// Classification by SQLSTATE: unique_violation -> Conflict,
// foreign_key_violation -> ForeignKeyViolation, no rows -> [ErrNotFound],
// anything else -> [apperr.Internal].
func Wrap(err error, action string) error {
	if err == nil {
		return nil
	}

	// 1. Not Found mapping
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}

	// 2. Postgres constraint violations reclassified to business errors
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return apperr.Conflict(conflictMessage(pgErr))
		case pgerrcode.ForeignKeyViolation:
			return apperr.ForeignKeyViolation(pgErr.TableName, pgErr.ConstraintName)
		}
	}

	// 3. Unknown query errors become Internal Server Errors
	return apperr.Internal(err)
}

// conflictMessage builds a human-readable message for a unique_violation,
// falling back to a generic phrasing when the constraint name isn't
// informative.
func conflictMessage(pgErr *pgconn.PgError) string {
	if pgErr.ConstraintName != "" {
		return "a record with the same " + pgErr.ConstraintName + " already exists"
	}
	return "duplicate value violates a uniqueness constraint"
}
