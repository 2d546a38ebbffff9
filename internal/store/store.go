// Copyright (c) 2026 The Inkwell Authors
// All rights reserved. See LICENSE for details.

// Package store contains the PostgreSQL persistence layer. Each entity has
// its own store type holding a *sql.DB; the connection is injected so tests
// and callers control its lifecycle.
package store

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// uniqueViolation is the PostgreSQL error code for unique constraint failures.
const uniqueViolation = "23505"

// IsUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation. Used by callers that race on slug uniqueness: the pre-check
// loop can lose to a concurrent writer, and the constraint is the backstop.
func IsUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}
