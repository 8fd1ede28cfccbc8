// Package pg connects to PostgreSQL through a pgx pool, applies embedded
// goose migrations and classifies common driver errors.
package pg
