// Package postgres provides PostgreSQL implementations of the store interfaces,
// using pgx through database/sql, and the embedded goose migrations that create
// their schema.
//
// List-valued columns (tags, social links) are JSONB and are encoded with
// encoding/json on the way in and out.
package postgres
