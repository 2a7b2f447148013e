package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, isUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("23505")))
}

func TestDatabaseURLWithIPv4_ConIPSinCambios(t *testing.T) {
	assert.Equal(t, "postgres://u:p@127.0.0.1:5432/db", databaseURLWithIPv4("postgres://u:p@127.0.0.1:5432/db"))
	assert.Equal(t, "::no-es-url", databaseURLWithIPv4("::no-es-url"))
}
