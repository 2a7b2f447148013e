package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgjwt "github.com/jhoicas/manufactura-admin/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func sample() pkgjwt.SessionClaims {
	return pkgjwt.SessionClaims{
		SessionID:    "sess-1",
		UserID:       "u-1",
		Name:         "Ana",
		Role:         "supervisor",
		BackendToken: "backend-abc",
	}
}

func TestGenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "manufactura-admin-test", 60, sample())
	require.NoError(t, err)

	got, err := pkgjwt.Parse(testSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, sample(), *got)
}

func TestParse_TokenExpirado(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "x", -1, sample())
	require.NoError(t, err)
	_, err = pkgjwt.Parse(testSecret, tok)
	assert.Error(t, err, "token expirado debe retornar error")
}

func TestParse_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testSecret, "x", 60, sample())
	require.NoError(t, err)
	_, err = pkgjwt.Parse("otro-secret", tok)
	assert.Error(t, err)
}

func TestGenerate_SecretVacio(t *testing.T) {
	_, err := pkgjwt.Generate("", "x", 60, sample())
	assert.Error(t, err)
}
