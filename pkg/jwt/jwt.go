package jwt

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims del token de sesión del panel. BackendToken es el token que el backend
// emitió en el login; viaja firmado para que cada petición lo reenvíe sin estado en servidor.
type Claims struct {
	jwt.RegisteredClaims
	UserID       string `json:"user_id"`
	Name         string `json:"name,omitempty"`
	Role         string `json:"role"` // "admin" | "supervisor" | "operador"
	BackendToken string `json:"backend_token"`
}

// SessionClaims datos que se firman en el token.
type SessionClaims struct {
	SessionID    string
	UserID       string
	Name         string
	Role         string
	BackendToken string
}

// Generate genera un token de sesión firmado (HS256).
func Generate(secret, issuer string, expMinutes int, in SessionClaims) (string, error) {
	if secret == "" {
		return "", fmt.Errorf("jwt: secret vacío")
	}
	now := time.Now()
	claims := Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        in.SessionID,
			Issuer:    issuer,
			Subject:   in.UserID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Duration(expMinutes) * time.Minute)),
		},
		UserID:       in.UserID,
		Name:         in.Name,
		Role:         in.Role,
		BackendToken: in.BackendToken,
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Parse valida el token y devuelve sus claims.
// Retorna error si el token es inválido, expirado o tiene firma incorrecta.
func Parse(secret, tokenString string) (*SessionClaims, error) {
	if secret == "" {
		return nil, fmt.Errorf("jwt: secret vacío")
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("claims inválidos")
	}
	return &SessionClaims{
		SessionID:    claims.ID,
		UserID:       claims.UserID,
		Name:         claims.Name,
		Role:         claims.Role,
		BackendToken: claims.BackendToken,
	}, nil
}
