package auth

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/manufactura-admin/internal/application/dto"
	"github.com/jhoicas/manufactura-admin/internal/application/ports"
	"github.com/jhoicas/manufactura-admin/internal/domain"
	"github.com/jhoicas/manufactura-admin/internal/domain/session"
	"github.com/jhoicas/manufactura-admin/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// sessionDropper lo implementa *usecase.ViewStore.
type sessionDropper interface {
	DropSession(sessionID string)
}

// AuthUseCase login contra el backend y emisión del token de sesión del panel.
type AuthUseCase struct {
	gateway ports.AuthGateway
	views   sessionDropper
	jwtCfg  JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(gateway ports.AuthGateway, views sessionDropper, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{gateway: gateway, views: views, jwtCfg: jwtCfg}
}

// Login valida localmente, autentica en el backend y firma la sesión.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, &domain.ValidationError{Field: "username", Message: "es requerido"}
	}
	if in.Password == "" {
		return nil, &domain.ValidationError{Field: "password", Message: "es requerido"}
	}
	res, err := uc.gateway.Login(ctx, username, in.Password)
	if err != nil {
		return nil, err
	}
	role := res.Role
	if role == "" {
		role = session.RoleOperador
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes, jwt.SessionClaims{
		SessionID:    uuid.New().String(),
		UserID:       res.UserID,
		Name:         res.Name,
		Role:         role,
		BackendToken: res.Token,
	})
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		User:      dto.UserResponse{ID: res.UserID, Name: res.Name, Role: role},
	}, nil
}

// Logout descarta las vistas en memoria de la sesión.
func (uc *AuthUseCase) Logout(sess session.Session) {
	if uc.views != nil {
		uc.views.DropSession(sess.ID)
	}
}

// ParseSession valida el token de sesión y construye la sesión explícita.
func (uc *AuthUseCase) ParseSession(token string) (session.Session, error) {
	claims, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return session.Session{}, domain.ErrUnauthorized
	}
	s := session.Session{
		ID:           claims.SessionID,
		UserID:       claims.UserID,
		Name:         claims.Name,
		Role:         claims.Role,
		BackendToken: claims.BackendToken,
	}
	if !s.Valid() {
		return session.Session{}, domain.ErrUnauthorized
	}
	return s, nil
}
