// Package auth mantiene la sesión del operario: login contra el backend,
// custodia del token y comprobación local de expiración antes de cada uso.
package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/tu-usuario/palette-scan/internal/domain"
	"github.com/tu-usuario/palette-scan/internal/domain/entity"
	"github.com/tu-usuario/palette-scan/pkg/jwt"
	"github.com/tu-usuario/palette-scan/pkg/logger"
)

// Issuer puerto de salida hacia la emisión de credenciales (POST /auth/login).
type Issuer interface {
	Login(ctx context.Context, username, password string) (token string, user *entity.User, err error)
}

// Session sesión en memoria del operario. No persiste el token: la
// aplicación de terminal vive lo que vive el turno.
type Session struct {
	issuer Issuer
	log    *logger.Logger
	now    func() time.Time

	token     string
	expiresAt time.Time
	user      *entity.User
}

// NewSession construye una sesión sin autenticar.
func NewSession(issuer Issuer, log *logger.Logger) *Session {
	return &Session{issuer: issuer, log: log.Component("session"), now: time.Now}
}

// Login autentica al operario. Credenciales vacías se rechazan sin llamada
// de red.
func (s *Session) Login(ctx context.Context, username, password string) error {
	if username == "" || password == "" {
		return fmt.Errorf("%w: usuario y contraseña obligatorios", domain.ErrInvalidInput)
	}
	token, user, err := s.issuer.Login(ctx, username, password)
	if err != nil {
		return err
	}

	exp, err := jwt.ExpiresAt(token)
	if err != nil {
		return fmt.Errorf("%w: token ilegible: %v", domain.ErrServer, err)
	}

	s.token = token
	s.expiresAt = exp
	s.user = user
	s.log.Info().Str("username", user.Username).Time("expires_at", exp).Msg("sesión abierta")
	return nil
}

// Logout descarta la sesión local. El backend no expone invalidación de
// tokens; basta con olvidarlo.
func (s *Session) Logout() {
	if s.user != nil {
		s.log.Info().Str("username", s.user.Username).Msg("sesión cerrada")
	}
	s.token = ""
	s.expiresAt = time.Time{}
	s.user = nil
}

// Authenticated indica si hay sesión abierta y vigente.
func (s *Session) Authenticated() bool {
	return s.token != "" && (s.expiresAt.IsZero() || s.now().Before(s.expiresAt))
}

// Token implementa rest.TokenProvider: vacío sin sesión (para /auth/login),
// error si el token guardado ya expiró.
func (s *Session) Token() (string, error) {
	if s.token == "" {
		return "", nil
	}
	if !s.expiresAt.IsZero() && !s.now().Before(s.expiresAt) {
		return "", fmt.Errorf("%w: sesión expirada", domain.ErrUnauthorized)
	}
	return s.token, nil
}

// Username implementa rest.Identity: actor de las modificaciones.
func (s *Session) Username() string {
	if s.user == nil {
		return ""
	}
	return s.user.Username
}

// User devuelve la identidad autenticada, o nil.
func (s *Session) User() *entity.User {
	return s.user
}
