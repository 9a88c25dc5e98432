package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/palette-scan/internal/application/auth"
	"github.com/tu-usuario/palette-scan/internal/domain"
	"github.com/tu-usuario/palette-scan/internal/domain/entity"
	pkgjwt "github.com/tu-usuario/palette-scan/pkg/jwt"
	"github.com/tu-usuario/palette-scan/pkg/logger"
)

type fakeIssuer struct {
	token string
	calls int
}

func (f *fakeIssuer) Login(ctx context.Context, username, password string) (string, *entity.User, error) {
	f.calls++
	return f.token, &entity.User{ID: "u1", Username: username}, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func issuedToken(t *testing.T, expMinutes int) string {
	t.Helper()
	tok, err := pkgjwt.Generate("secret", "u1", "operario1", "test", expMinutes)
	require.NoError(t, err)
	return tok
}

func TestLogin_GuardaTokenEIdentidad(t *testing.T) {
	issuer := &fakeIssuer{token: issuedToken(t, 60)}
	s := auth.NewSession(issuer, testLogger())

	require.NoError(t, s.Login(context.Background(), "operario1", "secret"))

	assert.True(t, s.Authenticated())
	assert.Equal(t, "operario1", s.Username())

	token, err := s.Token()
	require.NoError(t, err)
	assert.NotEmpty(t, token)
}

func TestLogin_CredencialesVacias_SinLlamadaDeRed(t *testing.T) {
	issuer := &fakeIssuer{}
	s := auth.NewSession(issuer, testLogger())

	err := s.Login(context.Background(), "", "")

	require.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Zero(t, issuer.calls)
}

func TestToken_SesionExpirada(t *testing.T) {
	// Token ya caducado en el momento de emitirse.
	issuer := &fakeIssuer{token: issuedToken(t, -5)}
	s := auth.NewSession(issuer, testLogger())
	require.NoError(t, s.Login(context.Background(), "operario1", "secret"))

	_, err := s.Token()

	require.ErrorIs(t, err, domain.ErrUnauthorized)
	assert.False(t, s.Authenticated())
}

func TestLogout_OlvidaLaSesion(t *testing.T) {
	issuer := &fakeIssuer{token: issuedToken(t, 60)}
	s := auth.NewSession(issuer, testLogger())
	require.NoError(t, s.Login(context.Background(), "operario1", "secret"))

	s.Logout()

	assert.False(t, s.Authenticated())
	assert.Empty(t, s.Username())
	token, err := s.Token()
	require.NoError(t, err)
	assert.Empty(t, token)
}
