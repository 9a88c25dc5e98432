package rest

import (
	"context"
	"fmt"

	"github.com/tu-usuario/palette-scan/internal/domain/entity"
)

// AuthGateway intercambio de credenciales contra el backend.
type AuthGateway struct {
	c *Client
}

// NewAuthGateway construye la pasarela de autenticación.
func NewAuthGateway(c *Client) *AuthGateway {
	return &AuthGateway{c: c}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string      `json:"token"`
	User  entity.User `json:"user"`
}

// Login intercambia credenciales por un token de sesión y la identidad
// del operario.
func (g *AuthGateway) Login(ctx context.Context, username, password string) (string, *entity.User, error) {
	var out loginResponse
	req := loginRequest{Username: username, Password: password}
	if err := g.c.doJSON(ctx, "POST", "/auth/login", req, &out); err != nil {
		return "", nil, fmt.Errorf("login: %w", err)
	}
	return out.Token, &out.User, nil
}
