// Package rest implementa la pasarela remota contra el backend de
// producción (palette, production, mouvement_stock, client, auth).
// Todos los fallos de transporte y HTTP se traducen a errores de dominio
// en esta frontera; hacia arriba solo viajan errores de internal/domain.
package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/tu-usuario/palette-scan/internal/domain"
	"github.com/tu-usuario/palette-scan/pkg/logger"
)

// TokenProvider entrega el token de sesión a adjuntar en cada petición.
// Devuelve cadena vacía sin error cuando aún no hay sesión (login).
type TokenProvider interface {
	Token() (string, error)
}

// Client cliente HTTP compartido por todas las pasarelas. Sin reintentos:
// todo reintento es manual (el operario relanza la acción).
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider
	log     *logger.Logger
}

// NewClient construye el cliente. timeout 0 delega en el transporte.
func NewClient(baseURL string, timeout time.Duration, tokens TokenProvider, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log.Component("rest"),
	}
}

// apiError cuerpo de error estructurado del backend.
type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// doJSON lanza una petición JSON y decodifica la respuesta en out (si no es
// nil). No hay cancelación más allá del ctx del caller: una vez emitida, la
// petición corre hasta completarse o fallar.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("serializar cuerpo: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("construir petición: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	if c.tokens != nil {
		token, err := c.tokens.Token()
		if err != nil {
			return err
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// Ninguna respuesta alcanzó el servidor: conectividad.
		c.log.Warn().Str("method", method).Str("path", path).Err(err).Msg("fallo de transporte")
		return fmt.Errorf("%w: %v", domain.ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.traduireStatut(method, path, resp)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: respuesta ilegible: %v", domain.ErrServer, err)
	}
	return nil
}

// traduireStatut mapea un estado HTTP no-2xx al error de dominio que le
// corresponde, conservando el mensaje estructurado del backend si lo hay.
func (c *Client) traduireStatut(method, path string, resp *http.Response) error {
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
	var ae apiError
	_ = json.Unmarshal(raw, &ae)
	msg := ae.Message
	if msg == "" {
		msg = resp.Status
	}

	c.log.Warn().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode).
		Str("message", msg).
		Msg("respuesta de error del backend")

	switch resp.StatusCode {
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", domain.ErrConflict, msg)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
	case http.StatusUnauthorized, http.StatusForbidden:
		return fmt.Errorf("%w: %s", domain.ErrUnauthorized, msg)
	default:
		return fmt.Errorf("%w: %d %s", domain.ErrServer, resp.StatusCode, msg)
	}
}
