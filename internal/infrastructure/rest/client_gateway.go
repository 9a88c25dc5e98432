package rest

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tu-usuario/palette-scan/internal/domain/entity"
)

// ClientGateway operaciones CRUD del módulo de clientes. Mismas convenciones
// que el resto del contrato: 404 -> no encontrado, 409 -> conflicto.
type ClientGateway struct {
	c *Client
}

// NewClientGateway construye la pasarela de clientes.
func NewClientGateway(c *Client) *ClientGateway {
	return &ClientGateway{c: c}
}

// ListClients recupera todos los clientes.
func (g *ClientGateway) ListClients(ctx context.Context) ([]entity.Client, error) {
	var out []entity.Client
	if err := g.c.doJSON(ctx, "GET", "/client", nil, &out); err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	return out, nil
}

// GetClient recupera un cliente por id.
func (g *ClientGateway) GetClient(ctx context.Context, id int) (*entity.Client, error) {
	var out entity.Client
	if err := g.c.doJSON(ctx, "GET", "/client/"+strconv.Itoa(id), nil, &out); err != nil {
		return nil, fmt.Errorf("obtener cliente %d: %w", id, err)
	}
	return &out, nil
}

// CreateClient crea un cliente. El rowVersionKey nunca viaja en un alta:
// lo genera el servidor.
func (g *ClientGateway) CreateClient(ctx context.Context, cl *entity.Client) (*entity.Client, error) {
	payload := *cl
	payload.ID = 0
	payload.RowVersionKey = nil

	var out entity.Client
	if err := g.c.doJSON(ctx, "POST", "/client", payload, &out); err != nil {
		return nil, fmt.Errorf("crear cliente: %w", err)
	}
	return &out, nil
}

// UpdateClient actualiza un cliente. El rowVersionKey leído debe viajar:
// el servidor responde 409 si otro operario modificó la ficha antes.
func (g *ClientGateway) UpdateClient(ctx context.Context, id int, cl *entity.Client) (*entity.Client, error) {
	var out entity.Client
	if err := g.c.doJSON(ctx, "PUT", "/client/"+strconv.Itoa(id), cl, &out); err != nil {
		return nil, fmt.Errorf("actualizar cliente %d: %w", id, err)
	}
	return &out, nil
}
