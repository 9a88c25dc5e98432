package rest

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/tu-usuario/palette-scan/internal/domain"
	"github.com/tu-usuario/palette-scan/internal/domain/declaration"
	"github.com/tu-usuario/palette-scan/internal/domain/entity"
	"github.com/tu-usuario/palette-scan/pkg/logger"
)

// Identity identifica al actor de las modificaciones (operario de la sesión).
type Identity interface {
	Username() string
}

// PaletteGateway operaciones remotas de palettes, productions y movimientos
// de stock, incluida la operación compuesta de declaración.
type PaletteGateway struct {
	c        *Client
	identity Identity
	validate *validator.Validate
	log      *logger.Logger
	now      func() time.Time
}

// NewPaletteGateway construye la pasarela. now es inyectable para tests.
func NewPaletteGateway(c *Client, identity Identity, log *logger.Logger) *PaletteGateway {
	return &PaletteGateway{
		c:        c,
		identity: identity,
		validate: validator.New(),
		log:      log.Component("palette-gateway"),
		now:      time.Now,
	}
}

// ListPalettes recupera todas las palettes. Sin paginación: el backend
// devuelve el conjunto completo.
func (g *PaletteGateway) ListPalettes(ctx context.Context) ([]entity.Palette, error) {
	var out []entity.Palette
	if err := g.c.doJSON(ctx, "GET", "/palette", nil, &out); err != nil {
		return nil, fmt.Errorf("listar palettes: %w", err)
	}
	return out, nil
}

// GetPalette recupera una palette por id (el código escaneado).
func (g *PaletteGateway) GetPalette(ctx context.Context, id string) (*entity.Palette, error) {
	var out entity.Palette
	if err := g.c.doJSON(ctx, "GET", "/palette/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, fmt.Errorf("obtener palette %s: %w", id, err)
	}
	return &out, nil
}

// GetProduction recupera el lote de producción de referencia.
func (g *PaletteGateway) GetProduction(ctx context.Context, id string) (*entity.Production, error) {
	var out entity.Production
	if err := g.c.doJSON(ctx, "GET", "/production/"+url.PathEscape(id), nil, &out); err != nil {
		return nil, fmt.Errorf("obtener production %s: %w", id, err)
	}
	return &out, nil
}

// CreateMouvementStock registra un movimiento ya derivado. Valida el cuerpo
// antes de enviarlo; el 400 del servidor queda como última barrera.
func (g *PaletteGateway) CreateMouvementStock(ctx context.Context, m *entity.MouvementStock) (*entity.MouvementStock, error) {
	if err := g.validate.Struct(m); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}
	if !declaration.PoidsCoherents(m) {
		g.log.Warn().Str("palette", m.CodePalette).Msg("pesos incoherentes en el movimiento derivado")
	}
	var out entity.MouvementStock
	if err := g.c.doJSON(ctx, "POST", "/mouvement_stock", m, &out); err != nil {
		return nil, fmt.Errorf("crear mouvement_stock: %w", err)
	}
	return &out, nil
}

// declarePatch actualización parcial enviada por PATCH /palette/{id}.
// rowVersionKey viaja para que el servidor detecte escrituras concurrentes.
type declarePatch struct {
	Statut                  string               `json:"statut"`
	DateDeclaration         time.Time            `json:"dateDeclaration"`
	ModificationDate        time.Time            `json:"modificationDate"`
	ModificationUtilisateur string               `json:"modificationUtilisateur"`
	RowVersionKey           entity.RowVersionKey `json:"rowVersionKey,omitempty"`
}

// Pasos del pipeline de declaración, en orden estricto.
type DeclareStep int

const (
	StepFetchPalette DeclareStep = iota + 1
	StepUpdatePalette
	StepFetchProduction
	StepCreateMouvement
)

func (s DeclareStep) String() string {
	switch s {
	case StepFetchPalette:
		return "fetch-palette"
	case StepUpdatePalette:
		return "update-palette"
	case StepFetchProduction:
		return "fetch-production"
	case StepCreateMouvement:
		return "create-mouvement"
	default:
		return "unknown"
	}
}

// DeclareResult resultado etiquetado del pipeline una vez que hubo progreso
// en el servidor. Si FailedStep es cero, la declaración y su movimiento se
// registraron completos. Si no, la palette quedó declarada pero el libro de
// inventario no tiene su asiento: el fallo parcial más grave del sistema,
// que nunca debe reportarse como éxito pleno.
type DeclareResult struct {
	Palette    *entity.Palette
	Mouvement  *entity.MouvementStock
	FailedStep DeclareStep
	Cause      error
}

// Complete indica que el pipeline terminó sin fallo parcial.
func (r *DeclareResult) Complete() bool { return r.FailedStep == 0 }

// Partial indica palette declarada sin movimiento registrado.
func (r *DeclareResult) Partial() bool { return r.FailedStep > StepUpdatePalette }

// DeclarePalette ejecuta el pipeline de declaración, en orden y sin saltar
// pasos:
//
//  1. relectura fresca de la palette (nunca un estado cacheado),
//  2. construcción de la actualización parcial (statut DC, fechas, actor),
//  3. PATCH; un 409 aborta todo antes de tocar el libro de inventario,
//  4. lectura de la Production referenciada,
//  5. derivación del MouvementStock campo a campo,
//  6. POST del movimiento,
//  7. devolución de la palette actualizada.
//
// Devuelve error (y resultado nil) mientras el servidor no haya escrito
// nada. A partir del PATCH exitoso siempre devuelve un DeclareResult: si los
// pasos 4-6 fallan, el resultado es parcial y lleva el paso y la causa.
func (g *PaletteGateway) DeclarePalette(ctx context.Context, id string) (*DeclareResult, error) {
	current, err := g.GetPalette(ctx, id)
	if err != nil {
		return nil, err
	}

	now := g.now().UTC()
	patch := declarePatch{
		Statut:                  entity.StatutDeclaree,
		DateDeclaration:         now,
		ModificationDate:        now,
		ModificationUtilisateur: g.identity.Username(),
		RowVersionKey:           current.RowVersionKey,
	}

	var updated entity.Palette
	if err := g.c.doJSON(ctx, "PATCH", "/palette/"+url.PathEscape(id), patch, &updated); err != nil {
		return nil, fmt.Errorf("declarar palette %s: %w", id, err)
	}

	g.log.Info().
		Str("palette", updated.ID).
		Str("statut", updated.Statut).
		Msg("palette declarada")

	prod, err := g.GetProduction(ctx, updated.ProductionID)
	if err != nil {
		return g.partiel(&updated, StepFetchProduction, err), nil
	}

	mouvement := declaration.NouveauMouvement(&updated, prod, now, g.identity.Username())
	created, err := g.CreateMouvementStock(ctx, mouvement)
	if err != nil {
		return g.partiel(&updated, StepCreateMouvement, err), nil
	}

	return &DeclareResult{Palette: &updated, Mouvement: created}, nil
}

// partiel registra y construye el resultado de fallo parcial: la palette ya
// quedó en DC pero el asiento de stock no existe. Recuperación manual.
func (g *PaletteGateway) partiel(p *entity.Palette, step DeclareStep, cause error) *DeclareResult {
	g.log.Error().
		Str("palette", p.ID).
		Str("failed_step", step.String()).
		Err(cause).
		Msg("declaración parcial: palette en DC sin mouvement_stock, conciliar a mano")
	return &DeclareResult{Palette: p, FailedStep: step, Cause: cause}
}
