package declaration

import (
	"context"
	"errors"

	"github.com/tu-usuario/palette-scan/internal/domain"
	"github.com/tu-usuario/palette-scan/internal/domain/entity"
	"github.com/tu-usuario/palette-scan/pkg/logger"
)

// State estados del flujo de declaración sobre la selección en curso.
type State int

const (
	StateIdle State = iota
	StateDetailLoading
	StateDetailReady
	StateDetailError
	StateDeclaring
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDetailLoading:
		return "detail-loading"
	case StateDetailReady:
		return "detail-ready"
	case StateDetailError:
		return "detail-error"
	case StateDeclaring:
		return "declaring"
	default:
		return "unknown"
	}
}

// Controller orquesta el flujo: código escaneado (o fila activada) ->
// lectura de la palette -> detalle -> confirmación -> declaración ->
// refresco de lista y notificación.
//
// Estado local del componente, un solo flujo cooperativo: las operaciones
// se encadenan secuencialmente, sin goroutines ni locks. Como mucho una
// declaración en vuelo; mientras StateDeclaring el resto de intentos se
// ignora.
type Controller struct {
	gw       Gateway
	scanner  Scanner
	notifier Notifier
	log      *logger.Logger

	state      State
	selectedID string
	palette    *entity.Palette
	detailErr  error
	palettes   []entity.Palette
}

// NewController construye el controlador en StateIdle.
func NewController(gw Gateway, scanner Scanner, notifier Notifier, log *logger.Logger) *Controller {
	return &Controller{
		gw:       gw,
		scanner:  scanner,
		notifier: notifier,
		log:      log.Component("declaration"),
	}
}

// State devuelve el estado actual del flujo.
func (c *Controller) State() State { return c.state }

// SelectedID devuelve el id de la selección en curso ("" en Idle).
func (c *Controller) SelectedID() string { return c.selectedID }

// Palette devuelve el detalle cargado (solo en DetailReady/Declaring).
func (c *Controller) Palette() *entity.Palette { return c.palette }

// DetailErr devuelve la causa del DetailError.
func (c *Controller) DetailErr() error { return c.detailErr }

// Palettes devuelve la última lista cargada.
func (c *Controller) Palettes() []entity.Palette { return c.palettes }

// RefreshList reinvoca el listado completo. Los fallos no tumban la vista:
// se notifica y se conserva la lista anterior.
func (c *Controller) RefreshList(ctx context.Context) error {
	list, err := c.gw.ListPalettes(ctx)
	if err != nil {
		c.log.Warn().Err(err).Msg("refresco de lista fallido")
		c.notifier.Error("Erreur", "Échec du chargement des palettes")
		return err
	}
	c.palettes = list
	return nil
}

// Scan abre una sesión de captura y, si decodifica un código, entra al
// detalle igual que la doble activación de una fila. La cancelación es un
// no-op silencioso; el permiso denegado notifica con indicación recuperable.
func (c *Controller) Scan(ctx context.Context) {
	code, ok, err := c.scanner.RequestScan(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrPermissionDenied) {
			c.notifier.Error("Permission requise",
				"L'accès au lecteur est nécessaire pour scanner les palettes. Autorisez-le puis réessayez.")
			return
		}
		c.log.Warn().Err(err).Msg("captura fallida")
		c.notifier.Error("Erreur", "Échec de la lecture du code")
		return
	}
	if !ok {
		return // cancelado por el operario
	}
	c.Open(ctx, code)
}

// Open transiciona Idle -> DetailLoading(id) y resuelve a DetailReady o
// DetailError según el resultado de la lectura.
func (c *Controller) Open(ctx context.Context, id string) {
	if c.state == StateDeclaring {
		return
	}
	c.selectedID = id
	c.palette = nil
	c.detailErr = nil
	c.state = StateDetailLoading

	p, err := c.gw.GetPalette(ctx, id)
	if err != nil {
		c.log.Warn().Str("palette", id).Err(err).Msg("detalle no disponible")
		c.detailErr = err
		c.state = StateDetailError
		return
	}
	c.palette = p
	c.state = StateDetailReady
}

// Dismiss cierra el detalle desde cualquier estado salvo Declaring.
func (c *Controller) Dismiss() {
	if c.state == StateDeclaring {
		return
	}
	c.reset()
}

// Declare confirma la declaración de la palette en detalle. Guardas:
// solo desde DetailReady, y nunca para una palette ya declarada. El rechazo
// ocurre en el cliente, sin llamada de red.
//
// Éxito: cierra el detalle, refresca la lista, notifica. Fallo total: el
// detalle permanece abierto (DetailReady) para reintentar sin reescanear,
// y la lista no se toca. Fallo parcial: la palette quedó declarada sin
// asiento de stock; jamás se presenta como éxito pleno.
func (c *Controller) Declare(ctx context.Context) {
	if c.state != StateDetailReady || c.palette == nil {
		return
	}
	if c.palette.Declaree() {
		return
	}

	c.state = StateDeclaring
	result, err := c.gw.DeclarePalette(ctx, c.palette.ID)
	if err != nil {
		// Nada cambió en el servidor: el detalle sigue abierto.
		c.log.Warn().Str("palette", c.palette.ID).Err(err).Msg("declaración fallida")
		c.state = StateDetailReady
		if errors.Is(err, domain.ErrConflict) {
			c.notifier.Error("Erreur", "La palette a été modifiée par un autre utilisateur")
			return
		}
		c.notifier.Error("Erreur", "Échec de la déclaration de la palette")
		return
	}

	if result.Partial() {
		// El más grave de los fallos: libro de inventario incoherente con
		// el estado de la palette. Visible y distinto de un éxito.
		c.notifier.Error("Déclaration incomplète",
			"Palette déclarée mais mouvement de stock non enregistré. Signalez-le au responsable.")
	} else {
		c.notifier.Success("Succès", "Palette déclarée avec succès")
	}

	c.reset()
	_ = c.RefreshList(ctx)
}

func (c *Controller) reset() {
	c.state = StateIdle
	c.selectedID = ""
	c.palette = nil
	c.detailErr = nil
}
