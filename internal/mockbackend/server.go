// Package mockbackend replica el contrato REST del backend de producción
// (palette, production, mouvement_stock, client, auth) sobre un almacén en
// memoria. Sirve para desarrollar y probar la aplicación sin la red de
// planta; no es un backend real.
package mockbackend

import (
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/palette-scan/internal/domain/entity"
	pkgjwt "github.com/tu-usuario/palette-scan/pkg/jwt"
	"github.com/tu-usuario/palette-scan/pkg/logger"
)

// Config parámetros del servidor de desarrollo.
type Config struct {
	JWTSecret  string
	JWTIssuer  string
	ExpMinutes int
}

// errorBody cuerpo de error estructurado, el mismo formato que devuelve el
// backend real.
type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// New construye la aplicación fiber con todas las rutas del contrato.
func New(store *Store, cfg Config, log *logger.Logger) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "palette-scan-mock",
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	})
	h := &handlers{store: store, cfg: cfg, log: log.Component("mockbackend")}

	app.Post("/auth/login", h.login)

	api := app.Group("", h.requireToken)
	api.Get("/palette", h.listPalettes)
	api.Get("/palette/:id", h.getPalette)
	api.Patch("/palette/:id", h.patchPalette)
	api.Get("/production/:id", h.getProduction)
	api.Post("/mouvement_stock", h.createMouvement)
	api.Get("/client", h.listClients)
	api.Get("/client/:id", h.getClient)
	api.Post("/client", h.createClient)
	api.Put("/client/:id", h.updateClient)

	return app
}

type handlers struct {
	store *Store
	cfg   Config
	log   *logger.Logger
}

// requireToken exige un Bearer token válido en todas las rutas de datos.
func (h *handlers) requireToken(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(errorBody{Code: "UNAUTHORIZED", Message: "token ausente"})
	}
	if _, _, err := pkgjwt.Parse(h.cfg.JWTSecret, token); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(errorBody{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	return c.Next()
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (h *handlers) login(c *fiber.Ctx) error {
	var in loginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	user, ok := h.store.Authenticate(in.Username, in.Password)
	if !ok {
		return c.Status(fiber.StatusUnauthorized).JSON(errorBody{Code: "BAD_CREDENTIALS", Message: "identifiants incorrects"})
	}
	token, err := pkgjwt.Generate(h.cfg.JWTSecret, user.ID, user.Username, h.cfg.JWTIssuer, h.cfg.ExpMinutes)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(errorBody{Code: "INTERNAL", Message: err.Error()})
	}
	h.log.Info().Str("username", user.Username).Msg("token emitido")
	return c.JSON(fiber.Map{"token": token, "user": user})
}

func (h *handlers) listPalettes(c *fiber.Ctx) error {
	return c.JSON(h.store.ListPalettes())
}

func (h *handlers) getPalette(c *fiber.Ctx) error {
	p, ok := h.store.GetPalette(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(errorBody{Code: "NOT_FOUND", Message: "palette inconnue"})
	}
	return c.JSON(p)
}

type palettePatch struct {
	Statut                  string               `json:"statut"`
	DateDeclaration         time.Time            `json:"dateDeclaration"`
	ModificationDate        time.Time            `json:"modificationDate"`
	ModificationUtilisateur string               `json:"modificationUtilisateur"`
	RowVersionKey           entity.RowVersionKey `json:"rowVersionKey"`
}

func (h *handlers) patchPalette(c *fiber.Ctx) error {
	var in palettePatch
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	updated, result := h.store.PatchPalette(
		c.Params("id"), in.Statut, in.DateDeclaration, in.ModificationDate,
		in.ModificationUtilisateur, in.RowVersionKey,
	)
	switch result {
	case PatchNotFound:
		return c.Status(fiber.StatusNotFound).JSON(errorBody{Code: "NOT_FOUND", Message: "palette inconnue"})
	case PatchConflict:
		return c.Status(fiber.StatusConflict).JSON(errorBody{Code: "CONFLICT", Message: "palette modifiée par un autre utilisateur"})
	}
	return c.JSON(updated)
}

func (h *handlers) getProduction(c *fiber.Ctx) error {
	p, ok := h.store.GetProduction(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(errorBody{Code: "NOT_FOUND", Message: "production inconnue"})
	}
	return c.JSON(p)
}

func (h *handlers) createMouvement(c *fiber.Ctx) error {
	var in entity.MouvementStock
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	// Última barrera del contrato: campos mínimos del asiento.
	if in.CodePalette == "" || in.Sens == 0 || in.CodeTypeMouvement == 0 || in.CreationUtilisateur == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody{Code: "VALIDATION", Message: "champs du mouvement manquants"})
	}
	created := h.store.CreateMouvement(in)
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *handlers) listClients(c *fiber.Ctx) error {
	return c.JSON(h.store.ListClients())
}

func (h *handlers) getClient(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody{Code: "VALIDATION", Message: "id inválido"})
	}
	cl, ok := h.store.GetClient(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(errorBody{Code: "NOT_FOUND", Message: "client inconnu"})
	}
	return c.JSON(cl)
}

func (h *handlers) createClient(c *fiber.Ctx) error {
	var in entity.Client
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Nom == "" {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody{Code: "VALIDATION", Message: "nom obligatoire"})
	}
	created, ok := h.store.CreateClient(in)
	if !ok {
		return c.Status(fiber.StatusConflict).JSON(errorBody{Code: "CONFLICT", Message: "client existe déjà"})
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *handlers) updateClient(c *fiber.Ctx) error {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody{Code: "VALIDATION", Message: "id inválido"})
	}
	var in entity.Client
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errorBody{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	updated, result := h.store.UpdateClient(id, in)
	switch result {
	case UpdateNotFound:
		return c.Status(fiber.StatusNotFound).JSON(errorBody{Code: "NOT_FOUND", Message: "client inconnu"})
	case UpdateConflict:
		return c.Status(fiber.StatusConflict).JSON(errorBody{Code: "CONFLICT", Message: "client modifié par un autre utilisateur"})
	}
	return c.JSON(updated)
}
