package rest_test

import (
	"context"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/palette-scan/internal/application/auth"
	"github.com/tu-usuario/palette-scan/internal/domain"
	"github.com/tu-usuario/palette-scan/internal/domain/entity"
	"github.com/tu-usuario/palette-scan/internal/infrastructure/rest"
	"github.com/tu-usuario/palette-scan/internal/mockbackend"
	"github.com/tu-usuario/palette-scan/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Arranque: backend simulado servido por HTTP real, pasarela apuntando a él.
// ──────────────────────────────────────────────────────────────────────────────

type testEnv struct {
	store   *mockbackend.Store
	session *auth.Session
	gateway *rest.PaletteGateway
	clients *rest.ClientGateway
}

func newEnv(t *testing.T) *testEnv {
	t.Helper()
	log := logger.New(logger.Config{Env: "test", Level: "error"})

	store := mockbackend.NewStore()
	require.NoError(t, store.Seed())
	app := mockbackend.New(store, mockbackend.Config{
		JWTSecret:  "e2e-secret",
		JWTIssuer:  "palette-scan-test",
		ExpMinutes: 60,
	}, log)

	srv := httptest.NewServer(adaptor.FiberApp(app))
	t.Cleanup(srv.Close)

	env := &testEnv{store: store}
	client := rest.NewClient(srv.URL, 5*time.Second, nil, log)
	env.session = auth.NewSession(rest.NewAuthGateway(client), log)

	// El cliente autenticado comparte la sesión como proveedor de token
	// e identidad del actor.
	authed := rest.NewClient(srv.URL, 5*time.Second, env.session, log)
	env.gateway = rest.NewPaletteGateway(authed, env.session, log)
	env.clients = rest.NewClientGateway(authed)
	return env
}

func (e *testEnv) login(t *testing.T) {
	t.Helper()
	require.NoError(t, e.session.Login(context.Background(), "operario1", "secret"))
}

// ──────────────────────────────────────────────────────────────────────────────
// Lecturas
// ──────────────────────────────────────────────────────────────────────────────

func TestListPalettes_DatosDeSeed(t *testing.T) {
	env := newEnv(t)
	env.login(t)

	list, err := env.gateway.ListPalettes(context.Background())

	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestListPalettes_SinSesion_Unauthorized(t *testing.T) {
	env := newEnv(t)

	_, err := env.gateway.ListPalettes(context.Background())

	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestGetPalette_Inexistente_NotFound(t *testing.T) {
	env := newEnv(t)
	env.login(t)

	_, err := env.gateway.GetPalette(context.Background(), "NOPE")

	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetPalette_RowVersionKeyViajaComoArreglo(t *testing.T) {
	env := newEnv(t)
	env.login(t)

	p, err := env.gateway.GetPalette(context.Background(), "P1")

	require.NoError(t, err)
	assert.NotEmpty(t, p.RowVersionKey, "el token de versión sobrevive al viaje JSON")
}

func TestErrNetwork_ServidorInalcanzable(t *testing.T) {
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	client := rest.NewClient("http://127.0.0.1:1", time.Second, nil, log)
	gw := rest.NewPaletteGateway(client, staticIdentity("x"), log)

	_, err := gw.ListPalettes(context.Background())

	require.ErrorIs(t, err, domain.ErrNetwork)
}

type staticIdentity string

func (s staticIdentity) Username() string { return string(s) }

// ──────────────────────────────────────────────────────────────────────────────
// Pipeline de declaración
// ──────────────────────────────────────────────────────────────────────────────

func TestDeclarePalette_FlujoCompleto(t *testing.T) {
	env := newEnv(t)
	env.login(t)

	before := time.Now().UTC().Add(-time.Second)
	result, err := env.gateway.DeclarePalette(context.Background(), "P1")

	require.NoError(t, err)
	require.True(t, result.Complete())

	// La palette quedó en estado terminal con fechas coherentes.
	assert.Equal(t, entity.StatutDeclaree, result.Palette.Statut)
	require.NotNil(t, result.Palette.DateDeclaration)
	require.NotNil(t, result.Palette.ModificationDate)
	assert.False(t, result.Palette.DateDeclaration.Before(before))
	assert.Equal(t, *result.Palette.DateDeclaration, *result.Palette.ModificationDate)
	assert.Equal(t, "operario1", result.Palette.ModificationUtilisateur)

	// Exactamente un asiento, derivado de la Production de referencia.
	mouvements := env.store.Mouvements()
	require.Len(t, mouvements, 1)
	m := mouvements[0]
	assert.Equal(t, "P1", m.CodePalette)
	assert.Equal(t, entity.SensEntree, m.Sens)
	assert.Equal(t, entity.TypeMouvementDeclaration, m.CodeTypeMouvement)
	assert.Equal(t, 80, m.NbreUniteParPalette)
	assert.Equal(t, "kg", m.UniteDePoids)

	prod, ok := env.store.GetProduction("PR1")
	require.True(t, ok)
	assert.True(t, m.PoidsBrutPalette.Equal(*prod.PoidsBrutPalette))
	assert.True(t, m.TareEmballagePalette.Equal(*prod.TareEmballagePalette))
	assert.True(t, m.PoidsNetPalette.Equal(*prod.PoidsNetPalette))
	assert.Equal(t, "operario1", m.CreationUtilisateur)
}

func TestDeclarePalette_Conflicto_SinMovimiento(t *testing.T) {
	env := newEnv(t)
	env.login(t)

	// Escritor concurrente entre la relectura y el PATCH.
	env.store.RaceNextPatch("P1")

	result, err := env.gateway.DeclarePalette(context.Background(), "P1")

	require.ErrorIs(t, err, domain.ErrConflict)
	assert.Nil(t, result)

	// Garantía de orden: tras un 409 jamás se emite el POST del movimiento.
	assert.Empty(t, env.store.Mouvements())
}

func TestDeclarePalette_Inexistente_NotFound(t *testing.T) {
	env := newEnv(t)
	env.login(t)

	result, err := env.gateway.DeclarePalette(context.Background(), "NOPE")

	require.ErrorIs(t, err, domain.ErrNotFound)
	assert.Nil(t, result)
	assert.Empty(t, env.store.Mouvements())
}

func TestDeclarePalette_ProductionDesaparecida_FalloParcial(t *testing.T) {
	env := newEnv(t)
	env.login(t)

	env.store.DropProduction("PR1")

	result, err := env.gateway.DeclarePalette(context.Background(), "P1")

	// Hubo progreso en el servidor: no es un error, es un resultado parcial.
	require.NoError(t, err)
	require.NotNil(t, result)
	assert.True(t, result.Partial())
	assert.Equal(t, rest.StepFetchProduction, result.FailedStep)
	assert.ErrorIs(t, result.Cause, domain.ErrNotFound)

	// La palette quedó declarada pero el libro no tiene asiento: el estado
	// que obliga a conciliación manual.
	p, ok := env.store.GetPalette("P1")
	require.True(t, ok)
	assert.Equal(t, entity.StatutDeclaree, p.Statut)
	assert.Empty(t, env.store.Mouvements())
}

func TestCreateMouvementStock_ValidacionLocalAntesDelPOST(t *testing.T) {
	env := newEnv(t)
	env.login(t)

	// Sin unidad de peso ni actor: el validador local corta antes de enviar.
	_, err := env.gateway.CreateMouvementStock(context.Background(), &entity.MouvementStock{
		CodeMagasin:       3,
		Date:              time.Now(),
		CodePalette:       "P1",
		CodeTypeMouvement: entity.TypeMouvementDeclaration,
		Sens:              entity.SensEntree,
	})

	require.ErrorIs(t, err, domain.ErrValidation)
	assert.Empty(t, env.store.Mouvements())
}

// ──────────────────────────────────────────────────────────────────────────────
// Módulo de clientes
// ──────────────────────────────────────────────────────────────────────────────

func TestClientGateway_CicloCompleto(t *testing.T) {
	env := newEnv(t)
	env.login(t)
	ctx := context.Background()

	list, err := env.clients.ListClients(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, list)

	created, err := env.clients.CreateClient(ctx, &entity.Client{
		Nom:                 "Primeur Sud",
		CreationUtilisateur: "operario1",
	})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)
	assert.NotEmpty(t, created.RowVersionKey, "el alta recibe su token de versión")

	// Alta duplicada: conflicto.
	_, err = env.clients.CreateClient(ctx, &entity.Client{Nom: "Primeur Sud"})
	require.ErrorIs(t, err, domain.ErrConflict)

	// Actualización con token obsoleto: conflicto.
	stale := *created
	created.Adresse = "Quai 4, Perpignan"
	_, err = env.clients.UpdateClient(ctx, created.ID, created)
	require.NoError(t, err)

	stale.Adresse = "otro"
	_, err = env.clients.UpdateClient(ctx, stale.ID, &stale)
	require.ErrorIs(t, err, domain.ErrConflict)
}
