package terminal_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tu-usuario/palette-scan/internal/domain/entity"
	"github.com/tu-usuario/palette-scan/internal/interfaces/terminal"
)

func TestRenderList_ColeccionVacia_MuestraMarcador(t *testing.T) {
	var buf bytes.Buffer
	v := terminal.NewPaletteView(&buf)

	v.RenderList(nil)

	assert.Contains(t, buf.String(), "Aucune palette disponible")
}

func TestRenderList_OrdenFrancesPorProducto(t *testing.T) {
	var buf bytes.Buffer
	v := terminal.NewPaletteView(&buf)

	v.RenderList([]entity.Palette{
		{ID: "P2", NomProduit: "Pomme", Statut: entity.StatutEnCours},
		{ID: "P1", NomProduit: "Échalote", Statut: entity.StatutDeclaree},
	})

	out := buf.String()
	assert.Less(t, strings.Index(out, "Échalote"), strings.Index(out, "Pomme"))
	assert.Contains(t, out, "Déjà déclarée")
	assert.Contains(t, out, "En attente de déclaration")
}

func TestRenderDetail_AccionDeclararSoloSiPendiente(t *testing.T) {
	var buf bytes.Buffer
	v := terminal.NewPaletteView(&buf)

	v.RenderDetail(&entity.Palette{ID: "P1", Statut: entity.StatutEnCours})
	assert.Contains(t, buf.String(), "[d] Déclarer")

	buf.Reset()
	v.RenderDetail(&entity.Palette{ID: "P1", Statut: entity.StatutDeclaree})
	assert.NotContains(t, buf.String(), "[d] Déclarer")
}
