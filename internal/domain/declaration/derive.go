// Package declaration contiene la lógica pura de derivación del movimiento
// de stock que produce la declaración de una palette. Sin red ni estado:
// lo que llega es lo que ya leyó la pasarela.
package declaration

import (
	"strconv"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tu-usuario/palette-scan/internal/domain/entity"
)

// NouveauMouvement construye el cuerpo de creación de un MouvementStock a
// partir de la palette recién declarada y su Production de referencia.
// Tipo y sens son constantes fijas: entrada a stock por declaración.
// Los campos numéricos opcionales de Production derivan a cero cuando faltan;
// la validación posterior decide si el movimiento resultante es admisible.
func NouveauMouvement(p *entity.Palette, prod *entity.Production, at time.Time, utilisateur string) *entity.MouvementStock {
	return &entity.MouvementStock{
		CodeMagasin:       p.CodeMagasin,
		Date:              at,
		CodePalette:       p.ID,
		ProcessID:         nil,
		CodeTypeMouvement: entity.TypeMouvementDeclaration,
		Sens:              entity.SensEntree,

		CodeConditionnement:          intOuZero(prod.ConditionnementCode),
		CodeReferenceConditionnement: refConditionnement(prod.ConditionnementRefCode),
		NbreUniteParPalette:          intOuZero(prod.NbreUniteParPalette),

		UniteDePoids:          prod.UniteDePoids,
		PoidsBrutUnitaire:     decOuZero(prod.PoidsBrutUnitaire),
		TareUnitaireEmballage: decOuZero(prod.TareUnitaireEmballage),
		PoidsBrutPalette:      decOuZero(prod.PoidsBrutPalette),
		TareEmballagePalette:  decOuZero(prod.TareEmballagePalette),
		PoidsNetPalette:       decOuZero(prod.PoidsNetPalette),

		// Refleja el estado post-declaración de la palette.
		Statut:              p.Statut,
		CreationUtilisateur: utilisateur,
	}
}

// PoidsCoherents verifica que brut - tare = net sobre los pesos de palette.
// El backend histórico tiene registros con pesos incompletos; solo se
// comprueba cuando los tres campos vienen informados.
func PoidsCoherents(m *entity.MouvementStock) bool {
	if m.PoidsBrutPalette.IsZero() || m.PoidsNetPalette.IsZero() {
		return true
	}
	return m.PoidsBrutPalette.Sub(m.TareEmballagePalette).Equal(m.PoidsNetPalette)
}

func refConditionnement(code *int) string {
	if code == nil {
		return ""
	}
	return strconv.Itoa(*code)
}

func intOuZero(n *int) int {
	if n == nil {
		return 0
	}
	return *n
}

func decOuZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}
