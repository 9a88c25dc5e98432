package terminal

import (
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tu-usuario/palette-scan/internal/domain/entity"
)

// PaletteView renderizado de lista y detalle de palettes.
type PaletteView struct {
	out      io.Writer
	collator *collate.Collator
}

// NewPaletteView construye la vista. La lista se ordena con colación
// francesa por nombre de producto.
func NewPaletteView(out io.Writer) *PaletteView {
	return &PaletteView{
		out:      out,
		collator: collate.New(language.French, collate.IgnoreCase),
	}
}

// RenderList pinta la colección. La colección vacía muestra el marcador,
// nunca una pantalla en blanco.
func (v *PaletteView) RenderList(palettes []entity.Palette) {
	if len(palettes) == 0 {
		fmt.Fprintln(v.out, "\n  Aucune palette disponible")
		return
	}

	sorted := make([]entity.Palette, len(palettes))
	copy(sorted, palettes)
	sort.SliceStable(sorted, func(i, j int) bool {
		return v.collator.CompareString(sorted[i].NomProduit, sorted[j].NomProduit) < 0
	})

	w := tabwriter.NewWriter(v.out, 2, 4, 2, ' ', 0)
	fmt.Fprintln(w, "\n  ID\tPRODUIT\tRÉFÉRENCE\tPRODUCTION\tN°\tSTATUT")
	for _, p := range sorted {
		fmt.Fprintf(w, "  %s\t%s\t%s\t%s\t%d\t%s\n",
			p.ID, p.NomProduit, p.CodeArticle, p.NumeroProduction, p.NumeroPalette, statutLabel(p.Statut))
	}
	w.Flush()
}

// RenderDetail pinta la ficha de una palette.
func (v *PaletteView) RenderDetail(p *entity.Palette) {
	fmt.Fprintf(v.out, "\n  ── Détails de la Palette %s ──\n", p.ID)
	fmt.Fprintf(v.out, "  Nom du produit:   %s\n", p.NomProduit)
	fmt.Fprintf(v.out, "  Référence:        %s\n", p.CodeArticle)
	fmt.Fprintf(v.out, "  Type:             %s\n", p.TypeProduit)
	fmt.Fprintf(v.out, "  N° de production: %s\n", p.NumeroProduction)
	fmt.Fprintf(v.out, "  N° de palette:    %d\n", p.NumeroPalette)
	fmt.Fprintf(v.out, "  Statut:           %s\n", statutLabel(p.Statut))
	if p.DateDeclaration != nil {
		fmt.Fprintf(v.out, "  Date déclaration: %s\n", formatDate(*p.DateDeclaration))
	}
	if p.ModificationDate != nil {
		fmt.Fprintf(v.out, "  Dernière modif.:  %s\n", formatDate(*p.ModificationDate))
	}
	if !p.Declaree() {
		fmt.Fprintln(v.out, "\n  [d] Déclarer la palette   [x] Fermer")
	} else {
		fmt.Fprintln(v.out, "\n  [x] Fermer")
	}
}

// RenderDetailError detalle no disponible: marcador con reintento, sin
// tumbar la vista.
func (v *PaletteView) RenderDetailError(id string) {
	fmt.Fprintf(v.out, "\n  Impossible de charger les détails de la palette %s\n", id)
	fmt.Fprintln(v.out, "  [o] Réessayer   [x] Fermer")
}

func statutLabel(statut string) string {
	if statut == entity.StatutDeclaree {
		return "Déjà déclarée"
	}
	return "En attente de déclaration"
}

func formatDate(t time.Time) string {
	return t.Local().Format("02/01/2006 15:04")
}
