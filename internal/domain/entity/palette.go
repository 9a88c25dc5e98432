package entity

import "time"

// Estados de palette sobre el wire (contrato francés del backend).
const (
	StatutEnCours  = "EC" // en curso, pendiente de declaración
	StatutDeclaree = "DC" // declarada: entrada a stock registrada
)

// Palette unidad física de producto terminado, pendiente o ya declarada
// en inventario. Copia de lectura transitoria; el servidor es el dueño.
// Los tags JSON siguen el contrato del backend tal cual (nombres en francés).
type Palette struct {
	ID               string `json:"id"`
	ProductionID     string `json:"productionID"`
	NumeroProduction string `json:"numeroProduction"`
	NumeroPalette    int    `json:"numeroPalette"`
	NomProduit       string `json:"nomProduit"`
	TypeProduit      string `json:"typeProduit"`
	NomArticle       string `json:"nomArticle"`
	CodeArticle      string `json:"codeArticle"`
	CodeMagasin      int    `json:"codeMagasin"`

	// Transición unidireccional: EC -> DC, sin camino de vuelta.
	Statut          string     `json:"statut"`
	DateDeclaration *time.Time `json:"dateDeclaration,omitempty"`

	RowVersionKey           RowVersionKey `json:"rowVersionKey,omitempty"`
	CreationUtilisateur     string        `json:"creationUtilisateur,omitempty"`
	CreationDate            *time.Time    `json:"creationDate,omitempty"`
	ModificationUtilisateur string        `json:"modificationUtilisateur,omitempty"`
	ModificationDate        *time.Time    `json:"modificationDate,omitempty"`
}

// Declaree indica si la palette ya alcanzó el estado terminal.
func (p *Palette) Declaree() bool {
	return p.Statut == StatutDeclaree
}
