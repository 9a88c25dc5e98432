package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Constantes de movimiento para la declaración de palettes.
const (
	TypeMouvementDeclaration = 1 // entrada a stock por declaración
	SensEntree               = 1 // sens positivo: entrada
)

// MouvementStock asiento del libro de inventario: exactamente uno por
// declaración exitosa de palette. Esta aplicación solo lo crea; nunca lo
// actualiza ni lo borra. Los tags validate protegen el POST de creación
// (se validan antes de enviar, el 400 del servidor es la última barrera).
type MouvementStock struct {
	ID string `json:"id,omitempty"`

	CodeMagasin       int       `json:"codeMagasin" validate:"required"`
	Date              time.Time `json:"date" validate:"required"`
	CodePalette       string    `json:"codePalette" validate:"required"`
	ProcessID         *string   `json:"processID"`
	CodeTypeMouvement int       `json:"codeTypeMouvement" validate:"eq=1"`
	Sens              int       `json:"sens" validate:"eq=1"`

	CodeConditionnement          int    `json:"codeConditionnement"`
	CodeReferenceConditionnement string `json:"codeReferenceConditionnement"`
	NbreUniteParPalette          int    `json:"nbreUniteParPalette" validate:"gte=0"`

	UniteDePoids          string          `json:"uniteDePoids" validate:"required"`
	PoidsBrutUnitaire     decimal.Decimal `json:"poidsBrutUnitaire"`
	TareUnitaireEmballage decimal.Decimal `json:"tareUnitaireEmballage"`
	PoidsBrutPalette      decimal.Decimal `json:"poidsBrutPalette"`
	TareEmballagePalette  decimal.Decimal `json:"tareEmballagePalette"`
	PoidsNetPalette       decimal.Decimal `json:"poidsNetPalette"`

	Statut string `json:"statut,omitempty"`

	RowVersionKey           RowVersionKey `json:"rowVersionKey,omitempty"`
	CreationUtilisateur     string        `json:"creationUtilisateur" validate:"required"`
	CreationDate            *time.Time    `json:"creationDate,omitempty"`
	ModificationUtilisateur string        `json:"modificationUtilisateur,omitempty"`
	ModificationDate        *time.Time    `json:"modificationDate,omitempty"`
}
