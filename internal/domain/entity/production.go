package entity

import "github.com/shopspring/decimal"

// Production lote de fabricación al que pertenece una Palette. De solo
// lectura para esta aplicación: aporta los datos de acondicionamiento y
// pesos necesarios para derivar un movimiento de stock.
// Varios campos numéricos son opcionales en el backend (punteros).
type Production struct {
	ID                         string  `json:"id"`
	ArticleCode                string  `json:"articleCode"`
	ArticleDesignation         string  `json:"articleDesignation"`
	ConditionnementCode        *int    `json:"conditionnementCode"`
	ConditionnementDesignation string  `json:"conditionnementDesignation"`
	ConditionnementRefCode     *int    `json:"conditionnementRefCode"`
	ProduitCode                *int    `json:"produitCode"`
	ProduitDesignation         string  `json:"produitDesignation"`
	TypeProduitCode            *int    `json:"typeProduitCode"`
	TypeProduitDesignation     string  `json:"typeProduitDesignation"`
	NbreUniteParPalette        *int    `json:"nbreUniteParPalette"`

	UniteDePoids          string           `json:"uniteDePoids"`
	PoidsBrutUnitaire     *decimal.Decimal `json:"poidsBrutUnitaire"`
	TareUnitaireEmballage *decimal.Decimal `json:"tareUnitaireEmballage"`
	PoidsBrutPalette      *decimal.Decimal `json:"poidsBrutPalette"`
	TareEmballagePalette  *decimal.Decimal `json:"tareEmballagePalette"`
	PoidsNetPalette       *decimal.Decimal `json:"poidsNetPalette"`

	BestBeforeDate             *int   `json:"bestBeforeDate"`
	Annee                      int    `json:"annee"`
	Semaine                    int    `json:"semaine"`
	LigneProductionCode        int    `json:"ligneProductionCode"`
	LigneProductionDesignation string `json:"ligneProductionDesignation"`
	NumeroProduction           string `json:"numeroProduction"`
	ReferenceExterne           string `json:"referenceExterne"`
	RecolteCode                int    `json:"recolteCode"`
	RecolteDesignation         string `json:"recolteDesignation"`
	ClientCode                 int    `json:"clientCode"`
	ClientNom                  string `json:"clientNom"`
	NombrePaletteAProduire     int    `json:"nombrePaletteAProduire"`
}
