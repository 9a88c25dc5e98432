package entity

// Client ficha de cliente (módulo CRUD periférico).
type Client struct {
	ID              int           `json:"id,omitempty"`
	Nom             string        `json:"nom" validate:"required,min=2"`
	Adresse         string        `json:"adresse,omitempty"`
	TelephoneFixe   string        `json:"telephoneFixe,omitempty" validate:"omitempty,min=6"`
	TelephoneMobile string        `json:"telephoneMobile,omitempty" validate:"omitempty,min=6"`
	Fax             string        `json:"fax,omitempty"`
	RowVersionKey   RowVersionKey `json:"rowVersionKey,omitempty"`

	CreationUtilisateur     string `json:"creationUtilisateur,omitempty"`
	ModificationUtilisateur string `json:"modificationUtilisateur,omitempty"`
}
