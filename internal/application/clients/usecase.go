// Package clients casos de uso del módulo CRUD de clientes: façade fina
// sobre la pasarela REST con validación local y orden estable de listado.
package clients

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/tu-usuario/palette-scan/internal/domain"
	"github.com/tu-usuario/palette-scan/internal/domain/entity"
)

// Gateway puerto de salida hacia /client.
type Gateway interface {
	ListClients(ctx context.Context) ([]entity.Client, error)
	GetClient(ctx context.Context, id int) (*entity.Client, error)
	CreateClient(ctx context.Context, cl *entity.Client) (*entity.Client, error)
	UpdateClient(ctx context.Context, id int, cl *entity.Client) (*entity.Client, error)
}

// Identity actor por defecto de las altas y modificaciones.
type Identity interface {
	Username() string
}

// UseCase operaciones de clientes.
type UseCase struct {
	gw       Gateway
	identity Identity
	validate *validator.Validate
	collator *collate.Collator
}

// NewUseCase construye el caso de uso. El listado se ordena con colación
// francesa: los nombres con acentos quedan donde el operario los busca.
func NewUseCase(gw Gateway, identity Identity) *UseCase {
	return &UseCase{
		gw:       gw,
		identity: identity,
		validate: validator.New(),
		collator: collate.New(language.French, collate.IgnoreCase),
	}
}

// List devuelve los clientes ordenados por nombre.
func (uc *UseCase) List(ctx context.Context) ([]entity.Client, error) {
	list, err := uc.gw.ListClients(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return uc.collator.CompareString(list[i].Nom, list[j].Nom) < 0
	})
	return list, nil
}

// Get devuelve un cliente por id.
func (uc *UseCase) Get(ctx context.Context, id int) (*entity.Client, error) {
	return uc.gw.GetClient(ctx, id)
}

// Create valida y da de alta un cliente. El actor de creación se rellena
// con la identidad de la sesión si el formulario no lo trae.
func (uc *UseCase) Create(ctx context.Context, cl *entity.Client) (*entity.Client, error) {
	if err := uc.validate.Struct(cl); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if cl.CreationUtilisateur == "" {
		cl.CreationUtilisateur = uc.identity.Username()
	}
	return uc.gw.CreateClient(ctx, cl)
}

// Update valida y actualiza un cliente. Un 409 del servidor llega como
// domain.ErrConflict: otro operario modificó la ficha primero.
func (uc *UseCase) Update(ctx context.Context, id int, cl *entity.Client) (*entity.Client, error) {
	if err := uc.validate.Struct(cl); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	cl.ModificationUtilisateur = uc.identity.Username()
	return uc.gw.UpdateClient(ctx, id, cl)
}
