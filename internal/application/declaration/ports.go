package declaration

import (
	"context"

	"github.com/tu-usuario/palette-scan/internal/domain/entity"
	"github.com/tu-usuario/palette-scan/internal/infrastructure/rest"
)

// Gateway puerto de salida hacia la pasarela remota de palettes.
type Gateway interface {
	ListPalettes(ctx context.Context) ([]entity.Palette, error)
	GetPalette(ctx context.Context, id string) (*entity.Palette, error)
	DeclarePalette(ctx context.Context, id string) (*rest.DeclareResult, error)
}

// Scanner puerto de captura: una sesión de escaneo emite como mucho un
// código decodificado. ok=false sin error significa cancelación silenciosa.
type Scanner interface {
	RequestScan(ctx context.Context) (code string, ok bool, err error)
}

// Notifier notificaciones transitorias al operario (análogo del toast).
// Único punto de salida de mensajes visibles: lo dispara el controlador.
type Notifier interface {
	Success(title, message string)
	Error(title, message string)
}
