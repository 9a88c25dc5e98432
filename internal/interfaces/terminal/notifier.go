package terminal

import (
	"fmt"
	"io"

	"github.com/tu-usuario/palette-scan/pkg/logger"
)

// ToastNotifier notificación transitoria en pantalla (análogo del toast
// móvil): una línea destacada. También deja traza estructurada.
type ToastNotifier struct {
	out io.Writer
	log *logger.Logger
}

// NewToastNotifier construye el notificador.
func NewToastNotifier(out io.Writer, log *logger.Logger) *ToastNotifier {
	return &ToastNotifier{out: out, log: log.Component("notifier")}
}

// Success notificación de éxito.
func (n *ToastNotifier) Success(title, message string) {
	fmt.Fprintf(n.out, "\n  ✔ %s — %s\n\n", title, message)
	n.log.Info().Str("title", title).Msg(message)
}

// Error notificación de fallo. La vista nunca se cae ni se queda en
// blanco: el mensaje es transitorio y el operario conserva el reintento.
func (n *ToastNotifier) Error(title, message string) {
	fmt.Fprintf(n.out, "\n  ✖ %s — %s\n\n", title, message)
	n.log.Warn().Str("title", title).Msg(message)
}
