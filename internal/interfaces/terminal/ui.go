// Package terminal es la superficie de interacción del operario: lista y
// detalle de palettes, captura por lector, módulo de clientes y
// notificaciones transitorias. Hace de pantalla móvil en una consola de
// almacén.
package terminal

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/tu-usuario/palette-scan/internal/application/auth"
	"github.com/tu-usuario/palette-scan/internal/application/clients"
	"github.com/tu-usuario/palette-scan/internal/application/declaration"
	"github.com/tu-usuario/palette-scan/pkg/logger"
)

// UI bucle interactivo principal. Un solo flujo cooperativo: cada comando
// se atiende hasta el final antes de leer el siguiente; mientras una
// petición está en vuelo no hay más entradas que procesar.
type UI struct {
	controller *declaration.Controller
	clients    *clients.UseCase
	session    *auth.Session
	view       *PaletteView
	detector   *ActivationDetector

	in  *bufio.Reader
	out io.Writer
	log *logger.Logger
}

// NewUI construye el bucle de terminal.
func NewUI(
	controller *declaration.Controller,
	clientsUC *clients.UseCase,
	session *auth.Session,
	in io.Reader,
	out io.Writer,
	log *logger.Logger,
) *UI {
	return &UI{
		controller: controller,
		clients:    clientsUC,
		session:    session,
		view:       NewPaletteView(out),
		detector:   NewActivationDetector(),
		in:         bufio.NewReader(in),
		out:        out,
		log:        log.Component("ui"),
	}
}

// Run autentica al operario y atiende comandos hasta `q` o EOF.
func (u *UI) Run(ctx context.Context) error {
	if err := u.login(ctx); err != nil {
		return err
	}

	fmt.Fprintln(u.out, "\n  Palettes — [s] scanner  [r] rafraîchir  [c] clients  [q] quitter")
	fmt.Fprintln(u.out, "  Entrez deux fois l'ID d'une ligne pour ouvrir le détail.")

	_ = u.controller.RefreshList(ctx)
	u.view.RenderList(u.controller.Palettes())

	for {
		fmt.Fprint(u.out, "> ")
		line, err := u.in.ReadString('\n')
		if err != nil {
			return nil // EOF: fin de turno
		}
		cmd := strings.TrimSpace(line)
		if cmd == "" {
			continue
		}
		if cmd == "q" {
			u.session.Logout()
			return nil
		}
		u.dispatch(ctx, cmd)
	}
}

func (u *UI) login(ctx context.Context) error {
	for {
		fmt.Fprint(u.out, "Utilisateur: ")
		user, err := u.in.ReadString('\n')
		if err != nil {
			return err
		}
		fmt.Fprint(u.out, "Mot de passe: ")
		pass, err := u.in.ReadString('\n')
		if err != nil {
			return err
		}
		if err := u.session.Login(ctx, strings.TrimSpace(user), strings.TrimSpace(pass)); err != nil {
			fmt.Fprintln(u.out, "  ✖ Connexion refusée, réessayez.")
			u.log.Warn().Err(err).Msg("login fallido")
			continue
		}
		fmt.Fprintf(u.out, "  ✔ Bonjour %s\n", u.session.Username())
		return nil
	}
}

func (u *UI) dispatch(ctx context.Context, cmd string) {
	switch cmd {
	case "r":
		if err := u.controller.RefreshList(ctx); err == nil {
			u.view.RenderList(u.controller.Palettes())
		}
	case "s":
		u.controller.Scan(ctx)
		u.renderState()
	case "d":
		u.controller.Declare(ctx)
		if u.controller.State() == declaration.StateIdle {
			u.view.RenderList(u.controller.Palettes())
		}
	case "o":
		// Reintento desde el detalle en error.
		if id := u.controller.SelectedID(); id != "" {
			u.controller.Open(ctx, id)
			u.renderState()
		}
	case "x":
		u.controller.Dismiss()
		u.view.RenderList(u.controller.Palettes())
	case "c":
		u.renderClients(ctx)
	default:
		// Cualquier otra entrada es la activación de una fila. Solo la
		// doble activación (<300 ms, misma fila) abre el detalle; la
		// activación única no hace nada en este flujo.
		if u.detector.Activate(cmd) {
			u.controller.Open(ctx, cmd)
			u.renderState()
		}
	}
}

func (u *UI) renderState() {
	switch u.controller.State() {
	case declaration.StateDetailReady:
		u.view.RenderDetail(u.controller.Palette())
	case declaration.StateDetailError:
		u.view.RenderDetailError(u.controller.SelectedID())
	}
}

func (u *UI) renderClients(ctx context.Context) {
	list, err := u.clients.List(ctx)
	if err != nil {
		fmt.Fprintln(u.out, "  ✖ Échec du chargement des clients")
		return
	}
	if len(list) == 0 {
		fmt.Fprintln(u.out, "\n  Aucun client disponible")
		return
	}
	fmt.Fprintln(u.out)
	for _, cl := range list {
		fmt.Fprintf(u.out, "  %4d  %-30s %s\n", cl.ID, cl.Nom, cl.TelephoneMobile)
	}
}
