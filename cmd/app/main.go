package main

import (
	"context"
	"os"

	"github.com/tu-usuario/palette-scan/internal/application/auth"
	"github.com/tu-usuario/palette-scan/internal/application/clients"
	"github.com/tu-usuario/palette-scan/internal/application/declaration"
	"github.com/tu-usuario/palette-scan/internal/infrastructure/rest"
	"github.com/tu-usuario/palette-scan/internal/infrastructure/scan"
	"github.com/tu-usuario/palette-scan/internal/interfaces/terminal"
	"github.com/tu-usuario/palette-scan/pkg/config"
	"github.com/tu-usuario/palette-scan/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("api", cfg.API.BaseURL).
		Msg("iniciando aplicación")

	// La sesión es a la vez proveedor de token e identidad del actor.
	bootstrap := rest.NewClient(cfg.API.BaseURL, cfg.API.Timeout(), nil, log)
	session := auth.NewSession(rest.NewAuthGateway(bootstrap), log)

	client := rest.NewClient(cfg.API.BaseURL, cfg.API.Timeout(), session, log)
	paletteGW := rest.NewPaletteGateway(client, session, log)
	clientGW := rest.NewClientGateway(client)

	capture := scan.NewCapture(
		scan.FileOpener{Path: cfg.Scanner.Device},
		cfg.Scanner.Symbologies,
		log,
	)

	notifier := terminal.NewToastNotifier(os.Stdout, log)
	controller := declaration.NewController(paletteGW, capture, notifier, log)
	clientsUC := clients.NewUseCase(clientGW, session)

	ui := terminal.NewUI(controller, clientsUC, session, os.Stdin, os.Stdout, log)
	if err := ui.Run(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("la interfaz terminó con error")
	}
}
