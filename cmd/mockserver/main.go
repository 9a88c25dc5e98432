package main

import (
	"github.com/tu-usuario/palette-scan/internal/mockbackend"
	"github.com/tu-usuario/palette-scan/pkg/config"
	"github.com/tu-usuario/palette-scan/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	store := mockbackend.NewStore()
	if err := store.Seed(); err != nil {
		log.Fatal().Err(err).Msg("sembrar datos de desarrollo")
	}

	app := mockbackend.New(store, mockbackend.Config{
		JWTSecret:  cfg.JWT.Secret,
		JWTIssuer:  cfg.JWT.Issuer,
		ExpMinutes: cfg.JWT.Expiration,
	}, log)

	log.Info().Str("addr", cfg.Mock.Addr()).Msg("backend de desarrollo escuchando")
	if err := app.Listen(cfg.Mock.Addr()); err != nil {
		log.Fatal().Err(err).Msg("error del servidor")
	}
}
