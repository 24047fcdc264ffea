package main

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"library-catalog/internal/config"
	"library-catalog/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	logger.Init(cfg.App.Environment, cfg.Log.Level)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	// average_rating is rendered as a JSON number, not a string
	decimal.MarshalJSONWithoutQuotes = true

	log.Info().
		Str("app", cfg.App.Name).
		Str("version", cfg.App.Version).
		Str("environment", cfg.App.Environment).
		Msg("starting")

	Serve(cfg)
}
