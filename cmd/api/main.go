package main

import (
	"os"

	"schoolhub/internal/bootstrap"
	"schoolhub/internal/pkg/logger"
	"schoolhub/internal/server"
)

func main() {
	cfg, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	database, err := bootstrap.SetupDatabase(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to set up database")
		os.Exit(1)
	}
	defer database.Close()

	deps := bootstrap.BuildDependencies(cfg, database)
	router := bootstrap.SetupRouter(deps)

	srv := server.New(router, cfg.Server.Port)
	if err := srv.Run(); err != nil {
		logger.Error().Err(err).Msg("Server exited with error")
		os.Exit(1)
	}
}
