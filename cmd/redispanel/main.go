package main

import (
	"context"
	"os"

	"github.com/dmitrymomot/redispanel/api"
	"github.com/dmitrymomot/redispanel/pkg/config"
	"github.com/dmitrymomot/redispanel/pkg/gateway"
	"github.com/dmitrymomot/redispanel/pkg/httpserver"
	"github.com/dmitrymomot/redispanel/pkg/inspector"
	"github.com/dmitrymomot/redispanel/pkg/logger"
	"github.com/dmitrymomot/redispanel/pkg/profilestore"
	"github.com/dmitrymomot/redispanel/pkg/registry"
	"github.com/dmitrymomot/redispanel/pkg/serverinfo"
)

type appConfig struct {
	Environment string `env:"APP_ENV" envDefault:"development"` // development or production
}

func main() {
	var (
		appCfg   appConfig
		httpCfg  httpserver.Config
		regCfg   registry.Config
		storeCfg profilestore.Config
	)
	config.MustLoad(&appCfg)
	config.MustLoad(&httpCfg)
	config.MustLoad(&regCfg)
	config.MustLoad(&storeCfg)

	logOpt := logger.WithDevelopment("redispanel")
	if appCfg.Environment == "production" {
		logOpt = logger.WithProduction("redispanel")
	}
	log := logger.New(logOpt)
	logger.SetAsDefault(log)

	store, err := profilestore.Open(storeCfg, log)
	if err != nil {
		log.Error("failed to open profile store", logger.Error(err))
		os.Exit(1)
	}
	defer func() { _ = store.Close() }()

	reg := registry.New(regCfg, log)
	defer reg.Close()

	handler := api.New(
		log,
		reg,
		gateway.New(reg, log),
		inspector.New(reg, log),
		serverinfo.New(reg, log),
		store,
	)

	srv := httpserver.NewFromConfig(httpCfg, httpserver.WithLogger(log))
	if err := srv.Run(context.Background(), handler.Router()); err != nil {
		log.Error("server stopped with error", logger.Error(err))
		os.Exit(1)
	}
}
