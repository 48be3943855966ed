package main

import (
	"github.com/MrKumaPants/PokeNET-sub005/internal/api"
	"github.com/MrKumaPants/PokeNET-sub005/internal/config"
	"github.com/MrKumaPants/PokeNET-sub005/internal/service"
	"github.com/MrKumaPants/PokeNET-sub005/internal/version"
)

func main() {
	// Config path may come from POKENET_CONFIG or default to the working
	// directory.
	cfg := loadConfigOrExit(config.Path("./pokenet_config.json"))

	repo := createRepositoryOrExit(cfg.DatabasePath)
	provider := createProviderOrExit(cfg.DataDir)
	chart := createTypeChartOrExit(cfg.DataDir)

	svc := service.New(repo, provider, chart, cfg.BattleSeed)
	handler := api.NewBattleHandler(svc)
	router := api.NewRouter(handler)

	runServer(router, cfg.ServerAddress, version.Version)
}
