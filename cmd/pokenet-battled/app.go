package main

import (
	"github.com/MrKumaPants/PokeNET-sub005/internal/config"
	"github.com/MrKumaPants/PokeNET-sub005/internal/data"
	"github.com/MrKumaPants/PokeNET-sub005/internal/logging"
	"github.com/MrKumaPants/PokeNET-sub005/internal/storage"
	"github.com/MrKumaPants/PokeNET-sub005/internal/typechart"
)

func loadConfigOrExit(path string) *config.LoadedConfig {
	cfg, err := config.LoadConfig(path)
	if err != nil {
		logging.Fatal("Missing or invalid configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func createRepositoryOrExit(dbPath string) storage.Repository {
	db, err := storage.OpenAndMigrate(dbPath)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, nil)
	}
	return storage.NewSQLiteRepository(db)
}

func createProviderOrExit(dataDir string) *data.YAMLProvider {
	provider, err := data.NewYAMLProvider(dataDir)
	if err != nil {
		logging.Fatal("Failed to load static data", err, logging.Fields{"data_dir": dataDir})
	}
	return provider
}

func createTypeChartOrExit(dataDir string) *typechart.Table {
	overrides, err := data.LoadTypeChartOverrides(dataDir)
	if err != nil {
		logging.Fatal("Failed to load type chart overrides", err, logging.Fields{"data_dir": dataDir})
	}
	return typechart.New(overrides...)
}
