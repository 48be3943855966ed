package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/MrKumaPants/PokeNET-sub005/internal/constants"
)

type rawConfig struct {
	Server *struct {
		Address string `json:"address"`
	} `json:"server"`
	Database *struct {
		Path string `json:"path"`
	} `json:"database"`
	// DataDir points at the YAML static-data tree (moves.yaml,
	// species/<id>.yaml, optional typechart.yaml).
	DataDir string `json:"data_dir"`
	Battle  *struct {
		// Seed, when non-zero, fixes the RNG seed of every battle. Zero
		// means seed from the clock per battle.
		Seed int64 `json:"seed"`
	} `json:"battle"`
}

// LoadedConfig is the validated startup configuration.
type LoadedConfig struct {
	ServerAddress string
	DatabasePath  string
	DataDir       string
	BattleSeed    int64
}

// Path returns the config file path, honoring the environment override.
func Path(fallback string) string {
	if p := os.Getenv(constants.EnvConfigPath); p != "" {
		return p
	}
	return fallback
}

// LoadConfig reads the configuration file at path. The data directory is
// required; server address and database path fall back to defaults.
func LoadConfig(path string) (*LoadedConfig, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	var rc rawConfig
	if err := json.Unmarshal(b, &rc); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if rc.DataDir == "" {
		return nil, fmt.Errorf("config file %s: missing 'data_dir'", path)
	}
	if st, err := os.Stat(rc.DataDir); err != nil || !st.IsDir() {
		return nil, fmt.Errorf("config file %s: data_dir %q is not a directory", path, rc.DataDir)
	}

	out := &LoadedConfig{
		ServerAddress: ":8080",
		DatabasePath:  "pokenet.db",
		DataDir:       rc.DataDir,
	}
	if rc.Server != nil && rc.Server.Address != "" {
		out.ServerAddress = rc.Server.Address
	}
	if rc.Database != nil && rc.Database.Path != "" {
		out.DatabasePath = rc.Database.Path
	}
	if p := os.Getenv(constants.EnvDBPath); p != "" {
		out.DatabasePath = p
	}
	if rc.Battle != nil {
		out.BattleSeed = rc.Battle.Seed
	}
	return out, nil
}
