package migration

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/mustachebash/v1-migration/database"
)

type Config struct {
	Log struct {
		Level string `toml:"level"`
	} `toml:"log"`
	Source struct {
		URI      string `toml:"uri"`
		Database string `toml:"database"`
	} `toml:"source"`
	DB database.Config `toml:"db"`
	// Users maps legacy operator usernames to their pre-assigned user
	// UUIDs in the target database.
	Users map[string]string `toml:"users"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := toml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if config.Source.URI == "" {
		return nil, fmt.Errorf("source.uri is required")
	}
	if config.Source.Database == "" {
		return nil, fmt.Errorf("source.database is required")
	}
	if len(config.Users) == 0 {
		return nil, fmt.Errorf("at least one [users] mapping is required")
	}

	return &config, nil
}
