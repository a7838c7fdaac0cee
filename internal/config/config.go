package config

import (
	"os"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/maxbolgarin/errm"
	"github.com/maxbolgarin/failsight/internal/agent"
	"github.com/maxbolgarin/failsight/internal/analyzer"
	"github.com/maxbolgarin/failsight/internal/extractor"
	"github.com/maxbolgarin/failsight/internal/server"
)

// Config represents the main application configuration
type Config struct {
	Agent     agent.Config     `yaml:"agent"`
	Analysis  analyzer.Config  `yaml:"analysis"`
	Extractor extractor.Config `yaml:"extractor"`
	Server    server.Config    `yaml:"server"`
}

// Load reads configuration from an optional .env file, an optional YAML file
// and environment variables. Environment values override YAML ones. Section
// validation happens when each component is created, so only the sections a
// run mode actually uses are required.
func Load(path string) (Config, error) {
	// Same convenience as the usual dotenv flow: a missing .env is fine
	_ = godotenv.Load()

	var cfg Config

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, errm.Wrap(err, "config file is not accessible")
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return Config{}, errm.Wrap(err, "failed to read config file")
		}
		return cfg, nil
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, errm.Wrap(err, "failed to read environment")
	}

	return cfg, nil
}
