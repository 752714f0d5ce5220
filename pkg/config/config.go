package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

const envPrefix = "MARKET"

type RedisConfig struct {
	URL          string        `split_words:"true" default:"redis://localhost:6379/0"`
	KeyPrefix    string        `split_words:"true" default:"market:cookies:"`
	ReadTimeout  time.Duration `split_words:"true" default:"3s"`
	WriteTimeout time.Duration `split_words:"true" default:"3s"`
	DialTimeout  time.Duration `split_words:"true" default:"5s"`
}

type Config struct {
	APIBaseURL      string        `envconfig:"API_BASE_URL" default:"http://localhost:8080"`
	Environment     string        `default:"development"`
	CredentialStore string        `split_words:"true" default:"file"`
	CredentialFile  string        `split_words:"true"`
	Profile         string        `default:"default"`
	StubPort        string        `split_words:"true" default:"8080"`
	ShutdownTimeout time.Duration `split_words:"true" default:"10s"`
	Redis           RedisConfig
}

// Load reads an optional .env file and then MARKET_* environment variables.
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(envPrefix, &cfg); err != nil {
		return nil, err
	}

	if cfg.CredentialFile == "" {
		cfg.CredentialFile = defaultCredentialFile()
	}

	return &cfg, nil
}

func defaultCredentialFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".market", "cookies.json")
	}
	return filepath.Join(home, ".market", "cookies.json")
}
