package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Parse loads an optional .env file and reads the server configuration
// from the environment.
func Parse() (Config, error) {
	cfg, err := Load[Config]()
	if err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("validate cfg: %w", err)
	}
	return cfg, nil
}

// Load reads any env-tagged struct. Variables already set in the process
// environment win over the .env file.
func Load[T any]() (T, error) {
	_ = godotenv.Load()

	var cfg T
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		var zero T
		return zero, fmt.Errorf("parse cfg: %w", err)
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case StorageMongo, StorageMemory:
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWT.ExpiresIn <= 0 {
		return errors.New("JWT_EXPIRES_IN must be positive")
	}
	if (c.Admin.Email == "") != (c.Admin.Password == "") {
		return errors.New("ADMIN_EMAIL and ADMIN_PASSWORD must be set together")
	}
	return nil
}
