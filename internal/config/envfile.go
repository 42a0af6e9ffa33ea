package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
)

// EnvFileVar names a single env file to load instead of the defaults.
const EnvFileVar = "ENV_FILE"

// LoadEnvFiles populates the process environment from env files in priority
// order:
//  1. ENV_FILE (if set, only this file is loaded)
//  2. .env.local
//  3. .env
//
// Variables already present in the environment are never overwritten, and
// missing files are ignored.
func LoadEnvFiles() error {
	if envFile := os.Getenv(EnvFileVar); envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("load env file %s: %w", envFile, err)
		}
		return nil
	}

	if err := godotenv.Load(".env.local"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env.local: %w", err)
	}

	if err := godotenv.Load(".env"); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("load .env: %w", err)
	}

	return nil
}
