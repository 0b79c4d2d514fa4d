package dotenv

import (
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnvs loads .env plus the environment-specific overlay such as
// .env.dev, selected by CULTFILM_ENV. Missing files are not an error so
// that deployed environments can rely on real env vars alone.
func LoadDotEnvs() error {
	env := os.Getenv("CULTFILM_ENV")
	if env != "" {
		godotenv.Load(".env." + env)
	}
	godotenv.Load()
	return nil
}
