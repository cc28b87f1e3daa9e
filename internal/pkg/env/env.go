package env

import (
	"os"

	"github.com/joho/godotenv"
)

var Env map[string]string

// GetEnv resolves a config key from the loaded .env map first, then the
// process environment (containers usually inject config that way), then
// the given default.
func GetEnv(key, def string) string {
	if val, ok := Env[key]; ok {
		return val
	}
	if val := os.Getenv(key); val != "" {
		return val
	}
	return def
}

// SetupEnvFile loads the .env file into the Env map. The candidate paths
// cover running from the repo root and from the cmd/ entrypoints.
func SetupEnvFile() {
	envFiles := []string{
		".env",
		"../../.env",
		"../../../.env",
	}

	var err error
	for _, envFile := range envFiles {
		Env, err = godotenv.Read(envFile)
		if err == nil {
			return
		}
	}

	panic("No .env file found in any of the expected locations")
}

func IsDev() bool {
	return GetEnv("APP_ENV", "prod") == "dev"
}
