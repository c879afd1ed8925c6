package utils

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/turathhub/archive-backend/internal/logger"
)

// LoadDotEnv loads .env files if present. Missing files are not an error:
// production supplies real environment variables instead.
func LoadDotEnv(log *logger.Logger) {
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err == nil && log != nil {
			log.Debug("Loaded env file", "file", name)
		}
	}
}

func GetEnv(key, defaultVal string, log *logger.Logger) string {
	if log != nil {
		log = log.With("env_var", key)
	}
	val, ok := os.LookupEnv(key)
	if !ok {
		if log != nil {
			log.Debug("Environment variable not found, using default", "default", defaultVal)
		}
		return defaultVal
	}
	if log != nil {
		log.Debug("Environment variable found, using environment")
	}
	return val
}

func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
	if log != nil {
		log = log.With("env_var", key)
	}
	valStr, ok := os.LookupEnv(key)
	if !ok {
		if log != nil {
			log.Debug("Environment variable not found, using default", "default", defaultVal)
		}
		return defaultVal
	}
	i, err := strconv.Atoi(valStr)
	if err != nil {
		if log != nil {
			log.Debug("Environment variable could not be parsed as int, using default", "providedVal", valStr, "defaultVal", defaultVal, "error", err)
		}
		return defaultVal
	}
	return i
}
