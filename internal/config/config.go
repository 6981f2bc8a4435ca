package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress string

	// Backend selects the data layer: "mongo" or "memory".
	Backend       string
	MongoURI      string
	MongoDatabase string

	// DataDir holds the JSON document set for the memory backend. Empty
	// means ephemeral.
	DataDir string

	// AuthMode selects the identity provider: "firebase" or "local".
	AuthMode                string
	FirebaseProjectID       string
	FirebaseCredentialsFile string
	FirebaseWebAPIKey       string

	JWTSecret     string
	JWTExpiration time.Duration
}

// Load reads configuration from the environment, after sourcing a .env file
// when one is present alongside the binary.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerAddress:           getEnv("SERVER_ADDRESS", ":8080"),
		Backend:                 getEnv("BACKEND", "memory"),
		MongoURI:                getEnv("MONGO_URI", ""),
		MongoDatabase:           getEnv("MONGO_DATABASE", "earnbuddy"),
		DataDir:                 getEnv("DATA_DIR", "./data"),
		AuthMode:                getEnv("AUTH_MODE", "local"),
		FirebaseProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseCredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		FirebaseWebAPIKey:       getEnv("FIREBASE_WEB_API_KEY", ""),
		JWTSecret:               getEnv("JWT_SECRET", "your-secret-key-change-in-production"),
		JWTExpiration:           24 * time.Hour,
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
