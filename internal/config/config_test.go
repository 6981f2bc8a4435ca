package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, ":8080", cfg.ServerAddress)
	assert.Equal(t, "memory", cfg.Backend)
	assert.Equal(t, "earnbuddy", cfg.MongoDatabase)
	assert.Equal(t, "./data", cfg.DataDir)
	assert.Equal(t, "local", cfg.AuthMode)
	assert.Equal(t, 24*time.Hour, cfg.JWTExpiration)
	assert.NotEmpty(t, cfg.JWTSecret)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", ":9999")
	t.Setenv("BACKEND", "mongo")
	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	t.Setenv("AUTH_MODE", "firebase")
	t.Setenv("FIREBASE_PROJECT_ID", "earnbuddy-test")

	cfg := Load()

	assert.Equal(t, ":9999", cfg.ServerAddress)
	assert.Equal(t, "mongo", cfg.Backend)
	assert.Equal(t, "mongodb://localhost:27017", cfg.MongoURI)
	assert.Equal(t, "firebase", cfg.AuthMode)
	assert.Equal(t, "earnbuddy-test", cfg.FirebaseProjectID)
}
