package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	// Save current env and restore later
	origURI := os.Getenv("MONGODB_URI")
	defer os.Setenv("MONGODB_URI", origURI)

	os.Setenv("MONGODB_URI", "mongodb://test-host:27017")
	os.Setenv("JWT_TTL_MINUTES", "120")
	os.Setenv("MINIO_USE_SSL", "true")
	defer os.Unsetenv("JWT_TTL_MINUTES")
	defer os.Unsetenv("MINIO_USE_SSL")

	cfg := Load()

	assert.Equal(t, "mongodb://test-host:27017", cfg.Mongo.URI)
	assert.Equal(t, 120, cfg.JWT.TTLMinutes)
	assert.True(t, cfg.MinIO.UseSSL)
}

func TestLoadDefaults(t *testing.T) {
	os.Unsetenv("MONGODB_DATABASE")
	os.Unsetenv("UPLOAD_TEMP_DIR")
	os.Unsetenv("JWT_ISSUER")

	cfg := Load()

	assert.Equal(t, "blog", cfg.Mongo.Database)
	assert.Equal(t, "temp", cfg.Upload.TempDir)
	assert.Equal(t, "blogapi", cfg.JWT.Issuer)
}

func TestGetEnv(t *testing.T) {
	key := "TEST_ENV_VAR"
	os.Setenv(key, "value")
	defer os.Unsetenv(key)

	assert.Equal(t, "value", getEnv(key, "default"))
	assert.Equal(t, "default", getEnv("NON_EXISTENT", "default"))
}

func TestGetEnvBool(t *testing.T) {
	key := "TEST_BOOL_VAR"

	os.Setenv(key, "true")
	assert.True(t, getEnvBool(key, false))

	os.Setenv(key, "false")
	assert.False(t, getEnvBool(key, true))

	os.Setenv(key, "invalid")
	assert.True(t, getEnvBool(key, true))

	os.Unsetenv(key)
	assert.True(t, getEnvBool(key, true))
}

func TestGetEnvInt(t *testing.T) {
	key := "TEST_INT_VAR"

	os.Setenv(key, "123")
	assert.Equal(t, 123, getEnvInt(key, 0))

	os.Setenv(key, "invalid")
	assert.Equal(t, 10, getEnvInt(key, 10))

	os.Unsetenv(key)
	assert.Equal(t, 10, getEnvInt(key, 10))
}
