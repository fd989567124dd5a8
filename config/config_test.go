package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setCIEnv(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "postgres")
	t.Setenv("DB_NAME", "macrotrack")
	t.Setenv("DB_SSL_MODE", "disable")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6379")
	t.Setenv("TEST_DB_PASSWORD", "postgres")
	t.Setenv("TEST_JWT_SECRET", "test-secret")
	t.Setenv("TEST_REDIS_URL", "redis://localhost:6379")
}

func TestLoadConfigCI(t *testing.T) {
	setCIEnv(t)
	t.Setenv("RATE_LIMIT_REQUESTS", "5")
	t.Setenv("LOOKUP_CACHE_TTL", "10m")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5432", cfg.DBPort)
	assert.Equal(t, "postgres", cfg.DBUser)
	assert.Equal(t, "postgres", cfg.DBPassword)
	assert.Equal(t, "macrotrack", cfg.DBName)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "redis://localhost:6379", cfg.RedisURL)

	assert.Equal(t, 5, cfg.RateLimitRequests)
	assert.Equal(t, 10*time.Minute, cfg.LookupCacheTTL)
	assert.Equal(t, defaultRateLimitWindow, cfg.RateLimitWindow)
	assert.Equal(t, defaultFDCBaseURL, cfg.FDCBaseURL)
	assert.Equal(t, demoFDCAPIKey, cfg.FDCAPIKey)
	assert.Equal(t, defaultExportBucketName, cfg.ExportBucket)
}

func TestLoadConfigCIMissingPassword(t *testing.T) {
	setCIEnv(t)
	t.Setenv("TEST_DB_PASSWORD", "")

	_, err := LoadConfig()
	require.Error(t, err)

	var verrs ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "DBPassword", verrs[0].Field)
}

func TestLoadConfigDevelopmentSecretsWinOverEnv(t *testing.T) {
	dir := t.TempDir()
	secrets := map[string]string{
		"db_password": "from-secret\n",
		"jwt_secret":  "jwt-from-secret",
	}
	for name, value := range secrets {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(value), 0o600))
	}

	t.Setenv("CI", "")
	t.Setenv("ENV", "development")
	t.Setenv("SECRETS_DIR", dir)
	t.Setenv("SERVER_PORT", "8080")
	t.Setenv("DB_HOST", "db")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "macro")
	t.Setenv("DB_NAME", "macrotrack")
	t.Setenv("DB_PASSWORD", "from-env")
	t.Setenv("REDIS_URL", "redis://redis:6379")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-secret", cfg.DBPassword)
	assert.Equal(t, "jwt-from-secret", cfg.JWTSecret)
	assert.Equal(t, "db", cfg.DBHost)
	assert.Equal(t, "disable", cfg.DBSSLMode)
}

func TestValidateConfigProductionRequiresFDCKey(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("ENV", "production")

	cfg := &Config{
		ServerPort: "8080", DBHost: "db", DBPort: "5432", DBName: "m", DBUser: "u",
		DBPassword: "p", JWTSecret: "s", RedisURL: "redis://r:6379",
	}
	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "FDCAPIKey")

	cfg.FDCAPIKey = "key"
	assert.NoError(t, ValidateConfig(cfg))
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("CI", "true")
	t.Setenv("ENV", "production")
	assert.Equal(t, CI, GetEnvironment())

	t.Setenv("CI", "")
	assert.True(t, IsProduction())

	t.Setenv("ENV", "nonsense")
	assert.True(t, IsDevelopment())
}

func TestParseEnvironment(t *testing.T) {
	tests := []struct {
		value string
		want  Environment
		mode  string
	}{
		{"production", Production, "release"},
		{" Production ", Production, "release"},
		{"test", Test, "test"},
		{"ci", CI, "test"},
		{"", Development, "debug"},
		{"staging", Development, "debug"},
	}
	for _, tt := range tests {
		env := ParseEnvironment(tt.value)
		assert.Equal(t, tt.want, env, tt.value)
		assert.Equal(t, tt.mode, env.GinMode(), tt.value)
	}
}

func TestDSN(t *testing.T) {
	cfg := &Config{DBHost: "h", DBPort: "1", DBUser: "u", DBPassword: "p", DBName: "n", DBSSLMode: "disable"}
	assert.Equal(t, "host=h port=1 user=u password=p dbname=n sslmode=disable", cfg.DSN())
}
