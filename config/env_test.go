package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFiles_Precedence(t *testing.T) {
	require.NoError(t, Load())

	dir := t.TempDir()
	jsonPath := writeFile(t, dir, "app.json", `{"app_port":"9000","jwt_secret":"from-json","rate_limit_per_minute":50}`)
	envPath := writeFile(t, dir, ".env", "JWT_SECRET=\"from-dotenv\"\nACCESS_TOKEN_TTL=15m\n# comment\n")

	t.Setenv("APP_ENV", "production")
	require.NoError(t, loadFromFiles(jsonPath, envPath))
	t.Cleanup(func() { _ = loadFromFiles("", "") })

	assert.Equal(t, "9000", AppPort())
	assert.Equal(t, "from-dotenv", JWTSecret())
	assert.Equal(t, 15*time.Minute, AccessTokenTTL())
	assert.Equal(t, 50, RateLimitPerMinute())
	assert.Equal(t, "production", AppEnv())
}

func TestDefaults(t *testing.T) {
	require.NoError(t, Load())
	require.NoError(t, loadFromFiles("missing.json", "missing.env"))

	assert.Equal(t, 60*time.Minute, AccessTokenTTL())
	assert.Equal(t, 72*time.Hour, RefreshTokenTTL())
	assert.Equal(t, "sqlite", DatabaseDriver())
	assert.Equal(t, "orderdesk.db", DatabaseDSN())
	assert.Equal(t, int64(4<<20), MaxBodyBytes())
	assert.Equal(t, 0, BcryptCost())
	assert.Empty(t, RabbitURL())
	assert.False(t, TrustProxy())
}

func TestDatabaseDriver_UnknownFallsBack(t *testing.T) {
	require.NoError(t, Load())
	require.NoError(t, loadFromFiles("missing.json", "missing.env"))

	Set("DB_DRIVER", "oracle")
	assert.Equal(t, "sqlite", DatabaseDriver())

	Set("DB_DRIVER", "postgres")
	assert.Contains(t, DatabaseDSN(), "dbname=orderdesk")
}

func TestMalformedDuration(t *testing.T) {
	require.NoError(t, Load())
	require.NoError(t, loadFromFiles("missing.json", "missing.env"))

	Set("CACHE_TTL", "soon")
	assert.Equal(t, 5*time.Minute, CacheTTL())
}

func TestJWTSecretIsDefault(t *testing.T) {
	require.NoError(t, Load())
	env, secret := Get("APP_ENV", ""), Get("JWT_SECRET", "")
	t.Cleanup(func() {
		Set("APP_ENV", env)
		Set("JWT_SECRET", secret)
	})

	Set("JWT_SECRET", "")
	assert.True(t, JWTSecretIsDefault())
	Set("JWT_SECRET", "s3cret")
	assert.False(t, JWTSecretIsDefault())

	Set("APP_ENV", "Production")
	assert.True(t, IsProduction())
	Set("APP_ENV", "local")
	assert.False(t, IsProduction())
}
