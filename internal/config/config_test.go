package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Empty(t, cfg.DatabaseURL)
	assert.False(t, cfg.UsesDatabase())
	assert.True(t, cfg.SeedSampleData)
	assert.False(t, cfg.Log.JSON)
	assert.False(t, cfg.Log.Debug)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 10.0, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 20, cfg.RateLimit.Burst)
	assert.Equal(t, 10*time.Minute, cfg.RateLimit.IdleTTL)
	assert.Equal(t, DefaultBcryptCost, cfg.Password.BcryptCost)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATABASE_URL", "postgres://localhost/internships")
	t.Setenv("LOG_JSON", "true")
	t.Setenv("SEED_SAMPLE_DATA", "false")
	t.Setenv("RATE_LIMIT_RPS", "2.5")
	t.Setenv("RATE_LIMIT_BURST", "5")
	t.Setenv("BCRYPT_COST", "10")
	t.Setenv("PASSWORD_PEPPER", "spice")

	cfg, err := Load(viper.New())
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "postgres://localhost/internships", cfg.DatabaseURL)
	assert.True(t, cfg.UsesDatabase())
	assert.True(t, cfg.Log.JSON)
	assert.False(t, cfg.SeedSampleData)
	assert.Equal(t, 2.5, cfg.RateLimit.RequestsPerSecond)
	assert.Equal(t, 5, cfg.RateLimit.Burst)
	assert.Equal(t, 10, cfg.Password.BcryptCost)
	assert.Equal(t, "spice", cfg.Password.Pepper)
}

func TestLoad_FromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `port: 3000
log:
  debug: true
rate-limit:
  enabled: false
password:
  bcrypt-cost: 11
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	v := viper.New()
	require.NoError(t, ReadFile(v, path))

	cfg, err := Load(v)
	require.NoError(t, err)

	assert.Equal(t, 3000, cfg.Port)
	assert.True(t, cfg.Log.Debug)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, 11, cfg.Password.BcryptCost)
}

func TestLoad_EnvBeatsFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("port: 3000\n"), 0o644))
	t.Setenv("PORT", "4000")

	v := viper.New()
	require.NoError(t, ReadFile(v, path))

	cfg, err := Load(v)
	require.NoError(t, err)
	assert.Equal(t, 4000, cfg.Port)
}

func TestReadFile_Errors(t *testing.T) {
	t.Run("empty path", func(t *testing.T) {
		err := ReadFile(viper.New(), "")
		assert.Error(t, err)
	})

	t.Run("missing file", func(t *testing.T) {
		err := ReadFile(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{"port zero", map[string]string{"PORT": "0"}, "'port'"},
		{"port too large", map[string]string{"PORT": "70000"}, "'port'"},
		{"non-positive rate", map[string]string{"RATE_LIMIT_RPS": "0"}, "requests-per-second"},
		{"zero burst", map[string]string{"RATE_LIMIT_BURST": "0"}, "burst"},
		{"bcrypt cost too low", map[string]string{"BCRYPT_COST": "4"}, "bcrypt-cost"},
		{"bcrypt cost too high", map[string]string{"BCRYPT_COST": "15"}, "bcrypt-cost"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			cfg, err := Load(viper.New())
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_RateLimitDisabledSkipsRateChecks(t *testing.T) {
	cfg := &Config{
		Port:      8080,
		RateLimit: RateLimitConfig{Enabled: false},
		Password:  PasswordSettings{BcryptCost: DefaultBcryptCost},
	}
	assert.NoError(t, cfg.Validate())
}

func TestPasswordHasher(t *testing.T) {
	cfg := &Config{Password: PasswordSettings{BcryptCost: 10, Pepper: "p"}}
	hasher, err := cfg.PasswordHasher()
	require.NoError(t, err)
	assert.Equal(t, 10, hasher.BcryptCost)
	assert.Equal(t, "p", hasher.Pepper)
}
