package util

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeEnvFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "app.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	t.Run("should apply defaults for optional keys", func(t *testing.T) {
		req := require.New(t)
		path := writeEnvFile(t, "FIREBASE_PROJECT_ID=baby-shop-hub\nREDIS_SERVER_ADDRESS=localhost:6379\n")

		config, err := LoadConfig(path)

		req.NoError(err)
		req.Equal("baby-shop-hub", config.FirebaseProjectID)
		req.Equal("0.0.0.0:8080", config.HTTPServerAddress)
		req.Equal("messages", config.MessagesCollection)
		req.Equal("users", config.UsersCollection)
		req.Equal(ProfileStoreFirestore, config.ProfileStore)
		req.Equal(DispatchModeInline, config.DispatchMode)
		req.Equal(24*time.Hour, config.DedupTTL)
		req.Equal(5*time.Minute, config.StatsInterval)
		req.True(config.ListenerEnabled)
		req.Equal("9.22.1", config.FirebaseJSSDKVersion)
		req.Equal("/icons/Icon-192.png", config.NotificationIcon)
		req.False(config.AlertsEnabled())
	})

	t.Run("should prefer environment variables over the file", func(t *testing.T) {
		req := require.New(t)
		path := writeEnvFile(t, "FIREBASE_PROJECT_ID=from-file\nREDIS_SERVER_ADDRESS=localhost:6379\nDISPATCH_MODE=inline\n")
		t.Setenv("DISPATCH_MODE", DispatchModeQueue)
		t.Setenv("DEDUP_TTL", "0s")
		t.Setenv("LISTENER_ENABLED", "false")

		config, err := LoadConfig(path)

		req.NoError(err)
		req.Equal(DispatchModeQueue, config.DispatchMode)
		req.Zero(config.DedupTTL)
		req.False(config.ListenerEnabled)
	})

	t.Run("should load from environment when the file is missing", func(t *testing.T) {
		req := require.New(t)
		t.Setenv("FIREBASE_PROJECT_ID", "env-only")
		t.Setenv("REDIS_SERVER_ADDRESS", "redis:6379")
		t.Setenv("DISCORD_BOT_TOKEN", "bot")
		t.Setenv("DISCORD_CHANNEL_ID", "123")

		config, err := LoadConfig(filepath.Join(t.TempDir(), "missing.env"))

		req.NoError(err)
		req.Equal("env-only", config.FirebaseProjectID)
		req.Equal("redis:6379", config.RedisServerAddress)
		req.True(config.AlertsEnabled())
	})

	t.Run("should reject postgres profile store without a database url", func(t *testing.T) {
		req := require.New(t)
		path := writeEnvFile(t, "FIREBASE_PROJECT_ID=p\nREDIS_SERVER_ADDRESS=localhost:6379\nPROFILE_STORE=postgres\n")

		_, err := LoadConfig(path)

		req.ErrorContains(err, "DATABASE_URL is required")
	})
}

func TestValidateConfig(t *testing.T) {
	valid := Config{
		FirebaseProjectID:  "p",
		RedisServerAddress: "localhost:6379",
		ProfileStore:       ProfileStoreFirestore,
		DispatchMode:       DispatchModeInline,
		StatsInterval:      time.Minute,
	}

	testCases := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "missing project", mutate: func(c *Config) { c.FirebaseProjectID = "" }, wantErr: "FIREBASE_PROJECT_ID"},
		{name: "missing redis", mutate: func(c *Config) { c.RedisServerAddress = "" }, wantErr: "REDIS_SERVER_ADDRESS"},
		{name: "unknown profile store", mutate: func(c *Config) { c.ProfileStore = "mysql" }, wantErr: "PROFILE_STORE"},
		{name: "unknown dispatch mode", mutate: func(c *Config) { c.DispatchMode = "batch" }, wantErr: "DISPATCH_MODE"},
		{name: "negative dedup ttl", mutate: func(c *Config) { c.DedupTTL = -time.Second }, wantErr: "DEDUP_TTL"},
		{name: "zero stats interval", mutate: func(c *Config) { c.StatsInterval = 0 }, wantErr: "STATS_INTERVAL"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			config := valid
			tc.mutate(&config)

			err := validateConfig(config)
			if tc.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.ErrorContains(t, err, tc.wantErr)
		})
	}
}
