package util

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
)

const (
	DispatchModeInline = "inline"
	DispatchModeQueue  = "queue"

	ProfileStoreFirestore = "firestore"
	ProfileStorePostgres  = "postgres"
)

// Config stores all configuration of the application.
// The values are read by viper from a config file or environment variables.
type Config struct {
	AllowedOrigins               []string      `mapstructure:"ALLOWED_ORIGINS"`
	HTTPServerAddress            string        `mapstructure:"HTTP_SERVER_ADDRESS"`
	FirebaseProjectID            string        `mapstructure:"FIREBASE_PROJECT_ID"`
	GoogleCredentialsFile        string        `mapstructure:"GOOGLE_APPLICATION_CREDENTIALS"`
	MessagesCollection           string        `mapstructure:"MESSAGES_COLLECTION"`
	UsersCollection              string        `mapstructure:"USERS_COLLECTION"`
	ProfileStore                 string        `mapstructure:"PROFILE_STORE"`
	DatabaseURL                  string        `mapstructure:"DATABASE_URL"`
	RedisServerAddress           string        `mapstructure:"REDIS_SERVER_ADDRESS"`
	DispatchMode                 string        `mapstructure:"DISPATCH_MODE"`
	DedupTTL                     time.Duration `mapstructure:"DEDUP_TTL"`
	ListenerEnabled              bool          `mapstructure:"LISTENER_ENABLED"`
	PubSubAudience               string        `mapstructure:"PUBSUB_AUDIENCE"`
	WebhookSecret                string        `mapstructure:"WEBHOOK_SECRET"`
	DiscordBotToken              string        `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordChannelID             string        `mapstructure:"DISCORD_CHANNEL_ID"`
	StatsInterval                time.Duration `mapstructure:"STATS_INTERVAL"`
	NgrokAuthToken               string        `mapstructure:"NGROK_AUTHTOKEN"`
	FirebaseWebAPIKey            string        `mapstructure:"FIREBASE_WEB_API_KEY"`
	FirebaseWebAuthDomain        string        `mapstructure:"FIREBASE_WEB_AUTH_DOMAIN"`
	FirebaseWebStorageBucket     string        `mapstructure:"FIREBASE_WEB_STORAGE_BUCKET"`
	FirebaseWebMessagingSenderID string        `mapstructure:"FIREBASE_WEB_MESSAGING_SENDER_ID"`
	FirebaseWebAppID             string        `mapstructure:"FIREBASE_WEB_APP_ID"`
	FirebaseJSSDKVersion         string        `mapstructure:"FIREBASE_JS_SDK_VERSION"`
	NotificationIcon             string        `mapstructure:"NOTIFICATION_ICON"`
}

// AlertsEnabled reports whether failed deliveries should be posted to Discord.
func (config Config) AlertsEnabled() bool {
	return config.DiscordBotToken != "" && config.DiscordChannelID != ""
}

// LoadConfig reads configuration from file or environment variables.
// The file is optional so the service can run from environment variables only.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()

	// Set defaults for non-sensitive config
	v.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	v.SetDefault("HTTP_SERVER_ADDRESS", "0.0.0.0:8080")
	v.SetDefault("MESSAGES_COLLECTION", "messages")
	v.SetDefault("USERS_COLLECTION", "users")
	v.SetDefault("PROFILE_STORE", ProfileStoreFirestore)
	v.SetDefault("DISPATCH_MODE", DispatchModeInline)
	v.SetDefault("DEDUP_TTL", "24h")
	v.SetDefault("LISTENER_ENABLED", true)
	v.SetDefault("STATS_INTERVAL", "5m")
	v.SetDefault("FIREBASE_JS_SDK_VERSION", "9.22.1")
	v.SetDefault("NOTIFICATION_ICON", "/icons/Icon-192.png")

	// Keys without a default still have to be known to viper,
	// otherwise AutomaticEnv never binds them during Unmarshal.
	for _, key := range []string{
		"FIREBASE_PROJECT_ID",
		"GOOGLE_APPLICATION_CREDENTIALS",
		"DATABASE_URL",
		"REDIS_SERVER_ADDRESS",
		"PUBSUB_AUDIENCE",
		"WEBHOOK_SECRET",
		"DISCORD_BOT_TOKEN",
		"DISCORD_CHANNEL_ID",
		"NGROK_AUTHTOKEN",
		"FIREBASE_WEB_API_KEY",
		"FIREBASE_WEB_AUTH_DOMAIN",
		"FIREBASE_WEB_STORAGE_BUCKET",
		"FIREBASE_WEB_MESSAGING_SENDER_ID",
		"FIREBASE_WEB_APP_ID",
	} {
		v.SetDefault(key, "")
	}

	// Prefer environment variables over config file
	v.AutomaticEnv()

	// Load config file
	if _, statErr := os.Stat(path); statErr == nil {
		v.SetConfigFile(path)
		if err = v.ReadInConfig(); err != nil {
			return
		}
	}

	// Unmarshal config into struct
	err = v.UnmarshalExact(&config)
	if err != nil {
		return
	}

	// Validate required configuration
	err = validateConfig(config)
	return
}

func validateConfig(config Config) error {
	if config.FirebaseProjectID == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID is required")
	}
	if config.RedisServerAddress == "" {
		return fmt.Errorf("REDIS_SERVER_ADDRESS is required")
	}

	switch config.ProfileStore {
	case ProfileStoreFirestore:
	case ProfileStorePostgres:
		if config.DatabaseURL == "" {
			return fmt.Errorf("DATABASE_URL is required when PROFILE_STORE is %q", ProfileStorePostgres)
		}
	default:
		return fmt.Errorf("PROFILE_STORE must be %q or %q, got %q", ProfileStoreFirestore, ProfileStorePostgres, config.ProfileStore)
	}

	if config.DispatchMode != DispatchModeInline && config.DispatchMode != DispatchModeQueue {
		return fmt.Errorf("DISPATCH_MODE must be %q or %q, got %q", DispatchModeInline, DispatchModeQueue, config.DispatchMode)
	}
	if config.DedupTTL < 0 {
		return fmt.Errorf("DEDUP_TTL must not be negative")
	}
	if config.StatsInterval <= 0 {
		return fmt.Errorf("STATS_INTERVAL must be positive")
	}

	return nil
}
