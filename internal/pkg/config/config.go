package config

import (
	"log"
	"os"
	"time"

	"github.com/piresc/secureword/internal/pkg/models"
	"github.com/spf13/viper"
)

// InitConfig loads configuration from the environment. Outside production the
// env file at configPath is read first; real environment variables win over it.
func InitConfig(configPath string) *models.Config {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if v.GetString("APP_ENV") != "production" && configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			v.SetConfigFile(configPath)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				log.Println("error loading config from file", err)
			}
		}
	}

	return loadConfig(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "secureword-auth")
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("APP_VERSION", "development")

	v.SetDefault("SERVER_HOST", "")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("SERVER_READ_TIMEOUT", 10)
	v.SetDefault("SERVER_WRITE_TIMEOUT", 10)
	v.SetDefault("SERVER_SHUTDOWN_TIMEOUT", 30)

	v.SetDefault("DB_ENABLED", false)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_IDLE_CONNS", 2)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("REDIS_POOL_SIZE", 10)

	v.SetDefault("NSQ_ENABLED", false)
	v.SetDefault("NSQ_ADDRESS", "localhost:4150")

	v.SetDefault("JWT_EXPIRATION", 60)
	v.SetDefault("JWT_ISSUER", "secureword-auth")

	v.SetDefault("AUTH_SECRET_KEY", "")
	v.SetDefault("AUTH_CHALLENGE_TTL", 60*time.Second)
	v.SetDefault("AUTH_CHALLENGE_COOLDOWN", 10*time.Second)
	v.SetDefault("AUTH_CHALLENGE_LENGTH", 12)
	v.SetDefault("AUTH_MFA_CODE", "123456")
	v.SetDefault("AUTH_MFA_MAX_ATTEMPTS", 3)
	v.SetDefault("AUTH_MFA_LOCKOUT_TTL", time.Duration(0))
	v.SetDefault("AUTH_PENDING_TTL", 5*time.Minute)
	v.SetDefault("AUTH_REQUIRE_PENDING", true)
	v.SetDefault("AUTH_COOKIE_SECURE", false)
	v.SetDefault("AUTH_STORE_BACKEND", models.StoreBackendMemory)

	v.SetDefault("NEW_RELIC_ENABLED", false)
	v.SetDefault("NEW_RELIC_FORWARD_LOGS", false)

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FILE_PATH", "")
}

func loadConfig(v *viper.Viper) *models.Config {
	configs := &models.Config{}

	// App config
	configs.App.Name = v.GetString("APP_NAME")
	configs.App.Environment = v.GetString("APP_ENV")
	configs.App.Debug = v.GetBool("APP_DEBUG")
	configs.App.Version = v.GetString("APP_VERSION")

	// Server config
	configs.Server.Host = v.GetString("SERVER_HOST")
	configs.Server.Port = v.GetInt("SERVER_PORT")
	configs.Server.ReadTimeout = v.GetInt("SERVER_READ_TIMEOUT")
	configs.Server.WriteTimeout = v.GetInt("SERVER_WRITE_TIMEOUT")
	configs.Server.ShutdownTimeout = v.GetInt("SERVER_SHUTDOWN_TIMEOUT")

	// Database config
	configs.Database.Enabled = v.GetBool("DB_ENABLED")
	configs.Database.Host = v.GetString("DB_HOST")
	configs.Database.Port = v.GetInt("DB_PORT")
	configs.Database.Username = v.GetString("DB_USERNAME")
	configs.Database.Password = v.GetString("DB_PASSWORD")
	configs.Database.Database = v.GetString("DB_DATABASE")
	configs.Database.SSLMode = v.GetString("DB_SSL_MODE")
	configs.Database.MaxConns = v.GetInt("DB_MAX_CONNS")
	configs.Database.IdleConns = v.GetInt("DB_IDLE_CONNS")

	// Redis config
	configs.Redis.Host = v.GetString("REDIS_HOST")
	configs.Redis.Port = v.GetInt("REDIS_PORT")
	configs.Redis.Password = v.GetString("REDIS_PASSWORD")
	configs.Redis.DB = v.GetInt("REDIS_DB")
	configs.Redis.PoolSize = v.GetInt("REDIS_POOL_SIZE")

	// NSQ config
	configs.NSQ.Enabled = v.GetBool("NSQ_ENABLED")
	configs.NSQ.Address = v.GetString("NSQ_ADDRESS")

	// JWT config
	configs.JWT.Secret = v.GetString("JWT_SECRET")
	configs.JWT.Expiration = v.GetInt("JWT_EXPIRATION")
	configs.JWT.Issuer = v.GetString("JWT_ISSUER")

	// Auth config
	configs.Auth.SecretKey = v.GetString("AUTH_SECRET_KEY")
	configs.Auth.ChallengeTTL = v.GetDuration("AUTH_CHALLENGE_TTL")
	configs.Auth.ChallengeCooldown = v.GetDuration("AUTH_CHALLENGE_COOLDOWN")
	configs.Auth.ChallengeLength = v.GetInt("AUTH_CHALLENGE_LENGTH")
	configs.Auth.MFACode = v.GetString("AUTH_MFA_CODE")
	configs.Auth.MFAMaxAttempts = v.GetInt("AUTH_MFA_MAX_ATTEMPTS")
	configs.Auth.MFALockoutTTL = v.GetDuration("AUTH_MFA_LOCKOUT_TTL")
	configs.Auth.PendingTTL = v.GetDuration("AUTH_PENDING_TTL")
	configs.Auth.RequirePending = v.GetBool("AUTH_REQUIRE_PENDING")
	configs.Auth.CookieSecure = v.GetBool("AUTH_COOKIE_SECURE")
	configs.Auth.StoreBackend = v.GetString("AUTH_STORE_BACKEND")

	// Admin config
	configs.Admin.APIKey = v.GetString("ADMIN_API_KEY")

	// NewRelic config
	configs.NewRelic.LicenseKey = v.GetString("NEW_RELIC_LICENSE_KEY")
	configs.NewRelic.AppName = v.GetString("NEW_RELIC_APP_NAME")
	configs.NewRelic.Enabled = v.GetBool("NEW_RELIC_ENABLED")
	configs.NewRelic.ForwardLogs = v.GetBool("NEW_RELIC_FORWARD_LOGS")

	// Logger config
	configs.Logger.Level = v.GetString("LOG_LEVEL")
	configs.Logger.FilePath = v.GetString("LOG_FILE_PATH")

	return configs
}
