package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	MongoDB   MongoDBConfig
	JWT       JWTConfig
	Redis     RedisConfig
	OTP       OTPConfig
	Mail      MailConfig
	RateLimit RateLimitConfig
	Scheduler SchedulerConfig
	Log       LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port         string
	Mode         string // gin mode: debug, release, test
	AllowedHosts []string
}

// MongoDBConfig holds MongoDB-specific configuration
type MongoDBConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// JWTConfig holds JWT-specific configuration
type JWTConfig struct {
	Secret     string
	ExpiresIn  int // seconds
	CookieName string
}

// RedisConfig holds the Redis connection used for OTP codes and rate limits
type RedisConfig struct {
	URL     string
	Enabled bool
}

// OTPConfig controls one-time verification codes
type OTPConfig struct {
	TTL    time.Duration
	Length int
}

// MailConfig holds SMTP settings for outgoing mail
type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Mock     bool
}

// RateLimitConfig holds request limits for sensitive endpoints
type RateLimitConfig struct {
	OTPPerMinute int
}

// SchedulerConfig holds cron settings for background jobs
type SchedulerConfig struct {
	Enabled       bool
	ReconcileSpec string
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string
	Format string
}

// Load loads configuration from an optional config.yaml under path and the environment.
// Environment variables use underscores for nesting, e.g. MONGODB_URI or JWT_SECRET.
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(path)
	v.AddConfigPath("./config")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		// It's okay if config file is not found, we'll use environment variables
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.MongoDB.URI == "" {
		return errors.New("MONGODB_URI is required")
	}
	return nil
}

// setDefaults registers every key so AutomaticEnv can resolve it during Unmarshal
func setDefaults(v *viper.Viper) {
	v.SetDefault("Server.Port", "4000")
	v.SetDefault("Server.Mode", "release")
	v.SetDefault("Server.AllowedHosts", []string{"http://localhost:3000"})
	v.SetDefault("MongoDB.URI", "mongodb://localhost:27017")
	v.SetDefault("MongoDB.Database", "estatehub")
	v.SetDefault("MongoDB.Timeout", 10*time.Second)
	v.SetDefault("JWT.Secret", "")
	v.SetDefault("JWT.ExpiresIn", 7*24*60*60) // 7 days
	v.SetDefault("JWT.CookieName", "token")
	v.SetDefault("Redis.URL", "redis://localhost:6379/0")
	v.SetDefault("Redis.Enabled", true)
	v.SetDefault("OTP.TTL", 10*time.Minute)
	v.SetDefault("OTP.Length", 6)
	v.SetDefault("Mail.Host", "smtp.gmail.com")
	v.SetDefault("Mail.Port", 587)
	v.SetDefault("Mail.Username", "")
	v.SetDefault("Mail.Password", "")
	v.SetDefault("Mail.From", "no-reply@estatehub.local")
	v.SetDefault("Mail.Mock", true)
	v.SetDefault("RateLimit.OTPPerMinute", 5)
	v.SetDefault("Scheduler.Enabled", true)
	v.SetDefault("Scheduler.ReconcileSpec", "0 30 2 * * *") // 02:30 UTC daily
	v.SetDefault("Log.Level", "info")
	v.SetDefault("Log.Format", "text")
}
