package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port    int    `yaml:"port"`
	GinMode string `yaml:"gin_mode"`
}

type DatabaseConfig struct {
	DSN string `yaml:"dsn"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret    string `yaml:"secret"`
	Issuer    string `yaml:"issuer"`
	AccessTTL string `yaml:"access_ttl"`
}

type TwoFactorConfig struct {
	CodeLength     int    `yaml:"code_length"`
	CodeValidity   string `yaml:"code_validity"`
	MaxAttempts    int    `yaml:"max_attempts"`
	LockoutWindow  string `yaml:"lockout_window"`
	ResendCooldown string `yaml:"resend_cooldown"`
	Delivery       string `yaml:"delivery"` // "email" or "sms"
}

type SessionConfig struct {
	IdleTimeout string `yaml:"idle_timeout"`
}

type TwilioConfig struct {
	AccountSID string `yaml:"account_sid"`
	AuthToken  string `yaml:"auth_token"`
	FromNumber string `yaml:"from_number"`
}

type RateLimitConfig struct {
	PerMinute int `yaml:"per_minute"`
}

type ConfigFile struct {
	App       AppConfig       `yaml:"app"`
	Database  DatabaseConfig  `yaml:"database"`
	Redis     RedisConfig     `yaml:"redis"`
	JWT       JWTConfig       `yaml:"jwt"`
	TwoFactor TwoFactorConfig `yaml:"two_factor"`
	Session   SessionConfig   `yaml:"session"`
	Twilio    TwilioConfig    `yaml:"twilio"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
}

type Config struct {
	Port              string
	GinMode           string
	DSN               string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	JWTSecret         string
	JWTIssuer         string
	AccessTTL         time.Duration
	CodeLength        int
	CodeValidity      time.Duration
	MaxAttempts       int
	LockoutWindow     time.Duration
	ResendCooldown    time.Duration
	Delivery          string
	IdleTimeout       time.Duration
	TwilioSID         string
	TwilioToken       string
	TwilioFrom        string
	RateLimitPerMin   int
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func Load() (*Config, error) {
	return LoadFile(env("PORTAL_CONFIG", "config/config.yml"))
}

func LoadFile(path string) (*Config, error) {
	configFile, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	accessTTL, err := time.ParseDuration(configFile.JWT.AccessTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access TTL: %w", err)
	}

	codeValidity, err := time.ParseDuration(configFile.TwoFactor.CodeValidity)
	if err != nil {
		return nil, fmt.Errorf("invalid 2FA code validity: %w", err)
	}

	lockout, err := time.ParseDuration(configFile.TwoFactor.LockoutWindow)
	if err != nil {
		return nil, fmt.Errorf("invalid 2FA lockout window: %w", err)
	}

	cooldown, err := time.ParseDuration(configFile.TwoFactor.ResendCooldown)
	if err != nil {
		return nil, fmt.Errorf("invalid 2FA resend cooldown: %w", err)
	}

	idleTimeout, err := time.ParseDuration(configFile.Session.IdleTimeout)
	if err != nil {
		return nil, fmt.Errorf("invalid session idle timeout: %w", err)
	}

	delivery := configFile.TwoFactor.Delivery
	if delivery == "" {
		delivery = "email"
	}
	if delivery != "email" && delivery != "sms" {
		return nil, fmt.Errorf("invalid 2FA delivery channel %q", delivery)
	}

	return &Config{
		Port:            fmt.Sprintf("%d", configFile.App.Port),
		GinMode:         configFile.App.GinMode,
		DSN:             configFile.Database.DSN,
		RedisAddr:       configFile.Redis.Addr,
		RedisPassword:   configFile.Redis.Password,
		RedisDB:         configFile.Redis.DB,
		JWTSecret:       env("PORTAL_JWT_SECRET", configFile.JWT.Secret),
		JWTIssuer:       configFile.JWT.Issuer,
		AccessTTL:       accessTTL,
		CodeLength:      configFile.TwoFactor.CodeLength,
		CodeValidity:    codeValidity,
		MaxAttempts:     configFile.TwoFactor.MaxAttempts,
		LockoutWindow:   lockout,
		ResendCooldown:  cooldown,
		Delivery:        delivery,
		IdleTimeout:     idleTimeout,
		TwilioSID:       env("TWILIO_ACCOUNT_SID", configFile.Twilio.AccountSID),
		TwilioToken:     env("TWILIO_AUTH_TOKEN", configFile.Twilio.AuthToken),
		TwilioFrom:      configFile.Twilio.FromNumber,
		RateLimitPerMin: configFile.RateLimit.PerMinute,
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
