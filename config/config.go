package config

import (
	"os"
	"strconv"
	"time"
)

// Config is the typed view of the process environment.
type Config struct {
	Server ServerConfig
	DB     DatabaseConfig
	JWT    JWTConfig
	Twilio TwilioConfig
	Reward RewardConfig
	Staff  StaffConfig
}

type ServerConfig struct {
	Port string
	Env  string
}

type DatabaseConfig struct {
	URL string
}

type JWTConfig struct {
	Secret      string
	ExpiryHours int
}

type TwilioConfig struct {
	AccountSID     string
	AuthToken      string
	PhoneNumber    string
	WhatsAppNumber string
}

// RewardConfig holds the deployment-wide defaults; tenants can override the
// threshold, percentage and validity window in their salon settings.
type RewardConfig struct {
	Threshold    float64
	DiscountPct  float64
	ValidityDays int
}

type StaffConfig struct {
	CacheTTL time.Duration
}

// Load reads configuration from the environment. godotenv is loaded by main
// before this runs.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Env:  getEnv("APP_ENV", "development"),
		},
		DB: DatabaseConfig{
			URL: os.Getenv("DB_URL"),
		},
		JWT: JWTConfig{
			Secret:      os.Getenv("JWT_SECRET"),
			ExpiryHours: getEnvInt("JWT_EXPIRY_HOURS", 24),
		},
		Twilio: TwilioConfig{
			AccountSID:     os.Getenv("TWILIO_ACCOUNT_SID"),
			AuthToken:      os.Getenv("TWILIO_AUTH_TOKEN"),
			PhoneNumber:    os.Getenv("TWILIO_PHONE_NUMBER"),
			WhatsAppNumber: os.Getenv("TWILIO_WHATSAPP_NUMBER"),
		},
		Reward: RewardConfig{
			Threshold:    getEnvFloat("REWARD_THRESHOLD", 1000),
			DiscountPct:  getEnvFloat("REWARD_DISCOUNT_PCT", 10),
			ValidityDays: getEnvInt("REWARD_VALIDITY_DAYS", 30),
		},
		Staff: StaffConfig{
			CacheTTL: time.Duration(getEnvInt("STAFF_CACHE_TTL_SECONDS", 5)) * time.Second,
		},
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
