package utils

import (
	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	Booking   BookingConfig
	Payment   PaymentConfig
	RateLimit RateLimitConfig
	Access    AccessCodeConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	MaxConns int32
}

// BookingConfig controls the provisional-hold window and the expiry sweep.
type BookingConfig struct {
	HoldMinutes       int
	SweepIntervalSecs int
}

type PaymentConfig struct {
	Provider      string
	WebhookSecret string
}

// RateLimitConfig guards the access-code endpoints.
type RateLimitConfig struct {
	MaxRequests   int
	WindowSeconds int
}

type AccessCodeConfig struct {
	Length        int
	ExpiryMinutes int
}

func LoadConfig() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.SetConfigType("env")

	// Set defaults
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DEBUG", false)
	viper.SetDefault("DB_MAX_CONNS", 10)
	viper.SetDefault("BOOKING_HOLD_MINUTES", 30)
	viper.SetDefault("BOOKING_SWEEP_SECONDS", 60)
	viper.SetDefault("PAYMENT_PROVIDER", "stripe")
	viper.SetDefault("RATE_LIMIT_MAX", 3)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)
	viper.SetDefault("ACCESS_CODE_LENGTH", 6)
	viper.SetDefault("ACCESS_CODE_EXPIRY_MINUTES", 10)
	viper.SetDefault("LOG_PATH", "logs/")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	viper.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    viper.GetString("APP_NAME"),
			Port:    viper.GetString("PORT"),
			Debug:   viper.GetBool("DEBUG"),
			LogPath: viper.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			Name:     viper.GetString("DB_NAME"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASS"),
			MaxConns: viper.GetInt32("DB_MAX_CONNS"),
		},
		Booking: BookingConfig{
			HoldMinutes:       viper.GetInt("BOOKING_HOLD_MINUTES"),
			SweepIntervalSecs: viper.GetInt("BOOKING_SWEEP_SECONDS"),
		},
		Payment: PaymentConfig{
			Provider:      viper.GetString("PAYMENT_PROVIDER"),
			WebhookSecret: viper.GetString("PAYMENT_WEBHOOK_SECRET"),
		},
		RateLimit: RateLimitConfig{
			MaxRequests:   viper.GetInt("RATE_LIMIT_MAX"),
			WindowSeconds: viper.GetInt("RATE_LIMIT_WINDOW_SECONDS"),
		},
		Access: AccessCodeConfig{
			Length:        viper.GetInt("ACCESS_CODE_LENGTH"),
			ExpiryMinutes: viper.GetInt("ACCESS_CODE_EXPIRY_MINUTES"),
		},
	}

	return config, nil
}
