package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port      string
	JWTSecret string
	Database  DatabaseConfig
	Redis     RedisConfig
	Payment   PaymentConfig
}

type DatabaseConfig struct {
	URL      string // takes precedence when set
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

// DSN builds the postgres connection string unless DATABASE_URL is set.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return d.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		d.Host, d.User, d.Password, d.Name, d.Port,
	)
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

type PaymentConfig struct {
	StoreID       int
	AuthKey       string
	APIURL        string
	Mode          string // "live", "sandbox" or "dev"
	WebhookSecret string
	SuccessURL    string
	CancelURL     string
	Currency      string
	Timeout       time.Duration
}

// TestMode reports whether provider requests should carry the test flag.
func (p PaymentConfig) TestMode() int {
	if p.Mode == "sandbox" || p.Mode == "dev" {
		return 1
	}
	return 0
}

// Load reads configuration from the environment. Call godotenv.Load first.
func Load() Config {
	storeID, _ := strconv.Atoi(os.Getenv("PAYMENT_STORE_ID"))
	redisDB, _ := strconv.Atoi(os.Getenv("REDIS_DB"))

	timeout := 15 * time.Second
	if v := os.Getenv("PAYMENT_TIMEOUT_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			timeout = time.Duration(secs) * time.Second
		}
	}

	currency := os.Getenv("PAYMENT_CURRENCY")
	if currency == "" {
		currency = "USD"
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		Port:      port,
		JWTSecret: os.Getenv("JWT_SECRET"),
		Database: DatabaseConfig{
			URL:      os.Getenv("DATABASE_URL"),
			Host:     os.Getenv("DB_HOST"),
			Port:     os.Getenv("DB_PORT"),
			User:     os.Getenv("DB_USER"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     os.Getenv("DB_NAME"),
		},
		Redis: RedisConfig{
			Addr:     os.Getenv("REDIS_ADDR"),
			Password: os.Getenv("REDIS_PASSWORD"),
			DB:       redisDB,
		},
		Payment: PaymentConfig{
			StoreID:       storeID,
			AuthKey:       os.Getenv("PAYMENT_AUTH_KEY"),
			APIURL:        os.Getenv("PAYMENT_API_URL"),
			Mode:          os.Getenv("PAYMENT_MODE"),
			WebhookSecret: os.Getenv("PAYMENT_WEBHOOK_SECRET"),
			SuccessURL:    os.Getenv("PAYMENT_SUCCESS_URL"),
			CancelURL:     os.Getenv("PAYMENT_CANCEL_URL"),
			Currency:      currency,
			Timeout:       timeout,
		},
	}
}
