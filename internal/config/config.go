package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/marquee-live/storefront/internal/pricing"
)

type Config struct {
	Addr        string
	PostgresDSN string
	MongoURI    string
	RedisAddr   string
	RabbitURL   string

	// TaxServiceRate is the composite sales-tax-plus-service-fee rate for
	// ticket checkouts; MerchTaxRate plays the same role for merchandise.
	TaxServiceRate float64
	MerchTaxRate   float64
	ShippingFee    float64

	SMTPHost  string
	SMTPPort  string
	SMTPUser  string
	SMTPPass  string
	FromEmail string
	// EmailMode is "smtp" or "simulate".
	EmailMode string

	IdempotencyTTL time.Duration
	OTLPEndpoint   string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	addr := os.Getenv("ADDR")
	if addr == "" {
		addr = ":8080"
	}

	emailMode := os.Getenv("EMAIL_MODE")
	if emailMode == "" {
		emailMode = "simulate"
	}

	idempTTL, _ := time.ParseDuration(os.Getenv("IDEMPOTENCY_TTL"))
	if idempTTL == 0 {
		idempTTL = time.Hour
	}

	return &Config{
		Addr:           addr,
		PostgresDSN:    os.Getenv("POSTGRES_DSN"),
		MongoURI:       os.Getenv("MONGO_URI"),
		RedisAddr:      os.Getenv("REDIS_ADDR"),
		RabbitURL:      os.Getenv("RABBIT_URL"),
		TaxServiceRate: envFloat("TAX_SERVICE_RATE", pricing.DefaultTaxServiceRate),
		MerchTaxRate:   envFloat("MERCH_TAX_RATE", pricing.DefaultTaxServiceRate),
		ShippingFee:    envFloat("SHIPPING_FEE", 9.99),
		SMTPHost:       os.Getenv("SMTP_HOST"),
		SMTPPort:       os.Getenv("SMTP_PORT"),
		SMTPUser:       os.Getenv("SMTP_USER"),
		SMTPPass:       os.Getenv("SMTP_PASS"),
		FromEmail:      os.Getenv("FROM_EMAIL"),
		EmailMode:      emailMode,
		IdempotencyTTL: idempTTL,
		OTLPEndpoint:   os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
	}, nil
}

func envFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
