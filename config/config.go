package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	JWTKey string

	ClerkWebhookSecret string // Svix signing secret for the Clerk webhook
	ClerkSecretKey     string // Clerk management API key

	CloudinaryURL string // empty means thumbnails are stored locally
	UploadDir     string

	SendGridKey string
	EmailSender string

	CurrencyCode    string
	PaymentFailRate int // percent of simulated payments that fail (0-100)
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "5000"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		ClerkWebhookSecret: getEnv("CLERK_WEBHOOK_SECRET", ""),
		ClerkSecretKey:     getEnv("CLERK_SECRET_KEY", ""),

		CloudinaryURL: getEnv("CLOUDINARY_URL", ""),
		UploadDir:     getEnv("UPLOAD_DIR", "./public/uploads"),

		SendGridKey: getEnv("SENDGRID_API_KEY", ""),
		EmailSender: getEnv("EMAIL_SENDER", "no-reply@example.com"),

		CurrencyCode:    getEnv("CURRENCY_CODE", "USD"),
		PaymentFailRate: getEnvInt("PAYMENT_FAIL_RATE", 0),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.ClerkWebhookSecret == "" {
		log.Println("Warning: CLERK_WEBHOOK_SECRET not set. Identity webhooks will be rejected.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
