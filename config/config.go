package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port      string
	JWTKey    string
	SaltRound int

	EmailSender string
	Password    string // SMTP app password

	RazorpayKeyID     string
	RazorpayKeySecret string
	RazorpayBaseURL   string
	Currency          string

	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string
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
		Port:      getEnv("PORT", "5000"),
		JWTKey:    getEnv("JWT_SECRET_KEY", "defaultSecret"),
		SaltRound: getEnvInt("SALT_ROUND", 10),

		EmailSender: getEnv("EMAIL_SENDER", "defaultSecret"),
		Password:    getEnv("PASSWORD", "defaultSecret"),

		RazorpayKeyID:     getEnv("RAZORPAY_KEY_ID", "defaultSecret"),
		RazorpayKeySecret: getEnv("RAZORPAY_KEY_SECRET", "defaultSecret"),
		RazorpayBaseURL:   getEnv("RAZORPAY_BASE_URL", "https://api.razorpay.com/v1"),
		Currency:          getEnv("PAYMENT_CURRENCY", "INR"),

		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", "defaultSecret"),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", "defaultSecret"),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", "defaultSecret"),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
	if AppConfig.RazorpayKeySecret == "defaultSecret" {
		log.Println("Warning: Using default RAZORPAY_KEY_SECRET. Payments will not verify.")
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
