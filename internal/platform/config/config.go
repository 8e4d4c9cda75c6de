package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	APIPort string
	Env     string

	JWTKey       []byte
	JWTExp       time.Duration
	JWTCookieExp time.Duration

	MongoURI string
	MongoDB  string

	RedisAddr     string
	RedisPassword string
	RedisDB       int

	GeocoderURL    string
	GeocoderAPIKey string

	MaxUploadBytes int64
	UploadDir      string

	MailQueueName string
	MailAPIURL    string
	MailAPIKey    string
	MailFromEmail string
	MailFromName  string

	PublicBaseURL string
}

var AppConfig *Config

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment variables")
	}

	AppConfig = &Config{
		APIPort:        getEnv("API_PORT", "5000"),
		Env:            getEnv("APP_ENV", "development"),
		JWTKey:         []byte(getEnv("JWT_SECRET", "defaultsecret")),
		JWTExp:         time.Duration(getEnvAsInt("JWT_EXPIRATION_DAYS", 30)) * 24 * time.Hour,
		JWTCookieExp:   time.Duration(getEnvAsInt("JWT_COOKIE_EXPIRATION_DAYS", 30)) * 24 * time.Hour,
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "campdir"),
		RedisAddr:      getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvAsInt("REDIS_DB", 0),
		GeocoderURL:    getEnv("GEOCODER_URL", "http://www.mapquestapi.com/geocoding/v1/address"),
		GeocoderAPIKey: getEnv("GEOCODER_API_KEY", ""),
		MaxUploadBytes: int64(getEnvAsInt("MAX_FILE_UPLOAD_BYTES", 1000000)),
		UploadDir:      getEnv("FILE_UPLOAD_PATH", "./public/uploads"),
		MailQueueName:  getEnv("MAIL_QUEUE_NAME", "password_reset_mail_queue"),
		MailAPIURL:     getEnv("MAIL_API_URL", ""),
		MailAPIKey:     getEnv("MAIL_API_KEY", ""),
		MailFromEmail:  getEnv("MAIL_FROM_EMAIL", "noreply@campdir.io"),
		MailFromName:   getEnv("MAIL_FROM_NAME", "CampDir"),
		PublicBaseURL:  getEnv("PUBLIC_BASE_URL", "http://localhost:5000"),
	}
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return fallback
}
