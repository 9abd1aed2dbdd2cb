package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServiceName string

	ServerPort int
	LogLevel   string

	DatabaseURL string

	JWTAccessSecret []byte
	SessionSecret   []byte

	AuthHTTPURL string

	KafkaBrokers []string

	ESURL      string
	ESUser     string
	ESPassword string
	ESIndex    string

	CSRFEnabled  bool
	CookieSecure bool
}

// Load reads the process environment, after merging the given .env files
// when they exist.
func Load(envFiles ...string) Config {
	if len(envFiles) > 0 {
		if err := godotenv.Load(envFiles...); err != nil {
			log.Printf("notice: .env not loaded: %v, using process environment", err)
		}
	}

	return Config{
		ServiceName: EnvDefault("SERVICE_NAME", "shop"),

		ServerPort: EnvIntDefault("SERVER_PORT", 8080),
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),

		DatabaseURL: os.Getenv("DATABASE_URL"),

		JWTAccessSecret: []byte(os.Getenv("JWT_SECRET")),
		SessionSecret:   []byte(os.Getenv("SESSION_SECRET")),

		AuthHTTPURL: os.Getenv("AUTH_URL"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),

		ESURL:      os.Getenv("ES_URL"),
		ESUser:     os.Getenv("ES_USER"),
		ESPassword: os.Getenv("ES_PASSWORD"),
		ESIndex:    EnvDefault("ES_INDEX", "products"),

		CSRFEnabled:  EnvBoolDefault("CSRF_ENABLED", false),
		CookieSecure: EnvBoolDefault("COOKIE_SECURE", true),
	}
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvBoolDefault(key string, def bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return v
}
