package config

import "log"

func MustNonEmpty(value, envName string) {
	if value == "" {
		log.Fatalf("missing required env %s", envName)
	}
}

func MustNonEmptyBytes(value []byte, envName string) {
	if len(value) == 0 {
		log.Fatalf("missing required env %s", envName)
	}
}

// MustValid fails startup for the service-level requirements.
func (c Config) MustValid() {
	MustNonEmpty(c.DatabaseURL, "DATABASE_URL")
	MustNonEmptyBytes(c.JWTAccessSecret, "JWT_SECRET")
	MustNonEmptyBytes(c.SessionSecret, "SESSION_SECRET")
}
