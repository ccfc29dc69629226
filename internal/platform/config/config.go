package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds runtime configuration loaded from environment variables.
type Config struct {
	Port                  string
	GinMode               string
	FirebaseProjectID     string
	FirebaseCredsBase64   string
	FirebaseCredsFile     string
	FirestoreEmulatorHost string
	AllowedOrigins        string
	AuthSigningKey        string
	AuthIssuer            string
	SecurityCodeTTL       time.Duration
}

// Load reads environment variables into a Config with sensible defaults.
func Load() (Config, error) {
	cfg := Config{
		Port:                  getEnv("PORT", "8080"),
		GinMode:               getEnv("GIN_MODE", "release"),
		FirebaseProjectID:     strings.TrimSpace(os.Getenv("FIREBASE_PROJECT_ID")),
		FirebaseCredsBase64:   strings.TrimSpace(os.Getenv("FIREBASE_CREDS_BASE64")),
		FirebaseCredsFile:     strings.TrimSpace(os.Getenv("FIREBASE_CREDS_FILE")),
		FirestoreEmulatorHost: strings.TrimSpace(os.Getenv("FIRESTORE_EMULATOR_HOST")),
		AllowedOrigins:        strings.TrimSpace(os.Getenv("ALLOWED_ORIGINS")),
		AuthSigningKey:        strings.TrimSpace(os.Getenv("AUTH_SIGNING_KEY")),
		AuthIssuer:            getEnv("AUTH_ISSUER", "repairshop"),
	}

	ttl, err := parseDurationEnv("SECURITY_CODE_TTL", 5*time.Minute)
	if err != nil {
		return Config{}, fmt.Errorf("parse SECURITY_CODE_TTL: %w", err)
	}
	cfg.SecurityCodeTTL = ttl

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate ensures required fields are present.
func (c Config) Validate() error {
	if c.Port == "" {
		return errors.New("PORT is required")
	}
	if c.FirebaseProjectID == "" {
		return errors.New("FIREBASE_PROJECT_ID is required")
	}
	if c.FirestoreEmulatorHost == "" && c.FirebaseCredsBase64 == "" && c.FirebaseCredsFile == "" {
		return errors.New("provide FIREBASE_CREDS_BASE64, FIREBASE_CREDS_FILE or FIRESTORE_EMULATOR_HOST for Firestore")
	}
	if len(c.AuthSigningKey) < 32 {
		return errors.New("AUTH_SIGNING_KEY must be at least 32 characters")
	}
	if c.SecurityCodeTTL <= 0 {
		return errors.New("SECURITY_CODE_TTL must be positive")
	}
	return nil
}

// UsesEmulator reports whether Firestore traffic goes to a local emulator.
func (c Config) UsesEmulator() bool { return c.FirestoreEmulatorHost != "" }

// FirebaseCredentialsJSON returns the service account JSON bytes and the source used.
func (c Config) FirebaseCredentialsJSON() ([]byte, string, error) {
	if c.FirebaseCredsBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(c.FirebaseCredsBase64)
		if err != nil {
			return nil, "base64", fmt.Errorf("decode FIREBASE_CREDS_BASE64: %w", err)
		}
		return decoded, "base64", nil
	}
	if c.FirebaseCredsFile != "" {
		data, err := os.ReadFile(c.FirebaseCredsFile)
		if err != nil {
			return nil, "file", fmt.Errorf("read FIREBASE_CREDS_FILE: %w", err)
		}
		return data, "file", nil
	}
	return nil, "", errors.New("no firebase credentials found")
}

// Debug reports whether the server runs in gin debug mode.
func (c Config) Debug() bool { return c.GinMode == "debug" }

func getEnv(key, defaultVal string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return defaultVal
}

func parseDurationEnv(key string, defaultVal time.Duration) (time.Duration, error) {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal, nil
	}
	if secs, err := strconv.Atoi(val); err == nil {
		return time.Duration(secs) * time.Second, nil
	}
	return time.ParseDuration(val)
}
