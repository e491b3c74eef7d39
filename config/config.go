package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// defaultRegistrationRedirectURL opens a WhatsApp chat with the campaign number, pre-filled.
const defaultRegistrationRedirectURL = "https://wa.me/59172902813?text=Hola,%20deseo%20participar%20en%20este%20proceso%20democr%C3%A1tico%20porque%20creo%20en%20el%20cambio.%20Quiero%20ejercer%20mi%20derecho%20a%20votar%20de%20manera%20libre%20y%20responsable%20por%20el%20futuro%20de%20Bolivia."

// Config holds all configuration for the application
type Config struct {
	DBUrl       string
	Environment string
	Port        string

	// SecretKey is the root secret; signing keys are derived from it.
	SecretKey string
	// ServingDomain is the public base URL (scheme and host) the links point at.
	ServingDomain string

	WhatsAppProvider string
	WABAToken        string
	WABAAPIURL       string
	SendTimeout      time.Duration

	TokenTTL       time.Duration
	GrantTTL       time.Duration
	AbuseThreshold int

	PrecinctsCSV    string
	CandidatesCSV   string
	CandidateOffice string

	RegistrationRedirectURL string
	AdminAPIKey             string
	CORSAllowedOrigins      []string

	Email EmailConfig
}

// EmailConfig configures operator alert emails.
type EmailConfig struct {
	Provider        string
	FromAddress     string
	FromName        string
	AlertRecipient  string
	AWSRegion       string
	AccessKeyID     string
	SecretAccessKey string
}

// Load loads configuration from environment variables
// It attempts to load from .env file if not in production
func Load() (*Config, error) {
	env := os.Getenv("GO_ENV")
	if env == "" {
		env = "development"
	}

	// In production the environment is the only source.
	if env != "production" {
		if err := godotenv.Load(); err != nil {
			log.Printf("Warning: .env file not found or couldn't be loaded: %v", err)
		}
	}

	cfg := &Config{
		Environment:             env,
		DBUrl:                   os.Getenv("DATABASE_URL"),
		Port:                    os.Getenv("PORT"),
		SecretKey:               os.Getenv("SECRET_KEY"),
		ServingDomain:           strings.TrimSuffix(os.Getenv("SERVING_DOMAIN"), "/"),
		WhatsAppProvider:        os.Getenv("WHATSAPP_PROVIDER"),
		WABAToken:               os.Getenv("WABA_TOKEN"),
		WABAAPIURL:              os.Getenv("WABA_API_URL"),
		PrecinctsCSV:            os.Getenv("PRECINCTS_CSV"),
		CandidatesCSV:           os.Getenv("CANDIDATES_CSV"),
		CandidateOffice:         os.Getenv("CANDIDATE_OFFICE"),
		RegistrationRedirectURL: os.Getenv("REGISTRATION_REDIRECT_URL"),
		AdminAPIKey:             os.Getenv("ADMIN_API_KEY"),
		CORSAllowedOrigins:      splitList(os.Getenv("CORS_ALLOWED_ORIGINS")),
		Email: EmailConfig{
			Provider:        os.Getenv("EMAIL_PROVIDER"),
			FromAddress:     os.Getenv("EMAIL_FROM"),
			FromName:        os.Getenv("EMAIL_FROM_NAME"),
			AlertRecipient:  os.Getenv("ALERT_EMAIL"),
			AWSRegion:       os.Getenv("AWS_REGION"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
	}

	var err error
	if cfg.TokenTTL, err = durationEnv("TOKEN_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	if cfg.GrantTTL, err = durationEnv("GRANT_TTL", 30*time.Minute); err != nil {
		return nil, err
	}
	if cfg.SendTimeout, err = durationEnv("SEND_TIMEOUT", 15*time.Second); err != nil {
		return nil, err
	}
	if cfg.AbuseThreshold, err = intEnv("ABUSE_THRESHOLD", 4); err != nil {
		return nil, err
	}

	// Set defaults
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.DBUrl == "" {
		cfg.DBUrl = "sqlite://votos.db"
	}
	if cfg.WhatsAppProvider == "" {
		cfg.WhatsAppProvider = "360dialog"
	}
	if cfg.WABAAPIURL == "" {
		cfg.WABAAPIURL = "https://waba-v2.360dialog.io/messages"
	}
	if cfg.PrecinctsCSV == "" {
		cfg.PrecinctsCSV = "privado/RecintosParaPrimaria.csv"
	}
	if cfg.CandidatesCSV == "" {
		cfg.CandidatesCSV = "privado/CandidatosPorMunicipio.csv"
	}
	if cfg.CandidateOffice == "" {
		cfg.CandidateOffice = "alcalde"
	}
	if cfg.RegistrationRedirectURL == "" {
		cfg.RegistrationRedirectURL = defaultRegistrationRedirectURL
	}
	if cfg.Email.Provider == "" {
		cfg.Email.Provider = "noop"
	}

	if cfg.SecretKey == "" {
		if env == "production" {
			return nil, fmt.Errorf("SECRET_KEY is required in production")
		}
		log.Printf("Warning: SECRET_KEY not set, using an insecure development key")
		cfg.SecretKey = "dev-insecure-secret"
	}
	if cfg.ServingDomain == "" {
		if env == "production" {
			return nil, fmt.Errorf("SERVING_DOMAIN is required in production")
		}
		cfg.ServingDomain = "http://localhost:" + cfg.Port
	}
	if cfg.AbuseThreshold < 1 {
		return nil, fmt.Errorf("ABUSE_THRESHOLD must be at least 1, got %d", cfg.AbuseThreshold)
	}

	return cfg, nil
}

func durationEnv(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return d, nil
}

func intEnv(key string, def int) (int, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, s, err)
	}
	return v, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
