package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	Env         string
	LogLevel    string
	Port        string
	APIBaseURL  string
	PageSize    int
	HTTPTimeout time.Duration

	PhysiciansResource   string
	PatientsResource     string
	AppointmentsResource string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Port:        getEnv("PORT", "8080"),
		APIBaseURL:  strings.TrimRight(getEnv("CLINIC_API_BASE_URL", "http://localhost:8080"), "/"),
		PageSize:    getEnvAsInt("CLINIC_PAGE_SIZE", 100),
		HTTPTimeout: getEnvAsDuration("CLINIC_HTTP_TIMEOUT", 15*time.Second),

		PhysiciansResource:   getEnv("CLINIC_PHYSICIANS_RESOURCE", "/medicos"),
		PatientsResource:     getEnv("CLINIC_PATIENTS_RESOURCE", "/pacientes"),
		AppointmentsResource: getEnv("CLINIC_APPOINTMENTS_RESOURCE", "/consultas"),
	}
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return v
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvAsDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
