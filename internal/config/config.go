package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// OutputDir, when set, is where derived output paths land instead of the
	// input file's directory.
	OutputDir string
	Delimiter string
	Report    bool

	// Overrides for the template's fixed values. Empty means keep the value
	// shipped in the embedded template.
	Postcode    string
	Gemeente    string
	Taal        string
	Land        string
	RodeLijst   string
	TypeContact string
}

func Load() (Config, error) {
	_ = godotenv.Load()

	cfg := Config{
		OutputDir: getEnv("BEALERT_OUTPUT_DIR", ""),
		Delimiter: getEnv("BEALERT_DELIMITER", ";"),
		Report:    getEnvBool("BEALERT_REPORT", false),

		Postcode:    getEnv("BEALERT_POSTCODE", ""),
		Gemeente:    getEnv("BEALERT_GEMEENTE", ""),
		Taal:        getEnv("BEALERT_TAAL", ""),
		Land:        getEnv("BEALERT_LAND", ""),
		RodeLijst:   getEnv("BEALERT_RODE_LIJST", ""),
		TypeContact: getEnv("BEALERT_TYPE_CONTACT", ""),
	}

	if len([]rune(cfg.Delimiter)) != 1 {
		return Config{}, fmt.Errorf("BEALERT_DELIMITER must be a single character, got %q", cfg.Delimiter)
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := strings.ToLower(strings.TrimSpace(getEnv(key, "")))
	if value == "" {
		return fallback
	}
	if value == "1" || value == "true" || value == "yes" || value == "on" {
		return true
	}
	if value == "0" || value == "false" || value == "no" || value == "off" {
		return false
	}
	return fallback
}
