package config

import (
	"log"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	IsProduction bool
	LogLevel     string

	// MaxFileSizeBytes may tighten (never widen) the domain's hard 100MB cap.
	MaxFileSizeBytes int64

	// AllowedExtensions is the document extension allow-list, lowercase
	// without dots.
	AllowedExtensions []string

	// ReservedMatterWords are tokens rejected in matter descriptions.
	ReservedMatterWords []string
}

const defaultMaxFileSizeBytes int64 = 100 * 1024 * 1024

var defaultAllowedExtensions = []string{
	"pdf", "doc", "docx", "odt", "rtf", "txt",
	"xls", "xlsx", "ppt", "pptx",
	"msg", "eml",
	"jpg", "jpeg", "png", "tif", "tiff",
}

var defaultReservedMatterWords = []string{"admin", "system", "null", "undefined"}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_FILE_SIZE_BYTES", defaultMaxFileSizeBytes)
	viper.SetDefault("ALLOWED_EXTENSIONS", strings.Join(defaultAllowedExtensions, ","))
	viper.SetDefault("RESERVED_MATTER_WORDS", strings.Join(defaultReservedMatterWords, ","))

	viper.AutomaticEnv()

	cfg := &Config{
		IsProduction:     viper.GetBool("IS_PRODUCTION"),
		LogLevel:         viper.GetString("LOG_LEVEL"),
		MaxFileSizeBytes: viper.GetInt64("MAX_FILE_SIZE_BYTES"),
	}

	if cfg.MaxFileSizeBytes <= 0 || cfg.MaxFileSizeBytes > defaultMaxFileSizeBytes {
		log.Printf("Warning: MAX_FILE_SIZE_BYTES out of range, defaulting to %d\n", defaultMaxFileSizeBytes)
		cfg.MaxFileSizeBytes = defaultMaxFileSizeBytes
	}

	cfg.AllowedExtensions = splitList(viper.GetString("ALLOWED_EXTENSIONS"))
	if len(cfg.AllowedExtensions) == 0 {
		cfg.AllowedExtensions = defaultAllowedExtensions
	}

	cfg.ReservedMatterWords = splitList(viper.GetString("RESERVED_MATTER_WORDS"))
	if len(cfg.ReservedMatterWords) == 0 {
		cfg.ReservedMatterWords = defaultReservedMatterWords
	}

	return cfg, nil
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.ToLower(strings.TrimSpace(p))
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
