package config

import (
	"os"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/joho/godotenv"
)

type Config struct {
	// Source is the URL or .json file loaded on startup
	Source          string
	Addr            string
	CORSOrigins     []string
	AllowFiles      bool
	RetryMax        int
	SearchCacheSize int
	Verbose         bool
}

// Load reads the configuration from the environment, after loading a .env
// file from the working directory if there is one
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Source:          getEnv("BOOKMARKS_SOURCE", ""),
		Addr:            getEnv("BOOKMARKS_ADDR", ":8080"),
		CORSOrigins:     splitList(getEnv("BOOKMARKS_CORS_ORIGINS", "*")),
		AllowFiles:      getEnvBool("BOOKMARKS_ALLOW_FILES", false),
		RetryMax:        getEnvInt("BOOKMARKS_RETRY_MAX", 3),
		SearchCacheSize: getEnvInt("BOOKMARKS_SEARCH_CACHE", 128),
		Verbose:         getEnvBool("BOOKMARKS_VERBOSE", false),
	}
}

// Validate checks the configuration for values the viewer cannot run with
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.CORSOrigins, validation.Required),
		validation.Field(&c.RetryMax, validation.Min(0), validation.Max(10)),
		validation.Field(&c.SearchCacheSize, validation.Required, validation.Min(1)),
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	value, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultValue
	}
	return value
}

func splitList(s string) []string {
	var items []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
