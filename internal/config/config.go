package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	// Server
	Port        string
	Env         string
	LogLevel    string
	CORSOrigins []string

	// Input files
	DataDir         string
	PricesFile      string
	IncomeFile      string
	BasketFile      string
	CategoriesFile  string
	BaselineYear    int
	ExportPath      string
	PipelineAPIKey  string
	DashboardWebDir string

	// Database
	DBDriver   string
	SQLiteDSN  string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSSLMode  string
}

var appConfig *Config

// Load loads configuration from environment variables
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	dataDir := getEnv("DATA_DIR", "data")

	config := &Config{
		// Server
		Port:        getEnv("PORT", "8080"),
		Env:         getEnv("ENV", "development"),
		LogLevel:    getEnv("LOG_LEVEL", ""),
		CORSOrigins: splitList(getEnv("CORS_ORIGINS", "")),

		// Input files; an empty basket or categories path means the built-in tables
		DataDir:         dataDir,
		PricesFile:      resolve(dataDir, getEnv("PRICES_FILE", "food_prices.csv")),
		IncomeFile:      resolve(dataDir, getEnv("INCOME_FILE", "median_income.csv")),
		BasketFile:      resolve(dataDir, getEnv("BASKET_FILE", "")),
		CategoriesFile:  resolve(dataDir, getEnv("CATEGORIES_FILE", "")),
		ExportPath:      getEnv("EXPORT_PATH", ""),
		PipelineAPIKey:  getEnv("PIPELINE_API_KEY", ""),
		DashboardWebDir: getEnv("DASHBOARD_WEB_DIR", "web"),

		// Database
		DBDriver:   getEnv("DB_DRIVER", "sqlite"),
		SQLiteDSN:  getEnv("SQLITE_DSN", "file:foodafford?mode=memory&cache=shared"),
		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "foodafford"),
		DBPassword: getEnv("DB_PASSWORD", "foodafford"),
		DBName:     getEnv("DB_NAME", "foodafford"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
	}

	yearStr := getEnv("BASELINE_YEAR", "2014")
	year, err := strconv.Atoi(yearStr)
	if err != nil {
		log.Printf("Warning: invalid BASELINE_YEAR value '%s', falling back to 2014\n", yearStr)
		year = 2014
	}
	config.BaselineYear = year

	appConfig = config
	return config, nil
}

// Get returns the application configuration
func Get() *Config {
	if appConfig == nil {
		var err error
		appConfig, err = Load()
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}
	}
	return appConfig
}

// resolve joins relative file names onto the data directory. Empty names stay empty.
func resolve(dir, name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(dir, name)
}

// splitList parses a comma-separated list, dropping empty entries.
func splitList(v string) []string {
	var out []string
	for _, s := range strings.Split(v, ",") {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
