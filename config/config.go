package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Environment variables that override the config file
const (
	EnvLogLevel   = "CAREERSIM_LOG_LEVEL"
	EnvPort       = "CAREERSIM_PORT"
	EnvStorageDSN = "CAREERSIM_STORAGE_DSN"
	EnvSeed       = "CAREERSIM_SEED"
)

// Config holds all configuration for the application
type Config struct {
	// Game rules
	Game GameConfig `json:"game"`

	// Save storage
	Storage StorageConfig `json:"storage"`

	// HTTP server
	Server ServerConfig `json:"server"`
}

// GameConfig holds the tunable simulation rules
type GameConfig struct {
	// Character creation budgets
	AttributeBudgetMin int `json:"attribute_budget_min" validate:"min=6,max=60"`
	AttributeBudgetMax int `json:"attribute_budget_max" validate:"gtefield=AttributeBudgetMin,max=60"`
	SkillBudget        int `json:"skill_budget" validate:"min=0,max=72"`
	ConnectionBudget   int `json:"connection_budget" validate:"min=0,max=20"`

	// Education
	Semesters           int     `json:"semesters" validate:"min=1,max=8"`
	TimeUnits           int     `json:"time_units" validate:"min=1,max=50"`
	MaxCourses          int     `json:"max_courses" validate:"min=1,max=5"`
	SemesterEventChance float64 `json:"semester_event_chance" validate:"min=0,max=1"`
	DaysPerSemester     int     `json:"days_per_semester" validate:"min=1,max=365"`

	// Chance per simulated day of a random life event
	DailyEventChance float64 `json:"daily_event_chance" validate:"min=0,max=1"`

	// Who serves: male, all or none
	MilitaryEligibility string `json:"military_eligibility" validate:"oneof=male all none"`
	MilitaryMonths      int    `json:"military_months" validate:"min=1,max=36"`

	// Listings returned by one job search
	ListingsPerSearch int `json:"listings_per_search" validate:"min=1,max=50"`

	// First day of a new game, YYYY-MM-DD
	StartDate string `json:"start_date" validate:"datetime=2006-01-02"`

	// Random seed; 0 seeds from the wall clock
	Seed int64 `json:"seed"`

	// Directory of content table overrides; empty uses the built-in tables
	ContentDir string `json:"content_dir" validate:"omitempty,dir"`
}

// StorageConfig selects where games are saved
type StorageConfig struct {
	// file or sqlite3
	Driver string `json:"driver" validate:"oneof=file sqlite3"`

	// Directory for the file driver, database path for sqlite3
	DSN string `json:"dsn" validate:"required"`

	// Minutes between autosaves while serving a slot; 0 disables
	AutosaveMinutes int `json:"autosave_minutes" validate:"min=0,max=1440"`
}

// AutosaveInterval returns the autosave period, zero when disabled
func (s StorageConfig) AutosaveInterval() time.Duration {
	return time.Duration(s.AutosaveMinutes) * time.Minute
}

// ServerConfig holds server specific configuration
type ServerConfig struct {
	// Server port
	Port string `json:"port" validate:"required,numeric"`

	// Log level (debug, info, warn, error)
	LogLevel string `json:"log_level" validate:"oneof=debug info warn error"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() Config {
	return Config{
		Game: GameConfig{
			AttributeBudgetMin:  25,
			AttributeBudgetMax:  30,
			SkillBudget:         20,
			ConnectionBudget:    10,
			Semesters:           8,
			TimeUnits:           10,
			MaxCourses:          4,
			SemesterEventChance: 0.3,
			DaysPerSemester:     120,
			DailyEventChance:    0.02,
			MilitaryEligibility: "male",
			MilitaryMonths:      12,
			ListingsPerSearch:   6,
			StartDate:           "2025-09-01",
		},
		Storage: StorageConfig{
			Driver:          "file",
			DSN:             "./data/saves",
			AutosaveMinutes: 5,
		},
		Server: ServerConfig{
			Port:     "8080",
			LogLevel: "info",
		},
	}
}

// StartTime parses StartDate. An unparsable date falls back to the zero time.
func (g GameConfig) StartTime() time.Time {
	t, err := time.Parse(time.DateOnly, g.StartDate)
	if err != nil {
		return time.Time{}
	}
	return t
}

// Validate checks every field against its constraints
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ApplyEnv overrides file values with environment variables. A .env file in
// the working directory is loaded first when present.
func ApplyEnv(c Config) Config {
	_ = godotenv.Load()

	c.Server.LogLevel = getEnv(EnvLogLevel, c.Server.LogLevel)
	c.Server.Port = getEnv(EnvPort, c.Server.Port)
	c.Storage.DSN = getEnv(EnvStorageDSN, c.Storage.DSN)
	if v, ok := os.LookupEnv(EnvSeed); ok {
		if seed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Game.Seed = seed
		}
	}
	return c
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

// LoadConfig loads configuration from a file, creating it with defaults when
// missing, then applies environment overrides and validates the result.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()

	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return config, err
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := SaveConfig(config, path); err != nil {
			return config, err
		}
	} else {
		file, err := os.Open(path)
		if err != nil {
			return config, err
		}
		defer file.Close()

		decoder := json.NewDecoder(file)
		if err := decoder.Decode(&config); err != nil {
			return config, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	config = ApplyEnv(config)
	if err := config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// SaveConfig saves configuration to a file
func SaveConfig(config Config, path string) error {
	// Create directory if it doesn't exist
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Create or truncate file
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	// Write config to file
	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(config); err != nil {
		return err
	}

	return nil
}
