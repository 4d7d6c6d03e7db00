// Package main provides the careersim command: the HTTP game server and a
// couple of save-slot tools.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/user/career-path/config"
	"github.com/user/career-path/internal/content"
	"github.com/user/career-path/internal/game"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "careersim",
	Short: "Career path life simulation",
	Long:  "careersim simulates a young professional's path through university, military service and a career, served as a JSON API.",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./config/config.json", "Path to configuration file")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setupLogger(level string) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}

// environment is what every subcommand needs to build a game
type environment struct {
	cfg     config.Config
	logger  *zap.Logger
	tables  *content.Tables
	storage game.Storage
}

func loadEnvironment() (*environment, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.Server.LogLevel)
	if err != nil {
		return nil, err
	}

	tables, err := loadTables(cfg.Game.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load game data: %w", err)
	}
	logger.Info("Loaded content tables",
		zap.Int("universities", len(tables.Universities)),
		zap.Int("courses", len(tables.Courses)),
		zap.Int("companies", len(tables.Companies)),
		zap.Int("life_events", len(tables.LifeEvents)))

	storage, err := game.OpenStorage(cfg.Storage.Driver, cfg.Storage.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}

	return &environment{cfg: cfg, logger: logger, tables: tables, storage: storage}, nil
}

func loadTables(dir string) (*content.Tables, error) {
	if dir == "" {
		return content.Default()
	}
	return content.NewDataLoader(dir).Load()
}

func (e *environment) newGame() *game.GameManager {
	gm := game.NewGameManager(e.cfg, e.tables, e.storage)
	gm.SetLogger(e.logger)
	return gm
}

func (e *environment) close() {
	if err := e.storage.Close(); err != nil {
		e.logger.Error("Failed to close storage", zap.Error(err))
	}
	_ = e.logger.Sync()
}
