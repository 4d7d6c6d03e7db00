package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/user/career-path/internal/api"
	"github.com/user/career-path/internal/game"
)

var serveSlot string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long:  `Start an HTTP server exposing the game as JSON endpoints. With --slot the game is loaded from that slot at start and saved back to it on shutdown.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveSlot, "slot", "", "Save slot to resume from and autosave to")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	env, err := loadEnvironment()
	if err != nil {
		return err
	}
	defer env.close()
	logger := env.logger

	gm := env.newGame()
	if serveSlot != "" {
		err := gm.Load(cmd.Context(), serveSlot)
		switch {
		case errors.Is(err, game.ErrSlotNotFound):
			logger.Info("Slot is empty, starting a new game", zap.String("slot", serveSlot))
		case err != nil:
			return err
		}
	}

	if serveSlot != "" && env.cfg.Storage.AutosaveInterval() > 0 {
		autosaver := game.NewAutosaver(gm, serveSlot, env.cfg.Storage.AutosaveInterval(), logger)
		autosaver.Start()
		defer autosaver.Stop()
	}

	server := &http.Server{
		Addr:              ":" + env.cfg.Server.Port,
		Handler:           api.NewRouter(gm, logger),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	g, gCtx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("Starting HTTP server", zap.String("port", env.cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gCtx.Done()
		logger.Info("Shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server forced to shutdown", zap.Error(err))
		}
		if serveSlot != "" {
			if err := gm.Save(shutdownCtx, serveSlot); err != nil {
				return fmt.Errorf("autosave: %w", err)
			}
		}
		return nil
	})

	return g.Wait()
}
