package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"notesapi/cmd/internal/config"
	"notesapi/cmd/internal/domain/memory"
	"notesapi/cmd/internal/domain/sqlite"
	"notesapi/cmd/internal/domain/sqlite/repository"
	"notesapi/cmd/internal/http/handler"
	"notesapi/cmd/internal/http/server"
	"notesapi/cmd/internal/service"
	"notesapi/cmd/internal/utils/validators"
	"os"
	"os/signal"
	"syscall"

	"github.com/labstack/gommon/log"
	"github.com/spf13/cobra"
)

var envFile string

var rootCmd = &cobra.Command{
	Use:           "notesapi",
	Short:         "HTTP API for creating, reading and updating notes",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(cmd.Context())
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded outside production")
}

func serve(ctx context.Context) error {
	cfg, err := config.Load(ctx, envFile)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	log.SetLevel(cfg.LogLvl())

	store, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	validate := validators.New(cfg.Notes.TitleMaxLength)
	noteService := service.NewNoteService(store, validate)
	noteRoutes := handler.NewNoteDefault(noteService)

	e := server.New(cfg, noteRoutes)

	errChan := make(chan error, 1)
	go func() {
		addr := server.Address(cfg)
		log.Infof("notes API listening on %s (env: %s, store: %s)", addr, cfg.Env, cfg.Store.Driver)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return fmt.Errorf("server error: %w", err)
	case <-ctx.Done():
		log.Info("shutdown signal received, stopping server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Warnf("graceful shutdown failed, closing: %v", err)
		return e.Close()
	}

	log.Info("server stopped")
	return nil
}

func openStore(cfg *config.Config) (service.NoteStore, func(), error) {
	switch cfg.Store.Driver {
	case config.StoreMemory:
		log.Warn("using in-memory note store, notes will be lost on restart")
		return memory.NewNoteStore(), func() {}, nil

	default:
		db, err := sqlite.Init(cfg.Store.DBPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open database %s: %w", cfg.Store.DBPath, err)
		}

		closer := func() {
			sqlDB, err := db.DB()
			if err == nil {
				err = sqlDB.Close()
			}
			if err != nil {
				log.Errorf("failed to close database: %v", err)
			}
		}
		return repository.NewNoteRepository(db), closer, nil
	}
}
