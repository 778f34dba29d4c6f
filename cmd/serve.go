package cmd

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/mathquest/internal/config"
	"github.com/abhisek/mathquest/internal/handlers"
	"github.com/abhisek/mathquest/internal/llm"
	"github.com/abhisek/mathquest/internal/problem"
	"github.com/abhisek/mathquest/internal/service"
	"github.com/abhisek/mathquest/internal/store"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(cfg.Store)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer st.Close()

	provider, err := llm.NewProvider(ctx, cfg.LLM, st.RequestLogs())
	if err != nil {
		return fmt.Errorf("initializing LLM provider: %w", err)
	}

	gen := problem.NewGenerator(provider, problem.DefaultConfig())
	svc := service.New(st, gen, service.DefaultConfig())
	router := handlers.NewRouter(svc, cfg.CORSOrigins)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("mathquest listening on %s (provider: %s)", srv.Addr, cfg.LLM.Provider)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Println("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
