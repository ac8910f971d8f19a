package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	_ "modernc.org/sqlite"

	"github.com/Vovarama1992/lexbridge/internal/ai"
	"github.com/Vovarama1992/lexbridge/internal/audit"
	"github.com/Vovarama1992/lexbridge/internal/config"
	"github.com/Vovarama1992/lexbridge/internal/expertise"
	"github.com/Vovarama1992/lexbridge/internal/legal"
	"github.com/Vovarama1992/lexbridge/internal/reasoning"
)

var (
	verbose bool
	logger  *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "lexbridge",
	Short: "Legal assistant conversation orchestrator",
	Long: `lexbridge sequences the legal reasoning steps (facts, rules, application,
conclusion), selects prompt templates by role and jurisdiction, loads domain
expertise profiles and tracks clarification challenges per conversation.

Run without arguments to start the HTTP server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := zap.NewProductionConfig()
		if verbose {
			cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = cfg.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runServe(cmd, args)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(serveCmd, reasonCmd, templateCmd, domainCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	// --- DB ---
	db, err := sqlx.Open(cfg.DBDriver, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("db open: %w", err)
	}
	defer db.Close()
	if cfg.DBDriver == legal.DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 5*time.Second)
	defer cancel()
	if err := db.PingContext(ctx); err != nil {
		return fmt.Errorf("db ping: %w", err)
	}

	repo, err := legal.NewRepo(db)
	if err != nil {
		return err
	}
	if err := repo.Migrate(ctx); err != nil {
		return err
	}

	// --- reasoning + expertise ---
	sinks := []audit.Sink{audit.NewFileSink(cfg.AuditDir)}
	if cfg.AuditWebhookURL != "" {
		sinks = append(sinks, audit.NewWebhookSink(cfg.AuditWebhookURL, cfg.AuditWebhookToken))
	}
	chain := reasoning.NewChain(audit.Multi(sinks...), logger.Named("reasoning"))
	loader := expertise.NewLoader(cfg.ExpertiseDir, logger.Named("expertise"))

	opts := legal.Options{StrictChallenges: cfg.StrictChallenges}
	if cfg.AIEnabled() {
		opts.AI = ai.NewOpenAIClient(cfg.OpenAIAPIKey, cfg.OpenAIModel, logger.Named("ai"))
	} else {
		logger.Info("OPENAI_API_KEY not set, answer step disabled")
	}

	svc := legal.NewService(repo, chain, loader, opts, logger.Named("legal"))
	handler := legal.NewHandler(svc, chain, loader, logger.Named("http"))

	// --- Router ---
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
	}))

	legal.RegisterRoutes(r, handler)

	r.Get("/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", srv.Addr), zap.String("db_driver", cfg.DBDriver))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	case <-stop:
	}

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()
	logger.Info("shutting down")
	return srv.Shutdown(shutdownCtx)
}
