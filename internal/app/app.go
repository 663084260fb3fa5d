// Package app wires configuration, storage, services, and the HTTP
// server together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/linxiao/corpora/internal/adapter/postgres"
	corpusrepo "github.com/linxiao/corpora/internal/adapter/postgres/corpus"
	opinionrepo "github.com/linxiao/corpora/internal/adapter/postgres/opinion"
	userrepo "github.com/linxiao/corpora/internal/adapter/postgres/user"
	"github.com/linxiao/corpora/internal/ai"
	"github.com/linxiao/corpora/internal/auth"
	"github.com/linxiao/corpora/internal/config"
	corpussvc "github.com/linxiao/corpora/internal/service/corpus"
	opinionsvc "github.com/linxiao/corpora/internal/service/opinion"
	"github.com/linxiao/corpora/internal/service/stats"
	usersvc "github.com/linxiao/corpora/internal/service/user"
	"github.com/linxiao/corpora/internal/transport/middleware"
	"github.com/linxiao/corpora/internal/transport/rest"
)

// Run is the application entry point. It loads configuration, initializes
// the logger, connects to PostgreSQL, starts the statistics worker, and
// serves HTTP until ctx is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	if cfg.Database.Migrate {
		if err := postgres.Migrate(ctx, cfg.Database.DSN); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	corpusRepo := corpusrepo.New(pool)
	opinionRepo := opinionrepo.New(pool)
	userRepo := userrepo.New(pool)
	txManager := postgres.NewTxManager(pool)

	aiClient := ai.NewClient(cfg.AI)
	analyzer := ai.NewAnalyzer(aiClient, logger, cfg.AI.MaxRetries).
		WithSampling(cfg.AI.Temperature, cfg.AI.MaxTokens)
	toolkit := ai.NewToolkit(aiClient, logger)

	statsWorker := stats.NewWorker(logger, corpusRepo, opinionRepo, userRepo,
		cfg.Stats.QueueSize, cfg.Stats.RefreshTimeout)
	go statsWorker.Run(ctx)

	jwtManager := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.JWTIssuer, cfg.Auth.AccessTokenTTL)
	hasher := auth.NewPasswordHasher(cfg.Auth.BcryptCost)

	corpusService := corpussvc.NewService(logger, corpusRepo, opinionRepo, txManager, analyzer, statsWorker).
		WithLimits(cfg.Corpus.DefaultPageSize, cfg.Corpus.MaxPageSize, cfg.Corpus.MaxContentBytes)
	opinionService := opinionsvc.NewService(logger, opinionRepo, statsWorker)
	userService := usersvc.NewService(logger, userRepo, jwtManager, hasher)

	rateLimiter := middleware.NewRateLimiter(time.Minute)
	defer rateLimiter.Stop()

	// The AI routes hold the connection for the whole upstream retry budget,
	// which outlives the server-wide write timeout. Their deadlines get
	// extended to the worst case: every attempt timing out, plus slack for
	// backoff and the response write.
	aiDeadline := time.Duration(cfg.AI.MaxRetries+1)*cfg.AI.RequestTimeout + 30*time.Second

	router := rest.NewRouter(rest.RouterDeps{
		Log:             logger,
		CORS:            cfg.CORS,
		Auth:            middleware.Auth(jwtManager),
		Health:          rest.NewHealthHandler(pool, BuildVersion()),
		Account:         rest.NewAuthHandler(userService, logger),
		Corpus:          rest.NewCorpusHandler(corpusService, logger),
		Opinion:         rest.NewOpinionHandler(opinionService, logger),
		Tools:           rest.NewToolsHandler(toolkit, logger),
		AIRatePerMinute: cfg.AI.RatePerMinute,
		RateLimiter:     rateLimiter,
		AIDeadline:      aiDeadline,
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("http server: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown http server: %w", err)
	}

	return nil
}
