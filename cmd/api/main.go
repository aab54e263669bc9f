package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"qna/internal/config"
	pgRepo "qna/internal/infra/adapter/persistence/postgres"
	sqliteRepo "qna/internal/infra/adapter/persistence/sqlite"
	"qna/internal/infra/db"
	"qna/internal/infra/worker"
	"qna/internal/observability/logging"
	"qna/internal/observability/slo"
	"qna/internal/observability/tracing"
	"qna/internal/repository"
	"qna/internal/resilience/circuitbreaker"
	qnaUC "qna/internal/usecase/qna"
	envconfig "qna/pkg/config"

	hhttp "qna/internal/handler/http"
	hauth "qna/internal/handler/http/auth"
	hqna "qna/internal/handler/http/qna"
	"qna/internal/handler/http/requestid"
	authservice "qna/internal/service/auth"
)

// rateLimitCleanupInterval is how often idle limiter entries are dropped.
const rateLimitCleanupInterval = 5 * time.Minute

type repositories struct {
	Questions repository.QuestionRepository
	Answers   repository.AnswerRepository
	Users     repository.UserRepository
	Histories repository.DeleteHistoryRepository
}

type components struct {
	Handler   http.Handler
	Limiters  []*hhttp.RateLimiter
	Scheduler *worker.Scheduler
	StatsJob  *worker.Job
}

func main() {
	configPath := flag.String("config", envconfig.GetEnvString("CONFIG_PATH", ""), "path to the YAML config file")
	flag.Parse()

	logger := initLogger()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	version := getVersion()
	shutdownTracing, err := tracing.InitProvider(cfg.Tracing.ServiceName, version, cfg.Tracing.SampleRatio)
	if err != nil {
		logger.Error("failed to initialise tracing", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Error("failed to shut down tracer provider", slog.Any("error", err))
		}
	}()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dbCfg := db.ConfigFromEnv()
	database, err := initDatabase(ctx, dbCfg)
	if err != nil {
		logger.Error("failed to initialise database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := database.Close(); err != nil {
			logger.Error("failed to close database", slog.Any("error", err))
		}
	}()

	comps, err := setupServer(ctx, logger, cfg, database, dbCfg.Driver, version)
	if err != nil {
		logger.Error("failed to set up server", slog.Any("error", err))
		os.Exit(1)
	}

	if err := runServer(ctx, logger, cfg, comps, version); err != nil {
		logger.Error("server exited with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func initLogger() *slog.Logger {
	logger := logging.New(os.Stdout, logging.Options{
		Level:  envconfig.GetEnvString("LOG_LEVEL", "info"),
		Format: envconfig.GetEnvString("LOG_FORMAT", "json"),
	})
	slog.SetDefault(logger)
	return logger
}

func initDatabase(ctx context.Context, cfg db.Config) (*sql.DB, error) {
	database, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	if err := db.MigrateUp(database, cfg.Driver); err != nil {
		_ = database.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return database, nil
}

func getVersion() string {
	return envconfig.GetEnvString("VERSION", "dev")
}

func newRepositories(database *sql.DB, driver string) repositories {
	if driver == db.DriverSQLite {
		return repositories{
			Questions: sqliteRepo.NewQuestionRepo(database),
			Answers:   sqliteRepo.NewAnswerRepo(database),
			Users:     sqliteRepo.NewUserRepo(database),
			Histories: sqliteRepo.NewDeleteHistoryRepo(database),
		}
	}
	return repositories{
		Questions: pgRepo.NewQuestionRepo(database),
		Answers:   pgRepo.NewAnswerRepo(database),
		Users:     pgRepo.NewUserRepo(database),
		Histories: pgRepo.NewDeleteHistoryRepo(database),
	}
}

func setupServer(ctx context.Context, logger *slog.Logger, cfg *config.Config, database *sql.DB, driver, version string) (*components, error) {
	repos := newRepositories(database, driver)

	breaker := circuitbreaker.New(circuitbreaker.DBConfig())
	svc := &qnaUC.Service{
		Questions: repos.Questions,
		Answers:   repos.Answers,
		Histories: repos.Histories,
		Tx:        circuitbreaker.NewTransactor(db.NewTransactor(database), breaker),
	}

	authSvc := authservice.NewAuthService(repos.Users, cfg.Security.PublicEndpoints)
	created, err := authSvc.EnsureUsers(ctx, cfg.BootstrapUsers())
	if err != nil {
		return nil, fmt.Errorf("bootstrap users: %w", err)
	}
	logger.Info("bootstrap users ensured", slog.Int("created", created))

	secret, err := cfg.JWTSecret()
	if err != nil {
		return nil, err
	}
	tokens := hauth.Tokens{Secret: secret, TTL: cfg.TokenTTL()}

	rl := cfg.Security.RateLimit
	loginLimiter := hhttp.NewRateLimiter(rl.RequestsPerSecond, rl.Burst, hhttp.ClientIP)
	writeLimiter := hhttp.NewRateLimiter(rl.RequestsPerSecond, rl.Burst, hauth.RateLimitKey(hhttp.ClientIP))

	health := &hhttp.HealthHandler{DB: database, Breaker: breaker, Version: version}

	mux := http.NewServeMux()
	mux.Handle("GET /health", health)
	mux.Handle("GET /ready", &hhttp.ReadyHandler{DB: database})
	mux.Handle("GET /live", hhttp.LiveHandler{})
	mux.Handle("GET /metrics", hhttp.MetricsHandler())
	mux.Handle("POST /auth/token", loginLimiter.Limit(hauth.TokenHandler(authSvc, tokens)))
	hqna.Register(mux, svc, writeLimiter.Limit)

	handler := hhttp.Chain(mux,
		requestid.Middleware,
		tracing.Middleware,
		hhttp.Recover(logger),
		hhttp.Logging(logger),
		hhttp.MetricsMiddleware,
		hhttp.SecurityHeaders(cfg.Security.CSPReportOnly),
		hhttp.LimitRequest(cfg.Server.MaxBodyBytes),
		hhttp.Deadline(cfg.Server.RequestTimeout),
		hauth.Authn(authSvc, tokens),
	)

	comps := &components{
		Handler:  handler,
		Limiters: []*hhttp.RateLimiter{loginLimiter, writeLimiter},
	}

	if cfg.Stats.Schedule != "" {
		comps.Scheduler = worker.NewScheduler(logger, time.UTC)
		comps.StatsJob = &worker.Job{
			Name:     "content_stats",
			Schedule: cfg.Stats.Schedule,
			Timeout:  30 * time.Second,
			Run: func(ctx context.Context) error {
				st, err := svc.RefreshStats(ctx)
				if err != nil {
					return err
				}
				snap, err := slo.Refresh(prometheus.DefaultGatherer)
				if err != nil {
					return fmt.Errorf("refresh slo: %w", err)
				}
				logger.Debug("content stats refreshed",
					slog.Int64("active_questions", st.ActiveQuestions),
					slog.Int64("active_answers", st.ActiveAnswers),
					slog.Int64("delete_histories", st.DeleteHistories),
					slog.Float64("availability", snap.Availability),
					slog.Bool("slo_met", snap.Met()))
				return nil
			},
		}
		if err := comps.Scheduler.Add(*comps.StatsJob); err != nil {
			return nil, err
		}
	} else {
		logger.Warn("content stats job disabled")
	}

	return comps, nil
}

// runServer serves HTTP and runs background jobs until ctx is cancelled,
// then shuts the server down gracefully.
func runServer(ctx context.Context, logger *slog.Logger, cfg *config.Config, comps *components, version string) error {
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           comps.Handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.ReadTimeout,
		WriteTimeout:      cfg.Server.WriteTimeout,
		IdleTimeout:       cfg.Server.IdleTimeout,
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("server starting",
			slog.String("addr", cfg.Server.Addr),
			slog.String("version", version))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		logger.Info("server stopped")
		return nil
	})

	for _, l := range comps.Limiters {
		g.Go(func() error {
			l.RunCleanup(gctx, rateLimitCleanupInterval)
			return nil
		})
	}

	if comps.Scheduler != nil {
		// populate gauges before the first tick
		comps.Scheduler.RunOnce(gctx, *comps.StatsJob)
		g.Go(func() error {
			return comps.Scheduler.Run(gctx)
		})
	}

	return g.Wait()
}
