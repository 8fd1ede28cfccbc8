package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/dmitrymomot/finauth/modules/account"
	"github.com/dmitrymomot/finauth/pkg/config"
	"github.com/dmitrymomot/finauth/pkg/email"
	"github.com/dmitrymomot/finauth/pkg/environment"
	"github.com/dmitrymomot/finauth/pkg/httpserver"
	"github.com/dmitrymomot/finauth/pkg/i18n"
	"github.com/dmitrymomot/finauth/pkg/logger"
	"github.com/dmitrymomot/finauth/pkg/metrics"
	"github.com/dmitrymomot/finauth/pkg/mongo"
	"github.com/dmitrymomot/finauth/pkg/pg"
	"github.com/dmitrymomot/finauth/pkg/redis"
	"github.com/dmitrymomot/finauth/pkg/requestid"
	"github.com/dmitrymomot/finauth/svc/auth"
	"github.com/dmitrymomot/finauth/svc/identity"
	"github.com/dmitrymomot/finauth/svc/identity/migrations"
	"github.com/dmitrymomot/finauth/svc/profile"
)

type appConfig struct {
	Env                 string        `env:"APP_ENV" envDefault:"development"`
	ServiceName         string        `env:"SERVICE_NAME" envDefault:"finauth"`
	RequestTimeout      time.Duration `env:"REQUEST_TIMEOUT" envDefault:"15s"`
	HealthTimeout       time.Duration `env:"HEALTHCHECK_TIMEOUT" envDefault:"3s"`
	RequireVerifiedMail bool          `env:"AUTH_REQUIRE_VERIFIED_EMAIL" envDefault:"false"`
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		slog.Error("server stopped", logger.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	if _, err := os.Stat(".env"); err == nil {
		if err := config.LoadEnv(".env"); err != nil {
			return err
		}
	}

	var (
		app       appConfig
		httpCfg   httpserver.Config
		pgCfg     pg.Config
		mongoCfg  mongo.Config
		redisCfg  redis.Config
		mailCfg   email.Config
		idCfg     identity.Config
		googleCfg identity.GoogleOAuthConfig
		githubCfg identity.GitHubOAuthConfig
	)
	for _, load := range []func() error{
		func() error { return config.Load(&app) },
		func() error { return config.Load(&httpCfg) },
		func() error { return config.Load(&pgCfg) },
		func() error { return config.Load(&mongoCfg) },
		func() error { return config.Load(&redisCfg) },
		func() error { return config.Load(&mailCfg) },
		func() error { return config.Load(&idCfg) },
		func() error { return config.Load(&googleCfg) },
		func() error { return config.Load(&githubCfg) },
	} {
		if err := load(); err != nil {
			return err
		}
	}

	env := environment.Parse(app.Env)
	log := logger.New(
		logger.WithEnvironment(env, app.ServiceName),
		logger.WithContextExtractors(requestid.LoggerExtractor()),
	)
	logger.SetAsDefault(log)

	pool, err := pg.Connect(ctx, pgCfg)
	if err != nil {
		return fmt.Errorf("postgres: %w", err)
	}
	defer pool.Close()
	if err := pg.Migrate(ctx, pool, migrations.FS, pgCfg, log); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}

	mongoClient, err := mongo.Connect(ctx, mongoCfg)
	if err != nil {
		return fmt.Errorf("mongodb: %w", err)
	}
	defer func() { _ = mongoClient.Disconnect(context.WithoutCancel(ctx)) }()

	redisClient, err := redis.Connect(ctx, redisCfg)
	if err != nil {
		return fmt.Errorf("redis: %w", err)
	}
	defer func() { _ = redisClient.Close() }()

	var mailer email.EmailSender
	if env.IsProduction() {
		if mailer, err = email.NewPostmarkClient(mailCfg); err != nil {
			return fmt.Errorf("postmark: %w", err)
		}
	} else {
		mailer = email.NewDevSender(mailCfg.DevOutputDir)
		log.InfoContext(ctx, "emails are written to disk", slog.String("dir", mailCfg.DevOutputDir))
	}

	tr := i18n.MustNew(i18n.Builtin(), i18n.WithLogger(log))

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector := metrics.NewCollector(reg)

	idOpts := []identity.Option{identity.WithLogger(log), identity.WithTranslator(tr)}
	if googleCfg.Enabled() {
		idOpts = append(idOpts, identity.WithOAuthAdapter(identity.NewGoogleAdapter(googleCfg)))
	}
	if githubCfg.Enabled() {
		idOpts = append(idOpts, identity.WithOAuthAdapter(identity.NewGitHubAdapter(githubCfg)))
	}
	idp := identity.NewProvider(idCfg,
		identity.NewPGStorage(pool),
		identity.NewRedisStateStore(redisClient),
		mailer,
		idOpts...,
	)

	profiles := profile.NewStore(
		profile.NewMongoStore(mongoClient.Database(mongoCfg.Database)),
		profile.WithLogger(log),
	)

	svc := auth.NewService(idp, profiles,
		auth.WithLogger(log),
		auth.WithMetrics(collector),
		auth.WithTranslator(tr),
		auth.WithRequireVerifiedEmail(app.RequireVerifiedMail),
	)

	r := chi.NewRouter()
	r.Use(requestid.Middleware)
	r.Use(httpserver.AccessLog(log))
	r.Use(middleware.Recoverer)

	r.Get("/healthz", httpserver.HealthHandler(log, app.HealthTimeout))
	r.Get("/readyz", httpserver.HealthHandler(log, app.HealthTimeout,
		httpserver.Check{Name: "postgres", Fn: pg.Healthcheck(pool)},
		httpserver.Check{Name: "mongodb", Fn: mongo.Healthcheck(mongoClient)},
		httpserver.Check{Name: "redis", Fn: redis.Healthcheck(redisClient)},
	))
	r.Handle("/metrics", metrics.Handler(reg))
	r.Mount("/", account.New(svc, tr,
		account.WithLogger(log),
		account.WithTimeout(app.RequestTimeout),
	).Router())

	return httpserver.New(httpCfg, httpserver.WithLogger(log)).Run(ctx, r)
}
