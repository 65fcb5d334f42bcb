package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/fx"
	"gorm.io/gorm"

	"github.com/99minutos/postboard/internal/api"
	"github.com/99minutos/postboard/internal/api/handler"
	"github.com/99minutos/postboard/internal/core/ports"
	"github.com/99minutos/postboard/internal/core/service"
	mongodb "github.com/99minutos/postboard/internal/infrastructure/db/mongo"
	"github.com/99minutos/postboard/internal/infrastructure/db/postgres"
	redisdb "github.com/99minutos/postboard/internal/infrastructure/db/redis"
	"github.com/99minutos/postboard/internal/infrastructure/mail"
	"github.com/99minutos/postboard/internal/infrastructure/password"
	"github.com/99minutos/postboard/internal/infrastructure/queue"
	"github.com/99minutos/postboard/internal/pkg/config"
	"github.com/99minutos/postboard/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func injectInfra() fx.Option {
	return fx.Provide(
		logger.Get,
		newPostgres,
		newRedis,
		newMongo,
	)
}

func injectRepo() fx.Option {
	return fx.Provide(
		postgres.NewUserRepository,
		postgres.NewPostRepository,
		fx.Annotate(redisdb.NewSessionStore, fx.As(new(ports.SessionStore))),
		fx.Annotate(redisdb.NewResetTokenStore, fx.As(new(ports.ResetTokenStore))),
		newAuditRepository,
	)
}

func injectService() fx.Option {
	return fx.Provide(
		newHasher,
		newMailer,
		newDispatcher,
		newAuthService,
		fx.Annotate(service.NewPostService, fx.As(new(ports.PostService))),
	)
}

func injectDelivery() fx.Option {
	return fx.Provide(newEcho)
}

func newPostgres(lc fx.Lifecycle, cfg *config.Config, log zerolog.Logger) (*gorm.DB, error) {
	db, err := postgres.Connect(context.Background(), postgres.Config{
		DSN:             cfg.Postgres.DSN,
		ReplicaDSNs:     cfg.Postgres.ReplicaDSNs,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Postgres.ConnMaxLifetime,
		SlowThreshold:   cfg.Postgres.SlowThreshold,
		Migrate:         cfg.Postgres.Migrate,
	}, logger.For(log, "postgres"))
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return postgres.Close(db) },
	})
	return db, nil
}

func newRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	rdb, err := redisdb.Connect(context.Background(), redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(context.Context) error { return rdb.Close() },
	})
	return rdb, nil
}

// newMongo returns a nil database when the audit trail is disabled.
func newMongo(lc fx.Lifecycle, cfg *config.Config) (*mongo.Database, error) {
	if !cfg.Mongo.Audit {
		return nil, nil
	}

	client, db, err := mongodb.Connect(context.Background(), mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		return nil, err
	}

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error { return client.Disconnect(ctx) },
	})
	return db, nil
}

func newAuditRepository(db *mongo.Database, log zerolog.Logger) (ports.AuthEventRepository, error) {
	if db == nil {
		return nil, nil
	}

	repo := mongodb.NewAuditRepository(db)
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := repo.EnsureIndexes(ctx); err != nil {
		return nil, err
	}
	log.Info().Str("database", db.Name()).Msg("auth audit trail enabled")
	return repo, nil
}

func newHasher(cfg *config.Config) (ports.PasswordHasher, error) {
	return password.NewArgon2Hasher(password.Params{
		MemoryKiB:   cfg.Argon2.MemoryKiB,
		Iterations:  cfg.Argon2.Iterations,
		Parallelism: cfg.Argon2.Parallelism,
		SaltLength:  cfg.Argon2.SaltLength,
		KeyLength:   cfg.Argon2.KeyLength,
	})
}

func newMailer(cfg *config.Config, log zerolog.Logger) (ports.Mailer, error) {
	return mail.New(mail.SMTPConfig{
		Host:     cfg.Mail.Host,
		Port:     cfg.Mail.Port,
		Username: cfg.Mail.Username,
		Password: cfg.Mail.Password,
		From:     cfg.Mail.From,
	}, logger.For(log, "mail"))
}

// newDispatcher starts the mail workers with the process and drains them
// on shutdown.
func newDispatcher(lc fx.Lifecycle, cfg *config.Config, mailer ports.Mailer, log zerolog.Logger) ports.MailQueue {
	d := queue.NewDispatcher(cfg.Mail.Workers, mailer, logger.For(log, "mail-dispatcher"))

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			d.Start(context.Background())
			return nil
		},
		OnStop: d.Close,
	})
	return d
}

func newAuthService(
	cfg *config.Config,
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.ResetTokenStore,
	mailQueue ports.MailQueue,
	audit ports.AuthEventRepository,
	log zerolog.Logger,
) ports.AuthService {
	return service.NewAuthService(users, hasher, tokens, mailQueue, audit, cfg.FrontendURL, logger.For(log, "auth"))
}

func newEcho(
	cfg *config.Config,
	log zerolog.Logger,
	db *gorm.DB,
	rdb *redis.Client,
	mongoDB *mongo.Database,
	sessions ports.SessionStore,
	authService ports.AuthService,
	postService ports.PostService,
) (*echo.Echo, error) {
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	return api.NewRouter(api.RouterDeps{
		Config:      cfg,
		Logger:      logger.For(log, "http"),
		Sessions:    sessions,
		AuthService: authService,
		PostService: postService,
		Readiness:   handler.NewHealthDependenciesHandler(sqlDB, rdb, mongoDB),
	}), nil
}

func startServer(lc fx.Lifecycle, cfg *config.Config, e *echo.Echo, log zerolog.Logger) {
	addr := net.JoinHostPort("0.0.0.0", cfg.Port)

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				log.Info().Str("addr", addr).Str("env", cfg.Env).Msg("starting HTTP server")
				if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Fatal().Err(err).Msg("HTTP server failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
			defer cancel()

			log.Info().Msg("shutting down HTTP server")
			return e.Shutdown(shutdownCtx)
		},
	})
}
