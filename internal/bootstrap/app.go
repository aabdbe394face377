package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"legalai-review/internal/config"
	"legalai-review/internal/model"
	"legalai-review/internal/pkg/logger"
	"legalai-review/internal/platform/database"
	"legalai-review/internal/platform/objstore"
	rabbitmqClient "legalai-review/internal/platform/rabbitmq"
	redisClient "legalai-review/internal/platform/redis"
	"legalai-review/internal/repository"
	"legalai-review/internal/session"
	"legalai-review/internal/worker"
)

type App struct {
	Config      *config.Config
	DB          *gorm.DB
	Redis       *redis.Client    // nil when no addr configured
	MQConn      *amqp.Connection // nil when no url configured
	ObjStore    *objstore.Store  // nil when no endpoint configured
	AuditWorker *worker.AuditWorker
	Sessions    *session.Store

	StartedAt time.Time
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config failed: %w", err)
	}

	log := logger.Init(logger.Options{Level: cfg.Log.Level, Pretty: cfg.Log.Pretty})

	var db *gorm.DB
	switch strings.ToLower(cfg.Database.Driver) {
	case "", "sqlite":
		db, err = database.OpenSQLite(cfg.Database.SQLitePath)
	case "mysql":
		db, err = database.OpenMySQL(ctx, cfg.MySQLDSN())
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Database.Driver)
	}
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&model.User{}, &model.AnalysisRecord{}, &model.AuditEntry{}); err != nil {
		return nil, fmt.Errorf("auto migrate tables failed: %w", err)
	}

	app := &App{
		Config:    cfg,
		DB:        db,
		Sessions:  session.NewStore(),
		StartedAt: time.Now(),
	}

	if cfg.Redis.Addr != "" {
		redisCli, err := redisClient.New(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, err
		}
		app.Redis = redisCli
	} else {
		log.Info().Msg("redis not configured, history cache disabled")
	}

	if cfg.RabbitMQ.URL != "" {
		mqConn, err := rabbitmqClient.New(cfg.RabbitMQ.URL)
		if err != nil {
			return nil, err
		}
		app.MQConn = mqConn

		auditRepo := repository.NewAuditRepository(db)
		auditWorker := worker.NewAuditWorker(mqConn, auditRepo, cfg.RabbitMQ.AuditQueue)
		if err := auditWorker.Start(ctx); err != nil {
			return nil, fmt.Errorf("start audit worker failed: %w", err)
		}
		app.AuditWorker = auditWorker
	} else {
		log.Info().Msg("rabbitmq not configured, audit events disabled")
	}

	if cfg.Storage.Endpoint != "" {
		store, err := objstore.New(ctx,
			cfg.Storage.Endpoint,
			cfg.Storage.Region,
			cfg.Storage.Bucket,
			cfg.Storage.AccessKey,
			cfg.Storage.SecretKey,
			cfg.Storage.UseSSL,
		)
		if err != nil {
			return nil, err
		}
		app.ObjStore = store
	} else {
		log.Info().Msg("object storage not configured, original archiving disabled")
	}

	return app, nil
}

func (a *App) Close() error {
	var closeErr error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			closeErr = err
		}
	}
	if a.AuditWorker != nil {
		a.AuditWorker.Close()
	}
	if a.MQConn != nil {
		if err := a.MQConn.Close(); err != nil {
			closeErr = err
		}
	}
	if a.DB != nil {
		sqlDB, err := a.DB.DB()
		if err == nil {
			if err := sqlDB.Close(); err != nil {
				closeErr = err
			}
		}
	}
	return closeErr
}
