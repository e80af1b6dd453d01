package app

import (
	"context"
	"errors"
	"net/http"

	"family-connect-go/internal/config"
	"family-connect-go/internal/db"
	authdomain "family-connect-go/internal/domain/auth"
	connectionsdomain "family-connect-go/internal/domain/connections"
	discoverydomain "family-connect-go/internal/domain/discovery"
	eventsdomain "family-connect-go/internal/domain/events"
	listingsdomain "family-connect-go/internal/domain/listings"
	messagingdomain "family-connect-go/internal/domain/messaging"
	moderationdomain "family-connect-go/internal/domain/moderation"
	userdomain "family-connect-go/internal/domain/user"
	"family-connect-go/internal/mailer"
	"family-connect-go/internal/metrics"
	"family-connect-go/internal/notify"
	notifykafka "family-connect-go/internal/notify/kafka"
	authrepo "family-connect-go/internal/repository/postgres/auth"
	connectionsrepo "family-connect-go/internal/repository/postgres/connections"
	discoveryrepo "family-connect-go/internal/repository/postgres/discovery"
	eventsrepo "family-connect-go/internal/repository/postgres/events"
	listingsrepo "family-connect-go/internal/repository/postgres/listings"
	messagingrepo "family-connect-go/internal/repository/postgres/messaging"
	moderationrepo "family-connect-go/internal/repository/postgres/moderation"
	userrepo "family-connect-go/internal/repository/postgres/user"
	"family-connect-go/internal/transport/httpserver"
	"family-connect-go/internal/transport/httpserver/handler"
	"family-connect-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
	notifier   *notifykafka.Notifier
	log        logger.Logger
}

func New(ctx context.Context, log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	a := &App{cfg: cfg, db: dbConn, log: log}
	if cfg.DB.AutoMigrate {
		log.Info("app: applying migrations")
		if err := db.Migrate(dbConn); err != nil {
			return nil, a.abort(err)
		}
	}

	var m *metrics.Metrics
	if cfg.MetricsEnabled {
		m = metrics.New()
	}

	notifier := a.newNotifier(m)

	resetMailer, err := mailer.NewSES(ctx, cfg.Mail, log)
	if err != nil {
		return nil, a.abort(err)
	}
	var delivery mailer.ResetMailer = resetMailer
	if resetMailer.Enabled() && m != nil {
		delivery = mailer.WithRecorder(resetMailer, m)
	}

	users := userdomain.NewService(userrepo.NewPostgres(dbConn))
	moderation := moderationdomain.NewService(moderationrepo.NewPostgres(dbConn), users)
	handlers := handler.New(
		authdomain.NewService(authrepo.NewPostgres(dbConn), cfg.AdminEmails),
		users,
		discoverydomain.NewService(discoveryrepo.NewPostgres(dbConn), users, moderation),
		connectionsdomain.NewService(connectionsrepo.NewPostgres(dbConn), users, moderation, notifier),
		messagingdomain.NewService(messagingrepo.NewPostgres(dbConn), users, moderation, notifier),
		moderation,
		eventsdomain.NewService(eventsrepo.NewPostgres(dbConn), users),
		listingsdomain.NewService(listingsrepo.NewPostgres(dbConn), users),
		delivery,
		log,
	)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, users, m, log)

	log.Info("app: initializing http server")
	a.httpServer = httpserver.New(cfg, router)
	return a, nil
}

// newNotifier selects Kafka when brokers are configured, otherwise push payloads are only logged.
func (a *App) newNotifier(m *metrics.Metrics) notify.Notifier {
	if len(a.cfg.Kafka.Brokers) == 0 {
		a.log.Info("app: kafka not configured, notifications will be logged")
		return notify.NewLogNotifier(a.log)
	}

	var recorder notifykafka.Recorder
	if m != nil {
		recorder = m
	}
	writer := notifykafka.NewWriter(a.cfg.Kafka.Brokers, a.cfg.Kafka.NotificationsTopic, a.cfg.Kafka.WriteTimeout, a.log, recorder)
	a.notifier = notifykafka.NewNotifier(writer, a.log, recorder)
	a.log.Info("app: kafka notifications enabled", "brokers", a.cfg.Kafka.Brokers, "topic", a.cfg.Kafka.NotificationsTopic)
	return a.notifier
}

// abort releases what New has opened so far.
func (a *App) abort(err error) error {
	if closeErr := a.Close(); closeErr != nil {
		a.log.Error("app: release after failed init", "err", closeErr)
	}
	return err
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	var errs []error
	if a.notifier != nil {
		if err := a.notifier.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if a.db != nil {
		sqlDB, err := a.db.DB()
		if err != nil {
			errs = append(errs, err)
		} else if err := sqlDB.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
