// Package main starts the sandbox record service: a local stand-in for the
// hosted application that speaks the same wire protocol, backed by Postgres
// or by memory.
package main

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	nethttp "net/http"

	"go.uber.org/zap"

	"github.com/atinyakov/mouthpiecer/internal/config"
	"github.com/atinyakov/mouthpiecer/internal/db"
	"github.com/atinyakov/mouthpiecer/internal/logger"
	"github.com/atinyakov/mouthpiecer/internal/ratelimit"
	"github.com/atinyakov/mouthpiecer/internal/repository"
	"github.com/atinyakov/mouthpiecer/internal/server/handler/http"
	"github.com/atinyakov/mouthpiecer/internal/service"
)

var (
	// version holds the build version set via ldflags.
	version string
	// buildDate holds the build timestamp set via ldflags.
	buildDate string
)

// shutdownTimeout bounds how long in-flight requests may finish on exit.
const shutdownTimeout = 10 * time.Second

// store is what the services need from either backend.
type store interface {
	service.AuthRepository
	service.RecordRepository
	db.SessionPurger
}

// postgresStore joins the two Postgres repositories into one store.
type postgresStore struct {
	*repository.PostgresAuthRepository
	*repository.PostgresRecordRepository
}

func main() {
	fmt.Printf("Build version: %s\n", cmp.Or(version, "N/A"))
	fmt.Printf("Build date: %s\n", cmp.Or(buildDate, "N/A"))

	options, err := config.ParseServer(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	log := logger.New()
	if err := log.Init(options.LogLevel); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer func() { _ = log.Log.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, options, log.Log); err != nil {
		log.Log.Error("sandbox stopped", zap.Error(err))
		os.Exit(1)
	}
}

func run(ctx context.Context, options *config.ServerOptions, zapLogger *zap.Logger) error {
	st, closeStore, err := openStore(ctx, options.DatabaseDSN, zapLogger)
	if err != nil {
		return err
	}
	defer closeStore()

	db.StartSessionCleaner(ctx, st, time.Hour, zapLogger)

	authService := service.NewAuthService(st, options.SessionTTL)
	recordService := service.NewRecordService(st, options.Makes)

	router := http.NewRouter(
		http.Routes{
			AppID:            options.AppID,
			APIKey:           options.APIKey,
			Scene:            options.Scene,
			View:             options.View,
			UserObject:       options.UserObject,
			MouthpieceObject: options.MouthpieceObject,
		},
		&http.AuthHandler{AuthService: authService, Fields: options.Fields},
		&http.RecordHandler{Records: recordService, Fields: options.Fields, RowsPerPage: options.RowsPerPage},
		&http.SchemaHandler{Fields: options.Fields, Makes: recordService.Makes},
		authService,
		ratelimit.New(options.RateLimit, options.RateBurst),
		zapLogger,
	)

	server := &nethttp.Server{
		Addr:              options.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		zapLogger.Info("starting sandbox server",
			zap.String("addr", options.Port),
			zap.Bool("tls", options.TLS()),
			zap.String("app_id", options.AppID),
		)
		if options.TLS() {
			errc <- server.ListenAndServeTLS(options.CertFile, options.KeyFile)
			return
		}
		errc <- server.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	zapLogger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, nethttp.ErrServerClosed) {
		return err
	}
	return nil
}

// openStore connects to Postgres when dsn is set and falls back to memory.
func openStore(ctx context.Context, dsn string, zapLogger *zap.Logger) (store, func(), error) {
	if dsn == "" {
		zapLogger.Warn("no database configured, data is kept in memory")
		return repository.NewMemoryStore(), func() {}, nil
	}
	conn, err := db.InitPostgres(ctx, dsn)
	if err != nil {
		return nil, nil, fmt.Errorf("cannot init database: %w", err)
	}
	st := postgresStore{
		PostgresAuthRepository:   repository.NewPostgresAuthRepository(conn),
		PostgresRecordRepository: repository.NewPostgresRecordRepository(conn),
	}
	return st, func() { _ = conn.Close() }, nil
}
