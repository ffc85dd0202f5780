package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"event-polling-api/internal/config"
	gweb "event-polling-api/internal/grpcweb"
	"event-polling-api/internal/handler"
	"event-polling-api/internal/middleware"
	"event-polling-api/internal/server"
	"event-polling-api/internal/service"
	"event-polling-api/internal/storage"
	"event-polling-api/internal/storage/memory"
	"event-polling-api/internal/storage/postgres"
	"event-polling-api/internal/telemetry"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.ServiceName, cfg.OTelEndpoint, cfg.OTelEnabled)
	if err != nil {
		log.Fatalf("telemetry: %v", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(sctx); err != nil {
			log.Printf("telemetry shutdown: %v", err)
		}
	}()

	st, closeStore, err := openStore(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db: %v", err)
	}
	defer closeStore()

	h := handler.New(st, cfg.JWTSecret, service.Options{
		Logger: logger,
		Retry:  cfg.RetryPolicy(),
		NewID:  uuid.NewString,
	})

	srv := server.New(h, server.Options{
		Secret:  cfg.JWTSecret,
		Limiter: middleware.NewRateLimiter(ctx, cfg.RateLimitRPS, cfg.RateLimitBurst),
		Logger:  logger,
	})

	lis, err := net.Listen("tcp", ":"+cfg.GRPCPort)
	if err != nil {
		log.Fatalf("listen: %v", err)
	}
	grpcDone := make(chan error, 1)
	go func() { grpcDone <- srv.Serve(ctx, lis) }()

	// grpc-web bridge -> forwards browser requests to grpc on localhost
	bridge, err := gweb.New("localhost:"+cfg.GRPCPort, cfg.FrontendOrigins)
	if err != nil {
		log.Fatalf("bridge: %v", err)
	}
	defer bridge.Close()

	httpSrv := &http.Server{
		Addr:              ":" + cfg.WebPort,
		Handler:           bridge.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("grpc-web on :%s", cfg.WebPort)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http: %v", err)
		}
	}()

	var grpcErr error
	grpcStopped := false
	select {
	case <-ctx.Done():
	case grpcErr = <-grpcDone:
		grpcStopped = true
	}
	log.Println("shutting down")

	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(sctx); err != nil {
		log.Printf("http shutdown: %v", err)
	}
	if !grpcStopped {
		grpcErr = <-grpcDone
	}
	if grpcErr != nil {
		log.Printf("grpc: %v", grpcErr)
	}
}

// openStore connects to Postgres when dsn is set and falls back to the
// in-memory store otherwise.
func openStore(ctx context.Context, dsn string) (storage.Store, func(), error) {
	if dsn == "" {
		log.Println("DATABASE_URL not set, using in-memory store")
		st := memory.New()
		return st, st.Close, nil
	}
	st, err := postgres.Open(ctx, dsn)
	if err != nil {
		return nil, nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		st.Close()
		return nil, nil, err
	}
	log.Println("connected to postgres")
	return st, st.Close, nil
}
