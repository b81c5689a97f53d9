package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/pribylovaa/notification-extension/internal/calls"
	"github.com/pribylovaa/notification-extension/internal/config"
	"github.com/pribylovaa/notification-extension/internal/credentials"
	"github.com/pribylovaa/notification-extension/internal/decoder"
	"github.com/pribylovaa/notification-extension/internal/extension"
	"github.com/pribylovaa/notification-extension/internal/network"
	logctx "github.com/pribylovaa/notification-extension/internal/pkg/log"
	"github.com/pribylovaa/notification-extension/internal/storage"
	"github.com/pribylovaa/notification-extension/internal/storage/postgres"
	nsehttp "github.com/pribylovaa/notification-extension/internal/transport/http"
	"github.com/pribylovaa/notification-extension/internal/transport/http/handlers"
	nsekafka "github.com/pribylovaa/notification-extension/internal/transport/kafka"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "", "path to config file")
	flag.Parse()

	cfg := config.MustLoad(configPath)

	log := setupLogger(cfg.Env)
	slog.SetDefault(log)
	log.Info("starting notification-extension", "env", cfg.Env)

	rootCtx, rootCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer rootCancel()
	rootCtx = logctx.Into(rootCtx, log)

	// Хранилище расшифрованных событий.
	st, err := postgres.New(rootCtx, cfg.DB.DatabaseURL)
	if err != nil {
		log.Error("storage_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}
	defer st.Close()
	log.Info("storage_initialized")

	decrypter, err := decoder.NewXChaChaDecrypter(cfg.Crypto.MasterKey)
	if err != nil {
		log.Error("crypto_init_failed", slog.String("err", err.Error()))
		os.Exit(1)
	}

	checks := map[string]handlers.Pinger{"postgres": st}

	// Cookie аккаунтов и реестр звонков: Redis или in-memory.
	var (
		creds    credentials.Store
		registry calls.Registry
	)
	if cfg.Redis.RedisURL != "" {
		rs, err := credentials.NewRedisStore(rootCtx, cfg.Redis.RedisURL, cfg.Redis.Prefix)
		if err != nil {
			log.Error("redis_init_failed", slog.String("err", err.Error()))
			os.Exit(1)
		}
		creds = rs
		registry = calls.NewRedisRegistry(rs.Client(), cfg.Redis.Prefix)
		checks["redis"] = rs
		log.Info("redis_initialized")
	} else {
		log.Warn("redis_disabled_using_memory")
		creds = credentials.NewMemoryStore()
		registry = calls.NewMemoryRegistry()
	}
	defer func() {
		if cerr := creds.Close(); cerr != nil {
			log.Warn("credentials_close_failed", slog.String("err", cerr.Error()))
		}
	}()

	// VoIP-репортёр: Kafka или лог.
	var reporter calls.Reporter = calls.NewLogReporter(log)
	var closers []func() error
	if cfg.Kafka.Enabled() {
		voipWriter := nsekafka.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.VoIPTopic)
		closers = append(closers, voipWriter.Close)
		reporter = calls.NewKafkaReporter(voipWriter)
	}

	metrics := extension.NewMetrics(nil)
	svc := extension.New(&extension.Factory{
		Credentials: creds,
		Events:      st,
		Decrypter:   decrypter,
		Registry:    registry,
		Reporter:    reporter,
		HTTPClient:  network.NewHTTPClient(nil, cfg.Backend.RequestTimeout, log),
		BaseURL:     cfg.Backend.BaseURL,
		UserAgent:   cfg.Backend.UserAgent,
		Title:       cfg.Extension.Title,
	}, extension.Options{
		DebugMessages: cfg.Extension.DebugMessages,
		Metrics:       metrics,
		Logger:        log,
	})
	extension.RegisterInFlight(nil, svc)

	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := storage.RunRetention(rootCtx, st, cfg.Extension.EventRetention, cfg.Extension.RetentionInterval); err != nil {
			log.Warn("retention_disabled", slog.String("err", err.Error()))
		}
	}()

	if cfg.Kafka.Enabled() {
		reader := nsekafka.NewReader(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.WakeupsTopic)
		notifWriter := nsekafka.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.NotificationsTopic)
		closers = append(closers, reader.Close, notifWriter.Close)

		consumer := nsekafka.NewConsumer(reader, notifWriter, svc, cfg.Extension.JobBudget)
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := consumer.Run(rootCtx); err != nil {
				log.Error("kafka_consumer_failed", slog.String("err", err.Error()))
				rootCancel()
			}
		}()
		log.Info("kafka_initialized", slog.Any("brokers", cfg.Kafka.Brokers))
	}

	if cfg.HTTP.AdminToken == "" {
		log.Warn("admin_token_disabled")
	}
	router := nsehttp.NewRouter(handlers.New(svc, creds, checks), nsehttp.Options{
		Logger:     log,
		Timeout:    cfg.Extension.JobBudget,
		AdminToken: cfg.HTTP.AdminToken,
	})

	httpAddr := cfg.HTTP.Addr()
	httpSrv := &http.Server{
		Addr:              httpAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	ln, err := net.Listen("tcp", httpAddr)
	if err != nil {
		log.Error("http_listen_failed", slog.String("addr", httpAddr), slog.String("err", err.Error()))
		os.Exit(1)
	}

	log.Info("http_listen_start", slog.String("addr", httpAddr))

	serveErrCh := make(chan error, 1)
	go func() {
		if err := httpSrv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErrCh <- err
		}
		close(serveErrCh)
	}()

	log.Info("extension_ready")

	select {
	case <-rootCtx.Done():
		log.Info("shutdown_requested")
	case err := <-serveErrCh:
		if err != nil {
			log.Error("http_serve_failed", slog.String("err", err.Error()))
		}
	}

	// Незавершённые Job отменяются: у хоста кончилось время.
	if n := svc.TimeWillExpire(); n > 0 {
		log.Warn("jobs_cancelled_on_shutdown", slog.Int("count", n))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		log.Warn("http_shutdown_incomplete", slog.String("err", err.Error()))
	} else {
		log.Info("http_stopped")
	}

	rootCancel()
	wg.Wait()

	for _, closeFn := range closers {
		if err := closeFn(); err != nil {
			log.Warn("kafka_close_failed", slog.String("err", err.Error()))
		}
	}

	log.Info("service_stopped")
}

func setupLogger(env string) *slog.Logger {
	switch env {
	case envLocal:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envDev:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	case envProd:
		return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}
