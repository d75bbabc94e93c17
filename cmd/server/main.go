package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	_ "studentportal/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"studentportal/internal/cache"
	"studentportal/internal/config"
	"studentportal/internal/db"
	"studentportal/internal/handler"
	"studentportal/internal/metrics"
	"studentportal/internal/repository"
	"studentportal/internal/router"
	"studentportal/internal/service"
	"studentportal/internal/storage"
	"studentportal/internal/validation"
)

const indexRetryInterval = 15 * time.Second

// @title Student Project Portal API
// @version 1.0
// @description Users, project requests, payments and messages for the student project portal.
// @host localhost:8000
// @BasePath /api
// @schemes http
func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// A store that cannot be reached is not fatal: the banner and diagnostics
	// stay up, data operations report STORE_UNAVAILABLE and the driver keeps
	// reconnecting in the background.
	store, err := db.Connect(cfg.DatabaseURL, cfg.DatabaseName)
	if err != nil {
		log.Printf("WARNING: database unavailable, continuing without it: %v", err)
	} else {
		go ensureIndexes(ctx, store, cfg.UniqueEmails)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	files, err := newFileStore(ctx, cfg)
	if err != nil {
		log.Fatalf("upload storage init: %v", err)
	}

	validator := validation.New()
	database := store.Database()

	// Initialize repositories
	userRepo := repository.NewUserRepository(database, m)
	projectRepo := repository.NewProjectRepository(database, m)
	paymentRepo := repository.NewPaymentRepository(database, m)
	messageRepo := repository.NewMessageRepository(database, m)

	// Initialize services
	userService := service.NewUserService(userRepo, cacheClient, validator)
	projectService := service.NewProjectService(projectRepo, validator)
	paymentService := service.NewPaymentService(paymentRepo, validator)
	messageService := service.NewMessageService(messageRepo, validator)
	uploadService := service.NewUploadService(files, cfg.MaxUploadBytes)
	diagnosticsService := service.NewDiagnosticsService(store, cacheClient, cfg)

	e := echo.New()
	e.HideBanner = true

	router.Register(e, cfg, m, validator, router.Handlers{
		System:  handler.NewSystemHandler(diagnosticsService),
		User:    handler.NewUserHandler(userService),
		Project: handler.NewProjectHandler(projectService),
		Payment: handler.NewPaymentHandler(paymentService),
		Message: handler.NewMessageHandler(messageService),
		Upload:  handler.NewUploadHandler(uploadService),
	})

	log.Printf("Swagger documentation available at: %s", swaggerURL(cfg.SwaggerHost, cfg.ServerPort))

	go func() {
		addr := ":" + cfg.ServerPort
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	if err := store.Close(shutdownCtx); err != nil {
		log.Printf("database close: %v", err)
	}
	if err := cacheClient.Close(); err != nil {
		log.Printf("cache close: %v", err)
	}
}

// ensureIndexes creates the indexes once the store answers, retrying while it is down.
func ensureIndexes(ctx context.Context, store *db.Mongo, uniqueEmails bool) {
	ticker := time.NewTicker(indexRetryInterval)
	defer ticker.Stop()

	for {
		err := store.Ping(ctx)
		if err == nil {
			err = store.EnsureIndexes(ctx, uniqueEmails)
			if err == nil {
				log.Printf("Database ready, indexes ensured")
				return
			}
		}
		log.Printf("WARNING: database not ready, retrying in %s: %v", indexRetryInterval, err)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func newFileStore(ctx context.Context, cfg *config.Config) (storage.FileStore, error) {
	if cfg.UploadBackend != "minio" {
		return storage.NewLocalStore(cfg.UploadDir)
	}
	ms, err := storage.NewMinioStore(cfg.MinIO)
	if err != nil {
		return nil, err
	}
	if err := ms.EnsureBucket(ctx); err != nil {
		return nil, err
	}
	return ms, nil
}

func swaggerURL(host, port string) string {
	switch {
	case host == "":
		return "http://localhost:" + port + "/swagger/index.html"
	case strings.HasPrefix(host, "http://"), strings.HasPrefix(host, "https://"):
		return host + "/swagger/index.html"
	default:
		return "http://" + host + "/swagger/index.html"
	}
}
