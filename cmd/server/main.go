package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	log "github.com/sirupsen/logrus"

	"github.com/sashafierce98/TGPTaskflow/internal/admin"
	"github.com/sashafierce98/TGPTaskflow/internal/auth"
	"github.com/sashafierce98/TGPTaskflow/internal/cache"
	"github.com/sashafierce98/TGPTaskflow/internal/handlers"
	"github.com/sashafierce98/TGPTaskflow/internal/kanban"
	"github.com/sashafierce98/TGPTaskflow/internal/notify"
	"github.com/sashafierce98/TGPTaskflow/internal/services"
	"github.com/sashafierce98/TGPTaskflow/internal/storage"
)

func main() {
	if dbg, err := strconv.ParseBool(os.Getenv("DEBUG")); err == nil && dbg {
		log.SetLevel(log.DebugLevel)
	}
	logger := log.StandardLogger()

	// Database connection (with retries)
	var store *storage.Postgres
	var err error
	for i := 0; i < 10; i++ {
		store, err = storage.Open(buildDSN())
		if err == nil {
			break
		}
		log.Warnf("DB connection attempt %d failed: %v", i+1, err)
		time.Sleep(2 * time.Second)
	}
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer store.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := store.Migrate(ctx); err != nil {
		log.Fatalf("Failed to migrate schema: %v", err)
	}
	log.Info("Connected to database")

	// Session cache is an optimization; run without it when unconfigured.
	var sessions cache.SessionCache
	if os.Getenv("REDIS_URL") != "" {
		redisCache, err := cache.NewRedisClient()
		if err != nil {
			log.Fatalf("Failed to connect to Redis: %v", err)
		}
		defer redisCache.Close()
		sessions = redisCache
		log.Info("Session cache enabled")
	} else {
		log.Warn("REDIS_URL not set; session lookups go straight to the database")
	}

	// Services
	exchanger := services.NewSessionDataClient()
	authn := auth.NewAuthenticator(store, sessions)
	authHandler := auth.NewHandler(store, sessions, exchanger, logger)
	kanbanSvc := kanban.NewService(store)
	deriver := notify.NewDeriver(store)
	adminSvc := admin.NewService(store)

	// Router
	h := handlers.New(kanbanSvc, deriver, adminSvc, logger)
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	h.RegisterRoutes(r, authHandler, authn)

	server := &http.Server{
		Addr:    ":" + getEnv("PORT", "8080"),
		Handler: r,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Info("Shutting down...")
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		_ = server.Shutdown(shutdownCtx)
	}()

	log.Infof("Server starting on %s", server.Addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
	log.Info("Server stopped")
}

func buildDSN() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	return "host=" + getEnv("DB_HOST", "localhost") +
		" user=" + getEnv("DB_USER", "taskflow") +
		" password=" + getEnv("DB_PASSWORD", "taskflow") +
		" dbname=" + getEnv("DB_NAME", "taskflow") +
		" sslmode=disable"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
