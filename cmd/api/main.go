// cmd/api/main.go
// BigTeam backend entry point: configuration, database, storage and
// module wiring, then an HTTP server with graceful shutdown.

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bigteamhq/bigteam-backend/internal/ads"
	"github.com/bigteamhq/bigteam-backend/internal/auth"
	"github.com/bigteamhq/bigteam-backend/internal/common/database"
	"github.com/bigteamhq/bigteam-backend/internal/common/utils"
	"github.com/bigteamhq/bigteam-backend/internal/config"
	"github.com/bigteamhq/bigteam-backend/internal/feed"
	"github.com/bigteamhq/bigteam-backend/internal/posts"
	"github.com/bigteamhq/bigteam-backend/internal/storage"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	log.Println("Starting BigTeam API...")
	log.Printf("Environment: %s", cfg.Environment)

	// Database
	db, err := database.NewPostgresDBFromURL(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	log.Println("Connected to PostgreSQL")

	if err := runMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations complete")

	// Redis is optional: without it the token denylist is disabled
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			log.Printf("WARN: Redis unavailable, token revocation disabled: %v", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("Connected to Redis")
		}
	}

	// Media storage
	storageService, err := storage.NewService(storage.Config{
		UseS3:          cfg.UseS3,
		S3Bucket:       cfg.S3Bucket,
		AWSRegion:      cfg.AWSRegion,
		LocalUploadDir: cfg.LocalUploadDir,
		BaseURL:        cfg.BaseURL,
		MaxFileSize:    cfg.MaxUploadSize,
	})
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}
	if cfg.UseS3 {
		log.Printf("Media storage: S3 bucket %s", cfg.S3Bucket)
	} else {
		log.Printf("Media storage: local directory %s", cfg.LocalUploadDir)
	}

	// Modules
	authService := auth.NewService(auth.NewPostgresRepository(db), redisClient, &auth.Config{
		JWTSecret:         cfg.JWTSecret,
		AccessTokenExpiry: cfg.AccessTokenExpiry,
		BCryptCost:        cfg.BCryptCost,
	})
	authMiddleware := auth.NewMiddleware(authService)
	authHandler := auth.NewHandler(authService)

	postsService := posts.NewService(posts.NewPostgresRepository(db), storageService)
	postsHandler := posts.NewHandler(postsService, cfg.MaxUploadSize)

	adsService := ads.NewService(ads.NewPostgresRepository(db), storageService)
	adsHandler := ads.NewHandler(adsService, cfg.MaxUploadSize)

	feedService := feed.NewService(feed.NewPostgresRepository(db))
	feedHandler := feed.NewHandler(feedService, cfg.FeedDefaultLimit, cfg.FeedMaxLimit)

	// Router
	router := mux.NewRouter()
	router.Use(loggingMiddleware, corsMiddleware)

	router.HandleFunc("/health", healthHandler(db)).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	authHandler.RegisterRoutes(router, authMiddleware)
	posts.RegisterRoutes(router, postsHandler, authMiddleware)
	ads.RegisterRoutes(router, adsHandler, authMiddleware)
	feed.RegisterRoutes(router, feedHandler)

	if !cfg.UseS3 {
		fs := http.StripPrefix("/uploads/", http.FileServer(http.Dir(cfg.LocalUploadDir)))
		router.PathPrefix("/uploads/").Handler(fs).Methods("GET")
	}

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Printf("Server listening on port %s", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("Forced shutdown: %v", err)
	}
	log.Println("Server stopped")
}

// runMigrations creates the schema if it does not exist yet
func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE EXTENSION IF NOT EXISTS pgcrypto`,

		`CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			full_name VARCHAR(255) NOT NULL,
			username VARCHAR(100) UNIQUE NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password_hash VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'customer',
			is_active BOOLEAN DEFAULT true,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS posts (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title VARCHAR(255) NOT NULL,
			content TEXT,
			media_type VARCHAR(50) NOT NULL CHECK (media_type IN ('video', 'image', 'ad')),
			media_url TEXT NOT NULL,
			thumbnail_url TEXT,
			created_by UUID REFERENCES users(id) ON DELETE SET NULL,
			is_published BOOLEAN DEFAULT false,
			likes_count INTEGER DEFAULT 0,
			shares_count INTEGER DEFAULT 0,
			views_count INTEGER DEFAULT 0,
			created_at TIMESTAMPTZ DEFAULT NOW(),
			updated_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE TABLE IF NOT EXISTS advertisements (
			id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
			title VARCHAR(255) NOT NULL,
			media_type VARCHAR(50) NOT NULL,
			media_url TEXT NOT NULL,
			ad_type VARCHAR(50) DEFAULT 'banner',
			is_active BOOLEAN DEFAULT true,
			start_date TIMESTAMPTZ,
			end_date TIMESTAMPTZ,
			created_at TIMESTAMPTZ DEFAULT NOW()
		)`,

		`CREATE INDEX IF NOT EXISTS idx_posts_published_created
			ON posts (is_published, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_ads_active_created
			ON advertisements (is_active, created_at DESC)`,
		`CREATE INDEX IF NOT EXISTS idx_users_email ON users (email)`,
	}

	for _, migration := range migrations {
		if _, err := db.Exec(migration); err != nil {
			return err
		}
	}
	return nil
}

func healthHandler(db *sqlx.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := db.PingContext(r.Context()); err != nil {
			utils.RespondWithError(w, http.StatusServiceUnavailable, "database unreachable")
			return
		}
		utils.RespondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// loggingMiddleware logs every request with its duration
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.RequestURI, time.Since(start))
	})
}

// corsMiddleware allows cross-origin calls from web clients
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}
