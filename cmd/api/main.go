// cmd/api/main.go
// Main entry point for the application
// This file bootstraps all components and starts the server

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-redis/redis/v8"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	// Internal packages
	"github.com/localfy/localfy-backend/internal/auth"
	"github.com/localfy/localfy-backend/internal/common/database"
	"github.com/localfy/localfy-backend/internal/common/utils"
	"github.com/localfy/localfy-backend/internal/config"
	"github.com/localfy/localfy-backend/internal/dateideas"
	"github.com/localfy/localfy-backend/internal/matches"
	"github.com/localfy/localfy-backend/internal/matchmaking"
	"github.com/localfy/localfy-backend/internal/users"
)

func main() {
	log.SetFlags(log.Ldate | log.Ltime | log.Lshortfile)

	log.Println("========================================")
	log.Println("🚀 Starting Localfy Dating API")
	log.Println("========================================")

	// 1. Load environment variables
	log.Println("📁 Step 1: Loading .env file...")
	if err := godotenv.Load(); err != nil {
		log.Printf("⚠️  Warning: No .env file found (%v), using environment variables", err)
	} else {
		log.Println("✅ .env file loaded successfully")
	}

	// 2. Load configuration
	log.Println("\n📋 Step 2: Loading configuration...")
	cfg := config.Load()
	log.Println("✅ Configuration loaded")

	// 3. Validate configuration
	log.Println("\n✔️  Step 3: Validating configuration...")
	if err := cfg.Validate(); err != nil {
		log.Fatal("❌ Configuration validation failed:", err)
	}
	log.Println("✅ Configuration is valid")

	// 4. Connect to PostgreSQL
	log.Println("\n🗄️  Step 4: Connecting to PostgreSQL...")
	db, err := database.NewPostgresDB(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("❌ Failed to connect to PostgreSQL:", err)
	}
	defer db.Close()
	log.Println("✅ Connected to PostgreSQL successfully")

	// 5. Connect to Redis (optional)
	log.Println("\n📮 Step 5: Connecting to Redis...")
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.NewRedisClient(cfg.RedisURL)
		if err != nil {
			log.Printf("⚠️  Redis unavailable (%v), continuing without cache", err)
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Println("✅ Connected to Redis successfully")
		}
	} else {
		log.Println("⚠️  Redis URL not configured, skipping Redis connection")
	}

	// 6. Run database migrations
	log.Println("\n🔨 Step 6: Running database migrations...")
	if err := runMigrations(db); err != nil {
		log.Fatal("❌ Failed to run migrations: ", err)
	}
	log.Println("✅ Database migrations completed")

	// 7. Initialize matchmaking engine
	log.Println("\n💘 Step 7: Initializing matchmaking engine...")
	engine := matchmaking.NewEngine()
	authMiddleware := auth.NewMiddleware(cfg.JWTSecret)
	log.Println("✅ Matchmaking engine initialized")

	// 8. Initialize Users module
	log.Println("\n👤 Step 8: Initializing Users module...")
	usersRepo := users.NewPostgresRepository(db)
	usersService := users.NewService(usersRepo)
	usersHandler := users.NewHandler(usersService)
	log.Println("✅ Users module initialized")

	// 9. Initialize Date Ideas module
	log.Println("\n🌆 Step 9: Initializing Date Ideas module...")
	ideasRepo := dateideas.NewPostgresRepository(db)
	ideasService := dateideas.NewService(ideasRepo, usersService, engine, redisClient, cfg)
	ideasHandler := dateideas.NewHandler(ideasService)
	log.Println("✅ Date Ideas module initialized")

	// 10. Initialize Matches module
	log.Println("\n💞 Step 10: Initializing Matches module...")
	matchesRepo := matches.NewPostgresRepository(db)
	matchesService := matches.NewService(matchesRepo, usersService, ideasService, engine, redisClient, cfg)
	matchesHandler := matches.NewHandler(matchesService)
	log.Println("✅ Matches module initialized")

	// 11. Start background scheduler
	if cfg.EnableScheduler {
		log.Println("\n⏰ Step 11: Starting background scheduler...")
		scheduler := matches.NewScheduler(matchesService)
		scheduler.Start(context.Background())
		log.Println("✅ Scheduler started")
	} else {
		log.Println("\n⏰ Step 11: Scheduler disabled by configuration")
	}

	// 12. Setup routes
	log.Println("\n🛣️  Step 12: Setting up routes...")
	router := mux.NewRouter()

	// Health check and metrics
	router.HandleFunc("/health", healthCheck).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Users module routes live on a chi router mounted under the API prefix
	usersRouter := chi.NewRouter()
	users.RegisterRoutes(usersRouter, usersHandler, authMiddleware)
	router.PathPrefix("/api/v1/profile").Handler(usersRouter)
	router.PathPrefix("/api/v1/users").Handler(usersRouter)
	log.Println("   ✅ Users routes registered")

	dateideas.RegisterRoutes(router, ideasHandler, authMiddleware)
	log.Println("   ✅ Date Ideas routes registered")

	matches.RegisterRoutes(router, matchesHandler, authMiddleware)
	log.Println("   ✅ Matches routes registered")

	// Add middleware
	router.Use(loggingMiddleware)
	router.Use(corsMiddleware)

	// 13. Create and start HTTP server
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Println("\n========================================")
		log.Printf("🚀 Server starting on http://localhost%s", srv.Addr)
		log.Printf("🌍 Environment: %s", cfg.Environment)
		log.Println("========================================")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("❌ Failed to start server:", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("\n⚠️  Shutdown signal received...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("❌ Server forced to shutdown:", err)
	}

	log.Println("✅ Server exited gracefully")
}

// healthCheck returns server health status
func healthCheck(w http.ResponseWriter, r *http.Request) {
	utils.RespondWithData(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// loggingMiddleware logs all requests
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		log.Printf("→ %s %s from %s", r.Method, r.RequestURI, r.RemoteAddr)

		wrapped := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapped, r)

		duration := time.Since(start)
		log.Printf("← %s %s [%d] %v", r.Method, r.RequestURI, wrapped.statusCode, duration)
	})
}

// responseWriter wraps http.ResponseWriter to capture status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

// corsMiddleware handles CORS
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}
