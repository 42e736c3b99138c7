package main

import (
	"database/sql"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"

	emailPkg "fitfront/internal/adapters/email"
	web "fitfront/internal/adapters/http"
	"fitfront/internal/adapters/http/perf"
	"fitfront/internal/adapters/storage"
	"fitfront/internal/adapters/storage/cache"
	"fitfront/internal/adapters/upstream"
)

// version is set at build time via -ldflags "-X main.version=..."
var version = "dev"

func main() {
	// .env is optional; real deployments set the environment directly.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded .env")
	}

	// Local cache database with WAL mode and a busy timeout
	dbPath := envOrDefault("FITFRONT_CACHE_DB", "fitfront.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)&_pragma=synchronous(NORMAL)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		log.Fatalf("failed to open cache database: %v", err)
	}
	defer db.Close()

	// Connection pool settings for WAL mode
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(25)

	if err := db.Ping(); err != nil {
		log.Fatalf("cache database unreachable: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		log.Fatalf("failed to initialize cache schema: %v", err)
	}

	// Performance instrumentation: wrap DB with timing, create collector
	collector := perf.NewCollector(perf.DefaultRingSize)
	timedDB := storage.NewTimedDB(db, collector)
	store := cache.NewSQLiteStore(timedDB)

	// Upstream REST client; every page load and mutation goes through it.
	upstreamBase := envOrDefault("FITFRONT_UPSTREAM_URL", "http://localhost:3000")
	upstreamTimeout := 10 * time.Second
	if v := os.Getenv("FITFRONT_UPSTREAM_TIMEOUT_MS"); v != "" {
		if d, err := time.ParseDuration(v + "ms"); err == nil && d > 0 {
			upstreamTimeout = d
		}
	}
	client := upstream.NewClient(upstreamBase, upstreamTimeout).WithCollector(collector)
	log.Printf("Upstream configured: %s (timeout %s)", upstreamBase, upstreamTimeout)

	// Configure email sender
	resendKey := os.Getenv("FITFRONT_RESEND_KEY")
	emailFrom := envOrDefault("FITFRONT_RESEND_FROM", "FitFront <noreply@fitfront.app>")
	var sender emailPkg.Sender
	if resendKey != "" {
		sender = emailPkg.NewResendSender(resendKey, emailFrom)
		log.Println("Email sender configured (Resend)")
	} else {
		sender = emailPkg.NewNoopSender()
		if os.Getenv("FITFRONT_ENV") == "production" {
			log.Println("WARNING: FITFRONT_RESEND_KEY is not set, email delivery is DISABLED in production")
		} else {
			log.Println("Email sender configured (noop, set FITFRONT_RESEND_KEY for real delivery)")
		}
	}
	web.SetAdminNotifyAddress(os.Getenv("FITFRONT_ADMIN_NOTIFY"))

	backends := &web.Backends{
		Fetcher:   client,
		Mutator:   client,
		Auth:      client,
		Uploader:  client,
		Canceller: client,
		Cache:     store,
		Email:     sender,
	}

	mux := web.NewMux(envOrDefault("FITFRONT_STATIC_DIR", "static"), backends, collector)

	addr := envOrDefault("FITFRONT_ADDR", ":8080")
	log.Printf("FitFront %s starting on %s (env=%s)", version, addr, envOrDefault("FITFRONT_ENV", "development"))

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
