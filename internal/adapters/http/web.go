package web

import (
	"crypto/rand"
	"encoding/hex"
	"log"
	"net/http"
	"os"
	"time"

	"fitfront/internal/adapters/email"
	"fitfront/internal/adapters/http/middleware"
	"fitfront/internal/adapters/http/perf"
	"fitfront/internal/adapters/storage/cache"
	"fitfront/internal/application/orchestrators"
	"fitfront/internal/application/projections"
)

// Backends holds every outward dependency the handlers use: the upstream
// client in its various capacities, the local cache, and the email sender.
// One *upstream.Client satisfies Fetcher, Mutator, Auth, Uploader, and
// Canceller at once; tests substitute narrower fakes.
type Backends struct {
	Fetcher   projections.Fetcher
	Mutator   orchestrators.Mutator
	Auth      orchestrators.Authenticator
	Uploader  orchestrators.Uploader
	Canceller orchestrators.CourseRequestCanceller
	Cache     cache.Store
	Email     email.Sender
}

// loadCSRFKey reads the CSRF secret from FITFRONT_CSRF_KEY (hex-encoded, 32 bytes).
// In production, the key MUST be set. In development, a random key is generated per startup.
func loadCSRFKey() []byte {
	if keyHex := os.Getenv("FITFRONT_CSRF_KEY"); keyHex != "" {
		key, err := hex.DecodeString(keyHex)
		if err != nil || len(key) != 32 {
			log.Fatal("FITFRONT_CSRF_KEY must be 64 hex characters (32 bytes)")
		}
		return key
	}
	if os.Getenv("FITFRONT_ENV") == "production" {
		log.Fatal("FITFRONT_CSRF_KEY is required in production")
	}
	key := make([]byte, 32)
	if _, err := rand.Read(key); err != nil {
		log.Fatalf("failed to generate CSRF key: %v", err)
	}
	log.Println("WARNING: using random CSRF key (sessions won't survive restart). Set FITFRONT_CSRF_KEY for production.")
	return key
}

// Global backends instance (set by NewMux)
var backends *Backends

// Global session store instance
var sessions *middleware.SessionStore

// RateLimitPerSecond controls the per-IP rate limit. Tests can increase this.
var RateLimitPerSecond = 10

// Global perf collector (set by NewMux)
var perfCollector *perf.Collector

// adminNotifyAddress receives a copy of booking and intake notifications.
var adminNotifyAddress string

// SetAdminNotifyAddress sets the address admin notifications are sent to.
// An empty address disables them.
func SetAdminNotifyAddress(addr string) {
	adminNotifyAddress = addr
}

// NewMux wires HTTP handlers for the app.
func NewMux(staticDir string, b *Backends, collector *perf.Collector) http.Handler {
	backends = b
	perfCollector = collector
	sessions = middleware.NewSessionStore()
	middleware.SecureCookies = os.Getenv("FITFRONT_ENV") == "production"

	mux := http.NewServeMux()
	mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.Dir(staticDir))))
	registerRoutes(mux)

	// CSRF key: 32-byte hex-encoded secret from env var
	csrfKey := loadCSRFKey()

	// Rate limiter: configurable requests per second per IP (OWASP A04)
	limiter := middleware.NewRateLimiter(RateLimitPerSecond, time.Second)

	// Apply middleware: Timing -> RateLimit -> Auth -> CSRF -> SecurityHeaders -> Mux
	return middleware.Chain(mux,
		middleware.SecurityHeaders,
		middleware.CSRF(csrfKey),
		middleware.Auth(sessions),
		middleware.RateLimit(limiter),
		middleware.Timing(collector),
	)
}
