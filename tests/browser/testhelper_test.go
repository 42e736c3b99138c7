package browser_test

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"

	_ "modernc.org/sqlite"

	"fitfront/internal/adapters/email"
	web "fitfront/internal/adapters/http"
	"fitfront/internal/adapters/http/middleware"
	"fitfront/internal/adapters/http/perf"
	"fitfront/internal/adapters/storage"
	"fitfront/internal/adapters/storage/cache"
	"fitfront/internal/adapters/upstream"
)

// testApp holds the running test server, the fake upstream, and the
// Playwright handles.
type testApp struct {
	BaseURL  string
	Upstream *httptest.Server
	DB       *sql.DB
	Server   *http.Server
	PW       *playwright.Playwright
	Browser  playwright.Browser
}

// fakeUpstreamHandler answers like the legacy REST service: bearer-token
// login, plain JSON arrays for collections, and a status envelope for
// mutations.
func fakeUpstreamHandler() http.Handler {
	products := []map[string]any{
		{"id": "p1", "name": "Resistance Band", "description": "Light resistance band", "price": "12.50", "stock": 8},
		{"id": "p2", "name": "Kettlebell 16kg", "description": "Cast iron kettlebell", "price": "45.00", "stock": 3},
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		if r.Method == http.MethodPost && r.URL.Path == "/auth/login" {
			var creds struct{ Email, Password string }
			json.NewDecoder(r.Body).Decode(&creds)
			if creds.Password != "TestPass123!" {
				w.WriteHeader(http.StatusUnauthorized)
				json.NewEncoder(w).Encode(map[string]string{"message": "bad credentials"})
				return
			}
			role := "user"
			if strings.HasPrefix(creds.Email, "admin@") {
				role = "admin"
			}
			json.NewEncoder(w).Encode(map[string]string{
				"token": "tok-browser", "name": "Ada Operator", "email": creds.Email, "role": role,
			})
			return
		}

		if r.Method == http.MethodPost {
			json.NewEncoder(w).Encode(map[string]string{"status": "success"})
			return
		}

		switch {
		case r.URL.Path == "/products" || r.URL.Path == "/admin/products":
			json.NewEncoder(w).Encode(products)
		case strings.HasPrefix(r.URL.Path, "/products/"):
			id := strings.TrimPrefix(r.URL.Path, "/products/")
			for _, p := range products {
				if p["id"] == id {
					json.NewEncoder(w).Encode(p)
					return
				}
			}
			w.WriteHeader(http.StatusNotFound)
			json.NewEncoder(w).Encode(map[string]string{"message": "not found"})
		default:
			// Every other collection is empty.
			json.NewEncoder(w).Encode([]any{})
		}
	})
}

// newTestApp starts the fake upstream, a temp cache DB, the app server, and
// Playwright.
func newTestApp(t *testing.T) *testApp {
	t.Helper()

	fakeUpstream := httptest.NewServer(fakeUpstreamHandler())
	t.Cleanup(fakeUpstream.Close)

	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")
	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(ON)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		t.Fatalf("failed to open test DB: %v", err)
	}
	if err := storage.InitDB(db); err != nil {
		t.Fatalf("failed to init cache schema: %v", err)
	}

	collector := perf.NewCollector(1000)
	client := upstream.NewClient(fakeUpstream.URL, 5*time.Second).WithCollector(collector)
	backends := &web.Backends{
		Fetcher:   client,
		Mutator:   client,
		Auth:      client,
		Uploader:  client,
		Canceller: client,
		Cache:     cache.NewSQLiteStore(storage.NewTimedDB(db, collector)),
		Email:     email.NewNoopSender(),
	}

	// Find a free port
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("failed to find free port: %v", err)
	}
	port := listener.Addr().(*net.TCPAddr).Port
	listener.Close()

	// Change to project root so relative template/static paths work
	projectRoot := findProjectRoot(t)
	origDir, _ := os.Getwd()
	if err := os.Chdir(projectRoot); err != nil {
		t.Fatalf("failed to chdir to project root: %v", err)
	}
	t.Cleanup(func() { os.Chdir(origDir) })

	// Add test port to CSRF trusted origins before creating mux
	middleware.ExtraTrustedOrigins = append(middleware.ExtraTrustedOrigins,
		fmt.Sprintf("127.0.0.1:%d", port),
		fmt.Sprintf("localhost:%d", port),
	)

	web.RateLimitPerSecond = 1000
	mux := web.NewMux("static", backends, collector)
	srv := &http.Server{
		Addr:    fmt.Sprintf("127.0.0.1:%d", port),
		Handler: mux,
	}
	go func() {
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("test server error: %v", err)
		}
	}()

	// Wait for server to be ready
	baseURL := fmt.Sprintf("http://127.0.0.1:%d", port)
	for i := 0; i < 50; i++ {
		resp, err := http.Get(baseURL + "/login")
		if err == nil {
			resp.Body.Close()
			break
		}
		time.Sleep(100 * time.Millisecond)
	}

	pw, err := playwright.Run()
	if err != nil {
		t.Fatalf("failed to start Playwright: %v", err)
	}
	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(true),
	})
	if err != nil {
		t.Fatalf("failed to launch browser: %v", err)
	}

	app := &testApp{
		BaseURL:  baseURL,
		Upstream: fakeUpstream,
		DB:       db,
		Server:   srv,
		PW:       pw,
		Browser:  browser,
	}

	t.Cleanup(func() {
		browser.Close()
		pw.Stop()
		srv.Close()
		db.Close()
	})

	return app
}

// newPage creates a new browser page (tab).
func (a *testApp) newPage(t *testing.T) playwright.Page {
	t.Helper()
	page, err := a.Browser.NewPage()
	if err != nil {
		t.Fatalf("failed to create page: %v", err)
	}
	t.Cleanup(func() { page.Close() })
	return page
}

// adminLogin navigates to the back-office login page and logs in.
func (a *testApp) adminLogin(t *testing.T, page playwright.Page) {
	t.Helper()
	if _, err := page.Goto(a.BaseURL + "/admin/login"); err != nil {
		t.Fatalf("failed to navigate to admin login: %v", err)
	}
	if err := page.Locator("input[name=Email]").Fill("admin@test.com"); err != nil {
		t.Fatalf("failed to fill email: %v", err)
	}
	if err := page.Locator("input[name=Password]").Fill("TestPass123!"); err != nil {
		t.Fatalf("failed to fill password: %v", err)
	}
	if err := page.Locator("button[type=submit]").Click(); err != nil {
		t.Fatalf("failed to click login: %v", err)
	}
	if err := page.WaitForURL(a.BaseURL+"/admin", playwright.PageWaitForURLOptions{
		Timeout: playwright.Float(10000),
	}); err != nil {
		t.Fatalf("login did not redirect to the dashboard: %v", err)
	}
}

// findProjectRoot walks up from the working directory to find the project root (contains go.mod).
func findProjectRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("could not find project root (go.mod) from working directory")
		}
		dir = parent
	}
}
