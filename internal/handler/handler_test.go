package handler

import (
	"context"
	"io/fs"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/saunastroy/site/internal/auth"
	"github.com/saunastroy/site/internal/cache"
	"github.com/saunastroy/site/internal/captcha"
	"github.com/saunastroy/site/internal/catalog"
	"github.com/saunastroy/site/internal/lead"
	"github.com/saunastroy/site/internal/media"
	"github.com/saunastroy/site/internal/middleware"
	"github.com/saunastroy/site/internal/render"
	"github.com/saunastroy/site/internal/session"
	"github.com/saunastroy/site/internal/store"
	"github.com/saunastroy/site/internal/testutil"
	"github.com/saunastroy/site/web"
)

const (
	testAdminEmail    = "admin@example.com"
	testAdminPassword = "correct horse battery"

	// hCaptcha's published integration-test site key.
	testCaptchaSiteKey = "10000000-ffff-ffff-ffff-000000000001"
)

// testApp bundles a fully wired router with direct access to the store.
type testApp struct {
	handler http.Handler
	queries *store.Queries
}

// newTestApp wires the router the same way main does, with a memory cache
// and the given captcha verifier. The widget site key is set whenever the
// verifier is enabled, mirroring production wiring.
func newTestApp(t *testing.T, verifier captcha.Verifier) *testApp {
	t.Helper()

	captchaSiteKey := ""
	if verifier.Enabled() {
		captchaSiteKey = testCaptchaSiteKey
	}

	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	queries := store.New(db)
	logger := testutil.TestLogger()
	cacher := cache.NewSimpleMemoryCache(time.Minute)
	t.Cleanup(func() { _ = cacher.Close() })

	sessionManager := session.New(db, true)

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("fs.Sub: %v", err)
	}
	renderer, err := render.New(render.Config{
		TemplatesFS:    templatesFS,
		SessionManager: sessionManager,
		IsDev:          true,
	})
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	uploadsDir := t.TempDir()
	catalogService := catalog.NewService(queries, cacher)

	router := NewRouter(RouterConfig{
		Frontend: NewFrontendHandler(FrontendConfig{
			Catalog:        catalogService,
			Renderer:       renderer,
			FeaturedLimit:  6,
			SiteURL:        "http://localhost:8080",
			CaptchaSiteKey: captchaSiteKey,
			IsDev:          true,
			Logger:         logger,
		}),
		Leads:          NewLeadHandler(lead.NewService(queries, verifier, logger), renderer, captchaSiteKey, logger),
		Auth:           NewAuthHandler(auth.NewAuthenticator(queries, logger), renderer, sessionManager, logger),
		Admin:          NewAdminHandler(catalogService, queries, renderer, media.NewStore(uploadsDir), logger),
		SessionManager: sessionManager,
		DB:             db,
		LeadLimiter:    middleware.NewLeadRateLimiter(600, 100),
		CSRFKey:        []byte("0123456789abcdef0123456789abcdef"),
		IsDev:          true,
		StaticFS:       web.Static,
		UploadsDir:     uploadsDir,
	})

	return &testApp{handler: router, queries: queries}
}

// seedProduct inserts a product and returns it.
func (app *testApp) seedProduct(t *testing.T, title string, price int64, featured bool) int64 {
	t.Helper()

	p, err := app.queries.CreateProduct(context.Background(), store.CreateProductParams{
		Title:       title,
		Price:       price,
		Description: "Сруб из бревна, парная и комната отдыха.",
		IsFeatured:  featured,
	})
	if err != nil {
		t.Fatalf("CreateProduct: %v", err)
	}
	return p.ID
}

// seedAdmin creates the admin account used by login flows.
func (app *testApp) seedAdmin(t *testing.T) {
	t.Helper()

	hash, err := auth.HashPassword(testAdminPassword)
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}
	if _, err := app.queries.CreateAdminUser(context.Background(), store.CreateAdminUserParams{
		Email:        testAdminEmail,
		PasswordHash: hash,
		Name:         "Администратор",
	}); err != nil {
		t.Fatalf("CreateAdminUser: %v", err)
	}
}

// newBrowser starts a test server around the app and returns a client with
// a cookie jar that does not follow redirects.
func newBrowser(t *testing.T, app *testApp) (*httptest.Server, *http.Client) {
	t.Helper()

	srv := httptest.NewServer(app.handler)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("cookiejar.New: %v", err)
	}
	client := &http.Client{
		Jar: jar,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
	return srv, client
}

// login authenticates the client as the seeded admin.
func login(t *testing.T, client *http.Client, baseURL string) {
	t.Helper()

	resp, err := client.PostForm(baseURL+"/admin/login", url.Values{
		"email":    {testAdminEmail},
		"password": {testAdminPassword},
	})
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusSeeOther {
		t.Fatalf("login status = %d, want 303", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/admin" {
		t.Fatalf("login redirect = %q, want /admin", loc)
	}
}
