package handler

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/saunastroy/site/internal/captcha"
	"github.com/saunastroy/site/internal/store"
)

func getBody(t *testing.T, client *http.Client, target string, wantStatus int) string {
	t.Helper()

	resp, err := client.Get(target)
	if err != nil {
		t.Fatalf("GET %s: %v", target, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != wantStatus {
		t.Fatalf("GET %s status = %d, want %d", target, resp.StatusCode, wantStatus)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	return string(body)
}

func TestFrontendPages(t *testing.T) {
	app := newTestApp(t, captcha.Static{Pass: true, On: true})
	productID := app.seedProduct(t, "Баня 6x4", 850000, true)
	app.seedProduct(t, "Сауна 3x3", 450000, false)

	srv, client := newBrowser(t, app)

	t.Run("home shows featured products", func(t *testing.T) {
		body := getBody(t, client, srv.URL+"/", http.StatusOK)
		if !strings.Contains(body, "Баня 6x4") {
			t.Error("featured product missing from home page")
		}
		if strings.Contains(body, "Сауна 3x3") {
			t.Error("non-featured product should not be on the home page")
		}
	})

	t.Run("catalog lists everything", func(t *testing.T) {
		body := getBody(t, client, srv.URL+"/catalog", http.StatusOK)
		for _, title := range []string{"Баня 6x4", "Сауна 3x3"} {
			if !strings.Contains(body, title) {
				t.Errorf("catalog missing %q", title)
			}
		}
	})

	t.Run("product detail", func(t *testing.T) {
		body := getBody(t, client, fmt.Sprintf("%s/catalog/%d", srv.URL, productID), http.StatusOK)
		if !strings.Contains(body, "Баня 6x4") {
			t.Error("product page missing title")
		}
	})

	t.Run("missing product is 404", func(t *testing.T) {
		getBody(t, client, srv.URL+"/catalog/99999", http.StatusNotFound)
	})

	t.Run("bad product id is 404", func(t *testing.T) {
		getBody(t, client, srv.URL+"/catalog/abc", http.StatusNotFound)
	})

	t.Run("unknown path is 404", func(t *testing.T) {
		body := getBody(t, client, srv.URL+"/no-such-page", http.StatusNotFound)
		if !strings.Contains(body, "Страница не найдена") {
			t.Error("404 page missing message")
		}
	})

	t.Run("static pages respond", func(t *testing.T) {
		for _, path := range []string{"/additional-services", "/works", "/about", "/contact"} {
			getBody(t, client, srv.URL+path, http.StatusOK)
		}
	})
}

func TestFrontendSEO(t *testing.T) {
	app := newTestApp(t, captcha.Static{Pass: true, On: true})
	productID := app.seedProduct(t, "Баня 6x4", 850000, true)

	srv, client := newBrowser(t, app)

	t.Run("sitemap lists products", func(t *testing.T) {
		body := getBody(t, client, srv.URL+"/sitemap.xml", http.StatusOK)
		if !strings.Contains(body, "<urlset") {
			t.Error("sitemap missing urlset element")
		}
		want := fmt.Sprintf("http://localhost:8080/catalog/%d", productID)
		if !strings.Contains(body, want) {
			t.Errorf("sitemap missing product URL %s", want)
		}
	})

	t.Run("dev robots disallows everything", func(t *testing.T) {
		body := getBody(t, client, srv.URL+"/robots.txt", http.StatusOK)
		if !strings.Contains(body, "Disallow: /") {
			t.Errorf("robots.txt = %q", body)
		}
	})
}

func TestFrontendCompanyPagesWithData(t *testing.T) {
	app := newTestApp(t, captcha.Static{Pass: true, On: true})

	if _, err := app.queries.CreateCompanyInfo(context.Background(), store.CreateCompanyInfoParams{
		Description: "Строим бани под ключ с 2010 года.",
		Phone:       "+7 900 000-00-00",
		Email:       "info@example.com",
		Address:     "г. Киров, ул. Лесная, 1",
	}); err != nil {
		t.Fatalf("CreateCompanyInfo: %v", err)
	}

	srv, client := newBrowser(t, app)

	body := getBody(t, client, srv.URL+"/about", http.StatusOK)
	if !strings.Contains(body, "Строим бани под ключ") {
		t.Error("about page missing company description")
	}

	body = getBody(t, client, srv.URL+"/contact", http.StatusOK)
	if !strings.Contains(body, "+7 900 000-00-00") {
		t.Error("contact page missing phone")
	}
}

func TestStaticAssets(t *testing.T) {
	app := newTestApp(t, captcha.Static{Pass: true, On: true})
	srv, client := newBrowser(t, app)

	resp, err := client.Get(srv.URL + "/static/css/site.css")
	if err != nil {
		t.Fatalf("GET static: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("static asset status = %d", resp.StatusCode)
	}
	if cc := resp.Header.Get("Cache-Control"); !strings.Contains(cc, "max-age=86400") {
		t.Errorf("Cache-Control = %q", cc)
	}
}
