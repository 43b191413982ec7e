package render

import (
	"html/template"
	"io/fs"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/saunastroy/site/web"
)

func testRenderer(t *testing.T) *Renderer {
	t.Helper()

	templatesFS, err := fs.Sub(web.Templates, "templates")
	if err != nil {
		t.Fatalf("fs.Sub: %v", err)
	}
	r, err := New(Config{TemplatesFS: templatesFS, IsDev: true})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return r
}

func TestFormatRubles(t *testing.T) {
	if got := FormatRubles(500); got != "500 ₽" {
		t.Errorf("FormatRubles(500) = %q, want %q", got, "500 ₽")
	}

	// Large amounts get a digit group separator.
	got := FormatRubles(450000)
	if got == "450000 ₽" {
		t.Errorf("FormatRubles(450000) = %q, expected grouped digits", got)
	}
	if !strings.HasPrefix(got, "450") || !strings.HasSuffix(got, "000 ₽") {
		t.Errorf("FormatRubles(450000) = %q", got)
	}
}

func TestNl2br(t *testing.T) {
	r := testRenderer(t)
	f := r.templateFuncs()["nl2br"].(func(string) template.HTML)

	got := f("первая\nвторая")
	if got != template.HTML("первая<br>вторая") {
		t.Errorf("nl2br = %q", got)
	}

	// HTML in the input must be escaped before the break conversion.
	got = f("<script>\nтекст")
	if strings.Contains(string(got), "<script>") {
		t.Errorf("nl2br did not escape input: %q", got)
	}
	if !strings.Contains(string(got), "<br>") {
		t.Errorf("nl2br dropped the line break: %q", got)
	}
}

func TestMarkdownFunc(t *testing.T) {
	r := testRenderer(t)
	f := r.templateFuncs()["markdown"].(func(string) template.HTML)

	got := string(f("**жарко**"))
	if !strings.Contains(got, "<strong>жарко</strong>") {
		t.Errorf("markdown output = %q", got)
	}
}

func TestTruncate(t *testing.T) {
	r := testRenderer(t)
	f := r.templateFuncs()["truncate"].(func(string, int) string)

	if got := f("баня под ключ", 4); got != "баня..." {
		t.Errorf("truncate = %q, want %q", got, "баня...")
	}
	if got := f("сруб", 10); got != "сруб" {
		t.Errorf("truncate short = %q, want unchanged", got)
	}
}

func TestFormatDate(t *testing.T) {
	r := testRenderer(t)
	funcs := r.templateFuncs()

	ts := time.Date(2026, 2, 14, 9, 5, 0, 0, time.UTC)
	if got := funcs["formatDate"].(func(time.Time) string)(ts); got != "14.02.2026" {
		t.Errorf("formatDate = %q", got)
	}
	if got := funcs["formatDateTime"].(func(time.Time) string)(ts); got != "14.02.2026 09:05" {
		t.Errorf("formatDateTime = %q", got)
	}
}

func TestRenderFrontendPage(t *testing.T) {
	r := testRenderer(t)

	req := httptest.NewRequest(http.MethodGet, "/missing", nil)
	rec := httptest.NewRecorder()

	err := r.RenderStatus(rec, req, "frontend/notfound", http.StatusNotFound, TemplateData{
		Title: "Страница не найдена",
	})
	if err != nil {
		t.Fatalf("RenderStatus: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "text/html; charset=utf-8" {
		t.Errorf("content type = %q", ct)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Страница не найдена") {
		t.Errorf("body missing page title:\n%s", body)
	}
	year := time.Now().Format("2006")
	if !strings.Contains(body, year) {
		t.Errorf("body missing current year %s", year)
	}
}

func TestRenderUnknownTemplate(t *testing.T) {
	r := testRenderer(t)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	if err := r.Render(rec, req, "frontend/nope", TemplateData{}); err == nil {
		t.Fatal("expected error for unknown template")
	}
}
