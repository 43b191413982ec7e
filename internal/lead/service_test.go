package lead

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/saunastroy/site/internal/captcha"
	"github.com/saunastroy/site/internal/model"
	"github.com/saunastroy/site/internal/store"
	"github.com/saunastroy/site/internal/testutil"
)

func testService(t *testing.T) (*Service, *store.Queries) {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)

	q := store.New(db)
	svc := NewService(q, captcha.Static{Pass: true, On: true}, testutil.TestLogger())
	return svc, q
}

func TestValidPhone(t *testing.T) {
	tests := []struct {
		phone string
		want  bool
	}{
		{"+79001234567", true},
		{"89001234567", true},
		{"8 (900) 123-45-67", true},
		{"+7 900 123 45 67", true},
		{"79001234567", true},
		{"", false},
		{"12345", false},
		{"+19001234567", false},     // not a Russian prefix
		{"9001234567", false},       // must start with 7 or 8
		{"+7900123", false},         // too short
		{"8900123456789012345", false}, // too long
		{"+7900abc4567", false},     // letters
	}
	for _, tt := range tests {
		if got := validPhone(tt.phone); got != tt.want {
			t.Errorf("validPhone(%q) = %v, want %v", tt.phone, got, tt.want)
		}
	}
}

func TestValidFIO(t *testing.T) {
	tests := []struct {
		fio  string
		want bool
	}{
		{"Иван", true},
		{"Ли", false}, // two runes
		{"Иво", true}, // three runes, Cyrillic counts by rune not byte
		{"  а  ", false},
		{"", false},
		{"   ", false},
	}
	for _, tt := range tests {
		if got := validFIO(tt.fio); got != tt.want {
			t.Errorf("validFIO(%q) = %v, want %v", tt.fio, got, tt.want)
		}
	}
}

func TestOrderInput_Validate_AllFailuresReported(t *testing.T) {
	in := OrderInput{
		FIO:   "Ив",
		Phone: "12345",
		Email: "not-an-email",
	}

	errs := in.Validate()
	if errs == nil {
		t.Fatal("expected validation errors")
	}
	for _, field := range []string{"fio", "phone", "email"} {
		if _, ok := errs[field]; !ok {
			t.Errorf("missing validation error for %q, got %v", field, errs)
		}
	}
	if len(errs) != 3 {
		t.Errorf("got %d errors, want 3: %v", len(errs), errs)
	}
}

func TestOrderInput_Validate_MessageBound(t *testing.T) {
	in := OrderInput{
		FIO:     "Иван Петров",
		Phone:   "+79001234567",
		Email:   "ivan@example.com",
		Message: strings.Repeat("ж", 1001),
	}
	errs := in.Validate()
	if errs == nil || errs["message"] == "" {
		t.Fatalf("expected message length error, got %v", errs)
	}

	in.Message = strings.Repeat("ж", 1000)
	if errs := in.Validate(); errs != nil {
		t.Errorf("1000-rune message should pass, got %v", errs)
	}
}

func TestSubmitOrder_PersistsNothingOnFailure(t *testing.T) {
	svc, q := testService(t)
	ctx := context.Background()

	_, err := svc.SubmitOrder(ctx, OrderInput{FIO: "Ив", Phone: "bad", Email: "bad"})
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}

	requests, err := q.ListOrderRequests(ctx)
	if err != nil {
		t.Fatalf("ListOrderRequests: %v", err)
	}
	if len(requests) != 0 {
		t.Errorf("rejected submission must not be persisted, found %d rows", len(requests))
	}
}

func TestSubmitOrder_EndToEnd(t *testing.T) {
	svc, q := testService(t)
	ctx := context.Background()

	req, err := svc.SubmitOrder(ctx, OrderInput{
		FIO:          "  Иван Петрович Сидоров  ",
		Phone:        "8 (912) 345-67-89",
		Email:        "ivan@example.com",
		Message:      "Хочу баню к лету",
		OrderDetails: "Баня 6x6, опции: Печь Harvia, Вагонка липа",
		CaptchaToken: "token",
	})
	if err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}

	if req.FIO != "Иван Петрович Сидоров" {
		t.Errorf("FIO = %q, want trimmed value", req.FIO)
	}
	if req.OrderDetails != "Баня 6x6, опции: Печь Harvia, Вагонка липа" {
		t.Errorf("OrderDetails = %q, want it intact", req.OrderDetails)
	}

	stored, err := q.GetOrderRequestByID(ctx, req.ID)
	if err != nil {
		t.Fatalf("GetOrderRequestByID: %v", err)
	}
	if stored.Phone != "8 (912) 345-67-89" {
		t.Errorf("stored phone = %q", stored.Phone)
	}
}

func TestSubmitOrder_SanitizesMarkup(t *testing.T) {
	svc, _ := testService(t)

	req, err := svc.SubmitOrder(context.Background(), OrderInput{
		FIO:          "Иван Петров",
		Phone:        "+79001234567",
		Email:        "ivan@example.com",
		Message:      `Хочу баню <script>alert("x")</script>`,
		OrderDetails: `<b>Баня 6x4</b>`,
	})
	if err != nil {
		t.Fatalf("SubmitOrder: %v", err)
	}
	if strings.Contains(req.Message, "<script>") {
		t.Errorf("message not sanitized: %q", req.Message)
	}
	if strings.Contains(req.OrderDetails, "<b>") {
		t.Errorf("order details not sanitized: %q", req.OrderDetails)
	}
	if !strings.Contains(req.OrderDetails, "Баня 6x4") {
		t.Errorf("sanitizer dropped the text content: %q", req.OrderDetails)
	}
}

func TestSubmitOrder_CaptchaRejection(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	t.Cleanup(cleanup)
	q := store.New(db)
	svc := NewService(q, captcha.Static{Pass: false, On: true}, testutil.TestLogger())
	ctx := context.Background()

	_, err := svc.SubmitOrder(ctx, OrderInput{
		FIO:   "Иван Петров",
		Phone: "+79001234567",
		Email: "ivan@example.com",
	})
	if !errors.Is(err, ErrCaptcha) {
		t.Fatalf("expected ErrCaptcha, got %v", err)
	}

	requests, err := q.ListOrderRequests(ctx)
	if err != nil {
		t.Fatalf("ListOrderRequests: %v", err)
	}
	if len(requests) != 0 {
		t.Error("captcha-rejected submission must not be persisted")
	}
}

func TestSubmitCreditRequest(t *testing.T) {
	svc, q := testService(t)
	ctx := context.Background()

	req, err := svc.SubmitCreditRequest(ctx, CreditInput{
		FIO:   "Мария Иванова",
		Phone: "+79219876543",
	})
	if err != nil {
		t.Fatalf("SubmitCreditRequest: %v", err)
	}
	if req.Status != model.CreditStatusNew {
		t.Errorf("Status = %q, want %q", req.Status, model.CreditStatusNew)
	}

	list, err := q.ListCreditRequests(ctx)
	if err != nil {
		t.Fatalf("ListCreditRequests: %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d credit requests, want 1", len(list))
	}
}

func TestSubmitCreditRequest_Validation(t *testing.T) {
	svc, _ := testService(t)

	_, err := svc.SubmitCreditRequest(context.Background(), CreditInput{
		FIO:   "М",
		Phone: "123",
	})
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %v", err)
	}
	if len(verrs) != 2 {
		t.Errorf("got %d errors, want 2: %v", len(verrs), verrs)
	}
}
