// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/saunastroy/site/internal/captcha"
	"github.com/saunastroy/site/internal/lead"
	"github.com/saunastroy/site/internal/render"
)

// LeadHandler serves the order and credit-request forms.
type LeadHandler struct {
	leads          *lead.Service
	renderer       *render.Renderer
	captchaSiteKey string
	logger         *slog.Logger
}

// NewLeadHandler creates a LeadHandler. captchaSiteKey is empty when
// hCaptcha is disabled, which omits the widget from the forms.
func NewLeadHandler(leads *lead.Service, renderer *render.Renderer, captchaSiteKey string, logger *slog.Logger) *LeadHandler {
	return &LeadHandler{leads: leads, renderer: renderer, captchaSiteKey: captchaSiteKey, logger: logger}
}

// OrderForm renders the order form. The product calculator links here with
// a prefilled details parameter.
func (h *LeadHandler) OrderForm(w http.ResponseWriter, r *http.Request) {
	form := map[string]string{
		"details": r.URL.Query().Get("details"),
	}

	if err := h.renderer.Render(w, r, "frontend/order", render.TemplateData{
		Title:          "Оформление заказа",
		Form:           form,
		CaptchaSiteKey: h.captchaSiteKey,
	}); err != nil {
		serverError(w, h.logger, "rendering order form", err)
	}
}

// OrderSubmit accepts the order form. Validation failures re-render the
// form with field errors and the submitted values intact.
func (h *LeadHandler) OrderSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректные данные формы", http.StatusBadRequest)
		return
	}

	in := lead.OrderInput{
		FIO:          r.FormValue("fio"),
		Phone:        r.FormValue("phone"),
		Email:        r.FormValue("email"),
		Message:      r.FormValue("message"),
		OrderDetails: r.FormValue("details"),
		CaptchaToken: captcha.TokenFromForm(r),
		RemoteIP:     captcha.RemoteIP(r),
	}

	_, err := h.leads.SubmitOrder(r.Context(), in)
	if err == nil {
		http.Redirect(w, r, redirectOrderOK, http.StatusSeeOther)
		return
	}

	var verr lead.ValidationErrors
	switch {
	case errors.As(err, &verr):
		h.rerenderOrder(w, r, in, verr)
	case errors.Is(err, lead.ErrCaptcha):
		h.rerenderOrder(w, r, in, lead.ValidationErrors{
			"captcha": "Подтвердите, что вы не робот",
		})
	default:
		serverError(w, h.logger, "submitting order", err)
	}
}

func (h *LeadHandler) rerenderOrder(w http.ResponseWriter, r *http.Request, in lead.OrderInput, errs lead.ValidationErrors) {
	form := map[string]string{
		"fio":     in.FIO,
		"phone":   in.Phone,
		"email":   in.Email,
		"message": in.Message,
		"details": in.OrderDetails,
	}

	if err := h.renderer.RenderStatus(w, r, "frontend/order", http.StatusUnprocessableEntity, render.TemplateData{
		Title:          "Оформление заказа",
		Form:           form,
		Errors:         errs,
		CaptchaSiteKey: h.captchaSiteKey,
	}); err != nil {
		serverError(w, h.logger, "rendering order form", err)
	}
}

// OrderSuccess renders the post-submission thank-you page.
func (h *LeadHandler) OrderSuccess(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "frontend/order_success", render.TemplateData{
		Title: "Заявка отправлена",
	}); err != nil {
		serverError(w, h.logger, "rendering order success", err)
	}
}

// creditResponse is the JSON shape returned to the homepage credit widget.
type creditResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Errors  map[string]string `json:"errors,omitempty"`
}

// CreditSubmit accepts the homepage credit-consultation form over AJAX.
func (h *LeadHandler) CreditSubmit(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, creditResponse{
			Success: false,
			Message: "Некорректные данные формы",
		})
		return
	}

	in := lead.CreditInput{
		FIO:          r.FormValue("fio"),
		Phone:        r.FormValue("phone"),
		CaptchaToken: captcha.TokenFromForm(r),
		RemoteIP:     captcha.RemoteIP(r),
	}

	_, err := h.leads.SubmitCreditRequest(r.Context(), in)
	if err == nil {
		writeJSON(w, http.StatusOK, creditResponse{
			Success: true,
			Message: "Заявка отправлена, мы свяжемся с вами",
		})
		return
	}

	var verr lead.ValidationErrors
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, creditResponse{
			Success: false,
			Errors:  verr,
		})
	case errors.Is(err, lead.ErrCaptcha):
		writeJSON(w, http.StatusUnprocessableEntity, creditResponse{
			Success: false,
			Message: "Подтвердите, что вы не робот",
		})
	default:
		h.logger.Error("submitting credit request", "error", err)
		writeJSON(w, http.StatusInternalServerError, creditResponse{
			Success: false,
			Message: "Внутренняя ошибка сервера",
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
