// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

// Package captcha verifies hCaptcha tokens on lead submissions.
package captcha

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// hCaptcha verification endpoint
	defaultVerifyURL = "https://api.hcaptcha.com/siteverify"
	// Timeout for verification requests
	verifyTimeout = 10 * time.Second
)

// Verifier checks a captcha token for one request. Implementations must treat
// an empty token as a failed check when verification is enabled.
type Verifier interface {
	Verify(ctx context.Context, token, remoteIP string) (bool, error)
	Enabled() bool
}

// siteverifyResponse is the hCaptcha API response.
type siteverifyResponse struct {
	Success     bool      `json:"success"`
	ChallengeTS time.Time `json:"challenge_ts"`
	Hostname    string    `json:"hostname"`
	ErrorCodes  []string  `json:"error-codes"`
}

// HCaptcha verifies tokens against the hCaptcha siteverify API.
type HCaptcha struct {
	siteKey   string
	secretKey string
	verifyURL string
	client    *http.Client
	logger    *slog.Logger
}

// NewHCaptcha creates a verifier. With empty keys verification is disabled
// and every check passes, which keeps local development friction-free.
func NewHCaptcha(siteKey, secretKey string, logger *slog.Logger) *HCaptcha {
	return &HCaptcha{
		siteKey:   siteKey,
		secretKey: secretKey,
		verifyURL: defaultVerifyURL,
		client:    &http.Client{Timeout: verifyTimeout},
		logger:    logger,
	}
}

// Enabled reports whether verification is configured.
func (h *HCaptcha) Enabled() bool {
	return h.siteKey != "" && h.secretKey != ""
}

// SiteKey returns the public site key for widget rendering.
func (h *HCaptcha) SiteKey() string {
	return h.siteKey
}

// Verify checks the token with the hCaptcha API. A network or decode failure
// is returned as an error so the caller can distinguish "rejected" from
// "could not check".
func (h *HCaptcha) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	if !h.Enabled() {
		return true, nil
	}
	if token == "" {
		return false, nil
	}

	data := url.Values{}
	data.Set("secret", h.secretKey)
	data.Set("response", token)
	if remoteIP != "" {
		data.Set("remoteip", remoteIP)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.verifyURL, strings.NewReader(data.Encode()))
	if err != nil {
		return false, fmt.Errorf("building captcha request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := h.client.Do(req)
	if err != nil {
		return false, fmt.Errorf("captcha verification request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	var result siteverifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return false, fmt.Errorf("failed to parse captcha response: %w", err)
	}

	if !result.Success {
		h.logger.Warn("captcha verification failed",
			"error_codes", result.ErrorCodes,
			"remote_ip", remoteIP,
		)
	}
	return result.Success, nil
}

// TokenFromForm extracts the h-captcha-response field from a request.
func TokenFromForm(r *http.Request) string {
	return r.FormValue("h-captcha-response")
}

// RemoteIP extracts the client IP from an HTTP request, honoring the usual
// reverse-proxy headers.
func RemoteIP(r *http.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		if idx := strings.Index(xff, ","); idx > 0 {
			return strings.TrimSpace(xff[:idx])
		}
		return strings.TrimSpace(xff)
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return strings.TrimSpace(xri)
	}
	if idx := strings.LastIndex(r.RemoteAddr, ":"); idx > 0 {
		return r.RemoteAddr[:idx]
	}
	return r.RemoteAddr
}

// Static is a fixed-outcome verifier for tests.
type Static struct {
	Pass bool
	On   bool
}

// Verify returns the configured outcome.
func (s Static) Verify(ctx context.Context, token, remoteIP string) (bool, error) {
	return s.Pass, nil
}

// Enabled reports the configured state.
func (s Static) Enabled() bool { return s.On }
