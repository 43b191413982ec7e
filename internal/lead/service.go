// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

package lead

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/saunastroy/site/internal/captcha"
	"github.com/saunastroy/site/internal/model"
	"github.com/saunastroy/site/internal/store"
)

// ErrCaptcha marks a submission whose captcha check did not pass.
var ErrCaptcha = errors.New("captcha verification failed")

// Service validates lead submissions and persists the ones that pass.
// Free-text fields are run through a strict sanitizer before they reach the
// database, since admins view them in the backend.
type Service struct {
	queries   *store.Queries
	verifier  captcha.Verifier
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
}

// NewService creates a lead intake service.
func NewService(queries *store.Queries, verifier captcha.Verifier, logger *slog.Logger) *Service {
	return &Service{
		queries:   queries,
		verifier:  verifier,
		sanitizer: bluemonday.StrictPolicy(),
		logger:    logger,
	}
}

// clean strips markup and trims the result.
func (s *Service) clean(text string) string {
	return strings.TrimSpace(s.sanitizer.Sanitize(text))
}

// checkCaptcha verifies the token. A verifier fault is reported as ErrCaptcha
// too: when the check cannot run, the submission does not go through.
func (s *Service) checkCaptcha(ctx context.Context, token, remoteIP string) error {
	ok, err := s.verifier.Verify(ctx, token, remoteIP)
	if err != nil {
		s.logger.Error("captcha check unavailable", "error", err)
		return ErrCaptcha
	}
	if !ok {
		return ErrCaptcha
	}
	return nil
}

// SubmitOrder validates an order submission and persists it. On validation
// failure it returns ValidationErrors and persists nothing. Repeat
// submissions are accepted as-is; sales follows up on duplicates by hand.
func (s *Service) SubmitOrder(ctx context.Context, in OrderInput) (model.OrderRequest, error) {
	if errs := in.Validate(); errs != nil {
		return model.OrderRequest{}, errs
	}
	if err := s.checkCaptcha(ctx, in.CaptchaToken, in.RemoteIP); err != nil {
		return model.OrderRequest{}, err
	}

	req, err := s.queries.CreateOrderRequest(ctx, store.CreateOrderRequestParams{
		FIO:          strings.TrimSpace(in.FIO),
		Phone:        strings.TrimSpace(in.Phone),
		Email:        strings.TrimSpace(in.Email),
		Message:      s.clean(in.Message),
		OrderDetails: s.clean(in.OrderDetails),
	})
	if err != nil {
		return model.OrderRequest{}, err
	}

	s.logger.Info("order request received", "id", req.ID, "phone", req.Phone)
	return req, nil
}

// SubmitCreditRequest validates a credit consultation submission and persists
// it with the initial status.
func (s *Service) SubmitCreditRequest(ctx context.Context, in CreditInput) (model.CreditRequest, error) {
	if errs := in.Validate(); errs != nil {
		return model.CreditRequest{}, errs
	}
	if err := s.checkCaptcha(ctx, in.CaptchaToken, in.RemoteIP); err != nil {
		return model.CreditRequest{}, err
	}

	req, err := s.queries.CreateCreditRequest(ctx, store.CreateCreditRequestParams{
		FIO:   strings.TrimSpace(in.FIO),
		Phone: strings.TrimSpace(in.Phone),
	})
	if err != nil {
		return model.CreditRequest{}, err
	}

	s.logger.Info("credit request received", "id", req.ID, "phone", req.Phone)
	return req, nil
}
