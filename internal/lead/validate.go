// Copyright (c) 2025-2026 SaunaStroy
// SPDX-License-Identifier: GPL-3.0-or-later

// Package lead validates and persists incoming order and credit requests.
package lead

import (
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"
)

const (
	minFIOLen     = 3
	maxMessageLen = 1000
)

// phonePattern accepts Russian numbers as people actually type them: an
// optional plus, a leading 7 or 8, then 9 to 15 digits with the usual
// separators mixed in.
var phonePattern = regexp.MustCompile(`^\+?[78][\d\s\(\)\-]{9,15}$`)

// ValidationErrors maps field names to human-readable messages. It is a
// normal outcome of user input, not a fault, and is never logged as an error.
type ValidationErrors map[string]string

// Error implements the error interface.
func (v ValidationErrors) Error() string {
	fields := make([]string, 0, len(v))
	for f := range v {
		fields = append(fields, f)
	}
	return "validation failed: " + strings.Join(fields, ", ")
}

// validFIO reports whether a name is long enough after trimming.
func validFIO(fio string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(fio)) >= minFIOLen
}

// validPhone reports whether a phone number matches the accepted pattern.
func validPhone(phone string) bool {
	return phonePattern.MatchString(strings.TrimSpace(phone))
}

// validEmail reports whether an address parses per RFC 5322.
func validEmail(email string) bool {
	_, err := mail.ParseAddress(strings.TrimSpace(email))
	return err == nil
}

// OrderInput is a raw order form submission.
type OrderInput struct {
	FIO          string
	Phone        string
	Email        string
	Message      string
	OrderDetails string
	CaptchaToken string
	RemoteIP     string
}

// Validate checks every field and returns all failures at once so the form
// can highlight them together.
func (in OrderInput) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if !validFIO(in.FIO) {
		errs["fio"] = "Укажите имя (не менее 3 символов)"
	}
	if !validPhone(in.Phone) {
		errs["phone"] = "Укажите корректный номер телефона"
	}
	if !validEmail(in.Email) {
		errs["email"] = "Укажите корректный email"
	}
	if utf8.RuneCountInString(in.Message) > maxMessageLen {
		errs["message"] = "Сообщение слишком длинное (не более 1000 символов)"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// CreditInput is a raw credit consultation submission.
type CreditInput struct {
	FIO          string
	Phone        string
	CaptchaToken string
	RemoteIP     string
}

// Validate checks the two client fields.
func (in CreditInput) Validate() ValidationErrors {
	errs := ValidationErrors{}
	if !validFIO(in.FIO) {
		errs["fio"] = "Укажите имя (не менее 3 символов)"
	}
	if !validPhone(in.Phone) {
		errs["phone"] = "Укажите корректный номер телефона"
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}
