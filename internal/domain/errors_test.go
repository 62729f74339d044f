package domain

import (
	"context"
	"errors"
	"testing"
)

func TestValidationError_SingleField(t *testing.T) {
	t.Parallel()

	err := NewValidationError("sample_size", "must not exceed 5")

	if got := err.Error(); got != "validation: sample_size: must not exceed 5" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestValidationError_MultipleFields(t *testing.T) {
	t.Parallel()

	err := NewValidationErrors([]FieldError{
		{Field: "words", Message: "required"},
		{Field: "count", Message: "must be positive"},
	})

	if got := err.Error(); got != "validation: 2 errors" {
		t.Fatalf("unexpected Error(): %q", got)
	}
	if !errors.Is(err, ErrValidation) {
		t.Fatal("errors.Is(err, ErrValidation) = false")
	}
}

func TestUpstreamError(t *testing.T) {
	t.Parallel()

	err := &UpstreamError{
		Op:       "chat completion",
		Attempts: 3,
		Err:      context.DeadlineExceeded,
	}

	if !errors.Is(err, ErrUpstream) {
		t.Fatal("errors.Is(err, ErrUpstream) = false")
	}
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatal("cause should be reachable through Unwrap")
	}
	if got := err.Error(); got != "upstream: chat completion: context deadline exceeded (after 3 attempts)" {
		t.Fatalf("unexpected Error(): %q", got)
	}

	withStatus := &UpstreamError{Op: "chat completion", StatusCode: 503, Body: "overloaded", Attempts: 1}
	if got := withStatus.Error(); got != "upstream: chat completion: status 503: overloaded" {
		t.Fatalf("unexpected Error(): %q", got)
	}
}

func TestFormatError(t *testing.T) {
	t.Parallel()

	err := &FormatError{Reason: "translation missing", Content: "{}"}
	if !errors.Is(err, ErrFormat) {
		t.Fatal("errors.Is(err, ErrFormat) = false")
	}
	if errors.Is(err, ErrUpstream) {
		t.Fatal("format errors must not match ErrUpstream")
	}
}

func TestSentinelErrors_AreDistinct(t *testing.T) {
	t.Parallel()

	sentinels := []error{ErrNotFound, ErrValidation, ErrConflict, ErrUpstream, ErrFormat}
	for i, a := range sentinels {
		for j, b := range sentinels {
			if i != j && errors.Is(a, b) {
				t.Errorf("sentinel errors %d and %d should not match", i, j)
			}
		}
	}
}
