package main

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"testing"

	"github.com/matzehuels/labelsheet/pkg/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"success", nil, exitOK},
		{"interrupted", fmt.Errorf("compose: %w", context.Canceled), exitInterrupted},
		{"empty format", errors.New(errors.ErrCodeInvalidConfig, "format identifier cannot be empty"), exitUsage},
		{"unknown format", errors.NewUnknownFormat("nope", []string{"avery-l4731"}), exitUsage},
		{"capacity", fmt.Errorf("layout: %w", errors.New(errors.ErrCodeCapacity, "too many")), exitUsage},
		{"missing glyph", fmt.Errorf("rendering: %w", errors.New(errors.ErrCodeInvalidInput, "no glyph")), exitUsage},
		{"rendering failure", fmt.Errorf("rendering: %w", errors.New(errors.ErrCodeRendering, "disk full")), exitFailure},
		{"uncoded", stderrors.New("unknown flag: --colour"), exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestReport(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"success", nil, ""},
		{"interrupted", context.Canceled, ""},
		{"user error", fmt.Errorf("layout: %w", errors.New(errors.ErrCodeCapacity, "190 labels do not fit")),
			"Error: 190 labels do not fit (CAPACITY_EXCEEDED)\n"},
		{"failure", stderrors.New("write labels.pdf: disk full"), "Error: write labels.pdf: disk full\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			report(&buf, tt.err)
			if got := buf.String(); got != tt.want {
				t.Errorf("report() wrote %q, want %q", got, tt.want)
			}
		})
	}
}
