package main

import (
	"bytes"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/assert"

	"github.com/teranos/recruitiq/errors"
)

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"invalid request", errors.NewInvalidRequestError("--days must be positive, got %d", -1), exitUsage},
		{"wrapped invalid request", errors.Wrap(errors.NewInvalidRequestError("bad"), "search failed"), exitUsage},
		{"not found", errors.NewNotFoundError("job posting %d not found", 7), exitNotFound},
		{"other", errors.New("database is locked"), exitFailure},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, exitCode(tt.err))
		})
	}
}

func TestErrorHints(t *testing.T) {
	t.Run("attached hints win", func(t *testing.T) {
		err := errors.WithHint(errors.NewInvalidRequestError("unknown report %q", "weekly"), "available: executive, market")
		assert.Equal(t, []string{"available: executive, market"}, errorHints(err))
	})

	t.Run("invalid request falls back to usage", func(t *testing.T) {
		err := errors.NewInvalidRequestError("--older-than must be positive, got %d", 0)
		assert.Equal(t, []string{"run the command with --help for usage"}, errorHints(err))
	})

	t.Run("not found without hints", func(t *testing.T) {
		assert.Empty(t, errorHints(errors.NewNotFoundError("job posting %d not found", 3)))
	})
}

func TestPrintError(t *testing.T) {
	pterm.DisableStyling()
	defer pterm.EnableStyling()

	var buf bytes.Buffer
	printError(&buf, errors.WithHint(errors.NewNotFoundError("configuration key %q not found", "search.limit"),
		"run 'recruitiq am show' to list keys"))

	out := buf.String()
	assert.Contains(t, out, `configuration key "search.limit" not found`)
	assert.Contains(t, out, "  hint: run 'recruitiq am show' to list keys")
}
