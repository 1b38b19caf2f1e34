package slog_test

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/fwojciec/citedoc"
	citedocslog "github.com/fwojciec/citedoc/slog"
	"github.com/stretchr/testify/assert"
)

func TestLoggingResolver_ResolveAnchor(t *testing.T) {
	t.Parallel()

	newLogger := func(buf *bytes.Buffer) *slog.Logger {
		return slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	t.Run("logs the tier that matched", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := citedocslog.NewLoggingResolver(citedoc.Resolver{}, newLogger(&buf))

		m, ok := r.ResolveAnchor("The Quick brown fox", "quick BROWN", citedoc.Anchors{})

		assert.True(t, ok)
		assert.Equal(t, "Quick brown", m.Text)
		output := buf.String()
		assert.Contains(t, output, "msg=resolve")
		assert.Contains(t, output, "found=true")
		assert.Contains(t, output, "tier=case_insensitive")
		assert.Contains(t, output, "start=4")
	})

	t.Run("logs misses", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := citedocslog.NewLoggingResolver(citedoc.Resolver{}, newLogger(&buf))

		_, ok := r.ResolveAnchor("The quick brown fox", "lazy dog", citedoc.Anchors{})

		assert.False(t, ok)
		assert.Contains(t, buf.String(), "found=false")
		assert.NotContains(t, buf.String(), "tier=")
	})

	t.Run("is silent above debug level", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		r := citedocslog.NewLoggingResolver(citedoc.Resolver{}, slog.New(slog.NewTextHandler(&buf, nil)))

		_, ok := r.ResolveAnchor("abc", "b", citedoc.Anchors{})

		assert.True(t, ok)
		assert.Empty(t, buf.String())
	})
}
