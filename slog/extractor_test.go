package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/citedoc"
	"github.com/fwojciec/citedoc/mock"
	citedocslog "github.com/fwojciec/citedoc/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingTextExtractor_ExtractText(t *testing.T) {
	t.Parallel()

	t.Run("logs sizes and reason", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.TextExtractor{
			ExtractTextFn: func(_ context.Context, _ string, _ []byte) (*citedoc.Extraction, error) {
				return &citedoc.Extraction{Text: "hello", IsUncertain: true, Reason: citedoc.ReasonImageDetected}, nil
			},
		}

		ext, err := citedocslog.NewLoggingTextExtractor(inner, logger).ExtractText(context.Background(), "scan.html", []byte("<html></html>"))

		require.NoError(t, err)
		assert.Equal(t, "hello", ext.Text)
		output := buf.String()
		assert.Contains(t, output, "msg=extract")
		assert.Contains(t, output, "source=scan.html")
		assert.Contains(t, output, "bytes=13")
		assert.Contains(t, output, "chars=5")
		assert.Contains(t, output, "reason=image_detected")
	})

	t.Run("logs error without extraction", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.TextExtractor{
			ExtractTextFn: func(_ context.Context, _ string, _ []byte) (*citedoc.Extraction, error) {
				return nil, errors.New("unsupported")
			},
		}

		_, err := citedocslog.NewLoggingTextExtractor(inner, logger).ExtractText(context.Background(), "a.pdf", nil)

		require.Error(t, err)
		assert.Contains(t, buf.String(), "err=unsupported")
		assert.Contains(t, buf.String(), "chars=0")
	})
}
