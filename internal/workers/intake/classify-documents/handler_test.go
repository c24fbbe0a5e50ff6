// internal/workers/intake/classify-documents/handler_test.go
package classifydocuments

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/base64"
	"strings"
	"testing"

	"docushield-workers/internal/audit/intake"
	"docushield-workers/internal/common/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLogger struct {
	t *testing.T
}

func (tl *testLogger) Debug(msg string, fields map[string]interface{}) {
	tl.t.Logf("DEBUG: %s %v", msg, fields)
}

func (tl *testLogger) Info(msg string, fields map[string]interface{}) {
	tl.t.Logf("INFO: %s %v", msg, fields)
}

func (tl *testLogger) Warn(msg string, fields map[string]interface{}) {
	tl.t.Logf("WARN: %s %v", msg, fields)
}

func (tl *testLogger) Error(msg string, fields map[string]interface{}) {
	tl.t.Logf("ERROR: %s %v", msg, fields)
}

func (tl *testLogger) WithFields(fields map[string]interface{}) logger.Logger {
	return tl
}

func newTestHandler(t *testing.T) *Handler {
	return NewHandler(LoadConfig(), &testLogger{t: t})
}

func encodedZip(t *testing.T, names ...string) string {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		require.NoError(t, err)
		if strings.HasSuffix(name, "/") {
			continue
		}
		_, err = w.Write([]byte("x"))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return base64.StdEncoding.EncodeToString(buf.Bytes())
}

func TestHandler_Execute_Filenames(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		Filenames: []string{
			"IMM5257_application.pdf",
			"previous_refusal_letter_2022.pdf",
			"bank_statement_march.pdf",
			"passport_bio.jpg",
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 4, output.ScannedFiles)
	assert.Equal(t, []string{"previous_refusal_letter_2022.pdf"}, output.ClassifiedFiles.Refusal)
	assert.True(t, output.HasRefusal)
	assert.Equal(t, output.ScannedFiles, output.CurrentCount+output.RefusalCount+output.SupportingCount)
}

func TestHandler_Execute_Archive(t *testing.T) {
	h := newTestHandler(t)

	output, err := h.Execute(context.Background(), &Input{
		Archive: encodedZip(t,
			"case/",
			"case/IMM5257_form.pdf",
			"case/__MACOSX/._IMM5257_form.pdf",
			"case/.DS_Store",
			"case/funds/bank_statement.pdf",
		),
		Filenames: []string{"ignored_when_archive_present.pdf"},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, output.ScannedFiles)
	assert.False(t, output.HasRefusal)
	assert.NotContains(t, output.ClassifiedFiles.Supporting, "ignored_when_archive_present.pdf")
	assert.NotContains(t, output.ClassifiedFiles.Current, "ignored_when_archive_present.pdf")
}

func TestHandler_Execute_Empty(t *testing.T) {
	output, err := newTestHandler(t).Execute(context.Background(), &Input{})

	require.NoError(t, err)
	assert.Equal(t, 0, output.ScannedFiles)
	assert.NotNil(t, output.ClassifiedFiles.Current)
	assert.NotNil(t, output.ClassifiedFiles.Refusal)
	assert.NotNil(t, output.ClassifiedFiles.Supporting)
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name    string
		config  *Config
		input   *Input
		wantErr error
	}{
		{
			name:    "archive is not base64",
			config:  LoadConfig(),
			input:   &Input{Archive: "%%%not-base64%%%"},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "archive is not a zip",
			config:  LoadConfig(),
			input:   &Input{Archive: base64.StdEncoding.EncodeToString([]byte("plain text"))},
			wantErr: intake.ErrArchiveRead,
		},
		{
			name:    "archive over the size limit",
			config:  &Config{MaxArchiveBytes: 4},
			input:   &Input{Archive: base64.StdEncoding.EncodeToString([]byte("0123456789"))},
			wantErr: ErrInvalidInput,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.config, &testLogger{t: t})
			_, err := h.Execute(context.Background(), tt.input)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
