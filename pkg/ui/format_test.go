// pkg/ui/format_test.go
// TEST TYPE: Unit Tests
// DEPENDENCIES: Temp files
// PURPOSE: Test output format parsing and detection

package ui_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/nox/pkg/errors"
	"github.com/arthur-debert/nox/pkg/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatString(t *testing.T) {
	tests := []struct {
		format   ui.Format
		expected string
	}{
		{ui.FormatAuto, "auto"},
		{ui.FormatTerminal, "term"},
		{ui.FormatText, "text"},
		{ui.FormatJSON, "json"},
		{ui.FormatYAML, "yaml"},
		{ui.Format(999), "unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.format.String())
		})
	}
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected ui.Format
		wantErr  bool
	}{
		{name: "auto", input: "auto", expected: ui.FormatAuto},
		{name: "empty_is_auto", input: "", expected: ui.FormatAuto},
		{name: "term", input: "term", expected: ui.FormatTerminal},
		{name: "terminal", input: "terminal", expected: ui.FormatTerminal},
		{name: "text", input: "text", expected: ui.FormatText},
		{name: "plain", input: "plain", expected: ui.FormatText},
		{name: "json", input: "json", expected: ui.FormatJSON},
		{name: "mixed_case_json", input: "Json", expected: ui.FormatJSON},
		{name: "yaml", input: "yaml", expected: ui.FormatYAML},
		{name: "yml", input: "YML", expected: ui.FormatYAML},
		{name: "invalid", input: "xml", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := ui.ParseFormat(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "unknown format")
				assert.Equal(t, errors.ErrInvalidInput, errors.GetErrorCode(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, format)
		})
	}
}

func TestDetectFormat(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	t.Run("regular_file_is_text", func(t *testing.T) {
		assert.Equal(t, ui.FormatText, ui.DetectFormat(f))
	})

	t.Run("no_color_is_text", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		assert.Equal(t, ui.FormatText, ui.DetectFormat(f))
	})
}

func TestParseFormat_RoundTrip(t *testing.T) {
	for _, f := range []ui.Format{ui.FormatAuto, ui.FormatTerminal, ui.FormatText, ui.FormatJSON, ui.FormatYAML} {
		got, err := ui.ParseFormat(f.String())
		require.NoError(t, err)
		assert.Equal(t, f, got)
	}
	assert.Equal(t, "unknown", ui.Format(-1).String())
}

func TestIsColorTerminal_RegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out"))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()
	assert.False(t, ui.IsColorTerminal(f))
}
