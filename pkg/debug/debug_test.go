package debug_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/walteh/djtmpls/pkg/debug"
)

func TestSplitFuncName(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		pkg      string
		function string
	}{
		{
			name:     "plain function",
			input:    "github.com/walteh/djtmpls/pkg/document.Parse",
			pkg:      "github.com/walteh/djtmpls/pkg/document",
			function: "Parse",
		},
		{
			name:     "method",
			input:    "github.com/walteh/djtmpls/pkg/watch.(*Watcher).Run",
			pkg:      "github.com/walteh/djtmpls/pkg/watch",
			function: "(*Watcher).Run",
		},
		{
			name:     "dotted module path",
			input:    "main.main",
			pkg:      "main",
			function: "main",
		},
		{
			name:     "no function",
			input:    "runtime",
			pkg:      "runtime",
			function: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pkg, function := debug.SplitFuncName(tt.input)
			assert.Equal(t, tt.pkg, pkg)
			assert.Equal(t, tt.function, function)
		})
	}
}

func TestFormatCaller(t *testing.T) {
	assert.Equal(t, "pkg/x:file.go:12", debug.FormatCaller("pkg/x", "/a/b/file.go", 12, false))
	assert.Equal(t, "pkg/x:file.go:3", debug.FormatCaller("pkg/x", "file.go", 3, false))
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, debug.ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, debug.ParseLevel("warn"))
	assert.Equal(t, zerolog.InfoLevel, debug.ParseLevel("nonsense"))
	assert.Equal(t, zerolog.InfoLevel, debug.ParseLevel(""))
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := debug.NewLogger(&buf, debug.Options{Level: zerolog.InfoLevel})

	logger.Debug().Msg("hidden")
	logger.Info().Str("file", "a.html").Msg("parsed")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))

	assert.Equal(t, "parsed", entry["message"])
	assert.Equal(t, "a.html", entry["file"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry["caller"], "debug_test.go")
}

func TestNewLoggerPretty(t *testing.T) {
	var buf bytes.Buffer
	logger := debug.NewLogger(&buf, debug.Options{Level: zerolog.DebugLevel, Pretty: true})

	logger.Debug().Msg("pretty")

	assert.Contains(t, buf.String(), "pretty")
	assert.NotContains(t, buf.String(), "{")
}
