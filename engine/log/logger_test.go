package log

import (
	"bufio"
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleFormat(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "debug", Writer: &buf})
	t.Cleanup(func() { Init(Options{Writer: &bytes.Buffer{}}) })

	l := WithComponent("gfx").WithGroup("tex")
	l.Debug("upload", slog.Int("w", 2), slog.String("path", "a b.png"))

	line := buf.String()
	assert.Contains(t, line, "DEBUG upload")
	assert.Contains(t, line, "app=gl2d")
	assert.Contains(t, line, "component=gfx")
	assert.Contains(t, line, "tex.w=2")
	assert.Contains(t, line, `tex.path="a b.png"`)
	assert.True(t, strings.HasSuffix(line, "\n"))
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	Init(Options{Level: "warn", Writer: &buf})
	t.Cleanup(func() { Init(Options{Writer: &bytes.Buffer{}}) })

	L().Info("hidden")
	L().Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestJSONFileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gl2d.log")
	var console bytes.Buffer
	Init(Options{Level: "info", Format: "json", File: path, Writer: &console})

	WithComponent("sandbox").Info("frame", slog.Int("n", 3))
	require.NoError(t, Close())
	t.Cleanup(func() { Init(Options{Writer: &bytes.Buffer{}}) })

	b, err := os.ReadFile(path)
	require.NoError(t, err)

	sc := bufio.NewScanner(bytes.NewReader(b))
	require.True(t, sc.Scan())
	var rec map[string]any
	require.NoError(t, json.Unmarshal(sc.Bytes(), &rec))
	assert.Equal(t, "frame", rec["msg"])
	assert.Equal(t, "sandbox", rec["component"])
	assert.Equal(t, float64(3), rec["n"])

	// console got the JSON copy too
	assert.Contains(t, console.String(), `"msg":"frame"`)
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel(" DEBUG "))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestFromEnv(t *testing.T) {
	t.Setenv(EnvLevel, "error")
	t.Setenv(EnvFormat, "json")
	t.Setenv(EnvFile, "/tmp/x.log")
	o := FromEnv()
	assert.Equal(t, "error", o.Level)
	assert.Equal(t, "json", o.Format)
	assert.Equal(t, "/tmp/x.log", o.File)
}
