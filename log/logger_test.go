package log

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"math/big"
	"strings"
	"testing"
	"time"

	"github.com/holiman/uint256"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteTimeTermFormat(t *testing.T) {
	b := bytes.NewBufferString("")
	writeTimeTermFormat(b, time.Date(2025, time.March, 7, 9, 5, 3, 42_000_000, time.UTC))
	assert.Equal(t, "03-07|09:05:03.042", b.String())
}

func TestTerminalHandler(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandler(out, false))
	l.Info("Sent request", "method", "eth_call", "id", 7)

	line := out.String()
	assert.True(t, strings.HasPrefix(line, "INFO ["), line)
	assert.Contains(t, line, "log/logger_test.go:")
	assert.Contains(t, line, "Sent request")
	assert.Contains(t, line, "method=eth_call")
	assert.Contains(t, line, "id=7")
}

func TestTerminalHandlerWithAttrs(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(NewTerminalHandler(out, false)).With("session", "abc")
	l.Warn("Dropped poll result", "reason", "empty list")
	assert.Contains(t, out.String(), "session=abc reason=\"empty list\"")
}

func TestGlogHandler(t *testing.T) {
	out := new(bytes.Buffer)
	glog := NewGlogHandler(NewTerminalHandler(out, false))
	glog.Verbosity(LevelWarn)
	l := NewLogger(glog)

	l.Info("hidden")
	assert.Empty(t, out.String())

	require.NoError(t, glog.Vmodule("log=5"))
	l.Debug("visible")
	assert.Contains(t, out.String(), "visible")

	assert.Error(t, glog.Vmodule("log"))
}

func TestFormatSlogValue(t *testing.T) {
	cases := []struct {
		v    any
		want string
	}{
		{big.NewInt(-1), "-1"},
		{new(big.Int).Lsh(big.NewInt(1), 70), "1,180,591,620,717,411,303,424"},
		{uint256.NewInt(1234567), "1,234,567"},
		{json.RawMessage(`["0x1"]`), `"[\"0x1\"]"`},
		{int64(-123456), "-123,456"},
	}
	for _, c := range cases {
		got := string(FormatSlogValue(slog.AnyValue(c.v), nil))
		assert.Equal(t, c.want, got)
	}
}

func TestFromLegacyLevel(t *testing.T) {
	assert.Equal(t, LevelCrit, FromLegacyLevel(0))
	assert.Equal(t, LevelInfo, FromLegacyLevel(3))
	assert.Equal(t, LevelTrace, FromLegacyLevel(9))
}

func TestJSONHandler(t *testing.T) {
	out := new(bytes.Buffer)
	l := NewLogger(JSONHandler(out))
	l.Info("hello", "value", big.NewInt(5))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rec))
	assert.Equal(t, "info", rec["lvl"])
	assert.Equal(t, "5", rec["value"])
}
