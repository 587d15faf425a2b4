package logging

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedLogger(buf *bytes.Buffer, level, format string) *StdLogger {
	l := NewWithWriter(buf, level, format)
	l.now = func() time.Time { return time.Date(1105, 1, 2, 3, 4, 5, 0, time.UTC) }
	return l
}

func TestStdLogger_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, "info", "text")

	l.Log("INFO", "dispatched", map[string]interface{}{"action": "BuyFuel", "status": 200})

	assert.Equal(t, "1105-01-02T03:04:05Z [INFO] dispatched action=BuyFuel status=200\n", buf.String())
}

func TestStdLogger_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, "debug", "json")

	l.Log("warn", "schema violation", map[string]interface{}{"resource": "Cargo"})

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "schema violation", entry["msg"])
	assert.Equal(t, "Cargo", entry["resource"])
}

func TestStdLogger_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	l := fixedLogger(&buf, "warn", "text")

	l.Log("DEBUG", "noise", nil)
	l.Log("INFO", "noise", nil)
	l.Log("ERROR", "kept", nil)

	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
	assert.Contains(t, buf.String(), "kept")
}
