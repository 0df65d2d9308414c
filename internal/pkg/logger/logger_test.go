package logger

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func capture(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(DEBUG)
	t.Cleanup(func() {
		SetOutput(os.Stderr)
		SetLevel(INFO)
	})
	return &buf
}

func TestNamedLoggerAddsComponent(t *testing.T) {
	buf := capture(t)

	Named("view").Info("analysis started", "session", "abc")

	var entry map[string]string
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "INFO", entry["level"])
	assert.Equal(t, "view", entry["component"])
	assert.Equal(t, "analysis started", entry["msg"])
	assert.Equal(t, "abc", entry["session"])
}

func TestLevelFiltering(t *testing.T) {
	buf := capture(t)
	SetLevel(WARN)

	Info("dropped")
	Warn("kept")

	assert.NotContains(t, buf.String(), "dropped")
	assert.Contains(t, buf.String(), "kept")
}

func TestRedactsEmbeddedEmails(t *testing.T) {
	buf := capture(t)

	Info("form received", "target_audience", "contact john.doe@example.com for list")

	assert.NotContains(t, buf.String(), "john.doe@example.com")
	assert.Contains(t, buf.String(), "jo***@example.com")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, DEBUG, ParseLevel("debug"))
	assert.Equal(t, WARN, ParseLevel(" Warning "))
	assert.Equal(t, ERROR, ParseLevel("error"))
	assert.Equal(t, INFO, ParseLevel("verbose"))
}

func TestRedactEmail(t *testing.T) {
	assert.Equal(t, "jo***@example.com", RedactEmail("john.doe@example.com"))
	assert.Equal(t, "***@example.com", RedactEmail("ab@example.com"))
	assert.Equal(t, "***@***", RedactEmail("not-an-email"))
}

func TestRedactsPhoneNumbers(t *testing.T) {
	buf := capture(t)

	Info("form received", "campaign", "Call (415) 555-0199 today", "budget", "150000")

	assert.NotContains(t, buf.String(), "555-0199")
	assert.Contains(t, buf.String(), "Call ***99 today")
	assert.Contains(t, buf.String(), `"budget":"150000"`)
}

func TestRedactPhone(t *testing.T) {
	assert.Equal(t, "***67", RedactPhone("+1 212-555-4567"))
	assert.Equal(t, "***", RedactPhone("x"))
}
