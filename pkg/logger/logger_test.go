package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newBufferLogger(t *testing.T, format string) (*Logger, *bytes.Buffer) {
	t.Helper()
	l, err := NewLogger(&Config{Level: InfoLevel, Format: format, AppName: "carrental"})
	require.NoError(t, err)
	buf := &bytes.Buffer{}
	l.SetOutput(buf)
	return l, buf
}

func TestLogStatisticsText(t *testing.T) {
	l, buf := newBufferLogger(t, "text")
	l.LogStatistics("cars", 3)

	assert.Contains(t, buf.String(), "*** STATISTICS ***: Number of cars: 3")
	assert.Contains(t, buf.String(), "[carrental]")
	assert.Contains(t, buf.String(), "source=cars")
}

func TestJSONFormatterFields(t *testing.T) {
	l, buf := newBufferLogger(t, "json")
	ctx := context.WithValue(context.Background(), RequestIDKey, "req-1")
	l.WithContext(ctx).WithCustomerID(7).LogRentalEvent("rental", 12, "picked_up", map[string]interface{}{"points": 10})

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "Rental event occurred", line["message"])
	assert.Equal(t, "req-1", line["request_id"])
	assert.Equal(t, float64(7), line["customer_id"])
	assert.Equal(t, float64(12), line["entity_id"])
	assert.Equal(t, "carrental", line["app"])
}

func TestWithFieldDoesNotLeak(t *testing.T) {
	l, buf := newBufferLogger(t, "text")
	_ = l.WithField("scope", "child")
	l.Info("parent")
	assert.NotContains(t, buf.String(), "scope=child")
}

func TestLevelFilters(t *testing.T) {
	l, buf := newBufferLogger(t, "text")
	l.SetLevel(WarnLevel)
	l.Info("hidden")
	l.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
