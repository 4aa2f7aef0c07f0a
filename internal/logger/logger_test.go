package logger_test

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/arx-os/mg2container/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerWritesJSONFields(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, logger.DEBUG)

	log.WithField("vertex_count", 128).Info("compressed mesh")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	assert.Equal(t, "info", decoded["level"])
	assert.Equal(t, "compressed mesh", decoded["msg"])
	fields := decoded["fields"].(map[string]interface{})
	assert.Equal(t, float64(128), fields["vertex_count"])
}

func TestLoggerRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(&buf, logger.WARN)

	log.Debug("should be dropped")
	log.Info("should also be dropped")
	assert.Empty(t, buf.Bytes())

	log.Warn("should appear")
	assert.NotEmpty(t, buf.Bytes())
}

func TestWithFieldsChaining(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(&buf, logger.DEBUG).WithField("component", "mg2")
	base.WithField("operation", "compress").Info("done")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	fields := decoded["fields"].(map[string]interface{})
	assert.Equal(t, "mg2", fields["component"])
	assert.Equal(t, "compress", fields["operation"])
}
