package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_JSON(t *testing.T) {
	var out bytes.Buffer
	log, err := New("debug", FormatJSON, &out)
	require.NoError(t, err)

	log.WithField("row", 3).Debug("toggle white")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &entry))
	assert.Equal(t, "toggle white", entry["msg"])
	assert.Equal(t, float64(3), entry["row"])
	assert.Equal(t, "debug", entry["level"])
}

func TestNew_TextRespectsLevel(t *testing.T) {
	var out bytes.Buffer
	log, err := New("warn", FormatText, &out)
	require.NoError(t, err)
	assert.Equal(t, logrus.WarnLevel, log.GetLevel())

	log.Info("hidden")
	assert.Empty(t, out.String())

	log.Warn("persistence failed")
	assert.Contains(t, out.String(), "persistence failed")
}

func TestNew_Errors(t *testing.T) {
	_, err := New("loud", FormatText, &bytes.Buffer{})
	assert.Error(t, err)

	_, err = New("info", "xml", &bytes.Buffer{})
	assert.Error(t, err)
}
