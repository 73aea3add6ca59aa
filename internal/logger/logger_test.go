package logger_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unclebandit/audience-crm/internal/config"
	"github.com/unclebandit/audience-crm/internal/logger"
)

func TestConfigureJSON(t *testing.T) {
	var buf bytes.Buffer
	l := logrus.New()
	closer, err := logger.Configure(l, config.LogConfig{Level: "debug", Format: "json"}, &buf)
	require.NoError(t, err)
	defer closer.Close()

	l.WithField("campaign_id", "camp1").Debug("created")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "created", line["message"])
	assert.Equal(t, "camp1", line["campaign_id"])
	assert.Contains(t, line, "timestamp")
}

func TestConfigureRejectsUnknownLevel(t *testing.T) {
	_, err := logger.Configure(logrus.New(), config.LogConfig{Level: "chatty"}, &bytes.Buffer{})
	assert.Error(t, err)
}

func TestConfigureWritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crm.log")
	var buf bytes.Buffer
	l := logrus.New()
	closer, err := logger.Configure(l, config.LogConfig{Level: "info", File: path, MaxSizeMB: 1}, &buf)
	require.NoError(t, err)

	l.Info("hola")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hola")
	assert.Contains(t, buf.String(), "hola")
}
