package logging

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/require"
)

func TestNew_Levels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "info")
	require.NoError(t, err)
	require.Equal(t, log.InfoLevel, logger.GetLevel())

	logger.Debug("hidden")
	logger.Info("analyzed project", "modules", 3)

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "psa")
	require.Contains(t, out, "analyzed project")
	require.Contains(t, out, "modules=3")
}

func TestNew_DefaultsToInfo(t *testing.T) {
	logger, err := New(&bytes.Buffer{}, "")
	require.NoError(t, err)
	require.Equal(t, log.InfoLevel, logger.GetLevel())

	logger, err = New(&bytes.Buffer{}, " DEBUG ")
	require.NoError(t, err)
	require.Equal(t, log.DebugLevel, logger.GetLevel())
}

func TestNew_Silent(t *testing.T) {
	var buf bytes.Buffer
	logger, err := New(&buf, "silent")
	require.NoError(t, err)

	logger.Error("dropped")
	require.Empty(t, buf.String())
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New(&bytes.Buffer{}, "chatty")
	require.Error(t, err)
	require.Contains(t, err.Error(), "chatty")
}
