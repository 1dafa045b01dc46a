package logutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewZapLoggerRejectsUnknownLevel(t *testing.T) {
	_, err := NewZapLogger("loud", nil)
	require.Error(t, err)
	require.Contains(t, err.Error(), "loud")
}

func TestNewZapLoggerWritesToRotatedFile(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "gateway.log")

	logger, err := NewZapLogger("debug", &FileOptions{
		Filename:   filename,
		MaxSize:    1,
		MaxBackups: 1,
	})
	require.NoError(t, err)

	logger.Info("hello", zap.String("network", "mainnet"))
	require.NoError(t, logger.Sync())

	content, err := os.ReadFile(filename)
	require.NoError(t, err)
	require.Contains(t, string(content), "hello")
	require.Contains(t, string(content), "mainnet")
}
