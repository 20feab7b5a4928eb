package logging

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestNewWritesJSONToFile(t *testing.T) {
	dir := t.TempDir()
	logger, err := New(dir, false)
	require.NoError(t, err)

	logger.Info("decoded", zap.String("extension", "zpl"), zap.Int("size", 42))
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"decoded"`)
	assert.Contains(t, string(data), `"extension":"zpl"`)

	logger.Debug("hidden")
	_ = logger.Sync()
	data, err = os.ReadFile(filepath.Join(dir, FileName))
	require.NoError(t, err)
	assert.NotContains(t, string(data), "hidden")
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() { Nop().Info("ignored") })
}
