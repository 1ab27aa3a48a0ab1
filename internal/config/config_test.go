package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "standard", cfg.Format)
	assert.Equal(t, int32(4), cfg.Precision)
	assert.Equal(t, "log", cfg.OnReject)
	assert.Empty(t, cfg.AuditLog)
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settled.yaml")

	cfg := &Config{
		Format:    "standard",
		Precision: 2,
		OnReject:  "silent",
		AuditLog:  "logs/rejections.csv",
	}
	require.NoError(t, Save(path, cfg))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, got)
}

func TestLoad_PartialFileGetsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settled.yaml")
	require.NoError(t, os.WriteFile(path, []byte("precision: 2\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, int32(2), cfg.Precision)
	assert.Equal(t, "standard", cfg.Format)
	assert.Equal(t, "log", cfg.OnReject)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settled.yaml")
	require.NoError(t, os.WriteFile(path, []byte("precision: [not an int\n"), 0o644))

	_, err := Load(path)
	require.Error(t, err)
}
