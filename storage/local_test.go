package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalProviderUpload(t *testing.T) {
	dir := t.TempDir()
	provider := NewLocalProvider(dir, "http://localhost:8080", "/uploads")

	src := filepath.Join(dir, "src.png")
	require.NoError(t, os.WriteFile(src, []byte("image-bytes"), 0o644))
	file, err := os.Open(src)
	require.NoError(t, err)
	defer file.Close()

	url, err := provider.Upload(file, "avatar_abc.png")
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:8080/uploads/avatar_abc.png", url)

	stored, err := os.ReadFile(filepath.Join(dir, "avatar_abc.png"))
	require.NoError(t, err)
	assert.Equal(t, []byte("image-bytes"), stored)
}
