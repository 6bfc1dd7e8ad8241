package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProviderDefaultsToLocal(t *testing.T) {
	provider, err := NewProvider("", "", "")
	require.NoError(t, err)

	local, ok := provider.(*LocalProvider)
	require.True(t, ok)
	assert.Equal(t, "http://localhost:8080", local.PublicBase)
}

func TestNewProviderLocalUsesPublicBase(t *testing.T) {
	provider, err := NewProvider("local", "https://api.example.com", "")
	require.NoError(t, err)

	local, ok := provider.(*LocalProvider)
	require.True(t, ok)
	assert.Equal(t, "https://api.example.com", local.PublicBase)
}

func TestNewProviderCloudinaryRequiresURL(t *testing.T) {
	_, err := NewProvider("cloudinary", "", "")
	assert.Error(t, err)
}
