package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandomAvatar(t *testing.T) {
	url := RandomAvatar("Ana María")
	assert.Contains(t, url, "api.dicebear.com")
	assert.Contains(t, url, "seed=Ana+Mar%C3%ADa")

	// Same name, same avatar.
	assert.Equal(t, url, RandomAvatar("Ana María"))
}
