package build

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsCompatibleWith(t *testing.T) {
	prev := Version
	Version = "1.4.0"
	t.Cleanup(func() { Version = prev })

	assert.True(t, IsCompatibleWith(""))
	assert.True(t, IsCompatibleWith("1.4.0"))
	assert.True(t, IsCompatibleWith("1.0.0"))
	assert.False(t, IsCompatibleWith("1.5.0"))
	assert.False(t, IsCompatibleWith("2.0.0"))

	// Advisory gating: junk requirements never block.
	assert.True(t, IsCompatibleWith("latest"))
}

func TestIsCompatibleWith_UnparseableBuildVersion(t *testing.T) {
	prev := Version
	Version = "unknown"
	t.Cleanup(func() { Version = prev })

	assert.True(t, IsCompatibleWith("99.0.0"))
}

func TestInfo(t *testing.T) {
	assert.Contains(t, Info(), AppName)
	assert.Contains(t, Info(), Version)
}
