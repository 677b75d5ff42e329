package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetVersion(t *testing.T) {
	orig := Version
	t.Cleanup(func() { Version = orig })

	Version = ""
	v, err := GetVersion()
	require.NoError(t, err)
	assert.Equal(t, "0.0.1-dev", v)

	Version = "v1.4.0-dirty"
	v, err = GetVersion()
	require.NoError(t, err)
	assert.Equal(t, "1.4.0-dirty", v)

	Version = "nightly"
	_, err = GetVersion()
	assert.Error(t, err)
}
