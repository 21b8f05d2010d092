package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/graphql-toolkit/core/pkg/config"
)

func TestParse_Defaults(t *testing.T) {
	cfg, err := config.Parse([]byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, config.Default(), cfg)
}

func TestParse_OverridesDefaults(t *testing.T) {
	cfg, err := config.Parse([]byte(`
depthLimit: 32
oneOfInputObjectsEnabled: true
validationCacheSize: 1024
`))
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.DepthLimit)
	assert.True(t, cfg.OneOfInputObjectsEnabled)
	assert.Equal(t, 1024, cfg.ValidationCacheSize)
}

func TestParse_RejectsUnknownField(t *testing.T) {
	_, err := config.Parse([]byte(`
bogusSetting: true
`))
	assert.Error(t, err)
}

func TestParse_RejectsNegativeDepthLimit(t *testing.T) {
	_, err := config.Parse([]byte(`
depthLimit: -1
`))
	assert.Error(t, err)
}
