// cmd/options_test.go
package cmd

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xkilldash9x/anchorpop/internal/config"
	"github.com/xkilldash9x/anchorpop/internal/placement"
)

func TestOptionsFromConfig(t *testing.T) {
	cfg := config.PlacementConfig{
		XDir:        "after",
		YDir:        "above",
		Scale:       2,
		Swap:        false,
		Space:       16,
		SettleDelay: 250 * time.Millisecond,
	}

	opts, err := optionsFromConfig(cfg)
	require.NoError(t, err)
	assert.Equal(t, placement.XAfter, opts.XDir)
	assert.Equal(t, placement.YAbove, opts.YDir)
	assert.Equal(t, 2.0, opts.Scale)
	assert.False(t, opts.Swap)
	assert.Equal(t, 16, opts.Space)
	assert.Equal(t, 250*time.Millisecond, opts.Delay)
}

func TestOptionsFromConfigRejectsBadDirections(t *testing.T) {
	_, err := optionsFromConfig(config.PlacementConfig{XDir: "sideways", YDir: "below", Scale: 1})
	assert.Error(t, err)

	_, err = optionsFromConfig(config.PlacementConfig{XDir: "between", YDir: "diagonal", Scale: 1})
	assert.Error(t, err)
}
