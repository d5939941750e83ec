// cmd/options.go
package cmd

import (
	"github.com/xkilldash9x/anchorpop/internal/config"
	"github.com/xkilldash9x/anchorpop/internal/placement"
)

// optionsFromConfig maps the resolved placement configuration to engine
// options, parsing the direction strings at this boundary so the engine only
// ever sees tagged variants.
func optionsFromConfig(cfg config.PlacementConfig) (placement.Options, error) {
	opts := placement.DefaultOptions()

	xDir, err := placement.ParseXDirection(cfg.XDir)
	if err != nil {
		return placement.Options{}, err
	}
	yDir, err := placement.ParseYDirection(cfg.YDir)
	if err != nil {
		return placement.Options{}, err
	}

	opts.XDir = xDir
	opts.YDir = yDir
	opts.Scale = cfg.Scale
	opts.Swap = cfg.Swap
	opts.Space = cfg.Space
	opts.Delay = cfg.SettleDelay
	return opts, nil
}
