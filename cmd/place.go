// cmd/place.go
package cmd

import (
	"context"
	"fmt"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/xkilldash9x/anchorpop/internal/browser"
	"github.com/xkilldash9x/anchorpop/internal/observability"
	"github.com/xkilldash9x/anchorpop/internal/placement"
)

// placementOutput is the JSON shape printed after each placement pass.
type placementOutput struct {
	Element string            `json:"element"`
	Anchor  string            `json:"anchor"`
	Styles  map[string]string `json:"styles"`
	Classes []string          `json:"classes"`
}

// newPlaceCmd creates and configures the `place` command.
func newPlaceCmd() *cobra.Command {
	var (
		url      string
		element  string
		anchor   string
		reset    bool
		watch    bool
		interval time.Duration
	)

	placeCmd := &cobra.Command{
		Use:   "place",
		Short: "Computes and applies a popup placement in a live page",
		Long: `Attaches to a page, measures the anchor and the element, runs the
directional-placement algorithm and writes the resulting inline styles and
marker classes to the element. With --watch the placement is re-invoked on an
interval; the engine itself never re-computes on its own.`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			// Bind the placement flags to their viper keys so the CLI
			// overrides config-file and env values with the right precedence.
			for key, flag := range map[string]string{
				"placement.x_dir":        "x",
				"placement.y_dir":        "y",
				"placement.scale":        "scale",
				"placement.swap":         "swap",
				"placement.space":        "space",
				"placement.settle_delay": "delay",
			} {
				if err := viper.BindPFlag(key, cmd.Flags().Lookup(flag)); err != nil {
					return err
				}
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			// Re-load so the just-bound flags take effect.
			cfg := *appCfg
			if err := viper.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("failed to apply flag overrides: %w", err)
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			opts, err := optionsFromConfig(cfg.Placement)
			if err != nil {
				return err
			}
			opts.Reset = reset

			sess, err := browser.NewSession(ctx, cfg.Browser, logger)
			if err != nil {
				return fmt.Errorf("failed to open browser session: %w", err)
			}
			defer sess.Close()

			if url != "" {
				if err := sess.Navigate(ctx, url); err != nil {
					return err
				}
			}

			opts.Element = sess.Element(element)
			opts.Anchor = sess.Element(anchor)
			engine := placement.NewEngine(sess, sess.Styler(), sess.Mover(), logger)

			if !watch {
				return runPlacement(ctx, engine, opts, element, anchor)
			}

			// Watch mode: the caller-side re-invocation loop. The limiter
			// paces the passes; the engine stays single-shot.
			limiter := rate.NewLimiter(rate.Every(interval), 1)
			logger.Info("Watching placement", zap.Duration("interval", interval))
			for {
				if err := limiter.Wait(ctx); err != nil {
					if ctx.Err() != nil {
						return nil
					}
					return err
				}
				if err := runPlacement(ctx, engine, opts, element, anchor); err != nil {
					return err
				}
			}
		},
	}

	placeCmd.Flags().StringVar(&url, "url", "", "page URL to navigate to before placing (optional when attaching)")
	placeCmd.Flags().StringVar(&element, "element", "", "query selector of the element to place")
	placeCmd.Flags().StringVar(&anchor, "anchor", "", "query selector of the anchor")
	placeCmd.Flags().String("x", "between", "horizontal direction: before|after|between|left|right")
	placeCmd.Flags().String("y", "below", "vertical direction: above|below|between|top|bottom")
	placeCmd.Flags().Float64("scale", 1, "scale divisor applied to all raw geometry (must be > 0)")
	placeCmd.Flags().Bool("swap", true, "flip to the opposite side when the preferred side overflows")
	placeCmd.Flags().Int("space", 8, "margin between element and anchor, in pixels")
	placeCmd.Flags().Duration("delay", 0, "defer the placement pass by this duration")
	placeCmd.Flags().BoolVar(&reset, "reset", false, "clear prior inline styling before applying")
	placeCmd.Flags().BoolVar(&watch, "watch", false, "re-invoke placement on an interval until interrupted")
	placeCmd.Flags().DurationVar(&interval, "interval", 250*time.Millisecond, "re-invocation interval for --watch")
	_ = placeCmd.MarkFlagRequired("element")
	_ = placeCmd.MarkFlagRequired("anchor")

	return placeCmd
}

// runPlacement executes one pass and prints the computed patch. A soft-skip
// (missing element or anchor) prints nothing; the engine already warned.
func runPlacement(ctx context.Context, engine *placement.Engine, opts placement.Options, element, anchor string) error {
	res, err := engine.Place(ctx, opts)
	if err != nil {
		return err
	}
	if res == nil {
		return nil
	}
	out, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(placementOutput{
		Element: element,
		Anchor:  anchor,
		Styles:  res.Styles.Render(),
		Classes: res.Classes,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}
