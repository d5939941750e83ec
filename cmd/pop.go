// cmd/pop.go
package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xkilldash9x/anchorpop/internal/browser"
	"github.com/xkilldash9x/anchorpop/internal/observability"
	"github.com/xkilldash9x/anchorpop/internal/placement"
)

// newPopCmd creates and configures the `pop` command.
func newPopCmd() *cobra.Command {
	var (
		url       string
		element   string
		anchor    string
		into      string
		restore   bool
		appendFlg bool
	)

	popCmd := &cobra.Command{
		Use:   "pop",
		Short: "Moves an element into a container, optionally placing it against an anchor",
		Long: `Reparents the element into the --into container (falling back to the
document root when the selector matches nothing), remembering its original
position. With --anchor a placement pass runs after the configured settle
delay. --restore moves a previously popped element back; --append moves
without remembering an origin.`,
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return viper.BindPFlag("placement.settle_delay", cmd.Flags().Lookup("delay"))
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := observability.GetLogger()

			cfg := *appCfg
			if err := viper.Unmarshal(&cfg); err != nil {
				return fmt.Errorf("failed to apply flag overrides: %w", err)
			}

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

			engine := placement.NewEngine(sess, sess.Styler(), sess.Mover(), logger)
			el := sess.Element(element)

			if restore {
				return engine.Restore(ctx, el)
			}

			target := placement.Target{Selector: into}
			if appendFlg {
				return engine.AppendTo(ctx, el, target)
			}

			opts, err := optionsFromConfig(cfg.Placement)
			if err != nil {
				return err
			}
			opts.Element = el
			if anchor != "" {
				opts.Anchor = sess.Element(anchor)
			}
			if err := engine.PopTo(ctx, target, opts); err != nil {
				return err
			}
			// The deferred pass runs on a timer; keep the session alive until
			// it has had a chance to fire.
			if anchor != "" && opts.Delay > 0 {
				select {
				case <-time.After(opts.Delay + 100*time.Millisecond):
				case <-ctx.Done():
				}
			}
			return nil
		},
	}

	popCmd.Flags().StringVar(&url, "url", "", "page URL to navigate to first (optional when attaching)")
	popCmd.Flags().StringVar(&element, "element", "", "query selector of the element to move")
	popCmd.Flags().StringVar(&into, "into", "", "query selector of the destination container")
	popCmd.Flags().StringVar(&anchor, "anchor", "", "anchor selector for the follow-up placement pass")
	popCmd.Flags().Duration("delay", 0, "settle delay before the follow-up placement pass")
	popCmd.Flags().BoolVar(&restore, "restore", false, "move a previously popped element back to its origin")
	popCmd.Flags().BoolVar(&appendFlg, "append", false, "append without remembering an origin")
	_ = popCmd.MarkFlagRequired("element")

	return popCmd
}
