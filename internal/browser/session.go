// internal/browser/session.go

// Package browser implements every collaborator the placement engine
// consumes (bounding-box queries, viewport size, style application, DOM
// moves) against a live Chrome page over the DevTools Protocol.
package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/runtime"
	"github.com/chromedp/chromedp"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xkilldash9x/anchorpop/internal/config"
	"github.com/xkilldash9x/anchorpop/internal/geometry"
)

// Session is one attached Chrome page. All element handles created from it
// evaluate against this page; closing the session invalidates them.
type Session struct {
	id          string
	ctx         context.Context
	cancel      context.CancelFunc
	allocCancel context.CancelFunc
	logger      *zap.Logger
	cfg         config.BrowserConfig
}

// NewSession launches a headless browser (or attaches to a running one when
// DevToolsURL is set) and opens a fresh page context.
func NewSession(parentCtx context.Context, cfg config.BrowserConfig, logger *zap.Logger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	sessionID := uuid.New().String()
	log := logger.Named("browser").With(zap.String("sessionID", sessionID))

	var (
		allocCtx    context.Context
		allocCancel context.CancelFunc
	)
	if cfg.DevToolsURL != "" {
		allocCtx, allocCancel = chromedp.NewRemoteAllocator(parentCtx, cfg.DevToolsURL)
		log.Debug("Attaching to running browser", zap.String("devtoolsURL", cfg.DevToolsURL))
	} else {
		opts := append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", cfg.Headless),
		)
		allocCtx, allocCancel = chromedp.NewExecAllocator(parentCtx, opts...)
		log.Debug("Launching browser", zap.Bool("headless", cfg.Headless))
	}

	ctx, cancel := chromedp.NewContext(allocCtx)

	return &Session{
		id:          sessionID,
		ctx:         ctx,
		cancel:      cancel,
		allocCancel: allocCancel,
		logger:      log,
		cfg:         cfg,
	}, nil
}

// ID returns the session identifier used in logs.
func (s *Session) ID() string { return s.id }

// Navigate loads a URL and waits for the navigation to settle, bounded by
// the configured navigation timeout.
func (s *Session) Navigate(ctx context.Context, url string) error {
	timeout := s.cfg.NavigationTimeout
	if timeout <= 0 {
		timeout = 90 * time.Second
	}
	opCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	s.logger.Info("Navigating", zap.String("url", url))
	if err := s.run(ctx, opCtx, chromedp.Navigate(url)); err != nil {
		if opCtx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("timeout navigating to %s: %w", url, opCtx.Err())
		}
		return fmt.Errorf("failed to navigate to %s: %w", url, err)
	}
	return nil
}

// Close tears down the page and, when the session launched the browser, the
// browser process itself.
func (s *Session) Close() {
	s.cancel()
	s.allocCancel()
	s.logger.Debug("Session closed")
}

// Element returns a selector-addressed handle bound to this session.
func (s *Session) Element(selector string) *Element {
	return &Element{
		sess:     s,
		selector: selector,
		nodeExpr: fmt.Sprintf("document.querySelector(%s)", jsString(selector)),
	}
}

// Size implements geometry.Viewport with the page's innerWidth/innerHeight.
func (s *Session) Size(ctx context.Context) (geometry.Size, error) {
	var size struct {
		Width  float64 `json:"width"`
		Height float64 `json:"height"`
	}
	if err := s.eval(ctx, viewportScript, &size); err != nil {
		return geometry.Size{}, fmt.Errorf("failed to query viewport size: %w", err)
	}
	return geometry.Size{Width: size.Width, Height: size.Height}, nil
}

// evalRaw evaluates a script in the page and returns its JSON-serialized
// return value. Promises are awaited; page exceptions stay silent and
// surface as protocol errors.
func (s *Session) evalRaw(ctx context.Context, script string) ([]byte, error) {
	timeout := s.cfg.EvalTimeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	opCtx, cancel := context.WithTimeout(s.ctx, timeout)
	defer cancel()

	var raw []byte
	err := s.run(ctx, opCtx, chromedp.Evaluate(script, &raw, func(p *runtime.EvaluateParams) *runtime.EvaluateParams {
		return p.WithReturnByValue(true).WithAwaitPromise(true).WithSilent(true)
	}))
	if err != nil {
		if opCtx.Err() == context.DeadlineExceeded {
			return nil, fmt.Errorf("timeout evaluating script: %w", opCtx.Err())
		}
		return nil, err
	}
	return raw, nil
}

// eval evaluates a script and unmarshals its return value into out.
func (s *Session) eval(ctx context.Context, script string, out any) error {
	raw, err := s.evalRaw(ctx, script)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to unmarshal evaluate result: %w (payload: %s)", err, string(raw))
	}
	return nil
}

// evalNullable is eval for scripts that return null when their node does not
// exist. found is false on a null result and out is left untouched.
func (s *Session) evalNullable(ctx context.Context, script string, out any) (found bool, err error) {
	raw, err := s.evalRaw(ctx, script)
	if err != nil {
		return false, err
	}
	if len(raw) == 0 || string(raw) == "null" {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return false, fmt.Errorf("failed to unmarshal evaluate result: %w (payload: %s)", err, string(raw))
	}
	return true, nil
}

// run executes chromedp actions on the session context chain (it carries the
// page target) while honoring the caller's context for early cancellation.
func (s *Session) run(callerCtx, opCtx context.Context, actions ...chromedp.Action) error {
	if err := callerCtx.Err(); err != nil {
		return err
	}
	done := make(chan error, 1)
	go func() {
		done <- chromedp.Run(opCtx, actions...)
	}()
	select {
	case err := <-done:
		return err
	case <-callerCtx.Done():
		return callerCtx.Err()
	}
}
