// internal/placement/engine_test.go
package placement

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/xkilldash9x/anchorpop/internal/geometry"
	"github.com/xkilldash9x/anchorpop/internal/style"
)

// -- Mock collaborators --

type mockNode struct {
	rect   geometry.RawRect
	exists bool
}

func (m *mockNode) BoundingClientRect(context.Context) (geometry.RawRect, error) {
	return m.rect, nil
}

func (m *mockNode) ClientRects(context.Context) ([]geometry.RawRect, error) {
	return []geometry.RawRect{m.rect}, nil
}

func (m *mockNode) Parent(context.Context) (geometry.Measurable, error) {
	return nil, nil
}

func (m *mockNode) Exists(context.Context) (bool, error) {
	return m.exists, nil
}

type mockViewport struct {
	size geometry.Size
}

func (m *mockViewport) Size(context.Context) (geometry.Size, error) {
	return m.size, nil
}

type appliedPatch struct {
	el      style.Handle
	patch   style.Patch
	reset   bool
	classes []string
}

type mockApplier struct {
	mu      sync.Mutex
	applied []appliedPatch
}

func (m *mockApplier) Apply(_ context.Context, el style.Handle, patch style.Patch, reset bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.applied = append(m.applied, appliedPatch{el: el, patch: patch, reset: reset})
	return nil
}

func (m *mockApplier) AddClasses(_ context.Context, el style.Handle, classes ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if n := len(m.applied); n > 0 {
		m.applied[n-1].classes = classes
	}
	return nil
}

func (m *mockApplier) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.applied)
}

func (m *mockApplier) last() appliedPatch {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.applied[len(m.applied)-1]
}

type mockMutator struct {
	mu       sync.Mutex
	moves    []Target
	appends  []Target
	restores int
}

func (m *mockMutator) MoveInto(_ context.Context, _ Node, target Target) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.moves = append(m.moves, target)
	return nil
}

func (m *mockMutator) Append(_ context.Context, _ Node, target Target) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.appends = append(m.appends, target)
	return nil
}

func (m *mockMutator) Restore(context.Context, Node) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.restores++
	return nil
}

func newTestEngine(vpSize geometry.Size) (*Engine, *mockApplier, *mockMutator) {
	applier := &mockApplier{}
	mutator := &mockMutator{}
	engine := NewEngine(&mockViewport{size: vpSize}, applier, mutator, zap.NewNop())
	return engine, applier, mutator
}

// -- Tests --

func TestEngine_PlaceAppliesComputedPatch(t *testing.T) {
	engine, applier, _ := newTestEngine(geometry.Size{Width: 400, Height: 300})

	anchor := &mockNode{exists: true, rect: geometry.RawRect{Left: 150, Top: 100, Right: 250, Bottom: 120, Width: 100, Height: 20}}
	elem := &mockNode{exists: true, rect: geometry.RawRect{Width: 50, Height: 40}}

	o := DefaultOptions()
	o.Element = elem
	o.Anchor = anchor
	o.Reset = true

	res, err := engine.Place(context.Background(), o)
	require.NoError(t, err)
	require.NotNil(t, res)

	require.Equal(t, 1, applier.count())
	got := applier.last()
	assert.True(t, got.reset)
	assert.Same(t, elem, got.el.(*mockNode))
	// Anchor center at x=200: between placement centers the element.
	assert.Equal(t, style.Px(200), got.patch["left"])
	assert.Contains(t, got.classes, ClassXBetween)
	assert.Contains(t, got.classes, ClassYBelow)
}

func TestEngine_PlaceMissingTargetsIsNoOp(t *testing.T) {
	engine, applier, _ := newTestEngine(geometry.Size{Width: 400, Height: 300})
	present := &mockNode{exists: true}
	absent := &mockNode{exists: false}

	cases := []struct {
		name    string
		element Node
		anchor  Node
	}{
		{"NilElement", nil, present},
		{"NilAnchor", present, nil},
		{"ElementNotAttached", absent, present},
		{"AnchorNotAttached", present, absent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			o := DefaultOptions()
			o.Element = tc.element
			o.Anchor = tc.anchor

			res, err := engine.Place(context.Background(), o)

			// Soft-failure policy: no error, no result, no DOM writes.
			require.NoError(t, err)
			assert.Nil(t, res)
			assert.Zero(t, applier.count())
		})
	}
}

func TestEngine_PlaceIdempotentForStableGeometry(t *testing.T) {
	engine, applier, _ := newTestEngine(geometry.Size{Width: 400, Height: 300})

	anchor := &mockNode{exists: true, rect: geometry.RawRect{Left: 150, Top: 100, Right: 250, Bottom: 120, Width: 100, Height: 20}}
	elem := &mockNode{exists: true, rect: geometry.RawRect{Width: 50, Height: 40}}

	o := DefaultOptions()
	o.Element = elem
	o.Anchor = anchor

	first, err := engine.Place(context.Background(), o)
	require.NoError(t, err)
	second, err := engine.Place(context.Background(), o)
	require.NoError(t, err)

	assert.Equal(t, first.Styles, second.Styles)
	assert.Equal(t, first.Classes, second.Classes)
	assert.Equal(t, 2, applier.count())
}

func TestEngine_PlaceAfterDefers(t *testing.T) {
	// The deferred pass runs on a timer goroutine; it must not outlive the
	// test once the placement has landed.
	defer goleak.VerifyNone(t)

	engine, applier, _ := newTestEngine(geometry.Size{Width: 400, Height: 300})

	anchor := &mockNode{exists: true, rect: geometry.RawRect{Left: 150, Top: 100, Right: 250, Bottom: 120, Width: 100, Height: 20}}
	elem := &mockNode{exists: true, rect: geometry.RawRect{Width: 50, Height: 40}}

	o := DefaultOptions()
	o.Element = elem
	o.Anchor = anchor
	o.Delay = 20 * time.Millisecond

	engine.PlaceAfter(context.Background(), o)
	assert.Zero(t, applier.count(), "placement must not run before the delay")

	require.Eventually(t, func() bool {
		return applier.count() == 1
	}, time.Second, 5*time.Millisecond)
}

func TestEngine_PlaceAfterZeroDelayRunsInline(t *testing.T) {
	engine, applier, _ := newTestEngine(geometry.Size{Width: 400, Height: 300})

	anchor := &mockNode{exists: true, rect: geometry.RawRect{Left: 150, Top: 100, Right: 250, Bottom: 120, Width: 100, Height: 20}}
	elem := &mockNode{exists: true, rect: geometry.RawRect{Width: 50, Height: 40}}

	o := DefaultOptions()
	o.Element = elem
	o.Anchor = anchor

	engine.PlaceAfter(context.Background(), o)
	assert.Equal(t, 1, applier.count())
}

func TestEngine_PopTo(t *testing.T) {
	t.Run("MovesAndPlaces", func(t *testing.T) {
		engine, applier, mutator := newTestEngine(geometry.Size{Width: 400, Height: 300})

		anchor := &mockNode{exists: true, rect: geometry.RawRect{Left: 150, Top: 100, Right: 250, Bottom: 120, Width: 100, Height: 20}}
		elem := &mockNode{exists: true, rect: geometry.RawRect{Width: 50, Height: 40}}

		o := DefaultOptions()
		o.Element = elem
		o.Anchor = anchor

		err := engine.PopTo(context.Background(), Target{Selector: "#overlay"}, o)
		require.NoError(t, err)
		require.Len(t, mutator.moves, 1)
		assert.Equal(t, "#overlay", mutator.moves[0].Selector)
		assert.Equal(t, 1, applier.count())
	})

	t.Run("NoAnchorMovesOnly", func(t *testing.T) {
		engine, applier, mutator := newTestEngine(geometry.Size{Width: 400, Height: 300})
		elem := &mockNode{exists: true}

		o := DefaultOptions()
		o.Element = elem

		err := engine.PopTo(context.Background(), Target{Selector: "#overlay"}, o)
		require.NoError(t, err)
		assert.Len(t, mutator.moves, 1)
		assert.Zero(t, applier.count())
	})

	t.Run("MissingElementSkips", func(t *testing.T) {
		engine, _, mutator := newTestEngine(geometry.Size{Width: 400, Height: 300})

		o := DefaultOptions()
		o.Element = &mockNode{exists: false}

		err := engine.PopTo(context.Background(), Target{Selector: "#overlay"}, o)
		require.NoError(t, err)
		assert.Empty(t, mutator.moves)
	})
}

func TestEngine_RestoreAndAppend(t *testing.T) {
	engine, _, mutator := newTestEngine(geometry.Size{Width: 400, Height: 300})
	elem := &mockNode{exists: true}

	require.NoError(t, engine.Restore(context.Background(), elem))
	assert.Equal(t, 1, mutator.restores)

	require.NoError(t, engine.AppendTo(context.Background(), elem, Target{Selector: "body"}))
	require.Len(t, mutator.appends, 1)

	// Soft-fail paths: nil and detached elements are skipped quietly.
	require.NoError(t, engine.Restore(context.Background(), nil))
	require.NoError(t, engine.AppendTo(context.Background(), &mockNode{exists: false}, Target{}))
	assert.Equal(t, 1, mutator.restores)
	assert.Len(t, mutator.appends, 1)
}
