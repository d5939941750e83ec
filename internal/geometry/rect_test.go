// internal/geometry/rect_test.go
package geometry

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScaleRect_IdentityAtUnitScale(t *testing.T) {
	// Integral inputs at scale=1 must reproduce exactly.
	raw := RawRect{X: 10, Y: 20, Left: 10, Top: 20, Right: 110, Bottom: 220, Width: 100, Height: 200}
	got := ScaleRect(raw, 1)

	assert.Equal(t, ScaledRect{X: 10, Y: 20, Left: 10, Top: 20, Right: 110, Bottom: 220, Width: 100, Height: 200}, got)
}

func TestScaleRect_RoundsHalfAwayFromZero(t *testing.T) {
	raw := RawRect{X: 10.5, Y: -10.5, Left: 10.4, Top: 10.6, Right: 0.49, Bottom: 0.51, Width: 99.5, Height: 100.5}
	got := ScaleRect(raw, 1)

	assert.Equal(t, 11, got.X)
	assert.Equal(t, -11, got.Y)
	assert.Equal(t, 10, got.Left)
	assert.Equal(t, 11, got.Top)
	assert.Equal(t, 0, got.Right)
	assert.Equal(t, 1, got.Bottom)
	assert.Equal(t, 100, got.Width)
	assert.Equal(t, 101, got.Height)
}

func TestScaleRect_DividesEveryField(t *testing.T) {
	raw := RawRect{X: 100, Y: 50, Left: 100, Top: 50, Right: 300, Bottom: 250, Width: 200, Height: 200}
	got := ScaleRect(raw, 2)

	assert.Equal(t, ScaledRect{X: 50, Y: 25, Left: 50, Top: 25, Right: 150, Bottom: 125, Width: 100, Height: 100}, got)
}

func TestScaleLength(t *testing.T) {
	assert.Equal(t, 400, ScaleLength(400, 1))
	assert.Equal(t, 200, ScaleLength(400, 2))
	// 400/3 = 133.33 rounds down; 500/3 = 166.67 rounds up.
	assert.Equal(t, 133, ScaleLength(400, 3))
	assert.Equal(t, 167, ScaleLength(500, 3))
}

// -- Mock element / viewport used by the measurement tests --

type mockElement struct {
	rect      RawRect
	fragments []RawRect
	parent    *mockElement
}

func (m *mockElement) BoundingClientRect(context.Context) (RawRect, error) {
	return m.rect, nil
}

func (m *mockElement) ClientRects(context.Context) ([]RawRect, error) {
	return m.fragments, nil
}

func (m *mockElement) Parent(context.Context) (Measurable, error) {
	if m.parent == nil {
		return nil, nil
	}
	return m.parent, nil
}

type mockViewport struct {
	size Size
}

func (m *mockViewport) Size(context.Context) (Size, error) {
	return m.size, nil
}

func TestBoundingRect(t *testing.T) {
	el := &mockElement{rect: RawRect{Left: 100, Top: 50, Right: 300, Bottom: 250, Width: 200, Height: 200, X: 100, Y: 50}}

	got, err := BoundingRect(context.Background(), el, 2)
	require.NoError(t, err)
	assert.Equal(t, ScaledRect{Left: 50, Top: 25, Right: 150, Bottom: 125, Width: 100, Height: 100, X: 50, Y: 25}, got)
}

func TestClientRects(t *testing.T) {
	t.Run("MultipleFragmentsInOrder", func(t *testing.T) {
		el := &mockElement{fragments: []RawRect{
			{Left: 0, Top: 0, Right: 50, Bottom: 10, Width: 50, Height: 10},
			{Left: 0, Top: 10, Right: 30, Bottom: 20, Width: 30, Height: 10},
		}}

		got, err := ClientRects(context.Background(), el, 1)
		require.NoError(t, err)
		require.Len(t, got, 2)
		assert.Equal(t, 50, got[0].Width)
		assert.Equal(t, 30, got[1].Width)
	})

	t.Run("NotRenderedIsEmpty", func(t *testing.T) {
		el := &mockElement{}

		got, err := ClientRects(context.Background(), el, 1)
		require.NoError(t, err)
		assert.Empty(t, got)
	})
}
