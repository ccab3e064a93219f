package tilt

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

var approx = cmpopts.EquateApprox(0, 1e-9)

func TestCompute(t *testing.T) {
	bounds := Rect{Left: 100, Top: 50, Width: 200, Height: 100}
	tests := []struct {
		name   string
		px, py float64
		wantX  float64
		wantY  float64
	}{
		{"center", 200, 100, 0, 0},
		{"right edge", 300, 100, 0, 4},
		{"left edge", 100, 100, 0, -4},
		{"bottom edge", 200, 150, -4, 0},
		{"top edge", 200, 50, 4, 0},
		{"top right corner", 300, 50, 4, 4},
		{"quarter", 250, 125, -2, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rx, ry := Compute(tt.px, tt.py, bounds, 8)
			assert.InDelta(t, tt.wantX, rx, 1e-9)
			assert.InDelta(t, tt.wantY, ry, 1e-9)
		})
	}
}

func TestComputeDegenerateBounds(t *testing.T) {
	rx, ry := Compute(10, 10, Rect{Width: 0, Height: 100}, 8)
	assert.Equal(t, 0.0, rx)
	assert.Equal(t, 0.0, ry)

	rx, ry = Compute(10, 10, Rect{Width: 100, Height: -1}, 8)
	assert.Equal(t, 0.0, rx)
	assert.Equal(t, 0.0, ry)
}

func TestTrackerIdentityOnLeave(t *testing.T) {
	tr := NewTracker(Rect{Left: 0, Top: 0, Width: 400, Height: 300}, Section)
	assert.Equal(t, Identity, tr.Transform())

	tr.Enter()
	moves := [][2]float64{{10, 10}, {390, 20}, {200, 299}, {0, 150}}
	for _, m := range moves {
		got := tr.Move(m[0], m[1])
		assert.Equal(t, Section.HoverScale, got.Scale)
		assert.True(t, tr.Hovered())
	}

	got := tr.Leave()
	assert.Equal(t, Transform{RotateX: 0, RotateY: 0, Scale: 1}, got)
	assert.True(t, got.IsIdentity())
	assert.False(t, tr.Hovered())
	assert.Equal(t, Identity, tr.Transform())
}

func TestTrackerMoveMatchesCompute(t *testing.T) {
	bounds := Rect{Left: 20, Top: 40, Width: 300, Height: 180}
	tr := NewTracker(bounds, Card)
	got := tr.Move(70, 200)

	rx, ry := Compute(70, 200, bounds, Card.MaxTilt)
	want := Transform{RotateX: rx, RotateY: ry, Scale: 1.025}
	if diff := cmp.Diff(want, got, approx); diff != "" {
		t.Errorf("transform mismatch (-want +got):\n%s", diff)
	}
}

func TestTrackerTrack(t *testing.T) {
	tr := NewTracker(Rect{Left: 10, Top: 10, Width: 20, Height: 10}, Card)

	assert.Equal(t, Identity, tr.Track(0, 0), "outside before enter")
	assert.False(t, tr.Hovered())

	inside := tr.Track(30, 15)
	assert.True(t, tr.Hovered())
	assert.InDelta(t, 4, inside.RotateY, 1e-9)

	assert.Equal(t, Identity, tr.Track(31, 15), "leaving resets")
	assert.False(t, tr.Hovered())

	tr.SetBounds(Rect{Left: 0, Top: 0, Width: 100, Height: 100})
	assert.Equal(t, Rect{Width: 100, Height: 100}, tr.Bounds())
	assert.True(t, tr.Bounds().Contains(31, 15))
}

func TestCSS(t *testing.T) {
	assert.Equal(t, "none", Identity.CSS())
	tf := Transform{RotateX: -2, RotateY: 3.5, Scale: 1.03}
	assert.Equal(t, "perspective(600px) rotateX(-2deg) rotateY(3.5deg) scale(1.03)", tf.CSS())
}
