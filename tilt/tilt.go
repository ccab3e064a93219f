// Package tilt computes the hover tilt of a rectangular element from the pointer
// position: rotation grows linearly with the offset from the element center.
package tilt

import (
	"fmt"

	"github.com/lixenwraith/motionfield/parameter"
)

// Rect is an element's bounding box in pointer coordinates
type Rect struct {
	Left, Top     float64
	Width, Height float64
}

// Center returns the midpoint of the rectangle
func (r Rect) Center() (x, y float64) {
	return r.Left + r.Width/2, r.Top + r.Height/2
}

// Contains reports whether (x, y) lies inside the rectangle, edges included
func (r Rect) Contains(x, y float64) bool {
	return x >= r.Left && x <= r.Left+r.Width && y >= r.Top && y <= r.Top+r.Height
}

// Transform is the 3D hover transform of an element, angles in degrees
type Transform struct {
	RotateX float64
	RotateY float64
	Scale   float64
}

// Identity is the resting transform
var Identity = Transform{Scale: 1}

// IsIdentity reports whether t is the resting transform
func (t Transform) IsIdentity() bool {
	return t == Identity
}

// CSS renders the transform the way the element style expects it
func (t Transform) CSS() string {
	if t.IsIdentity() {
		return "none"
	}
	return fmt.Sprintf("perspective(%gpx) rotateX(%gdeg) rotateY(%gdeg) scale(%g)",
		parameter.TiltPerspective, t.RotateX, t.RotateY, t.Scale)
}

// Compute returns the rotation for a pointer at (px, py) over bounds
// Pointer below center tilts the top edge away (negative rotateX), pointer right
// of center turns the element right (positive rotateY)
func Compute(px, py float64, bounds Rect, maxTilt float64) (rotateX, rotateY float64) {
	if bounds.Width <= 0 || bounds.Height <= 0 {
		return 0, 0
	}
	cx, cy := bounds.Center()
	rotateX = -((py - cy) / bounds.Height) * maxTilt
	rotateY = ((px - cx) / bounds.Width) * maxTilt
	// Normalize -0 so a centered pointer compares equal to a zero rotation
	return rotateX + 0, rotateY + 0
}

// Preset is the tuning of one kind of interactive element
type Preset struct {
	MaxTilt    float64
	HoverScale float64
}

// Presets observed on the contact cards and the about sections
var (
	Card    = Preset{MaxTilt: parameter.CardMaxTilt, HoverScale: parameter.CardHoverScale}
	Section = Preset{MaxTilt: parameter.SectionMaxTilt, HoverScale: parameter.SectionHoverScale}
)

// Tracker follows the pointer over one element and holds the last transform for rendering
type Tracker struct {
	bounds  Rect
	preset  Preset
	hovered bool
	current Transform
}

// NewTracker creates a resting tracker for an element
func NewTracker(bounds Rect, preset Preset) *Tracker {
	return &Tracker{
		bounds:  bounds,
		preset:  preset,
		current: Identity,
	}
}

// Enter marks the element hovered, the transform changes on the first Move
func (t *Tracker) Enter() {
	t.hovered = true
}

// Move recomputes the transform for a pointer at (px, py)
// A move implies hover even without a prior Enter
func (t *Tracker) Move(px, py float64) Transform {
	t.hovered = true
	rx, ry := Compute(px, py, t.bounds, t.preset.MaxTilt)
	t.current = Transform{RotateX: rx, RotateY: ry, Scale: t.preset.HoverScale}
	return t.current
}

// Leave resets to the identity transform
func (t *Tracker) Leave() Transform {
	t.hovered = false
	t.current = Identity
	return t.current
}

// Track feeds a pointer position and handles enter/leave transitions against the bounds
func (t *Tracker) Track(px, py float64) Transform {
	if t.bounds.Contains(px, py) {
		return t.Move(px, py)
	}
	if t.hovered {
		return t.Leave()
	}
	return t.current
}

// SetBounds updates the element rectangle (layout or viewport change)
func (t *Tracker) SetBounds(bounds Rect) {
	t.bounds = bounds
}

// Bounds returns the element rectangle
func (t *Tracker) Bounds() Rect {
	return t.bounds
}

// Transform returns the last computed transform
func (t *Tracker) Transform() Transform {
	return t.current
}

// Hovered reports whether the pointer is over the element
func (t *Tracker) Hovered() bool {
	return t.hovered
}
