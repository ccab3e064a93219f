package render

import "github.com/lixenwraith/motionfield/parameter"

// CircleStyle is the cosmetic part of a dot draw instruction
type CircleStyle struct {
	Background  RGB
	Fill        RGB
	Opacity     float64
	Shadow      RGB
	ShadowBlur  float64
	ShadowAlpha float64
}

// DefaultCircleStyle returns the dark-dots-on-light-background look
func DefaultCircleStyle() CircleStyle {
	return CircleStyle{
		Background:  MustParseHex(parameter.BackgroundHex),
		Fill:        MustParseHex(parameter.ParticleFillHex),
		Opacity:     parameter.ParticleOpacity,
		Shadow:      MustParseHex(parameter.ParticleShadowHex),
		ShadowBlur:  parameter.ParticleShadowBlur,
		ShadowAlpha: parameter.ParticleShadowAlpha,
	}
}

// Circle is a single filled-circle draw instruction in viewport pixel space
type Circle struct {
	X, Y        float64
	Radius      float64
	Fill        RGB
	Opacity     float64
	Shadow      RGB
	ShadowBlur  float64
	ShadowAlpha float64
}

// CircleAt builds a draw instruction at (x, y) with the given style
func (s CircleStyle) CircleAt(x, y, radius float64) Circle {
	return Circle{
		X:           x,
		Y:           y,
		Radius:      radius,
		Fill:        s.Fill,
		Opacity:     s.Opacity,
		Shadow:      s.Shadow,
		ShadowBlur:  s.ShadowBlur,
		ShadowAlpha: s.ShadowAlpha,
	}
}

// Surface receives one frame worth of draw instructions
// Implementations are owned by the host, not by the animator
type Surface interface {
	// Clear starts a new frame filled with bg
	Clear(bg RGB)
	// FillCircle draws a filled circle with a soft shadow
	FillCircle(c Circle)
}
