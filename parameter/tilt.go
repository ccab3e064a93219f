package parameter

// Tilt-on-hover presets
const (
	// TiltPerspective is the CSS perspective distance in pixels
	TiltPerspective = 600.0

	// CardMaxTilt is the rotation in degrees at the card edge
	CardMaxTilt = 8.0
	// CardHoverScale is the scale applied while a card is hovered
	CardHoverScale = 1.025

	// SectionMaxTilt is the rotation in degrees at the section edge
	SectionMaxTilt = 10.0
	// SectionHoverScale is the scale applied while a section is hovered
	SectionHoverScale = 1.03
)
