package parameter

// Particle Appearance (canvas values of the original background)
const (
	// BackgroundHex fills the surface before every frame
	BackgroundHex = "#f7f7fa"

	// ParticleFillHex is the dot color
	ParticleFillHex = "#111111"

	// ParticleOpacity is the fixed dot alpha
	ParticleOpacity = 0.82

	// ParticleShadowHex is the soft shadow color
	ParticleShadowHex = "#000000"

	// ParticleShadowBlur is the shadow spread in pixels beyond the radius
	ParticleShadowBlur = 8.0

	// ParticleShadowAlpha is the peak shadow alpha right at the dot edge
	ParticleShadowAlpha = 0.35
)

// Terminal Cell Metrics
const (
	// CellWidthPx is the virtual pixel width of one terminal cell
	CellWidthPx = 8.0

	// CellHeightPx is the virtual pixel height of one terminal cell (~2.1 aspect ratio)
	CellHeightPx = 17.0

	// CellSubSamples is the per-axis supersampling factor when rasterizing into cells
	CellSubSamples = 2
)
