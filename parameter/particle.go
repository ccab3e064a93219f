package parameter

// Particle Field
const (
	// FieldDefaultCount is the number of particles created when no count is configured
	FieldDefaultCount = 48

	// ParticleRadiusMin is the inclusive lower bound of particle radius in pixels
	ParticleRadiusMin = 6.0
	// ParticleRadiusMax is the exclusive upper bound of particle radius in pixels
	ParticleRadiusMax = 14.0

	// ParticleInitialSpeed bounds each initial velocity component to [-speed, speed)
	ParticleInitialSpeed = 0.25

	// ParticleJitter bounds the per-frame random velocity nudge to [-jitter, jitter)
	ParticleJitter = 0.01

	// ParticleDamping is the per-frame velocity multiplier
	ParticleDamping = 0.97
)

// Pointer Influence
const (
	// PointerGain converts pointer displacement (px) into the pointer velocity sample
	PointerGain = 0.08

	// PointerInfluence is the fraction of the pointer velocity sample added to every particle per frame
	PointerInfluence = 0.04

	// PointerDecay is the per-frame multiplier applied to the pointer velocity sample
	PointerDecay = 0.92
)

// Pointer Burst Cue
const (
	// BurstThreshold is the pointer velocity sample magnitude that fires the burst cue
	BurstThreshold = 6.0

	// BurstCooldownFrames is the minimum number of frames between two burst cues
	BurstCooldownFrames = 30
)
