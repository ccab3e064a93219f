package main

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/motionfield/tilt"
)

func TestTiltTransform(t *testing.T) {
	opts := tiltOptions{x: 400, y: 300, width: 400, height: 300}
	tf := tiltTransform(opts, tilt.Card)
	assert.InDelta(t, -4.0, tf.RotateX, 1e-9)
	assert.InDelta(t, 4.0, tf.RotateY, 1e-9)
	assert.Equal(t, tilt.Card.HoverScale, tf.Scale)

	opts.leave = true
	assert.Equal(t, tilt.Identity, tiltTransform(opts, tilt.Section))
}

func TestTiltCommand(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"tilt", "--x", "400", "--y", "300", "--width", "400", "--height", "300"})
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "perspective(600px) rotateX(-4deg) rotateY(4deg) scale(1.025)")

	out.Reset()
	root = newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"tilt", "--leave"})
	require.NoError(t, root.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "transform: none")
}

func TestTiltUnknownPreset(t *testing.T) {
	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"tilt", "--preset", "banner"})
	assert.Error(t, root.ExecuteContext(context.Background()))
}
