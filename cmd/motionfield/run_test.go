package main

import (
	"context"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lixenwraith/motionfield/config"
	"github.com/lixenwraith/motionfield/engine"
	"github.com/lixenwraith/motionfield/render"
)

func newTestHost(t *testing.T, cols, rows int, loop *engine.Loop) (*terminalHost, tcell.SimulationScreen) {
	t.Helper()
	screen := tcell.NewSimulationScreen("")
	require.NoError(t, screen.Init())
	t.Cleanup(screen.Fini)
	screen.SetSize(cols, rows)

	cfg := config.Default()
	cfg.Seed = 5
	host, err := newTerminalHost(screen, loop, cfg, nil, zap.NewNop())
	require.NoError(t, err)
	return host, screen
}

// A terminal that starts at zero size mounts on the first resize, the presented
// frame must already contain that frame's tick
func TestLateMountPresentsAfterTick(t *testing.T) {
	loop := engine.NewLoop()
	host, screen := newTestHost(t, 0, 0, loop)

	host.start()
	require.Nil(t, host.bg)

	screen.SetSize(80, 25)
	host.resize(80, 25)
	require.NotNil(t, host.bg)

	for i := 0; i < 3; i++ {
		loop.Step(time.Now())

		want := host.canvas.At(0, 0)
		assert.NotEqual(t, render.RGBBlack, want)
		_, _, style, _ := screen.GetContent(0, 0)
		_, bg, _ := style.Decompose()
		assert.Equal(t, want.TcellColor(), bg, "frame %d", i)
	}
	assert.Equal(t, uint64(3), host.bg.Field().Frames())
}

func TestShutdownAfterLoopExited(t *testing.T) {
	loop := engine.NewLoop(engine.WithFrameSource(make(chan time.Time)))
	host, _ := newTestHost(t, 80, 25, loop)
	host.start()
	require.NotNil(t, host.bg)

	ctx, cancel := context.WithCancel(context.Background())
	go loop.Run(ctx)
	cancel()
	<-loop.Done()

	host.shutdown()
	assert.True(t, host.bg.Disposed())
	assert.Equal(t, 2, host.events.Len(), "only the host's own listeners remain")
}

func TestShutdownOnRunningLoop(t *testing.T) {
	loop := engine.NewLoop(engine.WithFrameSource(make(chan time.Time)))
	host, _ := newTestHost(t, 80, 25, loop)
	require.True(t, loop.Post(host.start))

	go loop.Run(context.Background())
	host.shutdown()
	<-loop.Done()
	assert.True(t, host.bg.Disposed())
}
