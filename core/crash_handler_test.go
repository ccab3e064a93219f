package core

import (
	"os"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoRecoversPanic(t *testing.T) {
	exited := make(chan int, 1)
	exitFunc = func(code int) { exited <- code }
	defer func() { exitFunc = os.Exit }()

	screen := tcell.NewSimulationScreen("UTF-8")
	require.NoError(t, screen.Init())
	SetCrashScreen(screen)
	defer SetCrashScreen(nil)

	Go(func() { panic("boom") })

	select {
	case code := <-exited:
		assert.Equal(t, 1, code)
	case <-time.After(2 * time.Second):
		t.Fatal("crash handler did not run")
	}
}

func TestHandleCrashNilIsNoop(t *testing.T) {
	called := false
	exitFunc = func(int) { called = true }
	defer func() { exitFunc = os.Exit }()

	HandleCrash(nil)
	assert.False(t, called)
}
