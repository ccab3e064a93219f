package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcherDelivery(t *testing.T) {
	d := NewDispatcher()

	var pointers []PointerEvent
	var resizes []ResizeEvent
	d.OnPointerMove(func(ev PointerEvent) { pointers = append(pointers, ev) })
	d.OnResize(func(ev ResizeEvent) { resizes = append(resizes, ev) })
	assert.Equal(t, 2, d.Len())

	d.DispatchPointer(PointerEvent{X: 1, Y: 2})
	d.DispatchResize(ResizeEvent{Width: 640, Height: 480})
	d.DispatchPointer(PointerEvent{X: 3, Y: 4})

	assert.Equal(t, []PointerEvent{{1, 2}, {3, 4}}, pointers)
	assert.Equal(t, []ResizeEvent{{640, 480}}, resizes)
}

func TestDispatcherRemove(t *testing.T) {
	d := NewDispatcher()
	var calls int
	id := d.OnPointerMove(func(PointerEvent) { calls++ })

	assert.True(t, d.Remove(id))
	assert.False(t, d.Remove(id), "second removal reports nothing removed")
	assert.False(t, d.Remove(999))
	assert.Equal(t, 0, d.Len())

	d.DispatchPointer(PointerEvent{})
	assert.Equal(t, 0, calls)
}

func TestDispatcherRemoveDuringDispatch(t *testing.T) {
	d := NewDispatcher()
	var order []string
	var second ListenerID
	d.OnPointerMove(func(PointerEvent) {
		order = append(order, "first")
		d.Remove(second)
	})
	second = d.OnPointerMove(func(PointerEvent) { order = append(order, "second") })
	d.OnPointerMove(func(PointerEvent) { order = append(order, "third") })

	d.DispatchPointer(PointerEvent{})
	assert.Equal(t, []string{"first", "third"}, order)
	assert.Equal(t, 2, d.Len())
}
