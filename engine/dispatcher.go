package engine

// ListenerID identifies a registered listener, zero is never issued
type ListenerID uint64

// PointerEvent is a pointer position in viewport pixels
type PointerEvent struct {
	X, Y float64
}

// ResizeEvent is a new viewport size in pixels
type ResizeEvent struct {
	Width, Height float64
}

// Dispatcher fans host input out to subscribed listeners
// Dispatch and subscription run on the loop goroutine, no locking
type Dispatcher struct {
	pointer map[ListenerID]func(PointerEvent)
	resize  map[ListenerID]func(ResizeEvent)
	order   []ListenerID
	nextID  ListenerID
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		pointer: make(map[ListenerID]func(PointerEvent)),
		resize:  make(map[ListenerID]func(ResizeEvent)),
	}
}

// OnPointerMove subscribes fn to pointer moves
func (d *Dispatcher) OnPointerMove(fn func(PointerEvent)) ListenerID {
	d.nextID++
	d.pointer[d.nextID] = fn
	d.order = append(d.order, d.nextID)
	return d.nextID
}

// OnResize subscribes fn to viewport resizes
func (d *Dispatcher) OnResize(fn func(ResizeEvent)) ListenerID {
	d.nextID++
	d.resize[d.nextID] = fn
	d.order = append(d.order, d.nextID)
	return d.nextID
}

// Remove unsubscribes a listener, returns false if it was not registered
func (d *Dispatcher) Remove(id ListenerID) bool {
	_, isPointer := d.pointer[id]
	_, isResize := d.resize[id]
	if !isPointer && !isResize {
		return false
	}
	delete(d.pointer, id)
	delete(d.resize, id)
	for i, oid := range d.order {
		if oid == id {
			d.order = append(d.order[:i], d.order[i+1:]...)
			break
		}
	}
	return true
}

// DispatchPointer delivers ev to pointer listeners in subscription order
func (d *Dispatcher) DispatchPointer(ev PointerEvent) {
	for _, id := range d.snapshot() {
		if fn, ok := d.pointer[id]; ok {
			fn(ev)
		}
	}
}

// DispatchResize delivers ev to resize listeners in subscription order
func (d *Dispatcher) DispatchResize(ev ResizeEvent) {
	for _, id := range d.snapshot() {
		if fn, ok := d.resize[id]; ok {
			fn(ev)
		}
	}
}

// Len returns the number of registered listeners
func (d *Dispatcher) Len() int {
	return len(d.order)
}

// snapshot lets listeners unsubscribe during dispatch
func (d *Dispatcher) snapshot() []ListenerID {
	ids := make([]ListenerID, len(d.order))
	copy(ids, d.order)
	return ids
}
