package stream

import "sync"

// Event names emitted during a command's lifetime.
const (
	EventStdout = "stdout"
	EventStderr = "stderr"
	EventData   = "data"
	EventEnd    = "end"
	EventExit   = "exit"
	EventError  = "error"
	EventSpawn  = "spawn"
)

// EventPayload is the data delivered to listeners. Only the fields
// relevant to the event are populated.
type EventPayload struct {
	Event string
	Data  []byte
	Code  int
	Err   error
}

// Listener receives event payloads.
type Listener func(EventPayload)

type registration struct {
	fn   Listener
	once bool
}

// Emitter fans events out to listeners synchronously and in
// registration order, before the next chunk is emitted. Slow listeners
// therefore throttle the pipeline. Registration uses a mutex; it is an
// administrative path, not the data hot path.
type Emitter struct {
	mu        sync.Mutex
	listeners map[string][]*registration
}

// NewEmitter creates an empty emitter.
func NewEmitter() *Emitter {
	return &Emitter{listeners: make(map[string][]*registration)}
}

// On registers a durable listener for an event.
func (e *Emitter) On(event string, fn Listener) {
	e.add(event, fn, false)
}

// Once registers a listener removed after its first invocation.
func (e *Emitter) Once(event string, fn Listener) {
	e.add(event, fn, true)
}

func (e *Emitter) add(event string, fn Listener, once bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners[event] = append(e.listeners[event], &registration{fn: fn, once: once})
}

// Off removes all listeners for an event.
func (e *Emitter) Off(event string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	delete(e.listeners, event)
}

// RemoveAll removes every listener for every event.
func (e *Emitter) RemoveAll() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.listeners = make(map[string][]*registration)
}

// ListenerCount returns the number of listeners for an event.
func (e *Emitter) ListenerCount(event string) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.listeners[event])
}

// Emit invokes each listener for the event synchronously in the order
// they were registered. One-shot listeners are dropped afterward.
func (e *Emitter) Emit(event string, payload EventPayload) {
	payload.Event = event

	e.mu.Lock()
	regs := e.listeners[event]
	snapshot := make([]*registration, len(regs))
	copy(snapshot, regs)
	e.mu.Unlock()

	var fired []*registration
	for _, reg := range snapshot {
		reg.fn(payload)
		if reg.once {
			fired = append(fired, reg)
		}
	}

	if len(fired) == 0 {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	kept := e.listeners[event][:0]
	for _, reg := range e.listeners[event] {
		spent := false
		for _, f := range fired {
			if reg == f {
				spent = true
				break
			}
		}
		if !spent {
			kept = append(kept, reg)
		}
	}
	e.listeners[event] = kept
}
