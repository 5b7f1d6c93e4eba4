package stream

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitterOrder(t *testing.T) {
	e := NewEmitter()
	var calls []string

	e.On(EventStdout, func(p EventPayload) { calls = append(calls, "first:"+string(p.Data)) })
	e.On(EventStdout, func(p EventPayload) { calls = append(calls, "second:"+string(p.Data)) })

	e.Emit(EventStdout, EventPayload{Data: []byte("a")})
	e.Emit(EventStdout, EventPayload{Data: []byte("b")})

	assert.Equal(t, []string{"first:a", "second:a", "first:b", "second:b"}, calls)
}

func TestEmitterOnce(t *testing.T) {
	e := NewEmitter()
	var count int
	e.Once(EventExit, func(EventPayload) { count++ })

	e.Emit(EventExit, EventPayload{Code: 1})
	e.Emit(EventExit, EventPayload{Code: 2})

	assert.Equal(t, 1, count)
	assert.Equal(t, 0, e.ListenerCount(EventExit))
}

func TestEmitterOnceKeepsDurable(t *testing.T) {
	e := NewEmitter()
	var durable, oneShot int
	e.On(EventData, func(EventPayload) { durable++ })
	e.Once(EventData, func(EventPayload) { oneShot++ })

	e.Emit(EventData, EventPayload{})
	e.Emit(EventData, EventPayload{})

	assert.Equal(t, 2, durable)
	assert.Equal(t, 1, oneShot)
	assert.Equal(t, 1, e.ListenerCount(EventData))
}

func TestEmitterOff(t *testing.T) {
	e := NewEmitter()
	e.On(EventStderr, func(EventPayload) { t.Fatal("removed listener fired") })
	e.Off(EventStderr)

	e.Emit(EventStderr, EventPayload{})
	assert.Equal(t, 0, e.ListenerCount(EventStderr))
}

func TestEmitterRemoveAll(t *testing.T) {
	e := NewEmitter()
	e.On(EventStdout, func(EventPayload) {})
	e.On(EventEnd, func(EventPayload) {})
	e.RemoveAll()

	assert.Equal(t, 0, e.ListenerCount(EventStdout))
	assert.Equal(t, 0, e.ListenerCount(EventEnd))
}

func TestEmitterPayloadEventName(t *testing.T) {
	e := NewEmitter()
	var got string
	e.On(EventSpawn, func(p EventPayload) { got = p.Event })

	e.Emit(EventSpawn, EventPayload{})
	assert.Equal(t, EventSpawn, got)
}

func TestEmitterUnknownEvent(t *testing.T) {
	e := NewEmitter()
	// Emitting with no listeners is a no-op.
	e.Emit("nobody-listens", EventPayload{})
}
