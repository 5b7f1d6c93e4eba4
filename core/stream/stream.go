// Package stream provides the chunked-output channel, the one-shot
// cancellation token and the event emitter shared by the execution
// engine and virtual commands.
package stream

import "bytes"

// ChunkKind identifies what a Chunk carries.
type ChunkKind int

const (
	// ChunkStdout is stdout data.
	ChunkStdout ChunkKind = iota
	// ChunkStderr is stderr data.
	ChunkStderr
	// ChunkExit carries the process exit code and closes the stream.
	ChunkExit
)

// Chunk is one unit of streamed process output.
type Chunk struct {
	Kind ChunkKind
	Data []byte
	Code int
}

// defaultCapacity bounds the stream buffer so an unbounded producer
// blocks instead of exhausting memory.
const defaultCapacity = 1024

// Stream is a bounded channel of output chunks. Within one stream the
// per-kind ordering matches production order; there is no ordering
// guarantee between stdout and stderr chunks.
type Stream struct {
	ch     chan Chunk
	cancel *Token
}

// New creates a stream with the default capacity.
func New() *Stream {
	return NewSize(defaultCapacity)
}

// NewSize creates a stream with an explicit buffer capacity.
func NewSize(capacity int) *Stream {
	if capacity < 1 {
		capacity = 1
	}
	return &Stream{ch: make(chan Chunk, capacity)}
}

// NewCancelable creates a stream whose Send unblocks when the token
// fires.
func NewCancelable(token *Token) *Stream {
	s := New()
	s.cancel = token
	return s
}

// Send enqueues a chunk, blocking when the buffer is full. It reports
// false once the attached token has fired, letting producers stop.
func (s *Stream) Send(c Chunk) bool {
	if s.cancel != nil {
		select {
		case s.ch <- c:
			return true
		case <-s.cancel.Done():
			return false
		}
	}
	s.ch <- c
	return true
}

// SendStdout enqueues stdout data.
func (s *Stream) SendStdout(data []byte) bool {
	return s.Send(Chunk{Kind: ChunkStdout, Data: data})
}

// SendStderr enqueues stderr data.
func (s *Stream) SendStderr(data []byte) bool {
	return s.Send(Chunk{Kind: ChunkStderr, Data: data})
}

// Close marks the end of the stream. No sends may follow.
func (s *Stream) Close() {
	close(s.ch)
}

// Next returns the next chunk, blocking until one is available. ok is
// false after the stream is closed and drained.
func (s *Stream) Next() (Chunk, bool) {
	c, ok := <-s.ch
	return c, ok
}

// TryNext returns a buffered chunk without blocking.
func (s *Stream) TryNext() (Chunk, bool) {
	select {
	case c, ok := <-s.ch:
		return c, ok
	default:
		return Chunk{}, false
	}
}

// Collect drains the stream to completion and returns the accumulated
// stdout, stderr and the exit code from the final exit chunk.
func (s *Stream) Collect() (stdout, stderr []byte, code int) {
	var out, errb bytes.Buffer
	for {
		c, ok := s.Next()
		if !ok {
			break
		}
		switch c.Kind {
		case ChunkStdout:
			out.Write(c.Data)
		case ChunkStderr:
			errb.Write(c.Data)
		case ChunkExit:
			code = c.Code
		}
	}
	return out.Bytes(), errb.Bytes(), code
}

// CollectStdout drains the stream and returns stdout only.
func (s *Stream) CollectStdout() []byte {
	out, _, _ := s.Collect()
	return out
}
