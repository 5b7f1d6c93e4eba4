package stream

import (
	"sync"

	"github.com/cmdstream/cmdstream/core/trace"
)

// Token is a one-shot cancellation signal shared by reference across a
// whole top-level evaluation, including nested pipeline, sequence and
// subshell calls. Once fired it never clears.
type Token struct {
	once sync.Once
	done chan struct{}
}

// NewToken creates an unfired token.
func NewToken() *Token {
	return &Token{done: make(chan struct{})}
}

// Cancel fires the token. Subsequent calls are no-ops.
func (t *Token) Cancel() {
	if t == nil {
		return
	}
	t.once.Do(func() {
		trace.Trace("stream", "cancellation token fired")
		close(t.done)
	})
}

// Cancelled reports whether the token has fired. Safe on a nil token.
func (t *Token) Cancelled() bool {
	if t == nil {
		return false
	}
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Done returns a channel closed when the token fires, for use in
// select statements.
func (t *Token) Done() <-chan struct{} {
	if t == nil {
		return nil
	}
	return t.done
}
