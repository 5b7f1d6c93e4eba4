package stream

import (
	"io"

	"github.com/juju/ratelimit"
)

// Throttle wraps a writer so mirrored output cannot exceed
// bytesPerSec. Used for the mirror path when a consumer (terminal,
// session log) should not be flooded by a fast producer.
func Throttle(w io.Writer, bytesPerSec int64) io.Writer {
	if bytesPerSec <= 0 {
		return w
	}
	bucket := ratelimit.NewBucketWithRate(float64(bytesPerSec), bytesPerSec)
	return ratelimit.Writer(w, bucket)
}
