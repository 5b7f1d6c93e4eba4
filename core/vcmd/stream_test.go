package vcmd

import (
	"path/filepath"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cmdstream/cmdstream/core/stream"
)

func TestSeq(t *testing.T) {
	g := goldie.New(
		t,
		goldie.WithFixtureDir(filepath.Join("testdata", "golden")),
		goldie.WithDiffEngine(goldie.ColoredDiff),
		goldie.WithTestNameForDir(true),
	)

	cases := map[string][]string{
		"last_only":       {"5"},
		"first_last":      {"2", "5"},
		"negative_step":   {"10", "-3", "1"},
		"fractional_step": {"0.5", "0.5", "2"},
	}

	for tn, args := range cases {
		t.Run(tn, func(t *testing.T) {
			res := Seq(testContext(args...))
			require.Equal(t, 0, res.Code, res.Stderr)
			g.Assert(t, tn, []byte(res.Stdout))
		})
	}
}

func TestSeqErrors(t *testing.T) {
	res := Seq(testContext("x"))
	assert.Equal(t, 1, res.Code)
	assert.Equal(t, "seq: invalid floating point argument: 'x'\n", res.Stderr)

	res = Seq(testContext("1", "0", "5"))
	assert.Equal(t, "seq: zero increment\n", res.Stderr)

	assert.Equal(t, "seq: missing operand\n", Seq(testContext()).Stderr)

	// An empty range is not an error.
	res = Seq(testContext("5", "1"))
	assert.Equal(t, 0, res.Code)
	assert.Empty(t, res.Stdout)
}

// Whole values beyond int64 range must not go through integer
// formatting, whose conversion result is platform-dependent. The
// default increment of 1 cannot advance at this magnitude, so the
// sequence must also terminate after the single representable value.
func TestSeqHugeWholeValues(t *testing.T) {
	res := Seq(testContext("1e300", "1e300"))
	require.Equal(t, 0, res.Code)
	assert.Equal(t, strconv.FormatFloat(1e300, 'f', -1, 64)+"\n", res.Stdout)

	res = Seq(testContext("-1e300", "-1e300"))
	require.Equal(t, 0, res.Code)
	assert.Equal(t, strconv.FormatFloat(-1e300, 'f', -1, 64)+"\n", res.Stdout)
}

func TestSeqStreamsToSink(t *testing.T) {
	ctx := testContext("3")
	sink := stream.New()
	ctx.Sink = sink

	res := Seq(ctx)
	sink.Close()

	require.Equal(t, 0, res.Code)
	// Streamed output is not duplicated in the buffered result.
	assert.Empty(t, res.Stdout)
	assert.Equal(t, "1\n2\n3\n", string(sink.CollectStdout()))
}

func TestYesBoundedWithoutSink(t *testing.T) {
	res := Yes(testContext())
	require.Equal(t, 0, res.Code)

	lines := strings.Split(strings.TrimRight(res.Stdout, "\n"), "\n")
	assert.Len(t, lines, maxBufferedYesLines)
	assert.Equal(t, "y", lines[0])

	res = Yes(testContext("hello", "world"))
	assert.True(t, strings.HasPrefix(res.Stdout, "hello world\n"))
}

func TestYesHonorsLineCap(t *testing.T) {
	ctx := testContext()
	ctx.MaxLines = 7

	res := Yes(ctx)
	require.Equal(t, 0, res.Code)
	assert.Equal(t, strings.Repeat("y\n", 7), res.Stdout)
}

// A cancelled yes must stop within one poll of the token even though it
// would otherwise stream forever.
func TestYesStopsOnCancellation(t *testing.T) {
	token := stream.NewToken()
	ctx := testContext()
	ctx.Sink = stream.NewCancelable(token)
	ctx.Cancelled = token.Cancelled

	finished := make(chan Result, 1)
	go func() { finished <- Yes(ctx) }()

	// Let it fill the buffer and block, then cancel.
	time.Sleep(10 * time.Millisecond)
	token.Cancel()

	select {
	case res := <-finished:
		assert.Equal(t, 130, res.Code)
	case <-time.After(time.Second):
		t.Fatal("yes did not stop after cancellation")
	}
}
