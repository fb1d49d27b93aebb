package testjson

import (
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStream_CallsFuncForEachEvent(t *testing.T) {
	input := lines(
		`{"Action":"start","Package":"hw/core"}`,
		`{"Action":"run","Package":"hw/core","Test":"TestFoo"}`,
		`{"Action":"pass","Package":"hw/core","Test":"TestFoo","Elapsed":0.01}`,
		`{"Action":"pass","Package":"hw/core","Elapsed":0.5}`,
	)

	var events []TestEvent
	malformed, err := Stream(context.Background(), strings.NewReader(input), func(e TestEvent) {
		events = append(events, e)
	})
	require.NoError(t, err)
	assert.Zero(t, malformed)
	require.Len(t, events, 4)
	assert.Equal(t, "start", events[0].Action)
	assert.Equal(t, "TestFoo", events[2].Test)
}

func TestStream_CountsMalformedLines(t *testing.T) {
	input := lines(
		`{"Action":"run","Package":"x","Test":"T1"}`,
		`{CORRUPTED}`,
		`{"Action":"fail","Package":"x","Test":"T1","Elapsed":0.1}`,
		`not-json-at-all`,
	)

	var n int
	malformed, err := Stream(context.Background(), strings.NewReader(input), func(TestEvent) { n++ })
	require.NoError(t, err)
	assert.Equal(t, 2, malformed)
	assert.Equal(t, 2, n)
}

func TestStream_RespectsContextCancellation(t *testing.T) {
	input := lines(`{"Action":"start","Package":"hw/core"}`)

	ctx, cancel := context.WithCancel(context.Background())
	var count int
	_, err := Stream(ctx, strings.NewReader(input), func(TestEvent) {
		count++
		cancel()
	})
	if err != nil {
		assert.ErrorIs(t, err, context.Canceled)
	}
	assert.Equal(t, 1, count)
}

// stalledReader never returns from Read until closed.
type stalledReader struct {
	done chan struct{}
}

func (s *stalledReader) Read([]byte) (int, error) {
	<-s.done
	return 0, io.EOF
}

func (s *stalledReader) Close() error {
	select {
	case <-s.done:
	default:
		close(s.done)
	}
	return nil
}

func TestStream_CancelUnblocksStalledReader(t *testing.T) {
	sr := &stalledReader{done: make(chan struct{})}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		_, err := Stream(ctx, sr, func(TestEvent) {})
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	case <-time.After(2 * time.Second):
		t.Fatal("Stream did not return after the deadline")
	}
}
