package batch

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestProgressTracker_Basic(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 4, 2)

	tracker.Start()
	assert.True(t, tracker.started, "should be started")

	tracker.Done(false)
	tracker.Done(true)
	tracker.Done(false)
	tracker.Done(false)

	assert.Greater(t, tracker.Elapsed(), time.Duration(0), "elapsed time should be positive")

	output := buf.String()
	assert.Contains(t, output, "2/4", "should report at the interval")
	assert.Contains(t, output, "4/4 (100.0%) - 1 failed", "should show completion")
}

func TestProgressTracker_Finish(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 100)

	tracker.Start()
	tracker.Done(false)
	assert.Empty(t, buf.String(), "no report before the interval")

	tracker.Finish()
	output := buf.String()
	assert.Contains(t, output, "1/10", "finish reports the current count")
	assert.Contains(t, output, "\n", "finish should print newline")
}

func TestProgressTracker_NotStarted(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 10, 1)

	tracker.Done(false)
	tracker.Finish()

	assert.Empty(t, buf.String(), "should not output before Start")
	assert.Equal(t, time.Duration(0), tracker.Elapsed())
}

func TestProgressTracker_ClampsToTotal(t *testing.T) {
	var buf bytes.Buffer
	tracker := NewProgressTracker(&buf, 1, 0)

	tracker.Start()
	tracker.Done(false)
	tracker.Done(false)

	assert.Equal(t, 1, tracker.current)
	assert.Equal(t, 1, tracker.reportInterval, "interval has a floor of 1")
}
