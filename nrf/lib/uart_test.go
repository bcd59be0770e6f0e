package lib

import (
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCaptureLinesReadsUntilEOF(t *testing.T) {
	r := strings.NewReader("first\nsecond\nthird\n")

	lines := CaptureLines(r, 5*time.Second)

	assert.Equal(t, []string{"first", "second", "third"}, lines)
}

func TestCaptureLinesStopsAtDeadline(t *testing.T) {
	pr, pw := io.Pipe()
	defer pr.Close()
	defer pw.Close()

	go func() {
		pw.Write([]byte("boot banner\nready\n"))
		// The writer stays open: a silent port, not a closed one.
	}()

	start := time.Now()
	lines := CaptureLines(pr, 300*time.Millisecond)
	elapsed := time.Since(start)

	assert.Equal(t, []string{"boot banner", "ready"}, lines)
	assert.GreaterOrEqual(t, elapsed, 300*time.Millisecond, "capture should run the full duration")
	assert.Less(t, elapsed, 3*time.Second)
}

func TestCaptureLinesIdleStream(t *testing.T) {
	pr, pw := io.Pipe()
	defer pr.Close()
	defer pw.Close()

	lines := CaptureLines(pr, 200*time.Millisecond)

	assert.Empty(t, lines)
}

func TestReadUARTInvalidPort(t *testing.T) {
	_, err := ReadUART("/dev/nonexistent-port-for-test", 115200, time.Second)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "/dev/nonexistent-port-for-test")
}
