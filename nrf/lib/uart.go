package lib

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

// openPort is swapped in tests to avoid real hardware.
var openPort = serial.Open

// CaptureLines accumulates line-delimited input from r for exactly the given
// duration. The capture does not exit early on idle input; whatever arrived
// by the deadline is returned. The reader goroutine drains r until EOF or a
// read error, so closing the underlying stream releases it.
func CaptureLines(r io.Reader, d time.Duration) []string {
	lineCh := make(chan string, 64)
	go func() {
		scanner := bufio.NewScanner(r)
		for scanner.Scan() {
			select {
			case lineCh <- scanner.Text():
			default:
				// Drop lines if the consumer fell behind.
			}
		}
		close(lineCh)
	}()

	var lines []string
	deadline := time.After(d)
	for {
		select {
		case line, ok := <-lineCh:
			if !ok {
				return lines
			}
			lines = append(lines, line)
		case <-deadline:
			return lines
		}
	}
}

// ReadUART opens the given serial port and captures log lines for the given
// duration. The port is always closed before returning, whether or not any
// data arrived.
func ReadUART(portName string, baud int, d time.Duration) ([]string, error) {
	mode := &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	}

	port, err := openPort(portName, mode)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", portName, err)
	}
	defer port.Close()

	// A short read timeout keeps the reader goroutine from blocking past the
	// capture window on a silent port.
	if err := port.SetReadTimeout(time.Second); err != nil {
		return nil, fmt.Errorf("configuring %s: %w", portName, err)
	}

	return CaptureLines(port, d), nil
}
