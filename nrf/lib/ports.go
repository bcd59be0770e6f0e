package lib

import (
	"fmt"
	"strings"

	"go.bug.st/serial/enumerator"
)

// nordicVID is the Nordic Semiconductor USB vendor ID. Development kits also
// enumerate through the onboard SEGGER J-Link interface, so the product
// string heuristics below matter in practice.
const nordicVID = "1915"

// PortInfo holds details about a serial port.
type PortInfo struct {
	Name         string
	IsUSB        bool
	VID          string
	PID          string
	SerialNumber string
	Product      string
}

// PortLister enumerates host serial ports. Swapped for a fake in tests.
type PortLister func() ([]PortInfo, error)

// ListPorts returns the serial ports currently present on the host. Ports
// are re-enumerated on every call; nothing is cached.
func ListPorts() ([]PortInfo, error) {
	ports, err := enumerator.GetDetailedPortsList()
	if err != nil {
		return nil, err
	}

	var result []PortInfo
	for _, p := range ports {
		result = append(result, PortInfo{
			Name:         p.Name,
			IsUSB:        p.IsUSB,
			VID:          p.VID,
			PID:          p.PID,
			SerialNumber: p.SerialNumber,
			Product:      p.Product,
		})
	}
	return result, nil
}

// PreferredPort picks the port most likely to be the attached nRF board:
// first a port identifying itself as Nordic hardware (product string or
// vendor ID), then the first port with a USB-serial device name, else none.
// With several qualifying ports the first match wins.
func PreferredPort(ports []PortInfo) (PortInfo, bool) {
	for _, p := range ports {
		if isNordicPort(p) {
			return p, true
		}
	}
	for _, p := range ports {
		if isUSBSerialName(p.Name) {
			return p, true
		}
	}
	return PortInfo{}, false
}

func isNordicPort(p PortInfo) bool {
	if strings.EqualFold(p.VID, nordicVID) {
		return true
	}
	product := p.Product
	return strings.Contains(product, "Nordic") ||
		strings.Contains(product, "nRF") ||
		strings.Contains(product, "J-Link")
}

func isUSBSerialName(name string) bool {
	return strings.Contains(name, "ACM") ||
		strings.Contains(name, "ttyUSB") ||
		strings.Contains(name, "usbmodem")
}

// FormatPorts renders a port list for display, one port per line.
func FormatPorts(ports []PortInfo) string {
	if len(ports) == 0 {
		return "  (none found)"
	}

	lines := make([]string, 0, len(ports))
	for _, p := range ports {
		desc := p.Product
		if desc == "" {
			desc = "unknown"
		}
		if p.IsUSB {
			lines = append(lines, fmt.Sprintf("  %s — %s [%s:%s]", p.Name, desc, p.VID, p.PID))
		} else {
			lines = append(lines, fmt.Sprintf("  %s — %s", p.Name, desc))
		}
	}
	return strings.Join(lines, "\n")
}

// PortNames returns just the device paths, for "no port found" diagnostics.
func PortNames(ports []PortInfo) []string {
	names := make([]string, 0, len(ports))
	for _, p := range ports {
		names = append(names, p.Name)
	}
	return names
}
