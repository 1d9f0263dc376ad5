//go:build linux

package output

import "testing"

const pactlSinks = `Sink #52
	State: RUNNING
	Name: alsa_output.pci-0000_00_1f.3.analog-stereo
	Description: Built-in Audio Analog Stereo
	Driver: PipeWire

Sink #77
	State: SUSPENDED
	Name: bluez_output.00_1B_66_AA_BB_CC.1
	Description: Headphones
	Driver: PipeWire
`

func TestParseSinkDescription(t *testing.T) {
	got := parseSinkDescription(pactlSinks, "bluez_output.00_1B_66_AA_BB_CC.1")
	if got != "Headphones" {
		t.Errorf("expected Headphones, got %q", got)
	}
	got = parseSinkDescription(pactlSinks, "alsa_output.pci-0000_00_1f.3.analog-stereo")
	if got != "Built-in Audio Analog Stereo" {
		t.Errorf("expected built-in description, got %q", got)
	}
}

func TestParseSinkDescriptionUnknownSink(t *testing.T) {
	if got := parseSinkDescription(pactlSinks, "missing"); got != "" {
		t.Errorf("expected empty description, got %q", got)
	}
	if got := parseSinkDescription("", "missing"); got != "" {
		t.Errorf("expected empty description for empty list, got %q", got)
	}
}
