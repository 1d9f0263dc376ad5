//go:build linux

package output

import (
	"os/exec"
	"strings"
)

// SinkDescription returns the PulseAudio/PipeWire description of the
// default sink, or "" when pactl is unavailable.
func SinkDescription() string {
	out, err := exec.Command("pactl", "get-default-sink").Output()
	if err != nil {
		return ""
	}
	sinkName := strings.TrimSpace(string(out))
	if sinkName == "" {
		return ""
	}

	out, err = exec.Command("pactl", "list", "sinks").Output()
	if err != nil {
		return ""
	}
	return parseSinkDescription(string(out), sinkName)
}

// parseSinkDescription finds the Description line of the named sink in
// `pactl list sinks` output.
func parseSinkDescription(list, sinkName string) string {
	inSink := false
	for _, line := range strings.Split(list, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "Name: ") {
			inSink = strings.TrimPrefix(trimmed, "Name: ") == sinkName
		}
		if inSink && strings.HasPrefix(trimmed, "Description: ") {
			return strings.TrimPrefix(trimmed, "Description: ")
		}
	}
	return ""
}
