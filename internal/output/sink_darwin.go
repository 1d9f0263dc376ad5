//go:build darwin

package output

// SinkDescription returns "" on macOS; PortAudio's CoreAudio device names
// are already descriptive.
func SinkDescription() string {
	return ""
}
