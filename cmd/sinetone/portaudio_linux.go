//go:build linux

package main

import (
	"os"
	"syscall"

	"github.com/gordonklaus/portaudio"
)

// initPortAudio initializes PortAudio with ALSA/JACK probing noise hidden.
func initPortAudio() error {
	return withQuietStderr(portaudio.Initialize)
}

// withQuietStderr runs fn with file descriptor 2 pointed at /dev/null so
// that C libraries cannot scribble over the terminal UI. If stderr cannot
// be redirected, fn runs unchanged.
func withQuietStderr(fn func() error) error {
	stderrFd := int(os.Stderr.Fd()) //nolint:gosec // fd fits in int on all supported platforms
	saved, err := syscall.Dup(stderrFd)
	if err != nil {
		return fn()
	}
	defer syscall.Close(saved)

	devNull, err := os.Open(os.DevNull)
	if err != nil {
		return fn()
	}
	_ = syscall.Dup2(int(devNull.Fd()), stderrFd)
	_ = devNull.Close()
	defer syscall.Dup2(saved, stderrFd)

	return fn()
}
