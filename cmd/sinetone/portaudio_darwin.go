//go:build darwin

package main

import "github.com/gordonklaus/portaudio"

// initPortAudio initializes PortAudio. CoreAudio doesn't produce ALSA/JACK
// noise, so stderr is left alone.
func initPortAudio() error {
	return portaudio.Initialize()
}

func withQuietStderr(fn func() error) error {
	return fn()
}
