package output

import (
	"fmt"

	"github.com/gordonklaus/portaudio"
)

// Device describes an output-capable PortAudio device.
type Device struct {
	Name              string
	HostAPI           string
	MaxOutputChannels int
	DefaultSampleRate float64
	IsDefault         bool
}

// Devices lists the devices that can play audio. portaudio.Initialize()
// must have been called.
func Devices() ([]Device, error) {
	infos, err := portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("list devices: %w", err)
	}
	def, err := portaudio.DefaultOutputDevice()
	if err != nil {
		def = nil
	}
	return outputDevices(infos, def), nil
}

func outputDevices(infos []*portaudio.DeviceInfo, def *portaudio.DeviceInfo) []Device {
	var out []Device
	for _, info := range infos {
		if info == nil || info.MaxOutputChannels < 1 {
			continue
		}
		d := Device{
			Name:              info.Name,
			MaxOutputChannels: info.MaxOutputChannels,
			DefaultSampleRate: info.DefaultSampleRate,
			HostAPI:           hostAPIName(info),
		}
		d.IsDefault = def != nil && info.Name == def.Name && d.HostAPI == hostAPIName(def)
		out = append(out, d)
	}
	return out
}

func hostAPIName(info *portaudio.DeviceInfo) string {
	if info.HostApi == nil {
		return ""
	}
	return info.HostApi.Name
}
