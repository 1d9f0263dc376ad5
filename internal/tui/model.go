package tui

import (
	"io"
	"log"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/Danondso/sinetone/internal/config"
)

// Controls receives slider changes. *oscillator.Engine implements it.
type Controls interface {
	SetTargetFrequency(hz float64)
	SetTargetLevel(gain float64)
	CurrentFrequency() float64
}

// OutputStatus reports on the audio output. output.Player implements it.
type OutputStatus interface {
	OutputLevel() float64
	SampleRate() float64
	DeviceName() string
}

// State represents the playback state.
type State int

const (
	StatePlaying State = iota
	StateMuted
)

// Slider indices.
const (
	sliderFrequency = iota
	sliderLevel
	sliderCount
)

const (
	fineStep   = 0.01
	coarseStep = 0.1
)

// Messages sent through the Bubble Tea update loop.

type meterTickMsg struct{}

// StatusMsg carries the output device description.
type StatusMsg struct {
	DeviceName string
	SampleRate float64
}

type statusTickMsg struct{}

// DebugEntry is a structured debug log entry.
type DebugEntry struct {
	Time     string // e.g. "11:27:53"
	Category string // e.g. "audio", "slider"
	Message  string
}

// DebugLogMsg carries a structured debug log entry into the TUI.
type DebugLogMsg struct {
	Entry DebugEntry
}

const maxDebugLines = 50

// Model is the Bubble Tea model for the tone controls.
type Model struct {
	State        State
	Sliders      [sliderCount]Slider
	Selected     int
	Config       *config.Config
	Controls     Controls
	Output       OutputStatus
	Backend      string
	ThemeName    string
	Logger       *log.Logger
	DebugMode    bool
	DebugEntries []DebugEntry

	OutputLevel      float64
	CurrentFrequency float64
	DeviceName       string
	SampleRate       float64
	statusChecked    bool
}

// NewModel creates a TUI model with sliders at the configured initial tone.
func NewModel(cfg *config.Config, c Controls, out OutputStatus, logger *log.Logger, debug bool) Model {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	tone := cfg.Tone
	theme := LoadTheme(cfg.Theme)
	applyTheme(theme)
	return Model{
		State: StatePlaying,
		Sliders: [sliderCount]Slider{
			sliderFrequency: {
				Label: "Frequency",
				Min:   tone.MinFrequency,
				Max:   tone.MaxFrequency,
				Skew:  SkewFromMidpoint(tone.MinFrequency, tone.MaxFrequency, tone.FrequencyMidpoint),
				Value: tone.Frequency,
			},
			sliderLevel: {
				Label: "Level",
				Min:   0,
				Max:   tone.MaxLevel,
				Skew:  1,
				Value: tone.Level,
			},
		},
		Config:           cfg,
		Controls:         c,
		Output:           out,
		Backend:          cfg.Audio.Backend,
		ThemeName:        theme.Name,
		Logger:           logger,
		DebugMode:        debug,
		CurrentFrequency: tone.Frequency,
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.statusCheckCmd(), meterTickCmd())
}

// Update handles messages and transitions state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case meterTickMsg:
		if m.Output != nil {
			m.OutputLevel = m.Output.OutputLevel()
		}
		if m.Controls != nil {
			m.CurrentFrequency = m.Controls.CurrentFrequency()
		}
		return m, meterTickCmd()

	case StatusMsg:
		m.DeviceName = msg.DeviceName
		m.SampleRate = msg.SampleRate
		m.statusChecked = true
		return m, scheduleStatusRecheck()

	case statusTickMsg:
		return m, m.statusCheckCmd()

	case DebugLogMsg:
		m.DebugEntries = append(m.DebugEntries, msg.Entry)
		if len(m.DebugEntries) > maxDebugLines {
			m.DebugEntries = m.DebugEntries[len(m.DebugEntries)-maxDebugLines:]
		}
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab", "down", "j":
		m.Selected = (m.Selected + 1) % sliderCount
	case "shift+tab", "up", "k":
		m.Selected = (m.Selected + sliderCount - 1) % sliderCount
	case "right", "l":
		m.nudge(fineStep)
	case "left", "h":
		m.nudge(-fineStep)
	case "shift+right", "L":
		m.nudge(coarseStep)
	case "shift+left", "H":
		m.nudge(-coarseStep)
	case "home":
		m.Sliders[m.Selected].SetProportion(0)
		m.apply(m.Selected)
	case "end":
		m.Sliders[m.Selected].SetProportion(1)
		m.apply(m.Selected)
	case "r":
		m.Sliders[sliderFrequency].Value = m.Config.Tone.Frequency
		m.Sliders[sliderLevel].Value = m.Config.Tone.Level
		m.State = StatePlaying
		m.Logger.Printf("slider reset: %.1f Hz, level %.3f", m.Config.Tone.Frequency, m.Config.Tone.Level)
		m.apply(sliderFrequency)
		m.apply(sliderLevel)
	case "m":
		m.toggleMute()
	case "t":
		theme := NextTheme(m.ThemeName)
		applyTheme(theme)
		m.ThemeName = theme.Name
		m.Logger.Printf("theme: %s", theme.Name)
	}
	return m, nil
}

func (m *Model) nudge(delta float64) {
	m.Sliders[m.Selected].Nudge(delta)
	m.apply(m.Selected)
}

// apply writes slider i's value to the engine target. Moving the level
// slider while muted unmutes.
func (m *Model) apply(i int) {
	if m.Controls == nil {
		return
	}
	v := m.Sliders[i].Value
	switch i {
	case sliderFrequency:
		m.Controls.SetTargetFrequency(v)
		m.Logger.Printf("slider frequency: %.1f Hz", v)
	case sliderLevel:
		m.State = StatePlaying
		m.Controls.SetTargetLevel(v)
		m.Logger.Printf("slider level: %.4f", v)
	}
}

func (m *Model) toggleMute() {
	if m.State == StateMuted {
		m.apply(sliderLevel)
		return
	}
	m.State = StateMuted
	if m.Controls != nil {
		m.Controls.SetTargetLevel(0)
	}
	m.Logger.Printf("mute: on")
}

const meterTickInterval = 100 * time.Millisecond

func meterTickCmd() tea.Cmd {
	return tea.Tick(meterTickInterval, func(time.Time) tea.Msg {
		return meterTickMsg{}
	})
}

const statusRecheckInterval = 30 * time.Second

func (m Model) statusCheckCmd() tea.Cmd {
	out := m.Output
	return func() tea.Msg {
		if out == nil {
			return StatusMsg{}
		}
		return StatusMsg{DeviceName: out.DeviceName(), SampleRate: out.SampleRate()}
	}
}

func scheduleStatusRecheck() tea.Cmd {
	return tea.Tick(statusRecheckInterval, func(time.Time) tea.Msg {
		return statusTickMsg{}
	})
}
