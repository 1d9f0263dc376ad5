package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Styles, set by applyTheme.
var (
	titleStyle           lipgloss.Style
	borderStyle          lipgloss.Style
	labelStyle           lipgloss.Style
	selectedLabelStyle   lipgloss.Style
	valueStyle           lipgloss.Style
	currentStyle         lipgloss.Style
	sliderFillStyle      lipgloss.Style
	sliderTrackStyle     lipgloss.Style
	helpStyle            lipgloss.Style
	playingBadge         lipgloss.Style
	mutedBadge           lipgloss.Style
	bodyStyle            lipgloss.Style
	debugTitleStyle      lipgloss.Style
	debugRuleStyle       lipgloss.Style
	debugHeaderStyle     lipgloss.Style
	debugTimeStyle       lipgloss.Style
	debugCategoryStyle   lipgloss.Style
	debugMsgStyle        lipgloss.Style
	debugSepStyle        lipgloss.Style
	visualizerStyle      lipgloss.Style
	visualizerLabelStyle lipgloss.Style
)

func init() {
	applyTheme(themes["synthwave"])
}

// panelWidth is the total outer width of the main panel.
// borderStyle has: border (1+1) = 2, padding (2+2) = 4, total chrome = 6.
const panelWidth = 80
const panelWidthForStyle = panelWidth - 2 // passed to borderStyle.Width()
const panelContentWidth = panelWidth - 6  // actual usable text area

const (
	sliderLabelWidth = 12
	sliderBarWidth   = 36
)

// View renders the TUI.
func (m Model) View() string {
	var b strings.Builder

	titleText := "  SINETONE  "
	barTotal := panelContentWidth - len(titleText)
	barLeft := barTotal / 2
	barRight := barTotal - barLeft
	title := strings.Repeat("▓", barLeft) + titleText + strings.Repeat("▓", barRight)
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("Status:  "))
	b.WriteString(m.renderBadge())
	b.WriteString(bodyStyle.Render("  "))
	b.WriteString(m.renderVisualizer())
	b.WriteString("\n\n")

	for i := range m.Sliders {
		b.WriteString(m.renderSlider(i))
		b.WriteString("\n")
	}
	b.WriteString(currentStyle.Render(fmt.Sprintf("now %.1f Hz", m.CurrentFrequency)))
	b.WriteString("\n\n")

	b.WriteString(helpStyle.Render("←/→ adjust  shift+←/→ coarse  tab select  home/end range"))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("m mute  r reset  t theme  q quit"))

	if m.DebugMode || len(m.DebugEntries) > 0 {
		b.WriteString("\n\n")
		b.WriteString(m.renderDebugPanel())
	}

	return borderStyle.Width(panelWidthForStyle).Render(b.String())
}

func (m Model) renderSlider(i int) string {
	s := m.Sliders[i]

	marker, style := "  ", labelStyle
	if i == m.Selected {
		marker, style = "▸ ", selectedLabelStyle
	}

	filled := int(math.Round(s.Proportion() * sliderBarWidth))
	bar := sliderFillStyle.Render(strings.Repeat("━", filled)) +
		sliderTrackStyle.Render(strings.Repeat("─", sliderBarWidth-filled))

	return style.Width(sliderLabelWidth).Render(marker+s.Label) +
		bar +
		valueStyle.Render("  "+formatSliderValue(i, s.Value))
}

func formatSliderValue(i int, v float64) string {
	if i == sliderFrequency {
		return fmt.Sprintf("%.0f Hz", v)
	}
	return fmt.Sprintf("%.3f (%s)", v, formatDB(v))
}

// formatDB renders a linear gain in decibels relative to full scale.
func formatDB(gain float64) string {
	if gain <= 0 {
		return "-inf dB"
	}
	return fmt.Sprintf("%.1f dB", 20*math.Log10(gain))
}

const debugPanelMaxLines = 5

// Debug table column widths. Row content must fit within panelContentWidth.
const (
	colTimeWidth     = 15
	colCategoryWidth = 10
	colSepWidth      = 3 // " │ "
	colMsgWidth      = panelContentWidth - colTimeWidth - colCategoryWidth - colSepWidth*2
)

func (m Model) renderDebugPanel() string {
	sep := debugSepStyle.Render(" │ ")
	rule := debugRuleStyle.Render(strings.Repeat("─", panelContentWidth))

	var db strings.Builder

	db.WriteString(debugTitleStyle.Render("Debug"))
	db.WriteString("\n")
	db.WriteString(rule)
	db.WriteString("\n")

	db.WriteString(
		debugHeaderStyle.Width(colTimeWidth).Render("TIME") +
			sep +
			debugHeaderStyle.Width(colCategoryWidth).Render("TYPE") +
			sep +
			debugHeaderStyle.Width(colMsgWidth).Render("MESSAGE"))
	db.WriteString("\n")
	db.WriteString(rule)

	entries := m.DebugEntries
	if len(entries) > debugPanelMaxLines {
		entries = entries[len(entries)-debugPanelMaxLines:]
	}
	for _, entry := range entries {
		timeStr := entry.Time
		if len(timeStr) > colTimeWidth {
			timeStr = timeStr[:colTimeWidth]
		}

		cat := entry.Category
		if len(cat) > colCategoryWidth {
			cat = cat[:colCategoryWidth]
		}

		msg := entry.Message
		if len(msg) > colMsgWidth {
			msg = msg[:colMsgWidth-3] + "..."
		}

		db.WriteString("\n")
		db.WriteString(
			debugTimeStyle.Width(colTimeWidth).Render(timeStr) +
				sep +
				debugCategoryStyle.Width(colCategoryWidth).Render(cat) +
				sep +
				debugMsgStyle.Width(colMsgWidth).Render(msg))
	}

	return db.String()
}

const visualizerWidth = 20

func (m Model) renderVisualizer() string {
	scaled := math.Sqrt(m.OutputLevel)
	filled := int(math.Round(scaled * float64(visualizerWidth)))
	if filled > visualizerWidth {
		filled = visualizerWidth
	}
	if filled < 0 {
		filled = 0
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", visualizerWidth-filled)
	return visualizerLabelStyle.Render("Out  ") + visualizerStyle.Render(bar)
}

func (m Model) renderStatusBar() string {
	backend := helpStyle.Render("Backend: " + m.Backend)
	if !m.statusChecked {
		return backend + helpStyle.Render("  Device: ...  Rate: ...")
	}
	device := m.DeviceName
	if device == "" {
		device = "unknown"
	}
	return backend +
		helpStyle.Render("  Device: ") + valueStyle.Render(device) +
		helpStyle.Render("  Rate: ") + valueStyle.Render(fmt.Sprintf("%.0f Hz", m.SampleRate))
}

func (m Model) renderBadge() string {
	switch m.State {
	case StateMuted:
		return mutedBadge.Render("● Muted")
	default:
		return playingBadge.Render("● Playing")
	}
}
