package ui

import (
	"github.com/charmbracelet/lipgloss"

	"snipmd/internal/config"
)

// StyleManager encapsulates the TUI styles
type StyleManager struct {
	Header   lipgloss.Style
	Path     lipgloss.Style
	Region   lipgloss.Style
	Cursor   lipgloss.Style
	Dim      lipgloss.Style
	Selected lipgloss.Style
	Divider  lipgloss.Style

	SelectedBg lipgloss.Color
}

// DefaultStyles returns a StyleManager with default styles
func DefaultStyles() *StyleManager {
	return &StyleManager{
		Header:     lipgloss.NewStyle().Bold(true),
		Path:       lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Region:     lipgloss.NewStyle().Foreground(lipgloss.Color("36")),
		Cursor:     lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
		Dim:        lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Selected:   lipgloss.NewStyle().Background(lipgloss.Color("236")),
		Divider:    lipgloss.NewStyle().Foreground(lipgloss.Color("240")),
		SelectedBg: lipgloss.Color("236"),
	}
}

// LoadFromConfig updates styles based on configuration
func (s *StyleManager) LoadFromConfig() {
	headerColor := lipgloss.Color(config.GetColorHeader())
	borderColor := lipgloss.Color(config.GetColorBorder())
	cursorColor := lipgloss.Color(config.GetColorCursor())
	selectedBg := lipgloss.Color(config.GetColorSelected())
	dimColor := lipgloss.Color(config.GetColorDim())

	s.Header = lipgloss.NewStyle().Bold(true).Foreground(headerColor)
	s.Path = lipgloss.NewStyle().Foreground(dimColor)
	s.Region = lipgloss.NewStyle().Foreground(headerColor)
	s.Cursor = lipgloss.NewStyle().Foreground(cursorColor)
	s.Dim = lipgloss.NewStyle().Foreground(dimColor)
	s.Selected = lipgloss.NewStyle().Background(selectedBg)
	s.Divider = lipgloss.NewStyle().Foreground(borderColor)
	s.SelectedBg = selectedBg
}

// WithSelection returns a copy of the given style with the selected background applied
func (s *StyleManager) WithSelection(style lipgloss.Style) lipgloss.Style {
	return style.Background(s.SelectedBg)
}

// Global style manager instance
var styles = DefaultStyles()

// RefreshStyles updates the global styles from config
func RefreshStyles() {
	styles.LoadFromConfig()
}
