package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme defines the color scheme for terminal output.
type Theme struct {
	Primary lipgloss.Color // Main accent color
	Dim     lipgloss.Color // Dimmed/help text color
}

// DefaultTheme is the default bright green theme.
var DefaultTheme = Theme{
	Primary: lipgloss.Color("#00ff9f"),
	Dim:     lipgloss.Color("#6e7681"),
}

// Styles holds all styles derived from a theme.
type Styles struct {
	Title lipgloss.Style
	Label lipgloss.Style
	Dim   lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t Theme) Styles {
	return Styles{
		Title: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Label: lipgloss.NewStyle().Bold(true).Foreground(t.Primary),
		Dim:   lipgloss.NewStyle().Foreground(t.Dim),
	}
}

// RenderCycle renders one completed cycle for the terminal viewer.
func (s Styles) RenderCycle(cycle, total int, prompt, imagePath, description string) string {
	var b strings.Builder
	b.WriteString(s.Title.Render(fmt.Sprintf("Cycle %d of %d", cycle, total)))
	b.WriteString("\n")
	b.WriteString(s.Label.Render("Prompt: "))
	b.WriteString(prompt)
	b.WriteString("\n")
	b.WriteString(s.Label.Render("Image:  "))
	b.WriteString(s.Dim.Render(imagePath))
	b.WriteString("\n")
	b.WriteString(s.Label.Render("Description: "))
	b.WriteString(description)
	b.WriteString("\n")
	return b.String()
}

// RenderRunHeader renders the banner shown before a run starts.
func (s Styles) RenderRunHeader(prompt string, cycles int) string {
	var b strings.Builder
	b.WriteString(s.Title.Render("AI Telephone Game with Images"))
	b.WriteString("\n")
	b.WriteString(s.Label.Render("Initial Prompt: "))
	b.WriteString(prompt)
	b.WriteString("\n")
	b.WriteString(s.Dim.Render(fmt.Sprintf("%d cycles", cycles)))
	b.WriteString("\n")
	return b.String()
}
