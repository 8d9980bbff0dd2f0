package style

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Theme is a set of styles bound to one lipgloss renderer.
type Theme struct {
	Title     lipgloss.Style
	Subtitle  lipgloss.Style
	Muted     lipgloss.Style
	Success   lipgloss.Style
	Warning   lipgloss.Style
	Error     lipgloss.Style
	Code      lipgloss.Style
	Path      lipgloss.Style
	Extension lipgloss.Style
	Rule      lipgloss.Style
	Property  lipgloss.Style
}

// NewTheme builds the styles for r. Without color every style is plain
// and renders its input unchanged.
func NewTheme(r *lipgloss.Renderer, color bool) *Theme {
	if !color {
		plain := r.NewStyle()
		return &Theme{
			Title: plain, Subtitle: plain, Muted: plain, Success: plain,
			Warning: plain, Error: plain, Code: plain, Path: plain,
			Extension: plain, Rule: plain, Property: plain,
		}
	}

	return &Theme{
		Title:     r.NewStyle().Foreground(HeadingColor).Bold(true),
		Subtitle:  r.NewStyle().Foreground(PrimaryColor).Bold(true),
		Muted:     r.NewStyle().Foreground(MutedColor),
		Success:   r.NewStyle().Foreground(SuccessColor).Bold(true),
		Warning:   r.NewStyle().Foreground(WarningColor).Bold(true),
		Error:     r.NewStyle().Foreground(ErrorColor).Bold(true),
		Code:      r.NewStyle().Foreground(PrimaryColor).Background(SurfaceColor),
		Path:      r.NewStyle().Foreground(SecondaryColor).Italic(true),
		Extension: r.NewStyle().Foreground(ExtensionColor).Bold(true),
		Rule:      r.NewStyle().Foreground(RuleColor).Bold(true),
		Property:  r.NewStyle().Foreground(PropertyColor),
	}
}

// Indent prefixes every line of text with two spaces per level.
func Indent(text string, level int) string {
	pad := strings.Repeat("  ", level)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if line != "" {
			lines[i] = pad + line
		}
	}
	return strings.Join(lines, "\n")
}
