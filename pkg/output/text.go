package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/arthur-debert/prjconf/pkg/core"
	"github.com/arthur-debert/prjconf/pkg/errors"
	"github.com/arthur-debert/prjconf/pkg/rules"
	"github.com/arthur-debert/prjconf/pkg/style"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

type textRenderer struct {
	w      io.Writer
	markup *style.MarkupParser
}

func newTextRenderer(w io.Writer, color bool) *textRenderer {
	r := lipgloss.NewRenderer(w)
	if color {
		r.SetColorProfile(termenv.ANSI256)
	} else {
		r.SetColorProfile(termenv.Ascii)
	}
	return &textRenderer{w: w, markup: style.NewMarkupParser(style.NewTheme(r, color))}
}

func (r *textRenderer) write(lines []string) error {
	_, err := fmt.Fprintln(r.w, r.markup.Render(strings.Join(lines, "\n")))
	return err
}

func (r *textRenderer) RenderResult(result *core.Result) error {
	lines := []string{
		fmt.Sprintf("[title]%s[/title] [muted](template %s)[/muted]", result.Project, result.Template),
		"",
		"[subtitle]Schedule[/subtitle]",
	}
	lines = append(lines, orderLines(result.Order)...)

	lines = append(lines, "", "[subtitle]Properties[/subtitle]")
	for _, p := range result.Properties {
		lines = append(lines, fmt.Sprintf("  [property]%s[/property] = %s", p.Name, strings.Join(p.Values, " ")))
	}

	lines = append(lines, "", "[subtitle]Rules[/subtitle]")
	for _, rule := range result.Rules {
		lines = append(lines, ruleLines(rule)...)
	}

	if len(result.Warnings) > 0 {
		lines = append(lines, "", "[subtitle]Warnings[/subtitle]")
		for _, w := range result.Warnings {
			lines = append(lines, "  [warning]![/warning] "+w)
		}
	}
	return r.write(lines)
}

func (r *textRenderer) RenderOrder(order []string) error {
	if len(order) == 0 {
		return r.write([]string{"[muted]No finalize hooks registered[/muted]"})
	}
	return r.write(orderLines(order))
}

func (r *textRenderer) RenderError(err error) error {
	lines := []string{"[error]Error:[/error] " + err.Error()}
	if pe := errors.FindError(err, errors.ErrUnknownTemplate); pe != nil {
		if available, ok := pe.Details["available"].([]string); ok {
			lines = append(lines, "  [muted]available templates:[/muted] "+strings.Join(available, ", "))
		}
	}
	return r.write(lines)
}

func orderLines(order []string) []string {
	lines := make([]string, 0, len(order))
	for i, name := range order {
		lines = append(lines, fmt.Sprintf("  %d. [extension]%s[/extension]", i+1, name))
	}
	return lines
}

func ruleLines(rule *rules.Rule) []string {
	header := "  [rule]" + rule.Name + "[/rule]:"
	if deps := prerequisiteList(rule); deps != "" {
		header += " " + deps
	}
	lines := []string{header}
	if rule.Help != "" {
		lines = append(lines, "    [muted]# "+rule.Help+"[/muted]")
	}
	for _, cmd := range rule.Commands {
		lines = append(lines, "    [code]"+cmd+"[/code]")
	}
	return lines
}

// prerequisiteList renders prerequisites make style: hard ones first, then
// order-only ones after a pipe.
func prerequisiteList(rule *rules.Rule) string {
	var hard, orderOnly []string
	for _, p := range rule.Prerequisites {
		if p.OrderOnly {
			orderOnly = append(orderOnly, p.Name)
		} else {
			hard = append(hard, p.Name)
		}
	}
	out := strings.Join(hard, " ")
	if len(orderOnly) > 0 {
		if out != "" {
			out += " "
		}
		out += "| " + strings.Join(orderOnly, " ")
	}
	return out
}
