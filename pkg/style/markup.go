package style

import (
	"regexp"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser renders [tag]text[/tag] markup with a theme.
type MarkupParser struct {
	styles   map[string]lipgloss.Style
	patterns map[string]*regexp.Regexp
}

var anyTag = regexp.MustCompile(`\[/?[a-z_]+\]`)

// NewMarkupParser returns a parser for the tags of t.
func NewMarkupParser(t *Theme) *MarkupParser {
	p := &MarkupParser{
		styles:   make(map[string]lipgloss.Style),
		patterns: make(map[string]*regexp.Regexp),
	}
	for tag, s := range map[string]lipgloss.Style{
		"title":     t.Title,
		"subtitle":  t.Subtitle,
		"muted":     t.Muted,
		"success":   t.Success,
		"warning":   t.Warning,
		"error":     t.Error,
		"code":      t.Code,
		"path":      t.Path,
		"extension": t.Extension,
		"rule":      t.Rule,
		"property":  t.Property,
	} {
		p.AddStyle(tag, s)
	}
	return p
}

// AddStyle registers a tag.
func (p *MarkupParser) AddStyle(tag string, s lipgloss.Style) {
	p.styles[tag] = s
	p.patterns[tag] = regexp.MustCompile(`\[` + regexp.QuoteMeta(tag) + `\](.*?)\[/` + regexp.QuoteMeta(tag) + `\]`)
}

// Render replaces every known tag pair with its styled content. Tags do not
// nest.
func (p *MarkupParser) Render(text string) string {
	tags := make([]string, 0, len(p.styles))
	for tag := range p.styles {
		tags = append(tags, tag)
	}
	sort.Strings(tags)

	for _, tag := range tags {
		s := p.styles[tag]
		pattern := p.patterns[tag]
		text = pattern.ReplaceAllStringFunc(text, func(match string) string {
			return s.Render(pattern.FindStringSubmatch(match)[1])
		})
	}
	return text
}

// Strip removes all markup tags.
func Strip(text string) string {
	return anyTag.ReplaceAllString(text, "")
}
