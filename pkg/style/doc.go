// Package style holds the lipgloss colors and styles of the terminal
// output, and a small [tag]...[/tag] markup used by the text renderer.
package style
