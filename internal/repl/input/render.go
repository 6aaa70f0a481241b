package input

import (
	"strings"

	"github.com/atinylittleshell/rpn/internal/repl/render"
	"github.com/charmbracelet/lipgloss"
)

// RenderConfig holds styling configuration for rendering input components.
type RenderConfig struct {
	// PromptStyle is the style applied to the prompt string.
	PromptStyle lipgloss.Style

	// TextStyle is the style applied to the input text.
	TextStyle lipgloss.Style

	// CursorStyle is the style applied to the cursor character.
	CursorStyle lipgloss.Style

	// CandidateStyle is the style for completion candidates.
	CandidateStyle lipgloss.Style

	// SelectedStyle is the style for the selected completion candidate.
	SelectedStyle lipgloss.Style

	// HelpStyle is the style for the help line.
	HelpStyle lipgloss.Style
}

// DefaultRenderConfig returns a RenderConfig with sensible default styles.
func DefaultRenderConfig() RenderConfig {
	return RenderConfig{
		PromptStyle:    lipgloss.NewStyle().Foreground(render.ColorYellow),
		TextStyle:      lipgloss.NewStyle(),
		CursorStyle:    lipgloss.NewStyle().Reverse(true),
		CandidateStyle: lipgloss.NewStyle().Foreground(render.ColorGray),
		SelectedStyle:  lipgloss.NewStyle().Foreground(render.ColorYellow).Bold(true),
		HelpStyle:      lipgloss.NewStyle().Foreground(render.ColorGray).Italic(true),
	}
}

// Renderer handles rendering of input components.
type Renderer struct {
	config RenderConfig
	width  int
}

// NewRenderer creates a new Renderer with the given configuration.
func NewRenderer(config RenderConfig) *Renderer {
	return &Renderer{
		config: config,
		width:  80,
	}
}

// SetWidth sets the terminal width for rendering.
func (r *Renderer) SetWidth(width int) {
	if width > 0 {
		r.width = width
	}
}

// Width returns the current terminal width.
func (r *Renderer) Width() int {
	return r.width
}

// RenderInputLine renders the prompt, the text and, when focused, the cursor.
// Tabs in the prompt are written raw so the variable prompt keeps its indent.
func (r *Renderer) RenderInputLine(prompt string, buffer *Buffer, focused bool) string {
	var sb strings.Builder

	indent := len(prompt) - len(strings.TrimLeft(prompt, "\t"))
	sb.WriteString(prompt[:indent])
	if rest := prompt[indent:]; rest != "" {
		sb.WriteString(r.config.PromptStyle.Render(rest))
	}

	runes := []rune(buffer.Text())
	pos := max(0, min(buffer.Pos(), len(runes)))

	if pos > 0 {
		sb.WriteString(r.config.TextStyle.Render(string(runes[:pos])))
	}
	if !focused {
		if pos < len(runes) {
			sb.WriteString(r.config.TextStyle.Render(string(runes[pos:])))
		}
		return sb.String()
	}

	if pos < len(runes) {
		sb.WriteString(r.config.CursorStyle.Render(string(runes[pos])))
		if pos+1 < len(runes) {
			sb.WriteString(r.config.TextStyle.Render(string(runes[pos+1:])))
		}
	} else {
		sb.WriteString(r.config.CursorStyle.Render(" "))
	}
	return sb.String()
}

// RenderCompletions renders the candidate list on one line, truncated to the
// terminal width.
func (r *Renderer) RenderCompletions(cs *CompletionState) string {
	if !cs.IsVisible() {
		return ""
	}

	var sb strings.Builder
	used := 0
	for i, suggestion := range cs.Suggestions() {
		item := suggestion
		if i > 0 {
			item = "  " + item
		}
		if used+lipgloss.Width(item) > r.width {
			sb.WriteString(r.config.CandidateStyle.Render(" …"))
			break
		}
		used += lipgloss.Width(item)

		if i > 0 {
			sb.WriteString("  ")
		}
		if i == cs.Selected() {
			sb.WriteString(r.config.SelectedStyle.Render(suggestion))
		} else {
			sb.WriteString(r.config.CandidateStyle.Render(suggestion))
		}
	}
	return sb.String()
}

// RenderHelp renders a help line.
func (r *Renderer) RenderHelp(text string) string {
	if text == "" {
		return ""
	}
	return r.config.HelpStyle.Render(text)
}
