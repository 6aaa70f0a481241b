// Package render provides output rendering for the rpn REPL.
package render

import (
	"github.com/charmbracelet/lipgloss"
)

// ANSI colors used across the REPL
const (
	ColorCyan   = lipgloss.Color("12") // Results
	ColorYellow = lipgloss.Color("11") // Banner, prompts
	ColorRed    = lipgloss.Color("9")  // Error indicator
	ColorGray   = lipgloss.Color("8")  // Dim/secondary (traces, hints)
)

// Symbols
const (
	SymbolResult        = "="
	SymbolError         = "!"
	SymbolSystemMessage = "→"
)

// Style definitions using Lip Gloss
var (
	// TraceStyle is used for per-operation trace lines
	TraceStyle = lipgloss.NewStyle().Foreground(ColorGray)

	// ResultStyle is used for the value of a line
	ResultStyle = lipgloss.NewStyle().Foreground(ColorCyan).Bold(true)

	// ErrorStyle is used for diagnostics
	ErrorStyle = lipgloss.NewStyle().Foreground(ColorRed)

	// DimStyle is used for secondary information
	DimStyle = lipgloss.NewStyle().Foreground(ColorGray)

	// SystemMessageStyle is used for system/status messages
	SystemMessageStyle = lipgloss.NewStyle().Foreground(ColorGray)
)

// StyledSymbol returns a symbol with appropriate styling applied
func StyledSymbol(symbol string) string {
	switch symbol {
	case SymbolResult:
		return ResultStyle.Render(symbol)
	case SymbolError:
		return ErrorStyle.Render(symbol)
	case SymbolSystemMessage:
		return SystemMessageStyle.Render(symbol)
	default:
		return symbol
	}
}
