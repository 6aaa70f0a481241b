package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// ExitHint tells the user how to leave the REPL.
const ExitHint = "Press [Enter] or [Ctrl + X] without typing anything to exit properly."

// WelcomeInfo contains information to display in the welcome screen.
type WelcomeInfo struct {
	// Version is the rpn version string
	Version string
	// HistoryLines is the number of lines loaded from history
	HistoryLines int
}

// tips is the list of tips to display in the welcome screen.
// A "tip of the day" is selected based on the current date.
var tips = []string{
	"operators follow their operands: 1 2 + prints 3",
	"press Tab to complete function and constant names",
	"press Up/Down to navigate input history",
	"unknown names are asked for once per line: x x * squares x",
	"log takes the base last: 8 2 log prints 3",
	"trig functions work in radians: PI 2 / sin prints 1",
	"press Ctrl+A to jump to start of line",
	"press Ctrl+E to jump to end of line",
}

// ASCII art logo for rpn
var rpnLogo = []string{
	" _ __ _ __  _ __  ",
	"| '__| '_ \\| '_ \\ ",
	"| |  | |_) | | | |",
	"|_|  | .__/|_| |_|",
	"     |_|          ",
}

// getTipOfTheDay returns a tip based on the current date.
// The same tip is shown for the entire day, changing at midnight.
func getTipOfTheDay() string {
	if len(tips) == 0 {
		return ""
	}
	now := time.Now()
	daysSinceEpoch := now.Year()*365 + int(now.Month())*31 + now.Day()
	index := daysSinceEpoch % len(tips)
	return tips[index]
}

// RenderWelcome renders the welcome screen to the given writer.
// The welcome screen displays the logo on the left and session info on the right.
func RenderWelcome(w io.Writer, info WelcomeInfo, termWidth int) {
	titleStyle := lipgloss.NewStyle().Foreground(ColorYellow).Bold(true)
	logoStyle := lipgloss.NewStyle().Foreground(ColorYellow)
	labelStyle := lipgloss.NewStyle().Foreground(ColorGray)
	valueStyle := lipgloss.NewStyle().Foreground(ColorYellow)
	dimStyle := lipgloss.NewStyle().Foreground(ColorGray).Italic(true)

	logoWidth := 18
	minGap := 4
	maxInfoWidth := 40

	var infoLines []string

	version := info.Version
	if version == "" {
		version = "dev"
	}
	infoLines = append(infoLines, titleStyle.Render("RPN "+version))
	infoLines = append(infoLines, "")

	if info.HistoryLines > 0 {
		infoLines = append(infoLines, labelStyle.Render("history: ")+valueStyle.Render(fmt.Sprintf("%d lines", info.HistoryLines)))
	} else {
		infoLines = append(infoLines, labelStyle.Render("history: ")+dimStyle.Render("empty"))
	}

	numLines := len(rpnLogo)
	if len(infoLines) > numLines {
		numLines = len(infoLines)
	}

	infoWidth := termWidth - logoWidth - minGap
	if infoWidth > maxInfoWidth {
		infoWidth = maxInfoWidth
	}
	tip := getTipOfTheDay()

	if infoWidth < 20 {
		// Terminal too narrow, just show info without logo
		for _, line := range infoLines {
			fmt.Fprintln(w, line)
		}
		fmt.Fprintln(w, ExitHint)
		if tip != "" {
			fmt.Fprintln(w, dimStyle.Render("tip: "+tip))
		}
		fmt.Fprintln(w)
		return
	}

	var output strings.Builder
	output.WriteString("\n")

	for i := 0; i < numLines; i++ {
		var logoLine string
		if i < len(rpnLogo) {
			logoLine = logoStyle.Render(rpnLogo[i])
		} else {
			logoLine = strings.Repeat(" ", logoWidth)
		}

		var infoLine string
		if i < len(infoLines) {
			infoLine = infoLines[i]
		}

		gap := strings.Repeat(" ", minGap)
		output.WriteString(logoLine + gap + infoLine + "\n")
	}

	output.WriteString("\n")
	output.WriteString(ExitHint + "\n")
	if tip != "" {
		output.WriteString(dimStyle.Render("tip: "+tip) + "\n")
	}
	output.WriteString("\n")

	fmt.Fprint(w, output.String())
}
