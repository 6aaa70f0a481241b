package completion

import (
	"strings"
	"unicode"

	"github.com/atinylittleshell/rpn/internal/calc"
	"github.com/samber/lo"
)

// Provider offers command names as completion candidates. It is stateless
// apart from the fixed command list it is created with.
type Provider struct {
	commands []string
}

// NewProvider creates a Provider over the given commands. The order of
// commands is the order candidates are returned in.
func NewProvider(commands []string) *Provider {
	return &Provider{
		commands: append([]string(nil), commands...),
	}
}

// Commands returns the command list.
func (p *Provider) Commands() []string {
	return append([]string(nil), p.commands...)
}

// ListCandidates returns every command that starts with word, in command
// order. An empty word matches every command.
func (p *Provider) ListCandidates(word string) []string {
	return lo.Filter(p.commands, func(cmd string, _ int) bool {
		return strings.HasPrefix(cmd, word)
	})
}

// Complete returns the text to append to word when exactly one command
// matches it. It reports false when no command or several commands match.
func (p *Provider) Complete(word string) (string, bool) {
	candidates := p.ListCandidates(word)
	if len(candidates) != 1 {
		return "", false
	}
	return candidates[0][len(word):], true
}

// GetCompletions returns the full candidate words for the word under the
// cursor. pos is a rune offset into line.
func (p *Provider) GetCompletions(line string, pos int) []string {
	word := currentWord(line, pos)
	candidates := p.ListCandidates(word)
	if len(candidates) > 0 {
		return candidates
	}
	// numeric literals have nothing to complete
	return []string{}
}

// GetHelpInfo describes the operation named by the word under the cursor.
func (p *Provider) GetHelpInfo(line string, pos int) string {
	word := currentWord(line, pos)
	if word == "" {
		return ""
	}
	op, ok := calc.Lookup(word)
	if !ok {
		return ""
	}
	return op.Help
}

// currentWord returns the part of the word under the cursor that lies before
// the cursor.
func currentWord(line string, pos int) string {
	runes := []rune(line)
	if pos < 0 {
		pos = 0
	}
	if pos > len(runes) {
		pos = len(runes)
	}

	start := pos
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}
	return string(runes[start:pos])
}
