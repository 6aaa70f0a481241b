package input

import (
	"unicode"
)

// CompletionProvider supplies completion candidates and contextual help for
// the word under the cursor. pos is a rune offset into line.
type CompletionProvider interface {
	GetCompletions(line string, pos int) []string
	GetHelpInfo(line string, pos int) string
}

// CompletionState tracks an active tab completion: the candidates, the
// selected one and the rune range of the input it replaces.
type CompletionState struct {
	active      bool
	suggestions []string
	selected    int

	startPos int
	endPos   int

	// originalText is restored when the completion is cancelled
	originalText string
}

// NewCompletionState creates a new CompletionState in its initial (inactive) state.
func NewCompletionState() *CompletionState {
	return &CompletionState{
		selected: -1,
	}
}

// Reset clears all completion state and returns to inactive mode.
func (cs *CompletionState) Reset() {
	*cs = CompletionState{selected: -1}
}

// Activate starts a new completion session over the rune range [startPos, endPos).
func (cs *CompletionState) Activate(suggestions []string, originalText string, startPos, endPos int) {
	cs.active = true
	cs.suggestions = suggestions
	cs.selected = -1
	cs.startPos = startPos
	cs.endPos = endPos
	cs.originalText = originalText
}

// IsActive returns true if completion mode is currently active.
func (cs *CompletionState) IsActive() bool {
	return cs.active
}

// IsVisible reports whether there is a candidate list worth showing.
func (cs *CompletionState) IsVisible() bool {
	return cs.active && len(cs.suggestions) > 1
}

// Suggestions returns the current list of completion suggestions.
func (cs *CompletionState) Suggestions() []string {
	return cs.suggestions
}

// Selected returns the index of the selected suggestion, or -1.
func (cs *CompletionState) Selected() int {
	return cs.selected
}

// StartPos returns the start of the replaced range.
func (cs *CompletionState) StartPos() int {
	return cs.startPos
}

// EndPos returns the end of the replaced range.
func (cs *CompletionState) EndPos() int {
	return cs.endPos
}

// NextSuggestion selects the next suggestion, wrapping around, and returns it.
func (cs *CompletionState) NextSuggestion() string {
	if !cs.active || len(cs.suggestions) == 0 {
		return ""
	}
	cs.selected = (cs.selected + 1) % len(cs.suggestions)
	return cs.suggestions[cs.selected]
}

// PrevSuggestion selects the previous suggestion, wrapping around, and returns it.
func (cs *CompletionState) PrevSuggestion() string {
	if !cs.active || len(cs.suggestions) == 0 {
		return ""
	}
	cs.selected--
	if cs.selected < 0 {
		cs.selected = len(cs.suggestions) - 1
	}
	return cs.suggestions[cs.selected]
}

// SetEndPos moves the end of the replaced range after a suggestion was applied.
func (cs *CompletionState) SetEndPos(endPos int) {
	cs.endPos = endPos
}

// Cancel resets the state and returns the text from before completion started.
func (cs *CompletionState) Cancel() string {
	originalText := cs.originalText
	cs.Reset()
	return originalText
}

// GetWordBoundary returns the rune range of the whitespace-delimited word
// touching cursorPos.
func GetWordBoundary(text string, cursorPos int) (start, end int) {
	runes := []rune(text)
	cursorPos = max(0, min(cursorPos, len(runes)))

	start = cursorPos
	for start > 0 && !unicode.IsSpace(runes[start-1]) {
		start--
	}
	end = cursorPos
	for end < len(runes) && !unicode.IsSpace(runes[end]) {
		end++
	}
	return start, end
}

// ApplySuggestion replaces the rune range [startPos, endPos) of text with
// suggestion and returns the new text and the rune position after the
// inserted suggestion.
func ApplySuggestion(text string, suggestion string, startPos, endPos int) (string, int) {
	runes := []rune(text)
	endPos = max(0, min(endPos, len(runes)))
	startPos = max(0, min(startPos, endPos))

	result := make([]rune, 0, len(runes)+len(suggestion))
	result = append(result, runes[:startPos]...)
	result = append(result, []rune(suggestion)...)
	result = append(result, runes[endPos:]...)

	return string(result), startPos + len([]rune(suggestion))
}
