// Package input provides the line editor used by the rpn REPL. It is a
// single-line Bubble Tea component with Emacs-style key bindings, history
// navigation, tab completion over the calculator's commands and a help line
// for the word under the cursor.
package input

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"
)

// ResultType indicates the type of result from the input component.
type ResultType int

const (
	// ResultNone indicates no result yet (still editing).
	ResultNone ResultType = iota
	// ResultSubmit indicates the user submitted the input (Enter).
	ResultSubmit
	// ResultInterrupt indicates the user interrupted (Ctrl+C).
	ResultInterrupt
	// ResultEOF indicates end of input (Ctrl+D on an empty line, or a bound exit key).
	ResultEOF
)

// Result contains the outcome of an input session.
type Result struct {
	// Type indicates what action caused the input to complete.
	Type ResultType
	// Value is the input text (empty for interrupt/EOF).
	Value string
}

// Model is the Bubble Tea model for the line editor.
type Model struct {
	buffer  *Buffer
	keymap  *KeyMap
	focused bool

	prompt string

	// History navigation
	historyValues       []string
	historyIndex        int // 0 = current input, 1+ = history entries
	savedCurrentInput   string
	hasNavigatedHistory bool

	// Completion
	completion         *CompletionState
	completionProvider CompletionProvider
	helpText           string

	renderer *Renderer
	width    int

	result Result

	logger *zap.Logger
}

// Config holds configuration for creating a new Model.
type Config struct {
	// Prompt is the prompt string to display.
	Prompt string

	// HistoryValues is the list of previous lines for history navigation.
	// Index 0 is the most recent.
	HistoryValues []string

	// CompletionProvider provides tab completion suggestions. May be nil.
	CompletionProvider CompletionProvider

	// KeyMap provides key bindings. If nil, DefaultKeyMap is used.
	KeyMap *KeyMap

	// RenderConfig provides styling. If nil, DefaultRenderConfig is used.
	RenderConfig *RenderConfig

	// Width is the initial terminal width.
	Width int

	// Logger for debug output. If nil, a no-op logger is used.
	Logger *zap.Logger
}

// New creates a new input Model with the given configuration.
func New(cfg Config) Model {
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	keymap := cfg.KeyMap
	if keymap == nil {
		keymap = DefaultKeyMap()
	}

	renderConfig := cfg.RenderConfig
	if renderConfig == nil {
		defaultConfig := DefaultRenderConfig()
		renderConfig = &defaultConfig
	}

	width := cfg.Width
	if width <= 0 {
		width = 80
	}

	renderer := NewRenderer(*renderConfig)
	renderer.SetWidth(width)

	return Model{
		buffer:             NewBuffer(),
		keymap:             keymap,
		focused:            true,
		prompt:             cfg.Prompt,
		historyValues:      cfg.HistoryValues,
		completion:         NewCompletionState(),
		completionProvider: cfg.CompletionProvider,
		renderer:           renderer,
		width:              width,
		result:             Result{Type: ResultNone},
		logger:             logger,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model. It handles all input events.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if !m.focused {
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.renderer.SetWidth(msg.Width)
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case pasteMsg:
		return m.handlePaste(string(msg))
	}

	return m, nil
}

// View implements tea.Model.
func (m Model) View() string {
	if m.result.Type != ResultNone {
		// The final frame stays on screen after the program exits
		return m.renderer.RenderInputLine(m.prompt, m.buffer, false)
	}

	view := m.renderer.RenderInputLine(m.prompt, m.buffer, m.focused)
	if completions := m.renderer.RenderCompletions(m.completion); completions != "" {
		view += "\n" + completions
	} else if help := m.renderer.RenderHelp(m.helpText); help != "" {
		view += "\n" + help
	}
	return view
}

// Result returns the current result. Check Type != ResultNone to see if complete.
func (m Model) Result() Result {
	return m.result
}

// Value returns the current input text.
func (m Model) Value() string {
	return m.buffer.Text()
}

// SetValue sets the input text and moves cursor to end.
func (m *Model) SetValue(text string) {
	m.buffer.SetText(text)
	m.historyIndex = 0
	m.hasNavigatedHistory = false
}

// Blur removes focus from the model.
func (m *Model) Blur() {
	m.focused = false
}

// Prompt returns the current prompt string.
func (m Model) Prompt() string {
	return m.prompt
}

// HelpText returns the help line for the word under the cursor.
func (m Model) HelpText() string {
	return m.helpText
}

// Buffer returns the underlying buffer (for testing).
func (m Model) Buffer() *Buffer {
	return m.buffer
}

// Completion returns the completion state (for testing).
func (m Model) Completion() *CompletionState {
	return m.completion
}

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	action := m.keymap.Lookup(msg)

	if m.completion.IsActive() {
		switch action {
		case ActionComplete, ActionCursorDown:
			return m.handleComplete()
		case ActionCompleteBackward, ActionCursorUp:
			return m.handleCompleteBackward()
		case ActionCancel:
			originalText := m.completion.Cancel()
			m.buffer.SetText(originalText)
			return m.onTextChanged()
		case ActionSubmit:
			m.completion.Reset()
			return m.handleSubmit()
		}
		m.completion.Reset()
	}

	switch action {
	case ActionSubmit:
		return m.handleSubmit()

	case ActionInterrupt:
		return m.finish(ResultInterrupt)

	case ActionExit:
		return m.finish(ResultEOF)

	case ActionDeleteCharacterForward:
		// Ctrl+D on empty input triggers EOF
		if m.buffer.Len() == 0 && msg.String() == "ctrl+d" {
			return m.finish(ResultEOF)
		}
		return m.edit(func() { m.buffer.DeleteCharForward() })

	case ActionClearScreen:
		return m, tea.ClearScreen

	case ActionPaste:
		return m, Paste

	case ActionComplete:
		return m.handleComplete()

	case ActionCompleteBackward, ActionCancel:
		return m, nil

	case ActionCharacterForward:
		m.buffer.SetPos(m.buffer.Pos() + 1)
		return m.onTextChanged()

	case ActionCharacterBackward:
		m.buffer.SetPos(m.buffer.Pos() - 1)
		return m.onTextChanged()

	case ActionWordForward:
		m.buffer.WordForward()
		return m.onTextChanged()

	case ActionWordBackward:
		m.buffer.WordBackward()
		return m.onTextChanged()

	case ActionLineStart:
		m.buffer.CursorStart()
		return m.onTextChanged()

	case ActionLineEnd:
		m.buffer.CursorEnd()
		return m.onTextChanged()

	case ActionDeleteCharacterBackward:
		return m.edit(func() { m.buffer.DeleteCharBackward() })

	case ActionDeleteWordBackward:
		return m.edit(m.buffer.DeleteWordBackward)

	case ActionDeleteBeforeCursor:
		return m.edit(m.buffer.DeleteBeforeCursor)

	case ActionDeleteAfterCursor:
		return m.edit(m.buffer.DeleteAfterCursor)

	case ActionCursorUp:
		return m.handleHistoryPrevious()

	case ActionCursorDown:
		return m.handleHistoryNext()

	default:
		if len(msg.Runes) > 0 {
			return m.handleInsertRunes(msg.Runes)
		}
	}

	return m, nil
}

// edit runs a buffer mutation and refreshes derived state if the text changed.
func (m Model) edit(mutate func()) (tea.Model, tea.Cmd) {
	oldText := m.buffer.Text()
	mutate()
	if m.buffer.Text() != oldText {
		return m.onTextChanged()
	}
	return m, nil
}

func (m Model) handleSubmit() (tea.Model, tea.Cmd) {
	m.result = Result{
		Type:  ResultSubmit,
		Value: m.buffer.Text(),
	}
	m.helpText = ""
	return m, tea.Quit
}

func (m Model) finish(resultType ResultType) (tea.Model, tea.Cmd) {
	m.result = Result{Type: resultType}
	m.helpText = ""
	return m, tea.Quit
}

func (m Model) handleInsertRunes(runes []rune) (tea.Model, tea.Cmd) {
	m.buffer.InsertRunes(sanitizeRunes(runes))
	m.historyIndex = 0
	m.hasNavigatedHistory = false

	return m.onTextChanged()
}

func (m Model) handlePaste(text string) (tea.Model, tea.Cmd) {
	m.buffer.InsertRunes(sanitizeRunes([]rune(text)))
	m.historyIndex = 0
	m.hasNavigatedHistory = false

	return m.onTextChanged()
}

// handleHistoryPrevious navigates to the previous history entry (older).
func (m Model) handleHistoryPrevious() (tea.Model, tea.Cmd) {
	if len(m.historyValues) == 0 {
		return m, nil
	}

	if !m.hasNavigatedHistory {
		m.savedCurrentInput = m.buffer.Text()
		m.hasNavigatedHistory = true
	}

	if m.historyIndex < len(m.historyValues) {
		m.historyIndex++
		m.buffer.SetText(m.historyValues[m.historyIndex-1])
	}

	return m.onTextChanged()
}

// handleHistoryNext navigates to the next history entry (newer).
func (m Model) handleHistoryNext() (tea.Model, tea.Cmd) {
	if m.historyIndex <= 0 {
		return m, nil
	}

	m.historyIndex--
	if m.historyIndex == 0 {
		m.buffer.SetText(m.savedCurrentInput)
	} else {
		m.buffer.SetText(m.historyValues[m.historyIndex-1])
	}

	return m.onTextChanged()
}

// handleComplete starts a completion or cycles to the next candidate.
func (m Model) handleComplete() (tea.Model, tea.Cmd) {
	if m.completionProvider == nil {
		return m, nil
	}

	if m.completion.IsActive() {
		if suggestion := m.completion.NextSuggestion(); suggestion != "" {
			m.applyCompletion(suggestion)
		}
		return m, nil
	}

	text := m.buffer.Text()
	pos := m.buffer.Pos()

	suggestions := m.completionProvider.GetCompletions(text, pos)
	if len(suggestions) == 0 {
		return m, nil
	}

	start, end := GetWordBoundary(text, pos)
	m.completion.Activate(suggestions, text, start, end)

	if len(suggestions) == 1 {
		m.applyCompletion(suggestions[0])
		m.completion.Reset()
		return m.onTextChanged()
	}

	if suggestion := m.completion.NextSuggestion(); suggestion != "" {
		m.applyCompletion(suggestion)
	}
	return m, nil
}

// handleCompleteBackward handles Shift+Tab.
func (m Model) handleCompleteBackward() (tea.Model, tea.Cmd) {
	if !m.completion.IsActive() {
		return m, nil
	}

	if suggestion := m.completion.PrevSuggestion(); suggestion != "" {
		m.applyCompletion(suggestion)
	}
	return m, nil
}

// applyCompletion replaces the completed range with suggestion.
func (m *Model) applyCompletion(suggestion string) {
	text, pos := ApplySuggestion(m.buffer.Text(), suggestion, m.completion.StartPos(), m.completion.EndPos())
	m.buffer.SetText(text)
	m.buffer.SetPos(pos)
	m.completion.SetEndPos(pos)
}

// onTextChanged refreshes state derived from the text and cursor position.
func (m Model) onTextChanged() (tea.Model, tea.Cmd) {
	m.refreshHelp()
	return m, nil
}

func (m *Model) refreshHelp() {
	if m.completionProvider == nil {
		m.helpText = ""
		return
	}
	m.helpText = m.completionProvider.GetHelpInfo(m.buffer.Text(), m.buffer.Pos())
}

type pasteMsg string

// Paste returns a command that reads from the clipboard.
func Paste() tea.Msg {
	str, err := clipboard.ReadAll()
	if err != nil {
		return nil
	}
	return pasteMsg(str)
}

// sanitizeRunes cleans up input runes by replacing tabs and newlines with spaces.
func sanitizeRunes(runes []rune) []rune {
	result := make([]rune, len(runes))
	for i, r := range runes {
		switch r {
		case '\t', '\n', '\r':
			result[i] = ' '
		default:
			result[i] = r
		}
	}
	return result
}
