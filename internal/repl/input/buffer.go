package input

import (
	"slices"
	"unicode"
)

// Buffer holds the text being edited as runes plus a cursor position.
type Buffer struct {
	runes []rune
	// pos is an index into runes, 0..len(runes)
	pos int
}

// NewBuffer creates a new empty buffer.
func NewBuffer() *Buffer {
	return &Buffer{runes: []rune{}}
}

// Text returns the current text content as a string.
func (b *Buffer) Text() string {
	return string(b.runes)
}

// Len returns the length of the text in runes.
func (b *Buffer) Len() int {
	return len(b.runes)
}

// Pos returns the current cursor position.
func (b *Buffer) Pos() int {
	return b.pos
}

// SetText replaces the content and moves the cursor to the end.
func (b *Buffer) SetText(text string) {
	b.runes = []rune(text)
	b.pos = len(b.runes)
}

// Clear removes all text and resets the cursor.
func (b *Buffer) Clear() {
	b.runes = b.runes[:0]
	b.pos = 0
}

// SetPos moves the cursor, clamped to [0, Len()].
func (b *Buffer) SetPos(pos int) {
	b.pos = max(0, min(pos, len(b.runes)))
}

// CursorStart moves the cursor to the start of the buffer.
func (b *Buffer) CursorStart() {
	b.pos = 0
}

// CursorEnd moves the cursor to the end of the buffer.
func (b *Buffer) CursorEnd() {
	b.pos = len(b.runes)
}

// InsertRunes inserts runes at the cursor and moves the cursor past them.
func (b *Buffer) InsertRunes(runes []rune) {
	if len(runes) == 0 {
		return
	}
	b.runes = slices.Insert(b.runes, b.pos, runes...)
	b.pos += len(runes)
}

// DeleteCharBackward deletes the rune before the cursor.
func (b *Buffer) DeleteCharBackward() bool {
	if b.pos == 0 {
		return false
	}
	b.runes = slices.Delete(b.runes, b.pos-1, b.pos)
	b.pos--
	return true
}

// DeleteCharForward deletes the rune under the cursor.
func (b *Buffer) DeleteCharForward() bool {
	if b.pos >= len(b.runes) {
		return false
	}
	b.runes = slices.Delete(b.runes, b.pos, b.pos+1)
	return true
}

// DeleteBeforeCursor deletes all text before the cursor.
func (b *Buffer) DeleteBeforeCursor() {
	b.runes = slices.Delete(b.runes, 0, b.pos)
	b.pos = 0
}

// DeleteAfterCursor deletes all text after the cursor.
func (b *Buffer) DeleteAfterCursor() {
	b.runes = b.runes[:b.pos]
}

// DeleteWordBackward deletes the token to the left of the cursor.
func (b *Buffer) DeleteWordBackward() {
	end := b.pos
	b.WordBackward()
	b.runes = slices.Delete(b.runes, b.pos, end)
}

// WordBackward moves the cursor to the start of the previous token.
func (b *Buffer) WordBackward() {
	i := b.pos
	for i > 0 && unicode.IsSpace(b.runes[i-1]) {
		i--
	}
	for i > 0 && !unicode.IsSpace(b.runes[i-1]) {
		i--
	}
	b.pos = i
}

// WordForward moves the cursor past the end of the next token.
func (b *Buffer) WordForward() {
	i := b.pos
	for i < len(b.runes) && unicode.IsSpace(b.runes[i]) {
		i++
	}
	for i < len(b.runes) && !unicode.IsSpace(b.runes[i]) {
		i++
	}
	b.pos = i
}
