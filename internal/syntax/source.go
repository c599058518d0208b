package syntax

import (
	"unicode"
	"unicode/utf8"

	"github.com/you-not-fish/bsl/internal/diag"
)

// source walks the characters of a program text. Lines and columns are
// 1-based and columns count characters, not bytes.
type source struct {
	text     string
	filename string

	ch   rune   // current character, -1 at end of text
	at   int    // byte offset of ch
	next int    // byte offset of the character after ch
	line uint32 // position of ch
	col  uint32

	onError func(Pos, string)
}

func newSource(filename, text string, report func(Pos, string)) *source {
	s := &source{
		text:     text,
		filename: filename,
		ch:       -1,
		line:     1,
		onError:  report,
	}
	s.nextch()
	return s
}

// nextch advances to the next character.
func (s *source) nextch() {
	if s.ch == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	s.at = s.next
	if s.next >= len(s.text) {
		s.ch = -1
		return
	}

	r, width := utf8.DecodeRuneInString(s.text[s.next:])
	if r == utf8.RuneError && width == 1 && s.onError != nil {
		s.onError(s.pos(), diag.InvalidUTF8)
	}
	s.ch = r
	s.next += width
}

// peek returns the character after ch.
func (s *source) peek() rune {
	if s.next >= len(s.text) {
		return -1
	}
	r, _ := utf8.DecodeRuneInString(s.text[s.next:])
	return r
}

func (s *source) pos() Pos {
	return NewPos(s.filename, s.line, s.col)
}

// segment returns the text from byte offset from up to ch.
func (s *source) segment(from int) string {
	return s.text[from:s.at]
}

func isWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\r', '\n', '\f', '\v':
		return true
	}
	return r > utf8.RuneSelf && unicode.IsSpace(r)
}

// isDelimiter reports whether r ends an atom.
func isDelimiter(r rune) bool {
	switch r {
	case -1, '(', ')', '[', ']', '{', '}', '"', ',', '\'', '`', ';':
		return true
	}
	return isWhitespace(r)
}
