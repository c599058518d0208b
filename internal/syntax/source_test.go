package syntax

import "testing"

func TestSourcePositions(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string // "ch@line:col" for every character
	}{
		{"ascii", "abc", []string{"a@1:1", "b@1:2", "c@1:3"}},
		{"newlines", "a\nb\nc", []string{"a@1:1", "\n@1:2", "b@2:1", "\n@2:2", "c@3:1"}},
		{"columns count characters", "a中b", []string{"a@1:1", "中@1:2", "b@1:3"}},
		{"empty", "", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newSource("", tt.text, nil)
			var got []string
			for src.ch >= 0 {
				got = append(got, string(src.ch)+"@"+src.pos().String())
				src.nextch()
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("char %d: got %q, want %q", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestSourcePosFilename(t *testing.T) {
	src := newSource("test.rkt", "ab", nil)
	src.nextch()
	if got := src.pos().String(); got != "test.rkt:1:2" {
		t.Errorf("pos() = %q, want test.rkt:1:2", got)
	}
}

func TestSourcePeek(t *testing.T) {
	src := newSource("", "#|", nil)
	if src.ch != '#' || src.peek() != '|' {
		t.Errorf("ch, peek = %q, %q", src.ch, src.peek())
	}
	src.nextch()
	if src.peek() != -1 {
		t.Errorf("peek at last character = %q, want -1", src.peek())
	}
}

func TestSourceSegment(t *testing.T) {
	src := newSource("", "(λx y)", nil)
	src.nextch() // skip (
	from := src.at
	for !isDelimiter(src.ch) {
		src.nextch()
	}
	if got := src.segment(from); got != "λx" {
		t.Errorf("segment = %q, want λx", got)
	}
	if src.ch != ' ' {
		t.Errorf("stopped at %q, want space", src.ch)
	}
}

func TestSourceInvalidUTF8(t *testing.T) {
	var reported []string
	src := newSource("", "a\xffb", func(p Pos, msg string) {
		reported = append(reported, p.String()+" "+msg)
	})
	for src.ch >= 0 {
		src.nextch()
	}
	if len(reported) != 1 || reported[0] != "1:2 read-syntax: invalid UTF-8 encoding" {
		t.Errorf("reported = %q", reported)
	}
}

func TestIsDelimiter(t *testing.T) {
	for _, r := range []rune{'(', ')', '[', ']', '{', '}', '"', ',', '\'', '`', ';', ' ', '\n', '\u00a0', -1} {
		if !isDelimiter(r) {
			t.Errorf("isDelimiter(%q) = false", r)
		}
	}
	for _, r := range []rune{'a', '#', '|', '.', '-', '?', '0'} {
		if isDelimiter(r) {
			t.Errorf("isDelimiter(%q) = true", r)
		}
	}
}
