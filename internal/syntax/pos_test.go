package syntax

import "testing"

func TestPosString(t *testing.T) {
	tests := []struct {
		name    string
		pos     Pos
		wantStr string
	}{
		{
			name:    "with filename",
			pos:     NewPos("test.rkt", 10, 5),
			wantStr: "test.rkt:10:5",
		},
		{
			name:    "without filename",
			pos:     NewPos("", 10, 5),
			wantStr: "10:5",
		},
		{
			name:    "line 1 col 1",
			pos:     NewPos("main.rkt", 1, 1),
			wantStr: "main.rkt:1:1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.wantStr {
				t.Errorf("Pos.String() = %q, want %q", got, tt.wantStr)
			}
		})
	}
}

func TestPosIsValid(t *testing.T) {
	tests := []struct {
		name  string
		pos   Pos
		valid bool
	}{
		{"valid position", NewPos("test.rkt", 1, 1), true},
		{"valid position line 100", NewPos("", 100, 50), true},
		{"invalid - zero line", NewPos("test.rkt", 0, 1), false},
		{"invalid - zero value", Pos{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.IsValid(); got != tt.valid {
				t.Errorf("Pos.IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestSpanCover(t *testing.T) {
	a := MakeSpan(NewPos("", 1, 3), NewPos("", 1, 6))
	b := MakeSpan(NewPos("", 2, 1), NewPos("", 2, 4))

	got := a.Cover(b)
	if got.Start != a.Start || got.End != b.End {
		t.Errorf("Cover = %v, want %v-%v", got, a.Start, b.End)
	}
	if !got.Contains(a) || !got.Contains(b) {
		t.Errorf("cover %v does not contain both children", got)
	}
	if NoSpan.Cover(a) != a {
		t.Errorf("NoSpan.Cover(a) = %v, want %v", NoSpan.Cover(a), a)
	}
	if a.Cover(NoSpan) != a {
		t.Errorf("a.Cover(NoSpan) = %v, want %v", a.Cover(NoSpan), a)
	}
}

func TestSpanString(t *testing.T) {
	s := MakeSpan(NewPos("", 1, 1), NewPos("", 1, 8))
	if got := s.String(); got != "1:1-1:8" {
		t.Errorf("Span.String() = %q, want %q", got, "1:1-1:8")
	}
	if got := NoSpan.String(); got != "-" {
		t.Errorf("NoSpan.String() = %q, want %q", got, "-")
	}
}
