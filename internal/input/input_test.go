package input

import (
	"bufio"
	"strings"
	"testing"
	"time"
)

func TestParseKeys(t *testing.T) {
	in := Parse([]byte("aN3 \r\x7f"), Pointer{})

	if !in.Key('a') || !in.Key('n') {
		t.Errorf("expected letters a and n, got %q", in.Letters)
	}
	if in.Number != 3 {
		t.Errorf("expected number 3, got %d", in.Number)
	}
	if !in.Space || !in.Enter || !in.Backspace {
		t.Errorf("missing space/enter/backspace: %+v", in)
	}
	if in.Quit || in.Escape {
		t.Errorf("unexpected quit/escape: %+v", in)
	}
	if !in.Active() {
		t.Error("expected active frame")
	}
}

func TestParseQuitAndEscape(t *testing.T) {
	if !Parse([]byte("q"), Pointer{}).Quit {
		t.Error("q should quit")
	}
	if !Parse([]byte{3}, Pointer{}).Quit {
		t.Error("ctrl-c should quit")
	}
	if !Parse([]byte{'\x1b'}, Pointer{}).Escape {
		t.Error("lone ESC should be escape")
	}
	if in := Parse(nil, Pointer{}); in.Active() || in.Number != -1 {
		t.Errorf("empty frame: %+v", in)
	}
}

func TestParseArrows(t *testing.T) {
	in := Parse([]byte("\x1b[A\x1b[D"), Pointer{})
	if !in.Up || !in.Left || in.Down || in.Right {
		t.Fatalf("unexpected arrows: %+v", in)
	}
	if len(in.Letters) != 0 {
		t.Fatalf("arrow bytes leaked as letters: %q", in.Letters)
	}
}

func TestParseMouse(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		clicks  []Click
		pointer Pointer
	}{
		{
			name:    "left press",
			data:    "\x1b[<0;12;7M",
			clicks:  []Click{{Col: 12, Row: 7}},
			pointer: Pointer{Col: 12, Row: 7, Valid: true},
		},
		{
			name:    "release is not a click",
			data:    "\x1b[<0;12;7m",
			pointer: Pointer{Col: 12, Row: 7, Valid: true},
		},
		{
			name:    "motion moves pointer",
			data:    "\x1b[<35;40;20M",
			pointer: Pointer{Col: 40, Row: 20, Valid: true},
		},
		{
			name:    "right button ignored",
			data:    "\x1b[<2;5;5M",
			pointer: Pointer{Col: 5, Row: 5, Valid: true},
		},
		{
			name:    "wheel ignored",
			data:    "\x1b[<64;5;6M",
			pointer: Pointer{Col: 5, Row: 6, Valid: true},
		},
		{
			name:    "two clicks in one frame",
			data:    "\x1b[<0;1;1M\x1b[<0;1;1m\x1b[<0;9;4M",
			clicks:  []Click{{Col: 1, Row: 1}, {Col: 9, Row: 4}},
			pointer: Pointer{Col: 9, Row: 4, Valid: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := Parse([]byte(tt.data), Pointer{})
			if len(in.Clicks) != len(tt.clicks) {
				t.Fatalf("clicks = %v, want %v", in.Clicks, tt.clicks)
			}
			for i := range tt.clicks {
				if in.Clicks[i] != tt.clicks[i] {
					t.Fatalf("click %d = %v, want %v", i, in.Clicks[i], tt.clicks[i])
				}
			}
			if in.Pointer != tt.pointer {
				t.Fatalf("pointer = %+v, want %+v", in.Pointer, tt.pointer)
			}
			if len(in.Letters) != 0 || in.Quit {
				t.Fatalf("mouse bytes leaked as keys: %+v", in)
			}
		})
	}
}

func TestParseKeepsPointerBetweenFrames(t *testing.T) {
	prev := Pointer{Col: 3, Row: 4, Valid: true}
	if in := Parse([]byte("x"), prev); in.Pointer != prev {
		t.Fatalf("pointer lost: %+v", in.Pointer)
	}
}

func TestStream(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("\x1b[<0;2;3M")))

	deadline := time.Now().Add(time.Second)
	var clicks []Click
	for time.Now().Before(deadline) && !s.Closed() {
		in := ReadInput(s)
		clicks = append(clicks, in.Clicks...)
		time.Sleep(5 * time.Millisecond)
	}

	if !s.Closed() {
		t.Fatal("stream did not observe EOF")
	}
	if len(clicks) != 1 || clicks[0] != (Click{Col: 2, Row: 3}) {
		t.Fatalf("unexpected clicks %v", clicks)
	}
}

func TestIncompleteTail(t *testing.T) {
	tests := []struct {
		data string
		want int
	}{
		{"abc", 0},
		{"a\x1b[", 2},
		{"a\x1b[<0;4", 6},
		{"\x1b[<0;4;5M", 0},
		{"\x1b[A", 0},
		{"\x1b", 0},
	}
	for _, tt := range tests {
		if got := incompleteTail([]byte(tt.data)); got != tt.want {
			t.Errorf("incompleteTail(%q) = %d, want %d", tt.data, got, tt.want)
		}
	}
}
