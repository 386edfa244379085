// Package input turns raw terminal bytes into per-frame key and pointer events.
package input

import (
	"bufio"
	"bytes"
	"strconv"
)

// Click is a left-button press at a 1-based terminal cell.
type Click struct {
	Col, Row int
}

// Pointer is the last known pointer cell, updated by motion reports.
type Pointer struct {
	Col, Row int
	Valid    bool
}

// Input represents the current frame's input state.
// Keys are discrete: a key is set only in the frame its byte arrived.
type Input struct {
	Quit      bool
	Enter     bool
	Space     bool
	Escape    bool
	Backspace bool
	Up        bool
	Down      bool
	Left      bool
	Right     bool
	Number    int    // Last digit pressed this frame, -1 if none
	Letters   []byte // Lower-cased ASCII letters in arrival order
	Clicks    []Click
	Pointer   Pointer
	Pressed   []byte
}

// Key reports whether the letter was pressed this frame.
func (in Input) Key(letter byte) bool {
	for _, b := range in.Letters {
		if b == letter {
			return true
		}
	}
	return false
}

// Active reports whether anything arrived this frame.
func (in Input) Active() bool {
	return len(in.Pressed) > 0
}

// Stream delivers input bytes via a channel and remembers the pointer between frames.
type Stream struct {
	ch      chan byte
	pointer Pointer
	pending []byte // Incomplete escape sequence held for the next frame
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{ch: make(chan byte, 256)}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadInput drains all available bytes from the stream (non-blocking).
func ReadInput(s *Stream) Input {
	var buf []byte

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	if len(s.pending) > 0 {
		buf = append(s.pending, buf...)
		s.pending = nil
	}
	if n := incompleteTail(buf); n > 0 && !s.closed {
		s.pending = append([]byte(nil), buf[len(buf)-n:]...)
		buf = buf[:len(buf)-n]
	}

	in := Parse(buf, s.pointer)
	s.pointer = in.Pointer
	return in
}

// incompleteTail returns the length of a CSI sequence cut off at the end of buf.
func incompleteTail(buf []byte) int {
	i := bytes.LastIndexByte(buf, '\x1b')
	if i < 0 {
		return 0
	}
	tail := buf[i:]
	if len(tail) < 2 || tail[1] != '[' {
		return 0
	}
	if len(tail) == 2 {
		return 2
	}
	if tail[2] != '<' {
		return 0
	}
	if bytes.IndexAny(tail, "Mm") >= 0 {
		return 0
	}
	return len(tail)
}

// Parse decodes one frame of bytes. pointer is the position carried over from
// the previous frame.
func Parse(buf []byte, pointer Pointer) Input {
	in := Input{Number: -1, Pointer: pointer, Pressed: buf}

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == '\x1b' && i+1 < len(buf) && buf[i+1] == '[' {
			// SGR mouse report: ESC [ < b ; x ; y (M|m)
			if i+2 < len(buf) && buf[i+2] == '<' {
				if n := parseMouse(buf[i+3:], &in); n > 0 {
					i += 2 + n
					continue
				}
			}
			if i+2 < len(buf) {
				switch buf[i+2] {
				case 'A':
					in.Up = true
				case 'B':
					in.Down = true
				case 'C':
					in.Right = true
				case 'D':
					in.Left = true
				default:
					in.Escape = true
					continue
				}
				i += 2
				continue
			}
		}

		applyByte(&in, b)
	}

	return in
}

// parseMouse parses the body of an SGR report after "ESC [ <". It returns the
// number of bytes consumed, or 0 if the report is incomplete or malformed.
func parseMouse(buf []byte, in *Input) int {
	var fields [3]int
	field := 0
	start := 0
	for i, b := range buf {
		switch {
		case b >= '0' && b <= '9':
			continue
		case b == ';':
			if field >= 2 {
				return 0
			}
			v, err := strconv.Atoi(string(buf[start:i]))
			if err != nil {
				return 0
			}
			fields[field] = v
			field++
			start = i + 1
		case b == 'M' || b == 'm':
			if field != 2 {
				return 0
			}
			v, err := strconv.Atoi(string(buf[start:i]))
			if err != nil {
				return 0
			}
			fields[2] = v
			applyMouse(in, fields[0], fields[1], fields[2], b == 'M')
			return i + 1
		default:
			return 0
		}
	}
	return 0
}

func applyMouse(in *Input, code, col, row int, press bool) {
	const (
		motionBit = 32
		wheelBit  = 64
	)
	in.Pointer = Pointer{Col: col, Row: row, Valid: true}
	if !press || code&motionBit != 0 || code&wheelBit != 0 {
		return
	}
	if code&3 == 0 {
		in.Clicks = append(in.Clicks, Click{Col: col, Row: row})
	}
}

// applyByte updates the frame for a single key byte.
func applyByte(in *Input, b byte) {
	switch {
	case b == 'q' || b == 'Q' || b == 3: // Ctrl-C arrives as a byte in raw mode
		in.Quit = true
	case b == ' ':
		in.Space = true
	case b == '\n' || b == '\r':
		in.Enter = true
	case b == '\b' || b == '\x7f':
		in.Backspace = true
	case b == '\x1b':
		in.Escape = true
	case b >= '0' && b <= '9':
		in.Number = int(b - '0')
	case b >= 'a' && b <= 'z':
		in.Letters = append(in.Letters, b)
	case b >= 'A' && b <= 'Z':
		in.Letters = append(in.Letters, b+('a'-'A'))
	}
}
