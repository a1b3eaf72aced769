package cpp

import (
	"io"
	"strings"
)

// Sink is where generated text goes: either the final destination or, while
// a capture region is open, the innermost capture buffer. Capture regions
// nest as a stack; text in an outer region is untouched by inner ones.
//
// Nothing written is ever taken back. The first destination write error is
// kept and reported by Err; later writes to the destination are dropped.
type Sink struct {
	w      io.Writer
	frames []*strings.Builder
	err    error
}

func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

// Emit appends text to the active capture buffer and returns the buffer's
// contents so far, or writes text to the destination and returns "".
func (s *Sink) Emit(text string) string {
	if n := len(s.frames); n > 0 {
		s.frames[n-1].WriteString(text)
		return s.frames[n-1].String()
	}
	if s.err == nil {
		_, s.err = io.WriteString(s.w, text)
	}
	return ""
}

// Capturing reports whether a capture region is open.
func (s *Sink) Capturing() bool {
	return len(s.frames) > 0
}

// Depth is the number of open capture regions.
func (s *Sink) Depth() int {
	return len(s.frames)
}

// BeginCapture opens a capture region.
func (s *Sink) BeginCapture() {
	s.frames = append(s.frames, &strings.Builder{})
}

// EndCapture closes the innermost capture region and returns its text.
// Calling it with no open region is a programming error.
func (s *Sink) EndCapture() string {
	n := len(s.frames)
	if n == 0 {
		panic("cpp: EndCapture without matching BeginCapture")
	}
	text := s.frames[n-1].String()
	s.frames[n-1] = nil
	s.frames = s.frames[:n-1]
	return text
}

// Capture runs fn inside a fresh capture region and returns what fn
// emitted. The region is closed on every path, including a panic in fn,
// along with any region fn opened and failed to close.
func (s *Sink) Capture(fn func() error) (text string, err error) {
	depth := len(s.frames)
	s.BeginCapture()
	defer func() {
		for len(s.frames) > depth+1 {
			s.EndCapture()
		}
		text = s.EndCapture()
	}()
	err = fn()
	return text, err
}

// Err returns the first error encountered writing to the destination.
func (s *Sink) Err() error {
	return s.err
}
