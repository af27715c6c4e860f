// Package script provides a byte stream that plays back a fixed sequence of
// reads and expected writes, failing on any deviation in content or order.
package script

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/danmuck/eppctl/internal/protocol/frame"
)

var (
	ErrUnexpectedWrite = errors.New("script: unexpected write")
	ErrUnexpectedRead  = errors.New("script: read while a write is expected")
	ErrClosed          = errors.New("script: stream closed")
)

type stepKind int

const (
	stepRead stepKind = iota
	stepWrite
)

type step struct {
	kind stepKind
	data []byte
	off  int
}

// Stream is an io.ReadWriteCloser driven by its script.
type Stream struct {
	mu     sync.Mutex
	steps  []*step
	cur    int
	closed bool
	err    error
	log    []string
}

// Builder assembles a Stream.
type Builder struct {
	steps []*step
}

func NewBuilder() *Builder { return &Builder{} }

// Read queues bytes the client will read.
func (b *Builder) Read(p []byte) *Builder {
	b.steps = append(b.steps, &step{kind: stepRead, data: append([]byte(nil), p...)})
	return b
}

// Write queues bytes the client must write.
func (b *Builder) Write(p []byte) *Builder {
	b.steps = append(b.steps, &step{kind: stepWrite, data: append([]byte(nil), p...)})
	return b
}

// ReadFrame queues one framed document for the client to read.
func (b *Builder) ReadFrame(doc string) *Builder {
	var buf bytes.Buffer
	_ = frame.WriteFrame(&buf, []byte(doc))
	return b.Read(buf.Bytes())
}

// WriteFrame queues one framed document the client must send.
func (b *Builder) WriteFrame(doc string) *Builder {
	var buf bytes.Buffer
	_ = frame.WriteFrame(&buf, []byte(doc))
	return b.Write(buf.Bytes())
}

func (b *Builder) Build() *Stream {
	return &Stream{steps: b.steps}
}

func (s *Stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	if s.err != nil {
		return 0, s.err
	}
	st := s.current()
	if st == nil {
		return 0, io.EOF
	}
	if st.kind != stepRead {
		s.err = fmt.Errorf("%w (step %d)", ErrUnexpectedRead, s.cur)
		return 0, s.err
	}
	n := copy(p, st.data[st.off:])
	st.off += n
	s.log = append(s.log, fmt.Sprintf("read %d", n))
	return n, nil
}

func (s *Stream) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return 0, ErrClosed
	}
	if s.err != nil {
		return 0, s.err
	}
	written := 0
	for written < len(p) {
		st := s.current()
		if st == nil || st.kind != stepWrite {
			s.err = fmt.Errorf("%w (step %d): %q", ErrUnexpectedWrite, s.cur, p[written:])
			return written, s.err
		}
		want := st.data[st.off:]
		chunk := p[written:]
		if len(chunk) > len(want) {
			chunk = chunk[:len(want)]
		}
		if !bytes.Equal(chunk, want[:len(chunk)]) {
			s.err = fmt.Errorf("%w (step %d):\n got: %q\nwant: %q", ErrUnexpectedWrite, s.cur, chunk, want[:len(chunk)])
			return written, s.err
		}
		st.off += len(chunk)
		written += len(chunk)
		s.log = append(s.log, fmt.Sprintf("write %d", len(chunk)))
		s.current()
	}
	return written, nil
}

func (s *Stream) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// current returns the first unfinished step, advancing past finished ones.
func (s *Stream) current() *step {
	for s.cur < len(s.steps) && s.steps[s.cur].off >= len(s.steps[s.cur].data) {
		s.cur++
	}
	if s.cur >= len(s.steps) {
		return nil
	}
	return s.steps[s.cur]
}

// Done reports whether every scripted step was consumed.
func (s *Stream) Done() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current() == nil
}

// Closed reports whether the client closed the stream.
func (s *Stream) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

// Err returns the first script violation, if any.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Log lists the I/O operations performed, in order.
func (s *Stream) Log() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.log...)
}
