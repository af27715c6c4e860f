package frame

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
)

// HeaderLen is the size of the big-endian length prefix. The prefix counts
// itself, so an empty payload is announced as 4.
const HeaderLen = 4

var (
	ErrLengthTooSmall  = errors.New("frame: length header smaller than header")
	ErrPayloadTooLarge = errors.New("frame: payload too large")
	ErrTruncated       = errors.New("frame: truncated frame")
)

// Limits constrains frame decode/encode memory use. Zero means unbounded.
type Limits struct {
	MaxPayloadBytes uint32
}

func DefaultLimits() Limits {
	return Limits{}
}

// WriteFrame writes one length-prefixed frame. Header and payload go out in a
// single Write so a failing writer never leaves a bare header behind.
func WriteFrame(w io.Writer, payload []byte) error {
	if uint64(len(payload)) > math.MaxUint32-HeaderLen {
		return ErrPayloadTooLarge
	}
	buf := AppendHeader(make([]byte, 0, HeaderLen+len(payload)), len(payload))
	buf = append(buf, payload...)

	n, err := w.Write(buf)
	if err != nil {
		return err
	}
	if n != len(buf) {
		return io.ErrShortWrite
	}
	return nil
}

// ReadFrame blocks until one full frame is read and returns its payload.
// io.EOF is returned only when the stream ends cleanly between frames.
func ReadFrame(r io.Reader, limits Limits) ([]byte, error) {
	var header [HeaderLen]byte
	if _, err := io.ReadFull(r, header[:]); err != nil {
		if errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrTruncated
		}
		return nil, err
	}

	length := binary.BigEndian.Uint32(header[:])
	if length < HeaderLen {
		return nil, ErrLengthTooSmall
	}
	payloadLen := length - HeaderLen
	if limits.MaxPayloadBytes > 0 && payloadLen > limits.MaxPayloadBytes {
		return nil, ErrPayloadTooLarge
	}

	payload := make([]byte, payloadLen)
	if payloadLen == 0 {
		return payload, nil
	}
	if _, err := io.ReadFull(r, payload); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrTruncated
		}
		return nil, err
	}
	return payload, nil
}

// AppendHeader appends the length prefix for a payload of n bytes to dst.
func AppendHeader(dst []byte, n int) []byte {
	return binary.BigEndian.AppendUint32(dst, uint32(n+HeaderLen))
}
