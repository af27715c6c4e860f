// Package xmldoc converts typed values to and from EPP XML documents.
package xmldoc

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

// Header is the declaration every EPP document starts with.
const Header = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>`

// EncodeError reports a value that could not be serialized.
type EncodeError struct {
	Type string
	Err  error
}

func (e *EncodeError) Error() string {
	return fmt.Sprintf("xmldoc: encode %s: %v", e.Type, e.Err)
}

func (e *EncodeError) Unwrap() error { return e.Err }

// DecodeError reports a document that does not fit the target shape. Path is
// the slash-separated element path at the failure point, when known.
type DecodeError struct {
	Type string
	Path string
	Err  error
}

func (e *DecodeError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("xmldoc: decode %s: %v", e.Type, e.Err)
	}
	return fmt.Sprintf("xmldoc: decode %s at %s: %v", e.Type, e.Path, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Encode renders v as a complete document: Header, CRLF, then the element.
func Encode(v any) (string, error) {
	body, err := xml.Marshal(v)
	if err != nil {
		return "", &EncodeError{Type: fmt.Sprintf("%T", v), Err: errors.Wrap(err, "marshal")}
	}
	var sb strings.Builder
	sb.Grow(len(Header) + 2 + len(body))
	sb.WriteString(Header)
	sb.WriteString("\r\n")
	sb.Write(body)
	return sb.String(), nil
}

// Decode parses doc into a new T.
func Decode[T any](doc []byte) (T, error) {
	var out T
	d := xml.NewDecoder(bytes.NewReader(doc))
	if err := d.Decode(&out); err != nil {
		var zero T
		return zero, &DecodeError{
			Type: fmt.Sprintf("%T", out),
			Path: failurePath(doc, d.InputOffset(), err),
			Err:  errors.Wrap(err, "unmarshal"),
		}
	}
	return out, nil
}

// failurePath returns the element path at the point decoding stopped. A root
// mismatch names the expected root; everything else replays doc up to offset
// and reports the open element stack there.
func failurePath(doc []byte, offset int64, cause error) string {
	msg := cause.Error()
	if i := strings.Index(msg, "expected element type <"); i >= 0 {
		rest := msg[i+len("expected element type <"):]
		if j := strings.Index(rest, ">"); j >= 0 {
			return rest[:j]
		}
	}
	return pathAtOffset(doc, offset)
}

// pathAtOffset walks doc until the decoder passes offset. An element whose end
// tag lands on offset is still reported, since value errors in character data
// surface only once the end tag has been read.
func pathAtOffset(doc []byte, offset int64) string {
	d := xml.NewDecoder(bytes.NewReader(doc))
	var stack []string
	for {
		tok, err := d.Token()
		if err != nil {
			break
		}
		switch t := tok.(type) {
		case xml.StartElement:
			stack = append(stack, t.Name.Local)
		case xml.EndElement:
			if d.InputOffset() >= offset {
				return strings.Join(stack, "/")
			}
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		}
		if d.InputOffset() >= offset {
			break
		}
	}
	return strings.Join(stack, "/")
}
