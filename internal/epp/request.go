package epp

import (
	"encoding/xml"
	"fmt"

	"github.com/danmuck/eppctl/internal/protocol/xmldoc"
)

// Namespace is the EPP 1.0 envelope namespace.
const Namespace = "urn:ietf:params:xml:ns:epp-1.0"

// Command is a base request body. CommandName is the verb element it is
// written under (check, create, login, poll, ...); the value's fields become
// that element's attributes and children. Implementations are value types.
type Command interface {
	CommandName() string
}

// Extension is an optional fragment written under <extension>. The value
// carries its own element name and namespace.
type Extension interface {
	ExtensionName() string
}

// Answered is an Extension whose response fragment decodes as X. The method
// only binds the type; Extend never calls it.
type Answered[X any] interface {
	Extension
	ExtensionResponse() X
}

// NoExtension is the absent extension. It is never written, and it doubles as
// the response shape for requests without <resData> or <extension> data.
type NoExtension struct{}

func (NoExtension) ExtensionName() string { return "" }

func (NoExtension) ExtensionResponse() NoExtension { return NoExtension{} }

// Request is one declared (command, extension) pairing. R is the <resData>
// shape of the response, X the <extension> shape.
type Request[C Command, R, X any] struct {
	command   C
	extension Extension
}

// NewRequest declares cmd as answered by R with no extension.
func NewRequest[C Command, R any](cmd C) Request[C, R, NoExtension] {
	return Request[C, R, NoExtension]{command: cmd, extension: NoExtension{}}
}

// Extend pairs an unextended request with ext. X must be the response shape
// ext declares, so a fragment cannot be paired with a foreign response type.
// Which commands accept ext is decided by the attach functions in the
// extension packages, whose command type parameter is limited to a union of
// supported verbs; callers should go through those rather than Extend.
func Extend[C Command, R, X any, E Answered[X]](req Request[C, R, NoExtension], ext E) Request[C, R, X] {
	var stored Extension = ext
	if stored == nil {
		stored = NoExtension{}
	}
	return Request[C, R, X]{command: req.command, extension: stored}
}

func (r Request[C, R, X]) Command() C { return r.command }

func (r Request[C, R, X]) Extension() Extension {
	if r.extension == nil {
		return NoExtension{}
	}
	return r.extension
}

// Envelope binds the request to a client transaction id.
func (r Request[C, R, X]) Envelope(clTRID string) Envelope[C, Extension] {
	return Envelope[C, Extension]{Command: r.command, Extension: r.Extension(), ClientTRID: clTRID}
}

// Encode renders the full <epp><command> document.
func (r Request[C, R, X]) Encode(clTRID string) (string, error) {
	return EncodeEnvelope(r.Envelope(clTRID))
}

// Envelope is one outgoing <command>: the verb element, at most one
// extension, and the client transaction id.
type Envelope[C Command, E Extension] struct {
	Command    C
	Extension  E
	ClientTRID string
}

type commandDocument[C Command, E Extension] struct {
	XMLName xml.Name       `xml:"urn:ietf:params:xml:ns:epp-1.0 epp"`
	Command Envelope[C, E] `xml:"command"`
}

// EncodeEnvelope renders env as a complete document.
func EncodeEnvelope[C Command, E Extension](env Envelope[C, E]) (string, error) {
	return xmldoc.Encode(commandDocument[C, E]{Command: env})
}

// DecodeEnvelope parses a command document whose verb body is C and whose
// extension, when present, is E.
func DecodeEnvelope[C Command, E Extension](doc []byte) (Envelope[C, E], error) {
	out, err := xmldoc.Decode[commandDocument[C, E]](doc)
	if err != nil {
		return Envelope[C, E]{}, err
	}
	return out.Command, nil
}

func (env Envelope[C, E]) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	verb := xml.StartElement{Name: xml.Name{Local: env.Command.CommandName()}}
	if err := e.EncodeElement(env.Command, verb); err != nil {
		return err
	}
	if HasExtension(env.Extension) {
		ext := xml.StartElement{Name: xml.Name{Local: "extension"}}
		if err := e.EncodeToken(ext); err != nil {
			return err
		}
		if err := e.Encode(env.Extension); err != nil {
			return err
		}
		if err := e.EncodeToken(ext.End()); err != nil {
			return err
		}
	}
	if err := e.EncodeElement(env.ClientTRID, xml.StartElement{Name: xml.Name{Local: "clTRID"}}); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

func (env *Envelope[C, E]) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	verb := env.Command.CommandName()
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "extension":
				if err := env.decodeExtension(d); err != nil {
					return err
				}
			case "clTRID":
				if err := d.DecodeElement(&env.ClientTRID, &t); err != nil {
					return err
				}
			case verb:
				if err := d.DecodeElement(&env.Command, &t); err != nil {
					return err
				}
			default:
				return fmt.Errorf("epp: unexpected <%s> in command, want <%s>", t.Name.Local, verb)
			}
		case xml.EndElement:
			return nil
		}
	}
}

// decodeExtension feeds every child of <extension> to the same target, so a
// composite extension sees each of its fragments in turn.
func (env *Envelope[C, E]) decodeExtension(d *xml.Decoder) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			if err := d.DecodeElement(&env.Extension, &t); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

// HasExtension reports whether ext is a real extension value.
func HasExtension(ext any) bool {
	switch ext.(type) {
	case nil, NoExtension, *NoExtension:
		return false
	}
	return true
}
