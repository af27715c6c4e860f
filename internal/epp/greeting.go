package epp

import (
	"encoding/xml"
	"errors"
	"time"

	"github.com/danmuck/eppctl/internal/protocol/xmldoc"
)

// Greeting is the server's capability announcement.
type Greeting struct {
	ServerID    string      `xml:"svID"`
	ServerDate  time.Time   `xml:"svDate"`
	ServiceMenu ServiceMenu `xml:"svcMenu"`
	DCP         *DCP        `xml:"dcp"`
}

// ServiceMenu lists the protocol versions, languages, objects, and
// extensions the server supports.
type ServiceMenu struct {
	Versions      []string `xml:"version"`
	Languages     []string `xml:"lang"`
	ObjectURIs    []string `xml:"objURI"`
	ExtensionURIs []string `xml:"svcExtension>extURI"`
}

// SupportsExtension reports whether uri is announced under <svcExtension>.
func (m ServiceMenu) SupportsExtension(uri string) bool {
	for _, ext := range m.ExtensionURIs {
		if ext == uri {
			return true
		}
	}
	return false
}

// DCP is the data collection policy.
type DCP struct {
	Access     Choice         `xml:"access"`
	Statements []DCPStatement `xml:"statement"`
	Expiry     *DCPExpiry     `xml:"expiry"`
}

type DCPStatement struct {
	Purpose   Choice `xml:"purpose"`
	Recipient Choice `xml:"recipient"`
	Retention Choice `xml:"retention"`
}

type DCPExpiry struct {
	Absolute string `xml:"absolute,omitempty"`
	Relative string `xml:"relative,omitempty"`
}

// Choice records the names of an element's empty marker children, e.g.
// <access><all/></access> -> ["all"].
type Choice []string

func (c *Choice) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	for {
		tok, err := d.Token()
		if err != nil {
			return err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			*c = append(*c, t.Name.Local)
			if err := d.Skip(); err != nil {
				return err
			}
		case xml.EndElement:
			return nil
		}
	}
}

func (c Choice) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, name := range c {
		marker := xml.StartElement{Name: xml.Name{Local: name}}
		if err := e.EncodeToken(marker); err != nil {
			return err
		}
		if err := e.EncodeToken(marker.End()); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

type greetingDocument struct {
	XMLName  xml.Name                            `xml:"urn:ietf:params:xml:ns:epp-1.0 epp"`
	Greeting *Greeting                           `xml:"greeting"`
	Response *Response[NoExtension, NoExtension] `xml:"response"`
}

var errNoGreeting = errors.New("epp: document has no <greeting>")

// DecodeGreeting parses a greeting document. A server refusing the
// connection answers with a <response> instead; that is returned as a
// *RegistryError.
func DecodeGreeting(doc []byte) (Greeting, error) {
	out, err := xmldoc.Decode[greetingDocument](doc)
	if err != nil {
		return Greeting{}, err
	}
	if out.Greeting != nil {
		return *out.Greeting, nil
	}
	if out.Response != nil {
		if rerr := out.Response.Err(); rerr != nil {
			return Greeting{}, rerr
		}
	}
	return Greeting{}, &xmldoc.DecodeError{Type: "epp.Greeting", Path: "epp", Err: errNoGreeting}
}

// EncodeGreeting renders g as a complete document.
func EncodeGreeting(g Greeting) (string, error) {
	return xmldoc.Encode(greetingDocument{Greeting: &g})
}

type helloDocument struct {
	XMLName xml.Name `xml:"urn:ietf:params:xml:ns:epp-1.0 epp"`
	Hello   struct{} `xml:"hello"`
}

// EncodeHello renders the <hello/> document that asks for a fresh greeting.
func EncodeHello() (string, error) {
	return xmldoc.Encode(helloDocument{})
}
