// Package domain holds the domain object commands (RFC 5731).
package domain

import (
	"strings"

	"golang.org/x/net/idna"

	"github.com/danmuck/eppctl/internal/epp"
)

const Namespace = epp.DomainNamespace

// ToASCII converts a domain name to its A-label form, the only form
// registries accept on the wire.
func ToASCII(name string) (string, error) {
	return idna.Lookup.ToASCII(strings.TrimSuffix(strings.TrimSpace(name), "."))
}

// Period is a registration period.
type Period struct {
	Unit  string `xml:"unit,attr"`
	Value int    `xml:",chardata"`
}

// Years returns a period of n years.
func Years(n int) *Period {
	return &Period{Unit: "y", Value: n}
}

// AuthInfo carries the object's transfer password.
type AuthInfo struct {
	Password string `xml:"pw"`
}

// Contact links a contact handle to the domain in a role (admin, tech, billing).
type Contact struct {
	Type string `xml:"type,attr"`
	ID   string `xml:",chardata"`
}

// Status is one domain status value with an optional note.
type Status struct {
	Value string `xml:"s,attr"`
	Lang  string `xml:"lang,attr,omitempty"`
	Note  string `xml:",chardata"`
}

// NameServers lists delegated hosts, either by reference (hostObj) or with
// inline glue (hostAttr).
type NameServers struct {
	HostObjects    []string   `xml:"hostObj"`
	HostAttributes []HostAttr `xml:"hostAttr"`
}

type HostAttr struct {
	Name      string     `xml:"hostName"`
	Addresses []HostAddr `xml:"hostAddr"`
}

type HostAddr struct {
	IPVersion string `xml:"ip,attr,omitempty"`
	Address   string `xml:",chardata"`
}
