// Package host holds the host object commands (RFC 5732).
package host

import (
	"net"
	"time"

	"github.com/danmuck/eppctl/internal/epp"
)

const Namespace = epp.HostNamespace

// Address is one host IP address. IPVersion is "v4" or "v6".
type Address struct {
	IPVersion string `xml:"ip,attr,omitempty"`
	Value     string `xml:",chardata"`
}

// Addresses tags each ip with its version.
func Addresses(ips ...net.IP) []Address {
	out := make([]Address, 0, len(ips))
	for _, ip := range ips {
		version := "v6"
		if ip.To4() != nil {
			version = "v4"
		}
		out = append(out, Address{IPVersion: version, Value: ip.String()})
	}
	return out
}

type Status struct {
	Value string `xml:"s,attr"`
	Note  string `xml:",chardata"`
}

// Check is the host <check> command.
type Check struct {
	Object CheckList `xml:"urn:ietf:params:xml:ns:host-1.0 check"`
}

func (Check) CommandName() string { return "check" }

type CheckList struct {
	Names []string `xml:"name"`
}

type CheckData struct {
	Items []CheckItem `xml:"chkData>cd"`
}

type CheckItem struct {
	Name   CheckName `xml:"name"`
	Reason string    `xml:"reason,omitempty"`
}

type CheckName struct {
	Value     string `xml:",chardata"`
	Available bool   `xml:"avail,attr"`
}

func NewCheck(names ...string) epp.Request[Check, CheckData, epp.NoExtension] {
	return epp.NewRequest[Check, CheckData](Check{Object: CheckList{Names: append([]string(nil), names...)}})
}

// Info is the host <info> command.
type Info struct {
	Object NameRef `xml:"urn:ietf:params:xml:ns:host-1.0 info"`
}

func (Info) CommandName() string { return "info" }

type NameRef struct {
	Name string `xml:"name"`
}

type InfoData struct {
	Host InfoResult `xml:"infData"`
}

type InfoResult struct {
	Name          string     `xml:"name"`
	ROID          string     `xml:"roid"`
	Statuses      []Status   `xml:"status"`
	Addresses     []Address  `xml:"addr"`
	ClientID      string     `xml:"clID"`
	CreatorID     string     `xml:"crID"`
	CreatedAt     *time.Time `xml:"crDate"`
	UpdaterID     string     `xml:"upID"`
	UpdatedAt     *time.Time `xml:"upDate"`
	TransferredAt *time.Time `xml:"trDate"`
}

func NewInfo(name string) epp.Request[Info, InfoData, epp.NoExtension] {
	return epp.NewRequest[Info, InfoData](Info{Object: NameRef{Name: name}})
}

// Create is the host <create> command.
type Create struct {
	Object CreateSpec `xml:"urn:ietf:params:xml:ns:host-1.0 create"`
}

func (Create) CommandName() string { return "create" }

type CreateSpec struct {
	Name      string    `xml:"name"`
	Addresses []Address `xml:"addr"`
}

type CreateData struct {
	Created CreateResult `xml:"creData"`
}

type CreateResult struct {
	Name      string    `xml:"name"`
	CreatedAt time.Time `xml:"crDate"`
}

// NewCreate creates name; in-zone hosts need glue addresses.
func NewCreate(name string, ips ...net.IP) epp.Request[Create, CreateData, epp.NoExtension] {
	spec := CreateSpec{Name: name}
	if len(ips) > 0 {
		spec.Addresses = Addresses(ips...)
	}
	return epp.NewRequest[Create, CreateData](Create{Object: spec})
}

// Delete is the host <delete> command.
type Delete struct {
	Object NameRef `xml:"urn:ietf:params:xml:ns:host-1.0 delete"`
}

func (Delete) CommandName() string { return "delete" }

func NewDelete(name string) epp.Request[Delete, epp.NoExtension, epp.NoExtension] {
	return epp.NewRequest[Delete, epp.NoExtension](Delete{Object: NameRef{Name: name}})
}

// Update is the host <update> command.
type Update struct {
	Object UpdateSpec `xml:"urn:ietf:params:xml:ns:host-1.0 update"`
}

func (Update) CommandName() string { return "update" }

type UpdateSpec struct {
	Name   string     `xml:"name"`
	Add    *AddRemove `xml:"add,omitempty"`
	Remove *AddRemove `xml:"rem,omitempty"`
	Change *Change    `xml:"chg,omitempty"`
}

type AddRemove struct {
	Addresses []Address `xml:"addr"`
	Statuses  []Status  `xml:"status"`
}

// Change renames the host.
type Change struct {
	Name string `xml:"name"`
}

func NewUpdate(name string, add, remove *AddRemove, change *Change) epp.Request[Update, epp.NoExtension, epp.NoExtension] {
	return epp.NewRequest[Update, epp.NoExtension](Update{Object: UpdateSpec{
		Name:   name,
		Add:    add,
		Remove: remove,
		Change: change,
	}})
}
