package domain

import (
	"time"

	"github.com/danmuck/eppctl/internal/epp"
)

// Create is the domain <create> command.
type Create struct {
	Object CreateSpec `xml:"urn:ietf:params:xml:ns:domain-1.0 create"`
}

func (Create) CommandName() string { return "create" }

type CreateSpec struct {
	Name        string       `xml:"name"`
	Period      *Period      `xml:"period,omitempty"`
	NameServers *NameServers `xml:"ns,omitempty"`
	Registrant  string       `xml:"registrant,omitempty"`
	Contacts    []Contact    `xml:"contact"`
	AuthInfo    AuthInfo     `xml:"authInfo"`
}

// CreateData is the <resData> of a domain create.
type CreateData struct {
	Created CreateResult `xml:"creData"`
}

type CreateResult struct {
	Name      string     `xml:"name"`
	CreatedAt time.Time  `xml:"crDate"`
	ExpiresAt *time.Time `xml:"exDate"`
}

func NewCreate(spec CreateSpec) epp.Request[Create, CreateData, epp.NoExtension] {
	return epp.NewRequest[Create, CreateData](Create{Object: spec})
}

// Delete is the domain <delete> command.
type Delete struct {
	Object NameRef `xml:"urn:ietf:params:xml:ns:domain-1.0 delete"`
}

func (Delete) CommandName() string { return "delete" }

// NameRef is a body carrying only the domain name.
type NameRef struct {
	Name string `xml:"name"`
}

func NewDelete(name string) epp.Request[Delete, epp.NoExtension, epp.NoExtension] {
	return epp.NewRequest[Delete, epp.NoExtension](Delete{Object: NameRef{Name: name}})
}

// Renew is the domain <renew> command.
type Renew struct {
	Object RenewSpec `xml:"urn:ietf:params:xml:ns:domain-1.0 renew"`
}

func (Renew) CommandName() string { return "renew" }

type RenewSpec struct {
	Name string `xml:"name"`
	// CurrentExpiry is the current expiry date, YYYY-MM-DD.
	CurrentExpiry string  `xml:"curExpDate"`
	Period        *Period `xml:"period,omitempty"`
}

// RenewData is the <resData> of a domain renew.
type RenewData struct {
	Renewed RenewResult `xml:"renData"`
}

type RenewResult struct {
	Name      string     `xml:"name"`
	ExpiresAt *time.Time `xml:"exDate"`
}

// NewRenew extends name by years from its current expiry date.
func NewRenew(name string, currentExpiry time.Time, years int) epp.Request[Renew, RenewData, epp.NoExtension] {
	return epp.NewRequest[Renew, RenewData](Renew{Object: RenewSpec{
		Name:          name,
		CurrentExpiry: currentExpiry.Format(time.DateOnly),
		Period:        Years(years),
	}})
}
