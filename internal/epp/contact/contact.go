// Package contact holds the contact object commands (RFC 5733).
package contact

import (
	"time"

	"github.com/danmuck/eppctl/internal/epp"
)

const Namespace = epp.ContactNamespace

// Postal info types.
const (
	PostalLocal         = "loc"
	PostalInternational = "int"
)

type PostalInfo struct {
	Type         string  `xml:"type,attr"`
	Name         string  `xml:"name"`
	Organization string  `xml:"org,omitempty"`
	Address      Address `xml:"addr"`
}

type Address struct {
	Street      []string `xml:"street"`
	City        string   `xml:"city"`
	Province    string   `xml:"sp,omitempty"`
	PostalCode  string   `xml:"pc,omitempty"`
	CountryCode string   `xml:"cc"`
}

// Phone is an E.164 number with an optional extension.
type Phone struct {
	Extension string `xml:"x,attr,omitempty"`
	Number    string `xml:",chardata"`
}

type AuthInfo struct {
	Password string `xml:"pw"`
}

type Status struct {
	Value string `xml:"s,attr"`
	Note  string `xml:",chardata"`
}

// Check is the contact <check> command.
type Check struct {
	Object CheckList `xml:"urn:ietf:params:xml:ns:contact-1.0 check"`
}

func (Check) CommandName() string { return "check" }

type CheckList struct {
	IDs []string `xml:"id"`
}

type CheckData struct {
	Items []CheckItem `xml:"chkData>cd"`
}

type CheckItem struct {
	ID     CheckID `xml:"id"`
	Reason string  `xml:"reason,omitempty"`
}

type CheckID struct {
	Value     string `xml:",chardata"`
	Available bool   `xml:"avail,attr"`
}

func NewCheck(ids ...string) epp.Request[Check, CheckData, epp.NoExtension] {
	return epp.NewRequest[Check, CheckData](Check{Object: CheckList{IDs: append([]string(nil), ids...)}})
}

// Info is the contact <info> command.
type Info struct {
	Object InfoQuery `xml:"urn:ietf:params:xml:ns:contact-1.0 info"`
}

func (Info) CommandName() string { return "info" }

type InfoQuery struct {
	ID       string    `xml:"id"`
	AuthInfo *AuthInfo `xml:"authInfo,omitempty"`
}

type InfoData struct {
	Contact InfoResult `xml:"infData"`
}

type InfoResult struct {
	ID            string       `xml:"id"`
	ROID          string       `xml:"roid"`
	Statuses      []Status     `xml:"status"`
	PostalInfo    []PostalInfo `xml:"postalInfo"`
	Voice         *Phone       `xml:"voice"`
	Fax           *Phone       `xml:"fax"`
	Email         string       `xml:"email"`
	ClientID      string       `xml:"clID"`
	CreatorID     string       `xml:"crID"`
	CreatedAt     *time.Time   `xml:"crDate"`
	UpdaterID     string       `xml:"upID"`
	UpdatedAt     *time.Time   `xml:"upDate"`
	TransferredAt *time.Time   `xml:"trDate"`
	AuthInfo      *AuthInfo    `xml:"authInfo"`
}

func NewInfo(id, authPW string) epp.Request[Info, InfoData, epp.NoExtension] {
	q := InfoQuery{ID: id}
	if authPW != "" {
		q.AuthInfo = &AuthInfo{Password: authPW}
	}
	return epp.NewRequest[Info, InfoData](Info{Object: q})
}

// Create is the contact <create> command.
type Create struct {
	Object CreateSpec `xml:"urn:ietf:params:xml:ns:contact-1.0 create"`
}

func (Create) CommandName() string { return "create" }

type CreateSpec struct {
	ID         string       `xml:"id"`
	PostalInfo []PostalInfo `xml:"postalInfo"`
	Voice      *Phone       `xml:"voice,omitempty"`
	Fax        *Phone       `xml:"fax,omitempty"`
	Email      string       `xml:"email"`
	AuthInfo   AuthInfo     `xml:"authInfo"`
}

type CreateData struct {
	Created CreateResult `xml:"creData"`
}

type CreateResult struct {
	ID        string    `xml:"id"`
	CreatedAt time.Time `xml:"crDate"`
}

func NewCreate(spec CreateSpec) epp.Request[Create, CreateData, epp.NoExtension] {
	return epp.NewRequest[Create, CreateData](Create{Object: spec})
}

// Delete is the contact <delete> command.
type Delete struct {
	Object IDRef `xml:"urn:ietf:params:xml:ns:contact-1.0 delete"`
}

func (Delete) CommandName() string { return "delete" }

type IDRef struct {
	ID string `xml:"id"`
}

func NewDelete(id string) epp.Request[Delete, epp.NoExtension, epp.NoExtension] {
	return epp.NewRequest[Delete, epp.NoExtension](Delete{Object: IDRef{ID: id}})
}

// Update is the contact <update> command.
type Update struct {
	Object UpdateSpec `xml:"urn:ietf:params:xml:ns:contact-1.0 update"`
}

func (Update) CommandName() string { return "update" }

type UpdateSpec struct {
	ID     string     `xml:"id"`
	Add    *StatusSet `xml:"add,omitempty"`
	Remove *StatusSet `xml:"rem,omitempty"`
	Change *Change    `xml:"chg,omitempty"`
}

type StatusSet struct {
	Statuses []Status `xml:"status"`
}

type Change struct {
	PostalInfo *PostalInfo `xml:"postalInfo,omitempty"`
	Voice      *Phone      `xml:"voice,omitempty"`
	Fax        *Phone      `xml:"fax,omitempty"`
	Email      string      `xml:"email,omitempty"`
	AuthInfo   *AuthInfo   `xml:"authInfo,omitempty"`
}

func NewUpdate(id string, add, remove *StatusSet, change *Change) epp.Request[Update, epp.NoExtension, epp.NoExtension] {
	return epp.NewRequest[Update, epp.NoExtension](Update{Object: UpdateSpec{
		ID:     id,
		Add:    add,
		Remove: remove,
		Change: change,
	}})
}
