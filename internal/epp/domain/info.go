package domain

import (
	"time"

	"github.com/danmuck/eppctl/internal/epp"
)

// Info is the domain <info> command.
type Info struct {
	Object InfoQuery `xml:"urn:ietf:params:xml:ns:domain-1.0 info"`
}

func (Info) CommandName() string { return "info" }

type InfoQuery struct {
	Name     InfoName  `xml:"name"`
	AuthInfo *AuthInfo `xml:"authInfo,omitempty"`
}

// InfoName selects which subordinate hosts are returned: all, del, sub, none.
type InfoName struct {
	Hosts string `xml:"hosts,attr,omitempty"`
	Value string `xml:",chardata"`
}

// InfoData is the <resData> of a domain info.
type InfoData struct {
	Domain InfoResult `xml:"infData"`
}

type InfoResult struct {
	Name          string       `xml:"name"`
	ROID          string       `xml:"roid"`
	Statuses      []Status     `xml:"status"`
	Registrant    string       `xml:"registrant"`
	Contacts      []Contact    `xml:"contact"`
	NameServers   *NameServers `xml:"ns"`
	Hosts         []string     `xml:"host"`
	ClientID      string       `xml:"clID"`
	CreatorID     string       `xml:"crID"`
	CreatedAt     *time.Time   `xml:"crDate"`
	UpdaterID     string       `xml:"upID"`
	UpdatedAt     *time.Time   `xml:"upDate"`
	ExpiresAt     *time.Time   `xml:"exDate"`
	TransferredAt *time.Time   `xml:"trDate"`
	AuthInfo      *AuthInfo    `xml:"authInfo"`
}

// NewInfo queries name; authPW may be empty for sponsored objects.
func NewInfo(name, authPW string) epp.Request[Info, InfoData, epp.NoExtension] {
	q := InfoQuery{Name: InfoName{Hosts: "all", Value: name}}
	if authPW != "" {
		q.AuthInfo = &AuthInfo{Password: authPW}
	}
	return epp.NewRequest[Info, InfoData](Info{Object: q})
}
