package domain

import "github.com/danmuck/eppctl/internal/epp"

// Update is the domain <update> command.
type Update struct {
	Object UpdateSpec `xml:"urn:ietf:params:xml:ns:domain-1.0 update"`
}

func (Update) CommandName() string { return "update" }

type UpdateSpec struct {
	Name   string     `xml:"name"`
	Add    *AddRemove `xml:"add,omitempty"`
	Remove *AddRemove `xml:"rem,omitempty"`
	Change *Change    `xml:"chg,omitempty"`
}

type AddRemove struct {
	NameServers *NameServers `xml:"ns,omitempty"`
	Contacts    []Contact    `xml:"contact"`
	Statuses    []Status     `xml:"status"`
}

type Change struct {
	Registrant string    `xml:"registrant,omitempty"`
	AuthInfo   *AuthInfo `xml:"authInfo,omitempty"`
}

// NewUpdate builds an update of name. RFC 5731 requires at least one of
// add, rem, chg unless an extension carries the change (rgp restore, sync);
// an empty <chg/> is written in that case.
func NewUpdate(name string, add, remove *AddRemove, change *Change) epp.Request[Update, epp.NoExtension, epp.NoExtension] {
	if add == nil && remove == nil && change == nil {
		change = &Change{}
	}
	return epp.NewRequest[Update, epp.NoExtension](Update{Object: UpdateSpec{
		Name:   name,
		Add:    add,
		Remove: remove,
		Change: change,
	}})
}
