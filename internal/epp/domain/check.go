package domain

import "github.com/danmuck/eppctl/internal/epp"

// Check is the domain <check> command.
type Check struct {
	Object CheckList `xml:"urn:ietf:params:xml:ns:domain-1.0 check"`
}

func (Check) CommandName() string { return "check" }

type CheckList struct {
	Names []string `xml:"name"`
}

// CheckData is the <resData> of a domain check.
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

// Availability maps each checked name to its availability.
func (d CheckData) Availability() map[string]bool {
	out := make(map[string]bool, len(d.Items))
	for _, item := range d.Items {
		out[item.Name.Value] = item.Name.Available
	}
	return out
}

// NewCheck checks availability of names, in order.
func NewCheck(names ...string) epp.Request[Check, CheckData, epp.NoExtension] {
	return epp.NewRequest[Check, CheckData](Check{
		Object: CheckList{Names: append([]string(nil), names...)},
	})
}
