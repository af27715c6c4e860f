package domain

import (
	"time"

	"github.com/danmuck/eppctl/internal/epp"
)

// Transfer operations.
const (
	TransferRequest = "request"
	TransferQuery   = "query"
	TransferApprove = "approve"
	TransferReject  = "reject"
	TransferCancel  = "cancel"
)

// Transfer is the domain <transfer> command; Op selects the operation.
type Transfer struct {
	Op     string       `xml:"op,attr"`
	Object TransferSpec `xml:"urn:ietf:params:xml:ns:domain-1.0 transfer"`
}

func (Transfer) CommandName() string { return "transfer" }

type TransferSpec struct {
	Name     string    `xml:"name"`
	Period   *Period   `xml:"period,omitempty"`
	AuthInfo *AuthInfo `xml:"authInfo,omitempty"`
}

// TransferData is the <resData> of any domain transfer operation.
type TransferData struct {
	Transfer TransferResult `xml:"trnData"`
}

type TransferResult struct {
	Name           string     `xml:"name"`
	Status         string     `xml:"trStatus"`
	RequesterID    string     `xml:"reID"`
	RequestedAt    *time.Time `xml:"reDate"`
	ActingID       string     `xml:"acID"`
	ActionDeadline *time.Time `xml:"acDate"`
	ExpiresAt      *time.Time `xml:"exDate"`
}

// NewTransfer builds a transfer operation. years is only sent for requests.
func NewTransfer(op, name, authPW string, years int) epp.Request[Transfer, TransferData, epp.NoExtension] {
	spec := TransferSpec{Name: name}
	if op == TransferRequest && years > 0 {
		spec.Period = Years(years)
	}
	if authPW != "" {
		spec.AuthInfo = &AuthInfo{Password: authPW}
	}
	return epp.NewRequest[Transfer, TransferData](Transfer{Op: op, Object: spec})
}
