// Package rgp implements the registry grace period extension (RFC 3915):
// restore requests and reports on domain update, and grace period status
// on domain info.
package rgp

import (
	"encoding/xml"
	"time"

	"github.com/danmuck/eppctl/internal/epp"
	"github.com/danmuck/eppctl/internal/epp/domain"
)

const Namespace = "urn:ietf:params:xml:ns:rgp-1.0"

const (
	opRequest = "request"
	opReport  = "report"
)

// Update is the <rgp:update> fragment carried by a domain update.
type Update struct {
	XMLName xml.Name `xml:"urn:ietf:params:xml:ns:rgp-1.0 update"`
	Restore Restore  `xml:"restore"`
}

func (Update) ExtensionName() string { return "update" }

func (Update) ExtensionResponse() Data { return Data{} }

type Restore struct {
	Op     string  `xml:"op,attr"`
	Report *Report `xml:"report,omitempty"`
}

// Report is the restore report submitted after a restore request.
type Report struct {
	PreData    string    `xml:"preData"`
	PostData   string    `xml:"postData"`
	DeletedAt  time.Time `xml:"delTime"`
	RestoredAt time.Time `xml:"resTime"`
	Reason     string    `xml:"resReason"`
	Statements []string  `xml:"statement"`
	Other      string    `xml:"other,omitempty"`
}

// Status is one rgpStatus value, e.g. "redemptionPeriod".
type Status struct {
	Value string `xml:"s,attr"`
}

// Data is the response <extension> shape for both domain update and info.
type Data struct {
	Update *StatusData `xml:"upData"`
	Info   *StatusData `xml:"infData"`
}

type StatusData struct {
	Statuses []Status `xml:"rgpStatus"`
}

// Statuses returns the grace period statuses from whichever element the
// server sent.
func (d *Data) Statuses() []string {
	if d == nil {
		return nil
	}
	var out []string
	for _, sd := range []*StatusData{d.Update, d.Info} {
		if sd == nil {
			continue
		}
		for _, s := range sd.Statuses {
			out = append(out, s.Value)
		}
	}
	return out
}

// Target lists the commands a restore request may ride on.
type Target interface {
	epp.Command
	domain.Update | domain.Info
}

func newUpdate(op string, report *Report) Update {
	return Update{
		XMLName: xml.Name{Space: Namespace, Local: "update"},
		Restore: Restore{Op: op, Report: report},
	}
}

// RestoreRequest asks the registry to restore a domain in redemption.
func RestoreRequest[C Target, R any](req epp.Request[C, R, epp.NoExtension]) epp.Request[C, R, Data] {
	return epp.Extend[C, R, Data](req, newUpdate(opRequest, nil))
}

// RestoreReport submits the report that completes a restore. Only a domain
// update carries it.
func RestoreReport[R any](req epp.Request[domain.Update, R, epp.NoExtension], report Report) epp.Request[domain.Update, R, Data] {
	return epp.Extend[domain.Update, R, Data](req, newUpdate(opReport, &report))
}
