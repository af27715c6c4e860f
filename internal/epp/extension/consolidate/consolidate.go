// Package consolidate implements the Verisign ConsoliDate extension, which
// moves a domain's expiry to a chosen month and day on update.
package consolidate

import (
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/danmuck/eppctl/internal/epp"
	"github.com/danmuck/eppctl/internal/epp/domain"
	"github.com/danmuck/eppctl/internal/epp/extension/namestore"
)

const Namespace = "http://www.verisign.com/epp/sync-1.0"

var ErrInvalidMonthDay = errors.New("consolidate: invalid month-day")

var daysInMonth = [12]int{31, 29, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}

// GMonthDay is an xs:gMonthDay: a recurring day of the year with an optional
// UTC offset.
type GMonthDay struct {
	Month  int
	Day    int
	Offset *time.Duration
}

// NewGMonthDay validates month and day. February 29 is accepted.
func NewGMonthDay(month, day int, offset *time.Duration) (GMonthDay, error) {
	if month < 1 || month > 12 {
		return GMonthDay{}, errors.Wrapf(ErrInvalidMonthDay, "month %d", month)
	}
	if day < 1 || day > daysInMonth[month-1] {
		return GMonthDay{}, errors.Wrapf(ErrInvalidMonthDay, "day %d of month %d", day, month)
	}
	if offset != nil && (*offset%time.Minute != 0 || *offset > 14*time.Hour || *offset < -14*time.Hour) {
		return GMonthDay{}, errors.Wrapf(ErrInvalidMonthDay, "offset %s", offset)
	}
	return GMonthDay{Month: month, Day: day, Offset: offset}, nil
}

// String renders --MM-DD followed by Z or ±hh:mm when an offset is set.
func (g GMonthDay) String() string {
	out := fmt.Sprintf("--%02d-%02d", g.Month, g.Day)
	if g.Offset == nil {
		return out
	}
	off := *g.Offset
	if off == 0 {
		return out + "Z"
	}
	sign := "+"
	if off < 0 {
		sign = "-"
		off = -off
	}
	return fmt.Sprintf("%s%s%02d:%02d", out, sign, int(off/time.Hour), int(off%time.Hour/time.Minute))
}

// ParseGMonthDay reverses String.
func ParseGMonthDay(s string) (GMonthDay, error) {
	if len(s) < 7 || !strings.HasPrefix(s, "--") || s[4] != '-' {
		return GMonthDay{}, errors.Wrapf(ErrInvalidMonthDay, "%q", s)
	}
	month, err := strconv.Atoi(s[2:4])
	if err != nil {
		return GMonthDay{}, errors.Wrapf(ErrInvalidMonthDay, "%q", s)
	}
	day, err := strconv.Atoi(s[5:7])
	if err != nil {
		return GMonthDay{}, errors.Wrapf(ErrInvalidMonthDay, "%q", s)
	}
	var offset *time.Duration
	switch zone := s[7:]; {
	case zone == "":
	case zone == "Z":
		zero := time.Duration(0)
		offset = &zero
	case len(zone) == 6 && (zone[0] == '+' || zone[0] == '-') && zone[3] == ':':
		h, herr := strconv.Atoi(zone[1:3])
		m, merr := strconv.Atoi(zone[4:6])
		if herr != nil || merr != nil {
			return GMonthDay{}, errors.Wrapf(ErrInvalidMonthDay, "%q", s)
		}
		d := time.Duration(h)*time.Hour + time.Duration(m)*time.Minute
		if zone[0] == '-' {
			d = -d
		}
		offset = &d
	default:
		return GMonthDay{}, errors.Wrapf(ErrInvalidMonthDay, "%q", s)
	}
	return NewGMonthDay(month, day, offset)
}

// Sync is the <sync:update> fragment.
type Sync struct {
	XMLName     xml.Name `xml:"http://www.verisign.com/epp/sync-1.0 update"`
	ExpMonthDay string   `xml:"expMonthDay"`
}

func (Sync) ExtensionName() string { return "update" }

// ExtensionResponse reports that sync answers with no extension data.
func (Sync) ExtensionResponse() epp.NoExtension { return epp.NoExtension{} }

// NewSync builds the fragment moving expiry to monthDay.
func NewSync(monthDay GMonthDay) Sync {
	return Sync{
		XMLName:     xml.Name{Space: Namespace, Local: "update"},
		ExpMonthDay: monthDay.String(),
	}
}

// Attach moves the expiry of the updated domain to monthDay. The response
// carries no extension data.
func Attach[R any](req epp.Request[domain.Update, R, epp.NoExtension], monthDay GMonthDay) epp.Request[domain.Update, R, epp.NoExtension] {
	return epp.Extend[domain.Update, R, epp.NoExtension](req, NewSync(monthDay))
}

// SyncWithNameStore carries both a Sync and a NameStore fragment under one
// <extension>.
type SyncWithNameStore struct {
	Sync      Sync
	NameStore namestore.NameStore
}

func (SyncWithNameStore) ExtensionName() string { return "update+namestoreExt" }

func (SyncWithNameStore) ExtensionResponse() namestore.Data { return namestore.Data{} }

func (c SyncWithNameStore) MarshalXML(e *xml.Encoder, _ xml.StartElement) error {
	if err := e.Encode(c.Sync); err != nil {
		return err
	}
	return e.Encode(c.NameStore)
}

// UnmarshalXML is called once per fragment and keeps the one it recognizes.
func (c *SyncWithNameStore) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	switch start.Name.Space {
	case Namespace:
		return d.DecodeElement(&c.Sync, &start)
	case namestore.Namespace:
		return d.DecodeElement(&c.NameStore, &start)
	default:
		return d.Skip()
	}
}

// AttachWithNameStore combines Attach with a NameStore sub-product.
func AttachWithNameStore[R any](req epp.Request[domain.Update, R, epp.NoExtension], monthDay GMonthDay, subProduct string) epp.Request[domain.Update, R, namestore.Data] {
	return epp.Extend[domain.Update, R, namestore.Data](req, SyncWithNameStore{
		Sync:      NewSync(monthDay),
		NameStore: namestore.New(subProduct),
	})
}
