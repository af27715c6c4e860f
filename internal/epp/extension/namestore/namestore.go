// Package namestore implements the Verisign NameStore extension, which
// routes a command to a registry sub-product (dotCOM, dotNET, ...).
package namestore

import (
	"encoding/xml"

	"github.com/danmuck/eppctl/internal/epp"
	"github.com/danmuck/eppctl/internal/epp/contact"
	"github.com/danmuck/eppctl/internal/epp/domain"
	"github.com/danmuck/eppctl/internal/epp/host"
)

const Namespace = "http://www.verisign-grs.com/epp/namestoreExt-1.1"

// NameStore selects the sub-product a command applies to.
type NameStore struct {
	XMLName    xml.Name `xml:"http://www.verisign-grs.com/epp/namestoreExt-1.1 namestoreExt"`
	SubProduct string   `xml:"subProduct"`
}

func (NameStore) ExtensionName() string { return "namestoreExt" }

func (NameStore) ExtensionResponse() Data { return Data{} }

// New builds the extension for subProduct, e.g. "dotCOM".
func New(subProduct string) NameStore {
	return NameStore{
		XMLName:    xml.Name{Space: Namespace, Local: "namestoreExt"},
		SubProduct: subProduct,
	}
}

// Data is the response <extension> shape; the server echoes the sub-product.
type Data struct {
	NameStore *NameStore `xml:"namestoreExt"`
}

// SubProduct returns the echoed sub-product, or "".
func (d *Data) SubProduct() string {
	if d == nil || d.NameStore == nil {
		return ""
	}
	return d.NameStore.SubProduct
}

// Target lists the commands NameStore may extend.
type Target interface {
	epp.Command
	domain.Check | domain.Info | domain.Create | domain.Delete | domain.Renew | domain.Update | domain.Transfer |
		contact.Check | contact.Info | contact.Create | contact.Delete | contact.Update |
		host.Check | host.Info | host.Create | host.Delete | host.Update
}

// Attach routes req to subProduct.
func Attach[C Target, R any](req epp.Request[C, R, epp.NoExtension], subProduct string) epp.Request[C, R, Data] {
	return epp.Extend[C, R, Data](req, New(subProduct))
}
