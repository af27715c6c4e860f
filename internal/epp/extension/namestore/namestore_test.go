package namestore

import (
	"reflect"
	"strings"
	"testing"

	"github.com/danmuck/eppctl/internal/epp"
	"github.com/danmuck/eppctl/internal/epp/domain"
	"github.com/danmuck/eppctl/internal/epp/host"
)

var _ epp.Answered[Data] = NameStore{}

func TestAttachToDomainCheck(t *testing.T) {
	req := Attach(domain.NewCheck("example1.com", "example2.com"), "dotCOM")
	doc, err := req.Encode("cltrid:1626454866")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `<extension><namestoreExt xmlns="http://www.verisign-grs.com/epp/namestoreExt-1.1">` +
		`<subProduct>dotCOM</subProduct></namestoreExt></extension>`
	if !strings.Contains(doc, want) {
		t.Fatalf("unexpected document:\n%s", doc)
	}

	env, err := epp.DecodeEnvelope[domain.Check, NameStore]([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(env.Extension, New("dotCOM")) {
		t.Fatalf("extension mismatch: %+v", env.Extension)
	}
	if !reflect.DeepEqual(env.Command, req.Command()) {
		t.Fatalf("command mismatch: %+v", env.Command)
	}
}

func TestAttachToHostCreate(t *testing.T) {
	req := Attach(host.NewCreate("ns1.example.com"), "dotNET")
	if got := req.Extension().ExtensionName(); got != "namestoreExt" {
		t.Fatalf("unexpected extension %q", got)
	}
}

func TestResponseExtension(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<epp xmlns="urn:ietf:params:xml:ns:epp-1.0">
  <response>
    <result code="1000"><msg>Command completed successfully</msg></result>
    <resData>
      <domain:chkData xmlns:domain="urn:ietf:params:xml:ns:domain-1.0">
        <domain:cd><domain:name avail="1">example1.com</domain:name></domain:cd>
      </domain:chkData>
    </resData>
    <extension>
      <namestoreExt:namestoreExt xmlns:namestoreExt="http://www.verisign-grs.com/epp/namestoreExt-1.1">
        <namestoreExt:subProduct>dotCOM</namestoreExt:subProduct>
      </namestoreExt:namestoreExt>
    </extension>
    <trID><clTRID>cltrid:1626454866</clTRID><svTRID>SV-1</svTRID></trID>
  </response>
</epp>`
	resp, err := epp.DecodeResponse[domain.CheckData, Data]([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := resp.Extension.SubProduct(); got != "dotCOM" {
		t.Fatalf("unexpected sub-product %q", got)
	}
	if !resp.Data.Availability()["example1.com"] {
		t.Fatalf("unexpected resData %+v", resp.Data)
	}
}

func TestNilDataSubProduct(t *testing.T) {
	var d *Data
	if d.SubProduct() != "" {
		t.Fatalf("nil data should have no sub-product")
	}
}
