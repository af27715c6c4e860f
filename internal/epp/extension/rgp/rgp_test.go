package rgp

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/danmuck/eppctl/internal/epp"
	"github.com/danmuck/eppctl/internal/epp/domain"
)

// Restore fragments only pair with the rgp response shape.
var _ epp.Answered[Data] = Update{}

func TestRestoreRequestDocument(t *testing.T) {
	req := RestoreRequest(domain.NewUpdate("eppdev.com", nil, nil, nil))
	doc, err := req.Encode("cltrid:1626454866")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	want := `<extension><update xmlns="urn:ietf:params:xml:ns:rgp-1.0"><restore op="request"></restore></update></extension>`
	if !strings.Contains(doc, want) {
		t.Fatalf("unexpected document:\n%s", doc)
	}

	env, err := epp.DecodeEnvelope[domain.Update, Update]([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Extension.Restore.Op != "request" || env.Extension.Restore.Report != nil {
		t.Fatalf("unexpected restore %+v", env.Extension.Restore)
	}
}

func TestRestoreReportRoundTrip(t *testing.T) {
	report := Report{
		PreData:    "Pre-delete registration data goes here.",
		PostData:   "Post-restore registration data goes here.",
		DeletedAt:  time.Date(2003, 7, 10, 22, 0, 0, 0, time.UTC),
		RestoredAt: time.Date(2003, 7, 20, 22, 0, 0, 0, time.UTC),
		Reason:     "Registrant error.",
		Statements: []string{"This registrar has not restored the Registered Name in order to assume the rights to use or sell the Registered Name for itself or for any third party.", "The information in this report is true to best of this registrar's knowledge."},
	}
	doc, err := RestoreReport(domain.NewUpdate("example.com", nil, nil, nil), report).Encode("ABC-1")
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	env, err := epp.DecodeEnvelope[domain.Update, Update]([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if env.Extension.Restore.Op != "report" || env.Extension.Restore.Report == nil {
		t.Fatalf("unexpected restore %+v", env.Extension.Restore)
	}
	got := *env.Extension.Restore.Report
	if !got.DeletedAt.Equal(report.DeletedAt) || !got.RestoredAt.Equal(report.RestoredAt) {
		t.Fatalf("unexpected times %v %v", got.DeletedAt, got.RestoredAt)
	}
	if !reflect.DeepEqual(got.Statements, report.Statements) || got.Reason != report.Reason {
		t.Fatalf("unexpected report %+v", got)
	}
}

func TestRestoreOnDomainInfo(t *testing.T) {
	req := RestoreRequest(domain.NewInfo("eppdev.com", ""))
	if _, ok := req.Extension().(Update); !ok {
		t.Fatalf("unexpected extension %T", req.Extension())
	}
}

func TestStatusResponse(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<epp xmlns="urn:ietf:params:xml:ns:epp-1.0">
  <response>
    <result code="1000"><msg>Command completed successfully</msg></result>
    <extension>
      <rgp:upData xmlns:rgp="urn:ietf:params:xml:ns:rgp-1.0">
        <rgp:rgpStatus s="pendingRestore"/>
      </rgp:upData>
    </extension>
    <trID><clTRID>ABC-2</clTRID><svTRID>SV-2</svTRID></trID>
  </response>
</epp>`
	resp, err := epp.DecodeResponse[epp.NoExtension, Data]([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got := resp.Extension.Statuses(); !reflect.DeepEqual(got, []string{"pendingRestore"}) {
		t.Fatalf("unexpected statuses %v", got)
	}
}
