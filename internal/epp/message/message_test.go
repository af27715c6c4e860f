package message

import (
	"strings"
	"testing"

	"github.com/danmuck/eppctl/internal/epp"
)

func TestPollAndAckDocuments(t *testing.T) {
	doc, err := NewPoll().Encode("ABC-1")
	if err != nil {
		t.Fatalf("encode poll: %v", err)
	}
	if !strings.Contains(doc, `<poll op="req"></poll>`) {
		t.Fatalf("unexpected poll:\n%s", doc)
	}

	doc, err = NewAck("12345").Encode("ABC-2")
	if err != nil {
		t.Fatalf("encode ack: %v", err)
	}
	if !strings.Contains(doc, `<poll op="ack" msgID="12345"></poll>`) {
		t.Fatalf("unexpected ack:\n%s", doc)
	}
}

func TestPollResponseKeepsMessageData(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<epp xmlns="urn:ietf:params:xml:ns:epp-1.0">
  <response>
    <result code="1301"><msg>Command completed successfully; ack to dequeue</msg></result>
    <msgQ count="5" id="12345">
      <qDate>2021-07-23T19:12:43.0Z</qDate>
      <msg>Transfer requested.</msg>
    </msgQ>
    <resData>
      <domain:trnData xmlns:domain="urn:ietf:params:xml:ns:domain-1.0">
        <domain:name>eppdev-transfer.com</domain:name>
        <domain:trStatus>pending</domain:trStatus>
      </domain:trnData>
    </resData>
    <trID><clTRID>ABC-3</clTRID><svTRID>SV-3</svTRID></trID>
  </response>
</epp>`
	resp, err := epp.DecodeResponse[Data, epp.NoExtension]([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code() != epp.CodeSuccessAckToDequeue {
		t.Fatalf("unexpected code %d", resp.Code())
	}
	q := resp.MessageQueue
	if q == nil || q.Count != 5 || q.ID != "12345" || q.Message != "Transfer requested." || q.Date == nil {
		t.Fatalf("unexpected msgQ %+v", q)
	}
	if resp.Data == nil || !strings.Contains(resp.Data.Inner, "eppdev-transfer.com") {
		t.Fatalf("resData not kept: %+v", resp.Data)
	}
}
