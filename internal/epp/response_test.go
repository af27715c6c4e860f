package epp

import (
	"errors"
	"reflect"
	"testing"
)

type checkData struct {
	Names []struct {
		Value string `xml:",chardata"`
		Avail bool   `xml:"avail,attr"`
	} `xml:"chkData>cd>name"`
}

const checkResponse = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<epp xmlns="urn:ietf:params:xml:ns:epp-1.0">
  <response>
    <result code="1000">
      <msg>Command completed successfully</msg>
    </result>
    <resData>
      <domain:chkData xmlns:domain="urn:ietf:params:xml:ns:domain-1.0">
        <domain:cd><domain:name avail="0">example.com</domain:name><domain:reason>In use</domain:reason></domain:cd>
        <domain:cd><domain:name avail="1">example.net</domain:name></domain:cd>
      </domain:chkData>
    </resData>
    <trID>
      <clTRID>cltrid:1626454866</clTRID>
      <svTRID>RO-6879-1627224678242975</svTRID>
    </trID>
  </response>
</epp>`

const failureResponse = `<?xml version="1.0" encoding="UTF-8" standalone="no"?>
<epp xmlns="urn:ietf:params:xml:ns:epp-1.0">
  <response>
    <result code="2303">
      <msg>Object does not exist</msg>
      <extValue>
        <value><domain:name xmlns:domain="urn:ietf:params:xml:ns:domain-1.0">missing.com</domain:name></value>
        <reason>not registered</reason>
      </extValue>
    </result>
    <trID><clTRID>ABC-12345</clTRID><svTRID>54321-XYZ</svTRID></trID>
  </response>
</epp>`

func TestDecodeSuccessResponse(t *testing.T) {
	resp, err := DecodeResponse[checkData, NoExtension]([]byte(checkResponse))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Code() != CodeSuccess {
		t.Fatalf("unexpected code %d", resp.Code())
	}
	if err := resp.Err(); err != nil {
		t.Fatalf("success response reported %v", err)
	}
	if resp.TransactionID.Client != "cltrid:1626454866" || resp.TransactionID.Server != "RO-6879-1627224678242975" {
		t.Fatalf("unexpected trID %+v", resp.TransactionID)
	}
	if resp.Data == nil || len(resp.Data.Names) != 2 {
		t.Fatalf("unexpected resData %+v", resp.Data)
	}
	if resp.Data.Names[0].Value != "example.com" || resp.Data.Names[0].Avail {
		t.Fatalf("unexpected first item %+v", resp.Data.Names[0])
	}
	if resp.Data.Names[1].Value != "example.net" || !resp.Data.Names[1].Avail {
		t.Fatalf("unexpected second item %+v", resp.Data.Names[1])
	}
	if resp.Extension != nil {
		t.Fatalf("unexpected extension %+v", resp.Extension)
	}
}

func TestDecodeFailureResponse(t *testing.T) {
	resp, err := DecodeResponse[NoExtension, NoExtension]([]byte(failureResponse))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	rerr, ok := AsRegistryError(resp.Err())
	if !ok {
		t.Fatalf("expected *RegistryError, got %v", resp.Err())
	}
	if rerr.Code != CodeObjectDoesNotExist || rerr.Message != "Object does not exist" {
		t.Fatalf("unexpected error %+v", rerr)
	}
	if !reflect.DeepEqual(rerr.Reasons, []string{"not registered"}) {
		t.Fatalf("unexpected reasons %v", rerr.Reasons)
	}
	if rerr.TransactionID.Server != "54321-XYZ" {
		t.Fatalf("unexpected svTRID %q", rerr.TransactionID.Server)
	}
	if IsFatal(resp.Err()) {
		t.Fatalf("registry errors are not fatal")
	}
}

func TestEncodeResponseRoundTrip(t *testing.T) {
	want := Response[NoExtension, NoExtension]{
		Results:       []Result{{Code: CodeSuccessNoMessages, Message: "Command completed successfully; no messages"}},
		MessageQueue:  &MessageQueue{Count: 0},
		TransactionID: TransactionID{Client: "ABC-1", Server: "SV-1"},
	}
	doc, err := EncodeResponse(want)
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	got, err := DecodeResponse[NoExtension, NoExtension]([]byte(doc))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if !reflect.DeepEqual(*got, want) {
		t.Fatalf("round trip mismatch:\n got %+v\nwant %+v", *got, want)
	}
}

func TestNilResponseErr(t *testing.T) {
	var resp *Response[NoExtension, NoExtension]
	if resp.Err() != nil {
		t.Fatalf("nil response should have no error")
	}
	if resp.Code() != 0 {
		t.Fatalf("nil response should have zero code")
	}
}

func TestResultCodeBands(t *testing.T) {
	cases := []struct {
		code    ResultCode
		success bool
		closes  bool
	}{
		{CodeSuccess, true, false},
		{CodeSuccessAckToDequeue, true, false},
		{CodeSuccessEndingSession, true, true},
		{CodeObjectExists, false, false},
		{CodeCommandFailed, false, false},
		{CodeCommandFailedClosing, false, true},
		{CodeSessionLimitExceeded, false, true},
	}
	for _, tc := range cases {
		if got := tc.code.IsSuccess(); got != tc.success {
			t.Fatalf("%d IsSuccess=%v want %v", tc.code, got, tc.success)
		}
		if got := tc.code.ClosesSession(); got != tc.closes {
			t.Fatalf("%d ClosesSession=%v want %v", tc.code, got, tc.closes)
		}
	}
}

func TestIsFatalClassification(t *testing.T) {
	for _, err := range []error{ErrTransport, ErrFraming, ErrCorrelation} {
		if !IsFatal(err) {
			t.Fatalf("%v should be fatal", err)
		}
	}
	for _, err := range []error{ErrDecode, ErrEncode, ErrProtocolState, errors.New("other")} {
		if IsFatal(err) {
			t.Fatalf("%v should not be fatal", err)
		}
	}
}
