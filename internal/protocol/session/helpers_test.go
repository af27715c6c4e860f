package session

import (
	"testing"
	"time"

	"github.com/danmuck/eppctl/internal/epp"
)

func testConfig() Config {
	cfg := DefaultConfig()
	cfg.TRIDPrefix = "test"
	return cfg
}

func testGreeting() epp.Greeting {
	return epp.Greeting{
		ServerID:   "Test EPP Server",
		ServerDate: time.Date(2021, 7, 25, 14, 51, 17, 0, time.UTC),
		ServiceMenu: epp.ServiceMenu{
			Versions:   []string{"1.0"},
			Languages:  []string{"en"},
			ObjectURIs: epp.DefaultObjectURIs,
		},
	}
}

func testCredentials() Credentials {
	return Credentials{ClientID: "username", Password: "password"}
}

func greetingDoc(t testing.TB) string {
	t.Helper()
	doc, err := epp.EncodeGreeting(testGreeting())
	if err != nil {
		t.Fatalf("encode greeting: %v", err)
	}
	return doc
}

func helloDoc(t testing.TB) string {
	t.Helper()
	doc, err := epp.EncodeHello()
	if err != nil {
		t.Fatalf("encode hello: %v", err)
	}
	return doc
}

func requestDoc[C epp.Command, R, X any](t testing.TB, req epp.Request[C, R, X], clTRID string) string {
	t.Helper()
	doc, err := req.Encode(clTRID)
	if err != nil {
		t.Fatalf("encode %s: %v", req.Command().CommandName(), err)
	}
	return doc
}

func loginDoc(t testing.TB, clTRID string) string {
	t.Helper()
	creds := testCredentials()
	login := epp.NewLogin(creds.ClientID, creds.Password, testGreeting().ServiceMenu.ObjectURIs, nil)
	return requestDoc(t, epp.LoginRequest(login), clTRID)
}

func responseDoc[R, X any](t testing.TB, resp epp.Response[R, X]) string {
	t.Helper()
	doc, err := epp.EncodeResponse(resp)
	if err != nil {
		t.Fatalf("encode response: %v", err)
	}
	return doc
}

func resultDoc(t testing.TB, code epp.ResultCode, msg, clTRID string) string {
	t.Helper()
	return responseDoc(t, epp.Response[epp.NoExtension, epp.NoExtension]{
		Results:       []epp.Result{{Code: code, Message: msg}},
		TransactionID: epp.TransactionID{Client: clTRID, Server: "SV-" + clTRID},
	})
}
