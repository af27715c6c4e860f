package epp

import (
	"strings"
	"time"
)

// ResultCode is the four-digit code of a <result> element.
type ResultCode uint16

// Result codes from RFC 5730 section 3.
const (
	CodeSuccess                ResultCode = 1000
	CodeSuccessPending         ResultCode = 1001
	CodeSuccessNoMessages      ResultCode = 1300
	CodeSuccessAckToDequeue    ResultCode = 1301
	CodeSuccessEndingSession   ResultCode = 1500
	CodeUnknownCommand         ResultCode = 2000
	CodeSyntaxError            ResultCode = 2001
	CodeCommandUseError        ResultCode = 2002
	CodeMissingParameter       ResultCode = 2003
	CodeParameterRange         ResultCode = 2004
	CodeParameterSyntax        ResultCode = 2005
	CodeUnimplementedVersion   ResultCode = 2100
	CodeUnimplementedCommand   ResultCode = 2101
	CodeUnimplementedOption    ResultCode = 2102
	CodeUnimplementedExtension ResultCode = 2103
	CodeBillingFailure         ResultCode = 2104
	CodeNotEligibleForRenewal  ResultCode = 2105
	CodeNotEligibleForTransfer ResultCode = 2106
	CodeAuthenticationError    ResultCode = 2200
	CodeAuthorizationError     ResultCode = 2201
	CodeInvalidAuthInfo        ResultCode = 2202
	CodePendingTransfer        ResultCode = 2300
	CodeNotPendingTransfer     ResultCode = 2301
	CodeObjectExists           ResultCode = 2302
	CodeObjectDoesNotExist     ResultCode = 2303
	CodeStatusProhibits        ResultCode = 2304
	CodeAssociationProhibits   ResultCode = 2305
	CodeParameterPolicyError   ResultCode = 2306
	CodeUnimplementedService   ResultCode = 2307
	CodeDataManagementPolicy   ResultCode = 2308
	CodeCommandFailed          ResultCode = 2400
	CodeCommandFailedClosing   ResultCode = 2500
	CodeAuthErrorClosing       ResultCode = 2501
	CodeSessionLimitExceeded   ResultCode = 2502
)

// IsSuccess reports whether c is in the 1xxx band.
func (c ResultCode) IsSuccess() bool {
	return c >= 1000 && c < 2000
}

// ClosesSession reports whether the server ends the session with c.
func (c ResultCode) ClosesSession() bool {
	return c == CodeSuccessEndingSession || (c >= 2500 && c < 2600)
}

// Result is one <result> element.
type Result struct {
	Code    ResultCode `xml:"code,attr"`
	Message string     `xml:"msg"`
	Values  []ExtValue `xml:"extValue"`
}

// ExtValue carries the offending element and a reason for a failed command.
type ExtValue struct {
	Value  RawXML `xml:"value"`
	Reason string `xml:"reason"`
}

// RawXML keeps an element's inner markup verbatim.
type RawXML struct {
	Inner string `xml:",innerxml"`
}

// MessageQueue is the <msgQ> summary.
type MessageQueue struct {
	Count   int        `xml:"count,attr"`
	ID      string     `xml:"id,attr"`
	Date    *time.Time `xml:"qDate,omitempty"`
	Message string     `xml:"msg,omitempty"`
}

// TransactionID is the <trID> pair echoed in every response.
type TransactionID struct {
	Client string `xml:"clTRID,omitempty"`
	Server string `xml:"svTRID"`
}

func reasons(values []ExtValue) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if r := strings.TrimSpace(v.Reason); r != "" {
			out = append(out, r)
		}
	}
	return out
}
