package epp

import (
	"encoding/xml"

	"github.com/danmuck/eppctl/internal/protocol/xmldoc"
)

// Response is a decoded <response>. Data is the <resData> element decoded as
// R, Extension the <extension> element decoded as X.
type Response[R, X any] struct {
	Results       []Result      `xml:"result"`
	MessageQueue  *MessageQueue `xml:"msgQ"`
	Data          *R            `xml:"resData"`
	Extension     *X            `xml:"extension"`
	TransactionID TransactionID `xml:"trID"`
}

type responseDocument[R, X any] struct {
	XMLName  xml.Name       `xml:"urn:ietf:params:xml:ns:epp-1.0 epp"`
	Response Response[R, X] `xml:"response"`
}

// DecodeResponse parses a response document.
func DecodeResponse[R, X any](doc []byte) (*Response[R, X], error) {
	out, err := xmldoc.Decode[responseDocument[R, X]](doc)
	if err != nil {
		return nil, err
	}
	return &out.Response, nil
}

// EncodeResponse renders resp as a complete document. Registry fakes in tests
// use it to script server replies.
func EncodeResponse[R, X any](resp Response[R, X]) (string, error) {
	return xmldoc.Encode(responseDocument[R, X]{Response: resp})
}

// Result returns the first <result>, which carries the outcome code.
func (r *Response[R, X]) Result() Result {
	if r == nil || len(r.Results) == 0 {
		return Result{}
	}
	return r.Results[0]
}

// Code is shorthand for Result().Code.
func (r *Response[R, X]) Code() ResultCode {
	return r.Result().Code
}

// Err returns a *RegistryError when the result code is outside the success
// band, nil otherwise.
func (r *Response[R, X]) Err() error {
	if r == nil {
		return nil
	}
	res := r.Result()
	if res.Code.IsSuccess() {
		return nil
	}
	var reasonList []string
	for _, item := range r.Results {
		reasonList = append(reasonList, reasons(item.Values)...)
	}
	return &RegistryError{
		Code:          res.Code,
		Message:       res.Message,
		Reasons:       reasonList,
		TransactionID: r.TransactionID,
	}
}
