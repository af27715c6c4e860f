// Package message holds the service message queue commands: poll and ack.
package message

import (
	"github.com/danmuck/eppctl/internal/epp"
)

const (
	opRequest = "req"
	opAck     = "ack"
)

// Poll is the <poll> command. Op is "req" to read the head of the queue or
// "ack" to dequeue MessageID.
type Poll struct {
	Op        string `xml:"op,attr"`
	MessageID string `xml:"msgID,attr,omitempty"`
}

func (Poll) CommandName() string { return "poll" }

// Data is the <resData> of a poll. Its content depends on the queued
// message (a transfer notice, a pending action result, ...), so it is kept
// verbatim for the caller to decode.
type Data struct {
	Inner string `xml:",innerxml"`
}

// NewPoll reads the oldest queued message. The message id and count are in
// the response's MessageQueue; an empty queue answers 1300.
func NewPoll() epp.Request[Poll, Data, epp.NoExtension] {
	return epp.NewRequest[Poll, Data](Poll{Op: opRequest})
}

// NewAck dequeues the message with id.
func NewAck(id string) epp.Request[Poll, epp.NoExtension, epp.NoExtension] {
	return epp.NewRequest[Poll, epp.NoExtension](Poll{Op: opAck, MessageID: id})
}
