// Package epp owns the EPP document model shared by the session layer and
// the object packages.
//
// Ownership boundary:
// - command/response envelopes and the greeting
// - the (command, extension) pairing model
// - result codes and the error taxonomy
//
// A Request[C, R, X] is the static declaration of one valid pairing: C is the
// base command, R the shape of <resData> it answers with, X the shape of the
// <extension> element in the response. NewRequest declares an unextended
// command; extension packages declare their pairs through typed attach
// functions built on Extend.
package epp
