package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/danmuck/eppctl/internal/epp"
	"github.com/danmuck/eppctl/internal/protocol/frame"
)

const tracerName = "github.com/danmuck/eppctl/internal/protocol/session"

// Transact runs one request/response exchange on s. An empty clTRID is
// replaced by a generated one; a clTRID that fails ValidateTRID is rejected
// with epp.ErrEncode before anything is written.
//
// A response with a failure result code is returned together with a
// *epp.RegistryError; the session stays usable. Transport, framing and
// correlation failures close the session.
func Transact[C epp.Command, R, X any](ctx context.Context, s *Session, req epp.Request[C, R, X], clTRID string) (*epp.Response[R, X], error) {
	verb := req.Command().CommandName()
	extName := req.Extension().ExtensionName()
	if err := s.admit(verb); err != nil {
		return nil, err
	}
	clTRID, err := s.clientTRID(clTRID)
	if err != nil {
		return nil, err
	}

	ctx, span := otel.Tracer(tracerName).Start(ctx, "epp.transact", trace.WithAttributes(
		attribute.String("epp.command", verb),
		attribute.String("epp.extension", extName),
		attribute.String("epp.cltrid", clTRID),
	))
	defer span.End()

	rec := Record{Verb: verb, Extension: extName, ClientTRID: clTRID, StartedAt: time.Now()}
	resp, err := transact(ctx, s, req, clTRID)
	if resp != nil {
		rec.ServerTRID = resp.TransactionID.Server
		rec.Code = resp.Code()
		rec.Message = resp.Result().Message
		span.SetAttributes(
			attribute.String("epp.svtrid", rec.ServerTRID),
			attribute.Int("epp.result_code", int(rec.Code)),
		)
	}
	rec.Duration = time.Since(rec.StartedAt)
	rec.Err = err
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	if s.observer != nil && !errors.Is(err, epp.ErrEncode) {
		s.observer(rec)
	}

	ev := log.Debug()
	if err != nil {
		ev = log.Warn().Err(err)
	}
	ev.Str("cmd", verb).
		Str("ext", extName).
		Str("cltrid", clTRID).
		Str("svtrid", rec.ServerTRID).
		Int("code", int(rec.Code)).
		Dur("took", rec.Duration).
		Str("state", s.state.String()).
		Msg("session.Transact")
	return resp, err
}

func transact[C epp.Command, R, X any](ctx context.Context, s *Session, req epp.Request[C, R, X], clTRID string) (*epp.Response[R, X], error) {
	doc, err := req.Encode(clTRID)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", epp.ErrEncode, err)
	}
	raw, err := s.exchange(ctx, []byte(doc))
	if err != nil {
		return nil, err
	}
	resp, err := epp.DecodeResponse[R, X](raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", epp.ErrDecode, err)
	}
	if got := resp.TransactionID.Client; got != clTRID {
		_ = s.Close()
		return nil, fmt.Errorf("%w: sent %q, got %q", epp.ErrCorrelation, clTRID, got)
	}
	s.advance(req.Command().CommandName(), resp.Code())
	if err := resp.Err(); err != nil {
		return resp, err
	}
	return resp, nil
}

// exchange writes one frame and reads exactly one frame back.
func (s *Session) exchange(ctx context.Context, payload []byte) ([]byte, error) {
	if s.state == StateClosed {
		return nil, fmt.Errorf("%w: session closed", epp.ErrProtocolState)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	stop := s.bindContext(ctx)
	defer stop()

	s.setDeadline(ctx, s.cfg.WriteTimeout, writeDeadline)
	log.Trace().Bytes("xml", redactSecrets(payload)).Msg("session.exchange send")
	if err := frame.WriteFrame(s.conn, payload); err != nil {
		return nil, s.fail(ctx, "write", err)
	}
	return s.receive(ctx)
}

// receive reads one frame. Failures close the session.
func (s *Session) receive(ctx context.Context) ([]byte, error) {
	stop := s.bindContext(ctx)
	defer stop()

	s.setDeadline(ctx, s.cfg.ReadTimeout, readDeadline)
	raw, err := frame.ReadFrame(s.conn, s.cfg.Limits)
	if err != nil {
		return nil, s.fail(ctx, "read", err)
	}
	log.Trace().Bytes("xml", redactSecrets(raw)).Msg("session.exchange recv")
	return raw, nil
}

// fail closes the session and classifies err. After a failed write or read
// the stream position is unknown, so nothing can be salvaged.
func (s *Session) fail(ctx context.Context, op string, err error) error {
	_ = s.Close()
	if cerr := ctx.Err(); cerr != nil {
		return fmt.Errorf("%w: %s: %w", epp.ErrTransport, op, cerr)
	}
	if errors.Is(err, frame.ErrLengthTooSmall) || errors.Is(err, frame.ErrPayloadTooLarge) {
		return fmt.Errorf("%w: %s: %w", epp.ErrFraming, op, err)
	}
	return fmt.Errorf("%w: %s: %w", epp.ErrTransport, op, err)
}

type deadliner interface {
	SetDeadline(t time.Time) error
	SetReadDeadline(t time.Time) error
	SetWriteDeadline(t time.Time) error
}

type deadlineKind int

const (
	readDeadline deadlineKind = iota
	writeDeadline
)

// setDeadline applies the earlier of the context deadline and now+timeout.
// Streams without deadlines are left alone.
func (s *Session) setDeadline(ctx context.Context, timeout time.Duration, kind deadlineKind) {
	d, ok := s.conn.(deadliner)
	if !ok {
		return
	}
	var at time.Time
	if timeout > 0 {
		at = time.Now().Add(timeout)
	}
	if dl, ok := ctx.Deadline(); ok && (at.IsZero() || dl.Before(at)) {
		at = dl
	}
	switch kind {
	case readDeadline:
		_ = d.SetReadDeadline(at)
	case writeDeadline:
		_ = d.SetWriteDeadline(at)
	}
}

// bindContext unblocks pending I/O when ctx is cancelled by expiring the
// stream deadline. The returned func detaches the hook.
func (s *Session) bindContext(ctx context.Context) func() {
	d, ok := s.conn.(deadliner)
	if !ok || ctx.Done() == nil {
		return func() {}
	}
	stop := context.AfterFunc(ctx, func() {
		_ = d.SetDeadline(time.Unix(1, 0))
	})
	return func() { stop() }
}
