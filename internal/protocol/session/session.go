package session

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/danmuck/eppctl/internal/epp"
)

// State is the position in the greeting -> login -> logout sequence.
type State int

const (
	StateAwaitingGreeting State = iota
	StateGreeted
	StateLoggedIn
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateAwaitingGreeting:
		return "awaiting-greeting"
	case StateGreeted:
		return "greeted"
	case StateLoggedIn:
		return "logged-in"
	case StateClosed:
		return "closed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Credentials authenticate the login command.
type Credentials struct {
	ClientID    string
	Password    string
	NewPassword string
	// ObjectURIs defaults to the greeting's object menu.
	ObjectURIs    []string
	ExtensionURIs []string
}

// Record describes one finished transaction for observers.
type Record struct {
	Verb       string
	Extension  string
	ClientTRID string
	ServerTRID string
	Code       epp.ResultCode
	Message    string
	StartedAt  time.Time
	Duration   time.Duration
	Err        error
}

// Observer is called after every transaction that reached the wire.
type Observer func(Record)

// Observers fans a record out to every non-nil fn in order.
func Observers(fns ...Observer) Observer {
	return func(rec Record) {
		for _, fn := range fns {
			if fn != nil {
				fn(rec)
			}
		}
	}
}

// Session owns one EPP stream. It is not safe for concurrent use: callers
// sharing a session must serialize their calls.
type Session struct {
	conn        io.ReadWriteCloser
	cfg         Config
	state       State
	greeting    epp.Greeting
	rawGreeting string
	trids       *TRIDGenerator
	observer    Observer
}

// New takes ownership of conn and reads the greeting before returning. On
// failure conn is closed.
func New(ctx context.Context, conn io.ReadWriteCloser, cfg Config) (*Session, error) {
	cfg = cfg.WithDefaults()
	s := &Session{
		conn:  conn,
		cfg:   cfg,
		state: StateAwaitingGreeting,
		trids: NewTRIDGenerator(cfg.TRIDPrefix),
	}
	raw, err := s.receive(ctx)
	if err != nil {
		return nil, err
	}
	greeting, err := epp.DecodeGreeting(raw)
	if err != nil {
		_ = s.Close()
		if _, ok := epp.AsRegistryError(err); ok {
			return nil, err
		}
		return nil, fmt.Errorf("%w: greeting: %w", epp.ErrDecode, err)
	}
	s.greeting = greeting
	s.rawGreeting = string(raw)
	s.state = StateGreeted
	log.Debug().
		Str("sv_id", greeting.ServerID).
		Strs("obj_uris", greeting.ServiceMenu.ObjectURIs).
		Strs("ext_uris", greeting.ServiceMenu.ExtensionURIs).
		Msg("session.New greeting received")
	return s, nil
}

// Connect dials address and reads the greeting.
func Connect(ctx context.Context, address string, cfg Config) (*Session, error) {
	conn, err := Dial(ctx, address, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: dial %s: %w", epp.ErrTransport, address, err)
	}
	return New(ctx, conn, cfg)
}

func (s *Session) State() State { return s.state }

// Greeting returns the greeting read on connect.
func (s *Session) Greeting() epp.Greeting { return s.greeting }

// RawGreeting returns the greeting document as received.
func (s *Session) RawGreeting() string { return s.rawGreeting }

// SetObserver installs fn to receive a Record per transaction.
func (s *Session) SetObserver(fn Observer) { s.observer = fn }

// NextTRID returns a fresh client transaction id from the session generator.
func (s *Session) NextTRID() string { return s.trids.Next() }

// Login authenticates the session. A registry refusal leaves the session in
// StateGreeted and is returned as *epp.RegistryError.
func (s *Session) Login(ctx context.Context, creds Credentials, clTRID string) (*epp.Response[epp.NoExtension, epp.NoExtension], error) {
	objURIs := creds.ObjectURIs
	if len(objURIs) == 0 {
		objURIs = s.greeting.ServiceMenu.ObjectURIs
	}
	login := epp.NewLogin(creds.ClientID, creds.Password, objURIs, creds.ExtensionURIs)
	login.NewPassword = creds.NewPassword
	return Transact(ctx, s, epp.LoginRequest(login), clTRID)
}

// Logout ends the session and closes the stream.
func (s *Session) Logout(ctx context.Context, clTRID string) (*epp.Response[epp.NoExtension, epp.NoExtension], error) {
	return Transact(ctx, s, epp.LogoutRequest(), clTRID)
}

// Hello asks for a fresh greeting. It is valid before and after login and
// carries no transaction id.
func (s *Session) Hello(ctx context.Context) (epp.Greeting, error) {
	if s.state != StateGreeted && s.state != StateLoggedIn {
		return epp.Greeting{}, fmt.Errorf("%w: hello in state %s", epp.ErrProtocolState, s.state)
	}
	doc, err := epp.EncodeHello()
	if err != nil {
		return epp.Greeting{}, fmt.Errorf("%w: %w", epp.ErrEncode, err)
	}
	raw, err := s.exchange(ctx, []byte(doc))
	if err != nil {
		return epp.Greeting{}, err
	}
	greeting, err := epp.DecodeGreeting(raw)
	if err != nil {
		if _, ok := epp.AsRegistryError(err); ok {
			return epp.Greeting{}, err
		}
		return epp.Greeting{}, fmt.Errorf("%w: greeting: %w", epp.ErrDecode, err)
	}
	s.greeting = greeting
	s.rawGreeting = string(raw)
	return greeting, nil
}

// Close drops the stream without a logout. It is safe to call repeatedly.
func (s *Session) Close() error {
	if s.state == StateClosed {
		return nil
	}
	s.state = StateClosed
	return s.conn.Close()
}

// admit checks verb against the state machine.
func (s *Session) admit(verb string) error {
	switch s.state {
	case StateClosed, StateAwaitingGreeting:
		return fmt.Errorf("%w: %s in state %s", epp.ErrProtocolState, verb, s.state)
	case StateGreeted:
		if verb != loginVerb {
			return fmt.Errorf("%w: %s before login", epp.ErrProtocolState, verb)
		}
	case StateLoggedIn:
		if verb == loginVerb {
			return fmt.Errorf("%w: already logged in", epp.ErrProtocolState)
		}
	}
	return nil
}

// advance applies the state change of a transaction that got a response.
func (s *Session) advance(verb string, code epp.ResultCode) {
	switch {
	case verb == logoutVerb:
		_ = s.Close()
	case code.ClosesSession():
		log.Warn().Int("code", int(code)).Msg("session: server is closing the session")
		_ = s.Close()
	case verb == loginVerb && code.IsSuccess():
		s.state = StateLoggedIn
	}
}

const (
	loginVerb  = "login"
	logoutVerb = "logout"
)
