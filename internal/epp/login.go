package epp

// Object namespaces announced in <svcs> by default.
const (
	DomainNamespace  = "urn:ietf:params:xml:ns:domain-1.0"
	ContactNamespace = "urn:ietf:params:xml:ns:contact-1.0"
	HostNamespace    = "urn:ietf:params:xml:ns:host-1.0"
)

// DefaultObjectURIs is the object service menu sent when the caller and the
// greeting name none.
var DefaultObjectURIs = []string{HostNamespace, ContactNamespace, DomainNamespace}

// Login is the <login> command.
type Login struct {
	ClientID    string       `xml:"clID"`
	Password    string       `xml:"pw"`
	NewPassword string       `xml:"newPW,omitempty"`
	Options     LoginOptions `xml:"options"`
	Services    Services     `xml:"svcs"`
}

func (Login) CommandName() string { return "login" }

type LoginOptions struct {
	Version  string `xml:"version"`
	Language string `xml:"lang"`
}

type Services struct {
	ObjectURIs []string          `xml:"objURI"`
	Extensions *ServiceExtension `xml:"svcExtension,omitempty"`
}

type ServiceExtension struct {
	URIs []string `xml:"extURI"`
}

// NewLogin builds a login for protocol version 1.0 in English.
func NewLogin(clientID, password string, objURIs, extURIs []string) Login {
	if len(objURIs) == 0 {
		objURIs = DefaultObjectURIs
	}
	login := Login{
		ClientID: clientID,
		Password: password,
		Options:  LoginOptions{Version: "1.0", Language: "en"},
		Services: Services{ObjectURIs: append([]string(nil), objURIs...)},
	}
	if len(extURIs) > 0 {
		login.Services.Extensions = &ServiceExtension{URIs: append([]string(nil), extURIs...)}
	}
	return login
}

// LoginRequest declares the login transaction.
func LoginRequest(login Login) Request[Login, NoExtension, NoExtension] {
	return NewRequest[Login, NoExtension](login)
}

// Logout is the <logout> command.
type Logout struct{}

func (Logout) CommandName() string { return "logout" }

// LogoutRequest declares the logout transaction.
func LogoutRequest() Request[Logout, NoExtension, NoExtension] {
	return NewRequest[Logout, NoExtension](Logout{})
}
