package session

import "regexp"

// secretElement matches the text of <pw> and <newPW> in any namespace prefix:
// the login password and the authInfo passwords of object commands.
var secretElement = regexp.MustCompile(`(<(?:[A-Za-z_][\w.-]*:)?(?:pw|newPW)(?:\s[^>]*)?>)[^<]*(</)`)

const redacted = "[REDACTED]"

// redactSecrets returns doc with password text replaced, for logging only.
func redactSecrets(doc []byte) []byte {
	return secretElement.ReplaceAll(doc, []byte("${1}"+redacted+"${2}"))
}
