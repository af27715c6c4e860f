package session

import (
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/danmuck/eppctl/internal/epp"
)

// clTRID length bounds from the EPP schema (trIDStringType).
const (
	minTRIDLen = 3
	maxTRIDLen = 64
)

var ErrInvalidTRID = errors.New("session: invalid client transaction id")

// TRIDGenerator hands out client transaction ids that are unique for the
// lifetime of one session: <prefix>-<session tag>-<counter>.
type TRIDGenerator struct {
	base string
	n    atomic.Uint64
}

func NewTRIDGenerator(prefix string) *TRIDGenerator {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = defaultTRIDPrefix
	}
	// prefix + "-" + 12-char tag + "-" + up to 20 counter digits
	if limit := maxTRIDLen - 34; len(prefix) > limit {
		prefix = prefix[:limit]
	}
	tag := strings.ReplaceAll(uuid.NewString(), "-", "")[:12]
	return &TRIDGenerator{base: prefix + "-" + tag}
}

func (g *TRIDGenerator) Next() string {
	return fmt.Sprintf("%s-%d", g.base, g.n.Add(1))
}

// ValidateTRID reports whether id survives the server's token normalization
// unchanged, so the echoed id can match it byte for byte.
func ValidateTRID(id string) error {
	n := utf8.RuneCountInString(id)
	switch {
	case n < minTRIDLen || n > maxTRIDLen:
		return fmt.Errorf("%w: length %d outside %d..%d", ErrInvalidTRID, n, minTRIDLen, maxTRIDLen)
	case strings.TrimSpace(id) != id,
		strings.ContainsAny(id, "\t\n\r"),
		strings.Contains(id, "  "):
		return fmt.Errorf("%w: %q is not a normalized token", ErrInvalidTRID, id)
	}
	return nil
}

// clientTRID returns id, or a generated id when id is empty. Invalid ids are
// rejected before anything is written.
func (s *Session) clientTRID(id string) (string, error) {
	if id == "" {
		return s.trids.Next(), nil
	}
	if err := ValidateTRID(id); err != nil {
		return "", fmt.Errorf("%w: %w", epp.ErrEncode, err)
	}
	return id, nil
}
