package problem

import (
	"errors"
	"fmt"
)

// ErrUnknownKind indicates a string that does not name a problem kind.
var ErrUnknownKind = errors.New("unknown problem kind")

// Kind is the semantic category of a failed request.
type Kind int

// Problem kinds. The zero value is Unknown.
const (
	Unknown Kind = iota
	CannotConnect
	Timeout
	Unauthorized
	Forbidden
	NotFound
	Server
	Rejected
)

var kindNames = map[Kind]string{
	Unknown:       "unknown",
	CannotConnect: "cannot-connect",
	Timeout:       "timeout",
	Unauthorized:  "unauthorized",
	Forbidden:     "forbidden",
	NotFound:      "not-found",
	Server:        "server",
	Rejected:      "rejected",
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	return []Kind{Unknown, CannotConnect, Timeout, Unauthorized, Forbidden, NotFound, Server, Rejected}
}

// String returns the kebab-case name of the kind, e.g. "cannot-connect".
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, error) {
	for k, name := range kindNames {
		if name == s {
			return k, nil
		}
	}
	return Unknown, fmt.Errorf("%q: %w", s, ErrUnknownKind)
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(b []byte) error {
	parsed, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}
