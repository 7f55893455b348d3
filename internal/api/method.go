package api

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/alnah/go-apiclient/internal/apierr"
)

// Method is an HTTP method supported by the client.
type Method string

// Supported methods.
const (
	GET    Method = http.MethodGet
	POST   Method = http.MethodPost
	PUT    Method = http.MethodPut
	DELETE Method = http.MethodDelete
)

// ParseMethod parses a method name, case-insensitive.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if !m.supported() {
		return "", fmt.Errorf("%q: %w", s, apierr.ErrMethodNotSupported)
	}
	return m, nil
}

func (m Method) supported() bool {
	switch m {
	case GET, POST, PUT, DELETE:
		return true
	default:
		return false
	}
}

// hasBody reports whether params are sent as a JSON body rather than as a
// query string.
func (m Method) hasBody() bool {
	return m == POST || m == PUT
}

// String returns the method name.
func (m Method) String() string {
	return string(m)
}
