package router

import (
	"strings"

	"github.com/vyrodovalexey/avaroute/internal/util"
)

// Method is a bitmask of HTTP methods accepted by a route.
type Method uint8

// Supported HTTP methods.
const (
	MethodGet Method = 1 << iota
	MethodPost
	MethodPut
	MethodDelete

	// MethodAll accepts every supported method.
	MethodAll = MethodGet | MethodPost | MethodPut | MethodDelete
)

// methodNames lists the single-method masks in bit order.
var methodNames = []struct {
	method Method
	name   string
}{
	{MethodGet, "GET"},
	{MethodPost, "POST"},
	{MethodPut, "PUT"},
	{MethodDelete, "DELETE"},
}

// Valid reports whether the mask is non-empty and only carries known bits.
func (m Method) Valid() bool {
	return m != 0 && m&^MethodAll == 0
}

// Has reports whether any bit of other is also set in m.
func (m Method) Has(other Method) bool {
	return m&other != 0
}

// String returns the method names joined by "|", "ALL" for MethodAll.
func (m Method) String() string {
	if m == MethodAll {
		return "ALL"
	}
	if m == 0 {
		return "NONE"
	}

	names := make([]string, 0, len(methodNames))
	for _, mn := range methodNames {
		if m&mn.method != 0 {
			names = append(names, mn.name)
		}
	}
	if m&^MethodAll != 0 {
		names = append(names, "INVALID")
	}
	return strings.Join(names, "|")
}

// ParseMethod converts an HTTP method name into its mask.
// HEAD is treated as GET, "*" and "ALL" select every method.
func ParseMethod(name string) (Method, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case "GET", "HEAD":
		return MethodGet, nil
	case "POST":
		return MethodPost, nil
	case "PUT":
		return MethodPut, nil
	case "DELETE":
		return MethodDelete, nil
	case "*", "ALL":
		return MethodAll, nil
	default:
		return 0, util.NewInvalidArgumentError("method", name, "unsupported HTTP method")
	}
}

// ParseMethods ORs together the masks of the given method names.
// An empty list accepts every method.
func ParseMethods(names []string) (Method, error) {
	if len(names) == 0 {
		return MethodAll, nil
	}

	var mask Method
	for _, name := range names {
		m, err := ParseMethod(name)
		if err != nil {
			return 0, err
		}
		mask |= m
	}
	return mask, nil
}
