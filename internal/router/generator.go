package router

import (
	"net/url"
	"strings"

	"github.com/vyrodovalexey/avaroute/internal/util"
)

// Generator builds request paths from named routes.
type Generator struct {
	routes *Collection
}

// NewGenerator creates a generator over the named routes of c.
func NewGenerator(c *Collection) *Generator {
	if c == nil {
		c = NewCollection()
	}
	return &Generator{routes: c}
}

// Generate builds the path of the route registered under name.
func (g *Generator) Generate(name string, params map[string]string) (string, error) {
	route, err := g.routes.Route(name)
	if err != nil {
		return "", err
	}
	return BuildPath(route, params)
}

// BuildPath fills the placeholders of route's template with params.
//
// A placeholder without a value in params takes the route default. Each
// value must fully match its placeholder pattern. Parameters that are not
// placeholders and differ from the route defaults are appended as a query
// string with sorted keys.
func BuildPath(route *Route, params map[string]string) (string, error) {
	if route.tokens == nil {
		return "", util.NewInvalidArgumentError("route", route.path,
			"route has no parsed template to generate from")
	}

	var b strings.Builder
	used := make(map[string]bool, len(route.params))

	for _, t := range route.tokens {
		if t.param == literalToken {
			b.WriteString(t.literal)
			continue
		}

		p := route.params[t.param]
		value, ok := params[p.Name]
		if !ok {
			value, ok = route.defaults[p.Name]
		}
		if !ok {
			return "", util.NewInvalidArgumentError("params."+p.Name, nil, "missing value for placeholder")
		}

		regex, err := compileCached("^(?:" + p.Pattern + ")$")
		if err != nil {
			return "", util.NewPatternError(route.path, p.Pattern, err)
		}
		if !regex.MatchString(value) {
			return "", util.NewInvalidArgumentError("params."+p.Name, value,
				"value does not match pattern "+p.Pattern)
		}

		b.WriteString(escapeSegments(value))
		used[p.Name] = true
	}

	query := url.Values{}
	for name, value := range params {
		if used[name] {
			continue
		}
		if d, ok := route.defaults[name]; ok && d == value {
			continue
		}
		query.Set(name, value)
	}
	if len(query) > 0 {
		b.WriteByte('?')
		b.WriteString(query.Encode())
	}

	return b.String(), nil
}

// escapeSegments path-escapes value while keeping its slashes.
func escapeSegments(value string) string {
	segments := strings.Split(value, "/")
	for i, s := range segments {
		segments[i] = url.PathEscape(s)
	}
	return strings.Join(segments, "/")
}
