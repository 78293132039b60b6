package router

import (
	"maps"
	"regexp"
	"strconv"
	"sync"

	"github.com/vyrodovalexey/avaroute/internal/util"
)

// Parameter is a named path parameter and the pattern its value must match.
type Parameter struct {
	Name    string
	Pattern string
}

// token is one piece of a parsed template: literal text, or a reference
// to the placeholder at index param.
type token struct {
	literal string
	param   int
}

const literalToken = -1

// compiledPattern holds a route regexp that is compiled on first use.
type compiledPattern struct {
	source string
	once   sync.Once
	regex  *regexp.Regexp
	err    error
}

// Route describes a path template, its parameters, default values and
// accepted methods. Routes are configured during registration and are
// read-only once matching starts.
type Route struct {
	path     string
	tokens   []token
	pattern  *compiledPattern
	params   []Parameter
	defaults map[string]string
	methods  Method
}

// NewRoute creates a static route for path that accepts every method.
func NewRoute(path string) *Route {
	return &Route{
		path:     path,
		defaults: make(map[string]string),
		methods:  MethodAll,
	}
}

// Path returns the raw path template.
func (r *Route) Path() string {
	return r.path
}

// IsStatic reports whether the route is matched by exact string equality.
func (r *Route) IsStatic() bool {
	return r.pattern == nil
}

// Regexp returns the unanchored regular expression source of a dynamic
// route, or "" for a static route.
func (r *Route) Regexp() string {
	if r.pattern == nil {
		return ""
	}
	return r.pattern.source
}

// SetRegexp attaches a regular expression to the route and makes it dynamic.
// The expression is matched against the whole path. It is not compiled
// until the route is first matched.
func (r *Route) SetRegexp(pattern string) {
	r.pattern = &compiledPattern{source: pattern}
}

// Specify sets the pattern of a named parameter. A new name is appended
// after the existing ones; an existing name keeps its position.
// Specify never changes whether the route is static.
func (r *Route) Specify(name, pattern string) {
	for i := range r.params {
		if r.params[i].Name == name {
			r.params[i].Pattern = pattern
			return
		}
	}
	r.params = append(r.params, Parameter{Name: name, Pattern: pattern})
}

// ParameterPatterns returns the parameters in template order.
func (r *Route) ParameterPatterns() []Parameter {
	params := make([]Parameter, len(r.params))
	copy(params, r.params)
	return params
}

// ParameterPattern returns the pattern of the named parameter.
func (r *Route) ParameterPattern(name string) (string, bool) {
	for _, p := range r.params {
		if p.Name == name {
			return p.Pattern, true
		}
	}
	return "", false
}

// ParameterCount returns the number of named parameters.
func (r *Route) ParameterCount() int {
	return len(r.params)
}

// ParameterNames returns the parameter names in template order.
func (r *Route) ParameterNames() []string {
	names := make([]string, len(r.params))
	for i, p := range r.params {
		names[i] = p.Name
	}
	return names
}

// Set stores a default value for name.
func (r *Route) Set(name, value string) {
	if r.defaults == nil {
		r.defaults = make(map[string]string)
	}
	r.defaults[name] = value
}

// SetDefaults stores every entry of values as a default value.
func (r *Route) SetDefaults(values map[string]string) {
	for name, value := range values {
		r.Set(name, value)
	}
}

// Defaults returns a copy of the default values.
func (r *Route) Defaults() map[string]string {
	return maps.Clone(r.defaults)
}

// Methods returns the accepted method mask.
func (r *Route) Methods() Method {
	return r.methods
}

// SetMethods replaces the accepted method mask.
func (r *Route) SetMethods(m Method) error {
	if !m.Valid() {
		return util.NewInvalidArgumentError("methods", uint8(m), "method mask out of range")
	}
	r.methods = m
	return nil
}

// IsMethod reports whether the route accepts any of the requested methods.
func (r *Route) IsMethod(requested Method) bool {
	return r.methods&requested != 0
}

// String returns a short description used in logs.
func (r *Route) String() string {
	return r.methods.String() + " " + r.path
}

// compile returns the anchored regular expression of a dynamic route.
// Static routes return nil.
func (r *Route) compile() (*regexp.Regexp, error) {
	p := r.pattern
	if p == nil {
		return nil, nil
	}
	p.once.Do(func() {
		p.regex, p.err = compileCached("^(?:" + p.source + ")$")
		if p.err != nil {
			p.err = util.NewPatternError(r.path, p.source, p.err)
		}
	})
	return p.regex, p.err
}

// bind maps the submatch indexes loc of regex against path to parameter
// names. Groups named by the parser are looked up by name; otherwise
// groups are taken in order. A group that did not take part in the match
// binds nothing, so the parameter keeps its default.
func (r *Route) bind(regex *regexp.Regexp, path string, loc []int) map[string]string {
	values := make(map[string]string, len(r.params))
	for i, p := range r.params {
		g := regex.SubexpIndex(groupName(i))
		if g < 0 {
			g = i + 1
		}
		if 2*g+1 < len(loc) && loc[2*g] >= 0 {
			values[p.Name] = path[loc[2*g]:loc[2*g+1]]
		}
	}
	return values
}

// groupName is the capture group name for the placeholder at index i.
func groupName(i int) string {
	return "p" + strconv.Itoa(i)
}
