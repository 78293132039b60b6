package router

import (
	"errors"
)

// Matcher resolves request paths against an immutable route set.
// Static routes are indexed by path; dynamic routes are scanned in
// registration order and the first one that matches wins.
type Matcher struct {
	static  map[string][]*Route
	dynamic []*Route
}

// NewMatcher partitions the routes of c. Each route is classified once,
// by IsStatic, into exactly one partition.
func NewMatcher(c *Collection) *Matcher {
	m := &Matcher{
		static:  make(map[string][]*Route),
		dynamic: make([]*Route, 0),
	}
	if c == nil {
		return m
	}

	for _, e := range c.entries {
		if e.route.IsStatic() {
			m.static[e.route.path] = append(m.static[e.route.path], e.route)
		} else {
			m.dynamic = append(m.dynamic, e.route)
		}
	}
	return m
}

// Match finds the route for path and method. It returns a nil Match and a
// nil error when no route matches. An error is returned only when a route
// pattern cannot be compiled.
//
// A path registered as a static route never falls through to the dynamic
// routes, even if none of its static routes accepts method.
func (m *Matcher) Match(path string, method Method) (*Match, error) {
	metrics := getRouterMetrics()

	if routes, ok := m.static[path]; ok {
		for _, route := range routes {
			if route.IsMethod(method) {
				metrics.matches.WithLabelValues(partitionStatic).Inc()
				return NewMatch(route, nil), nil
			}
		}
		metrics.misses.Inc()
		return nil, nil
	}

	for _, route := range m.dynamic {
		if !route.IsMethod(method) {
			continue
		}

		regex, err := route.compile()
		if err != nil {
			metrics.matchErrors.Inc()
			return nil, err
		}

		loc := regex.FindStringSubmatchIndex(path)
		if loc == nil {
			continue
		}

		metrics.matches.WithLabelValues(partitionDynamic).Inc()
		return NewMatch(route, route.bind(regex, path, loc)), nil
	}

	metrics.misses.Inc()
	return nil, nil
}

// Compile compiles every dynamic route pattern and returns all failures.
func (m *Matcher) Compile() error {
	var errs []error
	for _, route := range m.dynamic {
		if _, err := route.compile(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// StaticCount returns the number of static routes.
func (m *Matcher) StaticCount() int {
	n := 0
	for _, routes := range m.static {
		n += len(routes)
	}
	return n
}

// DynamicCount returns the number of dynamic routes.
func (m *Matcher) DynamicCount() int {
	return len(m.dynamic)
}
