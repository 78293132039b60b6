package router

import "maps"

// Match is the result of a successful lookup: the matched route and the
// parameter values bound for this request.
type Match struct {
	route  *Route
	params map[string]string
}

// NewMatch binds route to its default values overlaid by values. Every
// declared parameter left without a value or a default binds to "".
func NewMatch(route *Route, values map[string]string) *Match {
	params := make(map[string]string, len(route.defaults)+len(route.params))
	maps.Copy(params, route.defaults)
	maps.Copy(params, values)
	for _, p := range route.params {
		if _, ok := params[p.Name]; !ok {
			params[p.Name] = ""
		}
	}

	return &Match{
		route:  route,
		params: params,
	}
}

// Route returns the matched route.
func (m *Match) Route() *Route {
	return m.route
}

// Parameters returns a copy of the bound parameter values.
func (m *Match) Parameters() map[string]string {
	return maps.Clone(m.params)
}

// Param returns a single parameter value.
func (m *Match) Param(name string) (string, bool) {
	v, ok := m.params[name]
	return v, ok
}
