package router

import (
	"fmt"
	"maps"

	"github.com/vyrodovalexey/avaroute/internal/util"
)

// entry is a registered route and the name it was registered under.
// Anonymous routes have an empty name.
type entry struct {
	name  string
	route *Route
}

// Collection is an ordered registry of routes. Registration order is
// preserved and decides which route wins when several could match.
type Collection struct {
	entries []entry
	named   map[string]int
}

// NewCollection creates an empty collection.
func NewCollection() *Collection {
	return &Collection{
		entries: make([]entry, 0),
		named:   make(map[string]int),
	}
}

// AddRoute registers route under key. A nil key, an integer key or an empty
// string appends an anonymous route. A non-empty string names the route;
// registering a name again replaces the earlier route in its position.
// Any other key type is rejected.
func (c *Collection) AddRoute(route *Route, key any) error {
	if route == nil {
		return util.NewInvalidArgumentError("route", nil, "route must not be nil")
	}

	switch k := key.(type) {
	case nil:
		c.add("", route)
	case string:
		c.add(k, route)
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		c.add("", route)
	default:
		return util.NewInvalidArgumentError("key", key,
			fmt.Sprintf("route key must be a string, an integer or nil, got %T", key))
	}
	return nil
}

// Add appends an anonymous route.
func (c *Collection) Add(route *Route) error {
	return c.AddRoute(route, nil)
}

// AddNamed registers route under name.
func (c *Collection) AddNamed(name string, route *Route) error {
	return c.AddRoute(route, name)
}

func (c *Collection) add(name string, route *Route) {
	if name != "" {
		if c.named == nil {
			c.named = make(map[string]int)
		}
		if i, ok := c.named[name]; ok {
			c.entries[i].route = route
			return
		}
		c.named[name] = len(c.entries)
	}
	c.entries = append(c.entries, entry{name: name, route: route})
}

// Route returns the route registered under name.
func (c *Collection) Route(name string) (*Route, error) {
	i, ok := c.named[name]
	if !ok {
		return nil, util.NewRouteNotFoundError(name)
	}
	return c.entries[i].route, nil
}

// Merge appends every route of other, keeping other's order and names.
// Names already present are overwritten.
func (c *Collection) Merge(other *Collection) {
	if other == nil {
		return
	}
	for _, e := range other.entries {
		c.add(e.name, e.route)
	}
}

// Routes returns all routes in registration order.
func (c *Collection) Routes() []*Route {
	routes := make([]*Route, len(c.entries))
	for i, e := range c.entries {
		routes[i] = e.route
	}
	return routes
}

// Each calls fn for every route in registration order. name is empty for
// anonymous routes.
func (c *Collection) Each(fn func(name string, route *Route)) {
	for _, e := range c.entries {
		fn(e.name, e.route)
	}
}

// Len returns the number of registered routes.
func (c *Collection) Len() int {
	return len(c.entries)
}

// clone returns a shallow copy whose entries can be extended independently.
func (c *Collection) clone() *Collection {
	out := &Collection{
		entries: make([]entry, len(c.entries), len(c.entries)+1),
		named:   maps.Clone(c.named),
	}
	copy(out.entries, c.entries)
	return out
}
