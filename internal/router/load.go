package router

import (
	"fmt"

	"github.com/vyrodovalexey/avaroute/internal/config"
	"github.com/vyrodovalexey/avaroute/internal/observability"
)

// BuildCollection registers the routes of cfg in a new collection, in file
// order. Placeholders without a pattern use cfg.DefaultPattern.
func BuildCollection(cfg *config.RouterConfig) (*Collection, error) {
	parser := NewParser(cfg.DefaultPattern)
	routes := NewCollection()

	for i, e := range cfg.Routes {
		methods, err := ParseMethods(e.Route.Methods)
		if err != nil {
			return nil, fmt.Errorf("route %s: %w", entryLabel(i, e), err)
		}

		route, err := parser.ParseWith(e.Route.Path, e.Route.Patterns)
		if err != nil {
			return nil, fmt.Errorf("route %s: %w", entryLabel(i, e), err)
		}
		if err := route.SetMethods(methods); err != nil {
			return nil, fmt.Errorf("route %s: %w", entryLabel(i, e), err)
		}
		route.SetDefaults(e.Route.Defaults)

		if err := routes.AddRoute(route, e.Key); err != nil {
			return nil, fmt.Errorf("route %s: %w", entryLabel(i, e), err)
		}
	}

	return routes, nil
}

func entryLabel(i int, e config.RouteEntry) string {
	if name, ok := e.Key.(string); ok && name != "" {
		return fmt.Sprintf("%q", name)
	}
	return fmt.Sprintf("#%d", i)
}

// Load replaces the route set with the routes of cfg. With EagerCompile
// every pattern is compiled before the swap. On error the current route
// set stays in place.
func (r *Router) Load(cfg *config.RouterConfig) error {
	if err := config.ValidateConfig(cfg); err != nil {
		return err
	}

	routes, err := BuildCollection(cfg)
	if err != nil {
		return err
	}

	next := &snapshot{routes: routes, matcher: NewMatcher(routes)}
	if cfg.EagerCompile {
		if err := next.matcher.Compile(); err != nil {
			return err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	r.install(next)
	r.logger.Info("routes loaded",
		observability.Int("routes", routes.Len()),
		observability.Bool("eager_compile", cfg.EagerCompile),
	)
	return nil
}
