// Package router matches request paths and methods against registered
// route templates.
//
// A template is a path with optional placeholders such as
// "/users/{id:\d+}/{slug}". Templates without placeholders are static and
// are resolved by a map lookup. Templates with placeholders are compiled
// into regular expressions on first use and scanned in registration order.
//
// # Features
//
//   - Inline placeholder patterns and per-route pattern overrides
//   - Method filtering with a GET/POST/PUT/DELETE bitmask
//   - Named and anonymous routes with default parameter values
//   - Static routes take precedence over dynamic ones
//   - Lock-free lookups over an atomically swapped route set
//   - Path generation from named routes
//   - Loading route sets from configuration
//
// # Usage
//
//	r := router.New()
//	_, err := r.Add("/users/{id:\d+}",
//	    router.WithName("user.show"),
//	    router.WithMethods(router.MethodGet),
//	    router.WithDefault("format", "json"),
//	)
//	if err != nil {
//	    return err
//	}
//
//	m, err := r.Match("/users/42", router.MethodGet)
//	if err != nil {
//	    return err
//	}
//	if m != nil {
//	    id, _ := m.Param("id")
//	}
package router
