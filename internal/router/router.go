package router

import (
	"context"
	"sync"
	"sync/atomic"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/vyrodovalexey/avaroute/internal/observability"
	"github.com/vyrodovalexey/avaroute/internal/util"
)

// tracerName is the instrumentation scope of match spans.
const tracerName = "github.com/vyrodovalexey/avaroute/internal/router"

// snapshot is an immutable route set and the matcher built from it.
type snapshot struct {
	routes  *Collection
	matcher *Matcher
}

// Router is the registration and lookup entry point.
//
// Lookups read the current snapshot without locking. Every registration
// builds a new snapshot and swaps it in, so a lookup never observes a
// partially updated route set.
type Router struct {
	mu      sync.Mutex
	current atomic.Pointer[snapshot]
	parser  *Parser
	logger  observability.Logger
	tracer  trace.Tracer
}

// Option configures a Router.
type Option func(*Router)

// WithLogger sets the logger.
func WithLogger(logger observability.Logger) Option {
	return func(r *Router) {
		r.logger = logger
	}
}

// WithTracer sets the tracer used by MatchContext.
func WithTracer(tracer trace.Tracer) Option {
	return func(r *Router) {
		r.tracer = tracer
	}
}

// WithDefaultPattern sets the pattern of placeholders without one.
func WithDefaultPattern(pattern string) Option {
	return func(r *Router) {
		r.parser = NewParser(pattern)
	}
}

// New creates an empty router.
func New(opts ...Option) *Router {
	r := &Router{
		parser: NewParser(""),
		logger: observability.NopLogger(),
		tracer: noop.NewTracerProvider().Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(r)
	}
	r.publish(NewCollection())
	return r
}

// RouteOption configures a route registered with Add.
type RouteOption func(*routeOptions)

type routeOptions struct {
	name     string
	methods  Method
	defaults map[string]string
	patterns map[string]string
}

// WithName registers the route under name.
func WithName(name string) RouteOption {
	return func(o *routeOptions) {
		o.name = name
	}
}

// WithMethods restricts the route to the methods in mask.
func WithMethods(mask Method) RouteOption {
	return func(o *routeOptions) {
		o.methods = mask
	}
}

// WithDefaults adds default parameter values.
func WithDefaults(values map[string]string) RouteOption {
	return func(o *routeOptions) {
		for k, v := range values {
			o.defaults[k] = v
		}
	}
}

// WithDefault adds one default parameter value.
func WithDefault(name, value string) RouteOption {
	return func(o *routeOptions) {
		o.defaults[name] = value
	}
}

// WithPattern sets the pattern of the placeholder "{name}".
func WithPattern(name, pattern string) RouteOption {
	return func(o *routeOptions) {
		o.patterns[name] = pattern
	}
}

// Add parses template, applies opts and registers the resulting route.
func (r *Router) Add(template string, opts ...RouteOption) (*Route, error) {
	o := routeOptions{
		methods:  MethodAll,
		defaults: make(map[string]string),
		patterns: make(map[string]string),
	}
	for _, opt := range opts {
		opt(&o)
	}

	route, err := r.build(r.parser, template, o)
	if err != nil {
		return nil, err
	}

	if err := r.AddRoute(route, o.name); err != nil {
		return nil, err
	}
	return route, nil
}

func (r *Router) build(parser *Parser, template string, o routeOptions) (*Route, error) {
	route, err := parser.ParseWith(template, o.patterns)
	if err != nil {
		return nil, err
	}
	if err := route.SetMethods(o.methods); err != nil {
		return nil, err
	}
	route.SetDefaults(o.defaults)
	return route, nil
}

// AddRoute registers an already built route under key, following the
// key rules of Collection.AddRoute.
func (r *Router) AddRoute(route *Route, key any) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.current.Load().routes.clone()
	if err := next.AddRoute(route, key); err != nil {
		return err
	}
	r.publish(next)

	r.logger.Debug("route registered",
		observability.Stringer("route", route),
		observability.Any("key", key),
		observability.Bool("static", route.IsStatic()),
	)
	return nil
}

// Merge registers every route of other after the current ones.
func (r *Router) Merge(other *Collection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := r.current.Load().routes.clone()
	next.Merge(other)
	r.publish(next)
}

// Replace swaps in routes as the complete route set.
func (r *Router) Replace(routes *Collection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := NewCollection()
	next.Merge(routes)
	r.publish(next)
}

// publish installs routes as the current snapshot. Callers hold r.mu,
// except New.
func (r *Router) publish(routes *Collection) {
	r.install(&snapshot{routes: routes, matcher: NewMatcher(routes)})
}

func (r *Router) install(s *snapshot) {
	r.current.Store(s)

	metrics := getRouterMetrics()
	metrics.routes.WithLabelValues(partitionStatic).Set(float64(s.matcher.StaticCount()))
	metrics.routes.WithLabelValues(partitionDynamic).Set(float64(s.matcher.DynamicCount()))

	r.logger.Debug("route set published",
		observability.Int("routes", s.routes.Len()),
		observability.Int("static", s.matcher.StaticCount()),
		observability.Int("dynamic", s.matcher.DynamicCount()),
	)
}

// Route returns the route registered under name.
func (r *Router) Route(name string) (*Route, error) {
	return r.current.Load().routes.Route(name)
}

// Routes returns all routes in registration order.
func (r *Router) Routes() []*Route {
	return r.current.Load().routes.Routes()
}

// Collection returns a copy of the current route set.
func (r *Router) Collection() *Collection {
	return r.current.Load().routes.clone()
}

// Match finds the route for path and method. A nil Match with a nil error
// means no route matched.
func (r *Router) Match(path string, method Method) (*Match, error) {
	return r.current.Load().matcher.Match(path, method)
}

// MatchString is Match for an HTTP method name. Method names outside the
// supported set are rejected with an InvalidArgumentError.
func (r *Router) MatchString(method, path string) (*Match, error) {
	m, err := ParseMethod(method)
	if err != nil {
		return nil, err
	}
	return r.Match(path, m)
}

// MatchContext is Match wrapped in a "router.match" span.
func (r *Router) MatchContext(ctx context.Context, path string, method Method) (*Match, error) {
	ctx, span := r.tracer.Start(ctx, "router.match",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("http.request.method", method.String()),
			attribute.String("url.path", path),
		),
	)
	defer span.End()

	match, err := r.Match(path, method)
	switch {
	case err != nil:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		r.logger.WithContext(ctx).Error("route pattern failed",
			observability.String("path", path),
			observability.Stringer("method", method),
			observability.Error(err),
		)
	case match == nil:
		span.SetAttributes(attribute.Bool("router.matched", false))
	default:
		span.SetAttributes(
			attribute.Bool("router.matched", true),
			attribute.String("router.route", match.Route().Path()),
			attribute.Bool("router.static", match.Route().IsStatic()),
		)
	}
	return match, err
}

// Compile compiles every dynamic route pattern of the current route set.
func (r *Router) Compile() error {
	return r.current.Load().matcher.Compile()
}

// Generate builds the path of the route registered under name.
func (r *Router) Generate(name string, params map[string]string) (string, error) {
	return NewGenerator(r.current.Load().routes).Generate(name, params)
}

// Len returns the number of registered routes.
func (r *Router) Len() int {
	return r.current.Load().routes.Len()
}

// IsRegistrationError reports whether err rejects a route at registration.
func IsRegistrationError(err error) bool {
	return util.IsRegistrationError(err)
}
