// Package main is the entry point for routematch, a command line tool that
// resolves requests against a routes file.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/vyrodovalexey/avaroute/internal/config"
	"github.com/vyrodovalexey/avaroute/internal/observability"
	"github.com/vyrodovalexey/avaroute/internal/router"
)

// Version information (set at build time).
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// Exit codes.
const (
	exitOK        = 0
	exitFailure   = 1
	exitUsage     = 2
	exitLookupErr = 3
)

// cliFlags holds command line flags.
type cliFlags struct {
	configPath  string
	logLevel    string
	logFormat   string
	method      string
	metricsAddr string
	watch       bool
	showVersion bool
	requests    []string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns its exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	flags, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	if flags.showVersion {
		printVersion(stdout)
		return exitOK
	}

	cfg, err := config.LoadConfig(flags.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "failed to load configuration: %v\n", err)
		return exitFailure
	}

	logger, err := initLogger(flags, cfg, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "failed to initialize logger: %v\n", err)
		return exitFailure
	}
	defer func() { _ = logger.Sync() }()

	tracer, err := initTracer(ctx, cfg)
	if err != nil {
		logger.Error("failed to initialize tracer", observability.Error(err))
		return exitFailure
	}
	defer shutdownTracer(tracer, logger)

	metrics := observability.NewMetrics("routematch")
	metrics.SetBuildInfo(version, gitCommit, buildTime)

	if flags.metricsAddr != "" {
		server, err := startMetricsServer(flags.metricsAddr, metrics, logger)
		if err != nil {
			logger.Error("failed to start metrics server", observability.Error(err))
			return exitFailure
		}
		defer stopMetricsServer(server, logger)
	}

	r := router.New(
		router.WithLogger(logger),
		router.WithTracer(tracer.Tracer()),
		router.WithDefaultPattern(cfg.DefaultPattern),
	)
	if err := r.Load(cfg); err != nil {
		logger.Error("failed to load routes", observability.Error(err))
		return exitFailure
	}

	logger.Info("routematch started",
		observability.String("version", version),
		observability.String("config", flags.configPath),
		observability.Bool("watch", flags.watch),
	)

	if flags.watch {
		watcher := startConfigWatcher(ctx, r, flags.configPath, metrics, logger)
		if watcher != nil {
			defer func() { _ = watcher.Stop() }()
		}
	}

	m := &matcher{
		router:        r,
		logger:        logger,
		metrics:       metrics,
		out:           json.NewEncoder(stdout),
		defaultMethod: flags.method,
	}

	if len(flags.requests) > 0 {
		return m.matchArgs(ctx, flags.requests)
	}
	return m.matchLines(ctx, stdin)
}

// parseFlags parses command line flags.
func parseFlags(args []string, stderr io.Writer) (cliFlags, error) {
	fs := flag.NewFlagSet("routematch", flag.ContinueOnError)
	fs.SetOutput(stderr)

	configPath := fs.String("config", getEnvOrDefault("ROUTEMATCH_CONFIG", "routes.yaml"),
		"Path to routes file")
	logLevel := fs.String("log-level", getEnvOrDefault("ROUTEMATCH_LOG_LEVEL", ""),
		"Log level (debug, info, warn, error), overrides the routes file")
	logFormat := fs.String("log-format", getEnvOrDefault("ROUTEMATCH_LOG_FORMAT", ""),
		"Log format (json, console), overrides the routes file")
	method := fs.String("method", "GET", "Method for requests given without one")
	metricsAddr := fs.String("metrics-addr", getEnvOrDefault("ROUTEMATCH_METRICS_ADDR", ""),
		"Serve Prometheus metrics on this address, e.g. :9090")
	watch := fs.Bool("watch", getEnvBool("ROUTEMATCH_WATCH", false), "Reload routes when the file changes")
	showVersion := fs.Bool("version", false, "Show version information")

	if err := fs.Parse(args); err != nil {
		return cliFlags{}, err
	}

	return cliFlags{
		configPath:  *configPath,
		logLevel:    *logLevel,
		logFormat:   *logFormat,
		method:      *method,
		metricsAddr: *metricsAddr,
		watch:       *watch,
		showVersion: *showVersion,
		requests:    fs.Args(),
	}, nil
}

// printVersion prints version information.
func printVersion(w io.Writer) {
	fmt.Fprintf(w, "routematch version %s\n", version)
	fmt.Fprintf(w, "  Build time: %s\n", buildTime)
	fmt.Fprintf(w, "  Git commit: %s\n", gitCommit)
}

// initLogger creates the logger. Flags win over the routes file.
func initLogger(flags cliFlags, cfg *config.RouterConfig, stderr io.Writer) (observability.Logger, error) {
	logCfg := observability.DefaultLogConfig()
	logCfg.Level = cfg.Logging.Level
	logCfg.Format = cfg.Logging.Format
	logCfg.Writer = stderr

	if flags.logLevel != "" {
		logCfg.Level = flags.logLevel
	}
	if flags.logFormat != "" {
		logCfg.Format = flags.logFormat
	}

	return observability.NewLogger(logCfg)
}

// initTracer creates the tracer described by the routes file.
func initTracer(ctx context.Context, cfg *config.RouterConfig) (*observability.Tracer, error) {
	tracerCfg := observability.TracerConfig{
		Enabled:      cfg.Tracing.Enabled,
		ServiceName:  "routematch",
		OTLPEndpoint: cfg.Tracing.OTLPEndpoint,
		SamplingRate: cfg.Tracing.SamplingRate,
	}
	if cfg.Tracing.ServiceName != "" {
		tracerCfg.ServiceName = cfg.Tracing.ServiceName
	}

	return observability.NewTracer(ctx, tracerCfg)
}

func shutdownTracer(tracer *observability.Tracer, logger observability.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := tracer.Shutdown(ctx); err != nil {
		logger.Error("failed to shutdown tracer", observability.Error(err))
	}
}

// startConfigWatcher reloads the router whenever the routes file changes.
// Failures are logged and the current routes stay active.
func startConfigWatcher(
	ctx context.Context,
	r *router.Router,
	configPath string,
	metrics *observability.Metrics,
	logger observability.Logger,
) *config.Watcher {
	watcher, err := config.NewWatcher(configPath, func(newCfg *config.RouterConfig) {
		logger.Info("routes file changed, reloading")
		err := r.Load(newCfg)
		metrics.RecordReload(err)
		if err != nil {
			logger.Error("failed to reload routes", observability.Error(err))
		}
	},
		config.WithLogger(logger),
		config.WithErrorCallback(func(err error) {
			metrics.RecordReload(err)
		}),
	)
	if err != nil {
		logger.Warn("failed to create config watcher", observability.Error(err))
		return nil
	}

	if err := watcher.Start(ctx); err != nil {
		logger.Warn("failed to start config watcher", observability.Error(err))
		_ = watcher.Stop()
		return nil
	}

	return watcher
}

// startMetricsServer serves the metrics endpoint on addr.
func startMetricsServer(addr string, metrics *observability.Metrics, logger observability.Logger) (*http.Server, error) {
	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, err
	}

	mux := http.NewServeMux()
	mux.Handle("/metrics", metrics.Handler())

	server := &http.Server{
		Handler:           mux,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      10 * time.Second,
	}

	logger.Info("starting metrics server", observability.String("address", listener.Addr().String()))

	go func() {
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server error", observability.Error(err))
		}
	}()

	return server, nil
}

func stopMetricsServer(server *http.Server, logger observability.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("failed to stop metrics server", observability.Error(err))
	}
}

// result is one line of output.
type result struct {
	RequestID string            `json:"requestId"`
	Method    string            `json:"method"`
	Path      string            `json:"path"`
	Matched   bool              `json:"matched"`
	Route     string            `json:"route,omitempty"`
	Methods   string            `json:"methods,omitempty"`
	Params    map[string]string `json:"params,omitempty"`
	Error     string            `json:"error,omitempty"`
}

// matcher resolves requests and writes one result per request.
type matcher struct {
	router        *router.Router
	logger        observability.Logger
	metrics       *observability.Metrics
	out           *json.Encoder
	defaultMethod string
}

// matchArgs resolves each argument as a request path.
func (m *matcher) matchArgs(ctx context.Context, paths []string) int {
	code := exitOK
	for _, path := range paths {
		if ok := m.lookup(ctx, m.defaultMethod, path); !ok {
			code = exitLookupErr
		}
	}
	return code
}

// matchLines resolves one request per input line, written as "PATH" or
// "METHOD PATH". Blank lines and lines starting with '#' are skipped.
func (m *matcher) matchLines(ctx context.Context, in io.Reader) int {
	code := exitOK
	scanner := bufio.NewScanner(in)

	for scanner.Scan() {
		if ctx.Err() != nil {
			break
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		// "METHOD path" or a bare path; the path keeps any inner spaces
		method, path := m.defaultMethod, line
		if verb, rest, ok := strings.Cut(line, " "); ok && !strings.HasPrefix(line, "/") {
			method, path = verb, strings.TrimSpace(rest)
		}

		if ok := m.lookup(ctx, method, path); !ok {
			code = exitLookupErr
		}
	}

	if err := scanner.Err(); err != nil {
		m.logger.Error("failed to read requests", observability.Error(err))
		return exitFailure
	}
	return code
}

// lookup resolves a single request. It reports false when the request
// could not be resolved because of an error.
func (m *matcher) lookup(ctx context.Context, method, path string) bool {
	requestID := uuid.NewString()
	ctx = observability.ContextWithRequestID(ctx, requestID)
	logger := m.logger.WithContext(ctx)

	res := result{
		RequestID: requestID,
		Method:    strings.ToUpper(method),
		Path:      path,
	}

	start := time.Now()
	mask, err := router.ParseMethod(method)
	if err == nil {
		var match *router.Match
		match, err = m.router.MatchContext(ctx, path, mask)
		if match != nil {
			res.Matched = true
			res.Route = match.Route().Path()
			res.Methods = match.Route().Methods().String()
			res.Params = match.Parameters()
		}
	}

	outcome := observability.ResultMissed
	switch {
	case err != nil:
		outcome = observability.ResultError
	case res.Matched:
		outcome = observability.ResultMatched
	}
	// label by mask so unknown method names cannot grow the series
	m.metrics.RecordLookup(mask.String(), outcome, time.Since(start))

	if err != nil {
		res.Error = err.Error()
		logger.Warn("lookup failed",
			observability.String("method", res.Method),
			observability.String("path", path),
			observability.Error(err),
		)
	} else {
		logger.Debug("lookup",
			observability.String("method", res.Method),
			observability.String("path", path),
			observability.Bool("matched", res.Matched),
		)
	}

	if encErr := m.out.Encode(res); encErr != nil {
		logger.Error("failed to write result", observability.Error(encErr))
		return false
	}
	return err == nil
}
