package router

import (
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strings"

	"github.com/vyrodovalexey/avaroute/internal/util"
)

// DefaultPattern matches a single path segment.
const DefaultPattern = "[^/]+"

// Parser compiles path templates such as "/users/{id:\d+}/{slug}" into routes.
type Parser struct {
	defaultPattern string
}

// NewParser creates a parser that uses defaultPattern for placeholders
// without an inline pattern. An empty defaultPattern selects DefaultPattern.
func NewParser(defaultPattern string) *Parser {
	if defaultPattern == "" {
		defaultPattern = DefaultPattern
	}
	return &Parser{defaultPattern: defaultPattern}
}

// DefaultPattern returns the pattern used for placeholders without one.
func (p *Parser) DefaultPattern() string {
	return p.defaultPattern
}

// Parse compiles template into a route. A template without placeholders
// yields a static route.
func (p *Parser) Parse(template string) (*Route, error) {
	return p.ParseWith(template, nil)
}

// ParseWith compiles template like Parse. patterns supplies the pattern of
// placeholders written as "{name}"; an inline "{name:pattern}" always wins.
// Every key of patterns must name a placeholder of the template.
//
// Patterns are copied into the route expression verbatim and are not
// validated here; an invalid one is reported when the route is matched.
func (p *Parser) ParseWith(template string, patterns map[string]string) (*Route, error) {
	spans, err := braceSpans(template)
	if err != nil {
		return nil, err
	}

	route := NewRoute(template)
	used := make(map[string]bool, len(spans))

	var expr strings.Builder
	tokens := make([]token, 0, 2*len(spans)+1)
	end := 0

	for i, sp := range spans {
		if raw := template[end:sp.start]; raw != "" {
			expr.WriteString(regexp.QuoteMeta(raw))
			tokens = append(tokens, token{literal: raw, param: literalToken})
		}
		end = sp.end

		name, pattern, inline := strings.Cut(template[sp.start+1:sp.end-1], ":")
		if name == "" {
			return nil, util.NewParseError(template, sp.start, "empty parameter name")
		}
		if inline && pattern == "" {
			return nil, util.NewParseError(template, sp.start,
				fmt.Sprintf("empty pattern for parameter %q", name))
		}
		if used[name] {
			return nil, util.NewParseError(template, sp.start,
				fmt.Sprintf("duplicate parameter %q", name))
		}
		used[name] = true

		if !inline {
			pattern = p.defaultPattern
			if override, ok := patterns[name]; ok {
				if override == "" {
					return nil, util.NewInvalidArgumentError("patterns."+name, override, "empty pattern")
				}
				pattern = override
			}
		}

		fmt.Fprintf(&expr, "(?P<%s>%s)", groupName(i), pattern)
		route.Specify(name, pattern)
		tokens = append(tokens, token{param: i})
	}

	for _, name := range slices.Sorted(maps.Keys(patterns)) {
		if !used[name] {
			return nil, util.NewInvalidArgumentError("patterns."+name, patterns[name],
				"no such placeholder in "+template)
		}
	}

	if len(spans) == 0 {
		route.tokens = []token{{literal: template, param: literalToken}}
		return route, nil
	}

	if raw := template[end:]; raw != "" {
		expr.WriteString(regexp.QuoteMeta(raw))
		tokens = append(tokens, token{literal: raw, param: literalToken})
	}

	route.SetRegexp(expr.String())
	route.tokens = tokens

	return route, nil
}

// span is the [start, end) range of one placeholder, braces included.
type span struct {
	start int
	end   int
}

// braceSpans returns the outermost brace pairs of template. Nested braces
// belong to the enclosing placeholder so patterns may use {m,n} quantifiers.
func braceSpans(template string) ([]span, error) {
	var spans []span
	level, start := 0, 0

	for i := 0; i < len(template); i++ {
		switch template[i] {
		case '{':
			if level == 0 {
				start = i
			}
			level++
		case '}':
			level--
			if level < 0 {
				return nil, util.NewParseError(template, i, "unbalanced braces")
			}
			if level == 0 {
				spans = append(spans, span{start: start, end: i + 1})
			}
		}
	}

	if level != 0 {
		return nil, util.NewParseError(template, start, "unbalanced braces")
	}
	return spans, nil
}
