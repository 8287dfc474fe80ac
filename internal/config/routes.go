package config

import (
	"fmt"
	"strconv"
	"strings"
)

// RouteSpec is one `location <prefix> <handler_name> { <kv>* }` statement,
// translated from the AST. Args preserves the child block's key/value
// pairs in source order for the registry's factory functions (spec §4.2).
type RouteSpec struct {
	Prefix      string
	HandlerName string
	Args        []string // flattened "<key> <value> <key> <value> ..."
}

// ServerSpec is the high-level result of translating a ConfigAst, per
// spec §4.1: "{listen_port, [route]}".
type ServerSpec struct {
	ListenPort int
	Routes     []RouteSpec
}

// ExtractRoutes walks ast per spec §4.1's "High-level route extraction"
// rules and returns the listen port and routes, or a semantic error
// (duplicate prefix, missing listen, trailing slash).
func ExtractRoutes(ast *AST) (*ServerSpec, error) {
	spec := &ServerSpec{ListenPort: -1}
	seenPrefixes := make(map[string]bool)

	for _, stmt := range ast.Statements {
		if len(stmt.Tokens) == 0 {
			continue
		}
		switch stmt.Tokens[0] {
		case "listen":
			if spec.ListenPort != -1 {
				continue // "the first top-level statement" wins
			}
			if len(stmt.Tokens) < 2 {
				return nil, &ParseError{Reason: "listen statement missing port"}
			}
			port, err := strconv.Atoi(stmt.Tokens[1])
			if err != nil {
				return nil, &ParseError{Reason: fmt.Sprintf("invalid listen port %q", stmt.Tokens[1])}
			}
			spec.ListenPort = port
		case "location":
			route, err := parseLocation(stmt)
			if err != nil {
				return nil, err
			}
			if seenPrefixes[route.Prefix] {
				return nil, &ParseError{Reason: fmt.Sprintf("duplicate location prefix %q", route.Prefix)}
			}
			seenPrefixes[route.Prefix] = true
			spec.Routes = append(spec.Routes, *route)
		}
	}

	if spec.ListenPort == -1 {
		return nil, &ParseError{Reason: "no listen statement found"}
	}
	return spec, nil
}

func parseLocation(stmt *Statement) (*RouteSpec, error) {
	if len(stmt.Tokens) < 3 {
		return nil, &ParseError{Reason: "location statement requires a prefix and handler name"}
	}
	prefix := stmt.Tokens[1]
	handlerName := stmt.Tokens[2]
	if strings.HasSuffix(prefix, "/") {
		return nil, &ParseError{Reason: fmt.Sprintf("location prefix %q must not end in '/'", prefix)}
	}
	var args []string
	if stmt.Child != nil {
		for _, kv := range stmt.Child.Statements {
			if len(kv.Tokens) < 2 {
				continue // "extra tokens are ignored"; a lone token has no value
			}
			args = append(args, kv.Tokens[0], kv.Tokens[1])
		}
	}
	return &RouteSpec{Prefix: prefix, HandlerName: handlerName, Args: args}, nil
}

// Arg looks up the value for key in a RouteSpec's flattened Args, mirroring
// how the original config's key/value block is consumed by handler
// factories.
func (r *RouteSpec) Arg(key string) (string, bool) {
	for i := 0; i+1 < len(r.Args); i += 2 {
		if r.Args[i] == key {
			return r.Args[i+1], true
		}
	}
	return "", false
}
