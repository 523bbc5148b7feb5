// Package routes provides route group registration for net/http multiplexers.
package routes

import (
	"fmt"
	"net/http"
	"strings"
)

// Route represents a single HTTP endpoint.
type Route struct {
	Method  string
	Pattern string
	Handler http.HandlerFunc
}

// Group represents a collection of routes under a common URL prefix.
type Group struct {
	Prefix string
	Routes []Route
}

// Register mounts all group routes onto the multiplexer under the base path.
func Register(mux *http.ServeMux, base string, groups ...Group) {
	for _, g := range groups {
		for _, r := range g.Routes {
			pattern := fmt.Sprintf("%s %s", r.Method, join(base, g.Prefix, r.Pattern))
			mux.HandleFunc(pattern, r.Handler)
		}
	}
}

func join(parts ...string) string {
	var b strings.Builder
	for _, p := range parts {
		p = strings.Trim(p, "/")
		if p == "" {
			continue
		}
		b.WriteByte('/')
		b.WriteString(p)
	}
	if b.Len() == 0 {
		return "/"
	}
	return b.String()
}
