// Package gateway fronts the two demo services behind one origin: /audilog/*
// goes to the inventory ledger, everything else to the storefront.
package gateway

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"
	"strings"
)

// NewReverseProxy proxies to target, removing stripPrefix from the incoming
// path first so upstreams see their own route space.
func NewReverseProxy(target, stripPrefix string) (http.Handler, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid proxy target %q", target)
	}

	proxy := httputil.NewSingleHostReverseProxy(u)

	base := proxy.Director
	proxy.Director = func(r *http.Request) {
		if stripPrefix != "" {
			p := strings.TrimPrefix(r.URL.Path, stripPrefix)
			if !strings.HasPrefix(p, "/") {
				p = "/" + p
			}
			r.URL.Path = p
		}
		base(r)
	}

	return proxy, nil
}
