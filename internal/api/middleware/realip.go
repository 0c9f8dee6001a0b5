package middleware

import (
	"fmt"
	"net/http"
	"net/netip"
	"strings"
)

// NewRealIP returns middleware that sets r.RemoteAddr to the client address
// carried in X-Forwarded-For or X-Real-IP. The headers are only honored when the
// TCP peer is one of trustedProxies (IP addresses or CIDR ranges); any other peer
// keeps its own address. With no trusted proxies the headers are ignored.
func NewRealIP(trustedProxies []string) (func(http.Handler) http.Handler, error) {
	trusted, err := parsePrefixes(trustedProxies)
	if err != nil {
		return nil, err
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if client, ok := forwardedClient(r, trusted); ok {
				r.RemoteAddr = client.String()
			}
			next.ServeHTTP(w, r)
		})
	}, nil
}

func parsePrefixes(values []string) ([]netip.Prefix, error) {
	prefixes := make([]netip.Prefix, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if strings.Contains(v, "/") {
			p, err := netip.ParsePrefix(v)
			if err != nil {
				return nil, fmt.Errorf("invalid trusted proxy %q: %w", v, err)
			}
			prefixes = append(prefixes, p.Masked())
			continue
		}
		addr, err := netip.ParseAddr(v)
		if err != nil {
			return nil, fmt.Errorf("invalid trusted proxy %q: %w", v, err)
		}
		addr = addr.Unmap()
		prefixes = append(prefixes, netip.PrefixFrom(addr, addr.BitLen()))
	}
	return prefixes, nil
}

func isTrusted(addr netip.Addr, trusted []netip.Prefix) bool {
	for _, p := range trusted {
		if p.Contains(addr) {
			return true
		}
	}
	return false
}

// forwardedClient walks X-Forwarded-For from the right and returns the first hop
// that is not a trusted proxy. X-Real-IP is used only when X-Forwarded-For is absent.
func forwardedClient(r *http.Request, trusted []netip.Prefix) (netip.Addr, bool) {
	if len(trusted) == 0 {
		return netip.Addr{}, false
	}
	peer, ok := parseAddr(r.RemoteAddr)
	if !ok || !isTrusted(peer, trusted) {
		return netip.Addr{}, false
	}

	if values := r.Header.Values("X-Forwarded-For"); len(values) > 0 {
		hops := strings.Split(strings.Join(values, ","), ",")
		var client netip.Addr
		for i := len(hops) - 1; i >= 0; i-- {
			addr, ok := parseAddr(hops[i])
			if !ok {
				break
			}
			client = addr
			if !isTrusted(addr, trusted) {
				break
			}
		}
		return client, client.IsValid()
	}

	if addr, ok := parseAddr(r.Header.Get("X-Real-IP")); ok {
		return addr, true
	}
	return netip.Addr{}, false
}

// parseAddr accepts a bare IP or an ip:port pair.
func parseAddr(s string) (netip.Addr, bool) {
	s = strings.TrimSpace(s)
	if ap, err := netip.ParseAddrPort(s); err == nil {
		return ap.Addr().Unmap(), true
	}
	addr, err := netip.ParseAddr(s)
	if err != nil {
		return netip.Addr{}, false
	}
	return addr.Unmap(), true
}
