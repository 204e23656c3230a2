package capabilities

import "strings"

// Policy decides whether a requested capability is covered by a grant.
// This is a pure domain service.
type Policy struct{}

// NewPolicy creates a new domain policy.
func NewPolicy() *Policy {
	return &Policy{}
}

// IsGranted checks if a specific capability (request) is covered by any of the granted capabilities.
func (p *Policy) IsGranted(request Capability, granted []Capability) bool {
	for _, grant := range granted {
		if grant.Kind != request.Kind {
			continue
		}
		if grant.Kind == KindNetwork {
			if matchHost(request.Pattern, grant.Pattern) {
				return true
			}
			continue
		}
		if matchPattern(request.Pattern, grant.Pattern) {
			return true
		}
	}
	return false
}

// matchPattern performs simple glob-like pattern matching.
// Supports "*" wildcard at the end of the pattern.
func matchPattern(request, pattern string) bool {
	if pattern == "*" {
		return true // Universal wildcard
	}
	if strings.HasSuffix(pattern, "*") {
		prefix := strings.TrimSuffix(pattern, "*")
		return strings.HasPrefix(request, prefix)
	}
	return request == pattern
}

// matchHost matches a host name against a grant. "*.example.com" covers
// example.com and every subdomain of it. Host names compare case-insensitively.
func matchHost(host, pattern string) bool {
	host = strings.ToLower(host)
	pattern = strings.ToLower(pattern)
	if pattern == "*" {
		return true
	}
	if domain, ok := strings.CutPrefix(pattern, "*."); ok {
		return host == domain || strings.HasSuffix(host, "."+domain)
	}
	return host == pattern
}
