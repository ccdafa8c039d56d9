package cache

import "net/url"

// RequestKey derives the deterministic cache key for a read endpoint:
// request path plus query parameters sorted by name, so `?a=1&b=2` and
// `?b=2&a=1` map to the same entry. Write paths that dirty an endpoint
// derive the same key to invalidate it.
func RequestKey(path string, query url.Values) string {
	// url.Values.Encode sorts by parameter name.
	return "http:" + path + "?" + query.Encode()
}

// WithIdentity appends the caller's identity to a cache key so cached
// content never leaks across users.
func WithIdentity(key, userID string) string {
	return key + "::u=" + userID
}
