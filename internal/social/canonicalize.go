package social

import (
	"net/url"
	"regexp"
	"strings"
)

var validHandle = regexp.MustCompile(`^[A-Za-z0-9_.]+$`)

// Canonicalize normalizes a social profile URL for use as a dedup/lookup
// key: forces https, lowercases the host, strips query/fragment and a
// trailing slash, and drops a leading "www." except for LinkedIn, whose
// canonical profile URLs conventionally carry it.
func Canonicalize(platform, raw string) string {
	u := strings.TrimSpace(raw)
	if u == "" {
		return ""
	}

	if !strings.Contains(u, "://") {
		u = "https://" + u
	} else if strings.HasPrefix(strings.ToLower(u), "http://") {
		u = "https://" + u[len("http://"):]
	}

	if platform == PlatformTwitter {
		u = retargetTwitterHost(u)
	}

	parsed, err := url.Parse(u)
	if err != nil || parsed.Host == "" {
		return ""
	}

	host := strings.ToLower(parsed.Host)
	if strings.HasPrefix(host, "www.") && platform != PlatformLinkedIn {
		host = strings.TrimPrefix(host, "www.")
	}

	path := strings.TrimRight(parsed.Path, "/")

	out := "https://" + host + path
	if out == "https://"+host {
		out += "/"
	}

	return strings.ToLower(out)
}

// retargetTwitterHost folds x.com (and www variants of either host)
// onto twitter.com so Twitter and X links dedup to the same key.
func retargetTwitterHost(u string) string {
	lower := strings.ToLower(u)
	for _, host := range []string{"https://www.x.com/", "https://x.com/", "https://www.twitter.com/"} {
		if strings.HasPrefix(lower, host) {
			return "https://twitter.com/" + u[len(host):]
		}
	}

	return u
}

// ResolveHandle converts a bare "@handle" into a canonical profile URL
// for platforms that use handle-style usernames. Returns "" if raw
// isn't a plausible handle.
func ResolveHandle(platform, raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "@") {
		return ""
	}

	handle := strings.TrimPrefix(raw, "@")
	if handle == "" || !validHandle.MatchString(handle) {
		return ""
	}

	switch platform {
	case PlatformTwitter:
		return "https://twitter.com/" + handle
	case PlatformTikTok:
		return "https://www.tiktok.com/@" + handle
	case PlatformInstagram:
		return "https://instagram.com/" + handle
	default:
		return ""
	}
}

// UsernameFromURL extracts the first path segment of a canonicalized
// profile URL, which is the username/handle for every platform this
// package supports.
func UsernameFromURL(canonicalURL string) string {
	parsed, err := url.Parse(canonicalURL)
	if err != nil {
		return ""
	}

	segment := strings.Trim(parsed.Path, "/")
	if idx := strings.Index(segment, "/"); idx >= 0 {
		segment = segment[:idx]
	}

	return segment
}
