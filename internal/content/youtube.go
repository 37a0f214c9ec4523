package content

import (
	"net/url"
	"regexp"
	"strings"
)

var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// Markers are checked in this order regardless of where they sit in the
// path. A URL carrying more than one marker resolves to the first marker in
// this list, not the first in the path.
var pathMarkers = []string{"embed", "shorts", "live"}

// VideoID maps an arbitrary URL string to a canonical 11-character YouTube
// video ID. It never errors; anything unrecognizable is simply no match.
func VideoID(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)

	if raw == "" {
		return "", false
	}

	// already an ID
	if videoIDPattern.MatchString(raw) {
		return raw, true
	}

	u, err := url.Parse(raw)

	if err != nil {
		return "", false
	}

	host := strings.ToLower(u.Host)
	host = strings.TrimPrefix(host, "www.")

	switch {
	case host == "youtu.be":
		return firstSegment(u.Path)

	case host == "youtube.com" || strings.HasSuffix(host, ".youtube.com"):
		if v := u.Query().Get("v"); v != "" {
			return checkID(v)
		}

		return idAfterMarker(u.Path)
	}

	return "", false
}

func firstSegment(path string) (string, bool) {
	for _, seg := range strings.Split(path, "/") {
		if seg != "" {
			return checkID(seg)
		}
	}

	return "", false
}

func idAfterMarker(path string) (string, bool) {
	segs := splitPath(path)

	for _, marker := range pathMarkers {
		for i, seg := range segs {
			if seg == marker && i+1 < len(segs) {
				return checkID(segs[i+1])
			}
		}
	}

	return "", false
}

func splitPath(path string) []string {
	parts := strings.Split(path, "/")
	out := parts[:0]

	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}

	return out
}

func checkID(candidate string) (string, bool) {
	if videoIDPattern.MatchString(candidate) {
		return candidate, true
	}

	return "", false
}
