package urlbuilder

import (
	"net/url"
	"strings"
)

// pathBuilder assembles an escaped URL path. The base path and templates
// resolve "." and ".." segments; entity values always become one literal
// segment.
type pathBuilder struct {
	segments []string
	trailing bool
}

// addEscaped appends an already escaped path, such as url.URL.EscapedPath.
func (p *pathBuilder) addEscaped(s string) {
	p.add(s, func(seg string) string { return seg })
}

// addTemplate appends an unescaped path template.
func (p *pathBuilder) addTemplate(s string) {
	p.add(s, url.PathEscape)
}

func (p *pathBuilder) add(s string, escape func(string) string) {
	if s == "" {
		return
	}
	for _, seg := range strings.Split(s, "/") {
		switch seg {
		case "", ".":
		case "..":
			if n := len(p.segments); n > 0 {
				p.segments = p.segments[:n-1]
			}
		default:
			p.segments = append(p.segments, escape(seg))
		}
	}
	p.trailing = strings.HasSuffix(s, "/")
}

// addValue appends v as a single segment. Slashes are escaped and dot
// segments stay literal. Empty values add nothing.
func (p *pathBuilder) addValue(v string) {
	if v == "" {
		return
	}
	switch v {
	case ".":
		v = "%2E"
	case "..":
		v = "%2E%2E"
	default:
		v = url.PathEscape(v)
	}
	p.segments = append(p.segments, v)
	p.trailing = false
}

// String returns the rooted, escaped path. A trailing slash on the last
// structural part is kept.
func (p *pathBuilder) String() string {
	if len(p.segments) == 0 {
		return "/"
	}
	out := "/" + strings.Join(p.segments, "/")
	if p.trailing {
		out += "/"
	}
	return out
}

// setPath sets both forms of u's path from an escaped path.
func setPath(u *url.URL, escaped string) {
	u.RawPath = escaped
	if unescaped, err := url.PathUnescape(escaped); err == nil {
		u.Path = unescaped
		return
	}
	u.Path = escaped
	u.RawPath = ""
}
