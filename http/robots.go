package http

import (
	"bufio"
	"io"
	"strings"
)

// Robots holds the subset of robots.txt the scraper honors: sitemap
// locations and Disallow rules for the wildcard user agent.
type Robots struct {
	Sitemaps  []string
	Disallows []string
}

// ParseRobots reads a robots.txt body. Only the "*" user-agent group's
// Disallow rules are collected; Sitemap directives apply globally.
func ParseRobots(r io.Reader) (*Robots, error) {
	robots := &Robots{}
	inWildcardGroup := false

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if i := strings.Index(line, "#"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if line == "" {
			continue
		}

		key, value, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)

		switch key {
		case "sitemap":
			if value != "" {
				robots.Sitemaps = append(robots.Sitemaps, value)
			}
		case "user-agent":
			inWildcardGroup = value == "*"
		case "disallow":
			if inWildcardGroup && value != "" {
				robots.Disallows = append(robots.Disallows, value)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	return robots, nil
}

// Allowed reports whether the path may be crawled under the parsed
// Disallow rules. A nil Robots allows everything.
func (r *Robots) Allowed(path string) bool {
	if r == nil {
		return true
	}
	if path == "" {
		path = "/"
	}
	for _, rule := range r.Disallows {
		if strings.HasPrefix(path, rule) {
			return false
		}
	}
	return true
}
