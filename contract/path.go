package contract

import (
	"fmt"
	"regexp"
	"strings"
)

// paramNamePattern constrains path placeholder names.
var paramNamePattern = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// PathParams extracts the placeholder names from a path template, in
// declaration order. Malformed segments are skipped; ValidatePath reports
// them as errors.
func PathParams(path string) []string {
	params := make([]string, 0)
	for _, segment := range strings.Split(path, "/") {
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			name := strings.Trim(segment, "{}")
			if name != "" {
				params = append(params, name)
			}
		}
	}
	return params
}

// ValidatePath checks a path template: it must start with "/", every
// placeholder segment must be a whole segment with a well-formed name, and
// placeholder names must be unique.
func ValidatePath(path string) error {
	if path == "" {
		return fmt.Errorf("path must not be empty")
	}
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("path %q must start with /", path)
	}

	seen := make(map[string]bool)
	for _, segment := range strings.Split(path, "/") {
		open := strings.Contains(segment, "{")
		closed := strings.Contains(segment, "}")
		if !open && !closed {
			continue
		}
		if !strings.HasPrefix(segment, "{") || !strings.HasSuffix(segment, "}") {
			return fmt.Errorf("path %q: malformed placeholder segment %q", path, segment)
		}

		name := strings.Trim(segment, "{}")
		if !paramNamePattern.MatchString(name) {
			return fmt.Errorf("path %q: invalid placeholder name %q", path, name)
		}
		if seen[name] {
			return fmt.Errorf("path %q: duplicate placeholder %q", path, name)
		}
		seen[name] = true
	}

	return nil
}

// JoinPath concatenates a base path and a suffix, normalizing the slash
// between them.
func JoinPath(base, suffix string) string {
	base = strings.TrimSuffix(base, "/")
	if suffix == "" || suffix == "/" {
		if base == "" {
			return "/"
		}
		return base
	}
	if !strings.HasPrefix(suffix, "/") {
		suffix = "/" + suffix
	}
	return base + suffix
}
