package httputil

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
)

// validPathPattern matches site-relative paths such as "/serie/the-bear":
// unreserved characters, percent escapes, sub-delims, ':' and '@'.
var validPathPattern = regexp.MustCompile(`^/[a-zA-Z0-9/_.%~!$&'()*+,;=:@-]*$`)

// ValidateURL checks that a URL is well-formed and uses HTTP or HTTPS.
func ValidateURL(rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("malformed URL: %w", err)
	}
	if u.Scheme != "https" && u.Scheme != "http" {
		return fmt.Errorf("only HTTP(S) URLs are allowed, got %q", u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("URL has no host")
	}
	return nil
}

// ValidatePath checks that a site-relative path contains only safe characters.
func ValidatePath(p string) error {
	if p == "" {
		return fmt.Errorf("path cannot be empty")
	}
	if len(p) > 512 {
		return fmt.Errorf("path too long: %d characters", len(p))
	}
	if !validPathPattern.MatchString(p) {
		return fmt.Errorf("path contains invalid characters: %q", p)
	}
	for _, seg := range strings.Split(p, "/") {
		if unescaped, err := url.PathUnescape(seg); err == nil {
			seg = unescaped
		}
		if seg == ".." {
			return fmt.Errorf("path contains traversal: %q", p)
		}
	}
	return nil
}

// RelativePath strips scheme and host from an absolute URL, keeping path,
// query and fragment. Relative input is returned with a leading slash.
func RelativePath(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	out := u.EscapedPath()
	if out == "" || out[0] != '/' {
		out = "/" + out
	}
	if u.RawQuery != "" {
		out += "?" + u.RawQuery
	}
	if u.Fragment != "" {
		out += "#" + u.EscapedFragment()
	}
	return out
}

// AbsoluteURL resolves ref against base.
func AbsoluteURL(base, ref string) string {
	b, err := url.Parse(base)
	if err != nil {
		return ref
	}
	r, err := url.Parse(ref)
	if err != nil {
		return ref
	}
	return b.ResolveReference(r).String()
}

// SanitizeFilename removes path traversal and dangerous characters from a filename.
// Returns just the base name, stripped of any directory components.
func SanitizeFilename(name string) string {
	name = filepath.Base(name)

	replacer := strings.NewReplacer(
		"..", "_",
		"/", "_",
		"\\", "_",
		"\x00", "",
		":", "_",
		"*", "_",
		"?", "_",
		"\"", "_",
		"<", "_",
		">", "_",
		"|", "_",
	)
	name = replacer.Replace(name)

	if name == "" || name == "." || name == ".." {
		return "untitled"
	}

	return name
}

// SafeDownloadPath resolves and validates a download path ensuring it stays within the target directory.
func SafeDownloadPath(dir, filename string) (string, error) {
	sanitized := SanitizeFilename(filename)

	absDir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}

	resolved, err := filepath.Abs(filepath.Join(absDir, sanitized))
	if err != nil {
		return "", fmt.Errorf("resolving path: %w", err)
	}

	if !strings.HasPrefix(resolved, absDir+string(filepath.Separator)) && resolved != absDir {
		return "", fmt.Errorf("path traversal detected: %q escapes %q", resolved, absDir)
	}

	return resolved, nil
}

// EncodeQuery encodes a free-text search query for the "s" parameter.
func EncodeQuery(query string) string {
	return url.QueryEscape(strings.Join(strings.Fields(query), " "))
}
