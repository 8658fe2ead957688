// Package player provides a secure interface for launching media players.
// All player invocations use exec.Command with explicit argument slices,
// so remote titles and URLs are never interpreted by a shell.
package player

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/exec"
	"sort"
	"strings"

	"pelisplus/internal/httputil"
	"pelisplus/internal/media"
)

// Player is the interface for media player implementations.
type Player interface {
	// Play starts playback of a video and blocks until the player exits.
	Play(ctx context.Context, video media.Video, title string) error

	// Name returns the player name.
	Name() string

	// Available checks if the player binary exists in PATH.
	Available() bool
}

// New creates a player by name.
func New(name string) Player {
	switch name {
	case "mpv":
		return &MPV{}
	case "vlc":
		return &VLC{}
	case "iina", "celluloid":
		return &Generic{name: name}
	default:
		return &MPV{} // Default to mpv
	}
}

// extraHeaders returns the video headers other than Referer and
// User-Agent, which players take as dedicated flags, as "Name: value"
// lines in a stable order.
func extraHeaders(h http.Header) []string {
	var out []string
	for name, values := range h {
		switch http.CanonicalHeaderKey(name) {
		case "Referer", "User-Agent":
			continue
		}
		for _, v := range values {
			out = append(out, http.CanonicalHeaderKey(name)+": "+v)
		}
	}
	sort.Strings(out)
	return out
}

func userAgent(v media.Video) string {
	if ua := v.Headers.Get("User-Agent"); ua != "" {
		return ua
	}
	return httputil.UserAgent
}

// run executes a player attached to the terminal. Players exit non-zero
// when the user closes them, which is not an error.
func run(ctx context.Context, name string, args []string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin

	if err := cmd.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return nil
		}
		return fmt.Errorf("running %s: %w", name, err)
	}
	return nil
}

func joinHeaders(lines []string) string {
	// mpv splits the list on commas.
	escaped := make([]string, len(lines))
	for i, l := range lines {
		escaped[i] = strings.ReplaceAll(l, ",", `\,`)
	}
	return strings.Join(escaped, ",")
}
