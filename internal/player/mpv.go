package player

import (
	"context"
	"os/exec"

	"pelisplus/internal/media"
)

// MPV implements the Player interface for mpv.
type MPV struct{}

func (m *MPV) Name() string { return "mpv" }

func (m *MPV) Available() bool {
	_, err := exec.LookPath("mpv")
	return err == nil
}

// Play launches mpv with the video's headers.
func (m *MPV) Play(ctx context.Context, video media.Video, title string) error {
	return run(ctx, "mpv", mpvArgs(video, title))
}

// mpvArgs builds the argument list for mpv and mpv-compatible players.
func mpvArgs(video media.Video, title string) []string {
	args := []string{
		video.URL,
		"--force-media-title=" + title,
		"--user-agent=" + userAgent(video),
	}
	if ref := video.Referer(); ref != "" {
		args = append(args, "--referrer="+ref)
	}
	if extra := extraHeaders(video.Headers); len(extra) > 0 {
		args = append(args, "--http-header-fields="+joinHeaders(extra))
	}
	return args
}
