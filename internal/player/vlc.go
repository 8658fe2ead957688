package player

import (
	"context"
	"os/exec"

	"pelisplus/internal/media"
)

// VLC implements the Player interface for VLC media player.
// VLC only takes Referer and User-Agent; other headers are dropped.
type VLC struct{}

func (v *VLC) Name() string { return "vlc" }

func (v *VLC) Available() bool {
	_, err := exec.LookPath("vlc")
	return err == nil
}

// Play launches VLC and exits it when playback ends.
func (v *VLC) Play(ctx context.Context, video media.Video, title string) error {
	return run(ctx, "vlc", vlcArgs(video, title))
}

func vlcArgs(video media.Video, title string) []string {
	args := []string{
		video.URL,
		"--meta-title", title,
		"--play-and-exit",
		"--http-user-agent=" + userAgent(video),
	}
	if ref := video.Referer(); ref != "" {
		args = append(args, "--http-referrer="+ref)
	}
	return args
}
