package player

import (
	"context"
	"os/exec"

	"pelisplus/internal/media"
)

// Generic implements the Player interface for players like iina and celluloid
// that accept mpv-compatible arguments.
type Generic struct {
	name string
}

func (g *Generic) Name() string { return g.name }

func (g *Generic) Available() bool {
	_, err := exec.LookPath(g.name)
	return err == nil
}

// Play launches the player with mpv-style flags.
func (g *Generic) Play(ctx context.Context, video media.Video, title string) error {
	return run(ctx, g.name, mpvArgs(video, title))
}
