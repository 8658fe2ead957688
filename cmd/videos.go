package cmd

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"pelisplus/internal/download"
	"pelisplus/internal/extract"
	"pelisplus/internal/httputil"
	"pelisplus/internal/media"
	"pelisplus/internal/player"
	"pelisplus/internal/provider"
	"pelisplus/internal/rank"
	"pelisplus/internal/ui"
)

var (
	flagDownload string
	flagTitle    string
)

var videosCmd = &cobra.Command{
	Use:   "videos <episode-url>",
	Short: "Resolve an episode into videos, best match first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		videos, err := sortedVideos(cmd.Context(), newSource(), args[0])
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(videos)
		}
		if len(videos) == 0 {
			fmt.Println("No videos found.")
			return nil
		}
		for _, v := range videos {
			fmt.Printf("%s\t%s\n", v.Label, v.URL)
		}
		return nil
	},
}

var flagLang string

var hostCmd = &cobra.Command{
	Use:   "host <host-url>",
	Short: "Run the host extractor for a single embed URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		src := newSource()
		d := extract.NewDispatcher(httputil.NewClient(cfg.Timeout.Duration), extract.Options{
			SiteHeaders: src.Headers(),
			Logger:      logger,
		})
		route, ok := d.Match(args[0])
		if !ok {
			return fmt.Errorf("no extractor handles %s", args[0])
		}
		logger.Debug("matched host", "route", route.Name)

		videos := d.Dispatch(cmd.Context(), args[0], flagLang)
		if flagJSON {
			return printJSON(videos)
		}
		for _, v := range videos {
			fmt.Printf("%s\t%s\n", v.Label, v.URL)
		}
		return nil
	},
}

var playCmd = &cobra.Command{
	Use:   "play <episode-url>",
	Short: "Resolve an episode and play or download it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		title := flagTitle
		if title == "" {
			title = titleFromURL(args[0])
		}
		return playEpisode(cmd.Context(), newSource(), args[0], title)
	},
}

func init() {
	playCmd.Flags().StringVarP(&flagDownload, "download", "d", "", "Download to directory instead of playing")
	playCmd.Flags().StringVarP(&flagTitle, "title", "t", "", "Media title shown by the player")
	hostCmd.Flags().StringVarP(&flagLang, "lang", "l", "", "Label prefix, e.g. [LAT]")
	rootCmd.AddCommand(hostCmd)
	rootCmd.Flags().StringVarP(&flagDownload, "download", "d", "", "Download to directory instead of playing")
}

// sortedVideos resolves an episode and orders the videos by the stored
// server and quality preferences.
func sortedVideos(ctx context.Context, src provider.Source, episodeURL string) ([]media.Video, error) {
	videos, err := src.Videos(ctx, episodeURL)
	if err != nil {
		return nil, fmt.Errorf("resolving videos: %w", err)
	}

	store, err := openPrefs()
	if err != nil {
		return nil, err
	}
	defer store.Close()

	server, quality, err := store.Preferred(ctx)
	if err != nil {
		return nil, fmt.Errorf("reading preferences: %w", err)
	}
	logger.Debug("sorting videos", "count", len(videos), "server", server, "quality", quality)

	return rank.Sort(videos, server, quality), nil
}

// playEpisode resolves an episode, picks a video and hands it to the
// player, or to ffmpeg in download mode.
func playEpisode(ctx context.Context, src provider.Source, episodeURL, title string) error {
	videos, err := sortedVideos(ctx, src, episodeURL)
	if err != nil {
		return err
	}
	if len(videos) == 0 {
		return fmt.Errorf("no videos found for %s", episodeURL)
	}

	video := videos[0]
	if ui.Interactive() && !flagJSON {
		labels := lo.Map(videos, func(v media.Video, _ int) string { return v.Label })
		idx, err := ui.Select("Video", labels)
		if err != nil {
			return err
		}
		video = videos[idx]
	}
	logger.Debug("selected video", "label", video.Label, "url", video.URL, "referer", video.Referer())

	if flagJSON {
		return printJSON(struct {
			Title string `json:"title"`
			media.Video
		}{title, video})
	}

	if flagDownload != "" {
		outputPath, err := download.Download(ctx, video, title, flagDownload, logger)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "Downloaded: %s\n", outputPath)
		return nil
	}

	p := player.New(cfg.Player)
	if !p.Available() {
		return fmt.Errorf("player %q not found in PATH", cfg.Player)
	}
	if err := p.Play(ctx, video, title); err != nil {
		return fmt.Errorf("playback failed: %w", err)
	}
	return nil
}

// titleFromURL derives a readable title from a site path,
// e.g. "/serie/the-bear/season/1/episode/2" becomes "the bear season 1 episode 2".
func titleFromURL(u string) string {
	path, _, _ := strings.Cut(httputil.RelativePath(u), "?")
	parts := strings.Split(strings.Trim(path, "/"), "/")
	if len(parts) > 1 {
		switch parts[0] {
		case "serie", "pelicula", "anime", "dorama":
			parts = parts[1:]
		}
	}
	return strings.ReplaceAll(strings.Join(parts, " "), "-", " ")
}
