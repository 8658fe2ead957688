package cmd

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"pelisplus/internal/media"
	"pelisplus/internal/ui"
)

// browseRun is the default command: pelisplus <query>
// It searches, lets the user pick a title and an episode, then plays.
func browseRun(cmd *cobra.Command, args []string) error {
	query := strings.Join(args, " ")

	if query == "" {
		if !ui.Interactive() {
			return cmd.Help()
		}
		var err error
		query, err = ui.Input("Buscar")
		if err != nil {
			return fmt.Errorf("no search query provided")
		}
	}
	logger.Debug("searching", "query", query)

	ctx := cmd.Context()
	src := newSource()

	page, err := src.Search(ctx, query, media.Filters{}, 1)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}
	if len(page.Entries) == 0 {
		return fmt.Errorf("no results found for %q", query)
	}

	entry := page.Entries[0]
	if ui.Interactive() {
		idx, err := ui.Select("Título", lo.Map(page.Entries, func(e media.CatalogEntry, _ int) string { return e.Title }))
		if err != nil {
			return err
		}
		entry = page.Entries[idx]
	}
	logger.Debug("selected", "title", entry.Title, "url", entry.URL)

	episodes, err := src.Episodes(ctx, entry.URL)
	if err != nil {
		return fmt.Errorf("getting episodes: %w", err)
	}
	if len(episodes) == 0 {
		return fmt.Errorf("no episodes found for %s", entry.Title)
	}

	episode := episodes[0]
	if len(episodes) > 1 && ui.Interactive() {
		idx, err := ui.Select("Episodio", lo.Map(episodes, func(ep media.Episode, _ int) string { return ep.Name }))
		if err != nil {
			return err
		}
		episode = episodes[idx]
	}

	title := entry.Title
	if episode.Name != "" && len(episodes) > 1 {
		title = fmt.Sprintf("%s - %s", entry.Title, episode.Name)
	}
	return playEpisode(ctx, src, episode.URL, title)
}
