package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"pelisplus/internal/media"
	"pelisplus/internal/provider"
)

var (
	flagPage  int
	flagGenre string
	flagYear  string
)

var popularCmd = &cobra.Command{
	Use:   "popular",
	Short: "List popular series",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		page, err := newSource().Popular(cmd.Context(), flagPage)
		if err != nil {
			return err
		}
		return printPage(page)
	},
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search by title, or list a genre or year",
	Long: `Search by free text. Without a query, --genre lists a genre and --year
lists a release year; the text search ignores both filters.`,
	Args: cobra.ArbitraryArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filters, err := parseFilters()
		if err != nil {
			return err
		}
		page, err := newSource().Search(cmd.Context(), strings.Join(args, " "), filters, flagPage)
		if err != nil {
			return err
		}
		return printPage(page)
	},
}

var genresCmd = &cobra.Command{
	Use:   "genres",
	Short: "List the genres accepted by search --genre",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if flagJSON {
			return printJSON(provider.Genres[1:])
		}
		for _, g := range provider.Genres[1:] {
			fmt.Printf("%-24s %s\n", g.Name, g.URIPart)
		}
		return nil
	},
}

var detailsCmd = &cobra.Command{
	Use:   "details <url>",
	Short: "Show a title's details",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := newSource().Details(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(struct {
				media.Details
				Status string `json:"status"`
			}{d, d.Status.String()})
		}
		fmt.Println(d.Title)
		fmt.Println(d.URL)
		if len(d.Genres) > 0 {
			fmt.Println("Genres:", strings.Join(d.Genres, ", "))
		}
		fmt.Println("Status:", d.Status)
		if d.Description != "" {
			fmt.Println()
			fmt.Println(d.Description)
		}
		return nil
	},
}

var episodesCmd = &cobra.Command{
	Use:   "episodes <url>",
	Short: "List a title's episodes, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		eps, err := newSource().Episodes(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(eps)
		}
		for _, ep := range eps {
			fmt.Printf("%4d  %s\t%s\n", ep.Number, ep.Name, ep.URL)
		}
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{popularCmd, searchCmd} {
		c.Flags().IntVarP(&flagPage, "page", "p", 1, "Result page")
	}
	searchCmd.Flags().StringVarP(&flagGenre, "genre", "g", "", "Genre name or slug (see genres)")
	searchCmd.Flags().StringVarP(&flagYear, "year", "y", "", "Release year")
}

func parseFilters() (media.Filters, error) {
	g, ok := provider.GenreByName(flagGenre)
	if !ok {
		return media.Filters{}, fmt.Errorf("unknown genre %q, run 'pelisplus genres' for the list", flagGenre)
	}
	return media.Filters{Genre: g.URIPart, Year: flagYear}, nil
}

func printPage(page media.Page) error {
	if flagJSON {
		return printJSON(page)
	}
	if len(page.Entries) == 0 {
		fmt.Println("No results found.")
		return nil
	}
	for _, e := range page.Entries {
		fmt.Printf("%s\t%s\n", e.Title, e.URL)
	}
	if page.HasNextPage {
		fmt.Printf("\nMore results: --page %d\n", flagPage+1)
	}
	return nil
}
