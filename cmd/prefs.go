package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"pelisplus/internal/prefs"
	"pelisplus/internal/ui"
)

// prefKeys maps the short names accepted on the command line to store keys.
var prefKeys = map[string]string{
	"server":         prefs.KeyServer,
	"quality":        prefs.KeyQuality,
	prefs.KeyServer:  prefs.KeyServer,
	prefs.KeyQuality: prefs.KeyQuality,
}

var prefsCmd = &cobra.Command{
	Use:   "prefs",
	Short: "Show the preferred server and quality",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openPrefs()
		if err != nil {
			return err
		}
		defer store.Close()

		server, quality, err := store.Preferred(cmd.Context())
		if err != nil {
			return err
		}
		if flagJSON {
			return printJSON(map[string]string{prefs.KeyServer: server, prefs.KeyQuality: quality})
		}
		fmt.Printf("server:  %s\nquality: %s\n", server, quality)
		return nil
	},
}

var prefsSetCmd = &cobra.Command{
	Use:   "set <server|quality> <value>",
	Short: "Store a preference",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, ok := prefKeys[args[0]]
		if !ok {
			return fmt.Errorf("%w: %q (use server or quality)", prefs.ErrUnknownKey, args[0])
		}

		store, err := openPrefs()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Set(cmd.Context(), key, args[1]); err != nil {
			return err
		}
		logger.Info("preference saved", "key", key, "value", args[1])
		return nil
	},
}

var prefsSetupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Choose the preferences interactively",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if !ui.Interactive() {
			return fmt.Errorf("setup needs a terminal, use 'pelisplus prefs set' instead")
		}

		store, err := openPrefs()
		if err != nil {
			return err
		}
		defer store.Close()

		for _, step := range []struct {
			key, prompt string
			options     []string
		}{
			{prefs.KeyServer, "Preferred server", prefs.ServerList},
			{prefs.KeyQuality, "Preferred quality", prefs.QualityList},
		} {
			idx, err := ui.Select(step.prompt, step.options)
			if err != nil {
				return err
			}
			if err := store.Set(cmd.Context(), step.key, step.options[idx]); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	prefsCmd.AddCommand(prefsSetCmd)
	prefsCmd.AddCommand(prefsSetupCmd)
}
