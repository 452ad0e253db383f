package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/pukisync/internal/config"
	"github.com/pdiddy/pukisync/internal/recent"
)

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Print the most recently changed page name",
	Long: `Latest reads the recent-changes listing (WIKI_USER) and prints the page
name that download uses when no page is given.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newWikiClient()
		if err != nil {
			return err
		}
		if err := config.RequireUser(wikiCfg); err != nil {
			return err
		}
		_, err = recent.Latest(cmd.Context(), client, wikiCfg.RecentAnchorID, cmd.OutOrStdout())
		return err
	},
}

func init() {
	rootCmd.AddCommand(latestCmd)
}
