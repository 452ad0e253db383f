package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/pukisync/internal/config"
	"github.com/pdiddy/pukisync/internal/download"
	"github.com/pdiddy/pukisync/internal/recent"
)

var downloadCmd = &cobra.Command{
	Use:     "download [page_name]",
	Aliases: []string{"d"},
	Short:   "Download a wiki page's source to <page_name>.txt",
	Long: `Download fetches the edit form of a page and writes the raw page source
to <page_name>.txt, replacing any existing file.

When page_name is omitted, the most recently changed page is looked up in
the recent-changes listing (WIKI_USER) and downloaded.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDownload,
}

func init() {
	downloadCmd.Flags().String("out-dir", ".", "directory for downloaded page files")

	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	client, err := newWikiClient()
	if err != nil {
		return err
	}
	outDir, _ := cmd.Flags().GetString("out-dir")
	ctx := cmd.Context()
	w := cmd.OutOrStdout()

	var page string
	if len(args) == 1 {
		page = args[0]
	} else {
		// The default page is resolved only on this branch.
		if err := config.RequireUser(wikiCfg); err != nil {
			return err
		}
		page, err = recent.Latest(ctx, client, wikiCfg.RecentAnchorID, w)
		if err != nil {
			return err
		}
	}

	_, err = download.Download(ctx, client, page, download.Options{OutDir: outDir}, w)
	return err
}
