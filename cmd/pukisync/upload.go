package main

import (
	"github.com/spf13/cobra"

	"github.com/pdiddy/pukisync/internal/httputil"
	"github.com/pdiddy/pukisync/internal/upload"
)

var uploadCmd = &cobra.Command{
	Use:     "upload <file_path>",
	Aliases: []string{"u"},
	Short:   "Upload a local file as a wiki page edit",
	Long: `Upload replaces the source of the page named after the file (its base name
without extension) with the file's content, then posts every attachment
referenced as #ref(./path,...); and finally moves the file into the archive
directory as <name>_YYYYMMDD_HHMMSS<ext>.

References closed with ";-" are skipped. A failed attachment is reported
but does not fail the command.`,
	Args: cobra.ExactArgs(1),
	RunE: runUpload,
}

func init() {
	uploadCmd.Flags().String("archive-dir", "", "directory receiving uploaded files (default: archive_dir config, \"_old\")")
	uploadCmd.Flags().Bool("no-archive", false, "leave the uploaded file in place")
	uploadCmd.Flags().BoolP("quiet", "q", false, "do not print attachment upload progress")

	rootCmd.AddCommand(uploadCmd)
}

func runUpload(cmd *cobra.Command, args []string) error {
	client, err := newWikiClient()
	if err != nil {
		return err
	}

	archiveDir, _ := cmd.Flags().GetString("archive-dir")
	if archiveDir == "" {
		archiveDir = wikiCfg.ArchiveDir
	}
	noArchive, _ := cmd.Flags().GetBool("no-archive")
	quiet, _ := cmd.Flags().GetBool("quiet")

	w := cmd.OutOrStdout()
	opts := upload.Options{
		ArchiveDir: archiveDir,
		NoArchive:  noArchive,
	}
	if !quiet {
		opts.Progress = httputil.TextProgress(w)
	}

	_, err = upload.Upload(cmd.Context(), client, args[0], opts, w)
	return err
}
