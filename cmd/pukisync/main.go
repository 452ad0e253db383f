// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the pukisync CLI, which keeps local
// text files and PukiWiki pages in step: download a page's source, or
// upload a file as a page edit along with the attachments it references.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/pukisync/internal/config"
	"github.com/pdiddy/pukisync/internal/pukiwiki"
	"github.com/pdiddy/pukisync/internal/secrets"
	"github.com/pdiddy/pukisync/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

const (
	dotEnvFile = ".env"
	secretsDir = ".secrets/"
)

// wikiCfg is built once in PersistentPreRunE and read-only afterwards.
var wikiCfg types.WikiConfig

// logger receives request diagnostics; --verbose lowers its level to debug.
var logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

// rootCmd is the base command for the pukisync CLI.
var rootCmd = &cobra.Command{
	Use:   "pukisync",
	Short: "Synchronize local text files with PukiWiki pages",
	Long: `pukisync downloads the raw source of PukiWiki pages into local text files
and uploads local files back as page edits, together with any attachment
files referenced by #ref(./path,...); lines.

The wiki is configured through WIKI_ENDPOINT, WIKI_USER and WIKI_PASS, read
from the environment, a .env file, a pukisync.yaml config file, or the
.secrets/ directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		s, err := secrets.Load(secretsDir)
		if err != nil {
			return err
		}
		wikiCfg = config.Load(viper.GetViper(), s)

		if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
			logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		}
		return nil
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./pukisync.yaml or ~/.config/pukisync/pukisync.yaml)")
	rootCmd.PersistentFlags().String("endpoint", "", "wiki script URL (overrides WIKI_ENDPOINT)")
	rootCmd.PersistentFlags().Duration("timeout", 0, "HTTP request timeout (default: none)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log wiki requests to stderr")

	if err := config.Bind(viper.GetViper(), "pukisync/"+version); err != nil {
		panic(err)
	}
	viper.BindPFlag(config.KeyEndpoint, rootCmd.PersistentFlags().Lookup("endpoint"))
	viper.BindPFlag(config.KeyTimeout, rootCmd.PersistentFlags().Lookup("timeout"))
}

func initConfig() {
	if err := config.LoadDotEnv(dotEnvFile); err != nil {
		fmt.Fprintln(os.Stderr, "warning:", err)
	}

	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("pukisync")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "pukisync"))
		}
	}

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// newWikiClient validates the loaded config and returns a client for it.
func newWikiClient() (*pukiwiki.Client, error) {
	if err := config.Validate(wikiCfg); err != nil {
		return nil, err
	}
	return pukiwiki.New(wikiCfg, nil, logger), nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
