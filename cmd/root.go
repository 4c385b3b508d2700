// Package cmd provides tagdb's CLI commands (spec §6.3).
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/rockbox-tools/tagdb/internal/config"
)

var cfgFile string

// rootCmd is the base command when tagdb is called without any subcommand.
var rootCmd = &cobra.Command{
	Use:   "tagdb",
	Short: "tagdb reads, builds, and rewrites Rockbox tagcache databases",
	Long: `tagdb operates on the on-disk tagcache database a Rockbox-firmware
portable music player uses to index its library: a master index file
cross-referencing ten tag-data files.

Subcommands:
  build    scan a music directory and write a fresh database
  canonic  rewrite a database's genre slots to a single canonical genre
  copy     load a database and re-emit it, optionally verifying a byte-exact round trip
  inspect  print read-only summary views of a database`,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(func() {
		_ = config.Init(cfgFile)
	})

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.tagdb/config.yaml)")
	config.BindPersistentFlags(rootCmd)
}
