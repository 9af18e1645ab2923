package main

import (
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/battlewithbytes/cs2-posts/internal/config"
	"github.com/battlewithbytes/cs2-posts/internal/ui"
	"github.com/battlewithbytes/cs2-posts/internal/version"
)

var (
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "cs2-posts",
	Short:         "Author CS2 map posts for the website dataset",
	Version:       version.Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if verbose {
			log.SetOutput(os.Stderr)
		} else {
			log.SetOutput(io.Discard)
		}
	},
}

func init() {
	rootCmd.Long = ui.Green.Render("cs2-posts") + " " + ui.Cyan.Render(version.Version) + "\n" +
		ui.Dim.Render("Create, export and import CS2 utility posts: per-map data files plus their images.")

	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultConfigPath, "path to config file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log each step to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, ui.Failure(err.Error()))
		os.Exit(1)
	}
}
