package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/battlewithbytes/cs2-posts/internal/creator"
	"github.com/battlewithbytes/cs2-posts/internal/dataset"
	"github.com/battlewithbytes/cs2-posts/internal/post"
	"github.com/battlewithbytes/cs2-posts/internal/ui"
	"github.com/battlewithbytes/cs2-posts/internal/workspace"
)

func init() {
	rootCmd.AddCommand(importCmd)
}

var importCmd = &cobra.Command{
	Use:   "import <archive.zip>",
	Short: "Load an archive into the form for review",
	Long:  "Unpacks the archive into a temporary workspace and opens the form prefilled with its post. The workspace is removed when the session ends.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, site, err := loadSite()
		if err != nil {
			return err
		}

		ws, err := workspace.New(cfg.WorkspacePrefix)
		if err != nil {
			return err
		}
		defer ws.Close()

		ctx, stop := signalContext(cmd.Context())
		defer stop()

		d := post.NewDraft()
		imp, err := dataset.Import(args[0], ws, d)
		if err != nil {
			return fmt.Errorf("importing %s: %w", args[0], err)
		}
		fmt.Println(ui.Success("Post imported"))
		fmt.Println(ui.Field("  Title:     ", imp.Title))
		fmt.Println(ui.Field("  Images:    ", fmt.Sprintf("%d", len(imp.Images))))
		fmt.Println()

		return creator.Run(ctx, site, d)
	},
}
