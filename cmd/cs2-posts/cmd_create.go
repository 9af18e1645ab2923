package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/battlewithbytes/cs2-posts/internal/creator"
	"github.com/battlewithbytes/cs2-posts/internal/ui"
)

var createFlags postFlags

func init() {
	createFlags.register(createCmd)
	rootCmd.AddCommand(createCmd)
}

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a post to the dataset",
	Long:  "Copies the images into the map's image directory and appends the post to the map's data file. Without --title the interactive form opens.",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, site, err := loadSite()
		if err != nil {
			return err
		}
		d, err := createFlags.draft()
		if err != nil {
			return err
		}

		if createFlags.interactive() {
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return creator.Run(ctx, site, d)
		}

		c, err := site.Create(d)
		if err != nil {
			return fmt.Errorf("creating post: %w", err)
		}
		fmt.Println(ui.Success("Post created"))
		fmt.Println(ui.Field("  ID:        ", c.ID))
		fmt.Println(ui.Field("  Images:    ", fmt.Sprintf("%d", len(c.Images))))
		fmt.Println(ui.Field("  Base name: ", c.BaseName))
		return nil
	},
}
