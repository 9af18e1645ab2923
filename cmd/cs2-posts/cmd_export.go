package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/battlewithbytes/cs2-posts/internal/archive"
	"github.com/battlewithbytes/cs2-posts/internal/creator"
	"github.com/battlewithbytes/cs2-posts/internal/ui"
)

var (
	exportFlags  postFlags
	exportOutput string
)

func init() {
	exportFlags.register(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "archive file (default cs2-post-<title>.zip)")
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write a post as a portable zip archive",
	Long:  "Packs the post's fields and images into a zip that import and bulk-import read back. Without --title the interactive form opens.",
	RunE: func(cmd *cobra.Command, args []string) error {
		_, site, err := loadSite()
		if err != nil {
			return err
		}
		d, err := exportFlags.draft()
		if err != nil {
			return err
		}

		if exportFlags.interactive() {
			ctx, stop := signalContext(cmd.Context())
			defer stop()
			return creator.Run(ctx, site, d)
		}

		dest := exportOutput
		if dest == "" {
			dest = archive.DefaultName(d.Title)
		}
		if err := site.Export(d, dest); err != nil {
			return fmt.Errorf("exporting post: %w", err)
		}
		fmt.Println(ui.Success("Post exported"))
		fmt.Println(ui.Field("  Archive:   ", dest+" "+ui.Dim.Render(ui.FileSize(dest))))
		fmt.Println(ui.Field("  Images:    ", fmt.Sprintf("%d", len(d.Images))))
		return nil
	},
}
