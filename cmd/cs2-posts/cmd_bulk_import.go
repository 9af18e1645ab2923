package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/battlewithbytes/cs2-posts/internal/ui"
)

func init() {
	rootCmd.AddCommand(bulkImportCmd)
}

var bulkImportCmd = &cobra.Command{
	Use:   "bulk-import <archive.zip|dir>...",
	Short: "Add many archives straight to the dataset",
	Long:  "Imports every archive without review. Posts whose ID already exists replace the existing record. Directories are expanded to the zip files they contain.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, site, err := loadSite()
		if err != nil {
			return err
		}
		paths, err := expandArchives(args)
		if err != nil {
			return err
		}

		bar := ui.NewProgress(os.Stderr, len(paths))
		res := site.BulkImport(paths, func(path string, err error) {
			bar.Advance(filepath.Base(path))
		})
		bar.Done()

		fmt.Println(ui.Success(fmt.Sprintf("%d of %d archives imported", res.Imported, len(paths))))
		if res.Replaced > 0 {
			fmt.Println(ui.Field("  Replaced:  ", fmt.Sprintf("%d", res.Replaced)))
		}
		for _, f := range res.Failures {
			fmt.Println(ui.Red.Render("  "+f.Archive+": ") + ui.White.Render(f.Err.Error()))
		}
		if len(res.Failures) > 0 {
			return fmt.Errorf("%d of %d archives failed", len(res.Failures), len(paths))
		}
		return nil
	},
}
