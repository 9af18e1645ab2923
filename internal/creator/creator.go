// Package creator is the interactive post editor: a terminal form over a
// draft that creates the post or exports it as an archive.
package creator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"

	"github.com/battlewithbytes/cs2-posts/internal/dataset"
	"github.com/battlewithbytes/cs2-posts/internal/post"
	"github.com/battlewithbytes/cs2-posts/internal/ui"
)

// Run edits d in the form until the author cancels. A failed action is
// reported and the form reopens with the same values; a successful create
// clears everything but the map.
func Run(ctx context.Context, site *dataset.Site, d *post.Draft) error {
	var a Answers
	for {
		if err := BuildForm(d, &a).RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				fmt.Println(ui.Dim.Render("Cancelled."))
				return nil
			}
			return err
		}
		d.Images = ParseImageList(a.ImagesText)
		if a.Action == ActionCancel {
			fmt.Println(ui.Dim.Render("Cancelled."))
			return nil
		}

		if err := Dispatch(site, d, &a, os.Stdout); err != nil {
			fmt.Println(ui.Failure(err.Error()))
			continue
		}

		if err := againForm(&a).RunWithContext(ctx); err != nil {
			if errors.Is(err, huh.ErrUserAborted) {
				return nil
			}
			return err
		}
		if !a.Again {
			return nil
		}
	}
}

// Dispatch performs the chosen action and prints its outcome to w.
func Dispatch(site *dataset.Site, d *post.Draft, a *Answers, w io.Writer) error {
	switch a.Action {
	case ActionCreate:
		c, err := site.Create(d)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, ui.Success("Post created"))
		fmt.Fprintln(w, ui.Field("  ID:        ", c.ID))
		fmt.Fprintln(w, ui.Field("  Images:    ", fmt.Sprintf("%d", len(c.Images))))
		fmt.Fprintln(w, ui.Field("  Base name: ", c.BaseName))
		d.Reset()
		return nil

	case ActionExport:
		dest := a.archivePath(d.Title)
		if err := site.Export(d, dest); err != nil {
			return err
		}
		fmt.Fprintln(w, ui.Success("Post exported"))
		fmt.Fprintln(w, ui.Field("  Archive:   ", dest+" "+ui.Dim.Render(ui.FileSize(dest))))
		fmt.Fprintln(w, ui.Field("  Images:    ", fmt.Sprintf("%d", len(d.Images))))
		return nil

	case ActionCancel:
		return nil
	}
	return fmt.Errorf("unknown action %q", a.Action)
}
