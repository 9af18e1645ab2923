package creator

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/battlewithbytes/cs2-posts/internal/post"
)

// BuildForm constructs the post form over d. Selections write straight
// into the draft; the rest lands in a.
func BuildForm(d *post.Draft, a *Answers) *huh.Form {
	a.ImagesText = strings.Join(d.Images, "\n")
	a.Action = ActionCreate

	groups := []*huh.Group{
		postGroup(d),
		tagsGroup(d),
		methodGroup(d, a),
		actionGroup(a),
		archiveGroup(a),
	}
	return huh.NewForm(groups...).WithTheme(huh.ThemeCatppuccin())
}

func postGroup(d *post.Draft) *huh.Group {
	mapOpts := make([]huh.Option[string], 0, len(post.Maps))
	for _, m := range post.Maps {
		mapOpts = append(mapOpts, huh.NewOption(post.ShortName(m), m))
	}

	return huh.NewGroup(
		huh.NewSelect[string]().
			Title("Map").
			Options(mapOpts...).
			Value(&d.MapID),
		huh.NewInput().
			Title("Title").
			Placeholder("Smoke A from T spawn").
			Value(&d.Title).
			Validate(ValidateTitle),
	)
}

func tagsGroup(d *post.Draft) *huh.Group {
	return huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Side").
			Options(huh.NewOptions(post.Sides...)...).
			Value(&d.Sides),
		huh.NewMultiSelect[string]().
			Title("Site").
			Options(huh.NewOptions(post.Sites...)...).
			Value(&d.Sites),
		huh.NewMultiSelect[string]().
			Title("Utility").
			Options(huh.NewOptions(post.Utilities...)...).
			Value(&d.Utilities).
			Validate(func([]string) error {
				if len(d.Tags()) == 0 {
					return fmt.Errorf("select at least one tag")
				}
				return nil
			}),
	)
}

func methodGroup(d *post.Draft, a *Answers) *huh.Group {
	return huh.NewGroup(
		huh.NewMultiSelect[string]().
			Title("Method").
			Description("Components of the throw, saved in this order regardless of selection order.").
			Options(huh.NewOptions(post.MethodComponents...)...).
			Value(&d.Method).
			Validate(func(s []string) error {
				if len(s) == 0 {
					return fmt.Errorf("select at least one method component")
				}
				return nil
			}),
		huh.NewText().
			Title("Images").
			Description("One path per line, in display order (png, jpg, webp).").
			Lines(4).
			Value(&a.ImagesText).
			Validate(ValidateImageList),
		huh.NewText().
			Title("Tip").
			Description("Optional.").
			Lines(2).
			Value(&d.Tip),
	)
}

func actionGroup(a *Answers) *huh.Group {
	return huh.NewGroup(
		huh.NewSelect[string]().
			Title("Action").
			Options(
				huh.NewOption("Create post", ActionCreate),
				huh.NewOption("Export to archive", ActionExport),
				huh.NewOption("Cancel", ActionCancel),
			).
			Value(&a.Action),
	)
}

func archiveGroup(a *Answers) *huh.Group {
	return huh.NewGroup(
		huh.NewInput().
			Title("Archive file").
			Description("Leave empty for cs2-post-<title>.zip in the current directory.").
			Value(&a.ArchivePath),
	).WithHideFunc(func() bool { return a.Action != ActionExport })
}

func againForm(a *Answers) *huh.Form {
	a.Again = false
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title("Author another post?").
				Value(&a.Again),
		),
	).WithTheme(huh.ThemeCatppuccin())
}
