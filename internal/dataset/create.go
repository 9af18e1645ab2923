package dataset

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/battlewithbytes/cs2-posts/internal/archive"
	"github.com/battlewithbytes/cs2-posts/internal/naming"
	"github.com/battlewithbytes/cs2-posts/internal/post"
	"github.com/battlewithbytes/cs2-posts/internal/source"
)

// Created describes a post added by Create.
type Created struct {
	ID       string
	BaseName string
	Images   []string // record paths, in display order
}

// Create adds the draft to the dataset. Nothing is written when the draft
// is invalid or the map's data file cannot take the record.
func (s *Site) Create(d *post.Draft) (*Created, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}
	if err := checkSources(d.Images); err != nil {
		return nil, err
	}

	path := s.DataFile(d.MapID)
	text, err := source.Load(path)
	if err != nil {
		return nil, err
	}
	id, err := freshID(text, d.MapID, s.now())
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}

	base := naming.BaseName(d.Title, d.ActiveSides(), d.ActiveUtilities())
	names := make([]string, len(d.Images))
	images := make([]string, len(d.Images))
	for i, src := range d.Images {
		names[i] = naming.CreateImageName(base, i+1, src)
		images[i] = imagePath(d.MapID, names[i])
	}

	p := d.Post(id, images)
	pl, err := s.plan(text, path, p)
	if err != nil {
		return nil, err
	}

	dir := s.ImageDir(d.MapID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating image directory: %w", err)
	}
	var written []string
	for i, src := range d.Images {
		dst, err := within(dir, names[i])
		if err != nil {
			removeAll(written)
			return nil, err
		}
		created := isNew(dst)
		if err := copyFile(src, dst); err != nil {
			if created {
				written = append(written, dst)
			}
			removeAll(written)
			return nil, err
		}
		if created {
			written = append(written, dst)
		}
	}
	if err := pl.Commit(); err != nil {
		removeAll(written)
		return nil, err
	}

	log.Printf("[create] %s: %d images, base name %s", id, len(images), base)
	return &Created{ID: id, BaseName: base, Images: images}, nil
}

// Export writes the draft as an archive at archivePath. No file is created
// when the draft is invalid.
func (s *Site) Export(d *post.Draft, archivePath string) error {
	if err := d.Validate(); err != nil {
		return err
	}
	if err := archive.EncodeFile(archivePath, d.Post("", nil), d.Images); err != nil {
		return err
	}
	log.Printf("[export] %s: %d images", archivePath, len(d.Images))
	return nil
}

// freshID returns a generated ID for mapID that text does not use yet,
// stepping the timestamp a second at a time.
func freshID(text, mapID string, now time.Time) (string, error) {
	for {
		id := naming.PostID(mapID, now)
		taken, err := source.HasID(text, id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
		now = now.Add(time.Second)
	}
}
