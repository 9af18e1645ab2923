package dataset

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/battlewithbytes/cs2-posts/internal/archive"
	"github.com/battlewithbytes/cs2-posts/internal/naming"
	"github.com/battlewithbytes/cs2-posts/internal/post"
	"github.com/battlewithbytes/cs2-posts/internal/source"
	"github.com/battlewithbytes/cs2-posts/internal/workspace"
)

// Imported describes an archive loaded into a draft.
type Imported struct {
	Title  string
	Images []string // workspace paths
}

// Import loads the archive at archivePath into d, keeping its images in
// ws. The dataset is not touched.
func Import(archivePath string, ws *workspace.Workspace, d *post.Draft) (*Imported, error) {
	dec, err := archive.DecodeFile(archivePath)
	if err != nil {
		return nil, err
	}

	// Entries from different folders may share a base name.
	paths := make([]string, 0, len(dec.Images))
	for i, img := range dec.Images {
		p, err := ws.WriteFile(fmt.Sprintf("%d-%s", i+1, img.Name), img.Data)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}

	d.Apply(dec.Post)
	d.Images = paths

	log.Printf("[import] %s: %q with %d images", filepath.Base(archivePath), dec.Post.Title, len(paths))
	return &Imported{Title: dec.Post.Title, Images: paths}, nil
}

// Failure is an archive that could not be imported.
type Failure struct {
	Archive string // base name
	Err     error
}

func (f Failure) Error() string { return f.Archive + ": " + f.Err.Error() }

func (f Failure) Unwrap() error { return f.Err }

// BulkResult summarizes a BulkImport run.
type BulkResult struct {
	Imported int // successful archives, replacements included
	Replaced int
	Failures []Failure
}

// BulkImport adds every archive straight to the dataset. A post whose ID
// is already present replaces the existing record. A failing archive is
// recorded and the batch goes on. observe, when set, is called once per
// archive with its outcome.
func (s *Site) BulkImport(paths []string, observe func(path string, err error)) BulkResult {
	var res BulkResult
	for _, path := range paths {
		replaced, err := s.importOne(path)
		if err != nil {
			log.Printf("[bulk] %s: %v", filepath.Base(path), err)
			res.Failures = append(res.Failures, Failure{Archive: filepath.Base(path), Err: err})
		} else {
			res.Imported++
			if replaced {
				res.Replaced++
			}
		}
		if observe != nil {
			observe(path, err)
		}
	}
	log.Printf("[bulk] %d imported (%d replaced), %d failed", res.Imported, res.Replaced, len(res.Failures))
	return res
}

func (s *Site) importOne(archivePath string) (bool, error) {
	dec, err := archive.DecodeFile(archivePath)
	if err != nil {
		return false, err
	}
	p := dec.Post
	if err := p.Validate(); err != nil {
		return false, err
	}

	path := s.DataFile(p.MapID)
	text, err := source.Load(path)
	if err != nil {
		return false, err
	}
	if p.ID == "" {
		if p.ID, err = freshID(text, p.MapID, s.now()); err != nil {
			return false, fmt.Errorf("%s: %w", filepath.Base(path), err)
		}
	}

	names := make([]string, len(dec.Images))
	p.Images = make([]string, len(dec.Images))
	for i, img := range dec.Images {
		names[i] = naming.ImportImageName(p.ID, i+1, img.Name)
		p.Images[i] = imagePath(p.MapID, names[i])
	}

	pl, err := s.plan(text, path, p)
	if err != nil {
		return false, err
	}

	dir := s.ImageDir(p.MapID)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return false, fmt.Errorf("creating image directory: %w", err)
	}
	var written []string
	for i, img := range dec.Images {
		dst, err := within(dir, names[i])
		if err != nil {
			removeAll(written)
			return false, err
		}
		created := isNew(dst)
		if err := os.WriteFile(dst, img.Data, 0644); err != nil {
			if created {
				written = append(written, dst)
			}
			removeAll(written)
			return false, fmt.Errorf("writing image: %w", err)
		}
		if created {
			written = append(written, dst)
		}
	}
	if err := pl.Commit(); err != nil {
		removeAll(written)
		return false, err
	}

	log.Printf("[bulk] %s -> %s (replaced=%v)", filepath.Base(archivePath), p.ID, pl.Replaced)
	return pl.Replaced, nil
}
