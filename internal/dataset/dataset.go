// Package dataset applies posts to the website's data: per-map data files
// and per-map image directories.
package dataset

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/battlewithbytes/cs2-posts/internal/config"
	"github.com/battlewithbytes/cs2-posts/internal/post"
	"github.com/battlewithbytes/cs2-posts/internal/source"
)

// Site locates the dataset on disk.
type Site struct {
	PostsDir  string
	ImagesDir string
	Now       func() time.Time
}

// New returns the site described by cfg.
func New(cfg *config.Config) *Site {
	return &Site{
		PostsDir:  cfg.PostsPath(),
		ImagesDir: cfg.ImagesPath(),
		Now:       time.Now,
	}
}

// DataFile is the data file holding the posts of mapID.
func (s *Site) DataFile(mapID string) string {
	return filepath.Join(s.PostsDir, post.ShortName(mapID)+config.DataFileExt)
}

// ImageDir is the directory holding the images of mapID.
func (s *Site) ImageDir(mapID string) string {
	return filepath.Join(s.ImagesDir, post.ShortName(mapID))
}

func (s *Site) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

// plan merges p into text, the current content of the data file at path.
func (s *Site) plan(text, path string, p post.Post) (*source.Plan, error) {
	out, replaced, err := source.Merge(text, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return &source.Plan{Path: path, Content: out, Replaced: replaced}, nil
}

// imagePath is the relative path a record uses for an image file.
func imagePath(mapID, name string) string {
	return post.ShortName(mapID) + "/" + name
}

// within joins name onto dir and fails unless the result is a file
// directly inside dir.
func within(dir, name string) (string, error) {
	p := filepath.Join(dir, name)
	if filepath.Dir(p) != filepath.Clean(dir) {
		return "", fmt.Errorf("image name %q escapes %s", name, dir)
	}
	return p, nil
}

// isNew reports whether nothing exists at p yet.
func isNew(p string) bool {
	_, err := os.Lstat(p)
	return os.IsNotExist(err)
}

// checkSources fails unless every path is a readable regular file.
func checkSources(paths []string) error {
	for _, src := range paths {
		info, err := os.Stat(src)
		if err != nil {
			return fmt.Errorf("opening image: %w", err)
		}
		if !info.Mode().IsRegular() {
			return fmt.Errorf("opening image: %s is not a regular file", src)
		}
	}
	return nil
}

// removeAll deletes files created before a failure.
func removeAll(paths []string) {
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			log.Printf("[cleanup] %s: %v", p, err)
		}
	}
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("copying image: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying image: %w", err)
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("copying image: %w", err)
	}
	log.Printf("[copy] %s -> %s", src, dst)
	return nil
}
