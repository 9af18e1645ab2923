package source

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/battlewithbytes/cs2-posts/internal/post"
)

// Load reads a data file. The file must already exist and declare its array.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrDestinationNotFound, path)
		}
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}

// Save replaces the data file with content through a temp file in the same
// directory, keeping the file's permissions.
func Save(path, content string) error {
	perm := os.FileMode(0644)
	if info, err := os.Stat(path); err == nil {
		perm = info.Mode().Perm()
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.WriteString(content); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// Plan is a computed merge that has not been written yet.
type Plan struct {
	Path     string
	Content  string
	Replaced bool
}

// PlanMerge reads the data file at path and computes the result of merging
// p into it without touching the file.
func PlanMerge(path string, p post.Post) (*Plan, error) {
	text, err := Load(path)
	if err != nil {
		return nil, err
	}
	out, replaced, err := Merge(text, p)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	return &Plan{Path: path, Content: out, Replaced: replaced}, nil
}

// Commit writes the planned content.
func (pl *Plan) Commit() error {
	return Save(pl.Path, pl.Content)
}

// MergeFile merges p into the data file at path and reports whether an
// existing record was replaced.
func MergeFile(path string, p post.Post) (bool, error) {
	pl, err := PlanMerge(path, p)
	if err != nil {
		return false, err
	}
	if err := pl.Commit(); err != nil {
		return false, err
	}
	return pl.Replaced, nil
}
