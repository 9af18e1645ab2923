package creator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/battlewithbytes/cs2-posts/internal/archive"
)

// Form actions.
const (
	ActionCreate = "create"
	ActionExport = "export"
	ActionCancel = "cancel"
)

// imageExts are the file types accepted as post images.
var imageExts = []string{".png", ".jpg", ".jpeg", ".webp"}

// Answers holds the form values that are not part of the draft.
// Images are typed as text because huh.Text binds to *string.
type Answers struct {
	ImagesText  string // one path per line
	Action      string
	ArchivePath string
	Again       bool
}

// ParseImageList splits the images field into paths, dropping blank lines
// and the quotes terminals add around dropped files.
func ParseImageList(text string) []string {
	var paths []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		line = strings.Trim(line, `"'`)
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths
}

// ValidateImageList returns nil if text names at least one existing image.
func ValidateImageList(text string) error {
	paths := ParseImageList(text)
	if len(paths) == 0 {
		return fmt.Errorf("add at least one image")
	}
	for _, p := range paths {
		if !isImage(p) {
			return fmt.Errorf("%s: not a png, jpg or webp image", filepath.Base(p))
		}
		info, err := os.Stat(p)
		if err != nil {
			return fmt.Errorf("%s: file not found", p)
		}
		if info.IsDir() {
			return fmt.Errorf("%s is a directory", p)
		}
	}
	return nil
}

// ValidateTitle returns nil if s has visible characters.
func ValidateTitle(s string) error {
	if strings.TrimSpace(s) == "" {
		return fmt.Errorf("title cannot be empty")
	}
	return nil
}

// archivePath returns the export destination, defaulting to a name built
// from the title and adding the .zip extension when missing.
func (a *Answers) archivePath(title string) string {
	p := strings.TrimSpace(a.ArchivePath)
	if p == "" {
		return archive.DefaultName(title)
	}
	if !strings.EqualFold(filepath.Ext(p), ".zip") {
		p += ".zip"
	}
	return p
}

func isImage(p string) bool {
	ext := strings.ToLower(filepath.Ext(p))
	for _, e := range imageExts {
		if ext == e {
			return true
		}
	}
	return false
}
