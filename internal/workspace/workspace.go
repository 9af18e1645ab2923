// Package workspace owns the temporary directory an interactive session
// keeps imported images in.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// Workspace is a temporary directory removed by Close.
type Workspace struct {
	dir  string
	once sync.Once
	err  error
}

// New creates a fresh directory under the system temp dir.
func New(prefix string) (*Workspace, error) {
	dir, err := os.MkdirTemp("", prefix)
	if err != nil {
		return nil, fmt.Errorf("creating workspace: %w", err)
	}
	return &Workspace{dir: dir}, nil
}

// Dir returns the workspace directory.
func (w *Workspace) Dir() string { return w.dir }

// Path returns the path of name inside the workspace.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, filepath.Base(name))
}

// WriteFile stores data under name and returns its path.
func (w *Workspace) WriteFile(name string, data []byte) (string, error) {
	p := w.Path(name)
	if err := os.WriteFile(p, data, 0644); err != nil {
		return "", fmt.Errorf("writing %s to workspace: %w", name, err)
	}
	return p, nil
}

// Close removes the directory and everything in it. Later calls return
// the result of the first.
func (w *Workspace) Close() error {
	w.once.Do(func() {
		if err := os.RemoveAll(w.dir); err != nil {
			w.err = fmt.Errorf("removing workspace: %w", err)
		}
	})
	return w.err
}
