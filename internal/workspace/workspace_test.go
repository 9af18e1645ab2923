package workspace

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWorkspaceLifecycle(t *testing.T) {
	ws, err := New("cs2_post_test_")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(filepath.Base(ws.Dir()), "cs2_post_test_") {
		t.Errorf("dir %q missing prefix", ws.Dir())
	}

	p, err := ws.WriteFile("../escape/image_1.png", []byte("png"))
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Dir(p) != ws.Dir() {
		t.Errorf("file written outside workspace: %s", p)
	}

	if err := ws.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(ws.Dir()); !os.IsNotExist(err) {
		t.Errorf("workspace still exists: %v", err)
	}
	if err := ws.Close(); err != nil {
		t.Errorf("second Close = %v", err)
	}
}
