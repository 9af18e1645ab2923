package dataset

import (
	"archive/zip"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/battlewithbytes/cs2-posts/internal/archive"
	"github.com/battlewithbytes/cs2-posts/internal/post"
	"github.com/battlewithbytes/cs2-posts/internal/source"
	"github.com/battlewithbytes/cs2-posts/internal/workspace"
)

const emptyDust2 = "import type { MapPost } from './types'\n\nexport const dust2Posts: MapPost[] = []\n"

var fixedNow = time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

func newSite(t *testing.T) *Site {
	t.Helper()
	root := t.TempDir()
	s := &Site{
		PostsDir:  filepath.Join(root, "posts"),
		ImagesDir: filepath.Join(root, "images"),
		Now:       func() time.Time { return fixedNow },
	}
	if err := os.MkdirAll(s.PostsDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(s.DataFile("de_dust2"), []byte(emptyDust2), 0644); err != nil {
		t.Fatal(err)
	}
	return s
}

func writeImage(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(p, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func smokeDraft(t *testing.T) *post.Draft {
	d := post.NewDraft()
	d.MapID = "de_dust2"
	d.Title = "Smoke A from T spawn"
	d.Sides = []string{"T"}
	d.Sites = []string{"A"}
	d.Utilities = []string{"SMOKE"}
	d.Method = []string{"THROW"}
	d.Images = []string{writeImage(t, "img1.png", "png-bytes")}
	return d
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	return string(data)
}

func ids(t *testing.T, s *Site, mapID string) []string {
	t.Helper()
	got, err := source.IDs(readFile(t, s.DataFile(mapID)))
	if err != nil {
		t.Fatal(err)
	}
	return got
}

func TestCreate(t *testing.T) {
	s := newSite(t)
	d := smokeDraft(t)

	c, err := s.Create(d)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if c.ID != "de_dust2-20240102030405" {
		t.Errorf("ID = %q", c.ID)
	}
	if c.BaseName != "smoke-a-from-t-spawn-t-smoke" {
		t.Errorf("BaseName = %q", c.BaseName)
	}
	want := []string{"dust2/smoke-a-from-t-spawn-t-smoke-1.png"}
	if !reflect.DeepEqual(c.Images, want) {
		t.Errorf("Images = %v", c.Images)
	}

	copied := filepath.Join(s.ImagesDir, "dust2", "smoke-a-from-t-spawn-t-smoke-1.png")
	if got := readFile(t, copied); got != "png-bytes" {
		t.Errorf("copied image = %q", got)
	}

	text := readFile(t, s.DataFile("de_dust2"))
	frag := source.Render(post.Post{
		ID:     c.ID,
		MapID:  "de_dust2",
		Title:  "Smoke A from T spawn",
		Images: want,
		Tags:   []string{"T", "A", "SMOKE"},
		Method: []string{"THROW"},
	})
	if !strings.Contains(text, frag) {
		t.Errorf("data file missing fragment:\n%s", text)
	}
	if !strings.HasPrefix(text, "import type { MapPost } from './types'\n\nexport const dust2Posts: MapPost[] = [\n") {
		t.Errorf("header changed:\n%s", text)
	}
}

func TestCreateStepsPastTakenID(t *testing.T) {
	s := newSite(t)
	first, err := s.Create(smokeDraft(t))
	if err != nil {
		t.Fatal(err)
	}
	second, err := s.Create(smokeDraft(t))
	if err != nil {
		t.Fatal(err)
	}
	if first.ID == second.ID {
		t.Fatalf("duplicate ID %q", first.ID)
	}
	if second.ID != "de_dust2-20240102030406" {
		t.Errorf("second ID = %q", second.ID)
	}
	if got := ids(t, s, "de_dust2"); len(got) != 2 {
		t.Errorf("IDs = %v", got)
	}
}

func TestCreateValidationHasNoSideEffects(t *testing.T) {
	s := newSite(t)
	d := smokeDraft(t)
	d.Images = nil

	_, err := s.Create(d)
	var verr *post.ValidationError
	if !errors.As(err, &verr) || verr.Field != "images" {
		t.Fatalf("expected images validation error, got %v", err)
	}
	if got := readFile(t, s.DataFile("de_dust2")); got != emptyDust2 {
		t.Errorf("data file changed:\n%s", got)
	}
	if _, err := os.Stat(s.ImagesDir); !os.IsNotExist(err) {
		t.Errorf("image directory created: %v", err)
	}
}

func TestCreateDestinationNotFound(t *testing.T) {
	s := newSite(t)
	d := smokeDraft(t)
	d.MapID = "de_nuke"

	_, err := s.Create(d)
	if !errors.Is(err, source.ErrDestinationNotFound) {
		t.Fatalf("expected ErrDestinationNotFound, got %v", err)
	}
	if _, err := os.Stat(s.ImageDir("de_nuke")); !os.IsNotExist(err) {
		t.Errorf("images copied before the merge failed: %v", err)
	}
}

func TestExportImportRoundTrip(t *testing.T) {
	s := newSite(t)
	zipPath := filepath.Join(t.TempDir(), "post.zip")
	if err := s.Export(smokeDraft(t), zipPath); err != nil {
		t.Fatalf("Export: %v", err)
	}

	ws, err := workspace.New("cs2_post_test_")
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Close()

	d := post.NewDraft()
	imp, err := Import(zipPath, ws, d)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if imp.Title != "Smoke A from T spawn" || len(imp.Images) != 1 {
		t.Errorf("Imported = %+v", imp)
	}
	if d.MapID != "de_dust2" || d.Title != "Smoke A from T spawn" {
		t.Errorf("draft = %+v", d)
	}
	if !reflect.DeepEqual(d.Tags(), []string{"T", "A", "SMOKE"}) {
		t.Errorf("Tags = %v", d.Tags())
	}
	if !reflect.DeepEqual(d.Methods(), []string{"THROW"}) {
		t.Errorf("Methods = %v", d.Methods())
	}
	if filepath.Dir(d.Images[0]) != ws.Dir() {
		t.Errorf("image %q not in workspace", d.Images[0])
	}
	if got := readFile(t, d.Images[0]); got != "png-bytes" {
		t.Errorf("image content = %q", got)
	}
	if got := readFile(t, s.DataFile("de_dust2")); got != emptyDust2 {
		t.Error("Import touched the dataset")
	}
}

func TestExportValidationCreatesNothing(t *testing.T) {
	s := newSite(t)
	d := smokeDraft(t)
	d.Title = "   "
	zipPath := filepath.Join(t.TempDir(), "post.zip")

	err := s.Export(d, zipPath)
	if !errors.Is(err, post.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
	if _, err := os.Stat(zipPath); !os.IsNotExist(err) {
		t.Errorf("archive created: %v", err)
	}
}

func exportArchive(t *testing.T, dir, name string, p post.Post) string {
	t.Helper()
	path := filepath.Join(dir, name)
	img := writeImage(t, "shot.jpg", "jpg-"+name)
	if err := archive.EncodeFile(path, p, []string{img}); err != nil {
		t.Fatal(err)
	}
	return path
}

func imagesOnlyArchive(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	w, err := zw.Create("images/image_1.png")
	if err != nil {
		t.Fatal(err)
	}
	w.Write([]byte("png"))
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return path
}

func dust2Post(id, title string) post.Post {
	return post.Post{
		ID:     id,
		MapID:  "de_dust2",
		Title:  title,
		Tags:   []string{"CT", "B"},
		Method: []string{"RUN", "THROW"},
	}
}

func TestBulkImportIsolatesFailures(t *testing.T) {
	s := newSite(t)
	dir := t.TempDir()
	paths := []string{
		exportArchive(t, dir, "a.zip", dust2Post("", "First")),
		imagesOnlyArchive(t, dir, "b.zip"),
		exportArchive(t, dir, "c.zip", dust2Post("", "Third")),
	}

	var observed []string
	res := s.BulkImport(paths, func(path string, err error) {
		observed = append(observed, filepath.Base(path))
	})

	if res.Imported != 2 || res.Replaced != 0 {
		t.Errorf("Imported = %d, Replaced = %d", res.Imported, res.Replaced)
	}
	if len(res.Failures) != 1 || res.Failures[0].Archive != "b.zip" {
		t.Fatalf("Failures = %v", res.Failures)
	}
	if !errors.Is(res.Failures[0].Err, archive.ErrMalformedArchive) {
		t.Errorf("failure error = %v", res.Failures[0].Err)
	}
	if !reflect.DeepEqual(observed, []string{"a.zip", "b.zip", "c.zip"}) {
		t.Errorf("observed = %v", observed)
	}

	want := []string{"de_dust2-20240102030405", "de_dust2-20240102030406"}
	if got := ids(t, s, "de_dust2"); !reflect.DeepEqual(got, want) {
		t.Errorf("IDs = %v, want %v", got, want)
	}
	img := filepath.Join(s.ImageDir("de_dust2"), "de_dust2-20240102030406-1.jpg")
	if got := readFile(t, img); got != "jpg-c.zip" {
		t.Errorf("image content = %q", got)
	}
}

func TestBulkImportReplacesByID(t *testing.T) {
	s := newSite(t)
	dir := t.TempDir()

	res := s.BulkImport([]string{exportArchive(t, dir, "old.zip", dust2Post("de_dust2-1", "Old title"))}, nil)
	if res.Imported != 1 || len(res.Failures) != 0 {
		t.Fatalf("first run = %+v", res)
	}
	res = s.BulkImport([]string{exportArchive(t, dir, "new.zip", dust2Post("de_dust2-1", "New title"))}, nil)
	if res.Imported != 1 || res.Replaced != 1 {
		t.Fatalf("second run = %+v", res)
	}

	text := readFile(t, s.DataFile("de_dust2"))
	if strings.Contains(text, "Old title") || !strings.Contains(text, "New title") {
		t.Errorf("record not replaced:\n%s", text)
	}
	if got := ids(t, s, "de_dust2"); !reflect.DeepEqual(got, []string{"de_dust2-1"}) {
		t.Errorf("IDs = %v", got)
	}
	if !strings.Contains(text, "images: ['dust2/de_dust2-1-1.jpg']") {
		t.Errorf("image path not renamed:\n%s", text)
	}
}

func TestBulkImportMissingDestination(t *testing.T) {
	s := newSite(t)
	p := dust2Post("de_mirage-7", "Palace")
	p.MapID = "de_mirage"

	res := s.BulkImport([]string{exportArchive(t, t.TempDir(), "m.zip", p)}, nil)
	if res.Imported != 0 || len(res.Failures) != 1 {
		t.Fatalf("result = %+v", res)
	}
	if !errors.Is(res.Failures[0].Err, source.ErrDestinationNotFound) {
		t.Errorf("error = %v", res.Failures[0].Err)
	}
	if _, err := os.Stat(s.ImageDir("de_mirage")); !os.IsNotExist(err) {
		t.Errorf("images written for a failed archive: %v", err)
	}
}

func TestBulkImportInvalidRecord(t *testing.T) {
	s := newSite(t)
	p := dust2Post("", "No method")
	p.Method = nil

	res := s.BulkImport([]string{exportArchive(t, t.TempDir(), "bad.zip", p)}, nil)
	if len(res.Failures) != 1 || !errors.Is(res.Failures[0].Err, post.ErrValidation) {
		t.Fatalf("result = %+v", res)
	}
	if got := readFile(t, s.DataFile("de_dust2")); got != emptyDust2 {
		t.Error("data file changed")
	}
}

func TestCreateMissingSourceLeavesNoImages(t *testing.T) {
	s := newSite(t)
	d := smokeDraft(t)
	d.Images = append(d.Images, filepath.Join(t.TempDir(), "missing.png"))

	_, err := s.Create(d)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("expected a not-exist error, got %v", err)
	}
	entries, _ := os.ReadDir(s.ImageDir("de_dust2"))
	if len(entries) != 0 {
		t.Errorf("images left behind: %v", entries)
	}
	if got := readFile(t, s.DataFile("de_dust2")); got != emptyDust2 {
		t.Error("data file changed")
	}
}

func TestBulkImportRejectsEscapingID(t *testing.T) {
	s := newSite(t)
	res := s.BulkImport([]string{exportArchive(t, t.TempDir(), "evil.zip", dust2Post("../../../escaped", "Escape"))}, nil)

	if res.Imported != 0 || len(res.Failures) != 1 {
		t.Fatalf("result = %+v", res)
	}
	var verr *post.ValidationError
	if !errors.As(res.Failures[0].Err, &verr) || verr.Field != "id" {
		t.Errorf("expected id validation error, got %v", res.Failures[0].Err)
	}
	outside := filepath.Join(s.ImageDir("de_dust2"), "..", "..", "..", "escaped-1.jpg")
	if _, err := os.Stat(outside); !os.IsNotExist(err) {
		t.Errorf("file written outside the image directory: %v", err)
	}
	if got := readFile(t, s.DataFile("de_dust2")); got != emptyDust2 {
		t.Error("data file changed")
	}
}

func TestWithin(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "images", "dust2")
	if p, err := within(dir, "de_dust2-1-1.png"); err != nil || p != filepath.Join(dir, "de_dust2-1-1.png") {
		t.Errorf("within = %q, %v", p, err)
	}
	for _, name := range []string{"../x.png", "../../x.png", "sub/x.png", "..", ""} {
		if _, err := within(dir, name); err == nil {
			t.Errorf("within(%q) accepted", name)
		}
	}
}

func TestImportKeepsSameNamedEntriesApart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested.zip")
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	zw := zip.NewWriter(f)
	entries := []struct{ name, body string }{
		{"post.json", `{"mapId":"de_dust2","title":"Nested","tags":["T"],"method":["THROW"]}`},
		{"images/a/1.png", "first"},
		{"images/b/1.png", "second"},
	}
	for _, e := range entries {
		w, err := zw.Create(e.name)
		if err != nil {
			t.Fatal(err)
		}
		w.Write([]byte(e.body))
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}

	ws, err := workspace.New("cs2_post_test_")
	if err != nil {
		t.Fatal(err)
	}
	defer ws.Close()

	d := post.NewDraft()
	if _, err := Import(path, ws, d); err != nil {
		t.Fatalf("Import: %v", err)
	}
	if len(d.Images) != 2 || d.Images[0] == d.Images[1] {
		t.Fatalf("Images = %v", d.Images)
	}
	if readFile(t, d.Images[0]) != "first" || readFile(t, d.Images[1]) != "second" {
		t.Error("workspace images overwrote each other")
	}
}
