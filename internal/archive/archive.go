// Package archive reads and writes portable post archives: a zip holding a
// post.json manifest and the post's images under images/.
package archive

import (
	"archive/zip"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/battlewithbytes/cs2-posts/internal/post"
)

// Image is one image entry read back from an archive.
type Image struct {
	Name string // base name inside images/
	Data []byte
}

// Decoded is the content of an archive.
type Decoded struct {
	Post   post.Post
	Images []Image // display order
}

// DefaultName is the suggested file name when exporting a post.
func DefaultName(title string) string {
	return "cs2-post-" + strings.ToLower(strings.ReplaceAll(strings.TrimSpace(title), " ", "-")) + ".zip"
}

// entryName is the archive name of the index-th (1-based) image.
func entryName(index int, src string) string {
	return fmt.Sprintf("%simage_%d%s", ImagesPrefix, index, filepath.Ext(src))
}

// Encode writes p and the files at imagePaths, in order, as a zip archive.
func Encode(w io.Writer, p post.Post, imagePaths []string) error {
	if len(imagePaths) == 0 {
		return ErrNoImages
	}

	names := make([]string, len(imagePaths))
	for i, src := range imagePaths {
		names[i] = filepath.Base(src)
	}
	data, err := json.MarshalIndent(manifestFor(p, names), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling manifest: %w", err)
	}

	zw := zip.NewWriter(w)
	mw, err := zw.CreateHeader(&zip.FileHeader{Name: ManifestName, Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("writing %s: %w", ManifestName, err)
	}
	if _, err := mw.Write(data); err != nil {
		return fmt.Errorf("writing %s: %w", ManifestName, err)
	}

	for i, src := range imagePaths {
		if err := addFile(zw, src, entryName(i+1, src)); err != nil {
			return err
		}
	}
	return zw.Close()
}

// EncodeFile writes the archive to dest. A partially written file is
// removed on failure.
func EncodeFile(dest string, p post.Post, imagePaths []string) (err error) {
	f, err := os.Create(dest)
	if err != nil {
		return fmt.Errorf("creating archive: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing archive: %w", cerr)
		}
		if err != nil {
			os.Remove(dest)
		}
	}()
	return Encode(f, p, imagePaths)
}

func addFile(zw *zip.Writer, src, name string) error {
	file, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("reading image: %w", err)
	}
	header, err := zip.FileInfoHeader(info)
	if err != nil {
		return fmt.Errorf("archiving %s: %w", src, err)
	}
	header.Name = name
	header.Method = zip.Deflate

	writer, err := zw.CreateHeader(header)
	if err != nil {
		return fmt.Errorf("archiving %s: %w", src, err)
	}
	if _, err := io.Copy(writer, file); err != nil {
		return fmt.Errorf("archiving %s: %w", src, err)
	}
	return nil
}

// Decode reads an archive of the given size.
func Decode(r io.ReaderAt, size int64) (*Decoded, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedArchive, err)
	}
	return decode(zr)
}

// DecodeFile reads the archive at path.
func DecodeFile(path string) (*Decoded, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	return Decode(f, info.Size())
}

func decode(zr *zip.Reader) (*Decoded, error) {
	var manifestFile *zip.File
	var imageFiles []*zip.File
	for _, f := range zr.File {
		switch {
		case f.Name == ManifestName:
			manifestFile = f
		case strings.HasPrefix(f.Name, ImagesPrefix) && !f.FileInfo().IsDir():
			imageFiles = append(imageFiles, f)
		}
	}
	if manifestFile == nil {
		return nil, fmt.Errorf("%w: %s not found", ErrMalformedArchive, ManifestName)
	}

	data, err := readEntry(manifestFile)
	if err != nil {
		return nil, err
	}
	m, err := parseManifest(data)
	if err != nil {
		return nil, err
	}

	if len(imageFiles) == 0 {
		return nil, ErrNoImages
	}
	sort.SliceStable(imageFiles, func(i, j int) bool {
		return imageLess(imageFiles[i].Name, imageFiles[j].Name)
	})

	out := &Decoded{Post: m.post()}
	for _, f := range imageFiles {
		data, err := readEntry(f)
		if err != nil {
			return nil, err
		}
		out.Images = append(out.Images, Image{Name: path.Base(f.Name), Data: data})
	}

	if len(out.Post.Images) != len(out.Images) {
		names := make([]string, len(out.Images))
		for i, img := range out.Images {
			names[i] = img.Name
		}
		out.Post.Images = names
	}
	return out, nil
}

func readEntry(f *zip.File) ([]byte, error) {
	rc, err := f.Open()
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", ErrMalformedArchive, f.Name, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("%w: reading %s: %v", ErrMalformedArchive, f.Name, err)
	}
	return data, nil
}

// imageLess orders entries by name, comparing the numeric part of
// image_<n> names as numbers so image_10 sorts after image_9.
func imageLess(a, b string) bool {
	ia, aok := imageIndex(a)
	ib, bok := imageIndex(b)
	switch {
	case aok && bok && ia != ib:
		return ia < ib
	case aok != bok:
		return aok
	}
	return a < b
}

func imageIndex(name string) (int, bool) {
	base := path.Base(name)
	base = strings.TrimSuffix(base, path.Ext(base))
	n, err := strconv.Atoi(strings.TrimPrefix(base, "image_"))
	if err != nil || !strings.HasPrefix(base, "image_") {
		return 0, false
	}
	return n, true
}
