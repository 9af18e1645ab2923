package archive

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/battlewithbytes/cs2-posts/internal/post"
)

// Entry names inside a post archive.
const (
	ManifestName = "post.json"
	ImagesPrefix = "images/"
)

var (
	ErrMalformedArchive = errors.New("malformed archive")
	ErrMissingField     = errors.New("missing manifest field")
	ErrNoImages         = errors.New("archive contains no images")
)

// MissingFieldError names the required manifest key that was absent.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("%s does not contain the field %q", ManifestName, e.Field)
}

func (e *MissingFieldError) Is(target error) bool { return target == ErrMissingField }

// requiredFields must be present as keys in every manifest.
var requiredFields = []string{"mapId", "title", "tags", "method"}

// Manifest is the JSON document stored as post.json.
type Manifest struct {
	ID         string   `json:"id,omitempty"`
	MapID      string   `json:"mapId"`
	Title      string   `json:"title"`
	Tags       []string `json:"tags"`
	Method     []string `json:"method"`
	Tip        string   `json:"tip,omitempty"`
	ImageCount int      `json:"imageCount,omitempty"`
	Images     []string `json:"images,omitempty"`
}

func manifestFor(p post.Post, imageNames []string) Manifest {
	return Manifest{
		ID:         p.ID,
		MapID:      p.MapID,
		Title:      p.Title,
		Tags:       nonNil(p.Tags),
		Method:     nonNil(p.Method),
		Tip:        p.Tip,
		ImageCount: len(imageNames),
		Images:     imageNames,
	}
}

// parseManifest decodes post.json and checks the required keys are present.
func parseManifest(data []byte) (*Manifest, error) {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrMalformedArchive, ManifestName, err)
	}
	for _, field := range requiredFields {
		if _, ok := raw[field]; !ok {
			return nil, &MissingFieldError{Field: field}
		}
	}

	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %v", ErrMalformedArchive, ManifestName, err)
	}
	m.ID = strings.TrimSpace(m.ID)
	return &m, nil
}

func (m *Manifest) post() post.Post {
	return post.Post{
		ID:     m.ID,
		MapID:  m.MapID,
		Title:  m.Title,
		Images: m.Images,
		Tags:   m.Tags,
		Method: m.Method,
		Tip:    m.Tip,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
