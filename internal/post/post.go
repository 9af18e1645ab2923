package post

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// MapPrefix is stripped from a map ID to form its short name.
const MapPrefix = "de_"

// Fixed enumerations. Their order is significant: tags and method
// components are always emitted in this order, never in selection order.
var (
	Maps = []string{
		"de_ancient",
		"de_anubis",
		"de_dust2",
		"de_inferno",
		"de_mirage",
		"de_nuke",
		"de_overpass",
	}

	Sides            = []string{"CT", "T"}
	Sites            = []string{"A", "MID", "B"}
	Utilities        = []string{"SMOKE", "MOLO", "FLASH", "NADE"}
	MethodComponents = []string{"THROW", "DOUBLE", "JUMP", "CROUCH", "WALK", "RUN"}
)

// Post is one documented technique as stored in a per-map data file.
type Post struct {
	ID     string
	MapID  string
	Title  string
	Images []string // <short>/<file>, display order
	Tags   []string
	Method []string
	Tip    string
}

// validID is the shape of a post ID. IDs name image files, so path
// separators and dots are never allowed.
var validID = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

// ErrValidation is matched by every *ValidationError.
var ErrValidation = errors.New("validation failed")

// ValidationError reports the first missing or invalid field of a post.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("%s is required", e.Field)
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// IsMap reports whether id is one of the known maps.
func IsMap(id string) bool {
	return contains(Maps, id)
}

// ShortName strips the map prefix: "de_dust2" -> "dust2".
func ShortName(mapID string) string {
	return strings.TrimPrefix(mapID, MapPrefix)
}

// Validate checks a record decoded from an archive. Images are checked by
// whoever owns the image data. An empty ID is allowed and means one is
// generated on import.
func (p Post) Validate() error {
	if p.ID != "" && !validID.MatchString(p.ID) {
		return &ValidationError{Field: "id", Reason: fmt.Sprintf("invalid id %q", p.ID)}
	}
	if !IsMap(p.MapID) {
		return &ValidationError{Field: "mapId", Reason: fmt.Sprintf("unknown map %q", p.MapID)}
	}
	if strings.TrimSpace(p.Title) == "" {
		return &ValidationError{Field: "title"}
	}
	if len(p.Tags) == 0 {
		return &ValidationError{Field: "tags", Reason: "at least one tag is required"}
	}
	if len(p.Method) == 0 {
		return &ValidationError{Field: "method", Reason: "at least one method component is required"}
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// ordered returns the members of enum that appear in selected, in enum order.
func ordered(enum, selected []string) []string {
	var out []string
	for _, v := range enum {
		if contains(selected, v) {
			out = append(out, v)
		}
	}
	return out
}
