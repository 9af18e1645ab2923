// Package source patches the per-map TypeScript data files that hold the
// site's posts. Edits are textual: every byte outside the touched record is
// kept as it was.
package source

import (
	"errors"
	"fmt"
	"strings"

	"github.com/battlewithbytes/cs2-posts/internal/post"
)

// EmptyArrayMarker is how a data file with no posts declares its array.
const EmptyArrayMarker = "= []"

var (
	ErrMalformedDestination = errors.New("malformed destination file")
	ErrDestinationNotFound  = errors.New("destination file not found")
	ErrIDNotFound           = errors.New("post id not found")
)

// Insert appends fragment as the last element of the file's array.
func Insert(text, fragment string) (string, error) {
	if strings.Contains(text, EmptyArrayMarker) {
		return strings.Replace(text, EmptyArrayMarker, "= [\n"+fragment+"\n]", 1), nil
	}

	lines := strings.Split(text, "\n")
	for i := len(lines) - 1; i >= 0; i-- {
		if strings.TrimSpace(lines[i]) != "]" {
			continue
		}
		out := make([]string, 0, len(lines)+1)
		out = append(out, lines[:i]...)
		out = append(out, fragment)
		out = append(out, lines[i:]...)
		return strings.Join(out, "\n"), nil
	}
	return "", fmt.Errorf("%w: no closing ']' line for the posts array", ErrMalformedDestination)
}

// Replace swaps the record whose id property is id for fragment. The span
// replaced starts at the record's line when only indentation precedes its
// '{' and ends after its trailing comma.
func Replace(text, id, fragment string) (string, error) {
	l, err := parseLayout(text)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedDestination, err)
	}

	for _, r := range l.records {
		if !r.hasID || r.id != id {
			continue
		}
		start := r.start
		lineStart := strings.LastIndexByte(text[:start], '\n') + 1
		if strings.TrimSpace(text[lineStart:start]) == "" {
			start = lineStart
		}
		return text[:start] + fragment + text[r.comma:], nil
	}

	if l.strings[id] {
		return "", fmt.Errorf("%w: %q appears in the file but no post record has it as its id", ErrMalformedDestination, id)
	}
	return "", fmt.Errorf("%w: %s", ErrIDNotFound, id)
}

// HasID reports whether a record in the file's array has the given id.
func HasID(text, id string) (bool, error) {
	l, err := parseLayout(text)
	if err != nil {
		return false, fmt.Errorf("%w: %v", ErrMalformedDestination, err)
	}
	for _, r := range l.records {
		if r.hasID && r.id == id {
			return true, nil
		}
	}
	return false, nil
}

// IDs lists the ids of the file's records in array order.
func IDs(text string) ([]string, error) {
	l, err := parseLayout(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDestination, err)
	}
	ids := make([]string, 0, len(l.records))
	for _, r := range l.records {
		if r.hasID {
			ids = append(ids, r.id)
		}
	}
	return ids, nil
}

// Merge replaces the record with p's id when it exists and appends p
// otherwise.
func Merge(text string, p post.Post) (out string, replaced bool, err error) {
	fragment := Render(p)
	out, err = Replace(text, p.ID, fragment)
	switch {
	case err == nil:
		return out, true, nil
	case errors.Is(err, ErrIDNotFound):
		out, err = Insert(text, fragment)
		return out, false, err
	default:
		return "", false, err
	}
}
