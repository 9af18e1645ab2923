// Package naming derives the identifiers used for posts and their images.
package naming

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// IDTimeLayout is the timestamp part of a generated post ID.
const IDTimeLayout = "20060102150405"

// UnknownID names imported images whose archive carries no post ID.
const UnknownID = "unknown"

var (
	disallowed = regexp.MustCompile(`[^\p{L}\p{M}\p{N}_\s\p{Zs}-]`)
	spaces     = regexp.MustCompile(`[\s\p{Zs}]+`)
)

// Slug lower-cases s, drops everything but letters, digits, underscores,
// whitespace and hyphens, and joins the remaining words with single hyphens.
func Slug(s string) string {
	s = disallowed.ReplaceAllString(strings.ToLower(s), "")
	s = spaces.ReplaceAllString(strings.TrimSpace(s), "-")
	return strings.Trim(s, "- ")
}

// BaseName builds the image base name for a new post: the title slug
// followed by each active side and utility tag. Callers pass tags in
// enumeration order so the result does not depend on click order.
func BaseName(title string, sides, utilities []string) string {
	var parts []string
	if s := Slug(title); s != "" {
		parts = append(parts, s)
	}
	for _, tag := range sides {
		parts = append(parts, strings.ToLower(tag))
	}
	for _, tag := range utilities {
		parts = append(parts, strings.ToLower(tag))
	}
	return strings.Join(parts, "-")
}

// CreateImageName names the index-th (1-based) image of a new post,
// keeping the source file's extension as written.
func CreateImageName(base string, index int, src string) string {
	return fmt.Sprintf("%s-%d%s", base, index, filepath.Ext(src))
}

// ImportImageName names the counter-th (1-based) image of a bulk-imported post.
func ImportImageName(postID string, counter int, src string) string {
	if postID == "" {
		postID = UnknownID
	}
	return fmt.Sprintf("%s-%d%s", postID, counter, filepath.Ext(src))
}

// PostID returns "<mapID>-<YYYYMMDDHHMMSS>".
func PostID(mapID string, now time.Time) string {
	return mapID + "-" + now.Format(IDTimeLayout)
}
