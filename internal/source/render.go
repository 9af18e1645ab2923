package source

import (
	"strings"

	"github.com/battlewithbytes/cs2-posts/internal/post"
)

var quoteReplacer = strings.NewReplacer(
	`\`, `\\`,
	`'`, `\'`,
	"\n", `\n`,
	"\r", `\r`,
	"\t", `\t`,
	"\u2028", `\u2028`,
	"\u2029", `\u2029`,
)

// Quote renders s as a single-quoted TypeScript string literal.
func Quote(s string) string {
	return "'" + quoteReplacer.Replace(s) + "'"
}

func quoteList(items []string) string {
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = Quote(s)
	}
	return "[" + strings.Join(quoted, ", ") + "]"
}

// Render formats p as one element of a MapPost[] literal, trailing comma
// included and no trailing newline.
func Render(p post.Post) string {
	var b strings.Builder
	b.WriteString("  {\n")
	b.WriteString("    id: " + Quote(p.ID) + ",\n")
	b.WriteString("    mapId: " + Quote(p.MapID) + ",\n")
	b.WriteString("    title: " + Quote(p.Title) + ",\n")
	b.WriteString("    images: " + quoteList(p.Images) + ",\n")
	b.WriteString("    tags: " + quoteList(p.Tags) + ",\n")
	b.WriteString("    method: " + quoteList(p.Method) + ",\n")
	if p.Tip != "" {
		b.WriteString("    tip: " + Quote(p.Tip) + ",\n")
	}
	b.WriteString("  },")
	return b.String()
}
