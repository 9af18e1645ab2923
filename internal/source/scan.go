package source

import (
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"
)

type tokenKind int

const (
	tokPunct tokenKind = iota
	tokWord            // identifiers, keywords and numbers
	tokString
)

type token struct {
	kind  tokenKind
	text  string // punct char, word, or unescaped string value
	start int
	end   int
}

// tokenize splits TypeScript-ish source into punctuation, words and string
// literals, dropping whitespace and comments. Template literals are read as
// plain strings; `${}` substitutions are not interpreted.
func tokenize(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v':
			i++
		case c == '/' && i+1 < len(src) && src[i+1] == '/':
			nl := strings.IndexByte(src[i:], '\n')
			if nl < 0 {
				i = len(src)
			} else {
				i += nl + 1
			}
		case c == '/' && i+1 < len(src) && src[i+1] == '*':
			end := strings.Index(src[i+2:], "*/")
			if end < 0 {
				return nil, fmt.Errorf("unterminated comment at offset %d", i)
			}
			i += 2 + end + 2
		case c == '\'' || c == '"' || c == '`':
			value, end, err := readString(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokString, text: value, start: i, end: end})
			i = end
		case isWordByte(c):
			j := i
			for j < len(src) && isWordByte(src[j]) {
				j++
			}
			toks = append(toks, token{kind: tokWord, text: src[i:j], start: i, end: j})
			i = j
		default:
			_, size := utf8.DecodeRuneInString(src[i:])
			toks = append(toks, token{kind: tokPunct, text: src[i : i+size], start: i, end: i + size})
			i += size
		}
	}
	return toks, nil
}

func isWordByte(c byte) bool {
	return c == '_' || c == '$' || c == '.' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') ||
		c >= utf8.RuneSelf
}

// readString reads the literal opening at src[start] and returns its
// unescaped value and the offset just past the closing quote.
func readString(src string, start int) (string, int, error) {
	quote := src[start]
	var b strings.Builder
	i := start + 1
	for i < len(src) {
		c := src[i]
		switch {
		case c == quote:
			return b.String(), i + 1, nil
		case c == '\\':
			if i+1 >= len(src) {
				return "", 0, fmt.Errorf("unterminated string at offset %d", start)
			}
			n, consumed := unescape(src[i+1:])
			b.WriteString(n)
			i += 1 + consumed
		case (c == '\n' || c == '\r') && quote != '`':
			return "", 0, fmt.Errorf("line break in string at offset %d", start)
		default:
			b.WriteByte(c)
			i++
		}
	}
	return "", 0, fmt.Errorf("unterminated string at offset %d", start)
}

// unescape decodes the escape sequence following a backslash and reports
// how many bytes it used.
func unescape(s string) (string, int) {
	switch s[0] {
	case 'n':
		return "\n", 1
	case 'r':
		return "\r", 1
	case 't':
		return "\t", 1
	case 'b':
		return "\b", 1
	case 'f':
		return "\f", 1
	case 'v':
		return "\v", 1
	case '0':
		return "\x00", 1
	case '\r':
		if len(s) > 1 && s[1] == '\n' {
			return "", 2
		}
		return "", 1
	case '\n':
		return "", 1
	case 'u':
		if len(s) >= 5 {
			if n, err := strconv.ParseUint(s[1:5], 16, 32); err == nil {
				return string(rune(n)), 5
			}
		}
	case 'x':
		if len(s) >= 3 {
			if n, err := strconv.ParseUint(s[1:3], 16, 8); err == nil {
				return string(rune(n)), 3
			}
		}
	}
	_, size := utf8.DecodeRuneInString(s)
	return s[:size], size
}

// record is one object literal directly inside the posts array.
type record struct {
	start int // offset of '{'
	end   int // offset just past '}'
	comma int // offset just past a trailing ',', or end when there is none
	id    string
	hasID bool
}

// layout is the structure of a data file's posts array.
type layout struct {
	open    int // offset of '['
	close   int // offset of the matching ']'
	records []record
	strings map[string]bool // every string literal value in the file
}

var closers = map[string]string{"{": "}", "[": "]", "(": ")"}

// parseLayout finds the first `= [` array in src and the records in it.
func parseLayout(src string) (*layout, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}

	l := &layout{open: -1, strings: map[string]bool{}}
	for _, t := range toks {
		if t.kind == tokString {
			l.strings[t.text] = true
		}
	}

	first := -1
	for i := 0; i+1 < len(toks); i++ {
		if toks[i].kind == tokPunct && toks[i].text == "=" &&
			toks[i+1].kind == tokPunct && toks[i+1].text == "[" {
			first = i + 1
			break
		}
	}
	if first < 0 {
		return nil, fmt.Errorf("no array literal found")
	}
	l.open = toks[first].start

	var stack []string
	var cur *record
	for i := first; i < len(toks); i++ {
		t := toks[i]
		if t.kind == tokPunct {
			if want, ok := closers[t.text]; ok {
				if len(stack) == 1 && t.text == "{" {
					cur = &record{start: t.start}
				}
				stack = append(stack, want)
				continue
			}
			if t.text == "}" || t.text == "]" || t.text == ")" {
				if len(stack) == 0 || stack[len(stack)-1] != t.text {
					return nil, fmt.Errorf("unbalanced %q at offset %d", t.text, t.start)
				}
				stack = stack[:len(stack)-1]
				switch {
				case len(stack) == 0:
					l.close = t.start
					return l, nil
				case len(stack) == 1 && cur != nil:
					cur.end = t.end
					cur.comma = t.end
					if i+1 < len(toks) && toks[i+1].kind == tokPunct && toks[i+1].text == "," {
						cur.comma = toks[i+1].end
					}
					l.records = append(l.records, *cur)
					cur = nil
				}
				continue
			}
		}

		// A property key sits directly inside a record: depth 2.
		if cur != nil && len(stack) == 2 && !cur.hasID && isIDKey(toks, i) {
			if i+2 < len(toks) && toks[i+2].kind == tokString {
				cur.id = toks[i+2].text
				cur.hasID = true
			}
		}
	}
	return nil, fmt.Errorf("array opened at offset %d is never closed", l.open)
}

// isIDKey reports whether toks[i] is an `id` key followed by a colon.
func isIDKey(toks []token, i int) bool {
	t := toks[i]
	if t.text != "id" || (t.kind != tokWord && t.kind != tokString) {
		return false
	}
	if i+1 >= len(toks) || toks[i+1].kind != tokPunct || toks[i+1].text != ":" {
		return false
	}
	// Keys follow '{' or ','; anything else is a value that happens to be "id".
	if i == 0 || toks[i-1].kind != tokPunct {
		return false
	}
	prev := toks[i-1].text
	return prev == "{" || prev == ","
}
