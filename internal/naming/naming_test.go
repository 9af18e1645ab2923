package naming

import (
	"strings"
	"testing"
	"time"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"MID DOORS", "mid-doors"},
		{"  Short  Pushed ", "short-pushed"},
		{"Site (for) short!", "site-for-short"},
		{"B-doors", "b-doors"},
		{"caseta_rush", "caseta_rush"},
		{"Rampa Ñandú", "rampa-ñandú"},
		{"tab\tand\nnewline", "tab-and-newline"},
		{"-- edge --", "edge"},
		{"!!!", ""},
	}
	for _, tt := range tests {
		if got := Slug(tt.in); got != tt.want {
			t.Errorf("Slug(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBaseName(t *testing.T) {
	got := BaseName("Smoke A from T spawn", []string{"T"}, []string{"SMOKE"})
	if got != "smoke-a-from-t-spawn-t-smoke" {
		t.Errorf("BaseName = %q", got)
	}
}

func TestBaseNameDeterministic(t *testing.T) {
	a := BaseName("Red Outside Peek", []string{"CT", "T"}, []string{"SMOKE", "FLASH"})
	b := BaseName("Red Outside Peek", []string{"CT", "T"}, []string{"SMOKE", "FLASH"})
	if a != b {
		t.Fatalf("BaseName not deterministic: %q vs %q", a, b)
	}
}

func TestBaseNameTagsOnlyChangeSuffix(t *testing.T) {
	prefix := Slug("Garage")
	for _, tags := range [][2][]string{
		{nil, nil},
		{{"T"}, nil},
		{{"CT"}, {"MOLO", "NADE"}},
	} {
		got := BaseName("Garage", tags[0], tags[1])
		if !strings.HasPrefix(got, prefix) {
			t.Errorf("BaseName(%v) = %q, want prefix %q", tags, got, prefix)
		}
	}
}

func TestBaseNameEmptyTitle(t *testing.T) {
	if got := BaseName("???", []string{"T"}, []string{"SMOKE"}); got != "t-smoke" {
		t.Errorf("BaseName = %q, want t-smoke", got)
	}
}

func TestImageNames(t *testing.T) {
	if got := CreateImageName("garage-t-smoke", 2, "/home/me/Shot.JPG"); got != "garage-t-smoke-2.JPG" {
		t.Errorf("CreateImageName = %q", got)
	}
	if got := ImportImageName("de_nuke-20260210130655", 1, "image_1.png"); got != "de_nuke-20260210130655-1.png" {
		t.Errorf("ImportImageName = %q", got)
	}
	if got := ImportImageName("", 3, "image_3.webp"); got != "unknown-3.webp" {
		t.Errorf("ImportImageName fallback = %q", got)
	}
}

func TestPostID(t *testing.T) {
	now := time.Date(2026, 2, 10, 12, 26, 45, 0, time.Local)
	if got := PostID("de_dust2", now); got != "de_dust2-20260210122645" {
		t.Errorf("PostID = %q", got)
	}
}
