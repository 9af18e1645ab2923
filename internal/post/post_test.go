package post

import (
	"errors"
	"reflect"
	"testing"
)

func validDraft() *Draft {
	return &Draft{
		MapID:     "de_dust2",
		Title:     "Smoke A from T spawn",
		Sides:     []string{"T"},
		Sites:     []string{"A"},
		Utilities: []string{"SMOKE"},
		Method:    []string{"THROW"},
		Images:    []string{"/tmp/img1.png"},
	}
}

func TestShortName(t *testing.T) {
	if got := ShortName("de_dust2"); got != "dust2" {
		t.Errorf("ShortName = %q, want dust2", got)
	}
	if got := ShortName("cs_office"); got != "cs_office" {
		t.Errorf("ShortName = %q, want cs_office unchanged", got)
	}
}

func TestDraftValidateValid(t *testing.T) {
	if err := validDraft().Validate(); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
}

func TestDraftValidateMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		edit  func(d *Draft)
		field string
	}{
		{"no images", func(d *Draft) { d.Images = nil }, "images"},
		{"blank title", func(d *Draft) { d.Title = "   " }, "title"},
		{"no method", func(d *Draft) { d.Method = nil }, "method"},
		{"unknown method only", func(d *Draft) { d.Method = []string{"CRAWL"} }, "method"},
		{"no tags", func(d *Draft) { d.Sides, d.Sites, d.Utilities = nil, nil, nil }, "tags"},
		{"unknown map", func(d *Draft) { d.MapID = "de_vertigo" }, "mapId"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := validDraft()
			tt.edit(d)
			err := d.Validate()
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %v", err)
			}
			if ve.Field != tt.field {
				t.Errorf("field = %q, want %q", ve.Field, tt.field)
			}
			if !errors.Is(err, ErrValidation) {
				t.Error("expected errors.Is(err, ErrValidation)")
			}
		})
	}
}

func TestDraftTagsFollowEnumerationOrder(t *testing.T) {
	d := &Draft{
		Sides:     []string{"T", "CT"},
		Sites:     []string{"B", "A"},
		Utilities: []string{"NADE", "SMOKE"},
		Method:    []string{"RUN", "THROW", "JUMP"},
	}
	want := []string{"CT", "T", "A", "B", "SMOKE", "NADE"}
	if got := d.Tags(); !reflect.DeepEqual(got, want) {
		t.Errorf("Tags = %v, want %v", got, want)
	}
	if got := d.Methods(); !reflect.DeepEqual(got, []string{"THROW", "JUMP", "RUN"}) {
		t.Errorf("Methods = %v", got)
	}
}

func TestDraftApplyResetsSelections(t *testing.T) {
	d := &Draft{
		MapID:     "de_nuke",
		Sides:     []string{"CT"},
		Sites:     []string{"B"},
		Utilities: []string{"FLASH"},
		Method:    []string{"WALK"},
		Images:    []string{"/keep.png"},
	}
	d.Apply(Post{
		MapID:  "de_mirage",
		Title:  "Window",
		Tags:   []string{"T", "MID", "SMOKE", "BOGUS"},
		Method: []string{"JUMP", "THROW", "NOPE"},
		Tip:    "aim at the antenna",
	})

	if d.MapID != "de_mirage" || d.Title != "Window" || d.Tip != "aim at the antenna" {
		t.Errorf("unexpected draft fields: %+v", d)
	}
	if !reflect.DeepEqual(d.Tags(), []string{"T", "MID", "SMOKE"}) {
		t.Errorf("Tags = %v", d.Tags())
	}
	if !reflect.DeepEqual(d.Methods(), []string{"THROW", "JUMP"}) {
		t.Errorf("Methods = %v", d.Methods())
	}
	if len(d.Images) != 1 {
		t.Errorf("Apply should not touch images, got %v", d.Images)
	}
}

func TestDraftApplyUnknownMapKeepsCurrent(t *testing.T) {
	d := &Draft{MapID: "de_inferno"}
	d.Apply(Post{MapID: "de_cache", Title: "x"})
	if d.MapID != "de_inferno" {
		t.Errorf("MapID = %q, want de_inferno", d.MapID)
	}
}

func TestDraftResetKeepsMap(t *testing.T) {
	d := validDraft()
	d.Tip = "tip"
	d.Reset()
	if d.MapID != "de_dust2" {
		t.Errorf("MapID = %q", d.MapID)
	}
	if d.Title != "" || d.Tip != "" || d.Images != nil || len(d.Tags()) != 0 || len(d.Methods()) != 0 {
		t.Errorf("draft not cleared: %+v", d)
	}
}

func TestDraftPost(t *testing.T) {
	d := validDraft()
	d.Title = "  Smoke A  "
	p := d.Post("de_dust2-20260210122645", []string{"dust2/smoke-a-t-smoke-1.png"})
	want := Post{
		ID:     "de_dust2-20260210122645",
		MapID:  "de_dust2",
		Title:  "Smoke A",
		Images: []string{"dust2/smoke-a-t-smoke-1.png"},
		Tags:   []string{"T", "A", "SMOKE"},
		Method: []string{"THROW"},
	}
	if !reflect.DeepEqual(p, want) {
		t.Errorf("Post = %+v, want %+v", p, want)
	}
}

func TestPostValidate(t *testing.T) {
	p := Post{MapID: "de_anubis", Title: "Main", Tags: []string{"CT"}, Method: []string{"THROW"}}
	if err := p.Validate(); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	p.MapID = "anubis"
	if err := p.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for unknown map, got %v", err)
	}
}

func TestPostValidateID(t *testing.T) {
	base := Post{MapID: "de_dust2", Title: "Xbox", Tags: []string{"T"}, Method: []string{"THROW"}}
	for _, id := range []string{"", "de_dust2-20240102030405", "de_dust2-1", "custom_id"} {
		p := base
		p.ID = id
		if err := p.Validate(); err != nil {
			t.Errorf("id %q rejected: %v", id, err)
		}
	}
	for _, id := range []string{"../../../escaped", "a/b", `a\b`, ".hidden", "de_dust2-1.png", "two words"} {
		p := base
		p.ID = id
		var verr *ValidationError
		if err := p.Validate(); !errors.As(err, &verr) || verr.Field != "id" {
			t.Errorf("id %q: expected id validation error, got %v", id, err)
		}
	}
}
