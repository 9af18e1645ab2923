package post

import "strings"

// Draft is the in-progress state of the creator form. Widgets read and
// write it directly; nothing in it is validated until Validate is called.
type Draft struct {
	MapID     string
	Title     string
	Sides     []string
	Sites     []string
	Utilities []string
	Method    []string
	Images    []string // source paths on disk
	Tip       string
}

// NewDraft returns an empty draft on the first map.
func NewDraft() *Draft {
	return &Draft{MapID: Maps[0]}
}

// ActiveSides returns the selected sides in enumeration order.
func (d *Draft) ActiveSides() []string { return ordered(Sides, d.Sides) }

// ActiveUtilities returns the selected utilities in enumeration order.
func (d *Draft) ActiveUtilities() []string { return ordered(Utilities, d.Utilities) }

// Tags returns every selected tag: sides, then sites, then utilities.
func (d *Draft) Tags() []string {
	tags := ordered(Sides, d.Sides)
	tags = append(tags, ordered(Sites, d.Sites)...)
	tags = append(tags, ordered(Utilities, d.Utilities)...)
	return tags
}

// Methods returns the selected method components in enumeration order.
func (d *Draft) Methods() []string { return ordered(MethodComponents, d.Method) }

// Validate checks the draft in the order the form reports problems.
func (d *Draft) Validate() error {
	if len(d.Images) == 0 {
		return &ValidationError{Field: "images", Reason: "select at least one image"}
	}
	if strings.TrimSpace(d.Title) == "" {
		return &ValidationError{Field: "title"}
	}
	if len(d.Methods()) == 0 {
		return &ValidationError{Field: "method", Reason: "select at least one method component"}
	}
	if len(d.Tags()) == 0 {
		return &ValidationError{Field: "tags", Reason: "select at least one tag"}
	}
	if !IsMap(d.MapID) {
		return &ValidationError{Field: "mapId", Reason: "unknown map " + d.MapID}
	}
	return nil
}

// Apply loads a record into the draft. All selections are cleared first;
// tags and method components outside the enumerations are dropped, and an
// unknown map leaves the current map selected. Images are left alone since
// the caller decides where they live.
func (d *Draft) Apply(p Post) {
	d.clearSelections()
	d.Title = p.Title
	if IsMap(p.MapID) {
		d.MapID = p.MapID
	}
	for _, tag := range p.Tags {
		switch {
		case contains(Sides, tag):
			d.Sides = append(d.Sides, tag)
		case contains(Sites, tag):
			d.Sites = append(d.Sites, tag)
		case contains(Utilities, tag):
			d.Utilities = append(d.Utilities, tag)
		}
	}
	for _, m := range p.Method {
		if contains(MethodComponents, m) {
			d.Method = append(d.Method, m)
		}
	}
	d.Tip = p.Tip
}

// Reset clears everything but the selected map.
func (d *Draft) Reset() {
	d.clearSelections()
	d.Title = ""
	d.Images = nil
	d.Tip = ""
}

// Post freezes the draft into a record with the given ID and image paths.
func (d *Draft) Post(id string, images []string) Post {
	return Post{
		ID:     id,
		MapID:  d.MapID,
		Title:  strings.TrimSpace(d.Title),
		Images: images,
		Tags:   d.Tags(),
		Method: d.Methods(),
		Tip:    strings.TrimSpace(d.Tip),
	}
}

func (d *Draft) clearSelections() {
	d.Sides = nil
	d.Sites = nil
	d.Utilities = nil
	d.Method = nil
}
