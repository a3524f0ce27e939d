// Package annotations provides typed views over page annotation
// dictionaries (/Type /Annot), dispatched on their /Subtype.
//
// Dispatch is tolerant the way a viewer has to be: a subtype this
// package does not know yields an [*Unknown] view, never an error.
package annotations

import (
	"fmt"

	"github.com/carouselpdf/carousel/core"
	"github.com/carouselpdf/carousel/pages"
)

// Annotation flag bits of the /F entry.
const (
	FlagInvisible    = 1 << 0
	FlagHidden       = 1 << 1
	FlagPrinted      = 1 << 2
	FlagNoZoom       = 1 << 3
	FlagNoRotate     = 1 << 4
	FlagNoView       = 1 << 5
	FlagReadOnly     = 1 << 6
	FlagLocked       = 1 << 7
	FlagToggleNoView = 1 << 8
)

// Annotation is the interface every concrete annotation view satisfies.
type Annotation interface {
	Dictionary() core.Dict
	Subtype() string
}

// Create builds the typed view for a COS annotation value. Only a
// non-dictionary input is an error; unrecognized subtypes come back as
// *Unknown.
func Create(base core.Object) (Annotation, error) {
	dict, ok := base.(core.Dict)
	if !ok {
		return nil, fmt.Errorf("annotation is not a dictionary: %T", base)
	}
	common := Common{dict: dict}
	switch subtype, _ := dict.GetName("Subtype"); subtype {
	case "Stamp":
		return &RubberStamp{Common: common}, nil
	default:
		return &Unknown{Common: common}, nil
	}
}

// ForPage builds views for every annotation on a page, skipping
// entries that are not dictionaries.
func ForPage(p *pages.Page) []Annotation {
	var out []Annotation
	for _, dict := range p.Annotations() {
		annot, err := Create(dict)
		if err != nil {
			continue
		}
		out = append(out, annot)
	}
	return out
}

// Common carries the accessors shared by every annotation subtype.
type Common struct {
	dict core.Dict
}

// NewCommon creates a fresh annotation dictionary of the given subtype.
func NewCommon(subtype string) Common {
	return Common{dict: core.Dict{
		core.NameType: core.Name("Annot"),
		"Subtype":     core.Name(subtype),
	}}
}

// Dictionary returns the underlying dictionary.
func (a *Common) Dictionary() core.Dict {
	return a.dict
}

// Subtype returns the /Subtype name.
func (a *Common) Subtype() string {
	name, _ := a.dict.GetName("Subtype")
	return string(name)
}

// Rect returns the annotation rectangle in default user space, or nil
// when absent (legal for parent form fields with children).
func (a *Common) Rect() *pages.Rectangle {
	if arr, ok := a.dict.GetArray("Rect"); ok {
		return pages.RectangleFromArray(arr)
	}
	return nil
}

// SetRect sets the annotation rectangle.
func (a *Common) SetRect(r *pages.Rectangle) {
	a.dict.Set("Rect", r.Array())
}

// Contents returns the annotation's text content.
func (a *Common) Contents() string {
	if s, ok := a.dict.GetString("Contents"); ok {
		return s.Text()
	}
	return ""
}

// SetContents sets the annotation's text content.
func (a *Common) SetContents(v string) {
	a.dict.Set("Contents", core.NewString(v))
}

// AppearanceState returns the /AS appearance-state name, which selects
// among the appearance streams in /AP.
func (a *Common) AppearanceState() string {
	name, _ := a.dict.GetName("AS")
	return string(name)
}

// SetAppearanceState sets the appearance-state name; an empty value
// removes it.
func (a *Common) SetAppearanceState(v string) {
	if v == "" {
		a.dict.Delete("AS")
		return
	}
	a.dict.Set("AS", core.Name(v))
}

// Appearance returns the /AP appearance dictionary, or nil.
func (a *Common) Appearance() core.Dict {
	dict, _ := a.dict.GetDict("AP")
	return dict
}

// SetAppearance sets the appearance dictionary; nil removes it.
func (a *Common) SetAppearance(ap core.Dict) {
	if ap == nil {
		a.dict.Delete("AP")
		return
	}
	a.dict.Set("AP", ap)
}

// AdditionalActions returns the /AA additional-actions dictionary, or
// nil.
func (a *Common) AdditionalActions() core.Dict {
	dict, _ := a.dict.GetDict("AA")
	return dict
}

// SetAdditionalActions sets the additional-actions dictionary.
func (a *Common) SetAdditionalActions(aa core.Dict) {
	a.dict.Set("AA", aa)
}

// Flags returns the raw /F bitfield.
func (a *Common) Flags() int64 {
	return a.dict.IntDefault("F", 0)
}

// SetFlags replaces the raw /F bitfield.
func (a *Common) SetFlags(flags int64) {
	a.dict.Set("F", core.Integer(flags))
}

func (a *Common) flag(bit int64) bool {
	return a.Flags()&bit != 0
}

func (a *Common) setFlag(bit int64, value bool) {
	flags := a.Flags()
	if value {
		flags |= bit
	} else {
		flags &^= bit
	}
	a.SetFlags(flags)
}

// IsInvisible returns the invisible flag.
func (a *Common) IsInvisible() bool { return a.flag(FlagInvisible) }

// SetInvisible sets the invisible flag.
func (a *Common) SetInvisible(v bool) { a.setFlag(FlagInvisible, v) }

// IsHidden returns the hidden flag.
func (a *Common) IsHidden() bool { return a.flag(FlagHidden) }

// SetHidden sets the hidden flag.
func (a *Common) SetHidden(v bool) { a.setFlag(FlagHidden, v) }

// IsPrinted returns the printed flag.
func (a *Common) IsPrinted() bool { return a.flag(FlagPrinted) }

// SetPrinted sets the printed flag.
func (a *Common) SetPrinted(v bool) { a.setFlag(FlagPrinted, v) }

// IsNoZoom returns the no-zoom flag.
func (a *Common) IsNoZoom() bool { return a.flag(FlagNoZoom) }

// SetNoZoom sets the no-zoom flag.
func (a *Common) SetNoZoom(v bool) { a.setFlag(FlagNoZoom, v) }

// IsNoRotate returns the no-rotate flag.
func (a *Common) IsNoRotate() bool { return a.flag(FlagNoRotate) }

// SetNoRotate sets the no-rotate flag.
func (a *Common) SetNoRotate(v bool) { a.setFlag(FlagNoRotate, v) }

// IsNoView returns the no-view flag.
func (a *Common) IsNoView() bool { return a.flag(FlagNoView) }

// SetNoView sets the no-view flag.
func (a *Common) SetNoView(v bool) { a.setFlag(FlagNoView, v) }

// IsReadOnly returns the read-only flag.
func (a *Common) IsReadOnly() bool { return a.flag(FlagReadOnly) }

// SetReadOnly sets the read-only flag.
func (a *Common) SetReadOnly(v bool) { a.setFlag(FlagReadOnly, v) }

// IsLocked returns the locked flag.
func (a *Common) IsLocked() bool { return a.flag(FlagLocked) }

// SetLocked sets the locked flag.
func (a *Common) SetLocked(v bool) { a.setFlag(FlagLocked, v) }

// IsToggleNoView returns the toggle-no-view flag.
func (a *Common) IsToggleNoView() bool { return a.flag(FlagToggleNoView) }

// SetToggleNoView sets the toggle-no-view flag.
func (a *Common) SetToggleNoView(v bool) { a.setFlag(FlagToggleNoView, v) }

// RubberStamp is a rubber-stamp annotation (/Subtype /Stamp).
type RubberStamp struct {
	Common
}

// NewRubberStamp creates an empty rubber-stamp annotation.
func NewRubberStamp() *RubberStamp {
	return &RubberStamp{Common: NewCommon("Stamp")}
}

// Name returns the stamp's icon name; viewers default to Draft.
func (r *RubberStamp) Name() string {
	if name, ok := r.dict.GetName("Name"); ok {
		return string(name)
	}
	return "Draft"
}

// SetName sets the stamp's icon name.
func (r *RubberStamp) SetName(name string) {
	r.dict.Set("Name", core.Name(name))
}

// Unknown is the view for any annotation subtype this package has no
// dedicated type for.
type Unknown struct {
	Common
}
