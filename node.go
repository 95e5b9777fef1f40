package designgen

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Node type tags as they appear in exported design documents.
const (
	NodeTypeDocument  = "DOCUMENT"
	NodeTypePage      = "CANVAS"
	NodeTypeFrame     = "FRAME"
	NodeTypeGroup     = "GROUP"
	NodeTypeRectangle = "RECTANGLE"
	NodeTypeEllipse   = "ELLIPSE"
	NodeTypeVector    = "VECTOR"
	NodeTypeText      = "TEXT"
	NodeTypeComponent = "COMPONENT"
	NodeTypeInstance  = "INSTANCE"
)

// Document is a materialized snapshot of a design file. The pipeline only
// reads it; ownership stays with whoever loaded it.
type Document struct {
	Name  string  `json:"name"`
	Pages []*Node `json:"pages"`
}

// Node is a single element of the design tree. Optional scalar fields use
// pointers (absent vs zero) and fields that design tools report with a
// "mixed" sentinel use the tri-state Field type.
type Node struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Type     string  `json:"type"`
	Visible  *bool   `json:"visible,omitempty"`
	Locked   bool    `json:"locked,omitempty"`
	Children []*Node `json:"children,omitempty"`

	AbsoluteBoundingBox *Rect    `json:"absoluteBoundingBox,omitempty"`
	Rotation            *float64 `json:"rotation,omitempty"`

	Fills        []Paint        `json:"fills,omitempty"`
	Strokes      []Paint        `json:"strokes,omitempty"`
	StrokeWeight *float64       `json:"strokeWeight,omitempty"`
	CornerRadius Field[float64] `json:"cornerRadius,omitempty"`
	Effects      []Effect       `json:"effects,omitempty"`
	Opacity      Field[float64] `json:"opacity,omitempty"`

	Characters string     `json:"characters,omitempty"`
	Style      *TypeStyle `json:"style,omitempty"`

	LayoutMode            string   `json:"layoutMode,omitempty"`
	ItemSpacing           *float64 `json:"itemSpacing,omitempty"`
	PaddingLeft           *float64 `json:"paddingLeft,omitempty"`
	PaddingRight          *float64 `json:"paddingRight,omitempty"`
	PaddingTop            *float64 `json:"paddingTop,omitempty"`
	PaddingBottom         *float64 `json:"paddingBottom,omitempty"`
	PrimaryAxisAlignItems string   `json:"primaryAxisAlignItems,omitempty"`
	CounterAxisAlignItems string   `json:"counterAxisAlignItems,omitempty"`
}

// IsVisible reports node visibility; absence means visible.
func (n *Node) IsVisible() bool {
	return n.Visible == nil || *n.Visible
}

// Rect is an absolute bounding box in canvas units.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Color is an RGBA color with channels in [0,1].
type Color struct {
	R float64 `json:"r"`
	G float64 `json:"g"`
	B float64 `json:"b"`
	A float64 `json:"a"`
}

// Hex renders the color as an uppercase 6-digit hex string, alpha ignored.
func (c Color) Hex() string {
	clamp := func(v float64) int {
		n := int(v*255 + 0.5)
		if n < 0 {
			return 0
		}
		if n > 255 {
			return 255
		}
		return n
	}
	return fmt.Sprintf("#%02X%02X%02X", clamp(c.R), clamp(c.G), clamp(c.B))
}

// Paint is a fill or stroke applied to a node.
type Paint struct {
	Type    string   `json:"type"` // SOLID, IMAGE, GRADIENT_LINEAR, ...
	Visible *bool    `json:"visible,omitempty"`
	Opacity *float64 `json:"opacity,omitempty"`
	Color   *Color   `json:"color,omitempty"`
}

// IsVisible reports paint visibility; absence means visible.
func (p Paint) IsVisible() bool {
	return p.Visible == nil || *p.Visible
}

// Effect is a visual effect such as a drop shadow or blur.
type Effect struct {
	Type    string   `json:"type"` // DROP_SHADOW, INNER_SHADOW, LAYER_BLUR, ...
	Visible *bool    `json:"visible,omitempty"`
	Radius  float64  `json:"radius,omitempty"`
	Color   *Color   `json:"color,omitempty"`
	Offset  *Vector  `json:"offset,omitempty"`
	Spread  *float64 `json:"spread,omitempty"`
}

// IsVisible reports effect visibility; absence means visible.
func (e Effect) IsVisible() bool {
	return e.Visible == nil || *e.Visible
}

// Vector is a 2D offset.
type Vector struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// TypeStyle carries text styling for TEXT nodes.
type TypeStyle struct {
	FontFamily          string         `json:"fontFamily,omitempty"`
	FontStyle           string         `json:"fontStyle,omitempty"`
	FontWeight          *float64       `json:"fontWeight,omitempty"`
	FontSize            Field[float64] `json:"fontSize,omitempty"`
	TextAlignHorizontal string         `json:"textAlignHorizontal,omitempty"`
	LineHeightPx        Field[float64] `json:"lineHeightPx,omitempty"`
	LetterSpacing       Field[float64] `json:"letterSpacing,omitempty"`
}

// fieldState distinguishes the three states a design-tool field can be in.
type fieldState uint8

const (
	fieldAbsent fieldState = iota
	fieldMixed             // children of the node disagree on the value
	fieldSet
)

// Field is a tri-state value: absent, mixed, or set. Design tools report a
// special "mixed" sentinel when the children of a node disagree on a value;
// modelling it explicitly keeps the sentinel from leaking past the extractor.
type Field[T any] struct {
	state fieldState
	value T
}

// FieldOf returns a set Field holding v.
func FieldOf[T any](v T) Field[T] {
	return Field[T]{state: fieldSet, value: v}
}

// MixedField returns a Field in the mixed state.
func MixedField[T any]() Field[T] {
	return Field[T]{state: fieldMixed}
}

// Get returns the value and whether the field holds one. Mixed and absent
// fields both report false: downstream stages never see the sentinel.
func (f Field[T]) Get() (T, bool) {
	return f.value, f.state == fieldSet
}

// IsMixed reports whether the field carries the mixed sentinel.
func (f Field[T]) IsMixed() bool {
	return f.state == fieldMixed
}

var mixedSentinel = []byte(`"mixed"`)

// UnmarshalJSON accepts a plain value, the string "mixed", or null.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		*f = Field[T]{}
		return nil
	}
	if bytes.Equal(data, mixedSentinel) {
		*f = Field[T]{state: fieldMixed}
		return nil
	}
	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*f = Field[T]{state: fieldSet, value: v}
	return nil
}

// MarshalJSON writes the value, the "mixed" sentinel, or null.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	switch f.state {
	case fieldSet:
		return json.Marshal(f.value)
	case fieldMixed:
		return mixedSentinel, nil
	default:
		return []byte("null"), nil
	}
}
