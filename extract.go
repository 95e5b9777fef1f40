package designgen

// NodeProps is the normalized, flat record every downstream stage works from
// instead of touching the raw node again. A field absent on the source node
// is simply omitted here, never defaulted; defaulting is the consumer's job.
type NodeProps struct {
	ID   string
	Name string
	Type string

	X        float64
	Y        float64
	Width    float64
	Height   float64
	HasBox   bool
	Rotation *float64

	Fills        []Paint
	Strokes      []Paint
	StrokeWeight *float64
	CornerRadius *float64
	Effects      []Effect
	Opacity      *float64

	Characters    string
	FontFamily    string
	FontStyle     string
	FontWeight    *float64
	FontSize      *float64
	TextAlign     string
	LineHeight    *float64
	LetterSpacing *float64

	LayoutMode       string
	ItemSpacing      *float64
	PaddingLeft      *float64
	PaddingRight     *float64
	PaddingTop       *float64
	PaddingBottom    *float64
	PrimaryAxisAlign string
	CounterAxisAlign string

	ChildCount int
}

// Extract reads one raw node into a NodeProps record. This is the single
// point where "is this field trustworthy" is decided: mixed-sentinel fields
// come out as absent, and a field is only included when present and of the
// expected shape. It never panics for missing optional fields.
func Extract(node *Node) *NodeProps {
	props := &NodeProps{
		ID:         node.ID,
		Name:       node.Name,
		Type:       node.Type,
		ChildCount: len(node.Children),
	}

	if box := node.AbsoluteBoundingBox; box != nil {
		props.X = box.X
		props.Y = box.Y
		props.Width = box.Width
		props.Height = box.Height
		props.HasBox = true
	}
	props.Rotation = node.Rotation

	props.Fills = visiblePaints(node.Fills)
	props.Strokes = visiblePaints(node.Strokes)
	props.StrokeWeight = node.StrokeWeight
	if radius, ok := node.CornerRadius.Get(); ok {
		props.CornerRadius = &radius
	}
	props.Effects = visibleEffects(node.Effects)
	if opacity, ok := node.Opacity.Get(); ok {
		props.Opacity = &opacity
	}

	if node.Type == NodeTypeText {
		props.Characters = node.Characters
		if style := node.Style; style != nil {
			props.FontFamily = style.FontFamily
			props.FontStyle = style.FontStyle
			props.FontWeight = style.FontWeight
			if size, ok := style.FontSize.Get(); ok {
				props.FontSize = &size
			}
			props.TextAlign = style.TextAlignHorizontal
			if lh, ok := style.LineHeightPx.Get(); ok {
				props.LineHeight = &lh
			}
			if ls, ok := style.LetterSpacing.Get(); ok {
				props.LetterSpacing = &ls
			}
		}
	}

	if node.LayoutMode != "" && node.LayoutMode != "NONE" {
		props.LayoutMode = node.LayoutMode
		props.ItemSpacing = node.ItemSpacing
		props.PaddingLeft = node.PaddingLeft
		props.PaddingRight = node.PaddingRight
		props.PaddingTop = node.PaddingTop
		props.PaddingBottom = node.PaddingBottom
		props.PrimaryAxisAlign = node.PrimaryAxisAlignItems
		props.CounterAxisAlign = node.CounterAxisAlignItems
	}

	return props
}

// visiblePaints copies the visible paints of a list, dropping entries whose
// type is empty (malformed input).
func visiblePaints(paints []Paint) []Paint {
	if len(paints) == 0 {
		return nil
	}
	result := make([]Paint, 0, len(paints))
	for _, p := range paints {
		if p.Type == "" || !p.IsVisible() {
			continue
		}
		result = append(result, p)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// visibleEffects copies the visible effects of a list.
func visibleEffects(effects []Effect) []Effect {
	if len(effects) == 0 {
		return nil
	}
	result := make([]Effect, 0, len(effects))
	for _, e := range effects {
		if e.Type == "" || !e.IsVisible() {
			continue
		}
		result = append(result, e)
	}
	if len(result) == 0 {
		return nil
	}
	return result
}

// firstSolidFill returns the first visible solid fill color, if any.
func firstSolidFill(props *NodeProps) (Color, bool) {
	for _, p := range props.Fills {
		if p.Type == "SOLID" && p.Color != nil {
			return *p.Color, true
		}
	}
	return Color{}, false
}

// firstSolidStroke returns the first visible solid stroke color, if any.
func firstSolidStroke(props *NodeProps) (Color, bool) {
	for _, p := range props.Strokes {
		if p.Type == "SOLID" && p.Color != nil {
			return *p.Color, true
		}
	}
	return Color{}, false
}

// firstDropShadow returns the first visible drop shadow effect, if any.
func firstDropShadow(props *NodeProps) (Effect, bool) {
	for _, e := range props.Effects {
		if e.Type == "DROP_SHADOW" {
			return e, true
		}
	}
	return Effect{}, false
}
