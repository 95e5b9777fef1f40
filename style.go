package designgen

import (
	"fmt"
	"strconv"
	"strings"
)

// styleEntry is one style object in the registry: an ordered property list
// so rendered output follows a stable, readable order.
type styleEntry struct {
	props []styleProp
}

// styleProp holds an already-rendered value: numbers and expressions raw,
// strings quoted.
type styleProp struct {
	key   string
	value string
}

// set appends the property, or overwrites it in place when already present
// so layering role defaults keeps the original ordering stable.
func (e *styleEntry) set(key, value string) {
	for i := range e.props {
		if e.props[i].key == key {
			e.props[i].value = value
			return
		}
	}
	e.props = append(e.props, styleProp{key: key, value: value})
}

func (e *styleEntry) has(key string) bool {
	for i := range e.props {
		if e.props[i].key == key {
			return true
		}
	}
	return false
}

// registerStyle adds an entry under name. The first node to claim a name
// wins; later nodes with the same sanitized name share the entry, which is
// exactly what the markup pass references.
func (ctx *GenerationContext) registerStyle(name string) (*styleEntry, bool) {
	if existing, ok := ctx.styles[name]; ok {
		return existing, false
	}
	entry := &styleEntry{}
	ctx.styles[name] = entry
	ctx.styleOrder = append(ctx.styleOrder, name)
	return entry, true
}

// collectStyles is the second full tree walk: one style entry per visited
// node, keyed by the same name derivation the markup pass uses.
func (ctx *GenerationContext) collectStyles(node *Node) {
	if node == nil || !node.IsVisible() {
		return
	}
	ctx.collectNodeStyle(node)
	for _, child := range node.Children {
		ctx.collectStyles(child)
	}
}

// collectNodeStyle builds one node's style object: base geometry, layout
// properties, visual properties, then role defaults layered on top. A
// failure here degrades to a partial or missing entry for this node only;
// the matching markup for such a node is a placeholder with no style
// reference, so sibling entries still resolve.
func (ctx *GenerationContext) collectNodeStyle(node *Node) {
	defer func() {
		if r := recover(); r != nil {
			ctx.warnf("style %q: %v", node.Name, r)
		}
	}()

	pattern := Classify(node)
	entry, fresh := ctx.registerStyle(styleNameFor(node, pattern))
	if !fresh {
		return
	}

	props := Extract(node)

	// Base geometry.
	if props.HasBox {
		entry.set("width", ctx.widthValue(props.Width))
		entry.set("height", ctx.heightValue(props.Height))
	}

	// Layout shape.
	children := make([]*NodeProps, 0, len(node.Children))
	for _, child := range node.Children {
		if child.IsVisible() {
			children = append(children, Extract(child))
		}
	}
	layout := AnalyzeLayout(props, children)
	switch layout.Type {
	case LayoutFlex, LayoutStack:
		entry.set("flexDirection", quote(layout.FlexDirection))
		if layout.JustifyContent != "" {
			entry.set("justifyContent", quote(layout.JustifyContent))
		}
		if layout.AlignItems != "" {
			entry.set("alignItems", quote(layout.AlignItems))
		}
		if layout.Gap != nil {
			entry.set("gap", ctx.spacingValue(*layout.Gap))
		}
		ctx.setPadding(entry, layout.Padding)
	case LayoutGrid:
		entry.set("flexDirection", quote("row"))
		entry.set("flexWrap", quote("wrap"))
	}

	// Visual properties.
	if fill, ok := firstSolidFill(props); ok && props.Type != NodeTypeText {
		entry.set("backgroundColor", ctx.colorValue(fill.Hex()))
	}
	if props.CornerRadius != nil && *props.CornerRadius > 0 {
		entry.set("borderRadius", ctx.spacingValue(*props.CornerRadius))
	}
	if stroke, ok := firstSolidStroke(props); ok {
		weight := 1.0
		if props.StrokeWeight != nil {
			weight = *props.StrokeWeight
		}
		entry.set("borderWidth", fmtNum(weight))
		entry.set("borderColor", ctx.colorValue(stroke.Hex()))
	}
	if shadow, ok := firstDropShadow(props); ok {
		ctx.setShadow(entry, shadow)
	}
	if props.Opacity != nil && *props.Opacity < 1 {
		entry.set("opacity", fmtNum(*props.Opacity))
	}

	// Typography.
	if props.Type == NodeTypeText {
		if props.FontSize != nil {
			entry.set("fontSize", ctx.fontSizeValue(*props.FontSize))
		}
		if props.FontFamily != "" {
			entry.set("fontFamily", quote(props.FontFamily))
		}
		if weight := mapFontWeight(props.FontStyle, props.FontWeight); weight != 400 {
			entry.set("fontWeight", quote(strconv.Itoa(weight)))
		}
		if fill, ok := firstSolidFill(props); ok {
			entry.set("color", ctx.colorValue(fill.Hex()))
		}
		if props.TextAlign != "" {
			entry.set("textAlign", quote(strings.ToLower(props.TextAlign)))
		}
		if props.LineHeight != nil {
			entry.set("lineHeight", fmtNum(*props.LineHeight))
		}
		if props.LetterSpacing != nil && *props.LetterSpacing != 0 {
			entry.set("letterSpacing", fmtNum(*props.LetterSpacing))
		}
	}

	ctx.applyRoleDefaults(entry, pattern.Type)
}

// setPadding copies explicit padding edges through.
func (ctx *GenerationContext) setPadding(entry *styleEntry, padding EdgeInsets) {
	if padding.Top != nil {
		entry.set("paddingTop", ctx.spacingValue(*padding.Top))
	}
	if padding.Right != nil {
		entry.set("paddingRight", ctx.spacingValue(*padding.Right))
	}
	if padding.Bottom != nil {
		entry.set("paddingBottom", ctx.spacingValue(*padding.Bottom))
	}
	if padding.Left != nil {
		entry.set("paddingLeft", ctx.spacingValue(*padding.Left))
	}
}

// setShadow maps a drop shadow to the React Native shadow fields plus the
// Android elevation approximation.
func (ctx *GenerationContext) setShadow(entry *styleEntry, shadow Effect) {
	color := "#000000"
	opacity := 0.25
	if shadow.Color != nil {
		color = shadow.Color.Hex()
		if shadow.Color.A > 0 && shadow.Color.A < 1 {
			opacity = shadow.Color.A
		}
	}
	var offsetX, offsetY float64
	if shadow.Offset != nil {
		offsetX = shadow.Offset.X
		offsetY = shadow.Offset.Y
	}
	entry.set("shadowColor", ctx.colorValue(color))
	entry.set("shadowOffset", fmt.Sprintf("{ width: %s, height: %s }", fmtNum(offsetX), fmtNum(offsetY)))
	entry.set("shadowOpacity", fmtNum(opacity))
	entry.set("shadowRadius", fmtNum(shadow.Radius))
	entry.set("elevation", fmtNum(shadow.Radius/2+1))
}

// Role-specific style profiles layered on top of extracted values.
func (ctx *GenerationContext) applyRoleDefaults(entry *styleEntry, pattern PatternType) {
	switch pattern {
	case PatternButton:
		entry.set("paddingVertical", ctx.spacingValue(12))
		entry.set("paddingHorizontal", ctx.spacingValue(24))
		if !entry.has("borderRadius") {
			entry.set("borderRadius", ctx.spacingValue(8))
		}
		entry.set("alignItems", quote("center"))
		entry.set("justifyContent", quote("center"))
	case PatternInput:
		if !entry.has("borderWidth") {
			entry.set("borderWidth", fmtNum(1))
			entry.set("borderColor", ctx.colorValue("#CCCCCC"))
		}
		if !entry.has("borderRadius") {
			entry.set("borderRadius", ctx.spacingValue(8))
		}
		entry.set("paddingHorizontal", ctx.spacingValue(12))
		entry.set("paddingVertical", ctx.spacingValue(10))
	case PatternCard:
		if !entry.has("backgroundColor") {
			entry.set("backgroundColor", ctx.colorValue("#FFFFFF"))
		}
		if !entry.has("borderRadius") {
			entry.set("borderRadius", ctx.spacingValue(12))
		}
		entry.set("padding", ctx.spacingValue(16))
		if !entry.has("shadowColor") {
			entry.set("shadowColor", ctx.colorValue("#000000"))
			entry.set("shadowOffset", "{ width: 0, height: 2 }")
			entry.set("shadowOpacity", fmtNum(0.1))
			entry.set("shadowRadius", fmtNum(4))
			entry.set("elevation", fmtNum(2))
		}
	case PatternHeader:
		if !entry.has("flexDirection") {
			entry.set("flexDirection", quote("row"))
		}
		entry.set("alignItems", quote("center"))
		entry.set("justifyContent", quote("space-between"))
	case PatternNavigation:
		entry.set("flexDirection", quote("row"))
		entry.set("justifyContent", quote("space-around"))
		entry.set("alignItems", quote("center"))
	}
}

// screenShellStyles registers the fixed entries for the screen wrapper.
func (ctx *GenerationContext) screenShellStyles() {
	if entry, fresh := ctx.registerStyle("safeArea"); fresh {
		entry.set("flex", fmtNum(1))
		entry.set("backgroundColor", ctx.colorValue("#FFFFFF"))
	}
	if entry, fresh := ctx.registerStyle("scrollContent"); fresh {
		entry.set("flexGrow", fmtNum(1))
	}
	if ctx.Options.IncludeNavigationShell {
		if entry, fresh := ctx.registerStyle("navigationBar"); fresh {
			entry.set("flexDirection", quote("row"))
			entry.set("justifyContent", quote("space-around"))
			entry.set("alignItems", quote("center"))
			entry.set("height", fmtNum(64))
			entry.set("borderTopWidth", fmtNum(1))
			entry.set("borderTopColor", ctx.colorValue("#EEEEEE"))
		}
	}
}

// renderStyleSheet renders the registry body in registration order, which
// follows document traversal order.
func (ctx *GenerationContext) renderStyleSheet() string {
	var b strings.Builder
	for _, name := range ctx.styleOrder {
		entry := ctx.styles[name]
		b.WriteString(fmt.Sprintf("  %s: {\n", name))
		for _, p := range entry.props {
			b.WriteString(fmt.Sprintf("    %s: %s,\n", p.key, p.value))
		}
		b.WriteString("  },\n")
	}
	return b.String()
}

// widthValue renders a width, wrapped in the responsive scale expression
// when enabled.
func (ctx *GenerationContext) widthValue(v float64) string {
	if ctx.Options.ResponsiveScaling {
		return fmt.Sprintf("scaleWidth(%s)", fmtNum(v))
	}
	return fmtNum(v)
}

func (ctx *GenerationContext) heightValue(v float64) string {
	if ctx.Options.ResponsiveScaling {
		return fmt.Sprintf("scaleHeight(%s)", fmtNum(v))
	}
	return fmtNum(v)
}

func (ctx *GenerationContext) fontSizeValue(v float64) string {
	if ctx.Options.ResponsiveScaling {
		return fmt.Sprintf("moderateScale(%s)", fmtNum(v))
	}
	return fmtNum(v)
}

// colorValue renders a hex color, preferring a theme token reference when
// token references are enabled and a token carries this exact value.
func (ctx *GenerationContext) colorValue(hex string) string {
	if ctx.Options.UseThemeTokens && ctx.Tokens != nil {
		if token, ok := ctx.Tokens.ColorByValue(hex); ok {
			return "theme.colors." + token.Name
		}
	}
	return quote(hex)
}

// spacingValue renders a spacing number, preferring a theme token reference
// on an exact value match.
func (ctx *GenerationContext) spacingValue(v float64) string {
	if ctx.Options.UseThemeTokens && ctx.Tokens != nil {
		if token, ok := ctx.Tokens.SpacingByValue(v); ok {
			return "theme.spacing." + token.Name
		}
	}
	return fmtNum(v)
}

func quote(s string) string {
	return "'" + s + "'"
}

// fmtNum renders a float without a trailing ".0" so generated numbers read
// like hand-written ones.
func fmtNum(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
