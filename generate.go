package designgen

import (
	"fmt"
	"strings"
	"unicode"
)

// ComponentKind selects the outer shape of the generated component.
type ComponentKind string

const (
	KindScreen    ComponentKind = "screen"
	KindComponent ComponentKind = "component"
	KindSection   ComponentKind = "section"
)

// GenerationOptions is the fixed configuration for one generation pass.
type GenerationOptions struct {
	TypeScript             bool          // emit typed component and helpers
	ResponsiveScaling      bool          // wrap dimensions in scale expressions
	UseThemeTokens         bool          // reference theme tokens instead of literals
	ComponentKind          ComponentKind // screen, component, or section
	IncludeNavigationShell bool          // append a bottom navigation placeholder
	SplitStyles            bool          // emit the style sheet as a separate file
}

// GenerationContext is the mutable, pass-scoped accumulator threaded through
// one generation invocation: referenced framework primitives, handler and
// state declarations, and the per-node style registry. It is reset at the
// start of every Generate call and must not be shared across concurrent
// calls.
type GenerationContext struct {
	ComponentName string
	BaseDevice    DeviceInfo
	Tokens        *ThemeTokens
	Options       GenerationOptions

	imports      map[string]bool
	importOrder  []string
	handlers     map[string]bool
	handlerOrder []string
	stateSeen    map[string]bool
	stateVars    []stateVar
	styles       map[string]*styleEntry
	styleOrder   []string
	warnings     []string
}

type stateVar struct {
	name   string
	setter string
}

// GenerateResult is the assembled output of one generation pass.
type GenerateResult struct {
	Code         string   `json:"code"`
	StylesCode   string   `json:"stylesCode,omitempty"` // split-styles layout only
	Imports      []string `json:"imports"`
	Dependencies []string `json:"dependencies"`
	Warnings     []string `json:"warnings,omitempty"`
}

// Generate walks the node tree and produces complete component source. The
// same tree and options always yield byte-identical code. Per-node emitter
// failures degrade that subtree to a placeholder fragment and a warning;
// caller contract violations (token references without tokens, responsive
// scaling without a base device) fail hard.
func Generate(root *Node, ctx *GenerationContext) (*GenerateResult, error) {
	if root == nil {
		return nil, fmt.Errorf("generate: nil root node")
	}
	if ctx.Options.UseThemeTokens && ctx.Tokens == nil {
		return nil, fmt.Errorf("generate: theme token references requested but no tokens supplied")
	}
	if ctx.Options.ResponsiveScaling && (ctx.BaseDevice.Width <= 0 || ctx.BaseDevice.Height <= 0) {
		return nil, fmt.Errorf("generate: responsive scaling requested but no base device resolved")
	}

	ctx.reset()
	if ctx.ComponentName == "" {
		ctx.ComponentName = componentName(root.Name)
	}

	// Pass 1: markup. Recursive pre-order descent through the emitters.
	markup := ctx.emitNode(root, 0)

	if ctx.Options.ComponentKind == KindScreen && ctx.Options.IncludeNavigationShell {
		ctx.addImport("View")
	}

	// Pass 2: styles. A separate full walk so style collection never has to
	// care about markup nesting or indentation. Both passes derive style
	// names through styleNameFor, which keeps every markup reference backed
	// by a registry entry.
	if ctx.Options.ComponentKind == KindScreen {
		ctx.screenShellStyles()
	}
	ctx.collectStyles(root)

	code, stylesCode := ctx.assemble(markup)

	return &GenerateResult{
		Code:         code,
		StylesCode:   stylesCode,
		Imports:      append([]string(nil), ctx.importOrder...),
		Dependencies: []string{"react", "react-native"},
		Warnings:     append([]string(nil), ctx.warnings...),
	}, nil
}

// reset clears all pass-scoped state so a generation never inherits from a
// prior call sharing the same context object.
func (ctx *GenerationContext) reset() {
	ctx.imports = make(map[string]bool)
	ctx.importOrder = nil
	ctx.handlers = make(map[string]bool)
	ctx.handlerOrder = nil
	ctx.stateSeen = make(map[string]bool)
	ctx.stateVars = nil
	ctx.styles = make(map[string]*styleEntry)
	ctx.styleOrder = nil
	ctx.warnings = nil
}

func (ctx *GenerationContext) addImport(name string) {
	if !ctx.imports[name] {
		ctx.imports[name] = true
		ctx.importOrder = append(ctx.importOrder, name)
	}
}

func (ctx *GenerationContext) addHandler(name string) {
	if !ctx.handlers[name] {
		ctx.handlers[name] = true
		ctx.handlerOrder = append(ctx.handlerOrder, name)
	}
}

func (ctx *GenerationContext) addStateVar(name string) stateVar {
	v := stateVar{name: name, setter: "set" + upperFirst(name)}
	if !ctx.stateSeen[name] {
		ctx.stateSeen[name] = true
		ctx.stateVars = append(ctx.stateVars, v)
	}
	return v
}

func (ctx *GenerationContext) warnf(format string, args ...any) {
	ctx.warnings = append(ctx.warnings, fmt.Sprintf(format, args...))
}

// emitNode renders one node and, for container-like patterns, its children.
// A panicking emitter degrades to a placeholder fragment instead of aborting
// the whole tree.
func (ctx *GenerationContext) emitNode(node *Node, depth int) (fragment string) {
	if node == nil || !node.IsVisible() {
		return ""
	}
	defer func() {
		if r := recover(); r != nil {
			ctx.warnf("render %q: %v", node.Name, r)
			fragment = indentLine(depth, fmt.Sprintf("{/* %s skipped */}", jsxEscape(nodeLabel(node))))
		}
	}()

	pattern := Classify(node)
	styleName := styleNameFor(node, pattern)

	switch pattern.Type {
	case PatternButton:
		return ctx.emitButton(node, pattern, styleName, depth)
	case PatternInput:
		return ctx.emitInput(node, pattern, styleName, depth)
	case PatternText:
		return ctx.emitText(node, styleName, depth)
	case PatternImage:
		return ctx.emitImage(styleName, depth)
	case PatternListItem:
		return ctx.emitTouchableContainer(node, styleName, depth)
	default:
		// card, header, navigation, container
		return ctx.emitViewContainer(node, styleName, depth)
	}
}

func (ctx *GenerationContext) emitButton(node *Node, pattern ComponentPattern, styleName string, depth int) string {
	ctx.addImport("TouchableOpacity")
	ctx.addImport("Text")
	handler := handlerNameFor(node, pattern)
	ctx.addHandler(handler)

	var b strings.Builder
	b.WriteString(indentLine(depth, fmt.Sprintf("<TouchableOpacity style={styles.%s} onPress={%s}>", styleName, handler)))
	if textNode := firstTextNode(node); textNode != nil {
		label := jsxEscape(textNode.Characters)
		textStyle := styleNameFor(textNode, Classify(textNode))
		b.WriteString(indentLine(depth+1, fmt.Sprintf("<Text style={styles.%s}>%s</Text>", textStyle, label)))
	} else if label := pattern.Properties["label"]; label != "" {
		b.WriteString(indentLine(depth+1, fmt.Sprintf("<Text>%s</Text>", jsxEscape(label))))
	}
	b.WriteString(indentLine(depth, "</TouchableOpacity>"))
	return b.String()
}

func (ctx *GenerationContext) emitInput(node *Node, pattern ComponentPattern, styleName string, depth int) string {
	ctx.addImport("TextInput")
	state := ctx.addStateVar(identifierFor(node, pattern))

	placeholder := pattern.Properties["placeholder"]
	if placeholder == "" {
		placeholder = node.Name
	}

	var b strings.Builder
	b.WriteString(indentLine(depth, "<TextInput"))
	b.WriteString(indentLine(depth+1, fmt.Sprintf("style={styles.%s}", styleName)))
	b.WriteString(indentLine(depth+1, fmt.Sprintf("placeholder=%q", jsxEscape(placeholder))))
	b.WriteString(indentLine(depth+1, fmt.Sprintf("value={%s}", state.name)))
	b.WriteString(indentLine(depth+1, fmt.Sprintf("onChangeText={%s}", state.setter)))
	b.WriteString(indentLine(depth, "/>"))
	return b.String()
}

func (ctx *GenerationContext) emitText(node *Node, styleName string, depth int) string {
	ctx.addImport("Text")
	return indentLine(depth, fmt.Sprintf("<Text style={styles.%s}>%s</Text>", styleName, jsxEscape(node.Characters)))
}

func (ctx *GenerationContext) emitImage(styleName string, depth int) string {
	ctx.addImport("Image")
	var b strings.Builder
	b.WriteString(indentLine(depth, fmt.Sprintf("<Image style={styles.%s} source={{ uri: 'https://placehold.co/600x400' }} resizeMode=\"cover\" />", styleName)))
	return b.String()
}

func (ctx *GenerationContext) emitTouchableContainer(node *Node, styleName string, depth int) string {
	ctx.addImport("TouchableOpacity")
	handler := handlerNameFor(node, ComponentPattern{Type: PatternListItem})
	ctx.addHandler(handler)

	var b strings.Builder
	b.WriteString(indentLine(depth, fmt.Sprintf("<TouchableOpacity style={styles.%s} onPress={%s}>", styleName, handler)))
	ctx.emitChildren(&b, node, depth+1)
	b.WriteString(indentLine(depth, "</TouchableOpacity>"))
	return b.String()
}

func (ctx *GenerationContext) emitViewContainer(node *Node, styleName string, depth int) string {
	ctx.addImport("View")
	if len(node.Children) == 0 {
		return indentLine(depth, fmt.Sprintf("<View style={styles.%s} />", styleName))
	}
	var b strings.Builder
	b.WriteString(indentLine(depth, fmt.Sprintf("<View style={styles.%s}>", styleName)))
	ctx.emitChildren(&b, node, depth+1)
	b.WriteString(indentLine(depth, "</View>"))
	return b.String()
}

func (ctx *GenerationContext) emitChildren(b *strings.Builder, node *Node, depth int) {
	for _, child := range node.Children {
		b.WriteString(ctx.emitNode(child, depth))
	}
}

// assemble concatenates the import block, optional responsive helpers, the
// component declaration, the style sheet, and the export.
func (ctx *GenerationContext) assemble(markup string) (code, stylesCode string) {
	opts := ctx.Options
	ts := opts.TypeScript

	var b strings.Builder

	// Import block.
	if len(ctx.stateVars) > 0 {
		b.WriteString("import React, { useState } from 'react';\n")
	} else {
		b.WriteString("import React from 'react';\n")
	}
	rnImports := append([]string(nil), ctx.importOrder...)
	if opts.ComponentKind == KindScreen {
		rnImports = append(rnImports, "SafeAreaView", "ScrollView")
	}
	if !opts.SplitStyles {
		rnImports = append(rnImports, "StyleSheet")
		if opts.ResponsiveScaling {
			rnImports = append(rnImports, "Dimensions")
		}
	}
	b.WriteString(fmt.Sprintf("import { %s } from 'react-native';\n", strings.Join(rnImports, ", ")))
	if opts.UseThemeTokens {
		b.WriteString("import { theme } from './theme';\n")
	}
	if opts.SplitStyles {
		b.WriteString(fmt.Sprintf("import { styles } from './%s.styles';\n", ctx.ComponentName))
	}
	b.WriteString("\n")

	// Responsive scaling helpers, parameterized by the base device. The
	// scale expressions live in the style values, so with split styles the
	// helpers move to the styles file instead.
	if opts.ResponsiveScaling && !opts.SplitStyles {
		b.WriteString(ctx.responsiveHelpers(ts))
	}

	// Component declaration.
	if ts {
		b.WriteString(fmt.Sprintf("const %s: React.FC = () => {\n", ctx.ComponentName))
	} else {
		b.WriteString(fmt.Sprintf("const %s = () => {\n", ctx.ComponentName))
	}
	for _, v := range ctx.stateVars {
		if ts {
			b.WriteString(fmt.Sprintf("  const [%s, %s] = useState<string>('');\n", v.name, v.setter))
		} else {
			b.WriteString(fmt.Sprintf("  const [%s, %s] = useState('');\n", v.name, v.setter))
		}
	}
	for _, h := range ctx.handlerOrder {
		if ts {
			b.WriteString(fmt.Sprintf("  const %s = (): void => {};\n", h))
		} else {
			b.WriteString(fmt.Sprintf("  const %s = () => {};\n", h))
		}
	}
	if len(ctx.stateVars) > 0 || len(ctx.handlerOrder) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("  return (\n")
	body := markup
	if opts.ComponentKind == KindScreen {
		var shell strings.Builder
		shell.WriteString(indentLine(0, "<SafeAreaView style={styles.safeArea}>"))
		shell.WriteString(indentLine(1, "<ScrollView contentContainerStyle={styles.scrollContent}>"))
		shell.WriteString(reindent(markup, 2))
		shell.WriteString(indentLine(1, "</ScrollView>"))
		if opts.IncludeNavigationShell {
			shell.WriteString(indentLine(1, "<View style={styles.navigationBar}>"))
			shell.WriteString(indentLine(2, "{/* navigation items */}"))
			shell.WriteString(indentLine(1, "</View>"))
		}
		shell.WriteString(indentLine(0, "</SafeAreaView>"))
		body = shell.String()
	}
	b.WriteString(reindent(body, 2))
	b.WriteString("  );\n")
	b.WriteString("};\n\n")

	styleBlock := ctx.renderStyleSheet()
	if opts.SplitStyles {
		var sb strings.Builder
		if opts.ResponsiveScaling {
			sb.WriteString("import { StyleSheet, Dimensions } from 'react-native';\n")
		} else {
			sb.WriteString("import { StyleSheet } from 'react-native';\n")
		}
		if opts.UseThemeTokens {
			sb.WriteString("import { theme } from './theme';\n")
		}
		sb.WriteString("\n")
		if opts.ResponsiveScaling {
			sb.WriteString(ctx.responsiveHelpers(ts))
		}
		sb.WriteString("export const styles = StyleSheet.create({\n")
		sb.WriteString(styleBlock)
		sb.WriteString("});\n")
		stylesCode = sb.String()
	} else {
		b.WriteString("const styles = StyleSheet.create({\n")
		b.WriteString(styleBlock)
		b.WriteString("});\n\n")
	}

	b.WriteString(fmt.Sprintf("export default %s;\n", ctx.ComponentName))
	return b.String(), stylesCode
}

// responsiveHelpers emits width/height/moderated scale functions based on
// the base device dimensions.
func (ctx *GenerationContext) responsiveHelpers(ts bool) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("const BASE_WIDTH = %s;\n", fmtNum(ctx.BaseDevice.Width)))
	b.WriteString(fmt.Sprintf("const BASE_HEIGHT = %s;\n", fmtNum(ctx.BaseDevice.Height)))
	b.WriteString("const { width: SCREEN_WIDTH, height: SCREEN_HEIGHT } = Dimensions.get('window');\n")
	if ts {
		b.WriteString("const scaleWidth = (size: number): number => (SCREEN_WIDTH / BASE_WIDTH) * size;\n")
		b.WriteString("const scaleHeight = (size: number): number => (SCREEN_HEIGHT / BASE_HEIGHT) * size;\n")
		b.WriteString("const moderateScale = (size: number, factor = 0.5): number =>\n")
		b.WriteString("  size + (scaleWidth(size) - size) * factor;\n")
	} else {
		b.WriteString("const scaleWidth = (size) => (SCREEN_WIDTH / BASE_WIDTH) * size;\n")
		b.WriteString("const scaleHeight = (size) => (SCREEN_HEIGHT / BASE_HEIGHT) * size;\n")
		b.WriteString("const moderateScale = (size, factor = 0.5) => size + (scaleWidth(size) - size) * factor;\n")
	}
	b.WriteString("\n")
	return b.String()
}

// componentName derives a PascalCase component name from a node display
// name, falling back to a generic name.
func componentName(displayName string) string {
	words := splitWords(displayName)
	if len(words) == 0 {
		return "GeneratedComponent"
	}
	var b strings.Builder
	for _, w := range words {
		b.WriteString(upperFirst(w))
	}
	name := b.String()
	if name == "" || unicode.IsDigit(rune(name[0])) {
		return "GeneratedComponent"
	}
	return name
}

// styleNameFor derives the style-sheet key for a node: lowerCamel of the
// sanitized display name, falling back to the pattern type. Markup emission
// and style collection both go through here; the two passes must agree or
// markup would reference keys that do not exist.
func styleNameFor(node *Node, pattern ComponentPattern) string {
	words := splitWords(node.Name)
	if len(words) == 0 {
		words = splitWords(string(pattern.Type))
	}
	name := lowerCamel(words)
	if name == "" || unicode.IsDigit(rune(name[0])) {
		return "container"
	}
	return name
}

// handlerNameFor derives a deduplicated press-handler name.
func handlerNameFor(node *Node, pattern ComponentPattern) string {
	return "handle" + upperFirst(identifierFor(node, pattern)) + "Press"
}

// identifierFor derives a lowerCamel identifier from the node display name,
// falling back to the pattern type.
func identifierFor(node *Node, pattern ComponentPattern) string {
	words := splitWords(node.Name)
	if len(words) == 0 {
		words = splitWords(string(pattern.Type))
	}
	ident := lowerCamel(words)
	if ident == "" || unicode.IsDigit(rune(ident[0])) {
		return "node"
	}
	return ident
}

// firstTextNode returns the first visible text descendant node. Invisible
// subtrees are skipped, matching the markup and style walks; referencing a
// hidden node here would produce a style key the style pass never registers.
func firstTextNode(node *Node) *Node {
	for _, child := range node.Children {
		if child == nil || !child.IsVisible() {
			continue
		}
		if child.Type == NodeTypeText {
			return child
		}
		if found := firstTextNode(child); found != nil {
			return found
		}
	}
	return nil
}

func nodeLabel(node *Node) string {
	if node.Name != "" {
		return node.Name
	}
	return node.ID
}

// splitWords breaks a display name into alphanumeric words.
func splitWords(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

func lowerCamel(words []string) string {
	var b strings.Builder
	for i, w := range words {
		if i == 0 {
			b.WriteString(strings.ToLower(w))
		} else {
			b.WriteString(upperFirst(strings.ToLower(w)))
		}
	}
	return b.String()
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	runes := []rune(s)
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// jsxEscape keeps node text from breaking out of JSX.
func jsxEscape(s string) string {
	replacer := strings.NewReplacer(
		"{", "&#123;",
		"}", "&#125;",
		"<", "&lt;",
		">", "&gt;",
		"\n", " ",
		"\"", "&quot;",
	)
	return replacer.Replace(s)
}

func indentLine(depth int, line string) string {
	return strings.Repeat("  ", depth) + line + "\n"
}

// reindent shifts every non-empty line of a fragment right by depth levels.
func reindent(fragment string, depth int) string {
	if fragment == "" {
		return ""
	}
	prefix := strings.Repeat("  ", depth)
	lines := strings.Split(strings.TrimRight(fragment, "\n"), "\n")
	var b strings.Builder
	for _, line := range lines {
		if line == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(prefix)
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
