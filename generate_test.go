package designgen

import (
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func screenFixture() *Node {
	return &Node{
		ID:                  "1:1",
		Name:                "Home Screen",
		Type:                NodeTypeFrame,
		AbsoluteBoundingBox: &Rect{X: 0, Y: 0, Width: 375, Height: 667},
		Children: []*Node{
			{
				ID:                  "2:1",
				Name:                "Header",
				Type:                NodeTypeFrame,
				AbsoluteBoundingBox: &Rect{X: 0, Y: 0, Width: 375, Height: 56},
				Children: []*Node{
					{ID: "2:2", Name: "Welcome", Type: NodeTypeText, Characters: "Welcome back",
						Style: &TypeStyle{FontFamily: "Inter", FontSize: FieldOf(24.0), FontStyle: "Bold"}},
				},
			},
			{
				ID:                  "3:1",
				Name:                "Product Card",
				Type:                NodeTypeFrame,
				AbsoluteBoundingBox: &Rect{X: 16, Y: 80, Width: 343, Height: 120},
				CornerRadius:        FieldOf(12.0),
				Fills:               solidFill(Color{R: 1, G: 1, B: 1, A: 1}),
				Effects:             []Effect{{Type: "DROP_SHADOW", Radius: 4, Offset: &Vector{Y: 2}}},
				Children: []*Node{
					{ID: "3:2", Name: "Title", Type: NodeTypeText, Characters: "Espresso",
						Style: &TypeStyle{FontFamily: "Inter", FontSize: FieldOf(16.0)}},
					{ID: "3:3", Name: "Price", Type: NodeTypeText, Characters: "$4.50",
						Style: &TypeStyle{FontFamily: "Inter", FontSize: FieldOf(14.0)}},
				},
			},
			buttonNode(),
		},
	}
}

func screenContext() *GenerationContext {
	return &GenerationContext{
		BaseDevice: DeviceInfo{Name: "iPhone SE", Width: 375, Height: 667},
		Options: GenerationOptions{
			TypeScript:        true,
			ResponsiveScaling: true,
			ComponentKind:     KindScreen,
		},
	}
}

func TestGenerate_ScreenRoundTrip(t *testing.T) {
	result, err := Generate(screenFixture(), screenContext())
	require.NoError(t, err)

	code := result.Code

	// Component shell.
	assert.Contains(t, code, "const HomeScreen: React.FC = () => {")
	assert.Contains(t, code, "export default HomeScreen;")
	assert.Contains(t, code, "<SafeAreaView style={styles.safeArea}>")
	assert.Contains(t, code, "<ScrollView contentContainerStyle={styles.scrollContent}>")

	// Responsive helpers derive from the base device.
	assert.Contains(t, code, "const BASE_WIDTH = 375;")
	assert.Contains(t, code, "const BASE_HEIGHT = 667;")
	assert.Contains(t, code, "scaleWidth(375)")

	// Markup for each role.
	assert.Contains(t, code, "<View style={styles.header}>")
	assert.Contains(t, code, "<Text style={styles.welcome}>Welcome back</Text>")
	assert.Contains(t, code, "<View style={styles.productCard}>")
	assert.Contains(t, code, "<Text style={styles.title}>Espresso</Text>")
	assert.Contains(t, code, "<TouchableOpacity style={styles.submitButton} onPress={handleSubmitButtonPress}>")
	assert.Contains(t, code, "const handleSubmitButtonPress = (): void => {};")

	// Style entries carry extracted visuals.
	assert.Contains(t, code, "shadowRadius: 4,")
	assert.Contains(t, code, "shadowOffset: { width: 0, height: 2 },")
	assert.Contains(t, code, "elevation: 3,")
	assert.Contains(t, code, "fontSize: moderateScale(24),")
	assert.Contains(t, code, "fontWeight: '700',")
	assert.Contains(t, code, "borderRadius: 12,")

	assert.Equal(t, []string{"react", "react-native"}, result.Dependencies)
	assert.Empty(t, result.Warnings)
}

func TestGenerate_Deterministic(t *testing.T) {
	first, err := Generate(screenFixture(), screenContext())
	require.NoError(t, err)
	second, err := Generate(screenFixture(), screenContext())
	require.NoError(t, err)

	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.StylesCode, second.StylesCode)
	assert.Equal(t, first.Imports, second.Imports)
}

var styleRefRe = regexp.MustCompile(`styles\.(\w+)`)

// assertStyleRefsResolve checks that every styles.X reference in the markup
// has a matching entry in the rendered sheet.
func assertStyleRefsResolve(t *testing.T, code, sheet string) {
	t.Helper()
	for _, match := range styleRefRe.FindAllStringSubmatch(code, -1) {
		name := match[1]
		assert.Contains(t, sheet, "  "+name+": {",
			"markup references styles.%s but the sheet has no such entry", name)
	}
}

func TestGenerate_EveryStyleReferenceResolves(t *testing.T) {
	result, err := Generate(screenFixture(), screenContext())
	require.NoError(t, err)

	assertStyleRefsResolve(t, result.Code, result.Code)
}

func TestGenerate_HiddenButtonLabelLeavesNoDanglingReference(t *testing.T) {
	off := false
	button := buttonNode()
	button.Children[0].Visible = &off
	root := &Node{
		ID:       "1:1",
		Name:     "Login",
		Type:     NodeTypeFrame,
		Children: []*Node{button},
	}
	ctx := &GenerationContext{Options: GenerationOptions{ComponentKind: KindComponent}}

	result, err := Generate(root, ctx)
	require.NoError(t, err)

	// The hidden label never gets a style entry, so the button text falls
	// back to the unstyled classification label.
	assert.NotContains(t, result.Code, "styles.label")
	assert.Contains(t, result.Code, "<Text>Submit</Text>")
	assertStyleRefsResolve(t, result.Code, result.Code)
}

func TestGenerate_InputState(t *testing.T) {
	root := &Node{
		ID:   "1:1",
		Name: "Login",
		Type: NodeTypeFrame,
		Children: []*Node{
			{
				ID:      "2:1",
				Name:    "Email Input",
				Type:    NodeTypeFrame,
				Strokes: solidFill(Color{R: 0.8, G: 0.8, B: 0.8, A: 1}),
				Children: []*Node{
					{ID: "2:2", Name: "ph", Type: NodeTypeText, Characters: "Enter your email"},
				},
			},
		},
	}
	ctx := &GenerationContext{Options: GenerationOptions{TypeScript: true, ComponentKind: KindComponent}}

	result, err := Generate(root, ctx)
	require.NoError(t, err)

	assert.Contains(t, result.Code, "import React, { useState } from 'react';")
	assert.Contains(t, result.Code, "const [emailInput, setEmailInput] = useState<string>('');")
	assert.Contains(t, result.Code, "value={emailInput}")
	assert.Contains(t, result.Code, "onChangeText={setEmailInput}")
	assert.Contains(t, result.Code, `placeholder="Enter your email"`)
}

func TestGenerate_ThemeTokenReferences(t *testing.T) {
	tokens := &ThemeTokens{
		Colors:  []ColorToken{{Name: "primary", Value: "#6200EE"}},
		Spacing: []SpacingToken{{Name: "spacing2x", Value: 8}},
	}
	root := &Node{
		ID:                  "1:1",
		Name:                "Hero",
		Type:                NodeTypeFrame,
		AbsoluteBoundingBox: &Rect{Width: 300, Height: 200},
		Fills:               solidFill(Color{R: 0x62 / 255.0, G: 0, B: 0xEE / 255.0, A: 1}),
		CornerRadius:        FieldOf(8.0),
	}
	ctx := &GenerationContext{
		Tokens:  tokens,
		Options: GenerationOptions{UseThemeTokens: true, ComponentKind: KindComponent},
	}

	result, err := Generate(root, ctx)
	require.NoError(t, err)

	assert.Contains(t, result.Code, "import { theme } from './theme';")
	assert.Contains(t, result.Code, "backgroundColor: theme.colors.primary,")
	assert.Contains(t, result.Code, "borderRadius: theme.spacing.spacing2x,")
}

func TestGenerate_UnmatchedValuesStayLiteral(t *testing.T) {
	tokens := &ThemeTokens{Colors: []ColorToken{{Name: "primary", Value: "#6200EE"}}}
	root := &Node{
		ID:    "1:1",
		Name:  "Hero",
		Type:  NodeTypeFrame,
		Fills: solidFill(Color{R: 1, A: 1}),
	}
	ctx := &GenerationContext{
		Tokens:  tokens,
		Options: GenerationOptions{UseThemeTokens: true, ComponentKind: KindComponent},
	}

	result, err := Generate(root, ctx)
	require.NoError(t, err)
	assert.Contains(t, result.Code, "backgroundColor: '#FF0000',")
}

func TestGenerate_SplitStyles(t *testing.T) {
	ctx := screenContext()
	ctx.Options.SplitStyles = true

	result, err := Generate(screenFixture(), ctx)
	require.NoError(t, err)

	assert.Contains(t, result.Code, "import { styles } from './HomeScreen.styles';")
	assert.NotContains(t, result.Code, "StyleSheet.create")
	require.NotEmpty(t, result.StylesCode)
	assert.Contains(t, result.StylesCode, "export const styles = StyleSheet.create({")
	assert.Contains(t, result.StylesCode, "  safeArea: {")

	// The scale expressions live in the styles file, so the helpers and the
	// Dimensions import must follow them there.
	assert.Contains(t, result.StylesCode, "import { StyleSheet, Dimensions } from 'react-native';")
	assert.Contains(t, result.StylesCode, "const BASE_WIDTH = 375;")
	assert.Contains(t, result.StylesCode, "const scaleWidth = (size: number): number => (SCREEN_WIDTH / BASE_WIDTH) * size;")
	assert.Contains(t, result.StylesCode, "scaleWidth(375)")
	assert.NotContains(t, result.Code, "scaleWidth")
	assert.NotContains(t, result.Code, "Dimensions")
}

func TestGenerate_SplitStylesWithoutResponsive(t *testing.T) {
	ctx := screenContext()
	ctx.Options.SplitStyles = true
	ctx.Options.ResponsiveScaling = false

	result, err := Generate(screenFixture(), ctx)
	require.NoError(t, err)

	assert.Contains(t, result.StylesCode, "import { StyleSheet } from 'react-native';")
	assert.NotContains(t, result.StylesCode, "Dimensions")
	assert.NotContains(t, result.StylesCode, "scaleWidth")
}

func TestGenerate_NavigationShell(t *testing.T) {
	ctx := screenContext()
	ctx.Options.IncludeNavigationShell = true

	result, err := Generate(screenFixture(), ctx)
	require.NoError(t, err)

	assert.Contains(t, result.Code, "<View style={styles.navigationBar}>")
	assert.Contains(t, result.Code, "  navigationBar: {")
}

func TestGenerate_JavaScriptOutput(t *testing.T) {
	ctx := screenContext()
	ctx.Options.TypeScript = false

	result, err := Generate(screenFixture(), ctx)
	require.NoError(t, err)

	assert.Contains(t, result.Code, "const HomeScreen = () => {")
	assert.NotContains(t, result.Code, "React.FC")
	assert.NotContains(t, result.Code, ": number")
}

func TestGenerate_SkipsInvisibleNodes(t *testing.T) {
	off := false
	root := screenFixture()
	root.Children[1].Visible = &off

	result, err := Generate(root, screenContext())
	require.NoError(t, err)

	assert.NotContains(t, result.Code, "productCard")
	assert.NotContains(t, result.Code, "Espresso")
}

func TestGenerate_PanickingNodeDegradesToPlaceholder(t *testing.T) {
	// A nil child entry blows up role-property derivation for this node
	// while its scorers still agree on the button role: the empty text child
	// satisfies the text-descendant signal, then label extraction walks past
	// it into the nil sibling.
	bad := &Node{
		ID:                  "9:1",
		Name:                "Bad Button",
		Type:                NodeTypeFrame,
		AbsoluteBoundingBox: &Rect{X: 20, Y: 400, Width: 200, Height: 48},
		Fills:               solidFill(Color{R: 1, A: 1}),
		CornerRadius:        FieldOf(8.0),
		Children: []*Node{
			{ID: "9:2", Name: "Empty", Type: NodeTypeText, Characters: ""},
			nil,
		},
	}
	root := &Node{
		ID:   "1:1",
		Name: "Login",
		Type: NodeTypeFrame,
		Children: []*Node{
			bad,
			{ID: "2:1", Name: "Caption", Type: NodeTypeText, Characters: "still here"},
		},
	}
	ctx := &GenerationContext{Options: GenerationOptions{ComponentKind: KindComponent}}

	result, err := Generate(root, ctx)
	require.NoError(t, err)

	// The bad subtree degrades to a placeholder; its sibling still renders.
	assert.Contains(t, result.Code, "{/* Bad Button skipped */}")
	assert.Contains(t, result.Code, "<Text style={styles.caption}>still here</Text>")
	assertStyleRefsResolve(t, result.Code, result.Code)

	// Both walks record the degradation.
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[0], `render "Bad Button"`)
	assert.Contains(t, result.Warnings[1], `style "Bad Button"`)
}

func TestGenerate_PreconditionErrors(t *testing.T) {
	tests := []struct {
		name    string
		root    *Node
		ctx     *GenerationContext
		wantErr string
	}{
		{
			name:    "nil root",
			root:    nil,
			ctx:     &GenerationContext{},
			wantErr: "nil root",
		},
		{
			name:    "tokens requested without tokens",
			root:    screenFixture(),
			ctx:     &GenerationContext{Options: GenerationOptions{UseThemeTokens: true}},
			wantErr: "no tokens",
		},
		{
			name:    "responsive without base device",
			root:    screenFixture(),
			ctx:     &GenerationContext{Options: GenerationOptions{ResponsiveScaling: true}},
			wantErr: "no base device",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Generate(tt.root, tt.ctx)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGenerate_ContextReuseDoesNotLeak(t *testing.T) {
	ctx := screenContext()

	first, err := Generate(screenFixture(), ctx)
	require.NoError(t, err)
	second, err := Generate(screenFixture(), ctx)
	require.NoError(t, err)

	assert.Equal(t, first.Code, second.Code)
	assert.Equal(t, first.Imports, second.Imports)
}

func TestComponentName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Home Screen", "HomeScreen"},
		{"login-form", "LoginForm"},
		{"", "GeneratedComponent"},
		{"123 Frame", "GeneratedComponent"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, componentName(tt.input))
		})
	}
}

func TestStyleNameFor(t *testing.T) {
	tests := []struct {
		name    string
		node    *Node
		pattern ComponentPattern
		want    string
	}{
		{
			name:    "display name",
			node:    &Node{Name: "Product Card"},
			pattern: ComponentPattern{Type: PatternCard},
			want:    "productCard",
		},
		{
			name:    "falls back to pattern type",
			node:    &Node{Name: "!!!"},
			pattern: ComponentPattern{Type: PatternButton},
			want:    "button",
		},
		{
			name:    "digit-leading name",
			node:    &Node{Name: "42 things"},
			pattern: ComponentPattern{Type: PatternContainer},
			want:    "container",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, styleNameFor(tt.node, tt.pattern))
		})
	}
}

func TestJSXEscape(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{"a < b", "a &lt; b"},
		{"{braces}", "&#123;braces&#125;"},
		{"line\nbreak", "line break"},
		{`say "hi"`, "say &quot;hi&quot;"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, jsxEscape(tt.input))
		})
	}
}

func TestReindent(t *testing.T) {
	fragment := "<View>\n  <Text>hi</Text>\n</View>\n"
	got := reindent(fragment, 1)
	assert.Equal(t, "  <View>\n    <Text>hi</Text>\n  </View>\n", got)
	assert.Equal(t, "", reindent("", 2))
}

func TestRenderStyleSheet_RegistrationOrder(t *testing.T) {
	ctx := &GenerationContext{}
	ctx.reset()
	entry, _ := ctx.registerStyle("second")
	entry.set("flex", "1")
	entry, _ = ctx.registerStyle("first")
	entry.set("flex", "2")

	sheet := ctx.renderStyleSheet()
	assert.Less(t, strings.Index(sheet, "second:"), strings.Index(sheet, "first:"))
}

func TestStyleEntry_SetOverwritesInPlace(t *testing.T) {
	entry := &styleEntry{}
	entry.set("padding", "8")
	entry.set("margin", "4")
	entry.set("padding", "16")

	require.Len(t, entry.props, 2)
	assert.Equal(t, "padding", entry.props[0].key)
	assert.Equal(t, "16", entry.props[0].value)
}
