package designgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buttonNode() *Node {
	radius := 8.0
	return &Node{
		ID:                  "btn",
		Name:                "Submit Button",
		Type:                NodeTypeFrame,
		AbsoluteBoundingBox: &Rect{X: 20, Y: 400, Width: 200, Height: 48},
		Fills:               solidFill(Color{R: 0.38, G: 0, B: 0.93, A: 1}),
		CornerRadius:        FieldOf(radius),
		Children: []*Node{
			{ID: "lbl", Name: "Label", Type: NodeTypeText, Characters: "Submit"},
		},
	}
}

func TestClassify_Button(t *testing.T) {
	pattern := Classify(buttonNode())

	assert.Equal(t, PatternButton, pattern.Type)
	assert.InDelta(t, 1.0, pattern.Confidence, 0.001)
	assert.Equal(t, InteractionTouchable, pattern.Interaction)
	assert.Equal(t, "Submit", pattern.Properties["label"])
}

func TestClassify_PlainRectangleFallsBackToContainer(t *testing.T) {
	node := &Node{
		ID:   "r1",
		Name: "Rectangle 42",
		Type: NodeTypeRectangle,
	}

	pattern := Classify(node)

	assert.Equal(t, PatternContainer, pattern.Type)
	assert.InDelta(t, containerConfidence, pattern.Confidence, 0.001)
	assert.Equal(t, InteractionStatic, pattern.Interaction)
	assert.Nil(t, pattern.Properties)
}

func TestClassify_TextNode(t *testing.T) {
	node := &Node{
		ID:         "t1",
		Name:       "Some copy",
		Type:       NodeTypeText,
		Characters: "Hello world",
	}

	pattern := Classify(node)

	assert.Equal(t, PatternText, pattern.Type)
	assert.Equal(t, "Hello world", pattern.Properties["content"])
	assert.Equal(t, InteractionStatic, pattern.Interaction)
}

func TestClassify_ImageFill(t *testing.T) {
	node := &Node{
		ID:    "img",
		Name:  "Avatar",
		Type:  NodeTypeEllipse,
		Fills: []Paint{{Type: "IMAGE"}},
	}

	pattern := Classify(node)

	assert.Equal(t, PatternImage, pattern.Type)
	// Image fill plus matching name: 0.9 + 0.3 clamps to 1.
	assert.InDelta(t, 1.0, pattern.Confidence, 0.001)
}

func TestClassify_ImageNameAloneIsNotEnough(t *testing.T) {
	// A frame merely named "icon" with no image fill should not classify as
	// an image.
	node := &Node{ID: "f", Name: "icon holder", Type: NodeTypeFrame}

	pattern := Classify(node)
	assert.NotEqual(t, PatternImage, pattern.Type)
}

func TestClassify_Input(t *testing.T) {
	node := &Node{
		ID:      "in",
		Name:    "Email Input",
		Type:    NodeTypeFrame,
		Strokes: solidFill(Color{R: 0.8, G: 0.8, B: 0.8, A: 1}),
		Children: []*Node{
			{ID: "ph", Name: "placeholder", Type: NodeTypeText, Characters: "Enter your email..."},
		},
	}

	pattern := Classify(node)

	assert.Equal(t, PatternInput, pattern.Type)
	assert.InDelta(t, 1.0, pattern.Confidence, 0.001)
	assert.Equal(t, "Enter your email...", pattern.Properties["placeholder"])
}

func TestClassify_Navigation(t *testing.T) {
	tab := func(id string, x float64) *Node {
		return &Node{
			ID: id, Name: id, Type: NodeTypeFrame,
			AbsoluteBoundingBox: &Rect{X: x, Y: 800, Width: 90, Height: 56},
		}
	}
	node := &Node{
		ID:                  "nav",
		Name:                "Bottom Tab Bar",
		Type:                NodeTypeFrame,
		AbsoluteBoundingBox: &Rect{X: 0, Y: 780, Width: 375, Height: 64},
		Children:            []*Node{tab("home", 0), tab("search", 94), tab("profile", 188)},
	}

	pattern := Classify(node)

	assert.Equal(t, PatternNavigation, pattern.Type)
	assert.Equal(t, InteractionTouchable, pattern.Interaction)
}

func TestClassify_Header(t *testing.T) {
	node := &Node{
		ID:                  "hdr",
		Name:                "Header",
		Type:                NodeTypeFrame,
		AbsoluteBoundingBox: &Rect{X: 0, Y: 0, Width: 375, Height: 56},
	}

	pattern := Classify(node)
	assert.Equal(t, PatternHeader, pattern.Type)
}

func TestClassify_Card(t *testing.T) {
	radius := 12.0
	node := &Node{
		ID:           "card",
		Name:         "Product Card",
		Type:         NodeTypeFrame,
		CornerRadius: FieldOf(radius),
		Effects:      []Effect{{Type: "DROP_SHADOW", Radius: 4}},
		Children: []*Node{
			{ID: "a", Name: "Title", Type: NodeTypeText, Characters: "A"},
			{ID: "b", Name: "Price", Type: NodeTypeText, Characters: "B"},
		},
	}

	pattern := Classify(node)
	assert.Equal(t, PatternCard, pattern.Type)
}

func TestClassify_ConfidenceBounds(t *testing.T) {
	nodes := []*Node{
		buttonNode(),
		{ID: "x", Name: "", Type: NodeTypeFrame},
		{ID: "y", Name: "card item search button nav", Type: NodeTypeFrame},
		{ID: "z", Name: "t", Type: NodeTypeText, Characters: "z"},
	}

	for _, node := range nodes {
		pattern := Classify(node)
		assert.GreaterOrEqual(t, pattern.Confidence, 0.0, "node %s", node.ID)
		assert.LessOrEqual(t, pattern.Confidence, 1.0, "node %s", node.ID)
		assert.NotZero(t, pattern.Confidence, "node %s", node.ID)
	}
}

func TestClassify_ScorerPanicIsIsolated(t *testing.T) {
	// A nil child blows up every scorer that walks the children; the
	// props-only scorers still run and the node falls back cleanly.
	node := &Node{
		ID:       "n1",
		Name:     "Rectangle 7",
		Type:     NodeTypeFrame,
		Children: []*Node{nil},
	}

	pattern := Classify(node)

	assert.Equal(t, PatternContainer, pattern.Type)
	assert.InDelta(t, containerConfidence, pattern.Confidence, 0.001)
}

func TestHasUniformChildren(t *testing.T) {
	box := func(w float64) *Node {
		return &Node{Type: NodeTypeFrame, AbsoluteBoundingBox: &Rect{Width: w, Height: 40}}
	}

	tests := []struct {
		name     string
		children []*Node
		want     bool
	}{
		{name: "equal widths", children: []*Node{box(90), box(95), box(88)}, want: true},
		{name: "width outlier", children: []*Node{box(90), box(200)}, want: false},
		{name: "mixed types", children: []*Node{box(90), {Type: NodeTypeText, AbsoluteBoundingBox: &Rect{Width: 90}}}, want: false},
		{name: "single child", children: []*Node{box(90)}, want: false},
		{name: "missing box", children: []*Node{box(90), {Type: NodeTypeFrame}}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			node := &Node{Children: tt.children}
			assert.Equal(t, tt.want, hasUniformChildren(node))
		})
	}
}

func TestFirstTextContent(t *testing.T) {
	node := &Node{
		Type: NodeTypeFrame,
		Children: []*Node{
			{Type: NodeTypeFrame, Children: []*Node{
				{Type: NodeTypeText, Characters: "nested"},
			}},
			{Type: NodeTypeText, Characters: "sibling"},
		},
	}
	require.Equal(t, "nested", firstTextContent(node))
	assert.Equal(t, "", firstTextContent(&Node{Type: NodeTypeFrame}))
}
