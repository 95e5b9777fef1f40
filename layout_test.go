package designgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boxProps(x, y, w, h float64) *NodeProps {
	return &NodeProps{X: x, Y: y, Width: w, Height: h, HasBox: true}
}

func TestAnalyzeLayout_FlexFromLayoutMode(t *testing.T) {
	gap := 8.0
	padding := 16.0
	props := &NodeProps{
		Name:             "Toolbar",
		LayoutMode:       "HORIZONTAL",
		ItemSpacing:      &gap,
		PaddingLeft:      &padding,
		PrimaryAxisAlign: "SPACE_BETWEEN",
		CounterAxisAlign: "CENTER",
	}

	analysis := AnalyzeLayout(props, nil)

	assert.Equal(t, LayoutFlex, analysis.Type)
	assert.Equal(t, "row", analysis.FlexDirection)
	assert.Equal(t, "space-between", analysis.JustifyContent)
	assert.Equal(t, "center", analysis.AlignItems)
	require.NotNil(t, analysis.Gap)
	assert.InDelta(t, 8, *analysis.Gap, 0.001)
	require.NotNil(t, analysis.Padding.Left)
	assert.InDelta(t, 16, *analysis.Padding.Left, 0.001)
}

func TestAnalyzeLayout_VerticalFlex(t *testing.T) {
	props := &NodeProps{LayoutMode: "VERTICAL"}

	analysis := AnalyzeLayout(props, nil)

	assert.Equal(t, LayoutFlex, analysis.Type)
	assert.Equal(t, "column", analysis.FlexDirection)
	assert.Equal(t, "flex-start", analysis.JustifyContent)
}

func TestAnalyzeLayout_GridFromChildPositions(t *testing.T) {
	// 2x3 arrangement: two rows, three columns.
	children := []*NodeProps{
		boxProps(0, 0, 100, 80), boxProps(110, 0, 100, 80), boxProps(220, 0, 100, 80),
		boxProps(0, 90, 100, 80), boxProps(110, 90, 100, 80), boxProps(220, 90, 100, 80),
	}
	props := &NodeProps{Name: "Gallery"}

	analysis := AnalyzeLayout(props, children)
	assert.Equal(t, LayoutGrid, analysis.Type)
}

func TestAnalyzeLayout_GridNeedsEnoughChildren(t *testing.T) {
	children := []*NodeProps{
		boxProps(0, 0, 100, 80), boxProps(110, 90, 100, 80), boxProps(220, 180, 100, 80),
	}
	props := &NodeProps{Name: "Trio"}

	analysis := AnalyzeLayout(props, children)
	assert.NotEqual(t, LayoutGrid, analysis.Type)
}

func TestAnalyzeLayout_VerticalStack(t *testing.T) {
	children := []*NodeProps{
		boxProps(0, 0, 300, 60),
		boxProps(0, 80, 300, 60),
		boxProps(0, 160, 300, 60),
	}
	props := &NodeProps{Name: "Form"}

	analysis := AnalyzeLayout(props, children)

	assert.Equal(t, LayoutStack, analysis.Type)
	assert.Equal(t, "column", analysis.FlexDirection)
}

func TestAnalyzeLayout_IrregularGapsAreAbsolute(t *testing.T) {
	children := []*NodeProps{
		boxProps(0, 0, 300, 60),
		boxProps(0, 80, 300, 60),
		boxProps(0, 400, 300, 60),
	}
	props := &NodeProps{Name: "Collage"}

	analysis := AnalyzeLayout(props, children)
	assert.Equal(t, LayoutAbsolute, analysis.Type)
}

func TestAnalyzeLayout_Scrollable(t *testing.T) {
	tests := []struct {
		name  string
		props *NodeProps
		want  bool
	}{
		{name: "scroll in name", props: &NodeProps{Name: "Scroll Area"}, want: true},
		{name: "feed in name", props: &NodeProps{Name: "News Feed"}, want: true},
		{name: "tall frame", props: &NodeProps{Name: "Home", HasBox: true, Height: 1200}, want: true},
		{name: "short plain frame", props: &NodeProps{Name: "Home", HasBox: true, Height: 600}, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			analysis := AnalyzeLayout(tt.props, nil)
			assert.Equal(t, tt.want, analysis.IsScrollable)
		})
	}
}

func TestAnalyzeLayout_ChildrenWithoutBoxesAreAbsolute(t *testing.T) {
	children := []*NodeProps{{Name: "a"}, {Name: "b"}, nil}
	props := &NodeProps{Name: "Frame"}

	analysis := AnalyzeLayout(props, children)
	assert.Equal(t, LayoutAbsolute, analysis.Type)
}

func TestAnalyzeLayout_PanicDegradesToAbsolute(t *testing.T) {
	analysis := AnalyzeLayout(nil, nil)
	assert.Equal(t, LayoutAbsolute, analysis.Type)
	assert.False(t, analysis.IsScrollable)
}

func TestMapMainAxisAlign(t *testing.T) {
	tests := []struct {
		mode string
		want string
	}{
		{"CENTER", "center"},
		{"MAX", "flex-end"},
		{"SPACE_BETWEEN", "space-between"},
		{"MIN", "flex-start"},
		{"", "flex-start"},
	}

	for _, tt := range tests {
		t.Run(tt.mode, func(t *testing.T) {
			assert.Equal(t, tt.want, mapMainAxisAlign(tt.mode))
		})
	}
}

func TestMapCrossAxisAlign_Stretch(t *testing.T) {
	assert.Equal(t, "stretch", mapCrossAxisAlign("STRETCH"))
}
