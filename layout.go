package designgen

import (
	"math"
	"regexp"
)

// LayoutType is the inferred layout shape of a container.
type LayoutType string

const (
	LayoutFlex     LayoutType = "flex"
	LayoutGrid     LayoutType = "grid"
	LayoutStack    LayoutType = "stack"
	LayoutAbsolute LayoutType = "absolute"
)

// EdgeInsets holds per-edge padding. Nil edges were absent on the source.
type EdgeInsets struct {
	Top    *float64
	Right  *float64
	Bottom *float64
	Left   *float64
}

// Any reports whether at least one edge is set.
func (e EdgeInsets) Any() bool {
	return e.Top != nil || e.Right != nil || e.Bottom != nil || e.Left != nil
}

// LayoutAnalysis is the derived layout shape of a node. It is recomputed on
// demand and never stored on the node.
type LayoutAnalysis struct {
	Type           LayoutType
	FlexDirection  string // "row" or "column" when Type is flex
	JustifyContent string
	AlignItems     string
	Gap            *float64
	Padding        EdgeInsets
	IsScrollable   bool
}

const scrollHeightThreshold = 800

var scrollableNameRe = regexp.MustCompile(`(?i)scroll|list|feed|content`)

// Grid detection: children quantized to this step must form at least
// minGridLines distinct rows and columns.
const (
	gridQuantizeStep = 10
	minGridChildren  = 4
	minGridLines     = 2
)

// Stack detection: consecutive vertical gaps may deviate from their mean by
// at most this fraction.
const stackGapTolerance = 0.5

// AnalyzeLayout infers the layout shape of a node from its normalized
// properties and its children's properties. Any internal failure degrades to
// absolute layout rather than propagating.
func AnalyzeLayout(props *NodeProps, children []*NodeProps) (analysis LayoutAnalysis) {
	defer func() {
		if recover() != nil {
			analysis = LayoutAnalysis{Type: LayoutAbsolute}
		}
	}()

	analysis = LayoutAnalysis{Type: LayoutAbsolute}
	analysis.IsScrollable = scrollableNameRe.MatchString(props.Name) ||
		(props.HasBox && props.Height > scrollHeightThreshold)

	switch {
	case props.LayoutMode == "HORIZONTAL" || props.LayoutMode == "VERTICAL":
		analysis.Type = LayoutFlex
		if props.LayoutMode == "HORIZONTAL" {
			analysis.FlexDirection = "row"
		} else {
			analysis.FlexDirection = "column"
		}
		analysis.JustifyContent = mapMainAxisAlign(props.PrimaryAxisAlign)
		analysis.AlignItems = mapCrossAxisAlign(props.CounterAxisAlign)
		analysis.Gap = props.ItemSpacing
		analysis.Padding = EdgeInsets{
			Top:    props.PaddingTop,
			Right:  props.PaddingRight,
			Bottom: props.PaddingBottom,
			Left:   props.PaddingLeft,
		}

	case isGrid(children):
		analysis.Type = LayoutGrid

	case isVerticalStack(children):
		analysis.Type = LayoutStack
		analysis.FlexDirection = "column"
	}

	return analysis
}

// mapMainAxisAlign maps a primary-axis alignment mode to a CSS-style value,
// defaulting to flex-start when the source value is unrecognized or absent.
func mapMainAxisAlign(mode string) string {
	switch mode {
	case "CENTER":
		return "center"
	case "MAX":
		return "flex-end"
	case "SPACE_BETWEEN":
		return "space-between"
	default:
		return "flex-start"
	}
}

// mapCrossAxisAlign maps a counter-axis alignment mode, defaulting to
// flex-start.
func mapCrossAxisAlign(mode string) string {
	switch mode {
	case "CENTER":
		return "center"
	case "MAX":
		return "flex-end"
	case "STRETCH":
		return "stretch"
	default:
		return "flex-start"
	}
}

// isGrid reports whether the children's quantized positions form at least a
// 2x2 arrangement of distinct rows and columns.
func isGrid(children []*NodeProps) bool {
	positioned := boxedChildren(children)
	if len(positioned) < minGridChildren {
		return false
	}
	rows := make(map[int]bool)
	cols := make(map[int]bool)
	for _, child := range positioned {
		rows[quantize(child.Y)] = true
		cols[quantize(child.X)] = true
	}
	return len(rows) >= minGridLines && len(cols) >= minGridLines
}

// isVerticalStack reports whether the children's sorted y-positions have
// near-uniform gaps.
func isVerticalStack(children []*NodeProps) bool {
	positioned := boxedChildren(children)
	if len(positioned) < 2 {
		return false
	}

	ys := make([]float64, len(positioned))
	for i, child := range positioned {
		ys[i] = child.Y
	}
	// Insertion sort; child counts are small.
	for i := 1; i < len(ys); i++ {
		for j := i; j > 0 && ys[j] < ys[j-1]; j-- {
			ys[j], ys[j-1] = ys[j-1], ys[j]
		}
	}

	gaps := make([]float64, 0, len(ys)-1)
	var total float64
	for i := 1; i < len(ys); i++ {
		gap := ys[i] - ys[i-1]
		gaps = append(gaps, gap)
		total += gap
	}
	mean := total / float64(len(gaps))
	if mean <= 0 {
		return false
	}
	for _, gap := range gaps {
		if math.Abs(gap-mean) >= stackGapTolerance*mean {
			return false
		}
	}
	return true
}

// boxedChildren filters to children that carry a bounding box.
func boxedChildren(children []*NodeProps) []*NodeProps {
	result := make([]*NodeProps, 0, len(children))
	for _, child := range children {
		if child != nil && child.HasBox {
			result = append(result, child)
		}
	}
	return result
}

func quantize(v float64) int {
	return int(math.Round(v/gridQuantizeStep)) * gridQuantizeStep
}
