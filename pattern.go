package designgen

import (
	"math"
	"regexp"
)

// PatternType is a heuristically inferred UI role for a node.
type PatternType string

const (
	PatternButton     PatternType = "button"
	PatternInput      PatternType = "input"
	PatternCard       PatternType = "card"
	PatternListItem   PatternType = "list-item"
	PatternHeader     PatternType = "header"
	PatternImage      PatternType = "image"
	PatternText       PatternType = "text"
	PatternNavigation PatternType = "navigation"
	PatternContainer  PatternType = "container"
)

// InteractionType distinguishes touchable roles from static ones.
type InteractionType string

const (
	InteractionTouchable InteractionType = "touchable"
	InteractionStatic    InteractionType = "static"
)

// ComponentPattern is the classification result for one node. It is derived
// per request and never cached.
type ComponentPattern struct {
	Type        PatternType
	Confidence  float64
	Interaction InteractionType
	// Properties carries role-specific extras (button label, input
	// placeholder, text content).
	Properties map[string]string
}

// Confidence a winning scorer must strictly exceed; at or below it the node
// falls back to a generic container.
const patternThreshold = 0.3

// containerConfidence is the deliberate floor for the generic fallback so
// containers are never zero-confidence.
const containerConfidence = 0.5

// Scoring weights per pattern type. The scoring shape (independent signals
// summed and clamped to 1) is fixed; the weights are the tunable part.
var buttonWeights = struct {
	Name, Fill, Radius, TextChild, Size float64
}{0.4, 0.2, 0.2, 0.3, 0.2}

var inputWeights = struct {
	Name, Decoration, Placeholder float64
}{0.5, 0.3, 0.3}

var cardWeights = struct {
	Name, Shadow, Stroke, Radius, Children float64
}{0.3, 0.3, 0.2, 0.2, 0.3}

var listItemWeights = struct {
	Name, ListAncestor, TwoChildRow float64
}{0.3, 0.4, 0.3}

var headerWeights = struct {
	Name, TopPosition, Width float64
}{0.4, 0.3, 0.3}

var imageWeights = struct {
	ImageFill, Name float64
}{0.9, 0.3}

var textWeights = struct {
	TextNode float64
}{0.9}

var navigationWeights = struct {
	Name, UniformChildren float64
}{0.5, 0.4}

var (
	buttonNameRe     = regexp.MustCompile(`(?i)button|btn|cta|submit|action`)
	inputNameRe      = regexp.MustCompile(`(?i)input|field|textfield|search|email|password`)
	cardNameRe       = regexp.MustCompile(`(?i)card|tile|item|post`)
	listItemNameRe   = regexp.MustCompile(`(?i)item|row|cell|entry`)
	headerNameRe     = regexp.MustCompile(`(?i)header|navbar|title|appbar`)
	imageNameRe      = regexp.MustCompile(`(?i)image|img|photo|picture|avatar|icon`)
	navigationNameRe = regexp.MustCompile(`(?i)nav|menu|tab|bottom.*bar|navigation`)

	// Text that reads like an input placeholder rather than content.
	placeholderRe = regexp.MustCompile(`(?i)enter|search|type|your|\.\.\.|…`)
)

// Button geometry bounds.
const (
	buttonMinWidth  = 60
	buttonMaxWidth  = 300
	buttonMinHeight = 32
	buttonMaxHeight = 60
)

const (
	headerMaxY     = 100
	headerMinWidth = 300
)

// Navigation children widths must agree within this many units.
const navigationWidthTolerance = 20

type patternScorer struct {
	pattern PatternType
	score   func(node *Node, props *NodeProps) float64
}

// scorers run in a fixed order; the order is also the tie-break, since
// selection requires a strictly higher confidence to displace the leader.
var scorers = []patternScorer{
	{PatternButton, scoreButton},
	{PatternInput, scoreInput},
	{PatternCard, scoreCard},
	{PatternListItem, scoreListItem},
	{PatternHeader, scoreHeader},
	{PatternImage, scoreImage},
	{PatternText, scoreText},
	{PatternNavigation, scoreNavigation},
}

// Classify scores a node against every candidate UI role and picks the
// strictly highest confidence. A winner at or below the threshold falls back
// to a generic container. Each scorer is isolated: an internal failure
// neutralizes that scorer to zero without suppressing the others.
func Classify(node *Node) ComponentPattern {
	props := Extract(node)

	best := ComponentPattern{Type: PatternContainer, Confidence: 0}
	for _, scorer := range scorers {
		confidence := runScorer(scorer, node, props)
		if confidence > best.Confidence {
			best.Type = scorer.pattern
			best.Confidence = confidence
		}
	}

	if best.Confidence <= patternThreshold {
		return ComponentPattern{
			Type:        PatternContainer,
			Confidence:  containerConfidence,
			Interaction: InteractionStatic,
		}
	}

	best.Interaction = interactionFor(best.Type)
	best.Properties = patternProperties(best.Type, node)
	return best
}

// runScorer isolates a single scorer so one failing heuristic cannot take
// down classification for the node.
func runScorer(scorer patternScorer, node *Node, props *NodeProps) (confidence float64) {
	defer func() {
		if recover() != nil {
			confidence = 0
		}
	}()
	return clamp01(scorer.score(node, props))
}

func interactionFor(pattern PatternType) InteractionType {
	switch pattern {
	case PatternButton, PatternInput, PatternListItem, PatternNavigation:
		return InteractionTouchable
	default:
		return InteractionStatic
	}
}

// patternProperties fills the role-specific property bag.
func patternProperties(pattern PatternType, node *Node) map[string]string {
	switch pattern {
	case PatternButton:
		if label := firstTextContent(node); label != "" {
			return map[string]string{"label": label}
		}
	case PatternInput:
		if placeholder := firstTextContent(node); placeholder != "" {
			return map[string]string{"placeholder": placeholder}
		}
	case PatternText:
		if node.Characters != "" {
			return map[string]string{"content": node.Characters}
		}
	}
	return nil
}

func scoreButton(node *Node, props *NodeProps) float64 {
	var score float64
	if buttonNameRe.MatchString(props.Name) {
		score += buttonWeights.Name
	}
	if len(props.Fills) > 0 {
		score += buttonWeights.Fill
	}
	if props.CornerRadius != nil && *props.CornerRadius > 0 {
		score += buttonWeights.Radius
	}
	if hasTextDescendant(node) {
		score += buttonWeights.TextChild
	}
	if props.HasBox &&
		props.Width >= buttonMinWidth && props.Width <= buttonMaxWidth &&
		props.Height >= buttonMinHeight && props.Height <= buttonMaxHeight {
		score += buttonWeights.Size
	}
	return score
}

func scoreInput(node *Node, props *NodeProps) float64 {
	var score float64
	if inputNameRe.MatchString(props.Name) {
		score += inputWeights.Name
	}
	if len(props.Strokes) > 0 || len(props.Fills) > 0 {
		score += inputWeights.Decoration
	}
	if placeholderRe.MatchString(firstTextContent(node)) {
		score += inputWeights.Placeholder
	}
	return score
}

func scoreCard(node *Node, props *NodeProps) float64 {
	var score float64
	if cardNameRe.MatchString(props.Name) {
		score += cardWeights.Name
	}
	if _, ok := firstDropShadow(props); ok {
		score += cardWeights.Shadow
	}
	if len(props.Strokes) > 0 {
		score += cardWeights.Stroke
	}
	if props.CornerRadius != nil && *props.CornerRadius > 4 {
		score += cardWeights.Radius
	}
	if props.ChildCount >= 2 {
		score += cardWeights.Children
	}
	return score
}

func scoreListItem(node *Node, props *NodeProps) float64 {
	var score float64
	if listItemNameRe.MatchString(props.Name) {
		score += listItemWeights.Name
	}
	// The list-like-ancestor signal needs parent context the classifier is
	// never handed, so it contributes nothing. The weight stays declared so
	// the heuristic's shape is visible.
	score += 0 * listItemWeights.ListAncestor
	if props.ChildCount == 2 && props.HasBox && props.Width > props.Height {
		score += listItemWeights.TwoChildRow
	}
	return score
}

func scoreHeader(_ *Node, props *NodeProps) float64 {
	var score float64
	if headerNameRe.MatchString(props.Name) {
		score += headerWeights.Name
	}
	if props.HasBox && props.Y < headerMaxY {
		score += headerWeights.TopPosition
	}
	if props.HasBox && props.Width > headerMinWidth {
		score += headerWeights.Width
	}
	return score
}

func scoreImage(_ *Node, props *NodeProps) float64 {
	var score float64
	if props.Type == NodeTypeRectangle || props.Type == NodeTypeEllipse {
		for _, paint := range props.Fills {
			if paint.Type == "IMAGE" {
				score += imageWeights.ImageFill
				break
			}
		}
	}
	if score > 0 && imageNameRe.MatchString(props.Name) {
		score += imageWeights.Name
	}
	return score
}

func scoreText(_ *Node, props *NodeProps) float64 {
	if props.Type == NodeTypeText {
		return textWeights.TextNode
	}
	return 0
}

func scoreNavigation(node *Node, props *NodeProps) float64 {
	var score float64
	if navigationNameRe.MatchString(props.Name) {
		score += navigationWeights.Name
	}
	if hasUniformChildren(node) {
		score += navigationWeights.UniformChildren
	}
	return score
}

// hasUniformChildren reports whether the node has at least two children of
// the same type with near-equal widths.
func hasUniformChildren(node *Node) bool {
	if len(node.Children) < 2 {
		return false
	}
	first := node.Children[0]
	if first.AbsoluteBoundingBox == nil {
		return false
	}
	width := first.AbsoluteBoundingBox.Width
	for _, child := range node.Children[1:] {
		if child.Type != first.Type || child.AbsoluteBoundingBox == nil {
			return false
		}
		if math.Abs(child.AbsoluteBoundingBox.Width-width) > navigationWidthTolerance {
			return false
		}
	}
	return true
}

// hasTextDescendant reports whether any descendant is a text node.
func hasTextDescendant(node *Node) bool {
	for _, child := range node.Children {
		if child.Type == NodeTypeText {
			return true
		}
		if hasTextDescendant(child) {
			return true
		}
	}
	return false
}

// firstTextContent returns the characters of the first text descendant.
func firstTextContent(node *Node) string {
	if node.Type == NodeTypeText {
		return node.Characters
	}
	for _, child := range node.Children {
		if content := firstTextContent(child); content != "" {
			return content
		}
	}
	return ""
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
