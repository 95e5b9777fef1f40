package designgen

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Per-category caps on the reduced token lists.
const (
	maxColorTokens      = 20
	maxTypographyTokens = 10
	maxSpacingTokens    = 15

	// Spacing values outside (0, 200] are noise (page offsets, full-bleed
	// frames) and are excluded from the spacing scale.
	maxSpacingValue = 200
)

// ColorToken is a named, ranked color extracted from the document.
type ColorToken struct {
	Name          string `json:"name"`
	Value         string `json:"value"` // uppercase #RRGGBB
	UsageCategory string `json:"usageCategory"`
	Count         int    `json:"count"`
}

// TypographyToken is a named, ranked (family, size, weight) text style.
type TypographyToken struct {
	Name          string  `json:"name"`
	FontFamily    string  `json:"fontFamily"`
	FontSize      float64 `json:"fontSize"`
	FontWeight    int     `json:"fontWeight"`
	UsageCategory string  `json:"usageCategory"`
	Count         int     `json:"count"`
}

// SpacingToken is a named, ranked spacing value.
type SpacingToken struct {
	Name          string  `json:"name"`
	Value         float64 `json:"value"`
	UsageCategory string  `json:"usageCategory"`
	Count         int     `json:"count"`
}

// ThemeTokens is the reduced, ranked, deduplicated token set for a document.
// Ordering within each list is by descending usage count, ties broken by
// first-encountered order during the scan.
type ThemeTokens struct {
	Colors     []ColorToken      `json:"colors"`
	Typography []TypographyToken `json:"typography"`
	Spacing    []SpacingToken    `json:"spacing"`
}

// ColorByValue returns the token for an exact hex value, if one exists.
func (t *ThemeTokens) ColorByValue(hex string) (ColorToken, bool) {
	for _, c := range t.Colors {
		if c.Value == hex {
			return c, true
		}
	}
	return ColorToken{}, false
}

// SpacingByValue returns the token for an exact spacing value, if one exists.
func (t *ThemeTokens) SpacingByValue(v float64) (SpacingToken, bool) {
	for _, s := range t.Spacing {
		if s.Value == v {
			return s, true
		}
	}
	return SpacingToken{}, false
}

type typographyKey struct {
	family string
	size   int
	weight int
}

// Aggregator tallies color, typography, and spacing usage across one
// document scan. Create a fresh value per scan; it is not safe to share
// across concurrent scans.
type Aggregator struct {
	colors     map[string]int
	colorOrder []string

	typography map[typographyKey]int
	typoOrder  []typographyKey

	spacing      map[float64]int
	spacingOrder []float64
}

// NewAggregator returns an empty aggregator.
func NewAggregator() *Aggregator {
	a := &Aggregator{}
	a.Reset()
	return a
}

// Reset clears all three frequency tables.
func (a *Aggregator) Reset() {
	a.colors = make(map[string]int)
	a.colorOrder = nil
	a.typography = make(map[typographyKey]int)
	a.typoOrder = nil
	a.spacing = make(map[float64]int)
	a.spacingOrder = nil
}

// ScanDocument walks every page of the document once and reduces the
// frequency tables to a ThemeTokens value.
func ScanDocument(doc *Document) *ThemeTokens {
	a := NewAggregator()
	for _, page := range doc.Pages {
		a.visit(page)
	}
	return a.Reduce()
}

// visit records one node and recurses into its children depth-first.
func (a *Aggregator) visit(node *Node) {
	if node == nil {
		return
	}
	a.record(node)
	for _, child := range node.Children {
		a.visit(child)
	}
}

// record tallies one node's colors, typography, and spacing. A malformed
// node must never abort the whole-document scan, so any panic while reading
// it is swallowed and the node skipped.
func (a *Aggregator) record(node *Node) {
	defer func() {
		_ = recover()
	}()

	if !node.IsVisible() {
		return
	}
	props := Extract(node)

	for _, paint := range props.Fills {
		if paint.Type == "SOLID" && paint.Color != nil {
			a.countColor(paint.Color.Hex())
		}
	}
	for _, paint := range props.Strokes {
		if paint.Type == "SOLID" && paint.Color != nil {
			a.countColor(paint.Color.Hex())
		}
	}

	if props.Type == NodeTypeText && props.FontFamily != "" && props.FontSize != nil {
		key := typographyKey{
			family: props.FontFamily,
			size:   int(math.Round(*props.FontSize)),
			weight: mapFontWeight(props.FontStyle, props.FontWeight),
		}
		a.countTypography(key)
	}

	for _, v := range []*float64{
		props.ItemSpacing,
		props.PaddingLeft, props.PaddingRight,
		props.PaddingTop, props.PaddingBottom,
		props.CornerRadius,
	} {
		if v != nil && *v > 0 {
			a.countSpacing(*v)
		}
	}
}

func (a *Aggregator) countColor(hex string) {
	if _, seen := a.colors[hex]; !seen {
		a.colorOrder = append(a.colorOrder, hex)
	}
	a.colors[hex]++
}

func (a *Aggregator) countTypography(key typographyKey) {
	if _, seen := a.typography[key]; !seen {
		a.typoOrder = append(a.typoOrder, key)
	}
	a.typography[key]++
}

func (a *Aggregator) countSpacing(v float64) {
	if _, seen := a.spacing[v]; !seen {
		a.spacingOrder = append(a.spacingOrder, v)
	}
	a.spacing[v]++
}

// Reduce sorts each table by descending count (ties by first-encountered
// order), applies the per-category caps, and assigns deterministic names and
// usage categories.
func (a *Aggregator) Reduce() *ThemeTokens {
	tokens := &ThemeTokens{}

	colorRank := rankKeys(a.colorOrder, func(hex string) int { return a.colors[hex] })
	if len(colorRank) > maxColorTokens {
		colorRank = colorRank[:maxColorTokens]
	}
	for i, hex := range colorRank {
		tokens.Colors = append(tokens.Colors, ColorToken{
			Name:          colorTokenName(hex, i),
			Value:         hex,
			UsageCategory: colorUsageCategory(hex, i),
			Count:         a.colors[hex],
		})
	}

	typoRank := rankKeys(a.typoOrder, func(k typographyKey) int { return a.typography[k] })
	if len(typoRank) > maxTypographyTokens {
		typoRank = typoRank[:maxTypographyTokens]
	}
	for i, key := range typoRank {
		tokens.Typography = append(tokens.Typography, TypographyToken{
			Name:          typographyTokenName(key, i),
			FontFamily:    key.family,
			FontSize:      float64(key.size),
			FontWeight:    key.weight,
			UsageCategory: typographyUsageCategory(key),
			Count:         a.typography[key],
		})
	}

	spacingOrder := make([]float64, 0, len(a.spacingOrder))
	for _, v := range a.spacingOrder {
		if v > 0 && v <= maxSpacingValue {
			spacingOrder = append(spacingOrder, v)
		}
	}
	spacingRank := rankKeys(spacingOrder, func(v float64) int { return a.spacing[v] })
	if len(spacingRank) > maxSpacingTokens {
		spacingRank = spacingRank[:maxSpacingTokens]
	}
	for _, v := range spacingRank {
		tokens.Spacing = append(tokens.Spacing, SpacingToken{
			Name:          spacingTokenName(v),
			Value:         v,
			UsageCategory: spacingUsageCategory(v),
			Count:         a.spacing[v],
		})
	}

	return tokens
}

// rankKeys sorts keys by descending count. firstOrder is the encounter order,
// which is the tie-break, so a stable sort over it is enough.
func rankKeys[K comparable](firstOrder []K, count func(K) int) []K {
	ranked := make([]K, len(firstOrder))
	copy(ranked, firstOrder)
	sort.SliceStable(ranked, func(i, j int) bool {
		return count(ranked[i]) > count(ranked[j])
	})
	return ranked
}

// colorTokenName names ranked colors: the top three get semantic names, the
// rest are gray{NNN} for achromatic values or color{N}.
func colorTokenName(hex string, index int) string {
	switch index {
	case 0:
		return "primary"
	case 1:
		return "secondary"
	case 2:
		return "accent"
	}
	if r, g, b, ok := parseHex(hex); ok && r == g && g == b {
		return fmt.Sprintf("gray%d", int(math.Round(float64(r)/255*900)))
	}
	return fmt.Sprintf("color%d", index+1)
}

// colorUsageCategory is assigned independently of naming.
func colorUsageCategory(hex string, index int) string {
	if hex == "#000000" || hex == "#FFFFFF" {
		return "neutral"
	}
	switch index {
	case 0:
		return "primary"
	case 1:
		return "secondary"
	case 2:
		return "accent"
	}
	return "semantic"
}

func typographyTokenName(key typographyKey, index int) string {
	switch {
	case key.size >= 24:
		return fmt.Sprintf("heading%d", index+1)
	case key.size >= 16:
		return fmt.Sprintf("body%d", index+1)
	default:
		return fmt.Sprintf("caption%d", index+1)
	}
}

func typographyUsageCategory(key typographyKey) string {
	switch {
	case key.size >= 24 || key.weight >= 600:
		return "heading"
	case key.size >= 16:
		return "body"
	case key.size <= 12:
		return "caption"
	default:
		return "body"
	}
}

// spacingTokenName quantizes to 4-unit steps: 8 -> spacing2x.
func spacingTokenName(v float64) string {
	return fmt.Sprintf("spacing%dx", int(math.Round(v/4)))
}

func spacingUsageCategory(v float64) string {
	switch {
	case v <= 4:
		return "gap"
	case v <= 16:
		return "padding"
	case v <= 32:
		return "margin"
	default:
		return "radius"
	}
}

// fontWeightNames maps style-name fragments to numeric weights. Checked in
// order so that "extrabold" wins over "bold".
var fontWeightNames = []struct {
	fragment string
	weight   int
}{
	{"thin", 100},
	{"extralight", 200},
	{"ultralight", 200},
	{"semibold", 600},
	{"demibold", 600},
	{"extrabold", 800},
	{"ultrabold", 800},
	{"light", 300},
	{"medium", 500},
	{"bold", 700},
	{"black", 900},
	{"heavy", 900},
}

// mapFontWeight resolves a numeric weight from the explicit weight when
// present, else from the font style name, defaulting to 400.
func mapFontWeight(styleName string, explicit *float64) int {
	if explicit != nil && *explicit > 0 {
		return int(math.Round(*explicit))
	}
	name := strings.ToLower(strings.ReplaceAll(styleName, " ", ""))
	for _, entry := range fontWeightNames {
		if strings.Contains(name, entry.fragment) {
			return entry.weight
		}
	}
	return 400
}

// parseHex parses #RRGGBB into channel bytes.
func parseHex(hex string) (r, g, b int, ok bool) {
	if len(hex) != 7 || hex[0] != '#' {
		return 0, 0, 0, false
	}
	parse := func(s string) (int, bool) {
		n, err := strconv.ParseUint(s, 16, 8)
		if err != nil {
			return 0, false
		}
		return int(n), true
	}
	var okR, okG, okB bool
	r, okR = parse(hex[1:3])
	g, okG = parse(hex[3:5])
	b, okB = parse(hex[5:7])
	return r, g, b, okR && okG && okB
}
