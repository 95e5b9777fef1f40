package designgen

// AnalysisResult bundles everything one full-document analysis produces:
// the reduced token set, the pattern distribution, and the device profile
// detected for the document's top-level frames.
type AnalysisResult struct {
	DocumentName string         `json:"documentName"`
	NodeCount    int            `json:"nodeCount"`
	Tokens       *ThemeTokens   `json:"tokens"`
	Patterns     []PatternCount `json:"patterns"`
	Devices      []DeviceInfo   `json:"devices,omitempty"`
	BaseDevice   *DeviceInfo    `json:"baseDevice,omitempty"`
	Warnings     []string       `json:"warnings,omitempty"`
}

// PatternCount is one row of the pattern distribution.
type PatternCount struct {
	Type  PatternType `json:"type"`
	Count int         `json:"count"`
}

// patternOrder fixes the reporting order of the distribution.
var patternOrder = []PatternType{
	PatternButton, PatternInput, PatternCard, PatternListItem,
	PatternHeader, PatternImage, PatternText, PatternNavigation,
	PatternContainer,
}

// Analyze runs the analysis half of the pipeline over one document: token
// aggregation, per-node pattern classification, and device detection for
// top-level frames. It never mutates the document.
func Analyze(doc *Document) *AnalysisResult {
	result := &AnalysisResult{
		DocumentName: doc.Name,
		Tokens:       ScanDocument(doc),
	}

	counts := make(map[PatternType]int)
	for _, page := range doc.Pages {
		for _, frame := range pageFrames(page) {
			if box := frame.AbsoluteBoundingBox; box != nil && box.Width > 0 {
				result.Devices = append(result.Devices, DetectDevice(box.Width, box.Height))
			}
		}
		countPatterns(page, counts, &result.NodeCount)
	}

	for _, pattern := range patternOrder {
		if counts[pattern] > 0 {
			result.Patterns = append(result.Patterns, PatternCount{Type: pattern, Count: counts[pattern]})
		}
	}

	if base, ok := SelectBaseDevice(result.Devices); ok {
		result.BaseDevice = &base
	}

	return result
}

// pageFrames returns the top-level frames of a page. A page node's direct
// frame children are the screens of the document.
func pageFrames(page *Node) []*Node {
	if page == nil {
		return nil
	}
	if page.Type != NodeTypePage {
		// The caller handed a frame directly.
		return []*Node{page}
	}
	frames := make([]*Node, 0, len(page.Children))
	for _, child := range page.Children {
		if child.Type == NodeTypeFrame || child.Type == NodeTypeComponent {
			frames = append(frames, child)
		}
	}
	return frames
}

// countPatterns classifies every visible node below root.
func countPatterns(root *Node, counts map[PatternType]int, total *int) {
	if root == nil || !root.IsVisible() {
		return
	}
	if root.Type != NodeTypePage {
		*total++
		counts[Classify(root).Type]++
	}
	for _, child := range root.Children {
		countPatterns(child, counts, total)
	}
}
