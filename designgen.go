// Package designgen converts a tree of visual design nodes into design
// tokens and React Native component source code.
//
// designgen analyzes an exported design document, extracts a deduplicated
// theme-token set by frequency aggregation, classifies nodes into UI roles
// with confidence-scored heuristics, and generates component code with an
// accompanying style sheet.
//
// # Analysis
//
// Extract theme tokens and pattern statistics from a document:
//
//	doc, err := designgen.LoadDocument("export.json")
//	result := designgen.Analyze(doc)
//	tokens := result.Tokens
//
// # Generation
//
// Generate component source for a frame:
//
//	ctx := &designgen.GenerationContext{
//		Tokens:     tokens,
//		BaseDevice: *result.BaseDevice,
//		Options: designgen.GenerationOptions{
//			TypeScript:        true,
//			ResponsiveScaling: true,
//			UseThemeTokens:    true,
//			ComponentKind:     designgen.KindScreen,
//		},
//	}
//	out, err := designgen.Generate(frame, ctx)
//
// The pipeline is synchronous and I/O-free; re-entrancy requires a fresh
// GenerationContext per invocation. Classification is best-effort and
// confidence-scored, not authoritative.
//
// # CLI Tool
//
// designgen also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/designgen/cmd/designgen@latest
package designgen
