package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/yacobolo/designgen"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Aliases: []string{"gen"},
	Short:   "Generate React Native components from a design export",
	Long: `Load an exported design document, extract theme tokens, and generate
component source for one of its frames.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runGenerate,
}

func init() {
	f := generateCmd.Flags()
	f.String("input", "design.json", "Exported design document (JSON)")
	f.String("output-dir", "src/screens", "Output directory for generated files")
	f.String("frame", "", "Frame name to generate (default: first frame)")
	f.String("name", "", "Component name override")
	f.Bool("typescript", true, "Emit TypeScript")
	f.Bool("responsive", true, "Scale dimensions relative to the base device")
	f.Bool("theme-tokens", false, "Reference theme tokens instead of literal values")
	f.String("tokens-css", "", "Theme stylesheet to import tokens from instead of mining the document")
	f.String("kind", "screen", "Component kind: screen|component|section")
	f.Bool("nav-shell", false, "Append a bottom navigation placeholder")
	f.Bool("split-styles", false, "Emit the style sheet as a separate file")
}

func runGenerate(_ *cobra.Command, _ []string) error {
	input := getStringWithFallback("input", "generate.input", "design.json")
	outputDir := getStringWithFallback("output-dir", "generate.output-dir", "src/screens")

	doc, err := designgen.LoadDocument(input)
	if err != nil {
		return fmt.Errorf("loading %s: %w", input, err)
	}

	analysis := designgen.Analyze(doc)

	tokens := analysis.Tokens
	if cssPath := getStringWithFallback("tokens-css", "generate.tokens-css", ""); cssPath != "" {
		tokens, err = designgen.ImportTokensFile(cssPath)
		if err != nil {
			return fmt.Errorf("importing tokens from %s: %w", cssPath, err)
		}
	}

	frameName := getStringWithFallback("frame", "generate.frame", "")
	frame, err := selectFrame(doc, frameName)
	if err != nil {
		return err
	}

	opts := buildGenerationOptions()
	if opts.ResponsiveScaling && analysis.BaseDevice == nil {
		return fmt.Errorf("responsive scaling requires a detectable base device; re-run with --responsive=false")
	}

	ctx := &designgen.GenerationContext{
		ComponentName: getStringWithFallback("name", "generate.name", ""),
		Tokens:        tokens,
		Options:       opts,
	}
	if analysis.BaseDevice != nil {
		ctx.BaseDevice = *analysis.BaseDevice
	}

	result, err := designgen.Generate(frame, ctx)
	if err != nil {
		return fmt.Errorf("generation failed: %w", err)
	}

	ext := ".jsx"
	if opts.TypeScript {
		ext = ".tsx"
	}
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	codePath := filepath.Join(outputDir, ctx.ComponentName+ext)
	if err := os.WriteFile(codePath, []byte(result.Code), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", codePath, err)
	}
	if result.StylesCode != "" {
		stylesPath := filepath.Join(outputDir, ctx.ComponentName+".styles"+ext[:3])
		if err := os.WriteFile(stylesPath, []byte(result.StylesCode), 0644); err != nil {
			return fmt.Errorf("writing %s: %w", stylesPath, err)
		}
	}

	quiet := getBoolWithFallback("quiet", "quiet", false)

	if !quiet {
		useColors := designgen.ShouldUseColors(getBoolWithFallback("color", "color", false))
		fmt.Println(designgen.RenderStyle(designgen.StyleGreen,
			fmt.Sprintf("Generated %s", codePath), useColors))
		fmt.Printf("  Component:  %s\n", ctx.ComponentName)
		fmt.Printf("  Frame:      %s\n", frame.Name)
		fmt.Printf("  Imports:    %d\n", len(result.Imports))
		fmt.Printf("  Tokens:     %d colors, %d typography, %d spacing\n",
			len(tokens.Colors), len(tokens.Typography), len(tokens.Spacing))

		reporter := designgen.NewReporter(os.Stdout, useColors)
		reporter.PrintWarnings(append(analysis.Warnings, result.Warnings...))
	}

	return nil
}

// selectFrame finds the frame to generate. An empty name picks the first
// top-level frame of the first page.
func selectFrame(doc *designgen.Document, name string) (*designgen.Node, error) {
	var first *designgen.Node
	for _, page := range doc.Pages {
		for _, child := range page.Children {
			if child.Type != designgen.NodeTypeFrame && child.Type != designgen.NodeTypeComponent {
				continue
			}
			if first == nil {
				first = child
			}
			if name != "" && child.Name == name {
				return child, nil
			}
		}
	}
	if name != "" {
		return nil, fmt.Errorf("frame %q not found in document", name)
	}
	if first == nil {
		return nil, fmt.Errorf("document has no top-level frames")
	}
	return first, nil
}
