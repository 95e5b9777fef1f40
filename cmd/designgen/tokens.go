package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yacobolo/designgen"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens",
	Short: "Extract theme tokens from design exports",
	Long: `Scan exported design documents, aggregate colors, typography, and
spacing by frequency, and report the reduced token set.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: runTokens,
}

func init() {
	f := tokensCmd.Flags()
	f.StringSlice("input", []string{"*.json"}, "Glob patterns for design documents")
	f.String("json", "", "Write tokens as JSON to this file instead of the terminal report")
	f.Bool("patterns", false, "Include the pattern distribution in the report")
}

func runTokens(_ *cobra.Command, _ []string) error {
	patterns := k.Strings("input")
	if len(patterns) == 0 {
		patterns = []string{"*.json"}
	}

	docs, stats, warnings, err := designgen.ScanDocuments(patterns)
	if err != nil {
		return fmt.Errorf("scanning documents: %w", err)
	}
	if len(docs) == 0 {
		return fmt.Errorf("no design documents matched %v (%d files discovered)", patterns, stats.FilesDiscovered)
	}

	// Multiple documents fold into one combined document so token ranking
	// spans the whole input set.
	doc := docs[0]
	if len(docs) > 1 {
		combined := &designgen.Document{Name: "combined"}
		for _, d := range docs {
			combined.Pages = append(combined.Pages, d.Pages...)
		}
		doc = combined
	}

	result := designgen.Analyze(doc)
	result.Warnings = append(warnings, result.Warnings...)

	if jsonPath := getStringWithFallback("json", "tokens.json", ""); jsonPath != "" {
		f, err := os.Create(jsonPath)
		if err != nil {
			return fmt.Errorf("creating %s: %w", jsonPath, err)
		}
		defer f.Close()
		if err := designgen.WriteTokensJSON(f, result.Tokens); err != nil {
			return fmt.Errorf("writing tokens: %w", err)
		}
		if !getBoolWithFallback("quiet", "quiet", false) {
			fmt.Printf("Wrote %d tokens to %s\n",
				len(result.Tokens.Colors)+len(result.Tokens.Typography)+len(result.Tokens.Spacing), jsonPath)
		}
		return nil
	}

	if getBoolWithFallback("quiet", "quiet", false) {
		return nil
	}

	useColors := designgen.ShouldUseColors(getBoolWithFallback("color", "color", false))
	reporter := designgen.NewReporter(os.Stdout, useColors)
	reporter.PrintSummary(result)
	reporter.PrintTokens(result.Tokens)
	if getBoolWithFallback("patterns", "tokens.patterns", false) {
		reporter.PrintPatterns(result)
	}
	reporter.PrintWarnings(result.Warnings)

	return nil
}
